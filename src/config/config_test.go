package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "LATTICE_TUTOR_API_KEY", "LATTICE_TUTOR_LANGUAGE", "LATTICE_TUTOR_BACKEND", "LATTICE_TUTOR_SERVER_ADDR"} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", cfg.Model)
	require.Equal(t, BackendGemini, cfg.Backend)
	require.Equal(t, "JavaScript", cfg.Language)
	require.Equal(t, "variables", cfg.Topic)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, filepath.Join(home, ".lattice-tutor", "logs", "tutor.log"), cfg.Log.File)
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY", "from-api-key")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-api-key", cfg.APIKey)

	t.Setenv("GEMINI_API_KEY", "from-gemini")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "from-gemini", cfg.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tutor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: file-key
language: python
topic: Loops
backend: agent
server:
  addr: ":9090"
log:
  level: debug
`), 0o600))
	t.Setenv("LATTICE_TUTOR_SERVER_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file-key", cfg.APIKey)
	require.Equal(t, "Python", cfg.Language)
	require.Equal(t, "loops", cfg.Topic)
	require.Equal(t, "Loops", cfg.StartTopic().Name)
	require.Equal(t, BackendAgent, cfg.Backend)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromConfigDir(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".lattice-tutor")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("language: Go\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "Go", cfg.Language)
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("LATTICE_TUTOR_LANGUAGE", "Rust")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("LATTICE_TUTOR_LANGUAGE", "")
	t.Setenv("LATTICE_TUTOR_BACKEND", "openai")
	_, err = Load("")
	require.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
