// Package config loads tutor settings from a YAML file, the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// ErrMissingAPIKey is fatal at startup: nothing works without a credential.
var ErrMissingAPIKey = errors.New("missing API key: set GEMINI_API_KEY or api_key in config.yaml")

const (
	BackendGemini = "gemini"
	BackendAgent  = "agent"

	envPrefix = "LATTICE_TUTOR"
)

type Config struct {
	APIKey   string       `mapstructure:"api_key"`
	Model    string       `mapstructure:"model"`
	Backend  string       `mapstructure:"backend"`
	Language string       `mapstructure:"language"`
	Topic    string       `mapstructure:"topic"`
	Log      LogConfig    `mapstructure:"log"`
	Server   ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

// Dir is the per-user directory holding config.yaml and logs.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lattice-tutor"
	}
	return filepath.Join(home, ".lattice-tutor")
}

// Load reads path when given, otherwise config.yaml from the working
// directory or Dir. A missing default file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("model", "gemini-2.5-pro")
	v.SetDefault("backend", BackendGemini)
	v.SetDefault("language", tutor.DefaultLanguage)
	v.SetDefault("topic", tutor.DefaultTopic().ID)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(Dir(), "logs", "tutor.log"))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("api_key", envPrefix+"_API_KEY", "GEMINI_API_KEY", "API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend != BackendGemini && c.Backend != BackendAgent {
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendGemini, BackendAgent)
	}
	lang, ok := tutor.LookupLanguage(c.Language)
	if !ok {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	c.Language = lang
	topic, ok := tutor.LookupTopic(c.Topic)
	if !ok {
		return fmt.Errorf("unknown topic %q", c.Topic)
	}
	c.Topic = topic.ID
	return nil
}

// Validate reports whether the configuration can reach the model.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// StartTopic resolves the configured topic.
func (c *Config) StartTopic() tutor.Topic {
	if t, ok := tutor.LookupTopic(c.Topic); ok {
		return t
	}
	return tutor.DefaultTopic()
}
