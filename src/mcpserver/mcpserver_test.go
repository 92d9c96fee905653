package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

type fragments struct {
	parts []string
	i     int
}

func (f *fragments) Next() bool {
	if f.i >= len(f.parts) {
		return false
	}
	f.i++
	return true
}
func (f *fragments) Fragment() string { return f.parts[f.i-1] }
func (f *fragments) Err() error       { return nil }
func (f *fragments) Close() error     { return nil }

type fakeBackend struct {
	parts   []string
	err     error
	quiz    []tutor.QuizItem
	prompts []string
}

func (b *fakeBackend) StreamText(_ context.Context, _ tutor.Mode, prompt string) (tutor.Fragments, error) {
	b.prompts = append(b.prompts, prompt)
	if b.err != nil {
		return nil, b.err
	}
	return &fragments{parts: b.parts}, nil
}

func (b *fakeBackend) GenerateQuiz(context.Context, string, string) ([]tutor.QuizItem, error) {
	return b.quiz, b.err
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return tc.Text
}

func newTutor(b *fakeBackend) *Tutor {
	return NewTutor(b, nil, tutor.DefaultTopic(), "Go")
}

func TestExplainTopic(t *testing.T) {
	b := &fakeBackend{parts: []string{"# Loops", " are fun"}}
	tt := newTutor(b)

	res, err := tt.textTool(tutor.ModeLearn)(context.Background(), call(toolExplainTopic, map[string]any{"topic": "loops", "language": "python"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "# Loops are fun", text(t, res))
	require.Contains(t, b.prompts[0], "Loops")
	require.Contains(t, b.prompts[0], "Python")
}

func TestExplainCodeRequiresCode(t *testing.T) {
	b := &fakeBackend{parts: []string{"ok"}}
	tt := newTutor(b)

	res, err := tt.textTool(tutor.ModeExplain)(context.Background(), call(toolExplainCode, map[string]any{"code": "  "}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Empty(t, b.prompts)

	res, err = tt.textTool(tutor.ModeExplain)(context.Background(), call(toolExplainCode, map[string]any{"code": "x := 1"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, b.prompts[0], "x := 1")
}

func TestUnknownArgumentsAreToolErrors(t *testing.T) {
	tt := newTutor(&fakeBackend{})

	res, err := tt.textTool(tutor.ModeProjects)(context.Background(), call(toolProjectIdeas, map[string]any{"topic": "knitting"}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	res, err = tt.handleQuiz(context.Background(), call(toolGenerateQuiz, map[string]any{"language": "COBOL"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestBackendFailureUsesModeMessage(t *testing.T) {
	tt := newTutor(&fakeBackend{err: errors.New("AI request failed")})

	res, err := tt.textTool(tutor.ModeGenerate)(context.Background(), call(toolGenerateCode, map[string]any{"description": "fizzbuzz"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Equal(t, tutor.FailureMessage(tutor.ModeGenerate), text(t, res))
}

func TestGenerateQuizReturnsJSON(t *testing.T) {
	quiz := make([]tutor.QuizItem, tutor.QuizLength)
	for i := range quiz {
		quiz[i] = tutor.QuizItem{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Explanation: "e"}
	}
	tt := newTutor(&fakeBackend{quiz: quiz})

	res, err := tt.handleQuiz(context.Background(), call(toolGenerateQuiz, nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got []tutor.QuizItem
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Equal(t, quiz, got)
}

func TestNewRegistersTools(t *testing.T) {
	s := New(newTutor(&fakeBackend{}))
	require.NotNil(t, s)
}
