// Package mcpserver offers the tutor's operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

const (
	Name    = "Lattice Tutor MCP Server"
	Version = "1.0.0"

	toolExplainTopic = "explain_topic"
	toolExplainCode  = "explain_code"
	toolGenerateCode = "generate_code"
	toolGenerateQuiz = "generate_quiz"
	toolProjectIdeas = "project_ideas"
)

// Tutor holds what every tool handler needs.
type Tutor struct {
	backend  tutor.Backend
	log      *zap.Logger
	topic    tutor.Topic
	language string
}

func NewTutor(backend tutor.Backend, log *zap.Logger, topic tutor.Topic, language string) *Tutor {
	if log == nil {
		log = zap.NewNop()
	}
	if language == "" {
		language = tutor.DefaultLanguage
	}
	return &Tutor{backend: backend, log: log, topic: topic, language: language}
}

// New registers the tutor tools on a fresh MCP server.
func New(t *Tutor) *server.MCPServer {
	s := server.NewMCPServer(Name, Version, server.WithToolCapabilities(true))
	t.Register(s)
	return s
}

// Serve runs the MCP server on stdin/stdout until the client disconnects.
func Serve(t *Tutor) error {
	err := server.ServeStdio(New(t))
	if err != nil && strings.Contains(err.Error(), "broken pipe") {
		t.log.Info("mcp client disconnected")
		return nil
	}
	return err
}

func languageOption() mcp.ToolOption {
	return mcp.WithString("language",
		mcp.Description("Programming language to use"),
		mcp.Enum(tutor.Languages()...),
	)
}

func topicOption() mcp.ToolOption {
	ids := make([]string, 0, len(tutor.Topics()))
	for _, t := range tutor.Topics() {
		ids = append(ids, t.ID)
	}
	return mcp.WithString("topic",
		mcp.Description("Topic id or name, e.g. "+strings.Join(ids[:3], ", ")),
	)
}

func (t *Tutor) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(toolExplainTopic,
		mcp.WithDescription("Explain a programming topic for beginners with analogies and code examples"),
		topicOption(),
		languageOption(),
	), t.textTool(tutor.ModeLearn))

	s.AddTool(mcp.NewTool(toolExplainCode,
		mcp.WithDescription("Explain a code snippet step by step"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Code to explain")),
		languageOption(),
	), t.textTool(tutor.ModeExplain))

	s.AddTool(mcp.NewTool(toolGenerateCode,
		mcp.WithDescription("Generate well-commented code from a description"),
		mcp.WithString("description", mcp.Required(), mcp.Description("What the code should do")),
		languageOption(),
	), t.textTool(tutor.ModeGenerate))

	s.AddTool(mcp.NewTool(toolGenerateQuiz,
		mcp.WithDescription("Generate a five-question multiple-choice quiz as JSON"),
		topicOption(),
		languageOption(),
	), t.handleQuiz)

	s.AddTool(mcp.NewTool(toolProjectIdeas,
		mcp.WithDescription("Suggest beginner project ideas for a topic"),
		topicOption(),
		languageOption(),
	), t.textTool(tutor.ModeProjects))
}

func (t *Tutor) resolve(req mcp.CallToolRequest) (tutor.Topic, string, error) {
	topic := t.topic
	if key := req.GetString("topic", ""); key != "" {
		found, ok := tutor.LookupTopic(key)
		if !ok {
			return tutor.Topic{}, "", fmt.Errorf("unknown topic %q", key)
		}
		topic = found
	}
	language := t.language
	if name := req.GetString("language", ""); name != "" {
		found, ok := tutor.LookupLanguage(name)
		if !ok {
			return tutor.Topic{}, "", fmt.Errorf("unsupported language %q", name)
		}
		language = found
	}
	return topic, language, nil
}

func inputArg(mode tutor.Mode) string {
	switch mode {
	case tutor.ModeExplain:
		return "code"
	case tutor.ModeGenerate:
		return "description"
	}
	return ""
}

// textTool answers with the complete reply for a streaming mode.
func (t *Tutor) textTool(mode tutor.Mode) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topic, language, err := t.resolve(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var input string
		if arg := inputArg(mode); arg != "" {
			input = req.GetString(arg, "")
			if strings.TrimSpace(input) == "" {
				return mcp.NewToolResultError(fmt.Sprintf("%s is required", arg)), nil
			}
		}

		session, err := tutor.Once(ctx, t.backend, topic, language, mode, input, nil)
		if err != nil {
			t.log.Warn("mcp tool failed", zap.String("tool", req.Params.Name), zap.Error(err))
			return mcp.NewToolResultError(tutor.FailureMessage(mode)), nil
		}
		return mcp.NewToolResultText(session.Snapshot().Mode(mode).Text), nil
	}
}

func (t *Tutor) handleQuiz(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, language, err := t.resolve(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	session, err := tutor.Once(ctx, t.backend, topic, language, tutor.ModeQuiz, "", nil)
	if err != nil {
		t.log.Warn("mcp tool failed", zap.String("tool", toolGenerateQuiz), zap.Error(err))
		return mcp.NewToolResultError(tutor.FailureMessage(tutor.ModeQuiz)), nil
	}
	data, err := json.MarshalIndent(session.Snapshot().Quiz, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode quiz: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
