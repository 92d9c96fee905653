package gateway

import (
	"context"
	"fmt"

	agent "github.com/Protocol-Lattice/go-agent"
	adk "github.com/Protocol-Lattice/go-agent/src/adk"
	"github.com/Protocol-Lattice/go-agent/src/adk/modules"
	"github.com/Protocol-Lattice/go-agent/src/memory"
	"github.com/Protocol-Lattice/go-agent/src/models"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// TutorSystemPrompt frames every request made through the agent backend.
const TutorSystemPrompt = `You are a friendly, patient programming tutor for beginners.
Follow the formatting instructions in each request exactly.
Prefer short paragraphs, concrete examples and encouraging language.`

// AgentProvider routes requests through a go-agent agent. The agent replies
// in one piece, so its streams carry a single fragment.
type AgentProvider struct {
	agent *agent.Agent
}

func NewAgentProvider(ctx context.Context, model string) (*AgentProvider, error) {
	if model == "" {
		model = DefaultModel
	}
	memOpts := memory.DefaultOptions()
	builder, err := adk.New(
		ctx,
		adk.WithDefaultSystemPrompt(TutorSystemPrompt),
		adk.WithModules(
			modules.InMemoryMemoryModule(10000, memory.AutoEmbedder(), &memOpts),
			modules.NewModelModule("gemini", func(_ context.Context) (models.Agent, error) {
				return models.NewGeminiLLM(ctx, model, "Programming tutor")
			}),
		),
	)
	if err != nil {
		return nil, err
	}
	a, err := builder.BuildAgent(ctx)
	if err != nil {
		return nil, err
	}
	return &AgentProvider{agent: a}, nil
}

func (p *AgentProvider) Name() string { return "agent" }

// Each request gets its own agent session so memory never leaks between
// unrelated prompts.
func (p *AgentProvider) generate(ctx context.Context, prompt string) (string, error) {
	return p.agent.Generate(ctx, uuid.NewString(), prompt)
}

func (p *AgentProvider) Stream(ctx context.Context, prompt string) (Stream, error) {
	return newLazyStream(ctx, func(ctx context.Context) (string, error) {
		return p.generate(ctx, prompt)
	}), nil
}

func (p *AgentProvider) Complete(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	out, err := p.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if schema == nil {
		return out, nil
	}
	data, err := extractJSON(out)
	if err != nil {
		return "", fmt.Errorf("agent reply: %w", err)
	}
	return string(data), nil
}
