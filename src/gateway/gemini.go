package gateway

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// GeminiProvider calls the Gemini API directly.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Close() error { return p.client.Close() }

func (p *GeminiProvider) Stream(ctx context.Context, prompt string) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	it := p.client.GenerativeModel(p.model).GenerateContentStream(ctx, genai.Text(prompt))
	return &geminiStream{it: it, cancel: cancel}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	model := p.client.GenerativeModel(p.model)
	if schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = schema
	}
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

type geminiStream struct {
	it     *genai.GenerateContentResponseIterator
	cancel context.CancelFunc
	cur    string
	err    error
	done   bool
	once   sync.Once
}

func (s *geminiStream) Next() bool {
	if s.done {
		return false
	}
	resp, err := s.it.Next()
	if errors.Is(err, iterator.Done) {
		s.finish(nil)
		return false
	}
	if err != nil {
		s.finish(err)
		return false
	}
	s.cur = responseText(resp)
	return true
}

func (s *geminiStream) finish(err error) {
	s.done = true
	s.cur = ""
	s.err = err
	s.Close()
}

func (s *geminiStream) Fragment() string { return s.cur }
func (s *geminiStream) Err() error       { return s.err }

func (s *geminiStream) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
