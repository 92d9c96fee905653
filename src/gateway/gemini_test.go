package gateway

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Blob{MIMEType: "image/png"}, genai.Text("world")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	require.Equal(t, "Hello, world", responseText(resp))
	require.Equal(t, "", responseText(nil))
	require.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
	require.Equal(t, "", responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}
