package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"

	"github.com/Protocol-Lattice/lattice-tutor/src/prompts"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// Markdown renders model output for the terminal at a fixed wrap width.
type Markdown struct {
	r     *glamour.TermRenderer
	width int
}

// NewMarkdown builds a renderer. style is a glamour standard style such as
// "dark", "light" or "notty".
func NewMarkdown(width int, style string) (*Markdown, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{r: r, width: width}, nil
}

func (m *Markdown) Width() int { return m.width }

// Render returns text unchanged when it cannot be rendered, so a half
// streamed document is always visible.
func (m *Markdown) Render(text string) string {
	if m == nil || strings.TrimSpace(text) == "" {
		return text
	}
	out, err := m.r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// HighlightCode colours raw code for a terminal. Unknown languages fall back
// to chroma's content analysis.
func HighlightCode(code, language string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, prompts.FenceLanguage(language), "terminal256", "monokai"); err != nil {
		return code
	}
	return buf.String()
}

// Output renders a mode's buffer for the viewport.
func Output(mode tutor.Mode, text, language string, md *Markdown) string {
	if mode == tutor.ModeGenerate && strings.TrimSpace(text) != "" && !strings.Contains(text, "```") {
		return HighlightCode(text, language)
	}
	return md.Render(text)
}
