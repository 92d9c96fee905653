package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

const Logo = "LATTICE TUTOR"

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := RenderHeader(s, styles)
	body := renderBody(s, styles)
	footer := RenderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// RenderHeader draws the title, topic, language and tab bar.
func RenderHeader(s State, styles Styles) string {
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Title.Render(Logo),
		styles.Header.Render("Codey · your friendly programming tutor"),
	)
	topic := s.Session.Topic
	meta := styles.Subtitle.Render(fmt.Sprintf("Topic: %s · %s", topic.Name, topic.Description))
	lang := styles.Subtitle.Render(fmt.Sprintf("Language: %s", s.Session.Language))
	return lipgloss.JoinVertical(lipgloss.Left, title, meta, lang, renderTabs(s.Session.Active, styles))
}

func renderTabs(active tutor.Mode, styles Styles) string {
	var tabs []string
	for _, m := range tutor.Modes() {
		if m == active {
			tabs = append(tabs, styles.TabActive.Render(m.String()))
		} else {
			tabs = append(tabs, styles.Tab.Render(m.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RenderFooter draws the notice line and key help for the active mode.
func RenderFooter(s State, styles Styles) string {
	help := []string{"ctrl+c: quit"}
	if s.PickingTopic {
		help = append(help, "enter: select topic", "esc: cancel", "/: filter")
		return styles.Footer.Render(strings.Join(help, " | "))
	}
	help = append(help, "tab: next mode", "ctrl+t: topic", "ctrl+l: language")
	switch s.Session.Active {
	case tutor.ModeLearn, tutor.ModeProjects:
		help = append(help, "r: refresh", "↑/↓: scroll")
	case tutor.ModeExplain, tutor.ModeGenerate:
		help = append(help, "ctrl+s: submit", "ctrl+r: clear")
	case tutor.ModeQuiz:
		help = append(help, "g: new quiz", "↑/↓: question", "1-4: answer", "enter: check")
	}
	if len(s.Blocks) > 0 {
		help = append(help, "ctrl+n/ctrl+p: block", "ctrl+y: copy")
		if Explainable(s.Session.Active) {
			help = append(help, "ctrl+e: explain")
		}
	}
	out := styles.Footer.Render(strings.Join(help, " | "))
	if s.Notice != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, styles.Subtle.Render(s.Notice), out)
	}
	return out
}

func renderBody(s State, styles Styles) string {
	if s.PickingTopic {
		return styles.List.Render(s.Topics.View())
	}
	mode := s.Session.Active
	st := s.Session.Current()

	var parts []string
	if mode.TakesInput() {
		parts = append(parts, styles.ListHeader.Render(inputPrompt(mode, s.Session.Language)), styles.Textarea.Render(s.TextArea.View()))
	}
	if st.Err != "" {
		parts = append(parts, styles.Error.Render(st.Err))
	}
	if st.Waiting() {
		parts = append(parts, renderThinking(s, styles))
	} else {
		parts = append(parts, s.Viewport.View())
	}
	if strip := renderBlocks(s, styles); strip != "" {
		parts = append(parts, strip)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func inputPrompt(mode tutor.Mode, language string) string {
	if mode == tutor.ModeExplain {
		return fmt.Sprintf("Paste %s code to explain", language)
	}
	return fmt.Sprintf("Describe the %s code you want", language)
}

// LoadingText is shown next to the spinner while a mode waits for its first
// fragment.
func LoadingText(mode tutor.Mode) string {
	switch mode {
	case tutor.ModeLearn:
		return "Codey is preparing your lesson..."
	case tutor.ModeExplain:
		return "Analyzing your code..."
	case tutor.ModeGenerate:
		return "Writing your code..."
	case tutor.ModeQuiz:
		return "Generating your quiz..."
	case tutor.ModeProjects:
		return "Brainstorming project ideas..."
	}
	return "Thinking..."
}

func renderThinking(s State, styles Styles) string {
	return styles.Thinking.Render(fmt.Sprintf("%s %s", s.Spinner.View(), LoadingText(s.Session.Active)))
}

func renderBlocks(s State, styles Styles) string {
	if len(s.Blocks) == 0 {
		return ""
	}
	items := []string{styles.Subtle.Render("Code:")}
	for i, b := range s.Blocks {
		label := fmt.Sprintf("[%d] %s · %d lines", i+1, blockLang(b), b.Lines())
		if i == s.CopiedBlock {
			label += " ✓ Copied!"
		}
		if i == s.SelectedBlock {
			items = append(items, styles.BlockSelected.Render("▸ "+label))
		} else {
			items = append(items, styles.Block.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func blockLang(b CodeBlock) string {
	if b.Lang == "" {
		return "code"
	}
	return b.Lang
}
