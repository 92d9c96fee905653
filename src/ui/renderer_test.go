package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

func baseState(s *tutor.Session) State {
	vp := viewport.New(80, 20)
	ta := textarea.New()
	ta.SetWidth(80)
	return State{
		Session:     s.Snapshot(),
		CopiedBlock: -1,
		Topics:      list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20),
		TextArea:    ta,
		Viewport:    vp,
		Spinner:     spinner.New(),
	}
}

func TestRenderHeaderShowsTopicAndLanguage(t *testing.T) {
	topic, _ := tutor.LookupTopic("loops")
	s := tutor.NewSession(topic, "Python")
	output := Render(baseState(s), NewStyles())

	for _, want := range []string{Logo, "Loops", "Explore for, while, and do-while loops for iteration.", "Language: Python"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected header to contain %q", want)
		}
	}
}

func TestRenderShowsAllTabs(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	output := Render(baseState(s), NewStyles())

	for _, label := range []string{"Learn", "Code Explainer", "Code Generator", "Quiz Master", "Project Ideas"} {
		if !strings.Contains(output, label) {
			t.Errorf("Expected tab %q", label)
		}
	}
}

func TestRenderFooterContainsQuit(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	output := Render(baseState(s), NewStyles())

	if !strings.Contains(output, "ctrl+c: quit") {
		t.Errorf("Expected footer to contain quit instruction")
	}
}

func TestRenderWaitingShowsSpinnerText(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	s.Begin(tutor.ModeLearn)
	output := Render(baseState(s), NewStyles())

	if !strings.Contains(output, LoadingText(tutor.ModeLearn)) {
		t.Errorf("Expected loading indicator while nothing has arrived")
	}
}

func TestRenderStreamingHidesSpinner(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	tk := s.Begin(tutor.ModeLearn)
	s.Append(tk, "# Hello")
	state := baseState(s)
	state.Viewport.SetContent("Hello lesson")
	output := Render(state, NewStyles())

	if strings.Contains(output, LoadingText(tutor.ModeLearn)) {
		t.Errorf("Spinner should disappear once text arrives")
	}
	if !strings.Contains(output, "Hello lesson") {
		t.Errorf("Expected viewport content")
	}
}

func TestRenderErrorKeepsPartialContent(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	tk := s.Begin(tutor.ModeLearn)
	s.Append(tk, "partial")
	s.Fail(tk, tutor.FailureMessage(tutor.ModeLearn))
	state := baseState(s)
	state.Viewport.SetContent("partial lesson")
	output := Render(state, NewStyles())

	if !strings.Contains(output, "An error occurred while fetching the topic explanation.") {
		t.Errorf("Expected error message")
	}
	if !strings.Contains(output, "partial lesson") {
		t.Errorf("Expected partial content to stay visible")
	}
}

func TestRenderInputModes(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Java")
	s.Activate(tutor.ModeExplain)
	output := Render(baseState(s), NewStyles())
	if !strings.Contains(output, "Paste Java code to explain") {
		t.Errorf("Expected explainer prompt")
	}
	if !strings.Contains(output, "ctrl+s: submit") {
		t.Errorf("Expected submit help")
	}
}

func TestRenderBlocksStrip(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	state := baseState(s)
	state.Blocks = []CodeBlock{{Lang: "go", Body: "a\nb"}, {Lang: "", Body: "c"}}
	state.SelectedBlock = 1
	state.CopiedBlock = 1
	output := Render(state, NewStyles())

	for _, want := range []string{"[1] go · 2 lines", "▸ [2] code · 1 lines ✓ Copied!", "ctrl+e: explain"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in block strip", want)
		}
	}
}

func TestRenderTopicPicker(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	state := baseState(s)
	state.PickingTopic = true
	output := Render(state, NewStyles())

	if !strings.Contains(output, "enter: select topic") {
		t.Errorf("Expected picker help")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	s := tutor.NewSession(tutor.DefaultTopic(), "Go")
	tk := s.Begin(tutor.ModeProjects)
	s.Append(tk, "### 1. Simple Calculator")
	s.Activate(tutor.ModeProjects)
	state := baseState(s)
	styles := NewStyles()

	if Render(state, styles) != Render(state, styles) {
		t.Errorf("Rendering the same state twice differs")
	}
}

func TestNewStyles(t *testing.T) {
	styles := NewStyles()

	if styles.Accent.GetForeground() == nil {
		t.Errorf("Accent style should have a foreground color")
	}
	if !styles.TabActive.GetBold() {
		t.Errorf("Active tab should be bold")
	}
}
