package src

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

type stubFragments struct {
	parts []string
	err   error
	i     int
	cur   string
}

func (s *stubFragments) Next() bool {
	if s.i >= len(s.parts) {
		return false
	}
	s.cur = s.parts[s.i]
	s.i++
	return true
}
func (s *stubFragments) Fragment() string { return s.cur }
func (s *stubFragments) Err() error {
	if s.i >= len(s.parts) {
		return s.err
	}
	return nil
}
func (s *stubFragments) Close() error { return nil }

type stubBackend struct {
	mu      sync.Mutex
	replies map[tutor.Mode][]string
	fail    map[tutor.Mode]error
	prompts map[tutor.Mode][]string
	quiz    []tutor.QuizItem
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		replies: map[tutor.Mode][]string{},
		fail:    map[tutor.Mode]error{},
		prompts: map[tutor.Mode][]string{},
	}
}

func (b *stubBackend) StreamText(_ context.Context, mode tutor.Mode, prompt string) (tutor.Fragments, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts[mode] = append(b.prompts[mode], prompt)
	return &stubFragments{parts: b.replies[mode], err: b.fail[mode]}, nil
}

func (b *stubBackend) GenerateQuiz(_ context.Context, _, _ string) ([]tutor.QuizItem, error) {
	if err := b.fail[tutor.ModeQuiz]; err != nil {
		return nil, err
	}
	return b.quiz, nil
}

func (b *stubBackend) calls(mode tutor.Mode) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.prompts[mode])
}

// drain runs cmd and feeds request completions back into the model. Timers
// are skipped so tests never sleep.
func drain(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case requestDoneMsg:
		m.Update(msg)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(key(k))
		drain(m, cmd)
	}
}

func newTestModel(b *stubBackend) *model {
	m := NewModel(context.Background(), tutor.NewSession(tutor.DefaultTopic(), "Python"), b, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestInitFetchesLesson(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeLearn] = []string{"## 🚀 Welcome, Explorer!\n", "Variables hold values."}
	m := newTestModel(b)
	drain(m, m.Init())

	st := m.session.Snapshot().Mode(tutor.ModeLearn)
	if st.Phase != tutor.PhaseSettled || !strings.Contains(st.Text, "Variables hold values.") {
		t.Fatalf("lesson not loaded: %+v", st)
	}
	if !strings.Contains(m.View(), "Variables") {
		t.Fatalf("lesson not rendered")
	}
}

func TestTabCyclesModesAndFetchesProjectsOnce(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeProjects] = []string{"### 1. Simple Calculator"}
	m := newTestModel(b)

	press(m, "tab")
	if m.session.Active() != tutor.ModeExplain {
		t.Fatalf("active = %v", m.session.Active())
	}
	press(m, "shift+tab", "shift+tab")
	if m.session.Active() != tutor.ModeProjects {
		t.Fatalf("active = %v", m.session.Active())
	}
	press(m, "tab", "shift+tab")
	if n := b.calls(tutor.ModeProjects); n != 1 {
		t.Fatalf("project ideas fetched %d times", n)
	}
}

func TestExplainerSubmitAndClear(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeExplain] = []string{"This prints one."}
	m := newTestModel(b)

	press(m, "tab", "ctrl+s")
	if b.calls(tutor.ModeExplain) != 0 {
		t.Fatal("empty input was submitted")
	}
	if m.notice == "" {
		t.Fatal("expected a hint for empty input")
	}

	press(m, "print(1)", "ctrl+s")
	if b.calls(tutor.ModeExplain) != 1 || !strings.Contains(b.prompts[tutor.ModeExplain][0], "print(1)") {
		t.Fatalf("unexpected prompts %q", b.prompts[tutor.ModeExplain])
	}
	if got := m.session.Snapshot().Mode(tutor.ModeExplain).Text; got != "This prints one." {
		t.Fatalf("explanation = %q", got)
	}

	press(m, "ctrl+r")
	st := m.session.Snapshot().Mode(tutor.ModeExplain)
	if st.Text != "" || st.Input != "" || m.textarea.Value() != "" {
		t.Fatalf("clear left state behind: %+v", st)
	}
}

func TestInputSurvivesTabSwitch(t *testing.T) {
	m := newTestModel(newStubBackend())
	press(m, "tab", "x = 1", "tab", "shift+tab")
	if m.textarea.Value() != "x = 1" {
		t.Fatalf("draft lost: %q", m.textarea.Value())
	}
}

func TestFailureShowsModeMessage(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeLearn] = []string{"partial "}
	b.fail[tutor.ModeLearn] = errors.New("connection reset")
	m := newTestModel(b)
	drain(m, m.Init())

	view := m.View()
	if !strings.Contains(view, "An error occurred while fetching the topic explanation.") {
		t.Fatal("error message not shown")
	}
	if m.session.Snapshot().Mode(tutor.ModeLearn).Text != "partial " {
		t.Fatal("partial text dropped")
	}
}

func TestTopicPickerResetsSession(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeLearn] = []string{"lesson"}
	m := newTestModel(b)
	press(m, "tab", "draft")

	press(m, "ctrl+t")
	if !m.picking {
		t.Fatal("picker not open")
	}
	press(m, "down", "enter")
	if m.picking {
		t.Fatal("picker still open")
	}
	snap := m.session.Snapshot()
	if snap.Topic.ID != "operators" || snap.Active != tutor.ModeLearn {
		t.Fatalf("topic=%q active=%v", snap.Topic.ID, snap.Active)
	}
	if snap.Mode(tutor.ModeExplain).Input != "" {
		t.Fatal("explainer draft survived topic change")
	}
	if b.calls(tutor.ModeLearn) != 1 {
		t.Fatalf("lesson fetched %d times", b.calls(tutor.ModeLearn))
	}
}

func TestPickerEscKeepsTopic(t *testing.T) {
	m := newTestModel(newStubBackend())
	press(m, "ctrl+t", "down", "esc")
	if m.picking || m.session.Topic().ID != "variables" {
		t.Fatal("esc should close the picker without changing topic")
	}
}

func TestLanguageCycleRefetchesLesson(t *testing.T) {
	b := newStubBackend()
	m := newTestModel(b)
	press(m, "ctrl+l")
	if m.session.Language() != "Java" {
		t.Fatalf("language = %q", m.session.Language())
	}
	if b.calls(tutor.ModeLearn) != 1 || !strings.Contains(b.prompts[tutor.ModeLearn][0], "Java") {
		t.Fatal("lesson not refetched for the new language")
	}
}

func quizFixture() []tutor.QuizItem {
	items := make([]tutor.QuizItem, tutor.QuizLength)
	for i := range items {
		items[i] = tutor.QuizItem{
			Question:      "Which keyword loops?",
			Options:       []string{"for", "when", "goto", "case"},
			CorrectAnswer: "for",
			Explanation:   "for is the loop keyword.",
		}
	}
	return items
}

func TestQuizFlow(t *testing.T) {
	b := newStubBackend()
	b.quiz = quizFixture()
	m := newTestModel(b)

	press(m, "tab", "tab", "tab")
	if m.session.Active() != tutor.ModeQuiz {
		t.Fatalf("active = %v", m.session.Active())
	}
	press(m, "g")
	if len(m.session.Snapshot().Quiz) != tutor.QuizLength {
		t.Fatal("quiz not generated")
	}

	press(m, "1", "2", "1")
	if m.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", m.cursor)
	}
	press(m, "enter")
	snap := m.session.Snapshot()
	if !snap.Revealed || snap.Score != 2 {
		t.Fatalf("revealed=%v score=%d", snap.Revealed, snap.Score)
	}
	if !strings.Contains(m.View(), "You scored 2 / 5") {
		t.Fatal("score not shown")
	}

	press(m, "1")
	if m.session.Snapshot().Answers[3] != "" {
		t.Fatal("answer recorded after reveal")
	}

	press(m, "enter")
	snap = m.session.Snapshot()
	if snap.Revealed || len(snap.Answers) != 0 || m.cursor != 0 {
		t.Fatal("try another quiz did not reset")
	}
}

func TestCopyAndExplainBlock(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeLearn] = []string{"Example:\n```python\nfor i in range(3):\n    print(i)\n```\n"}
	b.replies[tutor.ModeExplain] = []string{"It counts."}
	m := newTestModel(b)
	drain(m, m.Init())

	var copied string
	m.copy = func(s string) error { copied = s; return nil }

	if len(m.blocks) != 1 {
		t.Fatalf("blocks = %d", len(m.blocks))
	}
	_, cmd := m.Update(key("ctrl+y"))
	if cmd == nil || copied != "for i in range(3):\n    print(i)" {
		t.Fatalf("copied %q", copied)
	}
	if m.copied != 0 || !strings.Contains(m.View(), "Copied!") {
		t.Fatal("copy confirmation missing")
	}
	m.Update(copyResetMsg{seq: m.copySeq - 1})
	if m.copied != 0 {
		t.Fatal("stale reset cleared the confirmation")
	}
	m.Update(copyResetMsg{seq: m.copySeq})
	if m.copied != -1 {
		t.Fatal("confirmation did not clear")
	}

	press(m, "ctrl+e")
	snap := m.session.Snapshot()
	if snap.Active != tutor.ModeExplain || snap.Current().Input != copied {
		t.Fatalf("explain reroute failed: %+v", snap.Current())
	}
	if snap.Current().Text != "It counts." || m.textarea.Value() != copied {
		t.Fatal("explainer did not run on the snippet")
	}
}

func TestCopyFailureShowsNotice(t *testing.T) {
	b := newStubBackend()
	b.replies[tutor.ModeLearn] = []string{"```go\nx := 1\n```"}
	m := newTestModel(b)
	drain(m, m.Init())
	m.copy = func(string) error { return errors.New("no clipboard") }

	_, cmd := m.Update(key("ctrl+y"))
	if cmd != nil || !strings.Contains(m.notice, "no clipboard") {
		t.Fatalf("notice = %q", m.notice)
	}
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	b := newStubBackend()
	m := newTestModel(b)
	old := m.session.Begin(tutor.ModeLearn)
	m.session.Begin(tutor.ModeLearn)
	m.Update(requestDoneMsg{ticket: old, err: tutor.ErrStale})
	if m.session.Snapshot().Mode(tutor.ModeLearn).Phase != tutor.PhaseLoading {
		t.Fatal("stale completion changed state")
	}
}
