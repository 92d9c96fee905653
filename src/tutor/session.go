package tutor

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrEmptyInput is returned when an input-driven mode is submitted with
// nothing but whitespace.
var ErrEmptyInput = errors.New("tutor: input is empty")

// Ticket identifies one outstanding request. Results are only accepted while
// the ticket's generation is still the latest for its mode.
type Ticket struct {
	Mode       Mode
	Generation uint64
	Topic      Topic
	Language   string
	Input      string
}

// ModeState is an immutable view of one mode's request state.
type ModeState struct {
	Phase Phase
	Text  string
	Err   string
	Input string
}

// Loading reports whether a request is outstanding.
func (s ModeState) Loading() bool {
	return s.Phase == PhaseLoading || s.Phase == PhaseStreaming
}

// Waiting reports whether a request is outstanding and nothing has arrived yet.
func (s ModeState) Waiting() bool {
	return s.Loading() && s.Text == ""
}

type modeState struct {
	phase Phase
	gen   uint64
	buf   strings.Builder
	err   string
	input string
}

func (st *modeState) reset() {
	st.gen++
	st.phase = PhaseIdle
	st.buf.Reset()
	st.err = ""
}

// Session is the single source of truth for what the learner sees. It is safe
// for concurrent use: request goroutines append fragments while the UI reads
// snapshots.
type Session struct {
	mu       sync.Mutex
	topic    Topic
	language string
	active   Mode
	modes    [modeCount]*modeState

	quiz     []QuizItem
	answers  map[int]string
	revealed bool
}

// NewSession starts on the Learn tab with nothing fetched yet.
func NewSession(topic Topic, language string) *Session {
	if language == "" {
		language = DefaultLanguage
	}
	s := &Session{topic: topic, language: language, active: ModeLearn, answers: map[int]string{}}
	for i := range s.modes {
		s.modes[i] = &modeState{}
	}
	return s
}

func (s *Session) Topic() Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *Session) Active() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Begin invalidates any outstanding request for mode and starts a new one.
func (s *Session) Begin(mode Mode) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked(mode)
}

func (s *Session) beginLocked(mode Mode) Ticket {
	st := s.modes[mode]
	st.reset()
	st.phase = PhaseLoading
	if mode == ModeQuiz {
		s.quiz = nil
		s.answers = map[int]string{}
		s.revealed = false
	}
	return Ticket{Mode: mode, Generation: st.gen, Topic: s.topic, Language: s.language, Input: st.input}
}

func (s *Session) currentLocked(t Ticket) (*modeState, bool) {
	if !t.Mode.valid() {
		return nil, false
	}
	st := s.modes[t.Mode]
	if st.gen != t.Generation || !(st.phase == PhaseLoading || st.phase == PhaseStreaming) {
		return nil, false
	}
	return st, true
}

// Append adds a fragment to the ticket's buffer. It returns false when the
// ticket has been superseded, in which case the fragment is discarded.
func (s *Session) Append(t Ticket, fragment string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.currentLocked(t)
	if !ok {
		return false
	}
	st.buf.WriteString(fragment)
	st.phase = PhaseStreaming
	return true
}

// Settle marks the ticket's request as complete.
func (s *Session) Settle(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.currentLocked(t)
	if !ok {
		return false
	}
	st.phase = PhaseSettled
	return true
}

// Fail records msg for the ticket's mode. Text already received is kept.
func (s *Session) Fail(t Ticket, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.currentLocked(t)
	if !ok {
		return false
	}
	st.phase = PhaseErrored
	st.err = msg
	return true
}

// SetQuiz installs a freshly generated quiz for a quiz ticket.
func (s *Session) SetQuiz(t Ticket, items []QuizItem) bool {
	if t.Mode != ModeQuiz {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.currentLocked(t)
	if !ok {
		return false
	}
	s.quiz = append([]QuizItem(nil), items...)
	s.answers = map[int]string{}
	s.revealed = false
	st.phase = PhaseSettled
	return true
}

// SelectTopic clears every mode, moves the learner to Learn and starts a new
// explanation. Selecting the current topic again does nothing.
func (s *Session) SelectTopic(topic Topic) (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if topic == s.topic {
		return Ticket{}, false
	}
	s.topic = topic
	for _, st := range s.modes {
		st.reset()
		st.input = ""
	}
	s.quiz = nil
	s.answers = map[int]string{}
	s.revealed = false
	s.active = ModeLearn
	return s.beginLocked(ModeLearn), true
}

// SetLanguage switches the target language and refetches the explanation.
// Other modes keep their content.
func (s *Session) SetLanguage(language string) (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if language == s.language {
		return Ticket{}, false
	}
	s.language = language
	return s.beginLocked(ModeLearn), true
}

// Activate switches tabs. Project ideas are fetched the first time the tab is
// shown for a topic; the returned bool says whether a request was started.
func (s *Session) Activate(mode Mode) (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = mode
	if mode == ModeProjects && s.modes[mode].phase == PhaseIdle {
		return s.beginLocked(mode), true
	}
	return Ticket{}, false
}

// SetInput stores the learner's draft for an input-driven mode.
func (s *Session) SetInput(mode Mode, text string) {
	if !mode.valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[mode].input = text
}

// Submit starts a request for an input-driven mode using the stored draft.
func (s *Session) Submit(mode Mode) (Ticket, error) {
	if !mode.TakesInput() {
		return Ticket{}, fmt.Errorf("tutor: %s does not take input", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(s.modes[mode].input) == "" {
		return Ticket{}, ErrEmptyInput
	}
	return s.beginLocked(mode), nil
}

// ExplainSnippet hands a code block to the explainer: the learner is moved to
// the Code Explainer tab with code as its input and a request is started.
func (s *Session) ExplainSnippet(code string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ModeExplain
	s.modes[ModeExplain].input = code
	return s.beginLocked(ModeExplain)
}

// Clear empties an input-driven mode and abandons its outstanding request.
func (s *Session) Clear(mode Mode) {
	if !mode.valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.modes[mode]
	st.reset()
	st.input = ""
}

// Answer records option for question i. Answers are frozen once revealed and
// must be one of the question's options.
func (s *Session) Answer(i int, option string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revealed || i < 0 || i >= len(s.quiz) || !hasOption(s.quiz[i], option) {
		return false
	}
	s.answers[i] = option
	return true
}

// Reveal freezes the answers and exposes correctness and explanations.
func (s *Session) Reveal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.quiz) == 0 || s.revealed {
		return false
	}
	s.revealed = true
	return true
}

// AllAnswered reports whether every question of the current quiz has an answer.
func (s *Session) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quiz) > 0 && len(s.answers) == len(s.quiz)
}

// Score counts correct answers in the current quiz.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Score(s.answers, s.quiz)
}

// Snapshot is a consistent copy of the whole session.
type Snapshot struct {
	Topic    Topic
	Language string
	Active   Mode
	Modes    [modeCount]ModeState
	Quiz     []QuizItem
	Answers  map[int]string
	Revealed bool
	Score    int
}

// Mode returns the state of one mode.
func (s Snapshot) Mode(m Mode) ModeState {
	if !m.valid() {
		return ModeState{}
	}
	return s.Modes[m]
}

// Current returns the state of the active mode.
func (s Snapshot) Current() ModeState { return s.Mode(s.Active) }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Topic:    s.topic,
		Language: s.language,
		Active:   s.active,
		Quiz:     append([]QuizItem(nil), s.quiz...),
		Answers:  make(map[int]string, len(s.answers)),
		Revealed: s.revealed,
		Score:    Score(s.answers, s.quiz),
	}
	for k, v := range s.answers {
		snap.Answers[k] = v
	}
	for i, st := range s.modes {
		snap.Modes[i] = ModeState{Phase: st.phase, Text: st.buf.String(), Err: st.err, Input: st.input}
	}
	return snap
}
