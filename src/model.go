package src

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
	"github.com/Protocol-Lattice/lattice-tutor/src/ui"
)

const markdownStyle = "dark"

type topicItem struct{ topic tutor.Topic }

func (t topicItem) Title() string       { return t.topic.Name }
func (t topicItem) Description() string { return t.topic.Description }
func (t topicItem) FilterValue() string { return t.topic.Name }

// refreshMsg is sent from request goroutines after every session change.
type refreshMsg struct{}

type requestDoneMsg struct {
	ticket tutor.Ticket
	err    error
}

// copyResetMsg clears the copy confirmation unless a newer copy happened.
type copyResetMsg struct {
	seq int
}

type model struct {
	ctx      context.Context
	session  *tutor.Session
	backend  tutor.Backend
	log      *zap.Logger
	topics   list.Model
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown *ui.Markdown
	style    ui.Styles
	width    int
	height   int

	picking bool
	cursor  int
	blocks  []ui.CodeBlock
	block   int
	copied  int
	copySeq int
	notice  string
	copy    func(string) error

	Program *tea.Program
}

func NewModel(ctx context.Context, session *tutor.Session, backend tutor.Backend, log *zap.Logger) *model {
	if log == nil {
		log = zap.NewNop()
	}
	st := ui.NewStyles()

	var items []list.Item
	for _, t := range tutor.Topics() {
		items = append(items, topicItem{topic: t})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Choose a Topic"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	vp := viewport.New(80, 20)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = st.Thinking

	md, err := ui.NewMarkdown(80, markdownStyle)
	if err != nil {
		log.Warn("markdown renderer unavailable", zap.Error(err))
	}

	m := &model{
		ctx:      ctx,
		session:  session,
		backend:  backend,
		log:      log,
		topics:   l,
		textarea: ta,
		viewport: vp,
		spinner:  s,
		markdown: md,
		style:    st,
		copied:   -1,
		copy:     ui.CopyToClipboard,
	}
	m.loadInput()
	m.refresh()
	return m
}

// Init fetches the lesson for the starting topic.
func (m *model) Init() tea.Cmd {
	return m.start(m.session.Begin(tutor.ModeLearn))
}

// Run starts the TUI and blocks until the learner quits.
func Run(ctx context.Context, session *tutor.Session, backend tutor.Backend, log *zap.Logger) error {
	m := NewModel(ctx, session, backend, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.Program = p
	_, err := p.Run()
	return err
}
