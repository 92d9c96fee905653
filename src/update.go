package src

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
	"github.com/Protocol-Lattice/lattice-tutor/src/ui"
)

// quizRowHeight approximates the lines one unrevealed question occupies.
const quizRowHeight = 6

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case refreshMsg:
		m.refresh()
		return m, nil

	case requestDoneMsg:
		m.finish(msg)
		return m, nil

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = -1
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if md, err := ui.NewMarkdown(m.width-4, markdownStyle); err == nil {
			m.markdown = md
		}
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		active := m.session.Active()

		switch msg.String() {
		case "tab":
			return m, m.activate(active.Next())
		case "shift+tab":
			return m, m.activate(active.Prev())
		case "ctrl+t":
			m.openPicker()
			return m, nil
		case "ctrl+l":
			t, ok := m.session.SetLanguage(tutor.NextLanguage(m.session.Language()))
			m.refresh()
			if ok {
				return m, m.start(t)
			}
			return m, nil
		case "ctrl+n":
			m.selectBlock(1)
			return m, nil
		case "ctrl+p":
			m.selectBlock(-1)
			return m, nil
		case "ctrl+y":
			return m, m.copyBlock()
		case "ctrl+e":
			return m, m.explainBlock()
		}

		switch active {
		case tutor.ModeExplain, tutor.ModeGenerate:
			return m.updateInput(active, msg)
		case tutor.ModeQuiz:
			return m.updateQuiz(msg)
		default:
			if msg.String() == "r" {
				m.resetView()
				return m, m.start(m.session.Begin(active))
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) updateInput(mode tutor.Mode, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.session.SetInput(mode, m.textarea.Value())
		t, err := m.session.Submit(mode)
		if err != nil {
			m.notice = "Type something first."
			return m, nil
		}
		m.notice = ""
		m.resetView()
		return m, m.start(t)
	case "ctrl+r":
		m.session.Clear(mode)
		m.textarea.Reset()
		m.resetView()
		m.refresh()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.session.SetInput(mode, m.textarea.Value())
	return m, cmd
}

func (m *model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	loading := snap.Mode(tutor.ModeQuiz).Loading()

	switch key := msg.String(); key {
	case "g":
		if loading {
			return m, nil
		}
		return m, m.newQuiz()
	case "enter":
		if loading || len(snap.Quiz) == 0 {
			return m, nil
		}
		if snap.Revealed {
			return m, m.newQuiz()
		}
		m.session.Reveal()
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.followCursor()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(snap.Quiz)-1 {
			m.cursor++
			m.followCursor()
		}
		return m, nil
	case "1", "2", "3", "4":
		if m.cursor >= len(snap.Quiz) {
			return m, nil
		}
		i := int(key[0] - '1')
		if item := snap.Quiz[m.cursor]; i < len(item.Options) && m.session.Answer(m.cursor, item.Options[i]) {
			if m.cursor < len(snap.Quiz)-1 {
				m.cursor++
				m.followCursor()
			}
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) newQuiz() tea.Cmd {
	m.cursor = 0
	m.resetView()
	return m.start(m.session.Begin(tutor.ModeQuiz))
}

func (m *model) followCursor() {
	m.refresh()
	if !m.session.Snapshot().Revealed {
		m.viewport.SetYOffset(m.cursor * quizRowHeight)
	}
}

func (m *model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.topics.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			m.picking = false
			return m, nil
		case "enter":
			m.picking = false
			item, ok := m.topics.SelectedItem().(topicItem)
			if !ok {
				return m, nil
			}
			t, changed := m.session.SelectTopic(item.topic)
			if !changed {
				return m, nil
			}
			m.cursor = 0
			m.loadInput()
			m.resetView()
			m.layout()
			return m, m.start(t)
		}
	}
	var cmd tea.Cmd
	m.topics, cmd = m.topics.Update(msg)
	return m, cmd
}

func (m *model) openPicker() {
	m.picking = true
	current := m.session.Topic()
	for i, item := range m.topics.Items() {
		if ti, ok := item.(topicItem); ok && ti.topic == current {
			m.topics.Select(i)
			break
		}
	}
}

// activate switches tabs, fetching project ideas on their first visit.
func (m *model) activate(mode tutor.Mode) tea.Cmd {
	t, fetch := m.session.Activate(mode)
	m.loadInput()
	m.resetView()
	m.layout()
	if fetch {
		return m.start(t)
	}
	m.refresh()
	return nil
}

// loadInput shows the active mode's draft in the textarea.
func (m *model) loadInput() {
	snap := m.session.Snapshot()
	if !snap.Active.TakesInput() {
		m.textarea.Blur()
		return
	}
	m.textarea.SetValue(snap.Current().Input)
	m.textarea.Focus()
}

func (m *model) resetView() {
	m.block = 0
	m.copied = -1
	m.notice = ""
	m.viewport.GotoTop()
}

// refresh re-renders the active mode's buffer into the viewport.
func (m *model) refresh() {
	snap := m.session.Snapshot()
	if snap.Active == tutor.ModeQuiz {
		m.blocks = nil
		m.viewport.SetContent(ui.RenderQuiz(snap, m.cursor, m.style))
		return
	}
	st := snap.Current()
	m.blocks = ui.BlocksFor(snap.Active, st.Text, snap.Language)
	if m.block >= len(m.blocks) {
		m.block = 0
	}
	m.viewport.SetContent(ui.Output(snap.Active, st.Text, snap.Language, m.markdown))
}

// layout sizes the components around the header and footer.
func (m *model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	state := m.state()
	headerHeight := lipgloss.Height(ui.RenderHeader(state, m.style))
	footerHeight := lipgloss.Height(ui.RenderFooter(state, m.style))
	hPad := m.style.List.GetHorizontalFrameSize()

	m.topics.SetSize(m.width-hPad, m.height-headerHeight-footerHeight-2)
	m.textarea.SetWidth(m.width - m.style.Textarea.GetHorizontalFrameSize())
	m.viewport.Width = m.width

	used := headerHeight + footerHeight + 2 // error line and code strip
	if m.session.Active().TakesInput() {
		used += m.textarea.Height() + m.style.Textarea.GetVerticalFrameSize() + 1
	}
	m.viewport.Height = max(3, m.height-used)
}
