package src

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// start runs t on a goroutine and keeps the spinner moving until it ends.
func (m *model) start(t tutor.Ticket) tea.Cmd {
	m.refresh()
	ctx, session, backend := m.ctx, m.session, m.backend
	run := func() tea.Msg {
		err := tutor.Run(ctx, session, backend, t, m.notify)
		return requestDoneMsg{ticket: t, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *model) notify() {
	if m.Program != nil {
		m.Program.Send(refreshMsg{})
	}
}

func (m *model) finish(msg requestDoneMsg) {
	log := m.log.With(zap.String("mode", msg.ticket.Mode.Slug()), zap.Uint64("generation", msg.ticket.Generation))
	switch {
	case msg.err == nil:
		log.Debug("request settled")
	case errors.Is(msg.err, tutor.ErrStale):
		log.Debug("stale request dropped")
	default:
		log.Warn("request failed", zap.Error(msg.err))
	}
	m.refresh()
}

func (m *model) anyLoading() bool {
	snap := m.session.Snapshot()
	for _, mode := range tutor.Modes() {
		if snap.Mode(mode).Loading() {
			return true
		}
	}
	return false
}
