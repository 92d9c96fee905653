package src

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/ui"
)

func (m *model) selectBlock(delta int) {
	if len(m.blocks) == 0 {
		return
	}
	m.block = (m.block + delta + len(m.blocks)) % len(m.blocks)
}

// copyBlock puts the selected block on the clipboard and schedules the
// confirmation to clear itself.
func (m *model) copyBlock() tea.Cmd {
	if m.block >= len(m.blocks) {
		return nil
	}
	if err := m.copy(m.blocks[m.block].Body); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		m.notice = fmt.Sprintf("Copy failed: %v", err)
		return nil
	}
	m.notice = ""
	m.copied = m.block
	m.copySeq++
	seq := m.copySeq
	return tea.Tick(ui.CopyConfirmation, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// explainBlock sends the selected block to the code explainer.
func (m *model) explainBlock() tea.Cmd {
	if m.block >= len(m.blocks) || !ui.Explainable(m.session.Active()) {
		return nil
	}
	t := m.session.ExplainSnippet(m.blocks[m.block].Body)
	m.loadInput()
	m.resetView()
	return m.start(t)
}
