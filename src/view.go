package src

import "github.com/Protocol-Lattice/lattice-tutor/src/ui"

func (m *model) View() string {
	return ui.Render(m.state(), m.style)
}

func (m *model) state() ui.State {
	return ui.State{
		Session:       m.session.Snapshot(),
		PickingTopic:  m.picking,
		Blocks:        m.blocks,
		SelectedBlock: m.block,
		CopiedBlock:   m.copied,
		Notice:        m.notice,
		Topics:        m.topics,
		TextArea:      m.textarea,
		Viewport:      m.viewport,
		Spinner:       m.spinner,
	}
}
