package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Session tutor.Snapshot

	PickingTopic  bool
	Blocks        []CodeBlock
	SelectedBlock int
	CopiedBlock   int
	Notice        string

	// Bubble Tea models
	Topics   list.Model
	TextArea textarea.Model
	Viewport viewport.Model
	Spinner  spinner.Model
}
