package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title         lipgloss.Style
	Header        lipgloss.Style
	Subtitle      lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	List          lipgloss.Style
	ListHeader    lipgloss.Style
	Textarea      lipgloss.Style
	Help          lipgloss.Style
	Footer        lipgloss.Style
	Accent        lipgloss.Style
	Error         lipgloss.Style
	Success       lipgloss.Style
	Thinking      lipgloss.Style
	Status        lipgloss.Style
	Block         lipgloss.Style
	BlockSelected lipgloss.Style
	Option        lipgloss.Style
	OptionChosen  lipgloss.Style
	OptionCorrect lipgloss.Style
	OptionWrong   lipgloss.Style
	Subtle        lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555")).
			Faint(true).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Background(lipgloss.Color("#AD8CFF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1),

		List: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#AD8CFF")),

		ListHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")).
			Bold(true).
			Padding(0, 1),

		Textarea: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#AD8CFF")),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")).
			Faint(true),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5C5C")).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3DDC97")).
			Bold(true),

		Thinking: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3DDC97")),

		Status: lipgloss.NewStyle().
			Background(lipgloss.Color("#AD8CFF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		Block: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1),

		BlockSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E6B8")).
			Bold(true).
			Padding(0, 1),

		Option: lipgloss.NewStyle().
			PaddingLeft(4),

		OptionChosen: lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#00E6B8")).
			Bold(true),

		OptionCorrect: lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#3DDC97")).
			Bold(true),

		OptionWrong: lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FF5C5C")).
			Strikethrough(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")),
	}
}
