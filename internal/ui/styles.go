package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorPending   = "#87CEFA" // Light blue
	ColorDone      = "#32CD32" // Lime green
	ColorDanger    = "#DC143C" // Crimson
	ColorBorder    = "#4169E1" // Royal blue
	ColorList      = "#2E8B57" // Sea green
	ColorText      = "#FFFFFF"
	ColorSubtle    = "#666666"
	ColorHighlight = "#00FFFF"
)

// Styles contains all the lipgloss styles for the TUI
type Styles struct {
	// Layout
	Header    lipgloss.Style
	StatusMsg lipgloss.Style
	List      lipgloss.Style
	ListTitle lipgloss.Style
	HelpBar   lipgloss.Style

	// Rows
	TaskSelected   lipgloss.Style
	TaskUnselected lipgloss.Style
	TaskDone       lipgloss.Style
	Cursor         lipgloss.Style

	// Overlays
	Editor      lipgloss.Style
	EditorTitle lipgloss.Style
	Placeholder lipgloss.Style
	Input       lipgloss.Style
	Confirm     lipgloss.Style
	ConfirmText lipgloss.Style

	Subtle lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)),

		StatusMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDone)),

		List: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorList)).
			Padding(0, 1),

		ListTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorList)),

		HelpBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderTop(true).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderForeground(lipgloss.Color(ColorBorder)),

		TaskSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Bold(true),

		TaskUnselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPending)),

		TaskDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)).
			Strikethrough(true),

		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Bold(true),

		Editor: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1),

		EditorTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorBorder)),

		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)),

		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)),

		Confirm: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(ColorDanger)).
			Align(lipgloss.Center).
			Padding(1, 2),

		ConfirmText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)),
	}
}

// taskStyle returns the row style for a task
func (s *Styles) taskStyle(completed, selected bool) lipgloss.Style {
	switch {
	case selected:
		return s.TaskSelected
	case completed:
		return s.TaskDone
	default:
		return s.TaskUnselected
	}
}
