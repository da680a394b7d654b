package ui

import (
	"github.com/adriangreen/todo-tui/internal/app"
	tea "github.com/charmbracelet/bubbletea"
)

// toKey converts a Bubble Tea key press into the controller's key model
func toKey(msg tea.KeyMsg) app.Key {
	if msg.Alt {
		return app.Key{Code: app.KeyOther, Text: msg.String()}
	}

	switch msg.Type {
	case tea.KeyRunes:
		return app.Runes(string(msg.Runes))
	case tea.KeySpace:
		return app.Key{Code: app.KeySpace}
	case tea.KeyEnter:
		return app.Key{Code: app.KeyEnter}
	case tea.KeyEsc:
		return app.Key{Code: app.KeyEsc}
	case tea.KeyBackspace:
		return app.Key{Code: app.KeyBackspace}
	case tea.KeyUp:
		return app.Key{Code: app.KeyUp}
	case tea.KeyDown:
		return app.Key{Code: app.KeyDown}
	case tea.KeyCtrlC:
		return app.Key{Code: app.KeyCtrlC}
	default:
		return app.Key{Code: app.KeyOther, Text: msg.String()}
	}
}
