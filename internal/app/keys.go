package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyCode classifies a key press
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyRunes
	KeySpace
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyUp
	KeyDown
	KeyCtrlC
)

// Key is a single logical key press delivered to the controller.
// Text carries the typed characters for KeyRunes and the key name for KeyOther.
type Key struct {
	Code KeyCode
	Text string
}

// Runes builds a key press for typed text
func Runes(text string) Key {
	return Key{Code: KeyRunes, Text: text}
}

// String returns the key name understood by key bindings ("q", "enter", "esc", ...)
func (k Key) String() string {
	switch k.Code {
	case KeyRunes:
		return k.Text
	case KeySpace:
		return " "
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyCtrlC:
		return "ctrl+c"
	default:
		return k.Text
	}
}

// printable returns the characters a key contributes to a text buffer
func (k Key) printable() (string, bool) {
	switch k.Code {
	case KeyRunes:
		return k.Text, k.Text != ""
	case KeySpace:
		return " ", true
	default:
		return "", false
	}
}

// KeyMap defines the keybindings of every mode
type KeyMap struct {
	// Browsing
	Quit   key.Binding
	New    key.Binding
	Delete key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding

	// Composing
	Submit    key.Binding
	Cancel    key.Binding
	Backspace key.Binding

	// ConfirmingExit
	ConfirmExit key.Binding
	CancelExit  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		New: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("x", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "mark complete"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit task"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete char"),
		),

		ConfirmExit: key.NewBinding(
			key.WithKeys("y", "q"),
			key.WithHelp("y", "quit"),
		),
		CancelExit: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// NewKeyMap creates a KeyMap from configured bindings, falling back to defaults for missing keys.
// A configured value may list several keys separated by commas, e.g. "q,ctrl+c".
func NewKeyMap(bindings map[string]string) KeyMap {
	km := DefaultKeyMap()
	if len(bindings) == 0 {
		return km
	}

	override := func(name string, target *key.Binding) {
		value, ok := lookup(bindings, name)
		if !ok {
			return
		}
		keys := splitKeys(value)
		if len(keys) == 0 {
			return
		}
		*target = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), target.Help().Desc),
		)
	}

	override("quit", &km.Quit)
	override("new", &km.New)
	override("delete", &km.Delete)
	override("edit", &km.Edit)
	override("toggle", &km.Toggle)
	override("up", &km.Up)
	override("down", &km.Down)
	override("submit", &km.Submit)
	override("cancel", &km.Cancel)
	override("backspace", &km.Backspace)
	override("confirmExit", &km.ConfirmExit)
	override("cancelExit", &km.CancelExit)

	return km
}

// lookup finds a binding by name ignoring case; config loaders may lower-case map keys
func lookup(bindings map[string]string, name string) (string, bool) {
	if v, ok := bindings[name]; ok {
		return v, true
	}
	for k, v := range bindings {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func splitKeys(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, ",") {
		// " " is a valid binding for the space bar
		if part == " " {
			keys = append(keys, part)
			continue
		}
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

// BrowsingHelp returns the bindings shown in the hint line while browsing
func (k KeyMap) BrowsingHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.New, k.Quit, k.Toggle, k.Up, k.Down}
}

// ComposingHelp returns the bindings shown in the hint line while composing
func (k KeyMap) ComposingHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// ConfirmingExitHelp returns the bindings shown in the hint line while confirming exit
func (k KeyMap) ConfirmingExitHelp() []key.Binding {
	return []key.Binding{k.ConfirmExit, k.CancelExit}
}
