package app

import (
	"log/slog"
	"unicode/utf8"

	"github.com/adriangreen/todo-tui/internal/tasks"
	"github.com/charmbracelet/bubbles/key"
)

// Outcome tells the event loop whether to keep running
type Outcome int

const (
	// Continue keeps the session running
	Continue Outcome = iota
	// Terminate ends the session; the caller persists the store
	Terminate
)

// Controller routes key presses to the current mode and applies them to the task store.
// Every transition is a total function of (mode, key): unmatched keys are ignored
// and references to missing tasks are no-ops.
type Controller struct {
	store  *tasks.Store
	keys   KeyMap
	mode   Mode
	status string
	logger *slog.Logger
}

// NewController creates a controller in Browsing mode with nothing highlighted
func NewController(store *tasks.Store, keys KeyMap, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store.ClearSelection()
	return &Controller{
		store:  store,
		keys:   keys,
		mode:   Browsing{},
		logger: logger,
	}
}

// Mode returns the active mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// Store returns the task store driven by the controller
func (c *Controller) Store() *tasks.Store {
	return c.store
}

// KeyMap returns the active bindings
func (c *Controller) KeyMap() KeyMap {
	return c.keys
}

// SetKeyMap replaces the bindings, e.g. after the config file changed
func (c *Controller) SetKeyMap(keys KeyMap) {
	c.keys = keys
}

// Status returns a short description of the last action, if any
func (c *Controller) Status() string {
	return c.status
}

// Highlighted returns the highlighted position while browsing
func (c *Controller) Highlighted() (int, bool) {
	return c.store.Selected()
}

// Scroll returns the first visible row while browsing
func (c *Controller) Scroll() int {
	return c.store.Scroll()
}

// Handle applies one key press
func (c *Controller) Handle(k Key) Outcome {
	switch m := c.mode.(type) {
	case Browsing:
		c.handleBrowsing(k)
	case Composing:
		c.handleComposing(m, k)
	case ConfirmingExit:
		return c.handleConfirmingExit(k)
	}
	return Continue
}

func (c *Controller) switchMode(next Mode) {
	if c.mode.Name() != next.Name() {
		c.logger.Debug("mode change", "from", c.mode.Name(), "to", next.Name())
	}
	c.mode = next
}

// handleBrowsing manages all the events of the browsing mode
func (c *Controller) handleBrowsing(k Key) {
	switch {
	case key.Matches(k, c.keys.Quit):
		c.switchMode(ConfirmingExit{})

	case key.Matches(k, c.keys.New):
		c.status = ""
		c.switchMode(Composing{})

	case key.Matches(k, c.keys.Delete):
		idx, ok := c.store.Selected()
		if !ok {
			return
		}
		if t, found := c.store.At(idx); found && c.store.RemoveAt(idx) {
			c.status = "Task removed"
			c.logger.Debug("task removed", "id", t.ID, "index", idx)
		}

	case key.Matches(k, c.keys.Down):
		c.store.MoveSelection(tasks.Down)

	case key.Matches(k, c.keys.Up):
		c.store.MoveSelection(tasks.Up)

	case key.Matches(k, c.keys.Edit):
		idx, ok := c.store.Selected()
		if !ok {
			return
		}
		t, found := c.store.At(idx)
		if !found {
			return
		}
		c.status = ""
		c.switchMode(Composing{Buffer: t.Description, Index: idx, Editing: true})

	case key.Matches(k, c.keys.Toggle):
		idx, ok := c.store.Selected()
		if !ok {
			return
		}
		completed, found := c.store.ToggleAt(idx)
		if !found {
			return
		}
		if completed {
			c.status = "Marked complete"
		} else {
			c.status = "Marked pending"
		}
	}
}

// handleComposing manages all the events of the composing mode
func (c *Controller) handleComposing(m Composing, k Key) {
	switch {
	case key.Matches(k, c.keys.Cancel):
		c.switchMode(Browsing{})

	case key.Matches(k, c.keys.Submit):
		if tasks.IsBlank(m.Buffer) {
			return
		}
		// Edited tasks are replaced by a new task at the newest position.
		// The replacement is added before the old task goes away so it can
		// never draw the identifier being retired.
		var replaced *tasks.Task
		if idx, editing := m.EditIndex(); editing {
			if old, found := c.store.At(idx); found {
				replaced = &old
			}
		}
		t, _ := c.store.Add(m.Buffer)
		if replaced != nil {
			c.store.Remove(replaced.ID)
		}
		c.store.ResetSelection()
		if m.Editing {
			c.status = "Task updated"
		} else {
			c.status = "Task added"
		}
		c.logger.Debug("task saved", "id", t.ID, "edited", m.Editing)
		c.switchMode(Browsing{})

	case key.Matches(k, c.keys.Backspace):
		if m.Buffer == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(m.Buffer)
		m.Buffer = m.Buffer[:len(m.Buffer)-size]
		c.mode = m

	default:
		if text, ok := k.printable(); ok {
			m.Buffer += text
			c.mode = m
		}
	}
}

// handleConfirmingExit manages all the events of the exit confirmation
func (c *Controller) handleConfirmingExit(k Key) Outcome {
	switch {
	case key.Matches(k, c.keys.ConfirmExit):
		c.logger.Debug("exit confirmed")
		return Terminate
	case key.Matches(k, c.keys.CancelExit):
		c.switchMode(Browsing{})
	}
	return Continue
}
