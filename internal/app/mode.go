package app

// Mode is the interaction state of the application.
// Browsing, Composing and ConfirmingExit are the only implementations.
type Mode interface {
	// Name returns the label shown in the status line
	Name() string
	isMode()
}

// Browsing is the default mode: moving through the list and acting on the highlighted task.
// The highlight and scroll offset live in the task store; see Controller.Highlighted.
type Browsing struct{}

// Composing collects text for a new task or a replacement description
type Composing struct {
	Buffer string
	// Index is the position of the task being edited; only meaningful when Editing is set
	Index   int
	Editing bool
}

// ConfirmingExit asks before ending the session
type ConfirmingExit struct{}

func (Browsing) Name() string { return "Browsing" }

func (c Composing) Name() string {
	if c.Editing {
		return "Editing"
	}
	return "Composing"
}

func (ConfirmingExit) Name() string { return "Exiting" }

func (Browsing) isMode()       {}
func (Composing) isMode()      {}
func (ConfirmingExit) isMode() {}

// EditIndex returns the position of the task being replaced, if any
func (c Composing) EditIndex() (int, bool) {
	return c.Index, c.Editing
}
