package ui

import (
	"log/slog"
	"strings"

	"github.com/adriangreen/todo-tui/internal/app"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	listTitle        = "Tasks"
	emptyListText    = "Tasks which you add will show up here"
	editorTitle      = "Editing Task"
	editorPrompt     = "Enter your task details"
	exitQuestion     = "Are you sure you want to quit?"
	exitInstructions = "y to quit, n to cancel"
)

// Model is the Bubble Tea model of the interactive task list.
// It owns no task state itself; everything is read from the controller.
type Model struct {
	ctrl    *app.Controller
	config  ConfigSource
	styles  *Styles
	rows    RowRenderer
	help    help.Model
	logger  *slog.Logger
	width   int
	height  int
	ready   bool
	confirm bool
}

// NewModel creates the model around a controller.
// config may be nil when no config file is watched.
func NewModel(ctrl *app.Controller, config ConfigSource, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	styles := NewStyles()

	h := help.New()
	h.ShortSeparator = " | "

	return Model{
		ctrl:   ctrl,
		config: config,
		styles: styles,
		rows:   DefaultRowRenderer{Styles: styles},
		help:   h,
		logger: logger,
	}
}

// WithRowRenderer returns a copy of the model drawing rows with r
func (m Model) WithRowRenderer(r RowRenderer) Model {
	m.rows = r
	return m
}

// Confirmed reports whether the user confirmed the exit prompt.
// Only a confirmed session should be saved.
func (m Model) Confirmed() bool {
	return m.confirm
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.config == nil {
		return nil
	}
	return WaitForConfigReload(m.config)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case ConfigReloadedMsg:
		if m.config == nil {
			return m, nil
		}
		m.ctrl.SetKeyMap(app.NewKeyMap(m.config.KeyBindings()))
		m.logger.Info("key bindings reloaded")

		// Continue listening for next reload
		return m, WaitForConfigReload(m.config)

	case tea.KeyMsg:
		if m.ctrl.Handle(toKey(msg)) == app.Terminate {
			m.confirm = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return m.styles.Subtle.Render("Loading tasks...")
	}

	layout := calculateLayout(m.width, m.height)

	var body string
	switch mode := m.ctrl.Mode().(type) {
	case app.Composing:
		body = m.renderEditor(mode, layout)
	case app.ConfirmingExit:
		body = m.renderExitPrompt(layout)
	default:
		body = m.renderTaskList(layout)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(layout),
		body,
		m.renderHelpBar(layout),
	)
}

// renderHeader shows the current mode and the last action
func (m Model) renderHeader(layout LayoutDimensions) string {
	text := m.ctrl.Mode().Name()
	if status := m.ctrl.Status(); status != "" {
		if _, browsing := m.ctrl.Mode().(app.Browsing); browsing {
			text += " | " + m.styles.StatusMsg.Render(status)
		}
	}
	return m.styles.Header.Width(max(layout.Width-2, 1)).Render(text)
}

// renderTaskList draws the visible slice of the task list
func (m Model) renderTaskList(layout LayoutDimensions) string {
	store := m.ctrl.Store()
	box := m.styles.List.
		Width(max(layout.Width-2, 1)).
		Height(layout.ListRows)

	if store.Len() == 0 {
		return box.Render(m.styles.Subtle.Render(emptyListText))
	}

	selected, hasSelection := m.ctrl.Highlighted()
	start, end := visibleWindow(store.Len(), m.ctrl.Scroll(), selected, hasSelection, layout.ListRows)

	lines := make([]string, 0, end-start)
	for i, t := range store.All() {
		if i < start {
			continue
		}
		if i >= end {
			break
		}
		lines = append(lines, m.rows.RenderRow(t, hasSelection && i == selected, layout.RowWidth))
	}

	title := m.styles.ListTitle.Render(listTitle)
	return lipgloss.JoinVertical(lipgloss.Left, title, box.Render(strings.Join(lines, "\n")))
}

// renderEditor draws the text entry popup
func (m Model) renderEditor(mode app.Composing, layout LayoutDimensions) string {
	content := m.styles.Placeholder.Render(editorPrompt)
	if mode.Buffer != "" {
		content = m.styles.Input.Render(mode.Buffer) + m.styles.Cursor.Render("▏")
	}

	popup := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.EditorTitle.Render(editorTitle),
		m.styles.Editor.Width(layout.PopupWidth).Render(content),
	)
	return lipgloss.Place(layout.Width, layout.BodyHeight, lipgloss.Center, lipgloss.Center, popup)
}

// renderExitPrompt draws the quit confirmation
func (m Model) renderExitPrompt(layout LayoutDimensions) string {
	popup := m.styles.Confirm.Width(layout.PopupWidth).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.EditorTitle.Render(exitQuestion),
			m.styles.ConfirmText.Render(exitInstructions),
		),
	)
	return lipgloss.Place(layout.Width, layout.BodyHeight, lipgloss.Center, lipgloss.Center, popup)
}

// renderHelpBar shows the bindings available in the current mode
func (m Model) renderHelpBar(layout LayoutDimensions) string {
	keys := m.ctrl.KeyMap()

	var bindings []key.Binding
	switch m.ctrl.Mode().(type) {
	case app.Composing:
		bindings = keys.ComposingHelp()
	case app.ConfirmingExit:
		bindings = keys.ConfirmingExitHelp()
	default:
		bindings = keys.BrowsingHelp()
	}

	return m.styles.HelpBar.Width(max(layout.Width, 1)).Render(m.help.ShortHelpView(bindings))
}
