package ui

import (
	"github.com/adriangreen/todo-tui/internal/tasks"
)

const cursorMark = "->"

// RowRenderer turns a task into one line of the task list
type RowRenderer interface {
	RenderRow(t tasks.Task, selected bool, width int) string
}

// DefaultRowRenderer draws "-> [x] description" rows
type DefaultRowRenderer struct {
	Styles *Styles
}

// RenderRow implements RowRenderer
func (r DefaultRowRenderer) RenderRow(t tasks.Task, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = r.Styles.Cursor.Render(cursorMark)
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	// cursor + space + check + space
	textWidth := max(width-len(cursorMark)-len(check)-2, 1)
	text := r.Styles.taskStyle(t.Completed, selected).MaxWidth(textWidth).Render(t.Description)

	return cursor + " " + check + " " + text
}
