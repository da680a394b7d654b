package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adriangreen/todo-tui/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// newLogger returns a text logger for one-shot commands; only warnings are shown unless debug is on
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newTUILogger returns the logger used while the full-screen UI owns the terminal.
// With debug on it appends to the log file, otherwise everything is discarded.
func newTUILogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if !cfg.Debug {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "todo")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f.Close, nil
}
