package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adriangreen/todo-tui/internal/app"
	"github.com/adriangreen/todo-tui/internal/config"
	"github.com/adriangreen/todo-tui/internal/storage"
	"github.com/adriangreen/todo-tui/internal/tasks"
	"github.com/adriangreen/todo-tui/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runTUI starts the Bubble Tea TUI application
func runTUI(cmd *cobra.Command, _ []string) error {
	// Interrupt signals end the session without saving
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configManager, err := config.NewConfigManager(configOptions(cmd), nil)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := configManager.GetConfig()

	logger, closeLog, err := newTUILogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	configManager.SetLogger(logger)

	file := &storage.CSVFile{Path: cfg.DataPath()}
	seed, err := file.Load()
	if err != nil {
		// Not fatal: the session starts with an empty list
		logger.Warn("failed to load tasks", "path", file.Path, "err", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load tasks: %v\n", err)
		seed = nil
	}
	logger.Info("session started", "tasks", len(seed), "data", file.Path)

	store := tasks.NewStore(newIDGenerator(cfg), seed)
	ctrl := app.NewController(store, app.NewKeyMap(cfg.KeyBindings), logger)

	if err := configManager.StartWatcher(ctx); err != nil {
		// Watching is optional; the session just keeps its key bindings
		logger.Debug("config watcher not started", "err", err)
	}
	defer configManager.StopWatcher()

	p := tea.NewProgram(ui.NewModel(ctrl, configManager, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Warn("session interrupted, tasks not saved")
			fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted, changes were not saved")
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return saveSession(file, final, store, logger)
}

// saveSession writes the store back when the user confirmed the exit prompt
func saveSession(repo repository, final tea.Model, store *tasks.Store, logger *slog.Logger) error {
	m, ok := final.(ui.Model)
	if !ok || !m.Confirmed() {
		return nil
	}
	if err := repo.Save(store.Tasks()); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	logger.Info("session saved", "tasks", store.Len())
	return nil
}
