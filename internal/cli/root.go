package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/adriangreen/todo-tui/internal/config"
	"github.com/adriangreen/todo-tui/internal/storage"
	"github.com/adriangreen/todo-tui/internal/tasks"
	"github.com/spf13/cobra"
)

// repository is the persistence the commands need
type repository interface {
	Load() ([]tasks.Task, error)
	Save([]tasks.Task) error
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "A small task list for the terminal",
		Long: `todo keeps a flat list of tasks in a CSV file under ~/.todo-cli.
Run it without a command to open the interactive list, or use one of the
commands below to change the list from scripts.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTUI,
	}

	cmd.PersistentFlags().String("config", "", "config file (default <data-dir>/config.json or $TODO_CONFIG)")
	cmd.PersistentFlags().String("data-dir", "", "directory holding the task file (default ~/.todo-cli)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newListCommand(),
		newAddCommand(),
		newRemoveCommand(),
		newToggleCommand(),
		newCleanCommand(),
	)

	return cmd
}

// configOptions collects the global flags
func configOptions(cmd *cobra.Command) config.Options {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	dataDir, _ := flags.GetString("data-dir")
	debug, _ := flags.GetBool("debug")
	return config.Options{ConfigFile: configFile, DataDir: dataDir, Debug: debug}
}

// session is what a one-shot command works with
type session struct {
	cfg    *config.Config
	file   *storage.CSVFile
	logger *slog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configOptions(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
	logger.Debug("config loaded", "file", cfg.ConfigFile, "data", cfg.DataPath(), "ids", cfg.IDs)

	return &session{
		cfg:    cfg,
		file:   &storage.CSVFile{Path: cfg.DataPath()},
		logger: logger,
	}, nil
}

// loadStore reads the task file into a store
func (s *session) loadStore(repo repository) (*tasks.Store, error) {
	list, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	s.logger.Debug("tasks loaded", "count", len(list))
	return tasks.NewStore(newIDGenerator(s.cfg), list), nil
}

// newIDGenerator picks the identifier scheme configured by the ids key
func newIDGenerator(cfg *config.Config) tasks.IDGenerator {
	if cfg.IDs == config.IDsSequential {
		return tasks.NewSequentialIDs(1)
	}
	return tasks.NewRandomIDs(uint64(time.Now().UnixNano()))
}
