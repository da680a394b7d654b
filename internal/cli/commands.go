package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adriangreen/todo-tui/internal/tasks"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

const (
	msgNoTasks  = "No tasks yet"
	msgNotFound = "No such task found"
)

func newListCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store, err := s.loadStore(s.file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if store.Len() == 0 {
				fmt.Fprintln(out, msgNoTasks)
				return nil
			}
			if plain {
				printPlain(out, store)
				return nil
			}
			printTable(out, store)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, `print "id == description == status" lines instead of a table`)
	return cmd
}

// printPlain prints one "id == description == status" line per task
func printPlain(w io.Writer, store *tasks.Store) {
	for _, t := range store.All() {
		fmt.Fprintf(w, "%d == %s == %s\n", t.ID, t.Description, t.StatusLabel())
	}
}

// printTable prints the tasks as an aligned table
func printTable(w io.Writer, store *tasks.Store) {
	bold := color.New(color.Bold)
	done := color.New(color.FgGreen)
	pending := color.New(color.FgYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Status"), bold.Sprint("Description"))
	for _, t := range store.All() {
		status := pending.Sprint("pending")
		if t.Completed {
			status = done.Sprint("completed")
		}
		tbl.AddRow(t.ID, status, t.Description)
	}
	tbl.RightAlign(0)

	fmt.Fprintln(w, tbl)
}

func newAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add [description...]",
		Short: "Add a new task",
		Example: `  todo add -d "buy milk"
  todo add walk the dog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if description == "" {
				description = strings.Join(args, " ")
			}
			if tasks.IsBlank(description) {
				return errors.New("task description cannot be empty")
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store, err := s.loadStore(s.file)
			if err != nil {
				return err
			}

			t, _ := store.Add(description)
			if err := s.file.Save(store.Tasks()); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			s.logger.Debug("task added", "id", t.ID)

			fmt.Fprintln(cmd.OutOrStdout(), "Added new task successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the task")
	return cmd
}

func newRemoveCommand() *cobra.Command {
	var id int32

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return updateTask(cmd, tasks.ID(id), func(store *tasks.Store, id tasks.ID) (string, bool) {
				if !store.Remove(id) {
					return "", false
				}
				return fmt.Sprintf("Removed task %d", id), true
			})
		},
	}

	cmd.Flags().Int32VarP(&id, "id", "i", 0, "id of the task to remove")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newToggleCommand() *cobra.Command {
	var id int32

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Flip a task between pending and completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return updateTask(cmd, tasks.ID(id), func(store *tasks.Store, id tasks.ID) (string, bool) {
				if _, found := store.Toggle(id); !found {
					return "", false
				}
				t, _ := store.Get(id)
				return fmt.Sprintf("Task %d is now a %s", id, t.StatusLabel()), true
			})
		},
	}

	cmd.Flags().Int32VarP(&id, "id", "i", 0, "id of the task to toggle")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// updateTask loads the store, applies change and saves when the task was found
func updateTask(cmd *cobra.Command, id tasks.ID, change func(*tasks.Store, tasks.ID) (string, bool)) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !s.file.Exists() {
		fmt.Fprintln(out, msgNotFound)
		return nil
	}

	store, err := s.loadStore(s.file)
	if err != nil {
		return err
	}

	msg, ok := change(store, id)
	if !ok {
		fmt.Fprintln(out, msgNotFound)
		return nil
	}
	if err := s.file.Save(store.Tasks()); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}

	fmt.Fprintln(out, msg)
	return nil
}

func newCleanCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all the existing tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, "Are you sure you want to delete all tasks?(y/n)")
				answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read answer: %w", err)
				}
				if strings.TrimSpace(answer) != "y" {
					return nil
				}
			}

			if err := s.file.Clean(); err != nil {
				return fmt.Errorf("failed to remove tasks: %w", err)
			}
			fmt.Fprintln(out, "All tasks removed successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
