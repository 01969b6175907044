package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
)

// taskLookupWindow bounds the prefix search for short task IDs.
const taskLookupWindow = 200

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and complete tasks",
	}
	cmd.AddCommand(newTaskListCmd(app), newTaskDoneCmd(app))
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var date dateValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a date (today by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			d := date.String()
			if d == "" {
				d = domain.Today(time.Now(), app.Location)
			}
			tasks, err := app.Tasks.List(ctx, u.ID, service.TaskQuery{Date: d})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(d, tasks))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	dateFlag(cmd.Flags(), &date, "Date YYYY-MM-DD (default today)")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done TASK_ID",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			id, err := resolveTaskID(ctx, app, u.ID, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.SetCompleted(ctx, u.ID, id, !undo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Checkbox(t.Completed), t.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task not done")
	return cmd
}

// resolveTaskID accepts a full ID or the short prefix shown in listings.
func resolveTaskID(ctx context.Context, app *App, userID, ref string) (string, error) {
	tasks, err := app.Tasks.List(ctx, userID, service.TaskQuery{Limit: taskLookupWindow})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %s: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
