package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	cmd.AddCommand(newGoalAddCmd(app), newGoalListCmd(app), newGoalProgressCmd(app))
	return cmd
}

func durationOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("1 month", string(domain.GoalOneMonth)),
		huh.NewOption("3 months", string(domain.GoalThreeMonths)),
		huh.NewOption("6 months", string(domain.GoalSixMonths)),
		huh.NewOption("1 year", string(domain.GoalOneYear)),
	}
}

// goalForm collects the fields not given as flags.
func goalForm(title, description, duration, category *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Placeholder("Run a half marathon").
				Value(title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(description),
			huh.NewSelect[string]().
				Title("Time frame").
				Options(durationOptions()...).
				Value(duration),
			huh.NewInput().
				Title("Category").
				Placeholder("health").
				Value(category),
		),
	).WithTheme(sproutHuhTheme()).WithShowHelp(false)
}

func newGoalAddCmd(app *App) *cobra.Command {
	var title, description, duration, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			if title == "" {
				if !app.interactive() {
					return errors.New("--title is required when not running in a terminal")
				}
				if err := goalForm(&title, &description, &duration, &category).Run(); err != nil {
					return err
				}
			}
			if category == "" {
				category = "personal"
			}
			g := &domain.Goal{
				UserID:   u.ID,
				Title:    title,
				Duration: domain.GoalDuration(duration),
				Category: category,
			}
			if d := strings.TrimSpace(description); d != "" {
				g.Description = &d
			}
			if err := app.Goals.Create(ctx, g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %q (%s)\n", g.Title, g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Goal title")
	cmd.Flags().StringVar(&description, "description", "", "Goal description")
	cmd.Flags().StringVar(&duration, "duration", string(domain.GoalThreeMonths), "1month, 3months, 6months or 1year")
	cmd.Flags().StringVar(&category, "category", "", "Goal category")
	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			goals, err := app.Goals.List(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(goals))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newGoalProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress GOAL_ID PERCENT",
		Short: "Set a goal's progress (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			pct, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
			if err != nil {
				return fmt.Errorf("invalid percent %q", args[1])
			}
			patch := domain.GoalPatch{Progress: &pct}
			if pct == 100 {
				done := domain.GoalCompleted
				patch.Status = &done
			}
			g, err := app.Goals.Update(ctx, u.ID, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", g.Title, formatter.RenderProgress(g.Progress, 20))
			return nil
		},
	}
}
