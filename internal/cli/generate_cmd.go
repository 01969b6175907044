package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/alexanderramin/sprout/internal/generation"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var date dateValue
	var all, replace bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a task batch (tomorrow by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				report, err := app.Generation.GenerateForAllUsers(ctx, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Generated tasks for %d of %d active users for %s (%d skipped, %d fallback)\n",
					report.Generated, report.Users, report.TargetDate, report.Skipped, report.Fallbacks)
				for _, f := range report.Failures {
					fmt.Fprintf(out, "  %s %s: %v\n", formatter.StyleRed.Render("failed"), f.UserID, f.Err)
				}
				if len(report.Failures) > 0 {
					return fmt.Errorf("%d users failed", len(report.Failures))
				}
				return nil
			}

			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Generating tasks...")
			}
			res, err := app.Generation.GenerateForUser(ctx, service.GenerateRequest{
				UserID:          u.ID,
				TargetDate:      date.String(),
				ReplaceExisting: replace,
			})
			stop()
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintf(out, "Nothing to generate for %s: write a journal entry or add a goal first.\n", res.TargetDate)
				return nil
			}
			if res.Source == generation.SourceFallback {
				fmt.Fprintln(out, formatter.StyleYellow.Render("Model unavailable, using the default task set."))
			}
			fmt.Fprintf(out, "Generated %d tasks for user %s\n", len(res.Tasks), u.Name)
			fmt.Fprint(out, formatter.FormatTasks(res.TargetDate, res.Tasks))
			fmt.Fprintln(out)
			return nil
		},
	}

	dateFlag(cmd.Flags(), &date, "Target date YYYY-MM-DD (default tomorrow)")
	cmd.Flags().BoolVar(&all, "all", false, "Generate for every active user")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace tasks already generated for the date")
	cmd.MarkFlagsMutuallyExclusive("all", "date")
	cmd.MarkFlagsMutuallyExclusive("all", "replace")
	return cmd
}
