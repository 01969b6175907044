package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks; interactive checklist in a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, cmd, app)
			if err != nil {
				return err
			}
			if !app.interactive() {
				dash, err := app.Dashboard.Get(ctx, u.ID, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(dash))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			m := newTodayModel(app.Dashboard, app.Tasks, u.ID)
			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
}
