package cli

import (
	sproutmcp "github.com/alexanderramin/sprout/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve sprout tools over MCP stdio for the selected user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := resolveUser(cmd.Context(), cmd, app)
			if err != nil {
				return err
			}
			tools := sproutmcp.NewTools(sproutmcp.Services{
				Journals:   app.Journals,
				Tasks:      app.Tasks,
				Dashboard:  app.Dashboard,
				Generation: app.Generation,
			}, u.ID, app.Location)
			return sproutmcp.ServeStdio(sproutmcp.NewServer(app.Version, tools))
		},
	}
}
