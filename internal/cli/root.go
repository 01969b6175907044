package cli

import (
	"log/slog"

	"github.com/alexanderramin/sprout/internal/app"
	"github.com/alexanderramin/sprout/internal/config"
	"github.com/spf13/cobra"
)

// App holds what the commands need: the wired use cases and the loaded config.
type App struct {
	*app.Container
	Config  *config.Config
	Logger  *slog.Logger
	Version string

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// checklist TUI are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "sprout" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sprout",
		Short:         "Daily growth tracker: journal, goals and generated daily tasks",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Config file (default ./sprout.yaml or ~/.sprout/sprout.yaml)")
	root.PersistentFlags().String("user", "", "User ID (defaults to the configured user)")

	root.AddCommand(
		newServeCmd(app),
		newGenerateCmd(app),
		newUserCmd(app),
		newJournalCmd(app),
		newGoalCmd(app),
		newTaskCmd(app),
		newTodayCmd(app),
		newMCPCmd(app),
	)
	return root
}
