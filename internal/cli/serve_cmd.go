package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sprout/internal/api"
	"github.com/alexanderramin/sprout/internal/scheduler"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the midnight task generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if addr == "" {
				addr = app.Config.Server.Addr
			}
			srv := api.New(addr, api.Services{
				Users:      app.Users,
				Journals:   app.Journals,
				Goals:      app.Goals,
				Tasks:      app.Tasks,
				Dashboard:  app.Dashboard,
				Generation: app.Generation,
			}, app.Location, app.Logger)

			errChan := make(chan error, 1)
			srv.Start(errChan)

			schedDone := make(chan struct{})
			if app.Config.Scheduler.Enabled && !noScheduler {
				sched := app.NewScheduler(scheduler.SystemClock{}, app.Logger)
				go func() {
					defer close(schedDone)
					_ = sched.Run(ctx)
				}()
			} else {
				close(schedDone)
				app.Logger.Info("scheduler disabled")
			}

			var runErr error
			select {
			case <-ctx.Done():
				app.Logger.Info("shutting down")
			case runErr = <-errChan:
			}
			cancel()

			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				runErr = errors.Join(runErr, fmt.Errorf("shutting down api: %w", err))
			}
			<-schedDone
			return runErr
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr)")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Do not run the midnight generator")
	return cmd
}
