package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprout/internal/scheduler"
)

// DailyJob is the midnight job: one batch for every active user.
func (c *Container) DailyJob(logger *slog.Logger) scheduler.Job {
	return func(ctx context.Context, now time.Time) error {
		report, err := c.Generation.GenerateForAllUsers(ctx, now)
		if err != nil {
			return err
		}
		for _, f := range report.Failures {
			logger.Error("task generation failed for user", "user_id", f.UserID, "error", f.Err)
		}
		logger.Info(fmt.Sprintf("task generation complete for %d users", report.Users),
			"generated", report.Generated,
			"target_date", report.TargetDate,
			"skipped", report.Skipped,
			"fallbacks", report.Fallbacks,
			"failed", len(report.Failures),
		)
		return nil
	}
}

// NewScheduler wires DailyJob to a midnight scheduler in the container's timezone.
func (c *Container) NewScheduler(clock scheduler.Clock, logger *slog.Logger) *scheduler.Scheduler {
	return scheduler.New(clock, c.Location, c.DailyJob(logger), logger)
}
