package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is the work run at each boundary. now is the boundary that fired, or
// the clock reading for a manual Trigger.
type Job func(ctx context.Context, now time.Time) error

// Scheduler runs Job at every local midnight for the lifetime of the process.
// Nothing is persisted: after a restart the next boundary is computed from now.
type Scheduler struct {
	clock  Clock
	loc    *time.Location
	job    Job
	logger *slog.Logger

	mu sync.Mutex // serialises job runs between Run and Trigger
}

func New(clock Clock, loc *time.Location, job Job, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{clock: clock, loc: loc, job: job, logger: logger}
}

// NextMidnight returns the first midnight in loc strictly after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Run waits for each midnight and runs the job until ctx is cancelled.
// The boundary is recomputed from the clock every cycle, so DST changes and
// slow jobs never accumulate drift. The job receives the boundary that fired.
// Job errors are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	var last time.Time
	for {
		now := s.clock.Now()
		// A clock stepped back past a boundary that already fired must not
		// fire it again.
		from := now
		if from.Before(last) {
			from = last
		}
		next := NextMidnight(from, s.loc)
		s.logger.Info("next task generation scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(next.Sub(now)):
		}

		last = next
		_ = s.runAt(ctx, next)
	}
}

// Trigger runs the job immediately and returns its error.
func (s *Scheduler) Trigger(ctx context.Context) error {
	return s.runAt(ctx, s.clock.Now())
}

func (s *Scheduler) runAt(ctx context.Context, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.job(ctx, start)
	if err != nil {
		s.logger.Error("scheduled task generation failed", "error", err)
		return err
	}
	s.logger.Info("scheduled task generation finished", "started_at", start.Format(time.RFC3339))
	return nil
}
