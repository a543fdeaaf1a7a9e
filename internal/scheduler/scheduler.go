// Package scheduler runs the combined sync-then-grade job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/scoresync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner executes one scheduled sync-then-grade pass
type Runner interface {
	RunScheduled(ctx context.Context, now time.Time) (*scoresync.ScheduledRun, error)
}

// Scheduler manages the background sync job
type Scheduler struct {
	runner   Runner
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// NewScheduler creates a scheduler firing schedule in loc. A run that is still
// going when the next tick arrives causes that tick to be skipped.
func NewScheduler(runner Runner, schedule string, loc *time.Location, timeout time.Duration) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		timeout:  timeout,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start registers the job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunNow(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}

	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Scheduled sync registered")
	return nil
}

// RunNow executes one pass immediately and logs its outcome
func (s *Scheduler) RunNow(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	run, err := s.runner.RunScheduled(ctx, start)
	if run == nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Scheduled sync failed")
		return
	}

	ev, msg := log.Info(), "Scheduled sync complete"
	if err != nil {
		ev, msg = log.Error().Err(err), "Scheduled sync finished with errors"
	}
	ev = ev.
		Int("picks_updated", run.PicksUpdated).
		Int("ties_skipped", run.Grading.TiesSkipped).
		Dur("duration", time.Since(start))
	for sport, batch := range run.Results {
		ev = ev.Int(sport+"_synced", batch.Synced).Int(sport+"_skipped", batch.Skipped)
	}
	ev.Msg(msg)
}

// Stop stops the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// cronLogger routes cron's own messages through zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
