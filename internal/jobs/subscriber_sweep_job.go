package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SubscriberSweepSchedule runs the sweep every 30 seconds.
const SubscriberSweepSchedule = "*/30 * * * * *"

// IdleSweeper drops subscribers that have not been seen since cutoff.
type IdleSweeper interface {
	SweepIdle(cutoff time.Time) int
}

// SubscriberSweepJob deregisters websocket subscribers whose peer stopped
// answering pings. The read loop of a connection normally notices a dead
// peer first; the sweep covers connections stuck in a half-open state.
type SubscriberSweepJob struct {
	sweeper     IdleSweeper
	idleTimeout time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewSubscriberSweepJob(sweeper IdleSweeper, idleTimeout time.Duration, logger *slog.Logger) *SubscriberSweepJob {
	return &SubscriberSweepJob{
		sweeper:     sweeper,
		idleTimeout: idleTimeout,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "subscriber_sweep_job"),
	}
}

func (j *SubscriberSweepJob) Start() error {
	_, err := j.cron.AddFunc(SubscriberSweepSchedule, func() {
		j.RunOnce(context.Background(), time.Now())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job started", "idle_timeout", j.idleTimeout)
	return nil
}

// RunOnce sweeps subscribers idle for longer than the timeout as of now.
func (j *SubscriberSweepJob) RunOnce(ctx context.Context, now time.Time) int {
	removed := j.sweeper.SweepIdle(now.Add(-j.idleTimeout))
	if removed > 0 {
		j.logger.InfoContext(ctx, "Swept idle subscribers", "removed", removed)
	}
	return removed
}

func (j *SubscriberSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Subscriber sweep job stopped")
}
