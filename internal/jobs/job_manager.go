package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	subscriberSweepJob *SubscriberSweepJob
	statusGaugeJob     *StatusGaugeJob
}

func NewJobManager(
	sweeper IdleSweeper,
	idleTimeout time.Duration,
	counter StatusCounter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		subscriberSweepJob: NewSubscriberSweepJob(sweeper, idleTimeout, logger),
		statusGaugeJob:     NewStatusGaugeJob(counter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.subscriberSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start subscriber sweep job: %w", err)
	}

	if err := jm.statusGaugeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.subscriberSweepJob.Stop()
		return fmt.Errorf("failed to start status gauge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.statusGaugeJob.Stop()
	jm.subscriberSweepJob.Stop()
}
