package jobs

import (
	"context"
	"log/slog"
	"time"

	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/metrics"

	"github.com/robfig/cron/v3"
)

// StatusGaugeSchedule refreshes the gauge every 15 seconds.
const StatusGaugeSchedule = "*/15 * * * * *"

const statusGaugeTimeout = 10 * time.Second

type StatusCounter interface {
	Handle(ctx context.Context, query queries.GetStatusCountsQuery) ([]queries.StatusCount, error)
}

// StatusGaugeJob publishes the number of bags per status as a Prometheus gauge.
type StatusGaugeJob struct {
	counter StatusCounter
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewStatusGaugeJob(counter StatusCounter, logger *slog.Logger) *StatusGaugeJob {
	return &StatusGaugeJob{
		counter: counter,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_gauge_job"),
	}
}

func (j *StatusGaugeJob) Start() error {
	_, err := j.cron.AddFunc(StatusGaugeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), statusGaugeTimeout)
		defer cancel()

		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Status gauge job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status gauge job started")
	return nil
}

func (j *StatusGaugeJob) RunOnce(ctx context.Context) error {
	counts, err := j.counter.Handle(ctx, queries.NewGetStatusCountsQuery())
	if err != nil {
		return err
	}

	for _, c := range counts {
		metrics.BaggageByStatus.WithLabelValues(c.Status.String()).Set(float64(c.Count))
	}
	return nil
}

func (j *StatusGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status gauge job stopped")
}
