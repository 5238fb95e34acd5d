package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the expiry at the start of every minute.
const DefaultExpirySchedule = "0 * * * * *"

const defaultExpiryBatchSize = 100

// StaleOrderExpirer cancels unpaid orders created before a cutoff.
type StaleOrderExpirer interface {
	ExpireStale(ctx context.Context, createdBefore time.Time, batchSize int) (int, error)
}

// OrderExpiryJob cancels orders that stayed Pending with payment Pending for
// longer than the configured TTL.
type OrderExpiryJob struct {
	expirer   StaleOrderExpirer
	schedule  string
	ttl       time.Duration
	batchSize int
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderExpiryJob creates the job. An empty schedule means DefaultExpirySchedule.
func NewOrderExpiryJob(
	expirer StaleOrderExpirer, schedule string, ttl time.Duration, logger *slog.Logger,
) *OrderExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &OrderExpiryJob{
		expirer:   expirer,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: defaultExpiryBatchSize,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_expiry_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started",
		"schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// RunOnce expires one batch. Errors are logged; a partially failed batch
// still reports the orders it did expire.
func (j *OrderExpiryJob) RunOnce(ctx context.Context) {
	cutoff := j.now().UTC().Add(-j.ttl)

	expired, err := j.expirer.ExpireStale(ctx, cutoff, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry job failed", "expired", expired, "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired stale orders", "expired", expired, "cutoff", cutoff)
	}
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *OrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
