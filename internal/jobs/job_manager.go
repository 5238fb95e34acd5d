package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

type scheduledJob interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  scheduledJob
}

// JobManager starts and stops the background jobs of the ordering service.
// Jobs start in registration order and stop in reverse.
type JobManager struct {
	jobs    []namedJob
	started int
}

func NewJobManager(
	expirer StaleOrderExpirer,
	expirySchedule string,
	pendingTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return newJobManager(
		namedJob{name: "order expiry", job: NewOrderExpiryJob(expirer, expirySchedule, pendingTTL, logger)},
	)
}

func newJobManager(jobs ...namedJob) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job. If one fails, the jobs already running are
// stopped before the error is returned.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started++
	}

	return nil
}

// StopAll stops the running jobs and waits for in-flight runs to finish.
func (jm *JobManager) StopAll() {
	for ; jm.started > 0; jm.started-- {
		jm.jobs[jm.started-1].job.Stop()
	}
}
