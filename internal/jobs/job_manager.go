package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *slog.Logger
}

// NewJobManager builds the manager. The partner assignment job is registered
// only when retrySchedule is set; an empty schedule keeps unmatched orders
// waiting until the shop accepts them again.
func NewJobManager(
	assignHandler AssignPartnerHandler,
	retrySchedule string,
	batchSize int,
	logger *slog.Logger,
) *JobManager {
	if logger == nil {
		logger = slog.Default()
	}
	jm := &JobManager{logger: logger.With("component", "job_manager")}

	if retrySchedule != "" {
		jm.jobs = append(jm.jobs, NewPartnerAssignmentJob(assignHandler, retrySchedule, batchSize, logger))
	} else {
		jm.logger.InfoContext(context.Background(), "Partner assignment job disabled")
	}

	return jm
}

// Jobs returns the registered jobs.
func (jm *JobManager) Jobs() []Job {
	return jm.jobs
}

// StartAll starts every registered job. If one fails, the ones already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
