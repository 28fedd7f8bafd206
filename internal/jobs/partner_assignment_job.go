package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignPartnerHandler runs one batch of partner matching.
type AssignPartnerHandler interface {
	Handle(ctx context.Context, cmd commands.AssignPartnerCommand) (int, error)
}

// PartnerAssignmentJob retries matching for Accepted orders on a cron
// schedule. A run that is still going when the next tick fires makes the
// tick skip.
type PartnerAssignmentJob struct {
	handler   AssignPartnerHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPartnerAssignmentJob creates the job. schedule is a six-field cron
// expression (seconds first) or a descriptor such as "@every 30s".
func NewPartnerAssignmentJob(
	handler AssignPartnerHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *PartnerAssignmentJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &PartnerAssignmentJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "partner_assignment_job"),
	}
}

func (j *PartnerAssignmentJob) Name() string {
	return "partner assignment"
}

// Start validates the command parameters and the schedule, then starts the cron.
func (j *PartnerAssignmentJob) Start() error {
	cmd, err := commands.NewAssignPartnerCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Partner assignment job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop stops scheduling and waits for a running batch to finish.
func (j *PartnerAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Partner assignment job stopped")
}

func (j *PartnerAssignmentJob) run(cmd commands.AssignPartnerCommand) {
	ctx := context.Background()

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Partner assignment job failed", "error", err)
		return
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Partner assignment job assigned orders", "assigned", assigned)
	}
}
