package events

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
)

// LogPublisher writes events to the application log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, ev := range events {
		p.logger.InfoContext(ctx, "domain event",
			"type", ev.EventName(),
			"aggregate_id", ev.AggregateID().String(),
			"occurred_at", ev.OccurredAt(),
			"payload", ev,
		)
	}
	return nil
}
