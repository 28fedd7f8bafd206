// Package events publishes domain events outside the service: to Kafka when a
// broker is configured, to the application log otherwise.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Envelope is the wire format of a published event.
type Envelope struct {
	Type        string             `json:"type"`
	AggregateID string             `json:"aggregateId"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Payload     kernel.DomainEvent `json:"payload"`
}

func encode(event kernel.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(Envelope{
		Type:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	return data, nil
}
