package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change and
// dispatched after the surrounding unit of work commits.
type DomainEvent interface {
	// EventName is the stable name used as the message type on the wire.
	EventName() string
	// AggregateID identifies the aggregate that recorded the event; brokers
	// use it as the partition key so events of one aggregate stay ordered.
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is implemented by aggregates that record domain events.
type EventRecorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
