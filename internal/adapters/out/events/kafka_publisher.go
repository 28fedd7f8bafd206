package events

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "marketplace/events"

// KafkaPublisher produces events to a single topic, keyed by aggregate id so
// that all changes of one order land in one partition in order.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects a producer to brokers.
func NewKafkaPublisher(brokers []string, topic, clientID string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, errs.NewDependencyError("kafka", err)
	}

	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Publish sends all events synchronously and returns the first failure.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "KafkaPublisher.Publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", p.topic),
			attribute.Int("messaging.batch.message_count", len(events)),
		))
	defer span.End()

	headers := traceHeaders(ctx)
	records := make([]*kgo.Record, 0, len(events))
	for _, ev := range events {
		data, err := encode(ev)
		if err != nil {
			span.RecordError(err)
			return err
		}
		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(ev.AggregateID().String()),
			Value: data,
			Headers: append([]kgo.RecordHeader{
				{Key: "type", Value: []byte(ev.EventName())},
			}, headers...),
		})
	}

	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		span.RecordError(err)
		return errs.NewDependencyError("kafka", err)
	}

	return nil
}

// Ping checks that at least one broker answers.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return errs.NewDependencyError("kafka", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// traceHeaders carries the W3C traceparent so consumers can link their spans.
func traceHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	headers := make([]kgo.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, kgo.RecordHeader{Key: key, Value: []byte(carrier.Get(key))})
	}
	return headers
}

