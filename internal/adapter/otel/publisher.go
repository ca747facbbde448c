package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dariasel12/palindrome-project/internal/domain"
)

// TracingPublisher records a producer span per entry event and counts
// publish attempts by event type and outcome.
type TracingPublisher struct {
	next      domain.EventPublisher
	tracer    trace.Tracer
	published metric.Int64Counter
}

// Compile-time check: TracingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*TracingPublisher)(nil)

func NewTracingPublisher(next domain.EventPublisher) (*TracingPublisher, error) {
	published, err := otel.Meter(instrumentationName).Int64Counter("entry.events.published",
		metric.WithDescription("Entry events handed to the event publisher."),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return &TracingPublisher{
		next:      next,
		tracer:    otel.Tracer(instrumentationName),
		published: published,
	}, nil
}

func (p *TracingPublisher) Publish(ctx context.Context, event domain.Event, entry domain.Entry) error {
	eventAttr := attribute.String("event.type", string(event))

	ctx, span := p.tracer.Start(ctx, "publish "+string(event),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			eventAttr,
			attribute.String("entry.id", entry.ID),
			attribute.Int("entry.length", len(entry.Result)),
			attribute.Bool("entry.palindrome", domain.IsPalindrome(entry.Result)),
		),
	)
	defer span.End()

	outcome := "ok"
	err := p.next.Publish(ctx, event, entry)
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	p.published.Add(ctx, 1, metric.WithAttributes(eventAttr, attribute.String("outcome", outcome)))
	return err
}
