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

const instrumentationName = "github.com/dariasel12/palindrome-project/internal/adapter/otel"

// TracingRepository wraps a domain.EntryRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
// Successful creates also increment the entries.created counter.
type TracingRepository struct {
	next    domain.EntryRepository
	tracer  trace.Tracer
	created metric.Int64Counter
}

// Compile-time check: TracingRepository implements domain.EntryRepository.
var _ domain.EntryRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.EntryRepository) (*TracingRepository, error) {
	created, err := otel.Meter(instrumentationName).Int64Counter("entries.created",
		metric.WithDescription("Number of generated strings persisted."),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &TracingRepository{
		next:    next,
		tracer:  otel.Tracer(instrumentationName),
		created: created,
	}, nil
}

func (r *TracingRepository) Create(ctx context.Context, entry domain.Entry) error {
	ctx, span := r.tracer.Start(ctx, "EntryRepository.Create",
		trace.WithAttributes(
			attribute.String("entry.id", entry.ID),
			attribute.Int("entry.length", len(entry.Result)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	r.created.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("entry.palindrome", domain.IsPalindrome(entry.Result)),
	))
	return nil
}

func (r *TracingRepository) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	ctx, span := r.tracer.Start(ctx, "EntryRepository.GetByID",
		trace.WithAttributes(attribute.String("entry.id", id)),
	)
	defer span.End()

	entry, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return entry, err
}
