package otel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config describes where the palindrome service sends its telemetry.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Exporter       string    // ExporterStdout or ExporterOTLP
	Insecure       bool      // plain HTTP for OTLP
	Output         io.Writer // stdout exporter destination; nil means os.Stdout
}

// Providers owns the SDK providers installed by Setup.
type Providers struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// Shutdown flushes buffered spans and metrics and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		wrapErr("tracer shutdown", p.tracer.Shutdown(ctx)),
		wrapErr("meter shutdown", p.meter.Shutdown(ctx)),
	)
}

// Setup installs global tracer and meter providers plus W3C propagation.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	spans, metrics, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otel resource: %w", err)
	}

	p := &Providers{
		tracer: sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(spans),
		),
		meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics)),
		),
	}

	otel.SetTracerProvider(p.tracer)
	otel.SetMeterProvider(p.meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

// newExporters builds the span and metric exporters for one backend.
func newExporters(ctx context.Context, cfg Config) (sdktrace.SpanExporter, sdkmetric.Exporter, error) {
	switch cfg.Exporter {
	case ExporterStdout:
		traceOpts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		var metricOpts []stdoutmetric.Option
		if cfg.Output != nil {
			traceOpts = append(traceOpts, stdouttrace.WithWriter(cfg.Output))
			metricOpts = append(metricOpts, stdoutmetric.WithWriter(cfg.Output))
		}

		spans, err := stdouttrace.New(traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("stdout span exporter: %w", err)
		}
		metrics, err := stdoutmetric.New(metricOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("stdout metric exporter: %w", err)
		}
		return spans, metrics, nil

	case ExporterOTLP:
		var traceOpts []otlptracehttp.Option
		var metricOpts []otlpmetrichttp.Option
		if cfg.Insecure {
			traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
			metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
		}

		spans, err := otlptracehttp.New(ctx, traceOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("otlp span exporter: %w", err)
		}
		metrics, err := otlpmetrichttp.New(ctx, metricOpts...)
		if err != nil {
			_ = spans.Shutdown(ctx)
			return nil, nil, fmt.Errorf("otlp metric exporter: %w", err)
		}
		return spans, metrics, nil
	}

	return nil, nil, fmt.Errorf("unsupported exporter %q (use %q or %q)", cfg.Exporter, ExporterStdout, ExporterOTLP)
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
