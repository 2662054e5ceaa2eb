// Package telemetry sets up OpenTelemetry tracing for loading, rendering
// and interactions.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentation = "happydash"

// Attribute keys used on spans.
const (
	KeyView    = attribute.Key("happydash.view")
	KeyCountry = attribute.Key("happydash.country")
	KeyYear    = attribute.Key("happydash.year")
	KeyAction  = attribute.Key("happydash.action")
	KeyPath    = attribute.Key("happydash.file.path")
)

// Options selects the exporters. Both may be empty, which disables tracing.
type Options struct {
	// OTLPEndpoint is a host:port for OTLP over HTTP.
	OTLPEndpoint string
	// StdoutPath receives spans as JSON lines.
	StdoutPath  string
	ServiceName string
}

// Tracer starts spans and owns the provider that exports them.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	file     *os.File
}

// New builds a Tracer from opts. When no exporter is configured the
// returned Tracer is a no-op.
func New(ctx context.Context, opts Options) (*Tracer, error) {
	if opts.OTLPEndpoint == "" && opts.StdoutPath == "" {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentation)}, nil
	}
	var popts []sdktrace.TracerProviderOption
	t := &Tracer{}

	if opts.OTLPEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(opts.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		popts = append(popts, sdktrace.WithBatcher(exporter))
	}
	if opts.StdoutPath != "" {
		f, err := os.Create(opts.StdoutPath)
		if err != nil {
			return nil, fmt.Errorf("trace file: %w", err)
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		t.file = f
		popts = append(popts, sdktrace.WithBatcher(exporter))
	}
	return t.withProvider(opts.ServiceName, popts...), nil
}

// NewWithExporter builds a Tracer that exports synchronously to exp.
func NewWithExporter(serviceName string, exp sdktrace.SpanExporter) *Tracer {
	t := &Tracer{}
	return t.withProvider(serviceName, sdktrace.WithSyncer(exp))
}

func (t *Tracer) withProvider(serviceName string, popts ...sdktrace.TracerProviderOption) *Tracer {
	if serviceName == "" {
		serviceName = instrumentation
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	popts = append(popts, sdktrace.WithResource(res))
	t.provider = sdktrace.NewTracerProvider(popts...)
	t.tracer = t.provider.Tracer(instrumentation)
	return t
}

// Enabled reports whether spans are exported anywhere.
func (t *Tracer) Enabled() bool {
	return t != nil && t.provider != nil
}

// Start opens a span. A nil Tracer returns a non-recording span.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	if t == nil || t.tracer == nil {
		return noop.NewTracerProvider().Tracer(instrumentation).Start(ctx, name)
	}
	return t.tracer.Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// Shutdown flushes pending spans and closes the exporters.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	err := t.provider.Shutdown(ctx)
	if t.file != nil {
		err = errors.Join(err, t.file.Close())
	}
	return err
}
