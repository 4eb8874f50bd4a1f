// Package telemetry implements ports.Tracer with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/quire/internal/core/ports"
)

// InstrumentationName names the tracer of the export engine.
const InstrumentationName = "go.trai.ch/quire"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

var _ ports.Tracer = (*OTelTracer)(nil)

// NewOTelTracer creates a tracer backed by its own provider feeding processors.
func NewOTelTracer(name string, processors ...sdktrace.SpanProcessor) *OTelTracer {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	provider := sdktrace.NewTracerProvider(opts...)
	return &OTelTracer{
		provider: provider,
		tracer:   provider.Tracer(name),
	}
}

// Shutdown flushes and stops the provider.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for k, v := range cfg.Attributes {
		attrs = append(attrs, toAttribute(k, v))
	}

	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &OTelSpan{span: span}
}

// EmitPlan adds the planned task identifiers as an event to the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, taskIDs []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tasks", taskIDs),
		))
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err and marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

// Write satisfies io.Writer by adding a log event to the span.
func (s *OTelSpan) Write(p []byte) (int, error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
