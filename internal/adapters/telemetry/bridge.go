package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/quire/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor by reporting span lifecycles to
// the debug log.
type LogBridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(fmt.Sprintf("span %s started: %s", s.SpanContext().SpanID(), s.Name()))
}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	elapsed := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		b.logger.Debug(fmt.Sprintf("span %s failed after %s: %s: %s",
			s.SpanContext().SpanID(), elapsed, s.Name(), s.Status().Description))
		return
	}
	b.logger.Debug(fmt.Sprintf("span %s finished after %s: %s", s.SpanContext().SpanID(), elapsed, s.Name()))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}
