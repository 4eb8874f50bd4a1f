package telemetry_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/quire/internal/adapters/telemetry"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", recorder)
	t.Cleanup(func() { _ = tracer.Shutdown(t.Context()) })

	ctx, round := tracer.Start(t.Context(), "Compiling", ports.WithAttribute("quire.round", "r1"))
	tracer.EmitPlan(ctx, []string{"pdf", "png"})

	_, task := tracer.Start(ctx, "pdf", ports.WithAttribute("quire.kind", "export-pdf"))
	task.SetAttribute("quire.size", 42)
	n, err := task.Write([]byte("written"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	task.RecordError(errors.New("disk full"))
	task.RecordError(nil)
	task.End()
	round.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	pdf := spans[0]
	assert.Equal(t, "pdf", pdf.Name())
	assert.Equal(t, codes.Error, pdf.Status().Code)
	assert.Equal(t, "disk full", pdf.Status().Description)
	assert.Contains(t, pdf.Attributes(), attribute.String("quire.kind", "export-pdf"))
	assert.Contains(t, pdf.Attributes(), attribute.Int("quire.size", 42))
	assert.Equal(t, spans[1].SpanContext().SpanID(), pdf.Parent().SpanID())

	compiling := spans[1]
	assert.Contains(t, compiling.Attributes(), attribute.String("quire.round", "r1"))
	require.Len(t, compiling.Events(), 1)
	assert.Equal(t, "plan_emitted", compiling.Events()[0].Name)
}

func TestLogBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var messages []string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		messages = append(messages, msg)
	}).Times(4)

	tracer := telemetry.NewOTelTracer("test", telemetry.NewLogBridge(log))
	t.Cleanup(func() { _ = tracer.Shutdown(t.Context()) })

	_, ok := tracer.Start(t.Context(), "ok")
	ok.End()
	_, failed := tracer.Start(t.Context(), "failed")
	failed.RecordError(errors.New("boom"))
	failed.End()

	require.Len(t, messages, 4)
	assert.Contains(t, messages[0], "started: ok")
	assert.Contains(t, messages[1], "finished after")
	assert.True(t, strings.HasSuffix(messages[3], "failed: boom"))
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(t.Context(), "test-span")
	assert.NotNil(t, span)
	tracer.EmitPlan(ctx, []string{"pdf"})

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}
