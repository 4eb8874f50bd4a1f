package logger

import (
	"context"
	"fmt"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
)

// DiagnosticsSink reports compiler diagnostics through a logger.
// Errors are logged as warnings since a failed compilation does not fail a round.
type DiagnosticsSink struct {
	logger ports.Logger
}

// NewDiagnosticsSink creates a sink logging to logger.
func NewDiagnosticsSink(logger ports.Logger) *DiagnosticsSink {
	return &DiagnosticsSink{logger: logger}
}

// Publish implements ports.DiagnosticsSink.
func (s *DiagnosticsSink) Publish(_ context.Context, revision string, diags domain.Diagnostics) {
	s.logger.Debug(fmt.Sprintf("revision %s: %d diagnostics", revision, len(diags)))
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			s.logger.Warn(d.String())
			continue
		}
		s.logger.Info(d.String())
	}
}
