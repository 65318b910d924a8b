// Package corelog adapts the diag.Diagnostics events the core collects
// into structured log/slog records, and debug-gates emission of the raw
// edit script, matching the slog.NewJSONHandler setup cmd/server/main.go
// configures for the rest of the service.
package corelog

import (
	"context"
	"log/slog"

	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/zhangshasha"
)

// LogDiagnostics emits one slog record per diagnostic event, at a level
// matched to severity: InvariantViolation is a Warn, the rest are Info.
// None of these ever cause the caller to fail the request.
func LogDiagnostics(logger *slog.Logger, d diag.Diagnostics) {
	for _, e := range d.Events {
		level := slog.LevelInfo
		if e.Kind == diag.InvariantViolation {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, "diagnostic",
			slog.String("kind", string(e.Kind)),
			slog.String("message", e.Message),
		)
	}
}

// LogScript emits the edit script at Debug level when debug is enabled,
// one record per operation.
func LogScript(logger *slog.Logger, debug bool, script []zhangshasha.Op) {
	if !debug {
		return
	}
	for i, op := range script {
		logger.Debug("edit script op",
			slog.Int("index", i),
			slog.String("kind", op.Kind.String()),
		)
	}
}
