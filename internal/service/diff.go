// Package service holds the business logic between the HTTP transport and
// the core diff pipeline: turning two uploaded XML byte slices into a
// rendered diff result, kept separate from both the handler and the core.
package service

import (
	"fmt"
	"log/slog"

	"github.com/vortex/xmldiff/internal/corelog"
	"github.com/vortex/xmldiff/internal/diffcore"
	"github.com/vortex/xmldiff/internal/render"
	"github.com/vortex/xmldiff/internal/xmlsrc"
)

// DiffRequest is the pair of XML documents plus configuration flags that
// make up the diff's configuration surface.
type DiffRequest struct {
	Left  []byte
	Right []byte
	Raw   bool
	Debug bool
}

// DiffReport is what a diff call returns to the caller: the rendered
// merged tree plus the scalar distance, the edit-script operation count
// and the diagnostic events a client would want surfaced without walking
// the whole tree.
type DiffReport struct {
	Distance       float64         `json:"distance"`
	OperationCount int             `json:"operation_count"`
	Diagnostics    []DiagnosticOut `json:"diagnostics,omitempty"`
	Render         *render.Span    `json:"render"`
}

// DiagnosticOut mirrors diag.Event for JSON output.
type DiagnosticOut struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DiffService computes a semantic XML diff from two raw document bodies.
type DiffService interface {
	Diff(req DiffRequest) (*DiffReport, error)
}

type diffService struct {
	logger *slog.Logger
}

// NewDiffService creates a DiffService that logs diagnostics and (when
// requested) the edit script through logger.
func NewDiffService(logger *slog.Logger) DiffService {
	return &diffService{logger: logger}
}

func (s *diffService) Diff(req DiffRequest) (*DiffReport, error) {
	left, err := xmlsrc.Parse(req.Left, "")
	if err != nil {
		return nil, fmt.Errorf("service: parse left document: %w", err)
	}
	right, err := xmlsrc.Parse(req.Right, "")
	if err != nil {
		return nil, fmt.Errorf("service: parse right document: %w", err)
	}

	cfg := diffcore.DefaultConfig()
	cfg.Raw = req.Raw
	cfg.Debug = req.Debug

	result := diffcore.Diff(cfg, left, right)

	corelog.LogDiagnostics(s.logger, result.Diagnostics)
	corelog.LogScript(s.logger, req.Debug, result.Script)

	report := &DiffReport{
		Distance:       result.Distance,
		OperationCount: len(result.Script),
		Render:         result.Render,
	}
	for _, e := range result.Diagnostics.Events {
		report.Diagnostics = append(report.Diagnostics, DiagnosticOut{Kind: string(e.Kind), Message: e.Message})
	}
	return report, nil
}
