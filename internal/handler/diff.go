package handler

import (
	"io"
	"net/http"

	"github.com/vortex/xmldiff/internal/service"
	"github.com/vortex/xmldiff/pkg/response"
)

// DiffHandler exposes the HTTP surface for computing a semantic XML diff.
type DiffHandler struct {
	svc          service.DiffService
	defaultRaw   bool
	defaultDebug bool
}

// NewDiffHandler creates a handler backed by the given service. defaultRaw
// and defaultDebug seed the raw/debug flags for requests that don't
// specify the corresponding form field.
func NewDiffHandler(svc service.DiffService, defaultRaw, defaultDebug bool) *DiffHandler {
	return &DiffHandler{svc: svc, defaultRaw: defaultRaw, defaultDebug: defaultDebug}
}

// Diff handles POST /api/v1/diff. It accepts a multipart form with "left"
// and "right" fields containing the two XML documents, plus optional
// "raw" and "debug" boolean form fields. It returns the rendered diff
// report as JSON.
func (h *DiffHandler) Diff(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(100 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	left, err := readFormFile(r, "left")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "left: "+err.Error())
		return
	}
	right, err := readFormFile(r, "right")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "right: "+err.Error())
		return
	}

	req := service.DiffRequest{
		Left:  left,
		Right: right,
		Raw:   formBool(r, "raw", h.defaultRaw),
		Debug: formBool(r, "debug", h.defaultDebug),
	}

	report, err := h.svc.Diff(req)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, report)
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func formBool(r *http.Request, field string, fallback bool) bool {
	v := r.FormValue(field)
	switch v {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}
