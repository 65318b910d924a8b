package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vortex/xmldiff/internal/handler"
	"github.com/vortex/xmldiff/internal/service"
)

func newMultipartRequest(t *testing.T, url, leftXML, rightXML string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("left", "left.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(leftXML)); err != nil {
		t.Fatal(err)
	}

	fw, err = w.CreateFormFile("right", "right.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(rightXML)); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", body["status"])
	}
}

func TestDiffHandler_Success(t *testing.T) {
	t.Parallel()
	svc := service.NewDiffService(discardLogger())
	h := handler.NewDiffHandler(svc, false, false)

	req := newMultipartRequest(t, "/api/v1/diff", `<r><a/></r>`, `<r><a/><b/></r>`)
	rec := httptest.NewRecorder()

	h.Diff(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report service.DiffReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Distance != 1 {
		t.Errorf("distance = %v, want 1", report.Distance)
	}
}

func TestDiffHandler_MissingField(t *testing.T) {
	t.Parallel()
	svc := service.NewDiffService(discardLogger())
	h := handler.NewDiffHandler(svc, false, false)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/diff", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Diff(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDiffHandler_MalformedXML(t *testing.T) {
	t.Parallel()
	svc := service.NewDiffService(discardLogger())
	h := handler.NewDiffHandler(svc, false, false)

	req := newMultipartRequest(t, "/api/v1/diff", `<unclosed>`, `<r/>`)
	rec := httptest.NewRecorder()

	h.Diff(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}
