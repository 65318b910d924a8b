package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/xmldiff/internal/middleware"
	"github.com/vortex/xmldiff/internal/service"
)

// NewRouter builds the HTTP mux with all routes and middleware.
func NewRouter(logger *slog.Logger, svc service.DiffService, maxBodyBytes int64, defaultRaw, defaultDebug bool) http.Handler {
	mux := http.NewServeMux()

	diff := NewDiffHandler(svc, defaultRaw, defaultDebug)

	// Health endpoints
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	// Diff endpoint
	mux.HandleFunc("POST /api/v1/diff", diff.Diff)

	// Apply middleware chain (innermost first; Logging ends up outermost)
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxBodyBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
