package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gurmatacademy/portal/internal/adapters/gurbani"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// GurbaniServiceInterface defines the Gurbani proxy operations.
type GurbaniServiceInterface interface {
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	RaagIndex(ctx context.Context) ([]model.RaagEntry, error)
}

// GurbaniHandlers serves the Gurbani search and raag index proxy endpoints.
type GurbaniHandlers struct {
	Svc    GurbaniServiceInterface
	Logger *slog.Logger
}

func (h *GurbaniHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Search proxies a shabad search to the upstream API and returns its results
// array unchanged.
// GET /api/gurbani/search?q=<query>.
func (h *GurbaniHandlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_query",
			Err:     errors.New("query parameter q is required"),
		})
		return
	}

	results, err := h.Svc.Search(r.Context(), query)
	if err != nil {
		h.writeUpstreamError(w, r, "gurbani search failed", err)
		return
	}
	if results == nil {
		results = []json.RawMessage{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Raags returns the scraped raag index.
// GET /api/gurbani/raags.
func (h *GurbaniHandlers) Raags(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.RaagIndex(r.Context())
	if err != nil {
		h.writeUpstreamError(w, r, "raag index fetch failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"raags": entries})
}

// writeUpstreamError logs the detailed cause and answers with a generic body.
// Upstream failures are the caller's 502; anything else is our 500.
func (h *GurbaniHandlers) writeUpstreamError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger().ErrorContext(r.Context(), msg, "error", err)
	code := http.StatusInternalServerError
	errCode := "internal_error"
	if errors.Is(err, gurbani.ErrUpstream) {
		code = http.StatusBadGateway
		errCode = "upstream_error"
	}
	WriteError(w, ErrorParams{
		Code:    code,
		ErrCode: errCode,
		Err:     errors.New("upstream request failed"),
	})
}
