package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rodeovalidate/internal/regdb"
	"rodeovalidate/internal/registration"
	"rodeovalidate/internal/validation"
	"rodeovalidate/pkg/domainerr"
	"rodeovalidate/pkg/platform/httputil"
	"rodeovalidate/pkg/requestcontext"
)

// registrationValidator is the subset of Service a Handler depends on.
type registrationValidator interface {
	Validate(ctx context.Context, batch registration.Batch) (validation.Report, error)
	Search(ctx context.Context, query string) []regdb.Candidate
}

// Handler wires the validation and search endpoints to a Service.
type Handler struct {
	service registrationValidator
	logger  *slog.Logger
}

// New constructs a Handler.
func New(service registrationValidator, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate", h.HandleValidate)
	r.Post("/search", h.HandleSearch)
}

// HandleValidate handles POST /validate: the request body is a registration
// batch document, the response is a Report.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeInvalidInput, "unable to read request body"))
		return
	}

	batch, err := registration.Decode(body)
	if err != nil {
		h.logger.WarnContext(ctx, "malformed registration batch", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Validate(ctx, batch)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch validated",
		"request_id", requestID,
		"registrations", len(report.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleSearch handles POST /search: free-text performance-name lookup.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndValidate[SearchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	candidates := h.service.Search(ctx, req.PerformanceName)
	httputil.WriteJSON(w, http.StatusOK, FromCandidates(candidates))
}
