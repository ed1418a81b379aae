package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"rodeovalidate/pkg/domainerr"
)

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// DecodeJSON decodes a JSON request body into T. Returns the decoded value
// and true on success; on failure it writes an error response and returns
// nil, false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to decode request body", "error", err, "request_id", requestID)
		}
		WriteError(w, domainerr.New(domainerr.CodeInvalidInput, "invalid request body"))
		return nil, false
	}
	return &req, true
}

// DecodeAndValidate decodes the JSON body then calls Validate() if the
// target type implements Validatable.
func DecodeAndValidate[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}

	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "invalid request", "error", err, "request_id", requestID)
			}
			WriteError(w, err)
			return nil, false
		}
	}

	return req, true
}
