// Package middleware holds the small set of chi middleware this service
// wraps every request in: panic recovery, request ID propagation, a fixed
// request-scoped clock (the latter two consumed downstream via
// pkg/requestcontext), access logging, request metrics and a JSON
// Content-Type check.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"rodeovalidate/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID stamps every request with an ID, reusing one supplied by an
// upstream proxy in requestIDHeader and generating one otherwise. The ID is
// echoed back on the response and stored in the request context for
// handlers, logging and audit records.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
