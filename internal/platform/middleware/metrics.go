package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rodeovalidate/internal/platform/metrics"
)

// Metrics records one RequestsHandled increment per response, labeled by
// the matched chi route pattern rather than the raw path, so metric
// cardinality doesn't grow with path parameters.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.IncrementRequest(route, strconv.Itoa(wrapped.status))
		})
	}
}
