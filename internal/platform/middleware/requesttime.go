package middleware

import (
	"net/http"
	"time"

	"rodeovalidate/pkg/requestcontext"
)

// RequestTime captures "now" once per request so every age and go-round
// check inside the same validation run compares against the same clock.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
