// Package requesttime captures one "now" per HTTP request so every timestamp
// written while serving it (install date, last activity, timeline event date)
// agrees.
package requesttime

import (
	"net/http"
	"time"

	"consentintel/pkg/requestcontext"
)

// Middleware stores the time the request arrived in its context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
