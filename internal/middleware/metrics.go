package middleware

import (
	"net/http"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records request latency per method/route and counts error
// responses by status code.
func Metrics(mm *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			mm.RequestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			if recorder.status >= http.StatusBadRequest {
				mm.APIErrorsTotal.WithLabelValues(http.StatusText(recorder.status)).Inc()
			}
		})
	}
}
