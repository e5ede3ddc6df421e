package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"go.uber.org/zap"
)

// Recover turns panics into 500 JSON responses instead of dropped
// connections.
func Recover(log *logger.Logger) func(http.Handler) http.Handler {
	panicLog := log.Named("recover")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					panicLog.Error("panic while handling request",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "Something went wrong!"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
