// internal/middleware/metrics.go
package middleware

import (
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"sanctra-backend/internal/metrics"
)

// Metrics counts requests by method and response status.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			metrics.Global().HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
