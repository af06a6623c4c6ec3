package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware tags each request with a UUID, logs it, and records
// per-route Prometheus counters and latency.
func (c *Controller) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		elapsed := time.Since(start)
		route := routeTemplate(req)

		if c.metrics != nil {
			c.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			c.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		}

		c.logger.Infow("request",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// routeTemplate returns the mux route pattern so metrics label by route, not
// by raw path. Unmatched requests label as "unmatched".
func routeTemplate(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
