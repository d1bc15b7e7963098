package middleware

import (
	"net/http"
	"time"
)

type logger interface {
	Info(msg string, args ...any)
}

// responseMeta records what the wrapped handler wrote so the request can
// be logged after it was served.
type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(statusCode int) {
	m.status = statusCode
	m.ResponseWriter.WriteHeader(statusCode)
}

func (m *responseMeta) Write(p []byte) (int, error) {
	n, err := m.ResponseWriter.Write(p)
	m.bytes += n
	return n, err
}

// RequestLogger emits one line per served request, tagged with the service
// name. The route is the mux pattern that matched when the mux recorded
// one, the raw path otherwise.
func RequestLogger(service string, l logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			meta := &responseMeta{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(meta, r)

			route := r.Pattern
			if route == "" {
				route = r.URL.Path
			}

			l.Info(
				"request served",
				"service", service,
				"method", r.Method,
				"route", route,
				"uri", r.RequestURI,
				"status", meta.status,
				"bytes", meta.bytes,
				"elapsed", time.Since(start),
			)
		})
	}
}
