package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront_api/metrics"
)

// responseWriter оборачивает http.ResponseWriter для сохранения кода ответа.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// WriteHeader перехватывает вызов WriteHeader, сохраняя код ответа.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// PrometheusMiddleware оборачивает HTTP-обработчик для сбора метрик.
// Метка endpoint берётся из шаблона маршрута chi, чтобы id не раздували кардинальность.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK} // По умолчанию статус 200

		next.ServeHTTP(rw, r)

		metrics.RecordRequest(r.Method, routePattern(r), rw.status, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
