package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

const requestIDHeader = "X-Request-Id"

// chain applies request-ID assignment, logging and panic recovery around a
// handler.
func chain(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requestIDMiddleware(loggingMiddleware(logger, panicRecoveryMiddleware(logger, next)))
	}
}

// requestIDMiddleware assigns a request ID unless the client supplied one,
// and echoes it on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs method, path, status and duration per request.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("HTTP request",
			logfields.Method(r.Method),
			logfields.Path(r.URL.Path),
			logfields.Status(wrapped.statusCode),
			logfields.DurationMS(time.Since(start)),
			logfields.RequestID(r.Header.Get(requestIDHeader)),
			logfields.RemoteAddr(r.RemoteAddr))
	})
}

// panicRecoveryMiddleware converts handler panics into 500 responses.
func panicRecoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("HTTP handler panic",
					slog.Any("error", err),
					logfields.Path(r.URL.Path),
					logfields.Method(r.Method))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter captures status codes for logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
