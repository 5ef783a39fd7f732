package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/GregMSThompson/buildboard/pkg/logger"
)

type loggerTransport struct {
	next http.RoundTripper
}

// NewLoggerTransport wraps next so every outbound request carries a request id and is logged
// with the logger found in the request context.
func NewLoggerTransport(next http.RoundTripper) *loggerTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggerTransport{next: next}
}

func (t *loggerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	requestID := r.Header.Get(chimiddleware.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		// RoundTrippers must not modify the caller's request
		r = r.Clone(r.Context())
		r.Header.Set(chimiddleware.RequestIDHeader, requestID)
	}

	log := logger.FromContext(r.Context()).With(
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
	)

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		log.Warn("request failed", "error", err, "duration", time.Since(start))
		return nil, err
	}
	log.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}
