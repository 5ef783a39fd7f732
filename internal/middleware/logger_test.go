package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/buildboard/pkg/helpers"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestLoggerTransport_AddsRequestID(t *testing.T) {
	var seen string
	tr := NewLoggerTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(chimiddleware.RequestIDHeader)
		return httptest.NewRecorder().Result(), nil
	}))

	req := httptest.NewRequest(http.MethodGet, "http://backend/api/settings", nil).WithContext(helpers.TestCtx())
	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == "" {
		t.Fatal("expected a request id header on the outbound request")
	}
	if req.Header.Get(chimiddleware.RequestIDHeader) != "" {
		t.Fatal("caller's request must not be modified")
	}
}

func TestLoggerTransport_KeepsRequestID(t *testing.T) {
	var seen string
	tr := NewLoggerTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Header.Get(chimiddleware.RequestIDHeader)
		return httptest.NewRecorder().Result(), nil
	}))

	req := httptest.NewRequest(http.MethodGet, "http://backend/api/settings", nil).WithContext(helpers.TestCtx())
	req.Header.Set(chimiddleware.RequestIDHeader, "fixed-id")
	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "fixed-id" {
		t.Fatalf("request id = %q, want fixed-id", seen)
	}
}

func TestLoggerTransport_PropagatesError(t *testing.T) {
	want := errors.New("connection refused")
	tr := NewLoggerTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, want
	}))
	req := httptest.NewRequest(http.MethodGet, "http://backend/api/settings", nil).WithContext(helpers.TestCtx())
	if _, err := tr.RoundTrip(req); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
