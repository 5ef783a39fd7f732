package errs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// errorHandler reports command failures as one JSON line on Out and returns the exit code.
type errorHandler struct {
	Log *slog.Logger
	Out io.Writer
}

func NewErrorHandler(log *slog.Logger, out io.Writer) *errorHandler {
	return &errorHandler{Log: log, Out: out}
}

func (h *errorHandler) Write(code, message string) {
	h.write(ErrorResponse{Code: code, Message: message})
}

func (h *errorHandler) write(resp ErrorResponse) {
	if err := json.NewEncoder(h.Out).Encode(resp); err != nil {
		h.Log.Error("failed to encode error output", "error", err, "code", resp.Code)
	}
}

func (h *errorHandler) HandleError(err error) int {
	var (
		validation *ValidationError
		apiErr     *APIError
		dbErr      *DatabaseError
		extErr     *ExternalServiceError
	)
	switch {
	case errors.As(err, &validation):
		h.Log.Warn("validation failed", "error", validation.Message)
		h.Write("invalid_input", validation.Message)
		return 2

	case errors.As(err, &apiErr):
		h.Log.Error("api error",
			"path", apiErr.Path,
			"status", apiErr.Status,
			"detail", apiErr.Detail)
		code := "api_error"
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			code = "unauthorized"
		}
		h.write(ErrorResponse{Code: code, Message: apiErr.Error(), Status: apiErr.Status})

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		h.Log.Log(context.Background(), level, "external service error",
			"service", extErr.Service,
			"transient", extErr.Transient,
			"error", extErr.Error())
		h.Write("service_unavailable", "Service temporarily unavailable")

	case errors.As(err, &dbErr):
		h.Log.Error("database error",
			"operation", dbErr.Operation,
			"error", dbErr.Error())
		h.Write("internal_error", "An error occurred")

	default:
		h.Log.Error("unexpected error", "error", err)
		h.Write("internal_error", "An unexpected error occurred")
	}
	return 1
}
