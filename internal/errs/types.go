package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

// DatabaseError wraps a failure of a local or cloud store.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Operation + ": " + e.Message
	}
	return e.Operation + ": " + e.Message + ": " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError is a failure to reach a remote service at all.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return e.Service + ": " + e.Message
	}
	return e.Service + ": " + e.Message + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer from the backend API.
type APIError struct {
	Path   string
	Status int
	// Detail is the backend's structured "detail" field, when it sent one.
	Detail string
	Body   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API %s failed: %d - %s", e.Path, e.Status, e.Detail)
	}
	if e.Body != "" {
		return fmt.Sprintf("API %s failed: %d - %s", e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("API %s failed: %d", e.Path, e.Status)
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}

func NewAPIError(path string, status int, detail, body string) *APIError {
	return &APIError{Path: path, Status: status, Detail: detail, Body: body}
}
