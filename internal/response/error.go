package response

import (
	"bytes"
	"encoding/json"

	"github.com/GregMSThompson/buildboard/internal/errs"
)

// maxErrorBody bounds how much of an error body ends up in error messages.
const maxErrorBody = 4 << 10

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// NewAPIError builds the error for a non-2xx answer, lifting the backend's "detail" field
// when the body is a JSON object that has one.
func NewAPIError(path string, status int, body []byte) *errs.APIError {
	body = bytes.TrimSpace(body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return errs.NewAPIError(path, status, detail(body), string(body))
}

func detail(body []byte) string {
	if len(body) == 0 || body[0] != '{' {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	if string(eb.Detail) == "null" {
		return ""
	}
	return string(eb.Detail)
}
