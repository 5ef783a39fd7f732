package response

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SuccessEnvelope is the {"success":true,"data":...} wrapper some backends put around results.
type SuccessEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeSuccess decodes body into out, unwrapping a SuccessEnvelope when present.
func DecodeSuccess(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env SuccessEnvelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Success != nil {
			if !*env.Success {
				return fmt.Errorf("backend reported success=false")
			}
			trimmed = env.Data
		}
	}
	if out == nil || len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
