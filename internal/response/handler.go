package response

import (
	"fmt"
	"io"
	"net/http"
)

// maxBody caps response bodies read into memory.
const maxBody = 1 << 20

// Read consumes resp, closing its body. Non-2xx answers become *errs.APIError; 2xx bodies are
// decoded into out (which may be nil).
func Read(resp *http.Response, path string, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewAPIError(path, resp.StatusCode, body)
	}
	return DecodeSuccess(body, out)
}
