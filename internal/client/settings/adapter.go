package settingsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/buildboard/internal/dto"
	"github.com/GregMSThompson/buildboard/internal/errs"
	"github.com/GregMSThompson/buildboard/internal/middleware"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/internal/response"
)

const serviceName = "settings-api"

// Adapter talks to the backend's key/value settings endpoints.
type Adapter struct {
	baseURL string
	prefix  string
	http    *http.Client
}

func NewAdapter(baseURL, prefix string, timeout time.Duration) *Adapter {
	return NewAdapterWithClient(baseURL, prefix, &http.Client{
		Timeout:   timeout,
		Transport: middleware.NewLoggerTransport(http.DefaultTransport),
	})
}

func NewAdapterWithClient(baseURL, prefix string, client *http.Client) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  strings.TrimRight(prefix, "/"),
		http:    client,
	}
}

// resolvePath maps the canonical /api/... path onto the configured prefix.
func (a *Adapter) resolvePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "/api"); ok {
		return a.prefix + rest
	}
	return path
}

func (a *Adapter) ListSettings(ctx context.Context, sess models.Session) ([]models.Setting, error) {
	var rows []models.Setting
	if err := a.do(ctx, sess, http.MethodGet, "/api/settings", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// PutSetting upserts key with value as the JSON request body.
func (a *Adapter) PutSetting(ctx context.Context, sess models.Session, key string, value any) error {
	if key == "" {
		return errs.NewValidationError("setting key is required")
	}
	body, err := json.Marshal(value)
	if err != nil {
		return errs.NewValidationError("setting value is not JSON encodable: " + err.Error())
	}

	var out dto.PutSettingResponse
	path := "/api/settings/" + url.PathEscape(key)
	if err := a.do(ctx, sess, http.MethodPut, path, body, &out); err != nil {
		return err
	}
	if !out.OK {
		return errs.NewExternalServiceError(serviceName, fmt.Sprintf("backend did not acknowledge setting %q", key), false, nil)
	}
	return nil
}

func (a *Adapter) do(ctx context.Context, sess models.Session, method, path string, body []byte, out any) error {
	resolved := a.resolvePath(path)

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := newRequest(ctx, method, a.baseURL+resolved, reader)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return errs.NewExternalServiceError(serviceName, fmt.Sprintf("%s %s failed", method, resolved), isTransient(err), err)
	}
	return response.Read(resp, resolved, out)
}

// newRequest avoids handing http.NewRequest a typed-nil body.
func newRequest(ctx context.Context, method, target string, body *bytes.Reader) (*http.Request, error) {
	if body == nil {
		return http.NewRequestWithContext(ctx, method, target, nil)
	}
	return http.NewRequestWithContext(ctx, method, target, body)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
