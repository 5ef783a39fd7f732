package settingsclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/buildboard/internal/errs"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/pkg/helpers"
)

// fakeBackend mimics the settings endpoints of the back-office API.
type fakeBackend struct {
	mu         sync.Mutex
	rows       map[string]json.RawMessage
	lastAuth   string
	lastReqID  string
	putStatus  int
	putBody    string
	listStatus int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{rows: map[string]json.RawMessage{}}
}

func (b *fakeBackend) router(prefix string) http.Handler {
	r := chi.NewRouter()
	r.Route(prefix+"/settings", func(r chi.Router) {
		r.Get("/", b.list)
		r.Put("/{key}", b.put)
	})
	return r
}

func (b *fakeBackend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastAuth = r.Header.Get("Authorization")
	b.lastReqID = r.Header.Get(chimiddleware.RequestIDHeader)
	if b.listStatus != 0 {
		w.WriteHeader(b.listStatus)
		return
	}
	rows := make([]map[string]any, 0, len(b.rows))
	for k, v := range b.rows {
		rows = append(rows, map[string]any{"key": k, "value": string(v)})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func (b *fakeBackend) put(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastAuth = r.Header.Get("Authorization")
	if b.putStatus != 0 {
		w.WriteHeader(b.putStatus)
		io.WriteString(w, b.putBody)
		return
	}
	key := chi.URLParam(r, "key")
	body, _ := io.ReadAll(r.Body)
	b.rows[key] = body
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "key": key})
}

func (b *fakeBackend) seen() (auth, requestID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth, b.lastReqID
}

func (b *fakeBackend) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.rows[key]
	return ok
}

func newTestAdapter(t *testing.T, b *fakeBackend, prefix string) *Adapter {
	t.Helper()
	srv := httptest.NewServer(b.router(prefix))
	t.Cleanup(srv.Close)
	return NewAdapter(srv.URL, prefix, 5*time.Second)
}

func TestPutThenList(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b, "/api")
	ctx := helpers.TestCtx()
	sess := models.Session{Token: "tok"}

	cfg := models.DashboardConfig{Order: []models.WidgetKey{models.WidgetMap}, Hidden: []models.WidgetKey{}}
	if err := a.PutSetting(ctx, sess, models.DashboardConfigKey, cfg); err != nil {
		t.Fatalf("put: %v", err)
	}
	if auth, _ := b.seen(); auth != "Bearer tok" {
		t.Errorf("authorization = %q", auth)
	}

	rows, err := a.ListSettings(ctx, sess)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Key != models.DashboardConfigKey {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !rows[0].Value.IsText() {
		t.Fatal("expected text payload from backend that stores JSON text")
	}
	doc, _ := rows[0].Value.Document()
	var got models.DashboardConfig
	if err := json.Unmarshal(doc, &got); err != nil {
		t.Fatalf("decode stored value: %v", err)
	}
	if len(got.Order) != 1 || got.Order[0] != models.WidgetMap {
		t.Fatalf("unexpected stored value: %+v", got)
	}
	if _, reqID := b.seen(); reqID == "" {
		t.Error("expected request id header")
	}
}

func TestCustomPrefix(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b, "/backoffice/v1")
	if err := a.PutSetting(helpers.TestCtx(), models.Session{}, "theme", map[string]string{"mode": "dark"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !b.has("theme") {
		t.Fatal("expected write under the custom prefix")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	b := newFakeBackend()
	a := newTestAdapter(t, b, "/api")
	if _, err := a.ListSettings(helpers.TestCtx(), models.Session{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if auth, _ := b.seen(); auth != "" {
		t.Fatalf("expected no authorization header, got %q", auth)
	}
}

func TestPutSetting_APIError(t *testing.T) {
	b := newFakeBackend()
	b.putStatus = http.StatusUnprocessableEntity
	b.putBody = `{"detail":"value must be an object"}`
	a := newTestAdapter(t, b, "/api")

	err := a.PutSetting(helpers.TestCtx(), models.Session{}, models.DashboardConfigKey, map[string]any{})
	var apiErr *errs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Detail != "value must be an object" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if apiErr.Path != "/api/settings/dashboard_config" {
		t.Fatalf("path = %q", apiErr.Path)
	}
}

func TestListSettings_APIError(t *testing.T) {
	b := newFakeBackend()
	b.listStatus = http.StatusUnauthorized
	a := newTestAdapter(t, b, "/api")

	_, err := a.ListSettings(helpers.TestCtx(), models.Session{})
	var apiErr *errs.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %T: %v", err, err)
	}
}

func TestListSettings_StructuredValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[{"key":"dashboard_config","value":{"order":["kpi"],"hidden":[]}},{"key":"empty","value":null}]}`)
	}))
	defer srv.Close()
	a := NewAdapter(srv.URL, "/api", time.Second)

	rows, err := a.ListSettings(helpers.TestCtx(), models.Session{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Value.IsText() || rows[0].Value.IsEmpty() {
		t.Fatal("expected structured payload")
	}
	if !rows[1].Value.IsEmpty() {
		t.Fatal("expected empty payload for null value")
	}
}

func TestPutSetting_NotAcknowledged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":false,"key":"dashboard_config"}`)
	}))
	defer srv.Close()
	a := NewAdapter(srv.URL, "/api", time.Second)

	err := a.PutSetting(helpers.TestCtx(), models.Session{}, models.DashboardConfigKey, map[string]any{})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %T: %v", err, err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	a := NewAdapter(url, "/api", time.Second)

	_, err := a.ListSettings(context.Background(), models.Session{})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %T: %v", err, err)
	}
}

func TestTimeoutIsTransient(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)
	a := NewAdapter(srv.URL, "/api", 50*time.Millisecond)

	_, err := a.ListSettings(helpers.TestCtx(), models.Session{})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || !ext.Transient {
		t.Fatalf("expected transient ExternalServiceError, got %T: %v", err, err)
	}
}

func TestResolvePath(t *testing.T) {
	a := NewAdapterWithClient("http://x/", "/v2/", http.DefaultClient)
	if got := a.resolvePath("/api/settings"); got != "/v2/settings" {
		t.Errorf("resolvePath = %q", got)
	}
	if got := a.resolvePath("/health"); got != "/health" {
		t.Errorf("resolvePath = %q", got)
	}
}
