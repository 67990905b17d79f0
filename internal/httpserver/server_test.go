package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/smileguide/internal/duckdb"
	"github.com/tinytelemetry/smileguide/internal/model"
	"github.com/tinytelemetry/smileguide/internal/nav"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *duckdb.Store, *gin.Engine) {
	t.Helper()
	store, err := duckdb.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := NewServer("", NewBoard(), store, nil)
	return srv, store, srv.routes()
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, r := newTestServer(t)

	w := get(t, r, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "ok" || body["ready"] != false {
		t.Errorf("health body = %v", body)
	}

	srv.board.Publish(true, nav.State{}, model.LangEnglish)
	w = get(t, r, "/api/health")
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["ready"] != true {
		t.Errorf("ready = %v after publish, want true", body["ready"])
	}
}

func TestHealthEndpoint_WrongMethod(t *testing.T) {
	_, _, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("health POST status = %d, want 405 or 404", w.Code)
	}
}

func TestStateEndpoint(t *testing.T) {
	srv, _, r := newTestServer(t)
	srv.board.Publish(true, nav.State{
		Current:  model.PageTracker,
		Previous: model.PageLearn,
		SignedIn: true,
	}, model.LangZulu)

	w := get(t, r, "/api/state")
	if w.Code != http.StatusOK {
		t.Fatalf("state status = %d", w.Code)
	}

	var body struct {
		Ready      bool `json:"ready"`
		Navigation struct {
			Current  string `json:"current"`
			Previous string `json:"previous"`
			SignedIn bool   `json:"signed_in"`
		} `json:"navigation"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if body.Navigation.Current != "tracker" || body.Navigation.Previous != "learn" || !body.Navigation.SignedIn {
		t.Errorf("navigation = %+v", body.Navigation)
	}
	if body.Language != "zu" || !body.Ready {
		t.Errorf("state = %+v", body)
	}
}

func TestAvatarEndpoint(t *testing.T) {
	_, store, r := newTestServer(t)

	if w := get(t, r, "/api/avatar"); w.Code != http.StatusNotFound {
		t.Fatalf("missing avatar status = %d, want 404", w.Code)
	}

	// "PNG" base64-encoded.
	if err := store.SetValue(context.Background(), model.KeyAssistantAvatar, "data:image/png;base64,UE5H"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	w := get(t, r, "/api/avatar")
	if w.Code != http.StatusOK {
		t.Fatalf("avatar status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if w.Body.String() != "PNG" {
		t.Errorf("body = %q, want PNG", w.Body.String())
	}
}

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{"data:image/png;base64,UE5H", true},
		{"https://example.com/avatar.png", false},
		{"data:image/png,raw", false},
		{"data:image/png;base64,!!!", false},
	}
	for _, tt := range tests {
		_, _, ok := decodeDataURL(tt.in)
		if ok != tt.wantOK {
			t.Errorf("decodeDataURL(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
	}
}
