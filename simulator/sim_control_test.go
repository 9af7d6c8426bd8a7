package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/patternmaker/internal/app"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/state"
)

func newSim(t *testing.T) (*http.ServeMux, *app.App) {
	t.Helper()
	cfg := app.DefaultConfig()
	a := app.New(state.NewStore(cfg), &render.NoopRenderer{}, nil, nil)
	a.CanvasSize = 32
	mux := http.NewServeMux()
	registerSimEndpoints(mux, NewSimControl(a, cfg))
	return mux, a
}

func post(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestSimKeyAndReset(t *testing.T) {
	mux, a := newSim(t)

	if rec := post(mux, "/sim/key/i"); rec.Code != http.StatusOK {
		t.Fatalf("key status = %d body=%s", rec.Code, rec.Body)
	}
	if !a.Store.Snapshot().Config.Invert {
		t.Error("key i did not toggle invert")
	}

	if rec := post(mux, "/sim/reset"); rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}
	if got := a.Store.Snapshot().Config; got != app.DefaultConfig() {
		t.Errorf("config after reset = %+v", got)
	}
}

func TestSimKeyRejects(t *testing.T) {
	mux, _ := newSim(t)
	for _, path := range []string{"/sim/key/z", "/sim/key/ab", "/sim/key/"} {
		if rec := post(mux, path); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/reset", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET reset status = %d", rec.Code)
	}
}

func TestRenderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	cfg := pattern.Config{ColorA: "#FF0000", ColorB: "#0000FF"}
	if err := renderOnce(path, cfg, 100); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("output missing: %v", err)
	}
}
