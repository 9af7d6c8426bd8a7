package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPServerStartStop(t *testing.T) {
	deps, _ := newTestDeps()
	srv := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, deps)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	addr := srv.Addr()
	if addr == "" {
		t.Fatal("no bound address")
	}

	res, err := http.Get("http://" + addr + "/api/v1/config")
	if err != nil {
		t.Fatal(err)
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d", res.StatusCode)
	}

	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := srv.Start(context.Background()); err == nil {
		t.Error("restart after Stop should fail")
	}
}

func TestHTTPServerDevCORS(t *testing.T) {
	deps, _ := newTestDeps()
	h := NewHTTPServer(ServerConfig{DevMode: true}, deps).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/config", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}

	plain := NewHTTPServer(ServerConfig{}, deps).Handler()
	rec = httptest.NewRecorder()
	plain.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("CORS header outside dev mode: %q", got)
	}
}

func TestStaticUIHandlerDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := StaticUIHandler(dir)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello.txt", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}

	missing := StaticUIHandler(filepath.Join(dir, "nope"))
	rec = httptest.NewRecorder()
	missing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing dir status = %d", rec.Code)
	}
}
