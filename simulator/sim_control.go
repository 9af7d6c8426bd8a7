package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rook-computer/patternmaker/internal/app"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/pattern"
)

// SimControl lets scripts drive the simulated device over HTTP.
type SimControl struct {
	app      *app.App
	defaults pattern.Config
}

func NewSimControl(a *app.App, defaults pattern.Config) *SimControl {
	return &SimControl{app: a, defaults: defaults}
}

// Reset restores the startup config.
func (c *SimControl) Reset() uint64 {
	return c.app.Store.SetConfig(c.defaults)
}

// Press simulates a key press on the device keyboard.
func (c *SimControl) Press(key string) (buttons.Event, error) {
	r, n := utf8.DecodeRuneInString(key)
	if n == 0 || n != len(key) {
		return "", fmt.Errorf("key must be a single character, got %q", key)
	}
	ev, ok := buttons.ForRune(r)
	if !ok {
		return "", fmt.Errorf("unmapped key %q", key)
	}
	c.app.HandleEvent(ev)
	return ev, nil
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		rev := control.Reset()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "revision": rev})
	})

	mux.HandleFunc("/sim/key/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/key/"), "/")
		ev, err := control.Press(key)
		if err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "event": ev})
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
