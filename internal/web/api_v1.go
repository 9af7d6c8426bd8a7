package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/rook-computer/patternmaker/internal/export"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
)

const (
	maxConfigBytes = 64 << 10
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type configResponse struct {
	ColorA    string `json:"colorA"`
	ColorB    string `json:"colorB"`
	Invert    bool   `json:"invert"`
	Grayscale bool   `json:"grayscale"`
	Revision  uint64 `json:"revision"`
}

// configRequest is a partial update; absent fields keep their value.
type configRequest struct {
	ColorA    *string `json:"colorA"`
	ColorB    *string `json:"colorB"`
	Invert    *bool   `json:"invert"`
	Grayscale *bool   `json:"grayscale"`
}

type exportResponse struct {
	Path string `json:"path"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) { handleConfig(w, r, deps) })
	mux.HandleFunc("/pattern.png", func(w http.ResponseWriter, r *http.Request) { handlePatternPNG(w, r, deps) })
	mux.HandleFunc("/render.png", func(w http.ResponseWriter, r *http.Request) { handleRenderPNG(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, deps) })
	mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) { handleExport(w, r, deps) })
	return mux
}

func handleConfig(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Config == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "config store not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, currentConfig(deps.Config))
	case http.MethodPut, http.MethodPost:
		var req configRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxConfigBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if err := req.validate(); err != nil {
			writeAPIError(w, http.StatusBadRequest, validationCode(err), err.Error())
			return
		}
		rev := deps.Config.UpdateConfig(req.apply)
		deps.Logger.Infof("web", "config updated, revision=%d", rev)
		writeJSON(w, http.StatusOK, currentConfig(deps.Config))
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func currentConfig(store ConfigStore) configResponse {
	snap := store.Snapshot()
	return configResponse{
		ColorA:    snap.Config.ColorA,
		ColorB:    snap.Config.ColorB,
		Invert:    snap.Config.Invert,
		Grayscale: snap.Config.Grayscale,
		Revision:  snap.Revision,
	}
}

func (req configRequest) validate() error {
	if req.ColorA != nil {
		if _, err := pattern.ParseHex(*req.ColorA); err != nil {
			return fmt.Errorf("colorA: %w", err)
		}
	}
	if req.ColorB != nil {
		if _, err := pattern.ParseHex(*req.ColorB); err != nil {
			return fmt.Errorf("colorB: %w", err)
		}
	}
	return nil
}

func validationCode(err error) string {
	if errors.Is(err, pattern.ErrInvalidColorFormat) {
		return "invalid_color_format"
	}
	return "invalid_config"
}

func (req configRequest) apply(cfg *pattern.Config) {
	if req.ColorA != nil {
		cfg.ColorA = *req.ColorA
	}
	if req.ColorB != nil {
		cfg.ColorB = *req.ColorB
	}
	if req.Invert != nil {
		cfg.Invert = *req.Invert
	}
	if req.Grayscale != nil {
		cfg.Grayscale = *req.Grayscale
	}
}

func handlePatternPNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Pattern == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "pattern source not configured")
		return
	}
	var buf bytes.Buffer
	if err := deps.Pattern.WritePNG(&buf); err != nil {
		deps.Logger.Errorf("web", "encode pattern failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		setDownloadHeaders(w, export.DefaultFilename, "image/png")
	}
	writePNG(w, buf.Bytes())
}

// handleRenderPNG renders the query parameters without touching the store.
// Missing parameters fall back to the current config.
func handleRenderPNG(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	cfg := pattern.Config{}
	if deps.Config != nil {
		cfg = deps.Config.Snapshot().Config
	}
	q := r.URL.Query()
	if v := q.Get("colorA"); v != "" {
		cfg.ColorA = v
	}
	if v := q.Get("colorB"); v != "" {
		cfg.ColorB = v
	}
	for name, dst := range map[string]*bool{"invert": &cfg.Invert, "grayscale": &cfg.Grayscale} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_parameter", name+" must be a boolean")
			return
		}
		*dst = parsed
	}
	size := pattern.DefaultCanvasSize
	if raw := q.Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			err = pattern.ValidateCanvasSize(parsed)
		}
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_size",
				"size must be an integer between "+strconv.Itoa(pattern.MinCanvasSize)+" and "+strconv.Itoa(pattern.MaxCanvasSize))
			return
		}
		size = parsed
	}
	if err := cfg.Validate(); err != nil {
		writeAPIError(w, http.StatusBadRequest, validationCode(err), err.Error())
		return
	}

	canvas := render.NewCanvas(size)
	pattern.Renderer{CanvasSize: float64(size)}.Render(canvas, cfg)
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, canvas.Image()); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	writePNG(w, buf.Bytes())
}

// handleQRCode returns a QR code linking to the web UI. Without a known
// network URL the request host is used.
func handleQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	url := ""
	if deps.Config != nil {
		url = deps.Config.Snapshot().Network.URL
	}
	if url == "" {
		url = "http://" + r.Host + "/"
	}
	data, err := render.QRCodePNG(url, render.DefaultQRCodeSizePx)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	writePNG(w, data)
}

func handleExport(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Exporter == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "export not configured")
		return
	}
	path, err := deps.Exporter.ExportToFile()
	if err != nil {
		deps.Logger.Errorf("web", "export failed: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: path})
}

func setDownloadHeaders(w http.ResponseWriter, filename, contentType string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	cd := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	w.Header().Set("Content-Disposition", cd)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
