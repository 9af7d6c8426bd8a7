package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/patternmaker/internal/app"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/export"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/state"
	"github.com/rook-computer/patternmaker/internal/system"
	"github.com/rook-computer/patternmaker/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	startCfg, err := app.DefaultConfigFromEnv()
	if err != nil {
		fmt.Println("pattern config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	colorA := flag.String("color-a", startCfg.ColorA, "first pattern color (#RRGGBB); also configurable via "+app.EnvColorA)
	colorB := flag.String("color-b", startCfg.ColorB, "second pattern color (#RRGGBB); also configurable via "+app.EnvColorB)
	invert := flag.Bool("invert", false, "invert colors")
	gray := flag.Bool("gray", false, "grayscale")
	size := flag.Int("size", pattern.DefaultCanvasSize, fmt.Sprintf("pattern canvas size in pixels (%d..%d)", pattern.MinCanvasSize, pattern.MaxCanvasSize))
	exportDir := flag.String("export-dir", app.ExportDirFromEnv(os.TempDir()), "directory for saved patterns; also configurable via "+app.EnvExportDir)
	out := flag.String("out", "", "render once to this PNG file and exit")
	tui := flag.Bool("tui", false, "preview the device screen in the terminal")
	logPath := flag.String("log", "", "log file (default stderr; required for a readable -tui session)")
	flag.Parse()

	cfg := startCfg
	cfg.ColorA, cfg.ColorB = *colorA, *colorB
	cfg.Invert, cfg.Grayscale = *invert, *gray
	if err := cfg.Validate(); err != nil {
		fmt.Println("pattern config error:", err)
		os.Exit(2)
	}
	if err := pattern.ValidateCanvasSize(*size); err != nil {
		fmt.Println("pattern config error:", err)
		os.Exit(2)
	}

	if *out != "" {
		if err := renderOnce(*out, cfg, *size); err != nil {
			fmt.Println("render error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *out)
		return
	}

	var logOut io.Writer = os.Stderr
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("log open error:", err)
			os.Exit(2)
		}
		defer f.Close()
		logOut = f
	} else if *tui {
		logOut = io.Discard
	}
	logger := app.NewFileLogger(logOut)

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(cfg)

	var renderer render.Renderer = &render.NoopRenderer{}
	var btns buttons.Buttons = buttons.NewNoopButtons()
	if *tui {
		term := render.NewTerminalRenderer(nil)
		renderer = term
		btns = term.Keys()
	}

	a := app.New(store, renderer, nil, btns)
	a.Logger = logger
	a.CanvasSize = *size
	a.ExportDir = *exportDir

	control := NewSimControl(a, cfg)
	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}, web.APIV1Deps{
		Config:   store,
		Pattern:  a,
		Exporter: a,
		Logger:   logger,
	})
	server.StaticDir = *staticDir
	server.Extend = func(mux *http.ServeMux) { registerSimEndpoints(mux, control) }
	a.Web = server

	store.UpdateNetwork(state.NetworkInfo{IP: "127.0.0.1", URL: system.WebURL("127.0.0.1", *listenAddr)})
	if !*tui {
		fmt.Println("Patternmaker simulator listening on", *listenAddr)
		fmt.Println("UI:", store.Snapshot().Network.URL)
		fmt.Println("Exports:", *exportDir)
	}

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

// renderOnce paints cfg on a fresh canvas and saves it as PNG.
func renderOnce(path string, cfg pattern.Config, size int) error {
	canvas := render.NewCanvas(size)
	pattern.Renderer{CanvasSize: float64(canvas.Size())}.Render(canvas, cfg)
	return export.SaveFile(path, canvas.Image())
}
