package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/patternmaker/internal/app"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/state"
	"github.com/rook-computer/patternmaker/internal/system"
	"github.com/rook-computer/patternmaker/internal/web"
)

func main() {
	fmt.Println("Patternmaker starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	startCfg, err := app.DefaultConfigFromEnv()
	if err != nil {
		fmt.Println("pattern config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./patternmaker-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via PATTERN_STDIO_LOG")
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	device := flag.String("fb", "/dev/fb0", "framebuffer device")
	colorA := flag.String("color-a", startCfg.ColorA, "first pattern color (#RRGGBB); also configurable via "+app.EnvColorA)
	colorB := flag.String("color-b", startCfg.ColorB, "second pattern color (#RRGGBB); also configurable via "+app.EnvColorB)
	invert := flag.Bool("invert", false, "start with inverted colors")
	gray := flag.Bool("gray", false, "start in grayscale")
	size := flag.Int("size", 0, "pattern canvas size in pixels (default 800)")
	exportDir := flag.String("export-dir", app.ExportDirFromEnv("."), "directory for saved patterns; also configurable via "+app.EnvExportDir)
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("PATTERN_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./patternmaker-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg := startCfg
	cfg.ColorA, cfg.ColorB = *colorA, *colorB
	cfg.Invert, cfg.Grayscale = *invert, *gray
	if err := cfg.Validate(); err != nil {
		fmt.Println("pattern config error:", err)
		os.Exit(2)
	}
	if *size != 0 {
		if err := pattern.ValidateCanvasSize(*size); err != nil {
			fmt.Println("pattern config error:", err)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore(cfg)

	renderer := render.NewFBRenderer()
	renderer.Device = *device
	btns := buttons.NewKeyboardButtons(logger)

	a := app.New(store, renderer, nil, btns)
	a.Logger = logger
	a.CanvasSize = *size
	a.ExportDir = *exportDir

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}, web.APIV1Deps{
		Config:   store,
		Pattern:  a,
		Exporter: a,
		Logger:   logger,
	})
	server.StaticDir = *staticDir
	a.Web = server

	ip, err := system.LocalIPv4()
	if err != nil {
		logger.Errorf("net", "local address lookup failed: %v", err)
	}
	store.UpdateNetwork(state.NetworkInfo{IP: ip, URL: system.WebURL(ip, *listenAddr)})
	if url := store.Snapshot().Network.URL; url != "" {
		logger.Infof("net", "web ui at %s", url)
	} else {
		logger.Infof("net", "no network address, web ui url not shown")
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app exited: %v", err)
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
