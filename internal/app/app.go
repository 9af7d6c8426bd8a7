package app

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/patternmaker/internal/app/screens"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/export"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/state"
	"github.com/rook-computer/patternmaker/internal/system"
	"github.com/rook-computer/patternmaker/internal/web"
)

// DefaultPalette is cycled through by the color buttons.
var DefaultPalette = []string{
	"#9000FF", "#FFDC00", "#FF0000", "#00C2A8",
	"#0000FF", "#FF6F91", "#202020", "#FFFFFF",
}

func DefaultConfig() pattern.Config {
	return pattern.Config{ColorA: DefaultPalette[0], ColorB: DefaultPalette[1]}
}

type App struct {
	Store   *state.Store
	Render  render.Renderer
	Web     web.Server
	Buttons buttons.Buttons
	Logger  Logger

	// CanvasSize is the side of the square pattern canvas; 0 means 800.
	CanvasSize int
	// ExportDir receives files written by the export button.
	ExportDir string
	Palette   []string
	Now       func() time.Time

	paintMu sync.Mutex
	canvas  *render.Canvas
	frame   atomic.Pointer[image.RGBA]

	exportMu sync.Mutex

	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Buttons: buttonDriver, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		app.Render = render.NewFBRenderer()
	}
	_, onConsole := app.Render.(*render.FBRenderer)
	switch r := app.Render.(type) {
	case *render.FBRenderer:
		r.Logger = app.Logger
	case *render.TerminalRenderer:
		r.Logger = app.Logger
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		app.Store.SetPhase(state.ERROR)
		return err
	}
	defer app.Render.Stop()

	if onConsole {
		// Switch console to KD_GRAPHICS to suppress hardware cursor
		if err := system.SetGraphicsModeWithLog(app.Logger); err != nil {
			app.Logger.Errorf("tty", "set graphics mode failed: %v", err)
		}
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	changed, unwatch := app.Store.Watch()
	defer unwatch()

	if err := app.setScreen(ctx, screens.NewPatternScreen(app, app.Logger)); err != nil {
		return err
	}
	app.Repaint()
	app.Store.SetPhase(state.READY)
	// Force immediate first redraw so the pattern shows without waiting for the loop.
	app.Render.RedrawWithState(app.Store.Snapshot())

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "start failed: %v", err)
		} else {
			defer app.Web.Stop()
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()
	go func() {
		defer wg.Done()
		app.watchConfig(loopCtx, changed)
	}()
	go func() {
		defer wg.Done()
		app.handleButtons(loopCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	return err
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

// watchConfig repaints the canvas after every config change.
func (app *App) watchConfig(ctx context.Context, changed <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			rev := app.Repaint()
			app.Logger.Infof("render", "repainted revision %d", rev)
		}
	}
}

func (app *App) handleButtons(ctx context.Context) {
	if app.Buttons == nil {
		return
	}
	if err := app.Buttons.Start(ctx); err != nil {
		app.Logger.Errorf("buttons", "start failed: %v", err)
		return
	}
	defer app.Buttons.Stop()
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.HandleEvent(ev)
		}
	}
}

// HandleEvent applies one input event.
func (app *App) HandleEvent(ev buttons.Event) {
	app.Logger.Infof("buttons", "event %s", ev)
	switch ev {
	case buttons.ToggleInvert:
		app.Store.UpdateConfig(func(c *pattern.Config) { c.Invert = !c.Invert })
	case buttons.ToggleGrayscale:
		app.Store.UpdateConfig(func(c *pattern.Config) { c.Grayscale = !c.Grayscale })
	case buttons.CycleColorA:
		app.Store.UpdateConfig(func(c *pattern.Config) { c.ColorA = nextColor(app.palette(), c.ColorA) })
	case buttons.CycleColorB:
		app.Store.UpdateConfig(func(c *pattern.Config) { c.ColorB = nextColor(app.palette(), c.ColorB) })
	case buttons.Export:
		if path, err := app.ExportToFile(); err != nil {
			app.Logger.Errorf("export", "export failed: %v", err)
		} else {
			app.Logger.Infof("export", "wrote %s", path)
		}
	case buttons.Exit:
		app.Exit(nil)
	}
}

func (app *App) palette() []string {
	if len(app.Palette) == 0 {
		return DefaultPalette
	}
	return app.Palette
}

// nextColor returns the palette entry after current, or the first entry
// when current is not in the palette.
func nextColor(palette []string, current string) string {
	for i, c := range palette {
		if strings.EqualFold(c, current) {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

// Repaint renders the current config onto the canvas and publishes the
// frame. Renders are serialized; the rendered revision is returned.
func (app *App) Repaint() uint64 {
	app.paintMu.Lock()
	defer app.paintMu.Unlock()

	snap := app.Store.Snapshot()
	if app.canvas == nil {
		app.canvas = render.NewCanvas(app.CanvasSize)
	}
	pattern.Renderer{CanvasSize: float64(app.canvas.Size())}.Render(app.canvas, snap.Config)
	app.frame.Store(app.canvas.Snapshot())
	app.Store.MarkRendered(snap.Revision)
	return snap.Revision
}

// Frame returns the most recent finished canvas, painting one first if the
// store holds a newer config.
func (app *App) Frame() image.Image {
	snap := app.Store.Snapshot()
	if app.frame.Load() == nil || snap.Rendered < snap.Revision {
		app.Repaint()
	}
	return app.frame.Load()
}

// WritePNG encodes the current pattern as PNG.
func (app *App) WritePNG(w io.Writer) error {
	return export.WritePNG(w, app.Frame())
}

// ExportToFile saves the current pattern under ExportDir with a timestamped
// name, never replacing an earlier export, and records the result in the store.
func (app *App) ExportToFile() (string, error) {
	app.exportMu.Lock()
	defer app.exportMu.Unlock()

	dir := app.ExportDir
	if dir == "" {
		dir = "."
	}
	now := time.Now
	if app.Now != nil {
		now = app.Now
	}
	prev := app.Store.Snapshot().Export
	path, err := export.FreePath(dir, now())
	if err == nil {
		err = export.SaveFile(path, app.Frame())
	}
	if err != nil {
		app.Store.UpdateExport(state.ExportInfo{Path: prev.Path, Count: prev.Count, Err: err.Error()})
		return "", fmt.Errorf("export: %w", err)
	}
	app.Store.UpdateExport(state.ExportInfo{Path: path, Count: prev.Count + 1})
	return path, nil
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
