package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/patternmaker/internal/state"
	xdraw "golang.org/x/image/draw"
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	// Device is the framebuffer device path.
	Device string
	Logger logger

	fbDev   *fb.Device
	canvas  *image.RGBA
	fonts   *fontFaces
	running atomic.Bool

	mu      sync.Mutex
	current Screen
	shown   uint64
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{Device: "/dev/fb0"} }

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	r.prepare()
	r.running.Store(true)
	return nil
}

// prepare allocates the logical canvas and loads fonts.
func (r *FBRenderer) prepare() {
	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.fonts = loadFontFaces(r.Logger)
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.shown = 0
	r.mu.Unlock()
}

// RedrawWithState draws the current screen and blits it.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() || r.fbDev == nil {
		return
	}
	if !r.compose(snap) {
		return
	}
	_ = blitToFB(r.fbDev, r.canvas)
	if r.Logger != nil {
		r.Logger.Infof("fb", "redraw done, revision=%d", snap.Rendered)
	}
}

func (r *FBRenderer) compose(snap state.State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.canvas == nil {
		return false
	}
	r.FillBackground()
	r.current.Draw(r, snap)
	r.shown = snap.Generation
	return true
}

// RunLoop polls the store at ~30 FPS and redraws when the state generation
// moved, until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.mu.Lock()
			stale := r.shown != snap.Generation
			r.mu.Unlock()
			if stale {
				r.RedrawWithState(snap)
			}
			if r.Logger != nil && time.Since(lastLog) > 10*time.Second {
				r.Logger.Infof("fb", "heartbeat, revision=%d", snap.Revision)
				lastLog = time.Now()
			}
		}
	}
}

// Drawer primitives

func (r *FBRenderer) Size() (int, int) { return CanvasWidth, CanvasHeight }

func (r *FBRenderer) FillBackground() {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (r *FBRenderer) MeasureText(text string, style TextStyle) TextMetrics {
	return measureText(r.fonts.face(style.Size), text)
}

func (r *FBRenderer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	return drawText(r.canvas, r.fonts.face(style.Size), text, x, y, style)
}

// DrawImageInRect scales img into rect, clipped to rect.
func (r *FBRenderer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil {
		return
	}
	rect = rect.Intersect(r.canvas.Bounds())
	if rect.Empty() {
		return
	}
	dst := scaledRect(img.Bounds().Dx(), img.Bounds().Dy(), rect, mode)
	clip, ok := r.canvas.SubImage(rect).(*image.RGBA)
	if !ok {
		return
	}
	xdraw.ApproxBiLinear.Scale(clip, dst, img, img.Bounds(), xdraw.Over, nil)
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev draw.Image, canvas *image.RGBA) error {
	if dev == nil {
		return nil
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	srcWidth := canvas.Bounds().Dx()
	srcHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}
