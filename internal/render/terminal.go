package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/state"
	xdraw "golang.org/x/image/draw"
)

// upperHalf paints the top pixel of a cell as foreground and the bottom
// pixel as background.
const upperHalf = '▀'

type textRun struct {
	x, row int
	text   []rune
	fg     color.Color
}

// TerminalRenderer previews screens in a terminal. Every character cell
// holds two vertically stacked pixels.
type TerminalRenderer struct {
	Logger logger

	screen  tcell.Screen
	events  chan buttons.Event
	running atomic.Bool

	mu      sync.Mutex
	current Screen
	pixels  *image.RGBA
	runs    []textRun
	shown   uint64
	dirty   bool
}

// NewTerminalRenderer uses screen, or the real terminal when screen is nil.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, events: make(chan buttons.Event, 8), dirty: true}
}

func (r *TerminalRenderer) Start(ctx context.Context) error {
	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return err
	}
	r.screen.HideCursor()
	r.running.Store(true)
	if r.Logger != nil {
		w, h := r.screen.Size()
		r.Logger.Infof("term", "terminal open, cells=%dx%d", w, h)
	}
	go r.pollEvents()
	return nil
}

func (r *TerminalRenderer) Stop() error {
	if r.running.CompareAndSwap(true, false) {
		r.screen.Fini()
	}
	return nil
}

// pollEvents exits when the screen is finalized.
func (r *TerminalRenderer) pollEvents() {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if bev, ok := eventForKey(ev); ok {
				select {
				case r.events <- bev:
				default:
				}
			}
		case *tcell.EventResize:
			r.screen.Sync()
			r.mu.Lock()
			r.dirty = true
			r.mu.Unlock()
		}
	}
}

func eventForKey(ev *tcell.EventKey) (buttons.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return buttons.Exit, true
	case tcell.KeyRune:
		return buttons.ForRune(ev.Rune())
	}
	return "", false
}

// Keys exposes terminal key presses as a button source.
func (r *TerminalRenderer) Keys() buttons.Buttons { return terminalKeys{r: r} }

type terminalKeys struct{ r *TerminalRenderer }

func (terminalKeys) Start(ctx context.Context) error { return nil }
func (terminalKeys) Stop() error                     { return nil }
func (k terminalKeys) Events() <-chan buttons.Event  { return k.r.events }

func (r *TerminalRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.dirty = true
	r.mu.Unlock()
}

func (r *TerminalRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	w, h := r.screen.Size()
	r.compose(w, h, snap)
	r.flush()
}

// compose draws the current screen into the pixel buffer. Callers hold mu.
func (r *TerminalRenderer) compose(cols, rows int, snap state.State) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if r.pixels == nil || r.pixels.Bounds().Dx() != cols || r.pixels.Bounds().Dy() != rows*2 {
		r.pixels = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	r.runs = r.runs[:0]
	r.FillBackground()
	r.current.Draw(r, snap)
	r.shown = snap.Generation
	r.dirty = false
}

func (r *TerminalRenderer) flush() {
	cols := r.pixels.Bounds().Dx()
	rows := r.pixels.Bounds().Dy() / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < cols; x++ {
			top := r.pixels.RGBAAt(x, row*2)
			bottom := r.pixels.RGBAAt(x, row*2+1)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			r.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	for _, run := range r.runs {
		for i, ch := range run.text {
			x := run.x + i
			if x < 0 || x >= cols || run.row < 0 || run.row >= rows {
				continue
			}
			bg := r.pixels.RGBAAt(x, run.row*2)
			style := tcell.StyleDefault.Foreground(tcellColor(run.fg)).Background(tcellColor(bg))
			r.screen.SetContent(x, run.row, ch, nil, style)
		}
	}
	r.screen.Show()
}

func tcellColor(c color.Color) tcell.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// RunLoop redraws when the state generation moved or the terminal resized.
func (r *TerminalRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.mu.Lock()
			stale := r.dirty || r.shown != snap.Generation
			r.mu.Unlock()
			if stale {
				r.RedrawWithState(snap)
			}
		}
	}
}

// Drawer primitives. One terminal row is two pixels high.

func (r *TerminalRenderer) Size() (int, int) {
	b := r.pixels.Bounds()
	return b.Dx(), b.Dy()
}

func (r *TerminalRenderer) FillBackground() {
	draw.Draw(r.pixels, r.pixels.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (r *TerminalRenderer) MeasureText(text string, style TextStyle) TextMetrics {
	return TextMetrics{Width: len([]rune(text)), Height: 2, Ascent: 2, LineHeight: 2}
}

func (r *TerminalRenderer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := r.MeasureText(text, style)
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	r.runs = append(r.runs, textRun{x: alignedX(x, m.Width, style.Align), row: y / 2, text: []rune(text), fg: fg})
	return m
}

// DrawImageInRect downsamples with Catmull-Rom so fine sub-cells average
// out instead of aliasing.
func (r *TerminalRenderer) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil {
		return
	}
	rect = rect.Intersect(r.pixels.Bounds())
	if rect.Empty() {
		return
	}
	dst := scaledRect(img.Bounds().Dx(), img.Bounds().Dy(), rect, mode)
	clip, ok := r.pixels.SubImage(rect).(*image.RGBA)
	if !ok {
		return
	}
	xdraw.CatmullRom.Scale(clip, dst, img, img.Bounds(), xdraw.Over, nil)
}
