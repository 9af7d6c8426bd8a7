package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/patternmaker/internal/state"
)

// Renderer is a display that shows the current screen.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State)
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(r Drawer, s state.State)
}

// NoopRenderer is used by headless binaries.
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                 { return nil }
func (n *NoopRenderer) Stop() error                                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)                         {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopRenderer) RedrawWithState(snap state.State)                {}

// Drawer is an abstraction the renderer provides to screens to draw primitives
// without exposing the display details.
type Drawer interface {
	// Size returns the logical canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	FillBackground()

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  int // font size in points; 0 means renderer default
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)

// alignedX converts an x anchor to the left edge of a run of the given width.
func alignedX(x, width int, align TextAlign) int {
	switch align {
	case TextAlignCenter:
		return x - width/2
	case TextAlignRight:
		return x - width
	}
	return x
}

// scaledRect returns where an image of size (w,h) lands inside rect.
func scaledRect(w, h int, rect image.Rectangle, mode ScaleMode) image.Rectangle {
	if w <= 0 || h <= 0 || rect.Empty() || mode == ScaleModeStretch {
		return rect
	}
	sx := float64(rect.Dx()) / float64(w)
	sy := float64(rect.Dy()) / float64(h)
	scale := sx
	if (mode == ScaleModeFit && sy < sx) || (mode == ScaleModeFill && sy > sx) {
		scale = sy
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	x0 := rect.Min.X + (rect.Dx()-dw)/2
	y0 := rect.Min.Y + (rect.Dy()-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}
