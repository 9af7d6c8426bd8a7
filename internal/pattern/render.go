package pattern

import (
	"fmt"
	"math"
)

// DefaultCanvasSize is the side length of the square canvas in pixels.
const DefaultCanvasSize = 800

// Accepted canvas sizes for user supplied values.
const (
	MinCanvasSize = 16
	MaxCanvasSize = 4096
)

// ValidateCanvasSize rejects sizes outside MinCanvasSize..MaxCanvasSize.
func ValidateCanvasSize(size int) error {
	if size < MinCanvasSize || size > MaxCanvasSize {
		return fmt.Errorf("canvas size %d: must be between %d and %d", size, MinCanvasSize, MaxCanvasSize)
	}
	return nil
}

// Config is the complete parameterization of one render pass.
type Config struct {
	ColorA    string `json:"colorA"`
	ColorB    string `json:"colorB"`
	Invert    bool   `json:"invert"`
	Grayscale bool   `json:"grayscale"`
}

// Validate checks both colors with ParseHex.
func (c Config) Validate() error {
	if _, err := ParseHex(c.ColorA); err != nil {
		return fmt.Errorf("colorA: %w", err)
	}
	if _, err := ParseHex(c.ColorB); err != nil {
		return fmt.Errorf("colorB: %w", err)
	}
	return nil
}

// Gradient is a two-stop linear gradient from (X0,Y0) to (X1,Y1).
type Gradient struct {
	X0, Y0 float64
	X1, Y1 float64
	From   RGB // 0% stop
	To     RGB // 100% stop
}

// Surface is the raster target of a render pass.
// Coordinates passed to FillGradientRect, including the gradient points, are
// in the current user space.
type Surface interface {
	// Push saves the drawing state; Pop restores the last saved state.
	Push()
	Pop()
	// Identity resets the transform.
	Identity()
	// Clear erases the whole surface to transparent.
	Clear()
	Translate(x, y float64)
	FillGradientRect(x, y, w, h float64, g Gradient)
}

// Layout describes where the pattern sits on a square canvas.
type Layout struct {
	CellBase float64
	PatternW float64
	PatternH float64
	OffsetX  float64
	OffsetY  float64
}

// LayoutFor computes the largest square cell that fits Cols x Rows cells
// into a canvas of the given size, and the offsets that center the pattern.
func LayoutFor(canvasSize float64) Layout {
	cellBase := math.Min(canvasSize/Cols, canvasSize/Rows)
	w := cellBase * Cols
	h := cellBase * Rows
	return Layout{
		CellBase: cellBase,
		PatternW: w,
		PatternH: h,
		OffsetX:  (canvasSize - w) / 2,
		OffsetY:  (canvasSize - h) / 2,
	}
}

// Renderer paints the pattern on a canvas of CanvasSize pixels.
// The zero value uses DefaultCanvasSize.
type Renderer struct {
	CanvasSize float64
}

func (r Renderer) size() float64 {
	if r.CanvasSize <= 0 {
		return DefaultCanvasSize
	}
	return r.CanvasSize
}

// Layout returns the layout for r's canvas.
func (r Renderer) Layout() Layout { return LayoutFor(r.size()) }

// Render clears s and repaints every sub-cell of the pattern. The drawing
// state of s is restored before returning.
func (r Renderer) Render(s Surface, cfg Config) {
	s.Push()
	defer s.Pop()
	s.Identity()
	s.Clear()

	l := r.Layout()
	s.Translate(l.OffsetX, l.OffsetY)

	topA := HexToRGB(cfg.ColorA)
	topB := HexToRGB(cfg.ColorB)
	bottom := ApplyTransform(White, cfg.Invert, cfg.Grayscale)

	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			d := DensityFor(row+1, col)
			cellW := l.CellBase / float64(d.GX)
			cellH := l.CellBase / float64(d.GY)
			baseX := float64(col) * l.CellBase
			baseY := float64(row) * l.CellBase

			for gy := 0; gy < d.GY; gy++ {
				for gx := 0; gx < d.GX; gx++ {
					sx := baseX + float64(gx)*cellW
					sy := baseY + float64(gy)*cellH

					top := topA
					if (row+col+gx+gy)%2 == 1 {
						top = topB
					}
					s.FillGradientRect(sx, sy, cellW, cellH, Gradient{
						X0: sx, Y0: sy,
						X1: sx, Y1: sy + cellH,
						From: ApplyTransform(top, cfg.Invert, cfg.Grayscale),
						To:   bottom,
					})
				}
			}
		}
	}
}

// Render paints cfg on s using DefaultCanvasSize.
func Render(s Surface, cfg Config) {
	Renderer{}.Render(s, cfg)
}
