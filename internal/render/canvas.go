package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/rook-computer/patternmaker/internal/pattern"
)

// Canvas is a square raster surface for the pattern, backed by gg.
type Canvas struct {
	dc   *gg.Context
	size int
}

var _ pattern.Surface = (*Canvas)(nil)

func NewCanvas(size int) *Canvas {
	if size <= 0 {
		size = pattern.DefaultCanvasSize
	}
	return &Canvas{dc: gg.NewContext(size, size), size: size}
}

// Size returns the side length in pixels.
func (c *Canvas) Size() int { return c.size }

func (c *Canvas) Push()                  { c.dc.Push() }
func (c *Canvas) Pop()                   { c.dc.Pop() }
func (c *Canvas) Identity()              { c.dc.Identity() }
func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }

func (c *Canvas) Clear() {
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
}

// FillGradientRect fills a rectangle with a two-stop linear gradient.
// gg samples gradients in device space, so the gradient points go through
// the current matrix while the rectangle is transformed by the path.
func (c *Canvas) FillGradientRect(x, y, w, h float64, g pattern.Gradient) {
	x0, y0 := c.dc.TransformPoint(g.X0, g.Y0)
	x1, y1 := c.dc.TransformPoint(g.X1, g.Y1)
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, g.From.Color())
	grad.AddColorStop(1, g.To.Color())
	c.dc.SetFillStyle(grad)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// Image returns the live backing image. It changes on the next render.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}
