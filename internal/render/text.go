package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// fontFaces caches faces of the Go Regular font per point size.
type fontFaces struct {
	base   font.Face
	ttFont *truetype.Font
	sized  map[int]font.Face
}

func loadFontFaces(log logger) *fontFaces {
	f := &fontFaces{base: basicfont.Face7x13, sized: make(map[int]font.Face)}

	otf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		if log != nil {
			log.Errorf("font", "font parse failed, using basicfont: %v", err)
		}
	} else {
		face, ferr := opentype.NewFace(otf, &opentype.FaceOptions{Size: float64(DefaultTextSize), DPI: 96, Hinting: font.HintingFull})
		if ferr != nil {
			if log != nil {
				log.Errorf("font", "font face create failed, using basicfont: %v", ferr)
			}
		} else {
			f.base = face
		}
	}

	// Other sizes go through freetype.
	if tt, terr := truetype.Parse(goregular.TTF); terr != nil {
		if log != nil {
			log.Errorf("font", "truetype parse failed: %v", terr)
		}
	} else {
		f.ttFont = tt
	}
	return f
}

func (f *fontFaces) face(size int) font.Face {
	if size <= 0 || size == DefaultTextSize || f.ttFont == nil {
		return f.base
	}
	if face, ok := f.sized[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttFont, &truetype.Options{Size: float64(size), DPI: 96, Hinting: font.HintingFull})
	f.sized[size] = face
	return face
}

func measureText(face font.Face, text string) TextMetrics {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: m.Height.Ceil(),
	}
}

// drawText draws text with its top edge at y.
func drawText(dst draw.Image, face font.Face, text string, x, y int, style TextStyle) TextMetrics {
	metrics := measureText(face, text)
	fg := style.Color
	if fg == nil {
		fg = color.RGBA{R: Foreground.R, G: Foreground.G, B: Foreground.B, A: 0xFF}
	}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(alignedX(x, metrics.Width, style.Align), y+metrics.Ascent),
	}
	drawer.DrawString(text)
	return metrics
}
