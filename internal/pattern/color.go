package pattern

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// ErrInvalidColorFormat is returned by the validating parsers when a color is
// not of the form #RRGGBB.
var ErrInvalidColorFormat = errors.New("invalid color format")

// RGB is a color with channels nominally in [0,255].
// Channels are floats so that transforms can carry unrounded values; a
// channel decoded from a malformed hex group is NaN.
type RGB struct {
	R, G, B float64
}

// White is the bottom stop of every sub-cell gradient.
var White = RGB{R: 255, G: 255, B: 255}

// HexToRGB decodes a #RRGGBB string without validating it.
// A group that is missing or not hexadecimal decodes to NaN.
func HexToRGB(hex string) RGB {
	return RGB{
		R: hexChannel(hex, 1),
		G: hexChannel(hex, 3),
		B: hexChannel(hex, 5),
	}
}

func hexChannel(hex string, offset int) float64 {
	if len(hex) < offset+2 {
		return math.NaN()
	}
	v, err := strconv.ParseUint(hex[offset:offset+2], 16, 8)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

// ParseHex is the validating form of HexToRGB.
func ParseHex(hex string) (RGB, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{}, fmt.Errorf("%w: %q: expected #RRGGBB", ErrInvalidColorFormat, hex)
	}
	c := HexToRGB(hex)
	if !c.Valid() {
		return RGB{}, fmt.Errorf("%w: %q: non-hex digits", ErrInvalidColorFormat, hex)
	}
	return c, nil
}

// Valid reports whether no channel is NaN.
func (c RGB) Valid() bool {
	return !math.IsNaN(c.R) && !math.IsNaN(c.G) && !math.IsNaN(c.B)
}

// String formats c as rgb(r,g,b), rounding each channel half-up.
func (c RGB) String() string {
	return "rgb(" + roundString(c.R) + "," + roundString(c.G) + "," + roundString(c.B) + ")"
}

// Color converts c for raster backends. Invalid colors become transparent.
func (c RGB) Color() color.Color {
	if !c.Valid() {
		return color.Transparent
	}
	return color.NRGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 0xFF}
}

// ApplyTransform inverts and then grayscales c, each step optional.
// The grayscale mean is left unrounded.
func ApplyTransform(c RGB, invert, gray bool) RGB {
	r, g, b := c.R, c.G, c.B
	if invert {
		r, g, b = 255-r, 255-g, 255-b
	}
	if gray {
		m := (r + g + b) / 3
		r, g, b = m, m, m
	}
	return RGB{R: r, G: g, B: b}
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

func roundString(v float64) string {
	return strconv.FormatFloat(roundHalfUp(v), 'f', 0, 64)
}

func channel8(v float64) uint8 {
	v = roundHalfUp(v)
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
