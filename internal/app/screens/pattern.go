package screens

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/render/layout"
	"github.com/rook-computer/patternmaker/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// FrameSource is implemented by the host application and yields the last
// finished pattern canvas.
type FrameSource interface {
	Frame() image.Image
}

// PatternScreen shows the pattern on the left and a caption with a QR code
// for the web UI on the right.
type PatternScreen struct {
	Source FrameSource
	Logger Logger

	mu    sync.Mutex
	qrURL string
	qrImg image.Image
}

func NewPatternScreen(source FrameSource, logger Logger) *PatternScreen {
	return &PatternScreen{Source: source, Logger: logger}
}

func (screen *PatternScreen) Start(ctx context.Context) error { return nil }
func (screen *PatternScreen) Stop() error                     { return nil }

func (screen *PatternScreen) Draw(drawer render.Drawer, currentState state.State) {
	w, h := drawer.Size()
	full := image.Rect(0, 0, w, h)
	pad := h / 36

	leftWidth := h
	if leftWidth > w*3/5 {
		leftWidth = w * 3 / 5
	}
	left, right := layout.SplitVertical(full, leftWidth)

	if screen.Source != nil {
		if frame := screen.Source.Frame(); frame != nil {
			drawer.DrawImageInRect(frame, layout.CenterSquare(layout.Inset(left, pad)), render.ScaleModeFit)
		}
	}

	panel := layout.Inset(right, pad)
	y := panel.Min.Y
	for _, line := range caption(currentState) {
		if line.text != "" {
			drawer.DrawText(line.text, panel.Min.X, y, line.style)
		}
		y += drawer.MeasureText("Mg", line.style).LineHeight
	}

	qr := screen.qrCode(currentState.Network.URL)
	if qr == nil {
		return
	}
	_, rest := layout.SplitHorizontal(panel, y-panel.Min.Y+pad)
	if rest.Dy() <= 0 || rest.Dx() <= 0 {
		return
	}
	box := layout.CenterSquare(rest)
	drawer.DrawImageInRect(qr, box, render.ScaleModeFit)
}

type captionLine struct {
	text  string
	style render.TextStyle
}

var (
	headingStyle = render.TextStyle{Size: render.HeadingTextSize}
	statusStyle  = render.TextStyle{Size: render.DefaultTextSize}
	smallStyle   = render.TextStyle{Size: render.SmallTextSize}
)

func caption(st state.State) []captionLine {
	lines := []captionLine{
		{"color A  " + st.Config.ColorA, headingStyle},
		{"color B  " + st.Config.ColorB, headingStyle},
		{"invert   " + onOff(st.Config.Invert), headingStyle},
		{"gray     " + onOff(st.Config.Grayscale), headingStyle},
	}
	switch {
	case st.Export.Err != "":
		lines = append(lines, captionLine{"save failed: " + st.Export.Err, statusStyle})
	case st.Export.Count > 0:
		lines = append(lines, captionLine{fmt.Sprintf("saved %d: %s", st.Export.Count, st.Export.Path), statusStyle})
	}
	lines = append(lines, captionLine{"", statusStyle}, captionLine{buttons.Help, smallStyle})
	if st.Network.URL != "" {
		lines = append(lines, captionLine{st.Network.URL, smallStyle})
	}
	return lines
}

// CaptionLines returns the text shown beside the pattern.
func CaptionLines(st state.State) []string {
	lines := caption(st)
	text := make([]string, len(lines))
	for i, l := range lines {
		text[i] = l.text
	}
	return text
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// qrCode caches the QR image for the current web UI URL.
func (screen *PatternScreen) qrCode(url string) image.Image {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	if url == screen.qrURL {
		return screen.qrImg
	}
	img, err := render.GenerateQRCodeImage(url, render.DefaultQRCodeSizePx)
	if err != nil {
		if screen.Logger != nil {
			screen.Logger.Errorf("qr", "generate for %q failed: %v", url, err)
		}
		img = nil
	}
	screen.qrURL = url
	screen.qrImg = img
	return img
}
