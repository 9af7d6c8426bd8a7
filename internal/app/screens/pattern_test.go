package screens

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/render"
	"github.com/rook-computer/patternmaker/internal/state"
)

type drawnImage struct {
	img  image.Image
	rect image.Rectangle
}

// recordingDrawer is a 1920x1080 Drawer with fixed 40px lines.
type recordingDrawer struct {
	texts  []string
	sizes  map[string]int
	images []drawnImage
}

func (d *recordingDrawer) Size() (int, int) { return 1920, 1080 }
func (d *recordingDrawer) FillBackground()  {}

func (d *recordingDrawer) MeasureText(text string, style render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: 20 * len(text), Height: 36, Ascent: 30, Descent: 6, LineHeight: 40}
}

func (d *recordingDrawer) DrawText(text string, x, y int, style render.TextStyle) render.TextMetrics {
	d.texts = append(d.texts, text)
	if d.sizes == nil {
		d.sizes = make(map[string]int)
	}
	d.sizes[text] = style.Size
	return d.MeasureText(text, style)
}

func (d *recordingDrawer) DrawImageInRect(img image.Image, rect image.Rectangle, mode render.ScaleMode) {
	d.images = append(d.images, drawnImage{img: img, rect: rect})
}

type fixedFrame struct{ img image.Image }

func (f fixedFrame) Frame() image.Image { return f.img }

func testState() state.State {
	return state.State{
		Config:  pattern.Config{ColorA: "#FF0000", ColorB: "#0000FF", Invert: true},
		Network: state.NetworkInfo{IP: "10.0.0.2", URL: "http://10.0.0.2/"},
	}
}

func TestPatternScreenDraw(t *testing.T) {
	frame := image.NewUniform(color.White)
	d := &recordingDrawer{}
	screen := NewPatternScreen(fixedFrame{img: frame}, nil)
	screen.Draw(d, testState())

	if len(d.images) != 2 {
		t.Fatalf("drew %d images, want pattern and QR", len(d.images))
	}
	// Left half: 1080 wide, inset by 30, square.
	if got, want := d.images[0].rect, image.Rect(30, 30, 1050, 1050); got != want {
		t.Errorf("pattern rect = %v, want %v", got, want)
	}
	qr := d.images[1].rect
	if qr.Dx() != qr.Dy() || qr.Min.X < 1080 {
		t.Errorf("qr rect = %v, want a square in the right panel", qr)
	}

	want := CaptionLines(testState())
	var nonEmpty []string
	for _, l := range want {
		if l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if diff := cmp.Diff(nonEmpty, d.texts); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
}

func TestPatternScreenTextSizes(t *testing.T) {
	d := &recordingDrawer{}
	st := testState()
	st.Export = state.ExportInfo{Path: "/tmp/p.png", Count: 1}
	NewPatternScreen(nil, nil).Draw(d, st)

	want := map[string]int{
		"color A  #FF0000":    render.HeadingTextSize,
		"gray     off":        render.HeadingTextSize,
		"saved 1: /tmp/p.png": render.DefaultTextSize,
		buttons.Help:          render.SmallTextSize,
		"http://10.0.0.2/":    render.SmallTextSize,
	}
	for text, size := range want {
		if got, ok := d.sizes[text]; !ok || got != size {
			t.Errorf("%q drawn at size %d (drawn=%v), want %d", text, got, ok, size)
		}
	}
}

func TestPatternScreenWithoutURL(t *testing.T) {
	d := &recordingDrawer{}
	screen := NewPatternScreen(nil, nil)
	st := testState()
	st.Network = state.NetworkInfo{}
	screen.Draw(d, st)
	if len(d.images) != 0 {
		t.Errorf("drew %d images without a frame source or URL", len(d.images))
	}
}

func TestPatternScreenCachesQRCode(t *testing.T) {
	screen := NewPatternScreen(nil, nil)
	first := screen.qrCode("http://10.0.0.2/")
	if first == nil {
		t.Fatal("no QR image")
	}
	if again := screen.qrCode("http://10.0.0.2/"); again != first {
		t.Error("QR image regenerated for the same URL")
	}
	if other := screen.qrCode("http://10.0.0.3/"); other == first {
		t.Error("QR image reused for a new URL")
	}
	if none := screen.qrCode(""); none != nil {
		t.Error("empty URL should have no QR code")
	}
}

func TestCaptionLines(t *testing.T) {
	st := testState()
	st.Export = state.ExportInfo{Path: "/tmp/pattern-1.png", Count: 2}
	want := []string{
		"color A  #FF0000",
		"color B  #0000FF",
		"invert   on",
		"gray     off",
		"saved 2: /tmp/pattern-1.png",
		"",
		buttons.Help,
		"http://10.0.0.2/",
	}
	if diff := cmp.Diff(want, CaptionLines(st)); diff != "" {
		t.Errorf("CaptionLines (-want +got):\n%s", diff)
	}

	st.Export.Err = "disk full"
	lines := CaptionLines(st)
	if !strings.HasPrefix(lines[4], "save failed") {
		t.Errorf("line 4 = %q, want the export error", lines[4])
	}
}
