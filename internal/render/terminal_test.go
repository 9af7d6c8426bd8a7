package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/patternmaker/internal/buttons"
	"github.com/rook-computer/patternmaker/internal/state"
)

func newSimRenderer(t *testing.T) (*TerminalRenderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	r := NewTerminalRenderer(sim)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { r.Stop() })
	sim.SetSize(40, 12)
	return r, sim
}

func TestTerminalRendererCompose(t *testing.T) {
	r, sim := newSimRenderer(t)
	screen := &stubScreen{
		text: "hi",
		img:  solid(4, 4, color.RGBA{R: 255, A: 255}),
		rect: image.Rect(10, 4, 30, 24),
	}
	r.SetScreen(screen)
	r.RedrawWithState(state.State{Generation: 3})

	if w, h := r.Size(); w != 40 || h != 24 {
		t.Fatalf("pixel size = %dx%d, want 40x24", w, h)
	}
	if screen.draws != 1 {
		t.Errorf("draws = %d", screen.draws)
	}

	if c, _, _, _ := sim.GetContent(0, 0); c != 'h' {
		t.Errorf("cell (0,0) = %q, want 'h'", c)
	}
	if c, _, _, _ := sim.GetContent(1, 0); c != 'i' {
		t.Errorf("cell (1,0) = %q, want 'i'", c)
	}
	if c, _, _, _ := sim.GetContent(5, 5); c != upperHalf {
		t.Errorf("cell (5,5) = %q, want half block", c)
	}

	if got := r.pixels.RGBAAt(20, 14); got.R < 200 || got.G > 40 {
		t.Errorf("image pixel = %v, want red", got)
	}
	if got := r.pixels.RGBAAt(2, 20); got != Background {
		t.Errorf("background pixel = %v", got)
	}
}

func TestTerminalRendererAlignedText(t *testing.T) {
	r, sim := newSimRenderer(t)
	r.SetScreen(screenFunc(func(d Drawer, _ state.State) {
		w, _ := d.Size()
		d.DrawText("end", w, 2, TextStyle{Align: TextAlignRight})
	}))
	r.RedrawWithState(state.State{})
	if c, _, _, _ := sim.GetContent(37, 1); c != 'e' {
		t.Errorf("cell (37,1) = %q, want 'e'", c)
	}
}

func TestEventForKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want buttons.Event
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone), buttons.ToggleInvert, true},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), buttons.Export, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), buttons.Exit, true},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), "", false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		got, ok := eventForKey(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("eventForKey(%v) = %q, %v; want %q, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestTerminalRedrawBeforeStart(t *testing.T) {
	r := NewTerminalRenderer(tcell.NewSimulationScreen("UTF-8"))
	r.SetScreen(&stubScreen{})
	r.RedrawWithState(state.State{})
	if r.pixels != nil {
		t.Error("redraw before Start should be a no-op")
	}
}

type screenFunc func(Drawer, state.State)

func (f screenFunc) Start(ctx context.Context) error { return nil }
func (f screenFunc) Stop() error                     { return nil }
func (f screenFunc) Draw(d Drawer, s state.State)    { f(d, s) }
