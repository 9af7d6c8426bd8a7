package buttons

import "context"

type Event string

const (
    ToggleInvert    Event = "toggle-invert"
    ToggleGrayscale Event = "toggle-grayscale"
    CycleColorA     Event = "cycle-color-a"
    CycleColorB     Event = "cycle-color-b"
    Export          Event = "export"
    Exit            Event = "exit"
)

type Buttons interface {
    Start(ctx context.Context) error
    Stop() error
    Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event { return n.ch }

// ForRune maps a typed character to an event. Terminal and keyboard drivers
// share this layout.
func ForRune(r rune) (Event, bool) {
    switch r {
    case 'i', 'I':
        return ToggleInvert, true
    case 'g', 'G':
        return ToggleGrayscale, true
    case 'a', 'A':
        return CycleColorA, true
    case 'b', 'B':
        return CycleColorB, true
    case 's', 'S':
        return Export, true
    case 'q', 'Q':
        return Exit, true
    }
    return "", false
}

// Help is the one-line key legend shown on screen.
const Help = "i invert  g gray  a/b colors  s save  q quit"
