package buttons

import (
	"context"
	"sync"

	"github.com/rook-computer/patternmaker/internal/system"
)

// Linux input-event-codes.h
const (
	keyEsc = 1
	keyQ   = 16
	keyI   = 23
	keyA   = 30
	keyS   = 31
	keyG   = 34
	keyB   = 48
	keyF4  = 62
)

// ForKeyCode maps an evdev key code to an event.
func ForKeyCode(code uint16) (Event, bool) {
	switch code {
	case keyI:
		return ToggleInvert, true
	case keyG:
		return ToggleGrayscale, true
	case keyA:
		return CycleColorA, true
	case keyB:
		return CycleColorB, true
	case keyS:
		return Export, true
	case keyQ, keyEsc, keyF4:
		return Exit, true
	}
	return "", false
}

// KeyboardButtons turns evdev key presses into events.
type KeyboardButtons struct {
	Logger system.Logger

	ch     chan Event
	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewKeyboardButtons(logger system.Logger) *KeyboardButtons {
	return &KeyboardButtons{Logger: logger, ch: make(chan Event, 8)}
}

func (k *KeyboardButtons) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.cancel != nil {
		return nil
	}
	keyCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	system.WatchKeys(keyCtx, k.Logger, k.handleKey)
	return nil
}

func (k *KeyboardButtons) handleKey(code uint16) {
	ev, ok := ForKeyCode(code)
	if !ok {
		return
	}
	// Drop presses while the app is busy rather than blocking the reader.
	select {
	case k.ch <- ev:
	default:
	}
}

func (k *KeyboardButtons) Stop() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.cancel != nil {
		k.cancel()
		k.cancel = nil
	}
	return nil
}

func (k *KeyboardButtons) Events() <-chan Event { return k.ch }
