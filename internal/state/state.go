package state

import (
	"sync"

	"github.com/rook-computer/patternmaker/internal/pattern"
)

type Phase int

const (
	BOOTING Phase = iota
	READY
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case READY:
		return "ready"
	case ERROR:
		return "error"
	}
	return "unknown"
}

type NetworkInfo struct {
	IP  string
	URL string
}

type ExportInfo struct {
	Path  string
	Count int
	Err   string
}

type State struct {
	Phase  Phase
	Config pattern.Config
	// Revision is bumped on every config change; Rendered is the revision
	// currently painted on the canvas.
	Revision uint64
	Rendered uint64
	// Generation is bumped on every state change.
	Generation uint64
	Network    NetworkInfo
	Export     ExportInfo
}

type Store struct {
	mu       sync.RWMutex
	state    State
	watchers map[chan struct{}]struct{}
}

func NewStore(cfg pattern.Config) *Store {
	return &Store{
		state:    State{Phase: BOOTING, Config: cfg, Revision: 1, Generation: 1},
		watchers: make(map[chan struct{}]struct{}),
	}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	if store.state.Phase != phase {
		store.state.Phase = phase
		store.state.Generation++
	}
	store.mu.Unlock()
}

// SetConfig replaces the config and returns the resulting revision.
// Watchers are notified only when the config actually changed.
func (store *Store) SetConfig(cfg pattern.Config) uint64 {
	return store.UpdateConfig(func(c *pattern.Config) { *c = cfg })
}

// UpdateConfig applies fn to a copy of the config under the store lock.
func (store *Store) UpdateConfig(fn func(cfg *pattern.Config)) uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := store.state.Config
	fn(&next)
	if next == store.state.Config {
		return store.state.Revision
	}
	store.state.Config = next
	store.state.Revision++
	store.state.Generation++
	for ch := range store.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return store.state.Revision
}

// MarkRendered records that revision rev is on the canvas.
func (store *Store) MarkRendered(rev uint64) {
	store.mu.Lock()
	if rev > store.state.Rendered {
		store.state.Rendered = rev
		store.state.Generation++
	}
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	if store.state.Network != network {
		store.state.Network = network
		store.state.Generation++
	}
	store.mu.Unlock()
}

func (store *Store) UpdateExport(export ExportInfo) {
	store.mu.Lock()
	store.state.Export = export
	store.state.Generation++
	store.mu.Unlock()
}

// Watch returns a channel that receives a value after config changes.
// Other fields only move Generation, which displays poll.
// Notifications coalesce: a slow reader sees one pending signal for any
// number of changes. The returned func unregisters the watcher.
func (store *Store) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	store.mu.Lock()
	store.watchers[ch] = struct{}{}
	store.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			store.mu.Lock()
			delete(store.watchers, ch)
			store.mu.Unlock()
		})
	}
}
