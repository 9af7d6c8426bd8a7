package web

import (
	"io"

	"github.com/rook-computer/patternmaker/internal/pattern"
	"github.com/rook-computer/patternmaker/internal/state"
)

// ConfigStore abstracts the pattern state used by the API.
//
// The concrete implementation is *state.Store.
type ConfigStore interface {
	Snapshot() state.State
	UpdateConfig(fn func(cfg *pattern.Config)) uint64
}

// PatternSource serves the current canvas. Implemented by app.App.
type PatternSource interface {
	WritePNG(w io.Writer) error
}

// Exporter saves the current canvas on the device and returns the path.
type Exporter interface {
	ExportToFile() (string, error)
}

// sysLogger matches the logging shape used across the app.
// It is intentionally tiny so callers can pass existing loggers without adapters.
type sysLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Config   ConfigStore
	Pattern  PatternSource
	Exporter Exporter
	Logger   sysLogger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Logger == nil {
		out.Logger = noopSysLogger{}
	}
	return out
}

type noopSysLogger struct{}

func (noopSysLogger) Infof(string, string, ...interface{})  {}
func (noopSysLogger) Errorf(string, string, ...interface{}) {}
