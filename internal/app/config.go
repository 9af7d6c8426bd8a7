package app

import (
	"fmt"
	"os"

	"github.com/rook-computer/patternmaker/internal/pattern"
)

const (
	EnvColorA    = "PATTERN_COLOR_A"
	EnvColorB    = "PATTERN_COLOR_B"
	EnvExportDir = "PATTERN_EXPORT_DIR"
)

// DefaultConfigFromEnv returns DefaultConfig with colors overridden from
// the environment. Malformed colors are rejected.
func DefaultConfigFromEnv() (pattern.Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvColorA); v != "" {
		cfg.ColorA = v
	}
	if v := os.Getenv(EnvColorB); v != "" {
		cfg.ColorB = v
	}
	if err := cfg.Validate(); err != nil {
		return pattern.Config{}, fmt.Errorf("%s/%s: %w", EnvColorA, EnvColorB, err)
	}
	return cfg, nil
}

// ExportDirFromEnv returns the export directory from the environment or def.
func ExportDirFromEnv(def string) string {
	if v := os.Getenv(EnvExportDir); v != "" {
		return v
	}
	return def
}
