package web

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "PATTERN_LISTEN"
	EnvDevMode    = "PATTERN_DEV"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - device:    :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := strings.TrimSpace(os.Getenv(EnvListenAddr))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}
	if _, _, err := net.SplitHostPort(listenAddr); err != nil {
		return ServerConfig{}, fmt.Errorf("%s must be host:port (got %q): %w", EnvListenAddr, listenAddr, err)
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, nil
}
