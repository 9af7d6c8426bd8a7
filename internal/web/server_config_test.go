package web

import "testing"

func TestDefaultServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	cfg, err := DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (ServerConfig{ListenAddr: ":8080"}) {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvDevMode, "true")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (ServerConfig{ListenAddr: "127.0.0.1:9000", DevMode: true}) {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv(EnvListenAddr, "8080")
	if _, err := DefaultServerConfigFromEnv(":8080"); err == nil {
		t.Error("expected an error for a listen address without a colon")
	}

	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "sometimes")
	if _, err := DefaultServerConfigFromEnv(":8080"); err == nil {
		t.Error("expected an error for a non-boolean dev flag")
	}
}
