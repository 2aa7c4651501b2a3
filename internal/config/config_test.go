package config

import (
	"os"
	"testing"
	"time"
)

// unsetenv removes key for the duration of the test. t.Setenv registers
// the restore; LookupEnv must not see the variable at all.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SKILLGAUGE_HOST", "SKILLGAUGE_PORT",
		"SKILLGAUGE_REQUEST_TIMEOUT", "SKILLGAUGE_SHUTDOWN_TIMEOUT",
		"SKILLGAUGE_DB", "SKILLGAUGE_ROLES_FILE",
	} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %s:%d, want 0.0.0.0:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 120*time.Second {
		t.Errorf("request timeout = %v, want 2m", cfg.Server.RequestTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SKILLGAUGE_HOST", "127.0.0.1")
	t.Setenv("SKILLGAUGE_PORT", "9000")
	t.Setenv("SKILLGAUGE_REQUEST_TIMEOUT", "30s")
	t.Setenv("SKILLGAUGE_DB", "/tmp/events.db")
	t.Setenv("SKILLGAUGE_ROLES_FILE", "/etc/skillgauge/roles.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("server = %s:%d, want 127.0.0.1:9000", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout = %v, want 30s", cfg.Server.RequestTimeout)
	}
	if cfg.Store.Path != "/tmp/events.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Roles.Path != "/etc/skillgauge/roles.yaml" {
		t.Errorf("roles path = %q", cfg.Roles.Path)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SKILLGAUGE_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Error("port 70000 should fail validation")
	}
}
