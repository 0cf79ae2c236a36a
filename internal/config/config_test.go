package config

import (
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.TickInterval != time.Hour {
		t.Fatalf("unexpected default tick interval: %v", cfg.TickInterval)
	}
	if cfg.Notifier != NotifierDesktop {
		t.Fatalf("unexpected default notifier: %q", cfg.Notifier)
	}
	if cfg.Headless {
		t.Fatal("expected dashboard mode by default")
	}
	if cfg.ConfigDir != "" {
		t.Fatalf("expected platform-resolved config dir by default, got %q", cfg.ConfigDir)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("HABITQUEST_TICK_INTERVAL", "5m")
	t.Setenv("HABITQUEST_CONFIG_DIR", "/tmp/habitquest-test")
	t.Setenv("HABITQUEST_HEADLESS", "1")
	t.Setenv("HABITQUEST_NOTIFIER", "noop")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.TickInterval != 5*time.Minute {
		t.Fatalf("unexpected tick interval: %v", cfg.TickInterval)
	}
	if cfg.ConfigDir != "/tmp/habitquest-test" {
		t.Fatalf("unexpected config dir: %q", cfg.ConfigDir)
	}
	if !cfg.Headless {
		t.Fatal("expected headless mode")
	}
	if cfg.Notifier != NotifierNoop {
		t.Fatalf("unexpected notifier: %q", cfg.Notifier)
	}
}

func TestRuntimeConfigFromEnvBareMinutes(t *testing.T) {
	t.Setenv("HABITQUEST_TICK_INTERVAL", "15")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.TickInterval != 15*time.Minute {
		t.Fatalf("expected a bare integer to read as minutes, got %v", cfg.TickInterval)
	}
}

func TestRuntimeConfigFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("HABITQUEST_TICK_INTERVAL", "soon")
	t.Setenv("HABITQUEST_HEADLESS", "maybe")
	t.Setenv("HABITQUEST_NOTIFIER", "carrier-pigeon")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.TickInterval != time.Hour {
		t.Fatalf("expected default tick interval, got %v", cfg.TickInterval)
	}
	if cfg.Headless {
		t.Fatal("expected headless to stay off")
	}
	if cfg.Notifier != NotifierDesktop {
		t.Fatalf("expected default notifier, got %q", cfg.Notifier)
	}
}
