package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	NotifierDesktop = "desktop"
	NotifierNoop    = "noop"
)

type RuntimeConfig struct {
	TickInterval time.Duration
	ConfigDir    string
	Headless     bool
	Notifier     string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		TickInterval: time.Hour,
		Notifier:     NotifierDesktop,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvDuration("HABITQUEST_TICK_INTERVAL"); ok && v > 0 {
		cfg.TickInterval = v
	}
	if v := strings.TrimSpace(os.Getenv("HABITQUEST_CONFIG_DIR")); v != "" {
		cfg.ConfigDir = v
	}
	if v, ok := getEnvBool("HABITQUEST_HEADLESS"); ok {
		cfg.Headless = v
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("HABITQUEST_NOTIFIER"))) {
	case NotifierDesktop:
		cfg.Notifier = NotifierDesktop
	case NotifierNoop:
		cfg.Notifier = NotifierNoop
	}
	return cfg
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if v, err := time.ParseDuration(raw); err == nil {
		return v, true
	}
	if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
		return time.Duration(mins) * time.Minute, true
	}
	return 0, false
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
