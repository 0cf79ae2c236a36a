package model

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultNotificationConfig(t *testing.T) {
	cfg := DefaultNotificationConfig()
	if !cfg.Enabled {
		t.Fatal("expected default config to be enabled")
	}
	if cfg.ReminderStartHour != 8 || cfg.ReminderEndHour != 22 {
		t.Fatalf("unexpected default window: %d-%d", cfg.ReminderStartHour, cfg.ReminderEndHour)
	}
	if cfg.MaxRemindersPerDay != 2 {
		t.Fatalf("unexpected default daily cap: %d", cfg.MaxRemindersPerDay)
	}
	if cfg.StreakWarningThreshold != 3 {
		t.Fatalf("unexpected default warning threshold: %d", cfg.StreakWarningThreshold)
	}
	if cfg.SoundEnabled {
		t.Fatal("expected sound to default off")
	}
	want := []int{12, 18, 20}
	if len(cfg.StreakProtectionHours) != len(want) {
		t.Fatalf("unexpected protection hours: %v", cfg.StreakProtectionHours)
	}
	for i, h := range want {
		if cfg.StreakProtectionHours[i] != h {
			t.Fatalf("unexpected protection hours: %v", cfg.StreakProtectionHours)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got: %v", err)
	}
}

func TestNotificationConfigValidateHourRange(t *testing.T) {
	cfg := DefaultNotificationConfig()
	cfg.ReminderStartHour = -1
	err := cfg.Validate()
	if err == nil || !errors.Is(err, ErrHourOutOfRange) {
		t.Fatalf("expected ErrHourOutOfRange, got: %v", err)
	}

	cfg.ReminderStartHour = 8
	cfg.ReminderEndHour = 24
	err = cfg.Validate()
	if err == nil || !errors.Is(err, ErrHourOutOfRange) {
		t.Fatalf("expected ErrHourOutOfRange, got: %v", err)
	}
}

func TestNotificationConfigValidateInvertedWindow(t *testing.T) {
	cfg := DefaultNotificationConfig()
	cfg.ReminderStartHour = 20
	cfg.ReminderEndHour = 8
	err := cfg.Validate()
	if err == nil || !errors.Is(err, ErrInvertedWindow) {
		t.Fatalf("expected ErrInvertedWindow, got: %v", err)
	}
}

func TestNotificationConfigValidateNegativeCap(t *testing.T) {
	cfg := DefaultNotificationConfig()
	cfg.MaxRemindersPerDay = -1
	err := cfg.Validate()
	if err == nil || !errors.Is(err, ErrNegativeReminders) {
		t.Fatalf("expected ErrNegativeReminders, got: %v", err)
	}
}

func TestWithinActiveHoursInclusive(t *testing.T) {
	cfg := DefaultNotificationConfig()
	day := func(hour, min int) time.Time {
		return time.Date(2026, 8, 21, hour, min, 0, 0, time.UTC)
	}
	if !cfg.WithinActiveHours(day(8, 0)) {
		t.Fatal("expected 08:00 inside the window")
	}
	if !cfg.WithinActiveHours(day(22, 59)) {
		t.Fatal("expected 22:59 inside the window")
	}
	if cfg.WithinActiveHours(day(7, 59)) {
		t.Fatal("expected 07:59 outside the window")
	}
	if cfg.WithinActiveHours(day(23, 0)) {
		t.Fatal("expected 23:00 outside the window")
	}
}
