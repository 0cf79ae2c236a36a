package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrHourOutOfRange    = errors.New("model: reminder hour outside 0-23")
	ErrInvertedWindow    = errors.New("model: reminder start hour after end hour")
	ErrNegativeReminders = errors.New("model: max reminders per day must not be negative")
)

// NotificationConfig is the user's scheduling policy, replaced as a whole on
// every update. The streak/random/intelligent/adaptive fields and the
// protection hours are persisted and round-tripped but never read by the
// decision; only Enabled, the hour window and MaxRemindersPerDay steer it.
type NotificationConfig struct {
	Enabled                bool  `json:"enabled"`
	StreakReminders        bool  `json:"streak_reminders"`
	RandomReminders        bool  `json:"random_reminders"`
	ReminderStartHour      int   `json:"reminder_start_hour"`
	ReminderEndHour        int   `json:"reminder_end_hour"`
	MaxRemindersPerDay     int   `json:"max_reminders_per_day"`
	StreakWarningThreshold int   `json:"streak_warning_threshold"`
	SoundEnabled           bool  `json:"sound_enabled"`
	IntelligentTiming      bool  `json:"intelligent_timing"`
	AdaptiveFrequency      bool  `json:"adaptive_frequency"`
	StreakProtectionHours  []int `json:"streak_protection_hours"`
}

func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Enabled:                true,
		StreakReminders:        true,
		RandomReminders:        true,
		ReminderStartHour:      8,
		ReminderEndHour:        22,
		MaxRemindersPerDay:     2,
		StreakWarningThreshold: 3,
		SoundEnabled:           false,
		IntelligentTiming:      true,
		AdaptiveFrequency:      true,
		StreakProtectionHours:  []int{12, 18, 20},
	}
}

func (c NotificationConfig) Validate() error {
	if c.ReminderStartHour < 0 || c.ReminderStartHour > 23 {
		return fmt.Errorf("%w: start %d", ErrHourOutOfRange, c.ReminderStartHour)
	}
	if c.ReminderEndHour < 0 || c.ReminderEndHour > 23 {
		return fmt.Errorf("%w: end %d", ErrHourOutOfRange, c.ReminderEndHour)
	}
	if c.ReminderStartHour > c.ReminderEndHour {
		return fmt.Errorf("%w: %d-%d", ErrInvertedWindow, c.ReminderStartHour, c.ReminderEndHour)
	}
	if c.MaxRemindersPerDay < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeReminders, c.MaxRemindersPerDay)
	}
	if c.StreakWarningThreshold < 0 {
		return errors.New("model: streak warning threshold must not be negative")
	}
	return nil
}

// WithinActiveHours reports whether the wall-clock hour of now falls inside
// the inclusive [start, end] window.
func (c NotificationConfig) WithinActiveHours(now time.Time) bool {
	h := now.Hour()
	return h >= c.ReminderStartHour && h <= c.ReminderEndHour
}
