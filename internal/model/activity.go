package model

import "time"

const sessionWindowHours = 24

// ActivityData tracks what the user has been doing, as the scheduler sees it.
// HabitCompletions holds the last completion per habit id and is never pruned.
type ActivityData struct {
	LastActivity           time.Time            `json:"last_activity"`
	DailySessions          []time.Time          `json:"daily_sessions"`
	HabitCompletions       map[string]time.Time `json:"habit_completions"`
	NotificationsSentToday int                  `json:"notifications_sent_today"`
	LastNotificationDate   *time.Time           `json:"last_notification_date"`
}

func NewActivityData(now time.Time) ActivityData {
	return ActivityData{
		LastActivity:     now,
		DailySessions:    []time.Time{},
		HabitCompletions: make(map[string]time.Time),
	}
}

// RecordSession marks a user interaction at now and drops sessions older
// than the trailing 24-hour window (whole-hour age, so a session is kept
// until 25 hours have fully elapsed).
func (a *ActivityData) RecordSession(now time.Time) {
	a.LastActivity = now
	a.DailySessions = append(a.DailySessions, now)
	a.PruneSessions(now)
}

func (a *ActivityData) PruneSessions(now time.Time) {
	kept := a.DailySessions[:0]
	for _, s := range a.DailySessions {
		if wholeHours(now.Sub(s)) <= sessionWindowHours {
			kept = append(kept, s)
		}
	}
	a.DailySessions = kept
}

func (a *ActivityData) RecordCompletion(habitID string, now time.Time) {
	if a.HabitCompletions == nil {
		a.HabitCompletions = make(map[string]time.Time)
	}
	a.HabitCompletions[habitID] = now
}

// RollDate resets the daily counter the first time now lands on a calendar
// day different from LastNotificationDate (or when no date is set yet) and
// stamps the new boundary. It reports whether a reset happened.
func (a *ActivityData) RollDate(now time.Time) bool {
	if a.LastNotificationDate != nil && sameCalendarDay(*a.LastNotificationDate, now) {
		return false
	}
	a.NotificationsSentToday = 0
	stamp := now
	a.LastNotificationDate = &stamp
	return true
}

// InactiveHours is the whole-hour (truncated) gap between LastActivity and now.
func (a ActivityData) InactiveHours(now time.Time) int {
	return wholeHours(now.Sub(a.LastActivity))
}

func wholeHours(d time.Duration) int {
	return int(d / time.Hour)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
