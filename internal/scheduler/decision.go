package scheduler

import (
	"time"

	"github.com/Rensjo/habitquestd/internal/model"
)

// InactivityThresholdHours is how long the user must have been away, in
// whole hours, before a reminder fires.
const InactivityThresholdHours = 12

type Outcome string

const (
	OutcomeNotify         Outcome = "notify"
	OutcomeDisabled       Outcome = "disabled"
	OutcomeOutsideHours   Outcome = "outside_hours"
	OutcomeQuotaReached   Outcome = "quota_reached"
	OutcomeRecentActivity Outcome = "recent_activity"
)

// Decide runs one tick of the reminder policy against cfg and act at now.
// It may mutate act: a calendar-day change resets the daily counter even on
// ticks that skip, and a notify outcome consumes one unit of daily quota.
// The second return reports whether act changed and must be persisted
// before the tick completes.
func Decide(cfg model.NotificationConfig, act *model.ActivityData, now time.Time) (Outcome, bool) {
	if !cfg.Enabled {
		return OutcomeDisabled, false
	}
	if !cfg.WithinActiveHours(now) {
		return OutcomeOutsideHours, false
	}
	changed := act.RollDate(now)
	if act.NotificationsSentToday >= cfg.MaxRemindersPerDay {
		return OutcomeQuotaReached, changed
	}
	if act.InactiveHours(now) >= InactivityThresholdHours {
		act.NotificationsSentToday++
		return OutcomeNotify, true
	}
	return OutcomeRecentActivity, changed
}
