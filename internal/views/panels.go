package views

import (
	"fmt"
	"strings"
)

type HabitItemData struct {
	ID            string
	LastCompleted string
	DoneToday     bool
}

type HabitsPanelData struct {
	Items          []HabitItemData
	SelectedID     string
	TrackActive    bool
	TrackInputView string
}

type ActivityPanelData struct {
	LastActivity  string
	InactiveHours int
	Sessions      int
	SentToday     int
	MaxPerDay     int
	LastReminder  string
}

type ServicePanelData struct {
	Running     bool
	State       string
	Interval    string
	Ticks       uint64
	LastTick    string
	LastOutcome string
	LastError   string
	Enabled     bool
	Window      string
	Supported   bool
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	b.WriteString("actions: [j/k]move [c]complete [a]track [space]check-in\n")
	if data.TrackActive {
		b.WriteString("track: " + data.TrackInputView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("  (no habits tracked yet)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.DoneToday {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s last:%s\n", cursor, mark, item.ID, item.LastCompleted))
	}
	return strings.TrimSpace(b.String())
}

func RenderActivityPanel(data ActivityPanelData) string {
	var b strings.Builder
	b.WriteString("activity:\n")
	b.WriteString(fmt.Sprintf("last-seen: %s\n", data.LastActivity))
	b.WriteString(fmt.Sprintf("idle: %dh\n", data.InactiveHours))
	b.WriteString(fmt.Sprintf("sessions-24h: %d\n", data.Sessions))
	b.WriteString(fmt.Sprintf("reminders-today: %d/%d\n", data.SentToday, data.MaxPerDay))
	if data.LastReminder != "" {
		b.WriteString(fmt.Sprintf("last-reminder: %s\n", data.LastReminder))
	}
	return strings.TrimSpace(b.String())
}

func RenderServicePanel(data ServicePanelData) string {
	var b strings.Builder
	b.WriteString("service:\n")
	running := "no"
	if data.Running {
		running = "yes"
	}
	b.WriteString(fmt.Sprintf("running: %s (state %s)\n", running, data.State))
	b.WriteString(fmt.Sprintf("interval: %s | ticks: %d\n", data.Interval, data.Ticks))
	if data.LastTick != "" {
		b.WriteString(fmt.Sprintf("last-tick: %s (%s)\n", data.LastTick, data.LastOutcome))
	}
	if data.LastError != "" {
		b.WriteString(fmt.Sprintf("last-error: %s\n", data.LastError))
	}
	enabled := "off"
	if data.Enabled {
		enabled = "on"
	}
	b.WriteString(fmt.Sprintf("notifications: %s | window: %s\n", enabled, data.Window))
	supported := "unavailable"
	if data.Supported {
		supported = "available"
	}
	b.WriteString(fmt.Sprintf("desktop-notifier: %s\n", supported))
	b.WriteString("actions: [n]toggle [t]test [/]command [?]help")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	return strings.TrimSpace(b.String())
}
