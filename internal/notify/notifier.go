package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

const (
	ReminderTitle = "🎯 HabitQuest Reminder"
	ReminderBody  = "Don't forget to check in with your habits today! Your streaks are waiting for you."
	ReminderIcon  = "habitquest-icon"
)

// Notification is one alert bound for the OS notification surface. ID ties
// log lines and status snapshots to a single dispatch.
type Notification struct {
	ID    string
	Title string
	Body  string
	Icon  string
	Sound bool
}

func New(title, body string, sound bool) Notification {
	return Notification{
		ID:    uuid.NewString(),
		Title: title,
		Body:  body,
		Icon:  ReminderIcon,
		Sound: sound,
	}
}

func NewReminder(sound bool) Notification {
	return New(ReminderTitle, ReminderBody, sound)
}

// Notifier delivers alerts. Supported reports whether a delivery path exists
// on this platform. RequestPermission asks for delivery rights; the exec
// paths have no permission gate, so it reports whether delivery can work.
type Notifier interface {
	Send(Notification) error
	Supported() bool
	RequestPermission() (bool, error)
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error          { return nil }
func (NoopNotifier) Supported() bool                  { return false }
func (NoopNotifier) RequestPermission() (bool, error) { return false, nil }

type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		args := []string{"--app-name", "HabitQuest"}
		if n.Icon != "" {
			args = append(args, "--icon", n.Icon)
		}
		args = append(args, n.Title, n.Body)
		return exec.Command("notify-send", args...).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		if n.Sound {
			script += ` sound name "default"`
		}
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func (ExecNotifier) Supported() bool {
	switch runtime.GOOS {
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	default:
		return false
	}
}

func (e ExecNotifier) RequestPermission() (bool, error) {
	return e.Supported(), nil
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
