package notify

import "testing"

func TestNewReminderCarriesProductCopy(t *testing.T) {
	n := NewReminder(true)
	if n.Title != ReminderTitle {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Body != ReminderBody {
		t.Fatalf("unexpected body: %q", n.Body)
	}
	if n.Icon != ReminderIcon {
		t.Fatalf("unexpected icon: %q", n.Icon)
	}
	if !n.Sound {
		t.Fatal("expected sound flag to pass through")
	}
	if n.ID == "" {
		t.Fatal("expected a dispatch id")
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("t", "b", false)
	b := New("t", "b", false)
	if a.ID == b.ID {
		t.Fatalf("expected unique dispatch ids, got %q twice", a.ID)
	}
}

func TestNoopNotifier(t *testing.T) {
	var n NoopNotifier
	if err := n.Send(NewReminder(false)); err != nil {
		t.Fatalf("noop send should not fail: %v", err)
	}
	if n.Supported() {
		t.Fatal("noop notifier reports no delivery path")
	}
	granted, err := n.RequestPermission()
	if err != nil || granted {
		t.Fatalf("unexpected permission result: %v %v", granted, err)
	}
}

func TestEscapeAppleScript(t *testing.T) {
	if got := escapeAppleScript(`say "hi"`); got != `say \"hi\"` {
		t.Fatalf("unexpected escape: %q", got)
	}
}
