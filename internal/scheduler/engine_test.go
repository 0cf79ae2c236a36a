package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rensjo/habitquestd/internal/notify"
)

type evaluatorFunc func(now time.Time) (notify.Notification, Outcome)

func (f evaluatorFunc) EvaluateTick(now time.Time) (notify.Notification, Outcome) {
	return f(now)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
	ch   chan notify.Notification
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{err: err, ch: make(chan notify.Notification, 64)}
}

func (r *recordingNotifier) Send(n notify.Notification) error {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	r.ch <- n
	return r.err
}

func (r *recordingNotifier) Supported() bool                  { return true }
func (r *recordingNotifier) RequestPermission() (bool, error) { return true, nil }

func waitNotification(t *testing.T, ch <-chan notify.Notification, timeout time.Duration) notify.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for notification")
		return notify.Notification{}
	}
}

func TestEngineTickDispatchesOnNotify(t *testing.T) {
	rec := newRecordingNotifier(nil)
	var fired int32
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		if atomic.CompareAndSwapInt32(&fired, 0, 1) {
			return notify.NewReminder(false), OutcomeNotify
		}
		return notify.Notification{}, OutcomeRecentActivity
	})
	engine := NewEngine(ev, rec, 10*time.Millisecond, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	n := waitNotification(t, rec.ch, time.Second)
	if n.Title != notify.ReminderTitle {
		t.Fatalf("unexpected notification title: %q", n.Title)
	}
	if n.ID == "" {
		t.Fatal("expected a dispatch id")
	}
}

func TestEngineSkipDoesNotDispatch(t *testing.T) {
	rec := newRecordingNotifier(nil)
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		return notify.Notification{}, OutcomeRecentActivity
	})
	engine := NewEngine(ev, rec, 5*time.Millisecond, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	engine.Stop()

	rec.mu.Lock()
	sent := len(rec.sent)
	rec.mu.Unlock()
	if sent != 0 {
		t.Fatalf("expected no dispatches, got %d", sent)
	}
	st := engine.Status()
	if st.Ticks == 0 {
		t.Fatal("expected at least one tick")
	}
	if st.LastOutcome != OutcomeRecentActivity {
		t.Fatalf("unexpected last outcome: %s", st.LastOutcome)
	}
}

func TestEngineStopHaltsTicking(t *testing.T) {
	var ticks int64
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		atomic.AddInt64(&ticks, 1)
		return notify.Notification{}, OutcomeRecentActivity
	})
	engine := NewEngine(ev, notify.NoopNotifier{}, 5*time.Millisecond, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !engine.Running() {
		t.Fatal("expected engine running after start")
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt64(&ticks) < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		case <-time.After(time.Millisecond):
		}
	}

	engine.Stop()
	if engine.Running() {
		t.Fatal("expected engine stopped")
	}
	after := atomic.LoadInt64(&ticks)
	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt64(&ticks); got != after {
		t.Fatalf("ticks advanced after stop: %d -> %d", after, got)
	}
}

func TestEngineDoubleStartAndRestart(t *testing.T) {
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		return notify.Notification{}, OutcomeRecentActivity
	})
	engine := NewEngine(ev, notify.NoopNotifier{}, time.Hour, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := engine.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	engine.Stop()
	if err := engine.Start(); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestEngineFailedDispatchDoesNotStallTicks(t *testing.T) {
	rec := newRecordingNotifier(errors.New("notification daemon unreachable"))
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		return notify.NewReminder(false), OutcomeNotify
	})
	engine := NewEngine(ev, rec, 10*time.Millisecond, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	waitNotification(t, rec.ch, time.Second)
	waitNotification(t, rec.ch, time.Second)
	engine.Stop()

	st := engine.Status()
	if st.LastError == "" {
		t.Fatal("expected last dispatch error recorded")
	}
	if st.Ticks < 2 {
		t.Fatalf("expected ticking to continue past the failure, got %d ticks", st.Ticks)
	}
}

func TestEngineTickUpdatesStatus(t *testing.T) {
	rec := newRecordingNotifier(nil)
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		return notify.NewReminder(true), OutcomeNotify
	})
	engine := NewEngine(ev, rec, time.Hour, nil)

	now := time.Date(2026, 8, 21, 14, 0, 0, 0, time.UTC)
	engine.tick(now)
	engine.dispatchWG.Wait()

	st := engine.Status()
	if st.Ticks != 1 {
		t.Fatalf("expected 1 tick, got %d", st.Ticks)
	}
	if !st.LastTick.Equal(now) {
		t.Fatalf("unexpected last tick: %v", st.LastTick)
	}
	if st.LastOutcome != OutcomeNotify {
		t.Fatalf("unexpected outcome: %s", st.LastOutcome)
	}
	if st.LastNotificationID == "" {
		t.Fatal("expected dispatch id in status")
	}
	if st.State != StateIdle {
		t.Fatalf("expected idle after dispatch completed, got %s", st.State)
	}
	if len(rec.sent) != 1 || !rec.sent[0].Sound {
		t.Fatalf("unexpected dispatch record: %+v", rec.sent)
	}
}
