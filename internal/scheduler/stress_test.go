package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rensjo/habitquestd/internal/notify"
)

func TestEngineStressStatusReadsDuringTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	var calls int64
	ev := evaluatorFunc(func(now time.Time) (notify.Notification, Outcome) {
		n := atomic.AddInt64(&calls, 1)
		if n%3 == 0 {
			return notify.NewReminder(false), OutcomeNotify
		}
		return notify.Notification{}, OutcomeRecentActivity
	})
	engine := NewEngine(ev, notify.NoopNotifier{}, time.Millisecond, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	const workers = 8
	const perWorker = 500
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = engine.Status()
				_ = engine.Running()
			}
		}()
	}
	wg.Wait()

	time.Sleep(20 * time.Millisecond)
	engine.Stop()

	st := engine.Status()
	if st.Ticks == 0 {
		t.Fatal("expected ticks while status was being read")
	}
	if st.Running {
		t.Fatal("expected stopped engine in final status")
	}
}
