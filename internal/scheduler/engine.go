package scheduler

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Rensjo/habitquestd/internal/notify"
)

const DefaultTickInterval = time.Hour

var (
	ErrAlreadyStarted = errors.New("scheduler: engine already started")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

type State string

const (
	StateIdle       State = "idle"
	StateEvaluating State = "evaluating"
	StateNotifying  State = "notifying"
)

// Evaluator runs one scheduling decision at now and, when the outcome is
// OutcomeNotify, returns the notification to dispatch. Implementations own
// their locking and persistence; the engine never holds their locks across
// the Send call.
type Evaluator interface {
	EvaluateTick(now time.Time) (notify.Notification, Outcome)
}

type Status struct {
	Running            bool
	State              State
	Interval           time.Duration
	StartedAt          time.Time
	Ticks              uint64
	LastTick           time.Time
	LastOutcome        Outcome
	LastNotificationID string
	LastError          string
}

// Engine drives the tick loop: sleep one interval, evaluate, dispatch when
// the decision is positive, repeat until stopped. Dispatch is fire and
// forget; a slow or failing Send never delays the next tick.
type Engine struct {
	evaluator Evaluator
	notifier  notify.Notifier
	interval  time.Duration
	logger    *log.Logger

	mu         sync.Mutex
	started    bool
	stopped    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	dispatchWG sync.WaitGroup
	status     Status
}

func NewEngine(evaluator Evaluator, notifier notify.Notifier, interval time.Duration, logger *log.Logger) *Engine {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		evaluator: evaluator,
		notifier:  notifier,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		status:    Status{State: StateIdle, Interval: interval},
	}
}

func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true
	e.status.Running = true
	e.status.StartedAt = time.Now()
	go e.loop()
	return nil
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.status.Running = false
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
	e.dispatchWG.Wait()
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && !e.stopped
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) loop() {
	defer close(e.doneCh)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.tick(time.Now())
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) tick(now time.Time) {
	e.setState(StateEvaluating)
	n, outcome := e.evaluator.EvaluateTick(now)

	e.mu.Lock()
	e.status.Ticks++
	e.status.LastTick = now
	e.status.LastOutcome = outcome
	if outcome != OutcomeNotify {
		e.status.State = StateIdle
		e.mu.Unlock()
		return
	}
	e.status.State = StateNotifying
	e.status.LastNotificationID = n.ID
	e.mu.Unlock()

	e.dispatchWG.Add(1)
	go func() {
		defer e.dispatchWG.Done()
		if err := e.notifier.Send(n); err != nil {
			e.logger.Printf("scheduler: dispatch %s failed: %v", n.ID, err)
			e.mu.Lock()
			e.status.LastError = err.Error()
			e.mu.Unlock()
		}
		e.setState(StateIdle)
	}()
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.status.State = s
	e.mu.Unlock()
}
