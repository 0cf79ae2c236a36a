package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Rensjo/habitquestd/internal/model"
	"github.com/Rensjo/habitquestd/internal/notify"
	"github.com/Rensjo/habitquestd/internal/scheduler"
	"github.com/Rensjo/habitquestd/internal/storage"
)

// Service is the synchronized boundary around reminder state. Config and
// activity each have their own lock, held for one logical operation
// including its file write. The tick path takes config before activity and
// releases both before any notification leaves the process.
type Service struct {
	store    storage.Store
	notifier notify.Notifier
	logger   *log.Logger
	engine   *scheduler.Engine

	cfgMu sync.Mutex
	cfg   model.NotificationConfig

	actMu sync.Mutex
	act   model.ActivityData
}

// Status is a point-in-time snapshot for callers; the completions map and
// protection hours are copies and safe to hold.
type Status struct {
	Engine                 scheduler.Status
	Config                 model.NotificationConfig
	LastActivity           time.Time
	SessionsInWindow       int
	NotificationsSentToday int
	LastNotificationDate   *time.Time
	HabitCompletions       map[string]time.Time
}

func New(store storage.Store, notifier notify.Notifier, tickInterval time.Duration, logger *log.Logger) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		cfg:      model.DefaultNotificationConfig(),
		act:      model.NewActivityData(time.Now()),
	}
	s.engine = scheduler.NewEngine(s, notifier, tickInterval, logger)
	return s
}

func (s *Service) Start() error {
	return s.engine.Start()
}

func (s *Service) Stop() {
	s.engine.Stop()
}

func (s *Service) Running() bool {
	return s.engine.Running()
}

// UpdateConfig validates and atomically replaces the scheduling policy. On a
// persistence failure the new policy is already live in memory and the error
// reports the write failure only.
func (s *Service) UpdateConfig(cfg model.NotificationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	err := s.store.SaveConfig(cfg)
	s.cfgMu.Unlock()
	if err != nil {
		s.logger.Printf("service: persist config: %v", err)
		return fmt.Errorf("service: persist config: %w", err)
	}
	return nil
}

func (s *Service) RecordActivity() {
	s.recordActivityAt(time.Now())
}

func (s *Service) recordActivityAt(now time.Time) {
	s.actMu.Lock()
	s.act.RecordSession(now)
	err := s.store.SaveActivity(s.act)
	s.actMu.Unlock()
	if err != nil {
		s.logger.Printf("service: persist activity: %v", err)
	}
}

func (s *Service) RecordHabitCompletion(habitID string) {
	s.recordCompletionAt(habitID, time.Now())
}

func (s *Service) recordCompletionAt(habitID string, now time.Time) {
	if strings.TrimSpace(habitID) == "" {
		return
	}
	s.actMu.Lock()
	s.act.RecordCompletion(habitID, now)
	err := s.store.SaveActivity(s.act)
	s.actMu.Unlock()
	if err != nil {
		s.logger.Printf("service: persist activity: %v", err)
	}
}

// LoadPersistedState overwrites the in-memory records with whatever the
// store has. Documents that were never written are not errors; malformed or
// invalid documents are reported and their defaults stay in effect.
func (s *Service) LoadPersistedState() error {
	var cfgErr, actErr error

	cfg, ok, err := s.store.LoadConfig()
	switch {
	case err != nil:
		cfgErr = err
	case ok:
		if verr := cfg.Validate(); verr != nil {
			cfgErr = fmt.Errorf("service: persisted config rejected: %w", verr)
		} else {
			s.cfgMu.Lock()
			s.cfg = cfg
			s.cfgMu.Unlock()
		}
	}

	act, ok, err := s.store.LoadActivity()
	switch {
	case err != nil:
		actErr = err
	case ok:
		if act.HabitCompletions == nil {
			act.HabitCompletions = make(map[string]time.Time)
		}
		s.actMu.Lock()
		s.act = act
		s.actMu.Unlock()
	}

	return errors.Join(cfgErr, actErr)
}

// EvaluateTick runs one scheduling decision. Both locks are held for the
// decision and the activity write, config first, and released before the
// notification is handed back for dispatch.
func (s *Service) EvaluateTick(now time.Time) (notify.Notification, scheduler.Outcome) {
	s.cfgMu.Lock()
	s.actMu.Lock()
	outcome, changed := scheduler.Decide(s.cfg, &s.act, now)
	sound := s.cfg.SoundEnabled
	var saveErr error
	if changed {
		saveErr = s.store.SaveActivity(s.act)
	}
	s.actMu.Unlock()
	s.cfgMu.Unlock()

	if saveErr != nil {
		s.logger.Printf("service: persist activity after tick: %v", saveErr)
	}
	if outcome != scheduler.OutcomeNotify {
		return notify.Notification{}, outcome
	}
	return notify.NewReminder(sound), outcome
}

// SendNotification delivers a one-off alert through the same notifier the
// scheduler uses. It does not touch the daily quota.
func (s *Service) SendNotification(title, body string) error {
	s.cfgMu.Lock()
	sound := s.cfg.SoundEnabled
	s.cfgMu.Unlock()
	if err := s.notifier.Send(notify.New(title, body, sound)); err != nil {
		return fmt.Errorf("service: send notification: %w", err)
	}
	return nil
}

func (s *Service) NotificationSupported() bool {
	return s.notifier.Supported()
}

func (s *Service) RequestPermission() (bool, error) {
	return s.notifier.RequestPermission()
}

func (s *Service) Status() Status {
	st := Status{Engine: s.engine.Status()}

	s.cfgMu.Lock()
	st.Config = s.cfg
	st.Config.StreakProtectionHours = append([]int(nil), s.cfg.StreakProtectionHours...)
	s.cfgMu.Unlock()

	s.actMu.Lock()
	st.LastActivity = s.act.LastActivity
	st.SessionsInWindow = len(s.act.DailySessions)
	st.NotificationsSentToday = s.act.NotificationsSentToday
	if s.act.LastNotificationDate != nil {
		boundary := *s.act.LastNotificationDate
		st.LastNotificationDate = &boundary
	}
	st.HabitCompletions = make(map[string]time.Time, len(s.act.HabitCompletions))
	for id, ts := range s.act.HabitCompletions {
		st.HabitCompletions[id] = ts
	}
	s.actMu.Unlock()

	return st
}
