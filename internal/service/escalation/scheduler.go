// Package escalation schedules one delayed callback per alert and lets
// later lifecycle events cancel it before it fires.
package escalation

import (
	"context"
	"sync"
	"time"

	"service-foodrescue/internal/logx"
)

// FireFunc is invoked when an armed timer elapses without being
// disarmed first.
type FireFunc func(ctx context.Context, alertID string)

// Scheduler owns the per-alert timers. Arming an already armed alert
// replaces its timer; a fire that lost the race to Disarm or to a
// fresh Arm is dropped.
//
// Timers are in-memory only and do not survive a restart.
type Scheduler struct {
	delay  time.Duration
	logger logx.Logger

	mu     sync.Mutex
	fire   FireFunc
	gens   map[string]uint64
	timers map[string]*time.Timer
	closed bool
}

// New creates a Scheduler firing after delay. Bind must be called
// before the first Arm.
func New(delay time.Duration, logger logx.Logger) *Scheduler {
	return &Scheduler{
		delay:  delay,
		logger: logger,
		gens:   map[string]uint64{},
		timers: map[string]*time.Timer{},
	}
}

// Bind sets the callback. Split from New because the callback's owner
// is constructed after the scheduler.
func (s *Scheduler) Bind(fire FireFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fire = fire
}

// Arm starts (or restarts) the timer for one alert.
func (s *Scheduler) Arm(alertID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.gens[alertID]++
	gen := s.gens[alertID]

	if t, ok := s.timers[alertID]; ok {
		t.Stop()
	}
	s.timers[alertID] = time.AfterFunc(s.delay, func() {
		s.fired(alertID, gen)
	})
	s.logger.Debug("escalation armed",
		logx.String("alert_id", alertID),
		logx.Duration("delay", s.delay),
	)
}

// Disarm cancels the pending timer for one alert, if any. A timer that
// already fired but has not run yet is invalidated too.
func (s *Scheduler) Disarm(alertID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Bumping the generation invalidates an in-flight fire even when
	// Stop comes back false.
	if _, ok := s.gens[alertID]; ok {
		s.gens[alertID]++
	}
	if t, ok := s.timers[alertID]; ok {
		t.Stop()
		delete(s.timers, alertID)
	}
}

// Close stops every pending timer. The scheduler accepts no new Arms
// afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		s.gens[id]++
		delete(s.timers, id)
	}
}

// Pending reports whether an alert currently has a live timer.
func (s *Scheduler) Pending(alertID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[alertID]
	return ok
}

func (s *Scheduler) fired(alertID string, gen uint64) {
	s.mu.Lock()
	stale := s.closed || s.gens[alertID] != gen
	fire := s.fire
	if !stale {
		delete(s.timers, alertID)
	}
	s.mu.Unlock()

	if stale || fire == nil {
		return
	}
	s.logger.Debug("escalation fired", logx.String("alert_id", alertID))
	fire(context.Background(), alertID)
}
