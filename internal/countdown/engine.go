// Package countdown maintains the time remaining until a launch instant and
// signals completion exactly once per configured target.
package countdown

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/platform/clock"
	apperrors "github.com/beztern/launchpad/internal/platform/errors"
	"github.com/beztern/launchpad/internal/platform/logging"
)

// DefaultTickInterval is the polling cadence used when none is configured.
const DefaultTickInterval = time.Second

// Status is the completion state of an engine.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
)

// Urgency grades how close the target is.
type Urgency string

const (
	UrgencyNone     Urgency = "none"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

const (
	highUrgencySeconds     = 60
	criticalUrgencySeconds = 10
)

// ErrStopped is returned when starting an engine after Stop.
var ErrStopped = apperrors.E(apperrors.KindUnavailable, "countdown engine stopped")

// Milestone is a remaining-seconds threshold announced once per target.
type Milestone struct {
	Threshold int64  `json:"threshold_seconds"`
	Key       string `json:"key"`
	Label     string `json:"label"`
}

// DefaultMilestones returns the standard announcement table, largest first.
func DefaultMilestones() []Milestone {
	return []Milestone{
		{Threshold: 86400, Key: "countdown.milestone.day", Label: "1 day remaining"},
		{Threshold: 3600, Key: "countdown.milestone.hour", Label: "1 hour remaining"},
		{Threshold: 600, Key: "countdown.milestone.ten_minutes", Label: "10 minutes remaining"},
		{Threshold: 60, Key: "countdown.milestone.minute", Label: "1 minute remaining"},
		{Threshold: 10, Key: "countdown.milestone.ten_seconds", Label: "10 seconds remaining"},
	}
}

// Snapshot is the observable state of an engine after its latest tick.
type Snapshot struct {
	Target       time.Time  `json:"target"`
	ObservedAt   time.Time  `json:"observed_at"`
	Remaining    Remaining  `json:"remaining"`
	TotalSeconds int64      `json:"total_seconds"`
	Status       Status     `json:"status"`
	Progress     float64    `json:"progress"`
	Urgency      Urgency    `json:"urgency"`
	Milestone    *Milestone `json:"milestone,omitempty"`
}

// Complete reports whether the snapshot is in the terminal state.
func (s Snapshot) Complete() bool {
	return s.Status == StatusComplete
}

// Config configures an Engine.
type Config struct {
	Target time.Time
	// TickInterval defaults to DefaultTickInterval when non-positive.
	TickInterval time.Duration
	// AlignToSecond wakes on whole-second boundaries of the remaining
	// duration instead of every TickInterval.
	AlignToSecond bool
	// Milestones overrides DefaultMilestones when non-nil. An empty slice
	// disables milestones.
	Milestones []Milestone

	OnTick      func(Snapshot)
	OnComplete  func(Snapshot)
	OnMilestone func(Milestone, Snapshot)

	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *zap.Logger
}

// Engine ticks toward a target on an injected scheduler. All methods are safe
// for concurrent use. Observer callbacks run outside the engine lock, after
// state is committed and before the next tick is scheduled.
type Engine struct {
	interval   time.Duration
	align      bool
	milestones []Milestone

	onTick      func(Snapshot)
	onComplete  func(Snapshot)
	onMilestone func(Milestone, Snapshot)

	clock     clock.Clock
	scheduler clock.Scheduler
	logger    *zap.Logger

	mu           sync.Mutex
	target       time.Time
	configuredAt time.Time
	status       Status
	snapshot     Snapshot
	// generation invalidates timers and callbacks from earlier targets.
	generation    uint64
	started       bool
	stopped       bool
	timer         clock.Timer
	completeFired bool
	ticked        bool
	lastTotal     int64
	passed        map[int64]bool
	milestone     *Milestone
}

type tickEvent struct {
	generation uint64
	snapshot   Snapshot
	tick       bool
	complete   bool
	milestone  *Milestone
}

// New validates cfg and returns an engine that has not started ticking.
func New(cfg Config) (*Engine, error) {
	if cfg.Target.IsZero() {
		return nil, apperrors.EK(apperrors.KindInvalidInput, KeyInvalidTarget, "countdown target is required")
	}
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	milestones := DefaultMilestones()
	if cfg.Milestones != nil {
		milestones = append([]Milestone(nil), cfg.Milestones...)
	}
	for _, m := range milestones {
		if m.Threshold <= 0 {
			return nil, apperrors.E(apperrors.KindInvalidInput, "milestone threshold must be positive")
		}
	}
	e := &Engine{
		interval:    interval,
		align:       cfg.AlignToSecond,
		milestones:  milestones,
		onTick:      cfg.OnTick,
		onComplete:  cfg.OnComplete,
		onMilestone: cfg.OnMilestone,
		clock:       cfg.Clock,
		scheduler:   cfg.Scheduler,
		logger:      logging.OrNop(cfg.Logger),
	}
	if e.clock == nil {
		e.clock = clock.System{}
	}
	if e.scheduler == nil {
		e.scheduler = clock.System{}
	}

	e.mu.Lock()
	e.resetLocked(cfg.Target)
	e.mu.Unlock()
	return e, nil
}

// Start performs an immediate tick and keeps ticking until the target is
// reached or the engine is stopped. Starting twice is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return ErrStopped
	}
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	generation := e.generation
	e.mu.Unlock()

	e.run(generation)
	return nil
}

// Tick recomputes the remaining duration now and notifies observers. It does
// not schedule anything.
func (e *Engine) Tick() Snapshot {
	e.mu.Lock()
	ev := e.advanceLocked()
	e.mu.Unlock()

	e.deliver(ev)
	return ev.snapshot
}

// Snapshot returns the state recorded by the latest tick.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Target returns the configured target instant.
func (e *Engine) Target() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// Reconfigure points the engine at a new target. Status returns to running,
// milestone state is cleared, and a started engine ticks immediately.
func (e *Engine) Reconfigure(target time.Time) error {
	if target.IsZero() {
		return apperrors.EK(apperrors.KindInvalidInput, KeyInvalidTarget, "countdown target is required")
	}
	e.mu.Lock()
	e.cancelTimerLocked()
	e.resetLocked(target)
	restart := e.started && !e.stopped
	generation := e.generation
	e.mu.Unlock()

	e.logger.Info("countdown reconfigured", zap.Time("target", target))
	if restart {
		e.run(generation)
	}
	return nil
}

// Stop cancels the pending tick. No observer callback starts after Stop
// returns, and the engine cannot be restarted.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.stopped = true
	e.generation++
	e.cancelTimerLocked()
}

func (e *Engine) run(generation uint64) {
	e.mu.Lock()
	if e.stopped || generation != e.generation {
		e.mu.Unlock()
		e.logger.Debug("countdown discarded stale tick", zap.Uint64("generation", generation))
		return
	}
	e.timer = nil
	ev := e.advanceLocked()
	e.mu.Unlock()

	e.deliver(ev)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || generation != e.generation || e.status != StatusRunning {
		return
	}
	delay := e.nextDelayLocked()
	e.timer = e.scheduler.AfterFunc(delay, func() { e.run(generation) })
}

func (e *Engine) nextDelayLocked() time.Duration {
	remaining := e.target.Sub(e.clock.Now())
	if remaining <= 0 {
		return 0
	}
	delay := e.interval
	if e.align {
		delay = remaining % time.Second
		if delay == 0 {
			delay = time.Second
		}
	}
	if remaining < delay {
		delay = remaining
	}
	return delay
}

func (e *Engine) resetLocked(target time.Time) {
	now := e.clock.Now()
	e.generation++
	e.target = target
	e.configuredAt = now
	e.status = StatusRunning
	e.completeFired = false
	e.ticked = false
	e.lastTotal = 0
	e.passed = map[int64]bool{}
	e.milestone = nil
	e.snapshot = e.runningSnapshotLocked(now, target.Sub(now))
}

func (e *Engine) cancelTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) advanceLocked() tickEvent {
	now := e.clock.Now()
	ev := tickEvent{generation: e.generation}

	if e.status == StatusComplete {
		e.snapshot = e.completeSnapshotLocked(now)
		ev.snapshot = e.snapshot
		return ev
	}

	diff := e.target.Sub(now)
	if diff <= 0 {
		e.status = StatusComplete
		e.snapshot = e.completeSnapshotLocked(now)
		ev.snapshot = e.snapshot
		if !e.completeFired {
			e.completeFired = true
			ev.complete = true
		}
		return ev
	}

	total := Decompose(diff).TotalSeconds()
	ev.milestone = e.crossMilestonesLocked(total)
	if ev.milestone != nil {
		e.milestone = ev.milestone
	}
	e.snapshot = e.runningSnapshotLocked(now, diff)
	ev.snapshot = e.snapshot
	ev.tick = true
	return ev
}

// crossMilestonesLocked marks every threshold passed since the previous tick
// and returns the smallest newly passed one. The first tick of a target only
// matches exact thresholds.
func (e *Engine) crossMilestonesLocked(total int64) *Milestone {
	first := !e.ticked
	previous := e.lastTotal
	e.ticked = true
	e.lastTotal = total

	var hit *Milestone
	for i := range e.milestones {
		m := e.milestones[i]
		if e.passed[m.Threshold] {
			continue
		}
		crossed := total == m.Threshold
		if !first {
			crossed = previous > m.Threshold && total <= m.Threshold
		}
		if !crossed {
			continue
		}
		e.passed[m.Threshold] = true
		if hit == nil || m.Threshold < hit.Threshold {
			found := m
			hit = &found
		}
	}
	return hit
}

func (e *Engine) runningSnapshotLocked(now time.Time, diff time.Duration) Snapshot {
	remaining := Decompose(diff)
	total := remaining.TotalSeconds()
	return Snapshot{
		Target:       e.target,
		ObservedAt:   now,
		Remaining:    remaining,
		TotalSeconds: total,
		Status:       StatusRunning,
		Progress:     e.progressLocked(diff),
		Urgency:      urgencyFor(diff, total),
		Milestone:    e.milestone,
	}
}

func (e *Engine) completeSnapshotLocked(now time.Time) Snapshot {
	return Snapshot{
		Target:     e.target,
		ObservedAt: now,
		Status:     StatusComplete,
		Urgency:    UrgencyNone,
		Milestone:  e.milestone,
	}
}

func (e *Engine) progressLocked(diff time.Duration) float64 {
	window := e.target.Sub(e.configuredAt)
	if window <= 0 || diff <= 0 {
		return 0
	}
	p := float64(diff) / float64(window)
	if p > 1 {
		return 1
	}
	return p
}

func urgencyFor(diff time.Duration, total int64) Urgency {
	switch {
	case diff <= 0:
		return UrgencyNone
	case total <= criticalUrgencySeconds:
		return UrgencyCritical
	case total <= highUrgencySeconds:
		return UrgencyHigh
	default:
		return UrgencyNone
	}
}

func (e *Engine) deliver(ev tickEvent) {
	if ev.tick && e.onTick != nil && e.current(ev.generation) {
		e.onTick(ev.snapshot)
	}
	if ev.milestone != nil && e.onMilestone != nil && e.current(ev.generation) {
		e.onMilestone(*ev.milestone, ev.snapshot)
	}
	if ev.complete {
		e.logger.Info("countdown complete", zap.Time("target", ev.snapshot.Target))
		if e.onComplete != nil && e.current(ev.generation) {
			e.onComplete(ev.snapshot)
		}
	}
}

func (e *Engine) current(generation uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.stopped && generation == e.generation
}
