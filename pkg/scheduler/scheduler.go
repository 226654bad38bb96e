// Package scheduler provides a fixed-period cooperative task loop.
//
// All tasks run sequentially on one goroutine. Work submitted from other
// goroutines is executed on that same goroutine between ticks, so task
// entry points that are not reentrant are never called concurrently.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler errors.
var (
	ErrRunning = errors.New("scheduler is running")
)

// Task is a periodic job. elapsedMs is the time since the previous tick.
type Task interface {
	Run(elapsedMs uint16)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(elapsedMs uint16)

// Run calls f.
func (f TaskFunc) Run(elapsedMs uint16) {
	f(elapsedMs)
}

// Scheduler runs tasks at a fixed nominal period.
type Scheduler struct {
	period    time.Duration
	elapsedMs uint16
	tasks     []Task

	ticks atomic.Uint64

	// exec is held while tasks or submitted work execute.
	exec sync.Mutex

	// mu guards running and pending.
	mu      sync.Mutex
	running bool
	pending []func()
	wake    chan struct{}

	logger *slog.Logger
}

// New creates a scheduler running tasks every period, in order.
func New(period time.Duration, tasks ...Task) *Scheduler {
	return &Scheduler{
		period:    period,
		elapsedMs: toMillis(period),
		tasks:     append([]Task(nil), tasks...),
		wake:      make(chan struct{}, 1),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for loop lifecycle messages.
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Period returns the nominal tick period.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Ticks returns the number of ticks executed so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Running reports whether Run is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Step executes n ticks synchronously with the nominal period as elapsed
// time. Pending work is run before each tick. Step fails while Run is
// active.
func (s *Scheduler) Step(n int) error {
	if s.Running() {
		return ErrRunning
	}
	s.exec.Lock()
	defer s.exec.Unlock()
	for i := 0; i < n; i++ {
		s.drain()
		s.tick()
	}
	s.drain()
	return nil
}

// Run drives ticks from a time.Ticker until ctx is done. Work queued
// before Run returns is always executed.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	s.mu.Unlock()

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Debug("scheduler: started", "period", s.period, "tasks", len(s.tasks))
	defer func() {
		s.logger.Debug("scheduler: stopped", "ticks", s.ticks.Load())
	}()

	for {
		select {
		case <-ctx.Done():
			s.stop()
			return ctx.Err()
		case <-s.wake:
			s.exec.Lock()
			s.drain()
			s.exec.Unlock()
		case <-ticker.C:
			s.exec.Lock()
			s.drain()
			s.tick()
			s.exec.Unlock()
		}
	}
}

// stop clears the running flag and runs the work queued up to that point.
// Do calls made afterwards execute inline.
func (s *Scheduler) stop() {
	s.exec.Lock()
	defer s.exec.Unlock()

	s.drain()
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	s.drain()
}

// Submit queues fn to run on the scheduler goroutine before the next tick.
func (s *Scheduler) Submit(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
	s.notify()
}

// Do runs fn on the scheduler goroutine and waits for it to finish.
// When Run is not active fn runs on the calling goroutine, still
// excluded from ticks and other work.
func (s *Scheduler) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.exec.Lock()
		defer s.exec.Unlock()
		s.drain()
		fn()
		return nil
	}
	s.pending = append(s.pending, func() {
		defer close(done)
		fn()
	})
	s.mu.Unlock()
	s.notify()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) drain() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (s *Scheduler) tick() {
	for _, t := range s.tasks {
		t.Run(s.elapsedMs)
	}
	s.ticks.Add(1)
}

func toMillis(d time.Duration) uint16 {
	ms := d.Milliseconds()
	switch {
	case ms < 0:
		return 0
	case ms > math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(ms)
	}
}
