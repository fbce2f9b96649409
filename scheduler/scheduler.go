// Package scheduler drives a frame callback once per display refresh.
package scheduler

import (
	"context"
	"sync/atomic"
)

// State is the scheduler's lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// FrameFunc is invoked once per tick with the milliseconds elapsed since Start.
type FrameFunc func(elapsedMillis float64)

// Clock returns a monotonic time in seconds.
type Clock func() float64

// Scheduler is a two-state frame loop. All methods except Stop must be called
// from the thread that owns the graphics context.
type Scheduler struct {
	clock    Clock
	state    State
	callback FrameFunc
	start    float64
	stop     atomic.Bool
}

// New creates an idle scheduler reading time from clock.
func New(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// State reports whether the loop is running.
func (s *Scheduler) State() State {
	return s.state
}

// Start registers fn and moves the scheduler to Running. Starting a running
// scheduler only swaps the callback; elapsed time keeps counting.
func (s *Scheduler) Start(fn FrameFunc) {
	if fn == nil {
		s.Stop()
		return
	}
	s.callback = fn
	s.stop.Store(false)
	if s.state == Idle {
		s.start = s.clock()
		s.state = Running
	}
}

// SetCallback replaces the registered callback. A nil callback stops the loop
// on the next tick.
func (s *Scheduler) SetCallback(fn FrameFunc) {
	if fn == nil {
		s.Stop()
		return
	}
	s.callback = fn
}

// Stop asks the loop to end. The next Tick observes the request and moves the
// scheduler to Idle. Safe to call from any goroutine, any number of times.
func (s *Scheduler) Stop() {
	s.stop.Store(true)
}

// Tick performs one display refresh and reports whether another should be
// scheduled.
func (s *Scheduler) Tick() bool {
	if s.state == Idle {
		return false
	}
	if s.stop.Load() || s.callback == nil {
		s.state = Idle
		s.callback = nil
		return false
	}
	s.callback((s.clock() - s.start) * 1000)
	return true
}

// Run ticks until the loop stops, calling refresh after every frame. Canceling
// ctx stops the loop at the next tick.
func (s *Scheduler) Run(ctx context.Context, refresh func()) {
	for {
		if ctx.Err() != nil {
			s.Stop()
		}
		if !s.Tick() {
			return
		}
		refresh()
	}
}
