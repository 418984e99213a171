package maskpaint

import (
	"sync"
	"time"
)

// DefaultSaveDelay is the window the persistence throttle waits after the
// last save request before encoding and emitting the mask.
const DefaultSaveDelay = 500 * time.Millisecond

// SaveFunc receives the encoded mask blob whenever the throttled
// persistence fires.
type SaveFunc func(data []byte) error

// Saver coalesces save requests into at most one run per time window.
// A single pending timer is owned by the saver: a request arriving before
// the window elapses reschedules it instead of stacking a second call.
// The runs themselves are serialized and never overlap.
type Saver struct {
	mu      sync.Mutex
	runMu   sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	run     func() error
}

// NewSaver creates a saver which executes run after the configured delay.
func NewSaver(delay time.Duration, run func() error) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Saver{
		delay: delay,
		run:   run,
	}
}

// SetDelay adjusts the throttle window used by subsequent requests.
func (s *Saver) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d > 0 {
		s.delay = d
	}
}

// Request schedules a run no sooner than the configured window from now.
// Requests arriving inside the window reset it, coalescing bursts into a
// single run. The run outcome is intentionally dropped here: a failed save
// leaves the dirty flag set, so the next dirty signal retries it.
func (s *Saver) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = true
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()

		s.fire()
	})
}

// Cancel drops any pending run.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}

// Flush executes any pending run immediately instead of waiting for the
// window to elapse. It returns the run outcome, or nil when nothing was
// pending.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return nil
	}
	s.timer.Stop()
	s.timer = nil
	s.pending = false
	s.mu.Unlock()

	return s.fire()
}

func (s *Saver) fire() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	return s.run()
}
