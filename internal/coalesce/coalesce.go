// README: Coalescing scheduler: quiet-window debounce with a staleness check for late results.
package coalesce

import (
	"sync"
	"time"
)

// Scheduler collapses bursts of submissions into one task execution after a
// quiet window. Each submission supersedes the previous one; a task can ask
// whether it has been superseded before committing its result, which gives
// last-input-wins semantics for async work.
type Scheduler struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func New(quiet time.Duration) *Scheduler {
	return &Scheduler{quiet: quiet}
}

// Submit schedules task to run once the quiet window elapses with no newer
// submission. The task receives a stale predicate: it returns true as soon as
// a newer submission exists, and the task must then discard its result.
// A zero quiet window runs the task immediately on a fresh goroutine.
func (s *Scheduler) Submit(task func(stale func() bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	stale := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.gen != gen
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.quiet <= 0 {
		go task(stale)
		return
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		if stale() {
			return
		}
		task(stale)
	})
}

// Stop cancels any pending, unfired task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++ // marks in-flight tasks stale
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
