package coalesce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBurstRunsOnlyLastTask(t *testing.T) {
	s := New(30 * time.Millisecond)
	defer s.Stop()

	var ran int32
	var lastValue int32
	done := make(chan struct{}, 1)

	for i := 1; i <= 5; i++ {
		v := int32(i)
		s.Submit(func(stale func() bool) {
			if stale() {
				return
			}
			atomic.AddInt32(&ran, 1)
			atomic.StoreInt32(&lastValue, v)
			select {
			case done <- struct{}{}:
			default:
			}
		})
		time.Sleep(2 * time.Millisecond) // well inside the quiet window
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("no task ran")
	}
	// Give any extra (incorrect) executions a chance to surface.
	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&ran); got != 1 {
		t.Fatalf("ran %d tasks, want 1", got)
	}
	if got := atomic.LoadInt32(&lastValue); got != 5 {
		t.Fatalf("last value %d, want 5", got)
	}
}

func TestStalePredicateFlipsOnNewerSubmission(t *testing.T) {
	s := New(0) // immediate execution, staleness still enforced
	defer s.Stop()

	block := make(chan struct{})
	var committed int32
	var wg sync.WaitGroup

	wg.Add(1)
	s.Submit(func(stale func() bool) {
		defer wg.Done()
		<-block // a newer submission arrives while "in flight"
		if stale() {
			return
		}
		atomic.AddInt32(&committed, 1)
	})

	wg.Add(1)
	s.Submit(func(stale func() bool) {
		defer wg.Done()
		if stale() {
			return
		}
		atomic.AddInt32(&committed, 1)
	})

	close(block)
	wg.Wait()

	if got := atomic.LoadInt32(&committed); got != 1 {
		t.Fatalf("%d tasks committed, want exactly 1 (the newest)", got)
	}
}

func TestStopCancelsPending(t *testing.T) {
	s := New(20 * time.Millisecond)

	var ran int32
	s.Submit(func(stale func() bool) {
		atomic.AddInt32(&ran, 1)
	})
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt32(&ran) != 0 {
		t.Fatal("stopped scheduler still ran its pending task")
	}
}
