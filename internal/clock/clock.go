package clock

import (
	"sync"
	"time"
)

// Clock is the simulated time source. Now never goes backwards within a session.
type Clock interface {
	Now() time.Time
}

// Toy is a manually advanced clock that moves forward by a fixed step.
type Toy struct {
	mu   sync.RWMutex
	now  time.Time
	step time.Duration
}

func NewToy(start time.Time, step time.Duration) *Toy {
	return &Toy{now: start, step: step}
}

func (t *Toy) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.now
}

func (t *Toy) Step() time.Duration {
	return t.step
}

// Next advances the clock by one step and returns the new instant.
func (t *Toy) Next() time.Time {
	return t.Advance(t.step)
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (t *Toy) Advance(d time.Duration) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d > 0 {
		t.now = t.now.Add(d)
	}
	return t.now
}
