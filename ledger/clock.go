package ledger

import (
	"sync"
	"time"

	"verdant.eco/ledger/model"
)

// Clock supplies the external monotonic time used for all deadline
// comparisons. Hosts anchored to a chain use its height; standalone daemons
// use unix seconds. The ledger only ever compares values, so any monotone
// source works as long as every caller observes the same one.
type Clock interface {
	Now() model.Time
}

// TickClock is a manually advanced logical clock for hosts that drive time
// themselves (and for tests).
type TickClock struct {
	mu sync.Mutex
	t  model.Time
}

func NewTickClock(start model.Time) *TickClock {
	return &TickClock{t: start}
}

func (c *TickClock) Now() model.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d ticks.
func (c *TickClock) Advance(d model.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t += d
}

// Set jumps the clock to t. Moving backwards is not prevented here; hosts
// are responsible for monotonicity.
func (c *TickClock) Set(t model.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// UnixClock reports wall-clock unix seconds.
type UnixClock struct{}

func (UnixClock) Now() model.Time {
	return model.Time(time.Now().Unix())
}
