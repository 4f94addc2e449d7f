package sim

import "time"

const (
	// DefaultStep is one logic tick at 60 ticks per second.
	DefaultStep = time.Second / 60
	// DefaultMaxBacklog caps catch-up after a stall to a dozen ticks.
	DefaultMaxBacklog = 200 * time.Millisecond
)

// Clock is a fixed-timestep accumulator. Wall-clock frame deltas go in,
// whole logic steps come out; the remainder carries to the next frame.
type Clock struct {
	Step       time.Duration
	MaxBacklog time.Duration

	acc time.Duration
}

// NewClock returns a clock with the given step and backlog cap. Non-positive
// values fall back to the defaults.
func NewClock(step, maxBacklog time.Duration) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	if maxBacklog <= 0 {
		maxBacklog = DefaultMaxBacklog
	}
	return &Clock{Step: step, MaxBacklog: maxBacklog}
}

// Advance adds dt to the accumulator, clamps it to MaxBacklog and returns how
// many whole steps are due. The due steps are consumed from the accumulator.
// A clock without a positive Step never yields a step.
func (c *Clock) Advance(dt time.Duration) int {
	if c.Step <= 0 {
		return 0
	}
	if dt > 0 {
		c.acc += dt
	}
	if c.acc > c.MaxBacklog {
		c.acc = c.MaxBacklog
	}
	n := 0
	for c.acc >= c.Step {
		c.acc -= c.Step
		n++
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (c *Clock) Alpha() float64 {
	if c.Step <= 0 {
		return 0
	}
	return float64(c.acc) / float64(c.Step)
}

// Reset drops any accumulated time.
func (c *Clock) Reset() { c.acc = 0 }
