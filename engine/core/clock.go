package core

import "time"

// Clock measures wall time spent in a load or assembly step.
type Clock struct {
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Starts the clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Updates the elapsed time. Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Stops the clock, capturing the final elapsed time.
func (c *Clock) Stop() time.Duration {
	c.Update()
	c.startTime = time.Time{}
	return c.elapsed
}
