package game

// TickResult is the countdown state after one tick.
type TickResult struct {
	Elapsed   int
	Remaining int
	Progress  float64
	// Expired is true only on the tick that reached zero.
	Expired bool
}

// Countdown counts whole seconds up to a fixed limit.
type Countdown struct {
	limit   int
	elapsed int
	stopped bool
	expired bool
}

// NewCountdown creates a countdown of limit seconds.
func NewCountdown(limit int) *Countdown {
	return &Countdown{limit: limit}
}

// Tick advances the countdown by one second. Once stopped or expired it no
// longer advances.
func (c *Countdown) Tick() TickResult {
	if c.stopped || c.expired {
		return c.snapshot(false)
	}

	c.elapsed++
	if c.Remaining() <= 0 {
		c.expired = true
		c.stopped = true
		return c.snapshot(true)
	}
	return c.snapshot(false)
}

// Stop freezes the countdown.
func (c *Countdown) Stop() {
	c.stopped = true
}

// Stopped reports whether the countdown no longer advances.
func (c *Countdown) Stopped() bool {
	return c.stopped
}

// Elapsed is the number of seconds counted so far.
func (c *Countdown) Elapsed() int {
	return c.elapsed
}

// Remaining is max(0, limit-elapsed).
func (c *Countdown) Remaining() int {
	return max(0, c.limit-c.elapsed)
}

// Limit is the configured number of seconds.
func (c *Countdown) Limit() int {
	return c.limit
}

// Progress is elapsed/limit, capped at 1.
func (c *Countdown) Progress() float64 {
	if c.limit <= 0 {
		return 1
	}
	return min(1.0, float64(c.elapsed)/float64(c.limit))
}

func (c *Countdown) snapshot(expired bool) TickResult {
	return TickResult{
		Elapsed:   c.elapsed,
		Remaining: c.Remaining(),
		Progress:  c.Progress(),
		Expired:   expired,
	}
}
