package cpu

// Clock accumulates elapsed machine cycles and ticks. Both counters only
// grow; each is advanced by the per-form literal, never derived from the
// other.
type Clock struct {
	Machine int64
	Time    int64
}

// Tick advances the clock by m machine cycles and t ticks.
func (c *Clock) Tick(m, t int) {
	c.Machine += int64(m)
	c.Time += int64(t)
}
