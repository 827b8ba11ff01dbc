// Package clock turns a time source into per-frame elapsed time and delta.
package clock

// TimeSource reports seconds since some fixed origin.
type TimeSource interface {
	Now() float64
}

// SourceFunc adapts a function to TimeSource.
type SourceFunc func() float64

// Now implements TimeSource.
func (f SourceFunc) Now() float64 { return f() }

// Tick is the timing for one frame.
type Tick struct {
	Frame   uint64
	Elapsed float32 // Seconds since the clock started, never decreasing
	Delta   float32 // Seconds since the previous tick, never negative
}

// Clock produces monotonically increasing frame times from a TimeSource.
type Clock struct {
	src     TimeSource
	start   float64
	last    float64
	frame   uint64
	started bool
}

// New creates a clock over src. Elapsed time starts at the first Tick.
func New(src TimeSource) *Clock {
	return &Clock{src: src}
}

// Tick samples the source and returns this frame's timing.
// A source that steps backwards yields a zero delta rather than rewinding.
func (c *Clock) Tick() Tick {
	now := c.src.Now()
	if !c.started {
		c.start = now
		c.last = now
		c.started = true
	}

	delta := now - c.last
	if delta < 0 {
		delta = 0
	} else {
		c.last = now
	}
	c.frame++

	return Tick{
		Frame:   c.frame,
		Elapsed: float32(c.last - c.start),
		Delta:   float32(delta),
	}
}

// Fixed is a TimeSource that advances by a constant step each time it is read.
// Used for headless runs and tests.
type Fixed struct {
	Step float64
	t    float64
	read bool
}

// NewFixed creates a fixed-step source.
func NewFixed(step float64) *Fixed {
	return &Fixed{Step: step}
}

// Now implements TimeSource. The first read returns 0.
func (f *Fixed) Now() float64 {
	if f.read {
		f.t += f.Step
	}
	f.read = true
	return f.t
}
