// Package clock turns a monotonic millisecond timestamp into the phase signals scenes animate
// with: a 6.4 second bar, a 0.1 second beat and a 0.4 second beat4.
package clock

import "math"

const (
	barMs        = 6400
	barsPerSong  = 32
	beatMs       = 100
	beat4Ms      = 400
	beatsPerLoop = 64
)

// Clock is updated once per frame. All counters are derived from the unpaused time, so they
// freeze while the clock is paused and continue from the same phase afterwards.
//
// Times are kept in milliseconds and a timestamp on a period boundary reads the new counter value.
//
// A Clock is not safe for concurrent use.
type Clock struct {
	timeMs   float64
	deltaMs  float64
	pausedMs float64
	paused   bool
	started  bool

	bar, beat, beat4    int
	beatNorm, beat4Norm float64
}

// New creates a Clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Update advances the clock to a new timestamp.
//
// Parameters:
//   - ms: a monotonic timestamp in milliseconds
func (c *Clock) Update(ms float64) {
	if !c.started {
		c.started = true
		c.timeMs = ms
		c.deltaMs = 0
		if c.paused {
			c.pausedMs = ms
		}
	} else {
		if c.paused {
			c.pausedMs += ms - c.timeMs
		}
		c.deltaMs = ms - c.timeMs
		c.timeMs = ms
	}

	u := c.timeMs - c.pausedMs
	c.bar = int(math.Floor(math.Mod(u, barMs*barsPerSong) / barMs))

	beat := math.Mod(u, beatMs*beatsPerLoop) / beatMs
	c.beat = int(math.Floor(beat))
	c.beatNorm = beat / beatsPerLoop

	beat4 := math.Mod(u, beat4Ms*beatsPerLoop) / beat4Ms
	c.beat4 = int(math.Floor(beat4))
	c.beat4Norm = beat4 / beatsPerLoop
}

// SetPaused pauses or resumes the clock. The pause takes effect from the next Update.
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// TogglePause flips the pause state and returns the new one.
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Time returns the last timestamp in seconds.
func (c *Clock) Time() float64 {
	return c.timeMs / 1000
}

// Delta returns the seconds between the last two updates, or 0 after the first.
func (c *Clock) Delta() float64 {
	return c.deltaMs / 1000
}

// Unpaused returns the time in seconds minus every paused interval.
func (c *Clock) Unpaused() float64 {
	return (c.timeMs - c.pausedMs) / 1000
}

// PausedTotal returns the seconds spent paused.
func (c *Clock) PausedTotal() float64 {
	return c.pausedMs / 1000
}

// Bar returns the bar counter in [0, 32).
func (c *Clock) Bar() int {
	return c.bar
}

// Beat returns the beat counter in [0, 64).
func (c *Clock) Beat() int {
	return c.beat
}

// BeatNorm returns the continuous beat position normalized to [0, 1).
func (c *Clock) BeatNorm() float64 {
	return c.beatNorm
}

// Beat4 returns the beat4 counter in [0, 64).
func (c *Clock) Beat4() int {
	return c.beat4
}

// Beat4Norm returns the continuous beat4 position normalized to [0, 1).
func (c *Clock) Beat4Norm() float64 {
	return c.beat4Norm
}
