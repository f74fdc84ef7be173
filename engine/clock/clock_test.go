package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	tests := []struct {
		ms    float64
		beat  int
		bar   int
		beat4 int
	}{
		{0, 0, 0, 0},
		{800, 8, 0, 2},
		{1600, 16, 0, 4},
		{3200, 32, 0, 8},
		{6400, 0, 1, 16},
	}

	c := New()
	for _, tt := range tests {
		c.Update(tt.ms)
		assert.Equal(t, tt.beat, c.Beat(), "beat at %vms", tt.ms)
		assert.Equal(t, tt.bar, c.Bar(), "bar at %vms", tt.ms)
		assert.Equal(t, tt.beat4, c.Beat4(), "beat4 at %vms", tt.ms)
	}
	assert.InDelta(t, 0.25, c.Beat4Norm(), 1e-9)
}

func TestCountersOnBoundaries(t *testing.T) {
	tests := []struct {
		ms    float64
		beat  int
		bar   int
		beat4 int
	}{
		{300, 3, 0, 0},
		{600, 6, 0, 1},
		{700, 7, 0, 1},
		{1200, 12, 0, 3},
		{19200, 0, 3, 48},
		{38400, 0, 6, 32},
		{204800, 0, 0, 0},
	}
	for _, tt := range tests {
		c := New()
		c.Update(tt.ms)
		assert.Equal(t, tt.beat, c.Beat(), "beat at %vms", tt.ms)
		assert.Equal(t, tt.bar, c.Bar(), "bar at %vms", tt.ms)
		assert.Equal(t, tt.beat4, c.Beat4(), "beat4 at %vms", tt.ms)
	}
}

func TestEveryPeriodStartsANewCount(t *testing.T) {
	for ms := 0; ms <= 6400; ms += 100 {
		c := New()
		c.Update(float64(ms))
		assert.Equal(t, (ms/100)%64, c.Beat(), "beat at %dms", ms)
		assert.Equal(t, (ms/400)%64, c.Beat4(), "beat4 at %dms", ms)
	}
	for ms := 0; ms <= 204800; ms += 6400 {
		c := New()
		c.Update(float64(ms))
		assert.Equal(t, (ms/6400)%32, c.Bar(), "bar at %dms", ms)
	}
}

func TestDelta(t *testing.T) {
	c := New()
	c.Update(5000)
	assert.Zero(t, c.Delta(), "first frame has no prior sample")
	assert.Equal(t, 5.0, c.Time())

	c.Update(5250)
	assert.InDelta(t, 0.25, c.Delta(), 1e-12)
	assert.InDelta(t, 52.5/64, c.BeatNorm(), 1e-9)
}

func TestPauseFreezesPhase(t *testing.T) {
	c := New()
	c.Update(0)
	c.Update(1000)
	require.Equal(t, 10, c.Beat())

	c.SetPaused(true)
	last := c.Unpaused()
	for ms := 1125.0; ms <= 3000; ms += 125 {
		c.Update(ms)
		assert.Equal(t, 10, c.Beat(), "frozen at %vms", ms)
		assert.GreaterOrEqual(t, c.Unpaused(), last)
		last = c.Unpaused()
	}
	assert.InDelta(t, 2.0, c.PausedTotal(), 1e-9)

	assert.False(t, c.TogglePause())
	c.Update(3100)
	assert.Equal(t, 11, c.Beat())
	assert.InDelta(t, 1.1, c.Unpaused(), 1e-9)
	assert.GreaterOrEqual(t, c.Unpaused(), last)
}

func TestStartPaused(t *testing.T) {
	c := New()
	c.SetPaused(true)
	c.Update(12000)
	c.Update(13000)
	assert.Zero(t, c.Unpaused())
	assert.Zero(t, c.Beat())
	assert.True(t, c.Paused())
}
