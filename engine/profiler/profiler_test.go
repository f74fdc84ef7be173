package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	now := time.Unix(0, 0)
	p := NewProfiler(WithLogger(logger), WithInterval(time.Second))
	p.now = func() time.Time { return now }
	p.lastTime = now

	for i := 0; i < 59; i++ {
		now = now.Add(16 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	now = now.Add(time.Second)
	require.True(t, p.Tick())
	out := buf.String()
	assert.Contains(t, out, "frame stats")
	assert.Contains(t, out, "component=profiler")
	assert.Contains(t, out, "fps=")

	buf.Reset()
	now = now.Add(time.Millisecond)
	assert.False(t, p.Tick(), "counters restart after a report")
}

func TestIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
