package params

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSkipsIdenticalStrings(t *testing.T) {
	v := New(4)
	require.NoError(t, v.Set("1, 2.5,-3,4e-1"))
	assert.Equal(t, []float32{1, 2.5, -3, 0.4}, v.Values())
	assert.Equal(t, 1, v.Parses())

	require.NoError(t, v.Set("1, 2.5,-3,4e-1"))
	assert.Equal(t, []float32{1, 2.5, -3, 0.4}, v.Values())
	assert.Equal(t, 1, v.Parses())

	require.NoError(t, v.Set("1,2.5,-3,4e-1"))
	assert.Equal(t, 2, v.Parses(), "whitespace makes a different raw string")
}

func TestSetFillsPositionally(t *testing.T) {
	v := New(4)
	require.NoError(t, v.Set("9,9,9,9"))
	require.NoError(t, v.Set("1,2"))
	assert.Equal(t, []float32{1, 2, 0, 0}, v.Values())

	require.NoError(t, v.Set(""))
	assert.Equal(t, []float32{0, 0, 0, 0}, v.Values())
	assert.Equal(t, 4, v.Len())
}

func TestSetRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not a number", "1,two,3", ErrParse},
		{"empty field", "1,,3", ErrParse},
		{"trailing comma", "1,2,", ErrParse},
		{"too many", "1,2,3,4,5", ErrTooManyValues},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			v := New(4, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
			require.NoError(t, v.Set("4,3,2,1"))

			err := v.Set(tt.raw)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []float32{4, 3, 2, 1}, v.Values(), "prior values kept")
			assert.Contains(t, logs.String(), "parameter update rejected")
			assert.Contains(t, logs.String(), "component=params")

			assert.NoError(t, v.Set(tt.raw), "a rejected string is not parsed twice")
			assert.Equal(t, 2, v.Parses())
		})
	}
}

func TestFormatRoundTrips(t *testing.T) {
	values := []float32{0, 0.3, -1.5, 6.28, 3.14159, 1e-3}
	raw := Format(values)
	assert.Equal(t, "0,0.3,-1.5,6.28,3.14159,0.001", raw)

	v := New(len(values))
	require.NoError(t, v.Set(raw))
	assert.Equal(t, values, v.Values())
	assert.Equal(t, raw, v.Raw())
}
