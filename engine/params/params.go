// Package params decodes the raw parameter string a host sends every frame into a fixed-length
// float vector.
package params

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

var (
	ErrParse         = errors.New("params: malformed value")
	ErrTooManyValues = errors.New("params: too many values")
)

// Vector holds a fixed number of parameter values and the raw string they came from.
// It is not safe for concurrent use.
type Vector struct {
	values  []float32
	scratch []float32
	logger  *slog.Logger

	lastRaw string
	seen    bool
	parses  int
}

// VectorBuilderOption is a functional option applied to a Vector during construction via New.
type VectorBuilderOption func(*Vector)

// WithLogger sets the logger rejected updates are reported to.
func WithLogger(logger *slog.Logger) VectorBuilderOption {
	return func(v *Vector) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a Vector of size zeroed values.
//
// Parameters:
//   - size: the number of slots
//   - options: functional options
//
// Returns:
//   - *Vector: the vector
func New(size int, options ...VectorBuilderOption) *Vector {
	if size < 0 {
		panic(fmt.Sprintf("params: negative size %d", size))
	}
	v := &Vector{
		values:  make([]float32, size),
		scratch: make([]float32, size),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(v)
	}
	v.logger = v.logger.With("component", "params")
	return v
}

// Set decodes raw, a comma-separated list of float literals, into the vector.
//
// A raw string identical to the previous call is not parsed again, whether or not it was
// accepted. An empty string zeroes every slot and a short list zeroes the slots it does not
// reach. A malformed literal or a list longer than the vector rejects the whole update and the
// previous values stay in place.
//
// Parameters:
//   - raw: the parameter string
//
// Returns:
//   - error: an error wrapping ErrParse or ErrTooManyValues when the update is rejected
func (v *Vector) Set(raw string) error {
	if v.seen && raw == v.lastRaw {
		return nil
	}
	v.seen = true
	v.lastRaw = raw
	v.parses++

	if err := v.decode(raw); err != nil {
		v.logger.Warn("parameter update rejected", "error", err, "len", len(raw))
		return err
	}
	v.values, v.scratch = v.scratch, v.values
	return nil
}

func (v *Vector) decode(raw string) error {
	clear(v.scratch)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.Split(raw, ",")
	if len(fields) > len(v.scratch) {
		return fmt.Errorf("%w: got %d, have %d slots", ErrTooManyValues, len(fields), len(v.scratch))
	}
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return fmt.Errorf("%w: value %d %q", ErrParse, i, field)
		}
		v.scratch[i] = float32(f)
	}
	return nil
}

// Values returns the current values. The slice is owned by the Vector and is valid until the
// next Set.
func (v *Vector) Values() []float32 {
	return v.values
}

// At returns one value.
func (v *Vector) At(i int) float32 {
	return v.values[i]
}

// Len returns the number of slots.
func (v *Vector) Len() int {
	return len(v.values)
}

// Raw returns the last raw string passed to Set.
func (v *Vector) Raw() string {
	return v.lastRaw
}

// Parses returns how many times Set has parsed a new raw string.
func (v *Vector) Parses() int {
	return v.parses
}

// Format renders values as a raw parameter string that Set accepts.
//
// Parameters:
//   - values: the values
//
// Returns:
//   - string: the comma-separated literals
func Format(values []float32) string {
	var sb strings.Builder
	for i, f := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	return sb.String()
}
