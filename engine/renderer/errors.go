package renderer

import "errors"

var (
	// ErrTooFewAttributes is returned by New when the context exposes fewer than MinVertexAttribs attribute slots.
	ErrTooFewAttributes = errors.New("renderer: too few vertex attribute slots")
	// ErrNoInstancing is returned by New when the context cannot draw instanced geometry.
	ErrNoInstancing = errors.New("renderer: instanced drawing is not available")
	// ErrEmptyBuffer is returned when an upload has no data.
	ErrEmptyBuffer = errors.New("renderer: empty buffer")
	// ErrCreateBuffer is returned when the context fails to name a buffer or vertex array.
	ErrCreateBuffer = errors.New("renderer: failed to create buffer object")
)
