// Package shape builds the static geometry the scenes upload: guide axes and grids, the Nubbin
// and the Furl made from it, and a face-coloured cube.
//
// Every producer appends into a shared Builder so a scene can upload one position buffer, one
// colour buffer and one index buffer and address each shape by range.
package shape

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxVertices is the most vertices a Builder holds. Sixteen-bit indices cannot address more.
const MaxVertices = 1 << 16

// indexWidth is the size in bytes of one uint16 index.
const indexWidth = 2

var ErrTooManyVertices = errors.New("shape: too many vertices for 16-bit indices")

// IndexRange locates a run of indices in the Builder's index slice.
type IndexRange struct {
	// Start is the position of the first index.
	Start int
	// Count is the number of indices.
	Count int32
}

// ByteOffset returns the offset of the first index in the uploaded index buffer.
func (r IndexRange) ByteOffset() int {
	return r.Start * indexWidth
}

// VertexRange locates a run of vertices for a non-indexed draw.
type VertexRange struct {
	First int32
	Count int32
}

// Size picks between the 1 metre and the 10 metre guides.
type Size int

const (
	Size1m Size = iota
	Size10m
)

func (s Size) String() string {
	if s == Size10m {
		return "10m"
	}
	return "1m"
}

// Builder accumulates flat xyz positions, rgb colours and indices.
// The zero value is ready to use.
type Builder struct {
	positions []float32
	colors    []float32
	indices   []uint16
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int {
	return len(b.positions) / 3
}

// IndexCount returns the number of indices added so far.
func (b *Builder) IndexCount() int {
	return len(b.indices)
}

// Positions returns the flat xyz position data.
func (b *Builder) Positions() []float32 {
	return b.positions
}

// Colors returns the flat rgb colour data, one entry per vertex.
func (b *Builder) Colors() []float32 {
	return b.colors
}

// Indices returns the index data.
func (b *Builder) Indices() []uint16 {
	return b.indices
}

// Add appends vertices with one colour each. Nothing is appended when the result would hold more
// than MaxVertices vertices.
//
// Parameters:
//   - points: the vertex positions
//   - colors: one colour per point
//
// Returns:
//   - int: the index of the first added vertex
//   - error: ErrTooManyVertices when the Builder is full
func (b *Builder) Add(points, colors []mgl32.Vec3) (int, error) {
	if len(points) != len(colors) {
		panic(fmt.Sprintf("shape: %d points with %d colors", len(points), len(colors)))
	}
	base := b.VertexCount()
	if base+len(points) > MaxVertices {
		return 0, fmt.Errorf("%w: %d + %d exceeds %d", ErrTooManyVertices, base, len(points), MaxVertices)
	}
	for i, p := range points {
		b.positions = append(b.positions, p[0], p[1], p[2])
		c := colors[i]
		b.colors = append(b.colors, c[0], c[1], c[2])
	}
	return base, nil
}

// Connect appends indices relative to base and returns where they landed.
//
// Parameters:
//   - base: the vertex that relative index 0 refers to, as returned by Add
//   - rel: indices relative to base
//
// Returns:
//   - IndexRange: the location of the appended indices
func (b *Builder) Connect(base int, rel []uint16) IndexRange {
	start := len(b.indices)
	for _, i := range rel {
		abs := base + int(i)
		if abs >= b.VertexCount() {
			panic(fmt.Sprintf("shape: index %d refers past the %d vertices added", abs, b.VertexCount()))
		}
		b.indices = append(b.indices, uint16(abs))
	}
	return IndexRange{Start: start, Count: int32(len(rel))}
}
