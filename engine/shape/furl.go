package shape

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/go-gl/mathgl/mgl32"
)

// Lod is a Nubbin level of detail.
type Lod int

const (
	// Lod0 is a double tetrahedron with 5 points.
	Lod0 Lod = iota
	// Lod1 is a rounder solid with 9 points.
	Lod1
)

// NubbinSize holds the dimensions of a Nubbin, measured from its origin.
type NubbinSize struct {
	Upper float32 // height above the origin
	Lower float32 // depth below the origin
	Nose  float32 // length forward along +z
	Tail  float32 // length back along -z
	Width float32 // full width across x at the tail
}

// FurlNubbin is the Nubbin the furl scene spirals.
var FurlNubbin = NubbinSize{Upper: 0.03, Lower: 0.02, Nose: 0.08, Tail: 0.03, Width: 0.16}

var (
	lod0Colors = []mgl32.Vec3{
		{0.3, 0.9, 0.3},
		{0.1, 0.3, 0.8},
		{0.2, 0.9, 0.9},
		{0.9, 0.5, 0.0},
		{0.6, 0.0, 0.7},
	}
	lod0Indices = []uint16{
		0, 1, 2, 0, 1, 3, 0, 2, 3,
		4, 1, 2, 4, 1, 3, 4, 2, 3,
	}
	lod1Colors = []mgl32.Vec3{
		{0.3, 0.9, 0.3},
		{0.1, 0.3, 0.8},
		{0.0, 0.2, 0.9},
		{0.2, 0.9, 0.9},
		{0.9, 0.9, 0.0},
		{0.9, 0.5, 0.0},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.6, 0.0, 0.7},
	}
	lod1Indices = []uint16{
		0, 1, 2, 0, 1, 6, 0, 6, 3, 0, 3, 4, 0, 4, 5, 0, 5, 7, 0, 7, 2,
		8, 1, 2, 8, 1, 6, 8, 6, 3, 8, 3, 4, 8, 4, 5, 8, 5, 7, 8, 7, 2,
	}
)

// Nubbin is a small pointed solid, the repeated element of a Furl.
type Nubbin struct {
	ranges [2]IndexRange
}

// AddNubbin appends both levels of detail of a Nubbin to b.
//
// Parameters:
//   - b: the builder
//   - size: the Nubbin dimensions
//
// Returns:
//   - *Nubbin: the Nubbin
//   - error: ErrTooManyVertices when b is full
func AddNubbin(b *Builder, size NubbinSize) (*Nubbin, error) {
	w := size.Width / 2
	midZ := (size.Nose - size.Tail) * 0.5

	lod0 := []mgl32.Vec3{
		{0, size.Upper, 0},
		{0, 0, size.Nose},
		{-w, 0, -size.Tail},
		{w, 0, -size.Tail},
		{0, -size.Lower, 0},
	}
	lod1 := []mgl32.Vec3{
		{0, size.Upper, 0},
		{-w * 0.1, 0, size.Nose},
		{w * 0.1, 0, size.Nose},
		{-w, 0, -size.Tail * 0.8},
		{0, 0, -size.Tail},
		{w, 0, -size.Tail * 0.8},
		{-w * 0.8, 0, midZ},
		{w * 0.8, 0, midZ},
		{0, -size.Lower, 0},
	}
	if b.VertexCount()+len(lod0)+len(lod1) > MaxVertices {
		return nil, fmt.Errorf("%w: nubbin needs %d more", ErrTooManyVertices, len(lod0)+len(lod1))
	}

	n := &Nubbin{}
	base, err := b.Add(lod0, lod0Colors)
	if err != nil {
		return nil, err
	}
	n.ranges[Lod0] = b.Connect(base, lod0Indices)
	if base, err = b.Add(lod1, lod1Colors); err != nil {
		return nil, err
	}
	n.ranges[Lod1] = b.Connect(base, lod1Indices)
	return n, nil
}

// Range returns the indices of one level of detail.
func (n *Nubbin) Range(lod Lod) IndexRange {
	if lod != Lod0 {
		lod = Lod1
	}
	return n.ranges[lod]
}

// Furl is a Nubbin drawn many times along a spiral. The spiral itself is computed by the
// furl vertex program from per-instance curves and the iu_* uniforms.
type Furl struct {
	nubbin    *Nubbin
	placement mgl32.Vec3
}

// AddFurl appends the Furl's Nubbin to b.
//
// Parameters:
//   - b: the builder
//   - size: the Nubbin dimensions
//   - placement: where the Furl sits in model space
//
// Returns:
//   - *Furl: the Furl
//   - error: ErrTooManyVertices when b is full
func AddFurl(b *Builder, size NubbinSize, placement mgl32.Vec3) (*Furl, error) {
	n, err := AddNubbin(b, size)
	if err != nil {
		return nil, err
	}
	return &Furl{nubbin: n, placement: placement}, nil
}

// Nubbin returns the Furl's Nubbin.
func (f *Furl) Nubbin() *Nubbin {
	return f.nubbin
}

// Render pushes the placement and draws instances copies of the Nubbin.
// program must be the active furl program.
func (f *Furl) Render(warm renderer.FrameKit, program renderer.ProgramIndex, lod Lod, mode uint32, instances int32) {
	r := f.nubbin.Range(lod)
	warm.SetUniformVec3(program, signature.UniformPlacement, f.placement)
	warm.DrawElementsInstanced(mode, r.ByteOffset(), r.Count, instances)
}
