package shape

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/go-gl/mathgl/mgl32"
)

// gridPoints is the number of points in one size of grids: 20 by 20 on each of three planes.
const gridPoints = 20 * 20 * 3

// axisColors runs left, right, top, bottom, back, front.
var axisColors = []mgl32.Vec3{
	{0, 1, 1}, // cyan
	{1, 0, 0}, // red
	{1, 0, 1}, // magenta
	{0, 1, 0}, // green
	{1, 1, 0}, // yellow
	{0, 0, 1}, // blue
}

// Axes is an x, y and z axis through the origin, in 1 metre and 10 metre lengths.
type Axes struct {
	ranges [2]IndexRange
}

// AddAxes appends both sizes of axes to b as line pairs.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - *Axes: the axes
//   - error: ErrTooManyVertices when b is full
func AddAxes(b *Builder) (*Axes, error) {
	a := &Axes{}
	for _, size := range []Size{Size1m, Size10m} {
		l := float32(1)
		if size == Size10m {
			l = 10
		}
		points := []mgl32.Vec3{
			{-l, 0, 0}, {l, 0, 0},
			{0, -l, 0}, {0, l, 0},
			{0, 0, -l}, {0, 0, l},
		}
		base, err := b.Add(points, axisColors)
		if err != nil {
			return nil, err
		}
		a.ranges[size] = b.Connect(base, []uint16{0, 1, 2, 3, 4, 5})
	}
	return a, nil
}

// Range returns the indices of one size.
func (a *Axes) Range(size Size) IndexRange {
	return a.ranges[size]
}

// Render draws one size of axes as lines. The guides program must be active.
func (a *Axes) Render(warm renderer.FrameKit, size Size) {
	r := a.ranges[size]
	warm.DrawElements(glapi.Lines, r.ByteOffset(), r.Count, glapi.UnsignedShort)
}

// Grids are three square point grids on the x, y and z planes, in 1 metre and 10 metre spans.
type Grids struct {
	ranges [2]VertexRange
}

// AddGrids appends both sizes of grids to b. Points are coloured by position and the 10 metre
// grids reuse the 1 metre colours so both sizes read the same.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - *Grids: the grids
//   - error: ErrTooManyVertices when b is full
func AddGrids(b *Builder) (*Grids, error) {
	m1 := gridPositions(1)
	m10 := gridPositions(10)
	colors := gridColors(m1)
	if b.VertexCount()+len(m1)+len(m10) > MaxVertices {
		return nil, fmt.Errorf("%w: grids need %d more", ErrTooManyVertices, len(m1)+len(m10))
	}

	g := &Grids{}
	base, err := b.Add(m1, colors)
	if err != nil {
		return nil, err
	}
	g.ranges[Size1m] = VertexRange{First: int32(base), Count: gridPoints}
	if base, err = b.Add(m10, colors); err != nil {
		return nil, err
	}
	g.ranges[Size10m] = VertexRange{First: int32(base), Count: gridPoints}
	return g, nil
}

// Range returns the vertices of one size.
func (g *Grids) Range(size Size) VertexRange {
	return g.ranges[size]
}

// Render draws one size of grids as points. The guides program must be active.
func (g *Grids) Render(warm renderer.FrameKit, size Size) {
	r := g.ranges[size]
	warm.Draw(glapi.Points, r.First, r.Count)
}

func gridPositions(span float32) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, 0, gridPoints)
	step := func(i int) float32 {
		return float32(i) * span / 10
	}
	// x = 0
	for y := -10; y <= 10; y++ {
		for z := -10; z <= 10; z++ {
			if y != 0 && z != 0 {
				points = append(points, mgl32.Vec3{0, step(y), step(z)})
			}
		}
	}
	// y = 0
	for x := -10; x <= 10; x++ {
		for z := -10; z <= 10; z++ {
			if x != 0 && z != 0 {
				points = append(points, mgl32.Vec3{step(x), 0, step(z)})
			}
		}
	}
	// z = 0
	for x := -10; x <= 10; x++ {
		for y := -10; y <= 10; y++ {
			if x != 0 && y != 0 {
				points = append(points, mgl32.Vec3{step(x), step(y), 0})
			}
		}
	}
	return points
}

// gridColors tints each point by axis: a positive coordinate feeds its own channel, a
// negative one feeds the other two.
func gridColors(points []mgl32.Vec3) []mgl32.Vec3 {
	colors := make([]mgl32.Vec3, len(points))
	for i, p := range points {
		var c mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if p[axis] > 0 {
				c[axis] += p[axis]
				continue
			}
			c[(axis+1)%3] -= p[axis]
			c[(axis+2)%3] -= p[axis]
		}
		colors[i] = c
	}
	return colors
}
