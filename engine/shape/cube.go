package shape

import "github.com/go-gl/mathgl/mgl32"

// cubeFaces holds four corners per face, wound for two triangles each.
var cubeFaces = [6][4]mgl32.Vec3{
	{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}}, // back
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // front
	{{-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1}}, // left
	{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},     // right
	{{-1, -1, -1}, {-1, -1, 1}, {1, -1, 1}, {1, -1, -1}}, // bottom
	{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},     // top
}

// cubeColors shades each face from one hue: reds, oranges, yellows, greens, blues, purples.
var cubeColors = [6][4]mgl32.Vec3{
	{{0.9, 0.0, 0.1}, {0.8, 0.1, 0.2}, {0.8, 0.0, 0.1}, {0.9, 0.2, 0.0}},
	{{0.9, 0.5, 0.0}, {0.8, 0.4, 0.0}, {0.9, 0.4, 0.0}, {0.9, 0.4, 0.1}},
	{{0.8, 0.9, 0.3}, {0.9, 1.0, 0.2}, {0.7, 0.6, 0.1}, {0.6, 0.8, 0.2}},
	{{0.3, 0.9, 0.3}, {0.0, 1.0, 0.2}, {0.2, 0.9, 0.1}, {0.1, 0.8, 0.2}},
	{{0.1, 0.3, 0.8}, {0.0, 0.2, 0.9}, {0.2, 0.1, 0.7}, {0.0, 0.3, 0.6}},
	{{0.6, 0.0, 0.8}, {0.3, 0.1, 0.5}, {0.7, 0.0, 0.5}, {0.8, 0.1, 0.6}},
}

// AddCube appends a cube of side 2 centred on the origin. Faces do not share vertices so each
// face keeps its own colours.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - IndexRange: the 36 indices of the cube
//   - error: ErrTooManyVertices when b is full
func AddCube(b *Builder) (IndexRange, error) {
	points := make([]mgl32.Vec3, 0, 24)
	colors := make([]mgl32.Vec3, 0, 24)
	indices := make([]uint16, 0, 36)
	for f := range cubeFaces {
		points = append(points, cubeFaces[f][:]...)
		colors = append(colors, cubeColors[f][:]...)
		v := uint16(f * 4)
		indices = append(indices, v, v+1, v+2, v, v+2, v+3)
	}
	base, err := b.Add(points, colors)
	if err != nil {
		return IndexRange{}, err
	}
	return b.Connect(base, indices), nil
}
