package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Identity is the 4x4 identity matrix.
var Identity = mgl32.Ident4()

// Dot multiplies two 4x4 matrices and returns the product.
// All matrices are stored in column-major order (OpenGL convention).
// Result: a * b
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - mgl32.Mat4: the product a * b
func Dot(a, b mgl32.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Translate returns m with (dx, dy, dz) added to its translation column.
//
// Parameters:
//   - m: the source matrix
//   - dx, dy, dz: the offsets to add to elements 12, 13 and 14
//
// Returns:
//   - mgl32.Mat4: the translated matrix
func Translate(m mgl32.Mat4, dx, dy, dz float32) mgl32.Mat4 {
	m[12] += dx
	m[13] += dy
	m[14] += dz
	return m
}

// RotateX rotates m around the x axis by angle radians (Rx * m).
func RotateX(m mgl32.Mat4, angle float32) mgl32.Mat4 {
	s, c := math32.Sincos(angle)
	out := m
	out[1] = m[1]*c - m[2]*s
	out[5] = m[5]*c - m[6]*s
	out[9] = m[9]*c - m[10]*s
	out[13] = m[13]*c - m[14]*s
	out[2] = m[2]*c + m[1]*s
	out[6] = m[6]*c + m[5]*s
	out[10] = m[10]*c + m[9]*s
	out[14] = m[14]*c + m[13]*s
	return out
}

// RotateY rotates m around the y axis by angle radians (Ry * m).
func RotateY(m mgl32.Mat4, angle float32) mgl32.Mat4 {
	s, c := math32.Sincos(angle)
	out := m
	out[0] = c*m[0] + s*m[2]
	out[4] = c*m[4] + s*m[6]
	out[8] = c*m[8] + s*m[10]
	out[12] = c*m[12] + s*m[14]
	out[2] = c*m[2] - s*m[0]
	out[6] = c*m[6] - s*m[4]
	out[10] = c*m[10] - s*m[8]
	out[14] = c*m[14] - s*m[12]
	return out
}

// RotateZ rotates m around the z axis by angle radians (Rz * m).
func RotateZ(m mgl32.Mat4, angle float32) mgl32.Mat4 {
	s, c := math32.Sincos(angle)
	out := m
	out[0] = c*m[0] - s*m[1]
	out[4] = c*m[4] - s*m[5]
	out[8] = c*m[8] - s*m[9]
	out[12] = c*m[12] - s*m[13]
	out[1] = c*m[1] + s*m[0]
	out[5] = c*m[5] + s*m[4]
	out[9] = c*m[9] + s*m[8]
	out[13] = c*m[13] + s*m[12]
	return out
}

// Perspective creates a perspective projection matrix with a flipped y axis.
//
// Parameters:
//   - angle: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(angle, aspect, near, far float32) mgl32.Mat4 {
	t := math32.Tan(angle * 0.5 * math32.Pi / 180)
	return mgl32.Mat4{
		0.5 / t, 0, 0, 0,
		0, -0.5 * aspect / t, 0, 0,
		0, 0, -(far + near) / (far - near), -1,
		0, 0, (-2 * far * near) / (far - near), 0,
	}
}

// Ortho creates an orthographic projection matrix.
//
// Parameters:
//   - left, right, bottom, top: the view volume extents
//   - near, far: the clipping plane distances
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return mgl32.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, 2 / (near - far), 0,
		(left + right) / (left - right), (bottom + top) / (bottom - top), (near + far) / (near - far), 1,
	}
}

// Orthographic creates an orthographic projection matrix in the textbook form.
// Equivalent to Ortho up to floating point rounding.
func Orthographic(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return mgl32.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
