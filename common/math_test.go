package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat4InDelta(t *testing.T, want, got mgl32.Mat4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestRotateByZeroIsExact(t *testing.T) {
	assert.Equal(t, Identity, RotateX(Identity, 0))
	assert.Equal(t, Identity, RotateY(Identity, 0))
	assert.Equal(t, Identity, RotateZ(Identity, 0))
}

func TestTranslate(t *testing.T) {
	m := Translate(Identity, 1.5, -2, 0.25)
	assert.Equal(t, float32(1.5), m[12])
	assert.Equal(t, float32(-2), m[13])
	assert.Equal(t, float32(0.25), m[14])
	assert.Equal(t, mgl32.Translate3D(1.5, -2, 0.25), m)
}

func TestRotateThenInverse(t *testing.T) {
	tests := []struct {
		name   string
		rotate func(mgl32.Mat4, float32) mgl32.Mat4
	}{
		{"x", RotateX},
		{"y", RotateY},
		{"z", RotateZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, angle := range []float32{0.1, 1, -2.5, 7} {
				m := tt.rotate(tt.rotate(Identity, angle), -angle)
				assertMat4InDelta(t, Identity, m, 1e-5)
			}
		})
	}
}

func TestRotateMatchesMathgl(t *testing.T) {
	m := Translate(Identity, 1, 2, 3)
	assertMat4InDelta(t, mgl32.HomogRotate3DX(0.7).Mul4(m), RotateX(m, 0.7), 1e-6)
	assertMat4InDelta(t, mgl32.HomogRotate3DY(0.7).Mul4(m), RotateY(m, 0.7), 1e-6)
	assertMat4InDelta(t, mgl32.HomogRotate3DZ(0.7).Mul4(m), RotateZ(m, 0.7), 1e-6)
}

func TestDotMatchesMathgl(t *testing.T) {
	a := RotateY(Translate(Identity, 1, 2, 3), 0.3)
	b := Perspective(40, 2, 1, 100)
	assertMat4InDelta(t, a.Mul4(b), Dot(a, b), 1e-6)
	assert.Equal(t, a, Dot(a, Identity))
}

func TestPerspective(t *testing.T) {
	m := Perspective(90, 2, 1, 3)
	assertMat4InDelta(t, mgl32.Mat4{
		0.5, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, -2, -1,
		0, 0, -3, 0,
	}, m, 1e-6)
}

func TestOrthoForms(t *testing.T) {
	a := Ortho(-2.8, 2.8, -1.4, 1.4, -10, 10)
	b := Orthographic(-2.8, 2.8, -1.4, 1.4, -10, 10)
	assertMat4InDelta(t, a, b, 1e-6)
	assertMat4InDelta(t, mgl32.Ortho(-2.8, 2.8, -1.4, 1.4, -10, 10), a, 1e-6)
}
