package scene

import (
	"time"

	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraBlend eases the projection and view matrices from one camera preset to the next.
// The first Update snaps to its target.
type cameraBlend struct {
	duration float32

	started bool
	preset  develop.CameraPreset
	tween   *gween.Tween

	fromProjection, fromView mgl32.Mat4
	projection, view         mgl32.Mat4
}

func newCameraBlend(d time.Duration) *cameraBlend {
	return &cameraBlend{duration: float32(d.Seconds())}
}

// Update advances the blend by dt seconds towards the matrices of preset and returns the
// matrices to draw with.
func (c *cameraBlend) Update(preset develop.CameraPreset, projection, view mgl32.Mat4, dt float32) (mgl32.Mat4, mgl32.Mat4) {
	if !c.started || c.duration <= 0 {
		c.started = true
		c.preset = preset
		c.projection, c.view = projection, view
		return c.projection, c.view
	}
	if preset != c.preset {
		c.preset = preset
		c.fromProjection, c.fromView = c.projection, c.view
		c.tween = gween.New(0, 1, c.duration, ease.InOutQuad)
	}
	if c.tween == nil {
		c.projection, c.view = projection, view
		return c.projection, c.view
	}

	t, done := c.tween.Update(dt)
	if done {
		c.tween = nil
		c.projection, c.view = projection, view
		return c.projection, c.view
	}
	c.projection = lerpMat4(c.fromProjection, projection, t)
	c.view = lerpMat4(c.fromView, view, t)
	return c.projection, c.view
}

// Blending reports whether a preset change is still easing in.
func (c *cameraBlend) Blending() bool {
	return c.tween != nil
}

func lerpMat4(a, b mgl32.Mat4, t float32) mgl32.Mat4 {
	return a.Add(b.Sub(a).Mul(t))
}
