package scene

import (
	"github.com/Carmen-Shannon/furl/common"
	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/Carmen-Shannon/furl/engine/shape"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cactusInstances is the number of cubes in the field.
const cactusInstances = 500

// rainbowCactus draws one cube 500 times. The vertex program spreads the instances using their
// step and two logarithms of it, and the camera drifts back while tipping over.
type rainbowCactus struct {
	base
	program renderer.ProgramIndex
	cube    shape.IndexRange

	model, view, projection mgl32.Mat4
	aspect                  float32
	quaternion              [4]float32
}

// cactusInstanceData returns the step, log base 1.5 and reversed log base 2.5 of every instance.
func cactusInstanceData() (step, log, logRev []float32) {
	step = make([]float32, cactusInstances)
	log = make([]float32, cactusInstances)
	logRev = make([]float32, cactusInstances)
	ln15, ln25 := math32.Log(1.5), math32.Log(2.5)
	for i := range step {
		step[i] = float32(i + 1)
		log[i] = math32.Log(step[i]) / ln15
		logRev[cactusInstances-1-i] = math32.Log(step[i]) / ln25
	}
	return step, log, logRev
}

func newRainbowCactus(r renderer.Renderer, cfg *config) (*rainbowCactus, error) {
	cool := r.Cool()
	if err := cool.BeginScene(); err != nil {
		return nil, err
	}

	s := &rainbowCactus{base: base{name: NameRainbowCactus, logger: cfg.logger, catalog: emptyCatalog}}
	var err error
	if s.program, err = cool.AddProgram(shader.KindRainbowCactus); err != nil {
		return nil, err
	}
	cool.RequireFamily(s.program, signature.FamilyRainbowCactus)
	only := []renderer.ProgramIndex{s.program}

	b := shape.NewBuilder()
	if s.cube, err = shape.AddCube(b); err != nil {
		return nil, err
	}
	step, log, logRev := cactusInstanceData()

	for _, attr := range []struct {
		name       signature.AttributeName
		values     []float32
		components int32
		divisor    uint32
	}{
		{signature.AttributeColor, b.Colors(), 3, 0},
		{signature.AttributeInstanceLog, log, 1, 1},
		{signature.AttributeInstanceLogRev, logRev, 1, 1},
		{signature.AttributeInstanceStep, step, 1, 1},
		{signature.AttributePosition, b.Positions(), 3, 0},
	} {
		buf, err := cool.UploadFloatBuffer(attr.values)
		if err != nil {
			return nil, err
		}
		if err := cool.EnableAttribute(only, attr.name); err != nil {
			return nil, err
		}
		if err := cool.BindAttribute(s.program, buf, attr.name, attr.components); err != nil {
			return nil, err
		}
		if attr.divisor > 0 {
			if err := cool.SetInstanceDivisor(s.program, attr.name, attr.divisor); err != nil {
				return nil, err
			}
		}
	}
	if _, err := cool.UploadIndexBuffer(b.Indices()); err != nil {
		return nil, err
	}
	if err := cool.UseProgram(s.program); err != nil {
		return nil, err
	}

	s.model = common.Identity
	s.view = common.Identity
	s.view[14] = 3
	s.aspect = r.AspectRatio()
	s.projection = common.Perspective(40, s.aspect, 1, 100)
	s.quaternion = [4]float32{0, 0, 1, -1}
	return s, nil
}

func (s *rainbowCactus) Render(_ develop.Develop, r renderer.Renderer, clk *clock.Clock) {
	if a := r.AspectRatio(); a != s.aspect {
		s.aspect = a
		s.projection = common.Perspective(40, a, 1, 100)
	}
	dt := float32(clk.Delta())
	s.quaternion[3] += dt * 0.3
	s.view = common.RotateX(s.view, -dt*0.1)
	s.view[14] -= dt * 0.2

	warm := r.Warm()
	warm.UseProgram(s.program)
	warm.SetUniformMat4(s.program, signature.UniformProjectionMatrix, s.projection)
	warm.SetUniformMat4(s.program, signature.UniformViewMatrix, s.view)
	warm.SetUniformMat4(s.program, signature.UniformModelMatrix, s.model)
	warm.SetUniformVec4(s.program, signature.UniformQuaternion, s.quaternion)
	warm.DrawElementsInstanced(glapi.Triangles, s.cube.ByteOffset(), s.cube.Count, cactusInstances)
}
