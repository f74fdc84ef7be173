package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

var (
	boxSteps = []float32{0, 0.15, 0.3, 0, -0.05, -0.1}
	boxXs    = []float32{0.1, 0, 0, 0.2, 0.15, 0.25}
	boxYs    = []float32{0.1, 0.1, 0, 0.4, 0.3, 0.3}
)

// blueRedBoxes draws three blue and three red points, then the same triangles instanced three
// times each. Both programs read the same three buffers.
type blueRedBoxes struct {
	base
	blue, red renderer.ProgramIndex
}

func newBlueRedBoxes(r renderer.Renderer, cfg *config) (*blueRedBoxes, error) {
	cool := r.Cool()
	if err := cool.BeginScene(); err != nil {
		return nil, err
	}

	s := &blueRedBoxes{base: base{name: NameBlueRedBoxes, logger: cfg.logger, catalog: emptyCatalog}}
	var err error
	if s.blue, err = cool.AddProgram(shader.KindBlueBox); err != nil {
		return nil, err
	}
	if s.red, err = cool.AddProgram(shader.KindRedBox); err != nil {
		return nil, err
	}
	cool.RequireFamily(s.blue, signature.FamilyBlueRedBox)
	cool.RequireFamily(s.red, signature.FamilyBlueRedBox)
	both := []renderer.ProgramIndex{s.blue, s.red}

	for _, attr := range []struct {
		name    signature.AttributeName
		values  []float32
		divisor uint32
	}{
		{signature.AttributeInstanceStep, boxSteps, 1},
		{signature.AttributePositionX, boxXs, 0},
		{signature.AttributePositionY, boxYs, 0},
	} {
		buf, err := cool.UploadFloatBuffer(attr.values)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", attr.name, err)
		}
		if err := cool.EnableAttribute(both, attr.name); err != nil {
			return nil, err
		}
		if err := cool.BindAttribute(s.blue, buf, attr.name, 1); err != nil {
			return nil, err
		}
		if attr.divisor > 0 {
			if err := cool.SetInstanceDivisor(s.blue, attr.name, attr.divisor); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range []struct {
		program renderer.ProgramIndex
		size    float32
	}{
		{s.blue, 5},
		{s.red, 10},
	} {
		if err := cool.UseProgram(p.program); err != nil {
			return nil, err
		}
		if err := cool.SetUniformScalar(p.program, signature.UniformPointsize, p.size); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *blueRedBoxes) Render(_ develop.Develop, r renderer.Renderer, _ *clock.Clock) {
	warm := r.Warm()
	warm.UseProgram(s.blue)
	warm.Draw(glapi.Points, 0, 3)
	warm.DrawInstanced(glapi.Triangles, 0, 3, 3)
	warm.UseProgram(s.red)
	warm.Draw(glapi.Points, 3, 3)
	warm.DrawInstanced(glapi.Triangles, 3, 3, 3)
}
