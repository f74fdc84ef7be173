package scene

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/Carmen-Shannon/furl/common"
	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/params"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/Carmen-Shannon/furl/engine/shape"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed data/alone_furl_fieldsets.json
var aloneFurlFieldsets []byte

//go:embed data/alone_furl_presets.json
var aloneFurlPresets []byte

// Parameter layout. Four blocks of blockSize values, one per iu_* column, then the singles.
const (
	blockSize  = 24
	blockCount = 4
	singlesAt  = blockSize * blockCount

	// Offsets of each iu_* group within a block.
	groupAngle = 0
	groupBulge = 4
	groupLean  = 8
	groupRise  = 12
	groupScale = 16
	groupTilt  = 20

	singleSlidermix = singlesAt     // sm0..sm3
	singleDensity   = singlesAt + 4 // _2p
	singleQx3       = singlesAt + 5
	singleQy3       = singlesAt + 6

	// FurlParameterCount is the length of the alone-furl parameter vector.
	FurlParameterCount = singlesAt + 7

	maxDensity = 10
	orthoZoom  = 2.8
)

var groupPrefixes = map[string]int{
	"a": groupAngle,
	"b": groupBulge,
	"l": groupLean,
	"r": groupRise,
	"s": groupScale,
	"t": groupTilt,
}

var singleNames = map[string]int{
	"sm0": singleSlidermix,
	"sm1": singleSlidermix + 1,
	"sm2": singleSlidermix + 2,
	"sm3": singleSlidermix + 3,
	"_2p": singleDensity,
	"qx3": singleQx3,
	"qy3": singleQy3,
}

// furlParameterIndex returns the slot of a named parameter in the first block, or of a single.
// Group names run "a_0" to "t_3".
func furlParameterIndex(name string) (int, bool) {
	if i, ok := singleNames[name]; ok {
		return i, true
	}
	if len(name) != 3 || name[1] != '_' {
		return 0, false
	}
	group, ok := groupPrefixes[name[:1]]
	if !ok {
		return 0, false
	}
	j, err := strconv.Atoi(name[2:])
	if err != nil || j < 0 || j > 3 {
		return 0, false
	}
	return group + j, true
}

// cameraSet is one projection and view matrix per camera preset.
type cameraSet struct {
	projection [4]mgl32.Mat4
	view       [4]mgl32.Mat4
}

func newCameraSet(aspect float32) cameraSet {
	var c cameraSet
	z := float32(orthoZoom)
	front := common.Translate(common.Identity, aspect*0.5*z, 0.5*z, -4)

	c.projection[develop.CameraChosenByScene] = common.Perspective(20, aspect, 0.1, 100)
	c.projection[develop.CameraOrthographicFront] = common.Ortho(0, aspect*z, z, 0, 0.1, 100)
	c.projection[develop.CameraOrthographicLeft] = common.Ortho(0, aspect*z, z, 0, 0.1, 100)
	c.projection[develop.CameraOrthographicTop] = common.Orthographic(0, aspect*z, z, 0, 0.1, 100)

	c.view[develop.CameraChosenByScene] = common.Dot(
		common.RotateX(common.Identity, -math32.Pi/4),
		common.Translate(common.Identity, -0.3, 4, -4),
	)
	c.view[develop.CameraOrthographicFront] = front
	c.view[develop.CameraOrthographicLeft] = common.Dot(front, common.RotateY(common.Identity, math32.Pi/2))
	c.view[develop.CameraOrthographicTop] = common.Dot(front, common.RotateX(common.Identity, -math32.Pi/2))
	return c
}

func (c cameraSet) pick(preset develop.CameraPreset) (mgl32.Mat4, mgl32.Mat4) {
	if preset < 0 || int(preset) >= len(c.projection) {
		preset = develop.CameraChosenByScene
	}
	return c.projection[preset], c.view[preset]
}

// furlUniforms are the values pushed to the furl program every frame.
type furlUniforms struct {
	angle, bulge, lean, rise, scale, tilt mgl32.Mat4
	quaternionX, quaternionY              [4]float32
	slidermix, timermix                   [4]float32
	instances                             int32
}

// computeFurlUniforms derives the per-frame uniforms from the parameter values and the clock.
// Element k*4+j of each iu_* matrix is value j of its group in block k.
func computeFurlUniforms(values []float32, clk *clock.Clock) furlUniforms {
	var u furlUniforms
	density := int(math32.Floor(values[singleDensity]))
	density = common.Clamp(density, 0, maxDensity)
	u.instances = int32(1) << density

	group := func(offset int) mgl32.Mat4 {
		var m mgl32.Mat4
		for k := range blockCount {
			for j := range 4 {
				m[k*4+j] = values[blockSize*k+offset+j]
			}
		}
		return m
	}
	u.angle = group(groupAngle)
	u.angle[0] *= float32(u.instances)
	u.angle[4] *= float32(u.instances)
	u.bulge = group(groupBulge)
	u.lean = group(groupLean)
	u.rise = group(groupRise)
	u.scale = group(groupScale)
	u.tilt = group(groupTilt)

	u.quaternionX = [4]float32{1, 0, 0, values[singleQx3]}
	u.quaternionY = [4]float32{0, 1, 0, values[singleQy3]}
	copy(u.slidermix[:], values[singleSlidermix:singleSlidermix+4])

	bn := float32(clk.BeatNorm())
	b4n := float32(clk.Beat4Norm())
	u.timermix = [4]float32{
		bn,
		math32.Sin((bn-0.25)*2*math32.Pi)/2 + 0.5,
		b4n,
		math32.Sin((b4n-0.25)*2*math32.Pi)/2 + 0.5,
	}
	return u
}

// aloneFurl draws one parametrized Furl, optionally with axes and grids. Guides share the
// furl's position and colour buffers.
type aloneFurl struct {
	base
	furl, guides renderer.ProgramIndex

	axes    *shape.Axes
	grids   *shape.Grids
	spiral  *shape.Furl
	cameras cameraSet
	aspect  float32
	blend   *cameraBlend
}

func aloneFurlCatalog() (catalog, error) {
	return loadCatalog(aloneFurlFieldsets, aloneFurlPresets, FurlParameterCount, func(name string) bool {
		_, ok := furlParameterIndex(name)
		return ok
	})
}

func newAloneFurl(r renderer.Renderer, cfg *config) (*aloneFurl, error) {
	cat, err := aloneFurlCatalog()
	if err != nil {
		return nil, err
	}

	cool := r.Cool()
	if err := cool.BeginScene(); err != nil {
		return nil, err
	}

	s := &aloneFurl{
		base: base{
			name:    NameAloneFurl,
			logger:  cfg.logger,
			params:  params.New(FurlParameterCount, params.WithLogger(cfg.logger)),
			catalog: cat,
		},
		cameras: newCameraSet(r.AspectRatio()),
		aspect:  r.AspectRatio(),
		blend:   newCameraBlend(cfg.cameraBlend),
	}
	if s.furl, err = cool.AddProgram(shader.KindFurlBasic); err != nil {
		return nil, err
	}
	if s.guides, err = cool.AddProgram(shader.KindGuides); err != nil {
		return nil, err
	}
	cool.RequireFamily(s.furl, signature.FamilyFurlBasic)
	cool.RequireCompatible(s.furl, s.guides)

	b := shape.NewBuilder()
	if s.axes, err = shape.AddAxes(b); err != nil {
		return nil, err
	}
	if s.grids, err = shape.AddGrids(b); err != nil {
		return nil, err
	}
	if s.spiral, err = shape.AddFurl(b, shape.FurlNubbin, mgl32.Vec3{}); err != nil {
		return nil, err
	}

	curves := pooledCurves(cfg.curveWorkers)
	cfg.logger.Debug("curves ready", "instances", maxFurlInstances, "workers", cfg.curveWorkers)

	curvesBuf, err := cool.UploadFloatBuffer(curves)
	if err != nil {
		return nil, fmt.Errorf("uploading curves: %w", err)
	}
	if err := cool.EnableAttribute([]renderer.ProgramIndex{s.furl}, signature.AttributeCurves); err != nil {
		return nil, err
	}
	if err := cool.BindAttribute(s.furl, curvesBuf, signature.AttributeCurves, 4); err != nil {
		return nil, err
	}
	if err := cool.SetInstanceDivisor(s.furl, signature.AttributeCurves, 1); err != nil {
		return nil, err
	}

	both := []renderer.ProgramIndex{s.furl, s.guides}
	for _, attr := range []struct {
		name   signature.AttributeName
		values []float32
	}{
		{signature.AttributeColor, b.Colors()},
		{signature.AttributePosition, b.Positions()},
	} {
		buf, err := cool.UploadFloatBuffer(attr.values)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", attr.name, err)
		}
		if err := cool.EnableAttribute(both, attr.name); err != nil {
			return nil, err
		}
		if err := cool.BindAttribute(s.furl, buf, attr.name, 3); err != nil {
			return nil, err
		}
	}
	if _, err := cool.UploadIndexBuffer(b.Indices()); err != nil {
		return nil, err
	}
	if err := cool.UseProgram(s.furl); err != nil {
		return nil, err
	}

	if cfg.initialParams != "" {
		if err := s.params.Set(cfg.initialParams); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *aloneFurl) Render(dev develop.Develop, r renderer.Renderer, clk *clock.Clock) {
	lod := shape.Lod1
	if dev.Lod == develop.LodAll0 {
		lod = shape.Lod0
	}
	mode := uint32(glapi.Triangles)
	switch dev.Wireframe {
	case develop.WireframeDots:
		mode = glapi.Points
	case develop.WireframeLines:
		mode = glapi.LineStrip
	}

	if a := r.AspectRatio(); a != s.aspect {
		s.cameras, s.aspect = newCameraSet(a), a
	}
	u := computeFurlUniforms(s.params.Values(), clk)
	projection, view := s.cameras.pick(dev.Camera)
	projection, view = s.blend.Update(dev.Camera, projection, view, float32(clk.Delta()))

	warm := r.Warm()
	warm.UseProgram(s.furl)
	s.pushCamera(warm, s.furl, projection, view)
	warm.SetUniformVec4(s.furl, signature.UniformQuaternionX, u.quaternionX)
	warm.SetUniformVec4(s.furl, signature.UniformQuaternionY, u.quaternionY)
	warm.SetUniformVec4(s.furl, signature.UniformSlidermix, u.slidermix)
	warm.SetUniformVec4(s.furl, signature.UniformTimermix, u.timermix)
	warm.SetUniformMat4(s.furl, signature.UniformAngle, u.angle)
	warm.SetUniformMat4(s.furl, signature.UniformBulge, u.bulge)
	warm.SetUniformMat4(s.furl, signature.UniformLean, u.lean)
	warm.SetUniformMat4(s.furl, signature.UniformRise, u.rise)
	warm.SetUniformMat4(s.furl, signature.UniformScale, u.scale)
	warm.SetUniformMat4(s.furl, signature.UniformTilt, u.tilt)

	s.spiral.Render(warm, s.furl, lod, mode, u.instances)

	if dev.Guides == develop.GuidesChosenByScene || dev.Guides == develop.GuidesNone {
		return
	}
	size := shape.Size10m
	if dev.Guides.OneMetre() {
		size = shape.Size1m
	}
	warm.UseProgram(s.guides)
	s.pushCamera(warm, s.guides, projection, view)
	if dev.Guides.ShowsAxes() {
		s.axes.Render(warm, size)
	}
	if dev.Guides.ShowsGrids() {
		s.grids.Render(warm, size)
	}
	warm.UseProgram(s.furl)
	s.pushCamera(warm, s.furl, projection, view)
}

func (s *aloneFurl) pushCamera(warm renderer.FrameKit, program renderer.ProgramIndex, projection, view mgl32.Mat4) {
	warm.SetUniformMat4(program, signature.UniformProjectionMatrix, projection)
	warm.SetUniformMat4(program, signature.UniformViewMatrix, view)
}
