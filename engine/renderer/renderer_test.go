package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, options ...RendererBuilderOption) (Renderer, *glapi.Recorder) {
	t.Helper()
	rec := glapi.NewRecorder()
	r, err := New(rec, options...)
	require.NoError(t, err)
	return r, rec
}

func TestNewConfiguresContext(t *testing.T) {
	r, rec := newRenderer(t, WithExtent(1200, 600))
	assert.True(t, rec.Enabled(glapi.DepthTest))
	assert.True(t, rec.Enabled(glapi.ProgramPointSize))
	assert.Equal(t, []glapi.Call{{Name: "DepthFunc", Args: []any{uint32(glapi.Lequal)}}}, rec.CallsNamed("DepthFunc"))
	assert.Equal(t, []any{float32(0.1), float32(0.05), float32(0.15), float32(1)}, rec.CallsNamed("ClearColor")[0].Args)
	assert.Equal(t, []any{int32(0), int32(0), int32(1200), int32(600)}, rec.CallsNamed("Viewport")[0].Args)
	assert.Equal(t, float32(2), r.AspectRatio())
	assert.Equal(t, int32(16), r.MaxVertexAttribs())
	assert.Equal(t, glapi.PolicySetupAndSceneInit, r.Policy())

	r.Resize(300, 300)
	assert.Equal(t, float32(1), r.AspectRatio())
	r.Resize(0, 10)
	w, h := r.Extent()
	assert.Equal(t, 300, w)
	assert.Equal(t, 300, h)
}

func TestNewRejectsWeakContexts(t *testing.T) {
	t.Run("too few attributes", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.MaxAttribs = 8
		_, err := New(rec)
		assert.ErrorIs(t, err, ErrTooFewAttributes)
	})
	t.Run("no instancing", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.Major, rec.Minor = 3, 0
		_, err := New(rec)
		assert.ErrorIs(t, err, ErrNoInstancing)
	})
	t.Run("instancing by extension", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.Major, rec.Minor = 3, 0
		rec.Extensions = []string{"GL_ARB_instanced_arrays"}
		_, err := New(rec)
		assert.NoError(t, err)
	})
	t.Run("setup error checked", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.InjectError(glapi.OutOfMemory)
		_, err := New(rec, WithPolicy(glapi.PolicySetupOnly))
		var glErr *glapi.Error
		require.ErrorAs(t, err, &glErr)
		assert.Equal(t, glapi.PhaseSetup, glErr.Phase)
	})
	t.Run("setup error ignored", func(t *testing.T) {
		rec := glapi.NewRecorder()
		rec.InjectError(glapi.OutOfMemory)
		_, err := New(rec, WithPolicy(glapi.PolicyOff))
		assert.NoError(t, err)
	})
}

// boxScene wires the blue and red box programs the way a two-program scene does.
func boxScene(t *testing.T, r Renderer) (blue, red ProgramIndex) {
	t.Helper()
	cool := r.Cool()
	require.NoError(t, cool.BeginScene())
	blue, err := cool.AddProgram(shader.KindBlueBox)
	require.NoError(t, err)
	red, err = cool.AddProgram(shader.KindRedBox)
	require.NoError(t, err)
	cool.RequireFamily(blue, signature.FamilyBlueRedBox)
	cool.RequireFamily(red, signature.FamilyBlueRedBox)

	both := []ProgramIndex{blue, red}
	for _, name := range []signature.AttributeName{signature.AttributePositionX, signature.AttributePositionY, signature.AttributeInstanceStep} {
		require.NoError(t, cool.EnableAttribute(both, name))
	}
	xs, err := cool.UploadFloatBuffer([]float32{0.1, 0, 0})
	require.NoError(t, err)
	require.NoError(t, cool.BindAttribute(blue, xs, signature.AttributePositionX, 1))
	steps, err := cool.UploadFloatBuffer([]float32{0, 0.15, 0.3})
	require.NoError(t, err)
	require.NoError(t, cool.BindAttribute(blue, steps, signature.AttributeInstanceStep, 1))
	require.NoError(t, cool.SetInstanceDivisor(blue, signature.AttributeInstanceStep, 1))
	return blue, red
}

func TestBindingKitWiresAttributes(t *testing.T) {
	r, rec := newRenderer(t, WithPolicy(glapi.PolicyAllPhases))
	blue, _ := boxScene(t, r)

	x := r.Program(blue).AttributeLocation(signature.AttributePositionX)
	step := r.Program(blue).AttributeLocation(signature.AttributeInstanceStep)

	xa, ok := rec.Attrib(x)
	require.True(t, ok)
	assert.True(t, xa.Enabled)
	assert.Equal(t, int32(1), xa.Size)
	assert.Equal(t, uint32(0), xa.Divisor)
	assert.Equal(t, []float32{0.1, 0, 0}, rec.BufferFloats(xa.Buffer))

	sa, ok := rec.Attrib(step)
	require.True(t, ok)
	assert.Equal(t, uint32(1), sa.Divisor)
	assert.Equal(t, []float32{0, 0.15, 0.3}, rec.BufferFloats(sa.Buffer))
	assert.Equal(t, 2, r.ProgramCount())
}

func TestBindingKitMisuse(t *testing.T) {
	r, _ := newRenderer(t)
	cool := r.Cool()

	assert.Panics(t, func() { _ = cool.EnableAttribute([]ProgramIndex{0}, signature.AttributePosition) }, "before BeginScene")
	require.NoError(t, cool.BeginScene())

	furl, err := cool.AddProgram(shader.KindFurlBasic)
	require.NoError(t, err)
	guides, err := cool.AddProgram(shader.KindGuides)
	require.NoError(t, err)
	cactus, err := cool.AddProgram(shader.KindRainbowCactus)
	require.NoError(t, err)

	assert.NotPanics(t, func() { cool.RequireCompatible(furl, guides) })
	assert.Panics(t, func() { cool.RequireCompatible(cactus, guides) })
	assert.Panics(t, func() { cool.RequireFamily(furl, signature.FamilyGuides) })
	assert.Panics(t, func() { _ = cool.EnableAttribute([]ProgramIndex{furl, cactus}, signature.AttributeColor) }, "programs disagree")
	assert.Panics(t, func() { _ = cool.EnableAttribute([]ProgramIndex{guides}, signature.AttributeCurves) }, "undeclared")
	assert.Panics(t, func() { _ = cool.EnableAttribute(nil, signature.AttributeColor) })

	a, err := cool.UploadFloatBuffer([]float32{1, 2, 3})
	require.NoError(t, err)
	b, err := cool.UploadFloatBuffer([]float32{4, 5, 6})
	require.NoError(t, err)
	assert.Panics(t, func() { _ = cool.BindAttribute(furl, a, signature.AttributePosition, 3) }, "buffer not bound")
	assert.Panics(t, func() { _ = cool.BindAttribute(furl, b, signature.AttributePosition, 4) }, "wrong component count")
	assert.NoError(t, cool.BindAttribute(furl, b, signature.AttributePosition, 3))
	cool.BindArrayBuffer(a)
	assert.NoError(t, cool.BindAttribute(furl, a, signature.AttributeColor, 3))

	_, err = cool.UploadFloatBuffer(nil)
	assert.ErrorIs(t, err, ErrEmptyBuffer)
	_, err = cool.UploadIndexBuffer(nil)
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	assert.Panics(t, func() { _ = cool.SetUniformScalar(furl, signature.UniformPointsize, 1) }, "not the active program")
}

func TestIndexBufferReachesEverySixteenBitVertex(t *testing.T) {
	r, rec := newRenderer(t)
	cool := r.Cool()
	require.NoError(t, cool.BeginScene())

	indices := make([]uint16, 1<<16)
	for i := range indices {
		indices[i] = uint16(i)
	}
	b, err := cool.UploadIndexBuffer(indices)
	require.NoError(t, err)
	got := rec.BufferUint16s(uint32(b))
	require.Len(t, got, 65536)
	assert.Equal(t, uint16(65535), got[65535])
}

func TestFrameKitDrawsAndPushes(t *testing.T) {
	r, rec := newRenderer(t, WithPolicy(glapi.PolicyAllPhases))
	blue, red := boxScene(t, r)
	warm := r.Warm()
	rec.ClearCalls()

	warm.Clear()
	warm.UseProgram(blue)
	warm.SetUniformScalar(blue, signature.UniformPointsize, 5)
	warm.Draw(glapi.Points, 0, 3)
	warm.DrawInstanced(glapi.Triangles, 0, 3, 3)
	warm.UseProgram(red)
	warm.SetUniformScalar(red, signature.UniformPointsize, 10)

	assert.Len(t, rec.CallsNamed("Clear"), 1)
	assert.Equal(t, []any{uint32(glapi.Triangles), int32(0), int32(3), int32(3)}, rec.CallsNamed("DrawArraysInstanced")[0].Args)
	v, ok := rec.UniformValue(r.Program(blue).Handle(), "u_pointsize")
	require.True(t, ok)
	assert.Equal(t, float32(5), v)
	v, ok = rec.UniformValue(r.Program(red).Handle(), "u_pointsize")
	require.True(t, ok)
	assert.Equal(t, float32(10), v)
}

func TestFrameKitMisusePanics(t *testing.T) {
	r, _ := newRenderer(t)
	cool := r.Cool()
	require.NoError(t, cool.BeginScene())
	furl, err := cool.AddProgram(shader.KindFurlBasic)
	require.NoError(t, err)
	guides, err := cool.AddProgram(shader.KindGuides)
	require.NoError(t, err)
	_, err = cool.UploadIndexBuffer([]uint16{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)

	warm := r.Warm()
	assert.Panics(t, func() { warm.Draw(glapi.Points, 0, 1) }, "no active program")
	warm.UseProgram(furl)

	tests := []struct {
		name string
		fn   func()
	}{
		{"odd offset", func() { warm.DrawElementsInstanced(glapi.Triangles, 3, 2, 1) }},
		{"past the end", func() { warm.DrawElementsInstanced(glapi.Triangles, 4, 6, 1) }},
		{"wide indices", func() { warm.DrawElements(glapi.Triangles, 0, 3, 0x1405) }},
		{"unknown mode", func() { warm.Draw(0x0009, 0, 3) }},
		{"inactive program", func() { warm.SetUniformMat4(guides, signature.UniformViewMatrix, mgl32.Ident4()) }},
		{"undeclared uniform", func() { warm.SetUniformScalar(furl, signature.UniformPointsize, 1) }},
		{"wrong kind", func() { warm.SetUniformVec4(furl, signature.UniformViewMatrix, [4]float32{}) }},
		{"unknown program", func() { warm.UseProgram(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}

	assert.NotPanics(t, func() { warm.DrawElementsInstanced(glapi.Triangles, 6, 3, 4) })
	assert.NotPanics(t, func() { warm.SetUniformVec3(furl, signature.UniformPlacement, [3]float32{}) })
}

func TestFrameErrorsFollowPolicy(t *testing.T) {
	t.Run("all phases panics", func(t *testing.T) {
		r, rec := newRenderer(t, WithPolicy(glapi.PolicyAllPhases))
		rec.InjectError(glapi.InvalidOperation)
		assert.PanicsWithValue(t, "glapi: Clear during frame: INVALID_OPERATION (0x0502)", func() { r.Warm().Clear() })
	})
	t.Run("scene init only ignores frames", func(t *testing.T) {
		r, rec := newRenderer(t, WithPolicy(glapi.PolicySetupAndSceneInit))
		rec.InjectError(glapi.InvalidOperation)
		assert.NotPanics(t, func() { r.Warm().Clear() })
	})
	t.Run("scene init errors are returned", func(t *testing.T) {
		r, rec := newRenderer(t, WithPolicy(glapi.PolicySetupAndSceneInit))
		rec.InjectError(glapi.InvalidValue)
		err := r.Cool().BeginScene()
		var glErr *glapi.Error
		require.ErrorAs(t, err, &glErr)
		assert.Equal(t, glapi.PhaseSceneInit, glErr.Phase)
	})
}

func TestResetReleasesEverything(t *testing.T) {
	r, rec := newRenderer(t)
	boxScene(t, r)
	programs, buffers, vaos := rec.LiveObjects()
	assert.Equal(t, 2, programs)
	assert.Equal(t, 2, buffers)
	assert.Equal(t, 1, vaos)

	require.NoError(t, r.Cool().BeginScene())
	programs, buffers, vaos = rec.LiveObjects()
	assert.Zero(t, programs)
	assert.Zero(t, buffers)
	assert.Equal(t, 1, vaos)
	assert.Zero(t, r.ProgramCount())

	r.Reset()
	_, _, vaos = rec.LiveObjects()
	assert.Zero(t, vaos)
}
