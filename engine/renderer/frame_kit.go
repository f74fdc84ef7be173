package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameKit holds the per-frame operations. Every misuse panics, and so does any GL error when
// the policy checks the frame phase.
type FrameKit interface {
	// Clear clears the color and depth buffers. Call it before the first draw of a frame.
	Clear()

	// UseProgram installs a registered program.
	//
	// Parameters:
	//   - index: the program
	UseProgram(index ProgramIndex)

	// Draw renders count vertices starting at first.
	//
	// Parameters:
	//   - mode: a glapi draw mode
	//   - first: the first vertex
	//   - count: the number of vertices
	Draw(mode uint32, first, count int32)

	// DrawElements renders count indices starting at a byte offset into the index buffer.
	// The offset must be a multiple of the index width.
	//
	// Parameters:
	//   - mode: a glapi draw mode
	//   - offset: the byte offset of the first index
	//   - count: the number of indices
	//   - indexType: glapi.UnsignedShort
	DrawElements(mode uint32, offset int, count int32, indexType uint32)

	// DrawInstanced renders instances copies of count vertices starting at first.
	//
	// Parameters:
	//   - mode: a glapi draw mode
	//   - first: the first vertex
	//   - count: the number of vertices per instance
	//   - instances: the number of instances
	DrawInstanced(mode uint32, first, count, instances int32)

	// DrawElementsInstanced renders instances copies of count unsigned short indices starting at
	// a byte offset into the index buffer.
	//
	// Parameters:
	//   - mode: a glapi draw mode
	//   - offset: the byte offset of the first index, a multiple of 2
	//   - count: the number of indices per instance
	//   - instances: the number of instances
	DrawElementsInstanced(mode uint32, offset int, count, instances int32)

	// SetUniformMat4 sets a mat4 uniform on the active program.
	SetUniformMat4(index ProgramIndex, name signature.UniformName, m mgl32.Mat4)

	// SetUniformVec4 sets a vec4 uniform on the active program.
	SetUniformVec4(index ProgramIndex, name signature.UniformName, v [4]float32)

	// SetUniformVec3 sets a vec3 uniform on the active program.
	SetUniformVec3(index ProgramIndex, name signature.UniformName, v [3]float32)

	// SetUniformScalar sets a float uniform on the active program.
	SetUniformScalar(index ProgramIndex, name signature.UniformName, v float32)
}

type frameKit struct {
	r *renderer
}

var _ FrameKit = frameKit{}

func (k frameKit) check(op string) {
	k.r.checker.MustCheck(glapi.PhaseFrame, op)
}

func (k frameKit) Clear() {
	k.r.ctx.Clear(glapi.ColorBufferBit | glapi.DepthBufferBit)
	k.check("Clear")
}

func (k frameKit) UseProgram(index ProgramIndex) {
	k.r.Program(index).Use()
	k.r.current = index
	k.check("UseProgram")
}

func (k frameKit) Draw(mode uint32, first, count int32) {
	k.requireDraw("Draw", mode)
	k.r.ctx.DrawArrays(mode, first, count)
	k.check("DrawArrays")
}

func (k frameKit) DrawElements(mode uint32, offset int, count int32, indexType uint32) {
	k.requireDraw("DrawElements", mode)
	k.requireIndices("DrawElements", offset, count, indexType)
	k.r.ctx.DrawElements(mode, count, indexType, offset)
	k.check("DrawElements")
}

func (k frameKit) DrawInstanced(mode uint32, first, count, instances int32) {
	k.requireDraw("DrawInstanced", mode)
	k.r.ctx.DrawArraysInstanced(mode, first, count, instances)
	k.check("DrawArraysInstanced")
}

func (k frameKit) DrawElementsInstanced(mode uint32, offset int, count, instances int32) {
	k.requireDraw("DrawElementsInstanced", mode)
	k.requireIndices("DrawElementsInstanced", offset, count, glapi.UnsignedShort)
	k.r.ctx.DrawElementsInstanced(mode, count, glapi.UnsignedShort, offset, instances)
	k.check("DrawElementsInstanced")
}

func (k frameKit) SetUniformMat4(index ProgramIndex, name signature.UniformName, m mgl32.Mat4) {
	loc := k.r.uniformLocation(index, name, signature.UniformMat4)
	k.r.ctx.UniformMatrix4f(loc, m)
	k.check("UniformMatrix4f")
}

func (k frameKit) SetUniformVec4(index ProgramIndex, name signature.UniformName, v [4]float32) {
	loc := k.r.uniformLocation(index, name, signature.UniformVec4)
	k.r.ctx.Uniform4f(loc, v)
	k.check("Uniform4f")
}

func (k frameKit) SetUniformVec3(index ProgramIndex, name signature.UniformName, v [3]float32) {
	loc := k.r.uniformLocation(index, name, signature.UniformVec3)
	k.r.ctx.Uniform3f(loc, v)
	k.check("Uniform3f")
}

func (k frameKit) SetUniformScalar(index ProgramIndex, name signature.UniformName, v float32) {
	loc := k.r.uniformLocation(index, name, signature.UniformFloat)
	k.r.ctx.Uniform1f(loc, v)
	k.check("Uniform1f")
}

func (k frameKit) requireDraw(op string, mode uint32) {
	switch mode {
	case glapi.Points, glapi.Lines, glapi.LineStrip, glapi.Triangles:
	default:
		panic(fmt.Sprintf("renderer: %s with unsupported mode 0x%X", op, mode))
	}
	if k.r.current < 0 {
		panic(fmt.Sprintf("renderer: %s(%s) with no active program", op, glapi.ModeName(mode)))
	}
}

func (k frameKit) requireIndices(op string, offset int, count int32, indexType uint32) {
	if indexType != glapi.UnsignedShort {
		panic(fmt.Sprintf("renderer: %s with index type 0x%X, only UNSIGNED_SHORT is supported", op, indexType))
	}
	const width = 2
	if offset < 0 || offset%width != 0 {
		panic(fmt.Sprintf("renderer: %s offset %d is not a multiple of the %d byte index width", op, offset, width))
	}
	if k.r.elementBuf == 0 {
		panic(fmt.Sprintf("renderer: %s with no index buffer bound", op))
	}
	if end := offset/width + int(count); count < 0 || end > k.r.elementCount {
		panic(fmt.Sprintf("renderer: %s reads indices up to %d of %d", op, end, k.r.elementCount))
	}
}
