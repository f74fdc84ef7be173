// Package glcore implements glapi.Context on top of the go-gl OpenGL 3.3 core bindings.
package glcore

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type context struct {
	extensions map[string]bool
}

var _ glapi.Context = &context{}

// New loads the GL function pointers for the context current on this thread and returns a
// glapi.Context bound to it. The window must have made its context current first.
//
// Returns:
//   - glapi.Context: the context
//   - error: an error if the GL function pointers could not be loaded
func New() (glapi.Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: failed to initialise OpenGL: %w", err)
	}
	c := &context{extensions: make(map[string]bool)}
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		c.extensions[gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))] = true
	}
	return c, nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *context) GetError() uint32 {
	return gl.GetError()
}

func (c *context) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (c *context) HasExtension(name string) bool {
	return c.extensions[name]
}

func (c *context) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (c *context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

func (c *context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (c *context) ShaderCompileStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *context) BindAttribLocation(program, index uint32, name string) {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	gl.BindAttribLocation(program, index, *cname)
}

func (c *context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (c *context) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (c *context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *context) ProgramLinkStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *context) GetAttribLocation(program uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetAttribLocation(program, *cname)
}

func (c *context) GetUniformLocation(program uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(program, *cname)
}

func (c *context) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (c *context) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (c *context) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (c *context) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (c *context) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (c *context) BufferFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (c *context) BufferUint16(target uint32, data []uint16, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*2, gl.Ptr(data), usage)
}

func (c *context) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (c *context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (c *context) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (c *context) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (c *context) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (c *context) Uniform4f(location int32, v [4]float32) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (c *context) UniformMatrix4f(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *context) Enable(capability uint32) {
	gl.Enable(capability)
}

func (c *context) DepthFunc(fn uint32) {
	gl.DepthFunc(fn)
}

func (c *context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *context) ClearDepth(depth float64) {
	gl.ClearDepth(depth)
}

func (c *context) Clear(mask uint32) {
	gl.Clear(mask)
}

func (c *context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (c *context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (c *context) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}

func (c *context) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	gl.DrawElementsInstancedWithOffset(mode, count, xtype, uintptr(offset), instances)
}
