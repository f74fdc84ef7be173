// Package glapi declares the narrow slice of OpenGL that the renderer drives.
//
// The renderer never imports a GL binding directly. It talks to a Context, which is implemented
// by the go-gl backed glcore package on real hardware and by the Recorder in tests and headless runs.
package glapi

// Enum values mirror the OpenGL 3.3 core constants of the same name.
const (
	NoError = 0

	Points    = 0x0000
	Lines     = 0x0001
	LineStrip = 0x0003
	Triangles = 0x0004

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	Float         = 0x1406
	UnsignedShort = 0x1403

	DepthBufferBit = 0x00000100
	ColorBufferBit = 0x00004000

	DepthTest        = 0x0B71
	ProgramPointSize = 0x8642
	Lequal           = 0x0203

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	MaxVertexAttribs = 0x8869
	MajorVersion     = 0x821B
	MinorVersion     = 0x821C

	InvalidEnum      = 0x0500
	InvalidValue     = 0x0501
	InvalidOperation = 0x0502
	OutOfMemory      = 0x0505
)

// Context is the stateful graphics API the renderer issues calls against.
// Every method maps onto one OpenGL entry point, except where noted.
// Implementations are not safe for concurrent use; all calls must come from the thread owning the GL context.
type Context interface {
	// GetError returns and clears the oldest recorded error flag, or NoError.
	GetError() uint32

	// GetInteger returns the integer value of a state query such as MaxVertexAttribs.
	GetInteger(pname uint32) int32

	// HasExtension reports whether the context advertises the named extension.
	// This wraps the indexed GL_EXTENSIONS query.
	HasExtension(name string) bool

	// CreateShader creates an empty shader object of the given stage. Returns 0 on failure.
	CreateShader(stage uint32) uint32

	// ShaderSource replaces the source of a shader object.
	ShaderSource(shader uint32, source string)

	// CompileShader compiles a shader object.
	CompileShader(shader uint32)

	// ShaderCompileStatus returns the COMPILE_STATUS of a shader together with its info log.
	ShaderCompileStatus(shader uint32) (bool, string)

	// DeleteShader flags a shader object for deletion.
	DeleteShader(shader uint32)

	// CreateProgram creates an empty program object. Returns 0 on failure.
	CreateProgram() uint32

	// BindAttribLocation associates a generic attribute index with a named attribute. Takes effect at link.
	BindAttribLocation(program, index uint32, name string)

	// AttachShader attaches a shader object to a program.
	AttachShader(program, shader uint32)

	// DetachShader detaches a shader object from a program.
	DetachShader(program, shader uint32)

	// LinkProgram links a program object.
	LinkProgram(program uint32)

	// ProgramLinkStatus returns the LINK_STATUS of a program together with its info log.
	ProgramLinkStatus(program uint32) (bool, string)

	// DeleteProgram deletes a program object.
	DeleteProgram(program uint32)

	// UseProgram installs a program as part of the current rendering state.
	UseProgram(program uint32)

	// GetAttribLocation returns the location of an active attribute, or -1.
	GetAttribLocation(program uint32, name string) int32

	// GetUniformLocation returns the location of an active uniform, or -1.
	GetUniformLocation(program uint32, name string) int32

	// GenVertexArray creates one vertex array object.
	GenVertexArray() uint32

	// BindVertexArray binds a vertex array object.
	BindVertexArray(vao uint32)

	// DeleteVertexArray deletes one vertex array object.
	DeleteVertexArray(vao uint32)

	// GenBuffer creates one buffer object.
	GenBuffer() uint32

	// BindBuffer binds a buffer object to a target.
	BindBuffer(target, buffer uint32)

	// BufferFloat32 uploads float data to the buffer bound to target.
	BufferFloat32(target uint32, data []float32, usage uint32)

	// BufferUint16 uploads unsigned short data to the buffer bound to target.
	BufferUint16(target uint32, data []uint16, usage uint32)

	// DeleteBuffer deletes one buffer object.
	DeleteBuffer(buffer uint32)

	// EnableVertexAttribArray enables a generic vertex attribute array.
	EnableVertexAttribArray(index uint32)

	// VertexAttribPointer describes the layout of the attribute at index within the bound ARRAY_BUFFER.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	// VertexAttribDivisor sets how many instances pass between updates of an attribute.
	VertexAttribDivisor(index, divisor uint32)

	// Uniform1f sets a float uniform on the current program.
	Uniform1f(location int32, v float32)

	// Uniform3f sets a vec3 uniform on the current program.
	Uniform3f(location int32, v [3]float32)

	// Uniform4f sets a vec4 uniform on the current program.
	Uniform4f(location int32, v [4]float32)

	// UniformMatrix4f sets a mat4 uniform on the current program, column-major.
	UniformMatrix4f(location int32, m [16]float32)

	// Enable enables a server-side capability.
	Enable(capability uint32)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn uint32)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// ClearDepth sets the depth used by Clear.
	ClearDepth(depth float64)

	// Clear clears the buffers selected by mask.
	Clear(mask uint32)

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// DrawArrays renders primitives from array data.
	DrawArrays(mode uint32, first, count int32)

	// DrawElements renders primitives from the bound element array. offset is in bytes.
	DrawElements(mode uint32, count int32, xtype uint32, offset int)

	// DrawArraysInstanced renders instanced primitives from array data.
	DrawArraysInstanced(mode uint32, first, count, instances int32)

	// DrawElementsInstanced renders instanced primitives from the bound element array. offset is in bytes.
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)
}

// ErrorName returns the GL name of an error code, for diagnostics.
func ErrorName(code uint32) string {
	switch code {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN_ERROR"
	}
}

// ModeName returns the GL name of a draw mode, for diagnostics.
func ModeName(mode uint32) string {
	switch mode {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	default:
		return "UNKNOWN_MODE"
	}
}
