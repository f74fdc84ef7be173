package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

// BindingKit holds the one-time-per-scene operations: compiling programs, uploading buffers and
// wiring attributes. GL errors are reported as returned errors when the policy checks the
// scene-init phase. Undeclared names and family mix-ups are programming errors and panic.
type BindingKit interface {
	// BeginScene creates and binds a fresh vertex array for the scene. Resources left by a
	// previous scene are released first.
	//
	// Returns:
	//   - error: an error if the vertex array could not be created
	BeginScene() error

	// AddProgram compiles a program of the given kind and registers it.
	//
	// Parameters:
	//   - kind: the program kind
	//
	// Returns:
	//   - ProgramIndex: the stable handle of the new program
	//   - error: a compile, link or location error from the shader package
	AddProgram(kind shader.Kind) (ProgramIndex, error)

	// UploadFloatBuffer copies values into a new static ARRAY_BUFFER and leaves it bound.
	//
	// Parameters:
	//   - values: the flat float data
	//
	// Returns:
	//   - Buffer: the buffer
	//   - error: ErrEmptyBuffer, ErrCreateBuffer or a GL error
	UploadFloatBuffer(values []float32) (Buffer, error)

	// UploadIndexBuffer copies values into a new static ELEMENT_ARRAY_BUFFER and leaves it bound
	// to the scene's vertex array. Sixteen-bit indices reach at most 65536 distinct vertices.
	//
	// Parameters:
	//   - values: the indices
	//
	// Returns:
	//   - Buffer: the buffer
	//   - error: ErrEmptyBuffer, ErrCreateBuffer or a GL error
	UploadIndexBuffer(values []uint16) (Buffer, error)

	// BindArrayBuffer makes b the current ARRAY_BUFFER.
	//
	// Parameters:
	//   - b: a buffer returned by UploadFloatBuffer
	BindArrayBuffer(b Buffer)

	// BindIndexBuffer makes b the current ELEMENT_ARRAY_BUFFER of the scene's vertex array.
	//
	// Parameters:
	//   - b: a buffer returned by UploadIndexBuffer
	BindIndexBuffer(b Buffer)

	// EnableAttribute enables the attribute slot that every listed program maps name to.
	// Panics when a program does not declare name or the programs disagree on its location.
	//
	// Parameters:
	//   - programs: the programs that will read the attribute
	//   - name: the attribute
	//
	// Returns:
	//   - error: a GL error
	EnableAttribute(programs []ProgramIndex, name signature.AttributeName) error

	// BindAttribute points the attribute at the current ARRAY_BUFFER as tightly packed floats.
	// buffer must be the buffer currently bound and components must match the registered kind.
	//
	// Parameters:
	//   - program: a program declaring the attribute
	//   - buffer: the currently bound buffer
	//   - name: the attribute
	//   - components: floats per vertex, 1 to 4
	//
	// Returns:
	//   - error: a GL error
	BindAttribute(program ProgramIndex, buffer Buffer, name signature.AttributeName, components int32) error

	// SetInstanceDivisor makes the attribute advance once every divisor instances.
	//
	// Parameters:
	//   - program: a program declaring the attribute
	//   - name: the attribute
	//   - divisor: instances per advance, 0 restores per-vertex reads
	//
	// Returns:
	//   - error: a GL error
	SetInstanceDivisor(program ProgramIndex, name signature.AttributeName, divisor uint32) error

	// UseProgram installs a program during setup.
	//
	// Parameters:
	//   - index: the program
	//
	// Returns:
	//   - error: a GL error
	UseProgram(index ProgramIndex) error

	// SetUniformScalar sets a float uniform on the active program during setup.
	//
	// Parameters:
	//   - index: the active program
	//   - name: the uniform
	//   - v: the value
	//
	// Returns:
	//   - error: a GL error
	SetUniformScalar(index ProgramIndex, name signature.UniformName, v float32) error

	// RequireFamily panics unless the program belongs to family.
	//
	// Parameters:
	//   - index: the program
	//   - family: the expected family
	RequireFamily(index ProgramIndex, family signature.Family)

	// RequireCompatible panics unless the two programs can read the same vertex buffers.
	//
	// Parameters:
	//   - a: the first program
	//   - b: the second program
	RequireCompatible(a, b ProgramIndex)
}

type bindingKit struct {
	r *renderer
}

var _ BindingKit = bindingKit{}

func (k bindingKit) check(op string) error {
	return k.r.checker.Check(glapi.PhaseSceneInit, op)
}

func (k bindingKit) BeginScene() error {
	r := k.r
	if r.vao != 0 || len(r.programs) > 0 || len(r.buffers) > 0 {
		r.Reset()
	}
	vao := r.ctx.GenVertexArray()
	if vao == 0 {
		return fmt.Errorf("%w: vertex array", ErrCreateBuffer)
	}
	r.ctx.BindVertexArray(vao)
	r.vao = vao
	return k.check("BindVertexArray")
}

func (k bindingKit) AddProgram(kind shader.Kind) (ProgramIndex, error) {
	r := k.r
	p, err := shader.New(r.ctx, kind, r.checker)
	if err != nil {
		return -1, err
	}
	r.programs = append(r.programs, p)
	index := ProgramIndex(len(r.programs) - 1)
	r.logger.Debug("program linked", "kind", kind.String(), "index", int(index), "handle", p.Handle())
	return index, nil
}

func (k bindingKit) UploadFloatBuffer(values []float32) (Buffer, error) {
	r := k.r
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: float buffer", ErrEmptyBuffer)
	}
	b := Buffer(r.ctx.GenBuffer())
	if b == 0 {
		return 0, fmt.Errorf("%w: float buffer", ErrCreateBuffer)
	}
	r.buffers = append(r.buffers, b)
	r.ctx.BindBuffer(glapi.ArrayBuffer, uint32(b))
	r.arrayBuffer = b
	r.ctx.BufferFloat32(glapi.ArrayBuffer, values, glapi.StaticDraw)
	return b, k.check("BufferData(ARRAY_BUFFER)")
}

func (k bindingKit) UploadIndexBuffer(values []uint16) (Buffer, error) {
	r := k.r
	k.requireScene("UploadIndexBuffer")
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: index buffer", ErrEmptyBuffer)
	}
	b := Buffer(r.ctx.GenBuffer())
	if b == 0 {
		return 0, fmt.Errorf("%w: index buffer", ErrCreateBuffer)
	}
	r.buffers = append(r.buffers, b)
	r.ctx.BindBuffer(glapi.ElementArrayBuffer, uint32(b))
	r.elementBuf = b
	r.elementCount = len(values)
	r.ctx.BufferUint16(glapi.ElementArrayBuffer, values, glapi.StaticDraw)
	return b, k.check("BufferData(ELEMENT_ARRAY_BUFFER)")
}

func (k bindingKit) BindArrayBuffer(b Buffer) {
	k.r.ctx.BindBuffer(glapi.ArrayBuffer, uint32(b))
	k.r.arrayBuffer = b
}

func (k bindingKit) BindIndexBuffer(b Buffer) {
	k.requireScene("BindIndexBuffer")
	k.r.ctx.BindBuffer(glapi.ElementArrayBuffer, uint32(b))
	k.r.elementBuf = b
}

func (k bindingKit) EnableAttribute(programs []ProgramIndex, name signature.AttributeName) error {
	r := k.r
	k.requireScene("EnableAttribute")
	if len(programs) == 0 {
		panic(fmt.Sprintf("renderer: EnableAttribute(%s) needs at least one program", name))
	}
	loc := r.Program(programs[0]).AttributeLocation(name)
	for _, idx := range programs[1:] {
		if other := r.Program(idx).AttributeLocation(name); other != loc {
			panic(fmt.Sprintf("renderer: %s is at %d in %s but %d in %s",
				name, loc, r.Program(programs[0]).Kind(), other, r.Program(idx).Kind()))
		}
	}
	r.ctx.EnableVertexAttribArray(loc)
	return k.check("EnableVertexAttribArray")
}

func (k bindingKit) BindAttribute(program ProgramIndex, buffer Buffer, name signature.AttributeName, components int32) error {
	r := k.r
	k.requireScene("BindAttribute")
	p := r.Program(program)
	if buffer == 0 || buffer != r.arrayBuffer {
		panic(fmt.Sprintf("renderer: BindAttribute(%s) with buffer %d while ARRAY_BUFFER is %d", name, buffer, r.arrayBuffer))
	}
	attr := p.Signature().Attribute(name)
	if components < 1 || components > 4 || components != attr.Kind.Components() {
		panic(fmt.Sprintf("renderer: %s is a %s, cannot bind it with %d components", name, attr.Kind.GLSL(), components))
	}
	r.ctx.VertexAttribPointer(attr.Location, components, glapi.Float, false, 0, 0)
	return k.check("VertexAttribPointer")
}

func (k bindingKit) SetInstanceDivisor(program ProgramIndex, name signature.AttributeName, divisor uint32) error {
	r := k.r
	k.requireScene("SetInstanceDivisor")
	loc := r.Program(program).AttributeLocation(name)
	r.ctx.VertexAttribDivisor(loc, divisor)
	return k.check("VertexAttribDivisor")
}

func (k bindingKit) UseProgram(index ProgramIndex) error {
	r := k.r
	r.Program(index).Use()
	r.current = index
	return k.check("UseProgram")
}

func (k bindingKit) SetUniformScalar(index ProgramIndex, name signature.UniformName, v float32) error {
	loc := k.r.uniformLocation(index, name, signature.UniformFloat)
	k.r.ctx.Uniform1f(loc, v)
	return k.check("Uniform1f")
}

func (k bindingKit) RequireFamily(index ProgramIndex, family signature.Family) {
	p := k.r.Program(index)
	if got := p.Kind().Family(); got != family {
		panic(fmt.Sprintf("renderer: program %d is %s of family %s, expected %s", index, p.Kind(), got, family))
	}
}

func (k bindingKit) RequireCompatible(a, b ProgramIndex) {
	fa := k.r.Program(a).Kind().Family()
	fb := k.r.Program(b).Kind().Family()
	if err := signature.Compatible(fa, fb); err != nil {
		panic(fmt.Sprintf("renderer: programs %d and %d cannot share vertex buffers: %v", a, b, err))
	}
}

func (k bindingKit) requireScene(op string) {
	if k.r.vao == 0 {
		panic(fmt.Sprintf("renderer: %s before BeginScene", op))
	}
}

// uniformLocation resolves a uniform for a setter. The program must be the active one, must
// declare name and the declared kind must match the setter.
func (r *renderer) uniformLocation(index ProgramIndex, name signature.UniformName, kind signature.UniformKind) int32 {
	p := r.Program(index)
	if index != r.current {
		panic(fmt.Sprintf("renderer: uniform %s set on %s (program %d) while program %d is active", name, p.Kind(), index, r.current))
	}
	sig := p.Signature()
	if !sig.HasUniform(name) {
		panic(fmt.Sprintf("renderer: %s does not use uniform %s", p.Kind(), name))
	}
	if declared := sig.Uniform(name).Kind; declared != kind {
		panic(fmt.Sprintf("renderer: %s uniform %s is a %s, not a %s", p.Kind(), name, declared, kind))
	}
	return p.UniformLocation(name)
}
