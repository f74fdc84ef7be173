package glapi

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Call is one recorded Context invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// AttribPointer is the recorded layout of one vertex attribute.
type AttribPointer struct {
	Buffer  uint32
	Size    int32
	Enabled bool
	Divisor uint32
}

type recShader struct {
	stage    uint32
	source   string
	compiled bool
	deleted  bool
}

type recProgram struct {
	attached []uint32
	bound    map[string]uint32
	linked   bool
	attribs  map[string]int32
	uniforms map[string]int32
	values   map[int32]any
}

var (
	attribDecl  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

// Recorder is a Context that performs no rendering. It emulates enough driver behavior for the
// renderer to run end to end: it assigns object names, honours BindAttribLocation and explicit
// layout locations at link time, and resolves uniform locations from the uniform declarations
// in the attached sources. Every call is recorded in order.
//
// The zero value is not usable; create one with NewRecorder.
type Recorder struct {
	// MaxAttribs is reported for MaxVertexAttribs.
	MaxAttribs int32
	// Major and Minor are reported for MajorVersion and MinorVersion.
	Major, Minor int32
	// Extensions lists the extension names HasExtension reports.
	Extensions []string

	calls    []Call
	next     uint32
	errors   []uint32
	shaders  map[uint32]*recShader
	programs map[uint32]*recProgram
	buffers  map[uint32]any
	vaos     map[uint32]bool

	failCompile map[uint32]string
	failLink    string
	inactive    map[string]bool

	current      uint32
	arrayBuffer  uint32
	elementBuf   uint32
	vao          uint32
	attribs      map[uint32]*AttribPointer
	capabilities map[uint32]bool
}

var _ Context = &Recorder{}

// NewRecorder creates a Recorder that reports a GL 3.3 context with 16 vertex attributes.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		MaxAttribs:   16,
		Major:        3,
		Minor:        3,
		shaders:      make(map[uint32]*recShader),
		programs:     make(map[uint32]*recProgram),
		buffers:      make(map[uint32]any),
		vaos:         make(map[uint32]bool),
		failCompile:  make(map[uint32]string),
		inactive:     make(map[string]bool),
		attribs:      make(map[uint32]*AttribPointer),
		capabilities: make(map[uint32]bool),
	}
}

// InjectError queues an error code for a later GetError.
func (r *Recorder) InjectError(code uint32) {
	r.errors = append(r.errors, code)
}

// FailCompile makes every later compile of the given stage fail with log.
func (r *Recorder) FailCompile(stage uint32, log string) {
	r.failCompile[stage] = log
}

// FailLink makes every later link fail with log.
func (r *Recorder) FailLink(log string) {
	r.failLink = log
}

// Deactivate makes the linker treat the named attributes or uniforms as unused, the way a driver
// strips declarations that do not contribute to the output.
func (r *Recorder) Deactivate(names ...string) {
	for _, n := range names {
		r.inactive[n] = true
	}
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// CallsNamed returns the recorded calls with the given name, in order.
func (r *Recorder) CallsNamed(name string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ClearCalls forgets recorded calls but keeps all emulated GL state.
func (r *Recorder) ClearCalls() {
	r.calls = nil
}

// CurrentProgram returns the program installed by the last UseProgram.
func (r *Recorder) CurrentProgram() uint32 {
	return r.current
}

// Attrib returns the recorded layout of the attribute at index in the bound vertex array.
func (r *Recorder) Attrib(index uint32) (AttribPointer, bool) {
	a, ok := r.attribs[index]
	if !ok {
		return AttribPointer{}, false
	}
	return *a, true
}

// BufferFloats returns the data uploaded to a float buffer.
func (r *Recorder) BufferFloats(buffer uint32) []float32 {
	v, _ := r.buffers[buffer].([]float32)
	return v
}

// BufferUint16s returns the data uploaded to an index buffer.
func (r *Recorder) BufferUint16s(buffer uint32) []uint16 {
	v, _ := r.buffers[buffer].([]uint16)
	return v
}

// UniformValue returns the last value set on a program's uniform, looked up by name.
func (r *Recorder) UniformValue(program uint32, name string) (any, bool) {
	p, ok := r.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Enabled reports whether a capability was enabled.
func (r *Recorder) Enabled(capability uint32) bool {
	return r.capabilities[capability]
}

// LiveObjects returns the number of programs, buffers and vertex arrays not yet deleted.
func (r *Recorder) LiveObjects() (programs, buffers, vaos int) {
	return len(r.programs), len(r.buffers), len(r.vaos)
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) GetError() uint32 {
	if len(r.errors) == 0 {
		return NoError
	}
	code := r.errors[0]
	r.errors = r.errors[1:]
	return code
}

func (r *Recorder) GetInteger(pname uint32) int32 {
	r.record("GetInteger", pname)
	switch pname {
	case MaxVertexAttribs:
		return r.MaxAttribs
	case MajorVersion:
		return r.Major
	case MinorVersion:
		return r.Minor
	default:
		r.InjectError(InvalidEnum)
		return 0
	}
}

func (r *Recorder) HasExtension(name string) bool {
	for _, e := range r.Extensions {
		if e == name {
			return true
		}
	}
	return false
}

func (r *Recorder) CreateShader(stage uint32) uint32 {
	id := r.gen()
	r.shaders[id] = &recShader{stage: stage}
	r.record("CreateShader", stage)
	return id
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader)
	if s, ok := r.shaders[shader]; ok {
		s.source = source
		return
	}
	r.InjectError(InvalidValue)
}

func (r *Recorder) CompileShader(shader uint32) {
	r.record("CompileShader", shader)
	s, ok := r.shaders[shader]
	if !ok {
		r.InjectError(InvalidValue)
		return
	}
	_, fail := r.failCompile[s.stage]
	s.compiled = !fail
}

func (r *Recorder) ShaderCompileStatus(shader uint32) (bool, string) {
	s, ok := r.shaders[shader]
	if !ok {
		return false, "no such shader"
	}
	if !s.compiled {
		return false, r.failCompile[s.stage]
	}
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader", shader)
	if s, ok := r.shaders[shader]; ok {
		s.deleted = true
	}
}

func (r *Recorder) CreateProgram() uint32 {
	id := r.gen()
	r.programs[id] = &recProgram{
		bound:    make(map[string]uint32),
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
		values:   make(map[int32]any),
	}
	r.record("CreateProgram")
	return id
}

func (r *Recorder) BindAttribLocation(program, index uint32, name string) {
	r.record("BindAttribLocation", program, index, name)
	p, ok := r.programs[program]
	if !ok || index >= uint32(r.MaxAttribs) {
		r.InjectError(InvalidValue)
		return
	}
	p.bound[name] = index
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader", program, shader)
	p, ok := r.programs[program]
	if !ok {
		r.InjectError(InvalidValue)
		return
	}
	p.attached = append(p.attached, shader)
}

func (r *Recorder) DetachShader(program, shader uint32) {
	r.record("DetachShader", program, shader)
	p, ok := r.programs[program]
	if !ok {
		r.InjectError(InvalidValue)
		return
	}
	for i, s := range p.attached {
		if s == shader {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
	r.InjectError(InvalidOperation)
}

func (r *Recorder) LinkProgram(program uint32) {
	r.record("LinkProgram", program)
	p, ok := r.programs[program]
	if !ok {
		r.InjectError(InvalidValue)
		return
	}
	p.linked = false
	if r.failLink != "" {
		return
	}
	p.attribs = make(map[string]int32)
	p.uniforms = make(map[string]int32)

	used := make(map[int32]bool)
	var unplaced []string
	var nextUniform int32
	for _, id := range p.attached {
		s := r.shaders[id]
		if s == nil || !s.compiled {
			return
		}
		if s.stage == VertexShader {
			for _, m := range attribDecl.FindAllStringSubmatch(s.source, -1) {
				name := m[2]
				if r.inactive[name] {
					continue
				}
				switch {
				case m[1] != "":
					loc, _ := strconv.Atoi(m[1])
					p.attribs[name] = int32(loc)
				default:
					if loc, ok := p.bound[name]; ok {
						p.attribs[name] = int32(loc)
					} else {
						unplaced = append(unplaced, name)
						continue
					}
				}
				used[p.attribs[name]] = true
			}
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			name := m[1]
			if r.inactive[name] {
				continue
			}
			if _, seen := p.uniforms[name]; !seen {
				p.uniforms[name] = nextUniform
				nextUniform++
			}
		}
	}
	// Drivers place unbound attributes wherever they like. Hand them out from the top down
	// so a missing BindAttribLocation shows up as a mismatch instead of a lucky match.
	sort.Strings(unplaced)
	loc := r.MaxAttribs - 1
	for _, name := range unplaced {
		for used[loc] && loc > 0 {
			loc--
		}
		p.attribs[name] = loc
		used[loc] = true
	}
	p.linked = true
}

func (r *Recorder) ProgramLinkStatus(program uint32) (bool, string) {
	p, ok := r.programs[program]
	if !ok {
		return false, "no such program"
	}
	if !p.linked {
		if r.failLink != "" {
			return false, r.failLink
		}
		return false, "attached shader not compiled"
	}
	return true, ""
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram", program)
	delete(r.programs, program)
	if r.current == program {
		r.current = 0
	}
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	if program != 0 {
		if p, ok := r.programs[program]; !ok || !p.linked {
			r.InjectError(InvalidOperation)
			return
		}
	}
	r.current = program
}

func (r *Recorder) GetAttribLocation(program uint32, name string) int32 {
	p, ok := r.programs[program]
	if !ok || !p.linked {
		r.InjectError(InvalidOperation)
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	p, ok := r.programs[program]
	if !ok || !p.linked {
		r.InjectError(InvalidOperation)
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.gen()
	r.vaos[id] = true
	r.record("GenVertexArray")
	return id
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	if vao != 0 && !r.vaos[vao] {
		r.InjectError(InvalidOperation)
		return
	}
	if vao != r.vao {
		r.attribs = make(map[uint32]*AttribPointer)
	}
	r.vao = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record("DeleteVertexArray", vao)
	delete(r.vaos, vao)
	if r.vao == vao {
		r.vao = 0
	}
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.gen()
	r.buffers[id] = nil
	r.record("GenBuffer")
	return id
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", target, buffer)
	if _, ok := r.buffers[buffer]; buffer != 0 && !ok {
		r.InjectError(InvalidValue)
		return
	}
	switch target {
	case ArrayBuffer:
		r.arrayBuffer = buffer
	case ElementArrayBuffer:
		r.elementBuf = buffer
	default:
		r.InjectError(InvalidEnum)
	}
}

func (r *Recorder) boundTo(target uint32) uint32 {
	if target == ElementArrayBuffer {
		return r.elementBuf
	}
	return r.arrayBuffer
}

func (r *Recorder) BufferFloat32(target uint32, data []float32, usage uint32) {
	r.record("BufferData", target, len(data)*4, usage)
	b := r.boundTo(target)
	if b == 0 {
		r.InjectError(InvalidOperation)
		return
	}
	r.buffers[b] = append([]float32(nil), data...)
}

func (r *Recorder) BufferUint16(target uint32, data []uint16, usage uint32) {
	r.record("BufferData", target, len(data)*2, usage)
	b := r.boundTo(target)
	if b == 0 {
		r.InjectError(InvalidOperation)
		return
	}
	r.buffers[b] = append([]uint16(nil), data...)
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record("DeleteBuffer", buffer)
	delete(r.buffers, buffer)
}

func (r *Recorder) attrib(index uint32) *AttribPointer {
	a, ok := r.attribs[index]
	if !ok {
		a = &AttribPointer{}
		r.attribs[index] = a
	}
	return a
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
	if r.vao == 0 || index >= uint32(r.MaxAttribs) {
		r.InjectError(InvalidOperation)
		return
	}
	r.attrib(index).Enabled = true
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	if r.vao == 0 || r.arrayBuffer == 0 {
		r.InjectError(InvalidOperation)
		return
	}
	if index >= uint32(r.MaxAttribs) || size < 1 || size > 4 {
		r.InjectError(InvalidValue)
		return
	}
	a := r.attrib(index)
	a.Buffer = r.arrayBuffer
	a.Size = size
}

func (r *Recorder) VertexAttribDivisor(index, divisor uint32) {
	r.record("VertexAttribDivisor", index, divisor)
	if index >= uint32(r.MaxAttribs) {
		r.InjectError(InvalidValue)
		return
	}
	r.attrib(index).Divisor = divisor
}

func (r *Recorder) setUniform(name string, location int32, v any) {
	r.record(name, location, v)
	if r.current == 0 {
		r.InjectError(InvalidOperation)
		return
	}
	if location < 0 {
		return
	}
	r.programs[r.current].values[location] = v
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.setUniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform3f(location int32, v [3]float32) {
	r.setUniform("Uniform3f", location, v)
}

func (r *Recorder) Uniform4f(location int32, v [4]float32) {
	r.setUniform("Uniform4f", location, v)
}

func (r *Recorder) UniformMatrix4f(location int32, m [16]float32) {
	r.setUniform("UniformMatrix4f", location, m)
}

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable", capability)
	r.capabilities[capability] = true
}

func (r *Recorder) DepthFunc(fn uint32) {
	r.record("DepthFunc", fn)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearDepth(depth float64) {
	r.record("ClearDepth", depth)
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear", mask)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) checkDraw() {
	if r.current == 0 || r.vao == 0 {
		r.InjectError(InvalidOperation)
	}
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
	r.checkDraw()
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements", mode, count, xtype, offset)
	r.checkDraw()
	if r.elementBuf == 0 {
		r.InjectError(InvalidOperation)
	}
}

func (r *Recorder) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
	r.checkDraw()
}

func (r *Recorder) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	r.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
	r.checkDraw()
	if r.elementBuf == 0 {
		r.InjectError(InvalidOperation)
	}
}
