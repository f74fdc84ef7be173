package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
)

// Stage identifies one programmable stage of a program.
type Stage int

const (
	// StageVertex is the vertex stage. It is the only stage that may declare attributes.
	StageVertex Stage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

func (s Stage) glEnum() uint32 {
	if s == StageFragment {
		return glapi.FragmentShader
	}
	return glapi.VertexShader
}

// program is the implementation of the Program interface.
type program struct {
	ctx    glapi.Context
	kind   Kind
	sig    signature.ShaderSignature
	handle uint32

	// uniforms caches resolved locations, indexed by UniformName. declared marks the entries
	// that belong to this program's signature.
	uniforms [signature.UniformCount]int32
	declared [signature.UniformCount]bool

	vertexSource   string
	fragmentSource string
}

// Program is one linked vertex and fragment pair built against a signature family.
type Program interface {
	// Kind returns the program kind this program was built from.
	//
	// Returns:
	//   - Kind: the kind
	Kind() Kind

	// Signature returns the signature the program was linked against.
	//
	// Returns:
	//   - signature.ShaderSignature: the signature
	Signature() signature.ShaderSignature

	// Handle returns the GL program object name.
	//
	// Returns:
	//   - uint32: the program object
	Handle() uint32

	// Use installs the program on the context. Calling it repeatedly is harmless.
	Use()

	// AttributeLocation returns the registry location of an attribute.
	// Panics when the program's signature does not declare name.
	//
	// Parameters:
	//   - name: the attribute
	//
	// Returns:
	//   - uint32: the attribute location
	AttributeLocation(name signature.AttributeName) uint32

	// UniformLocation returns the cached location of a uniform.
	// Panics when the program's signature does not declare name.
	//
	// Parameters:
	//   - name: the uniform
	//
	// Returns:
	//   - int32: the uniform location
	UniformLocation(name signature.UniformName) int32

	// Source returns the expanded GLSL source of a stage, as handed to the driver.
	//
	// Parameters:
	//   - stage: the stage
	//
	// Returns:
	//   - string: the expanded source
	Source(stage Stage) string

	// Delete releases the program object. The program must not be used afterwards.
	Delete()
}

var _ Program = &program{}

// New compiles and links a program of the given kind.
//
// The vertex and fragment sources are pre-processed against the kind's signature and confirmed
// against the registry before either reaches the driver. Each stage is compiled on its own.
// Every attribute location is bound before linking, the intermediate shader objects are
// detached and deleted after linking, the driver's attribute locations are compared with the
// registry and every declared uniform location is resolved and cached.
//
// Parameters:
//   - ctx: the context to compile on
//   - kind: the program kind
//   - checker: reports GL errors raised while building; calls are checked as PhaseSceneInit
//
// Returns:
//   - Program: the linked program
//   - error: an error wrapping one of the package sentinels or a *glapi.Error
func New(ctx glapi.Context, kind Kind, checker glapi.Checker) (Program, error) {
	def := kindDefinition(kind)
	sig := signature.For(def.family)

	vertexSrc, err := NewPreProcessor(sig, StageVertex).Process(def.vertex)
	if err != nil {
		return nil, fmt.Errorf("shader: %s vertex source: %w", kind, err)
	}
	fragmentSrc, err := NewPreProcessor(sig, StageFragment).Process(def.fragment)
	if err != nil {
		return nil, fmt.Errorf("shader: %s fragment source: %w", kind, err)
	}
	if err := confirmDeclarations(sig, vertexSrc, fragmentSrc); err != nil {
		return nil, fmt.Errorf("shader: %s: %w", kind, err)
	}

	vs, err := compileStage(ctx, StageVertex, vertexSrc, checker)
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", kind, err)
	}
	fs, err := compileStage(ctx, StageFragment, fragmentSrc, checker)
	if err != nil {
		ctx.DeleteShader(vs)
		return nil, fmt.Errorf("shader: %s: %w", kind, err)
	}

	handle := ctx.CreateProgram()
	if handle == 0 {
		ctx.DeleteShader(vs)
		ctx.DeleteShader(fs)
		return nil, fmt.Errorf("%w: %s", ErrCreateProgram, kind)
	}

	for _, a := range sig.Attributes() {
		ctx.BindAttribLocation(handle, a.Location, a.Wire)
	}
	ctx.AttachShader(handle, vs)
	ctx.AttachShader(handle, fs)
	ctx.LinkProgram(handle)
	ok, log := ctx.ProgramLinkStatus(handle)

	ctx.DetachShader(handle, vs)
	ctx.DetachShader(handle, fs)
	ctx.DeleteShader(vs)
	ctx.DeleteShader(fs)

	if !ok {
		ctx.DeleteProgram(handle)
		return nil, fmt.Errorf("%w: %s: %s", ErrLinkProgram, kind, log)
	}
	if err := checker.Check(glapi.PhaseSceneInit, "LinkProgram"); err != nil {
		ctx.DeleteProgram(handle)
		return nil, fmt.Errorf("shader: %s: %w", kind, err)
	}

	p := &program{
		ctx:            ctx,
		kind:           kind,
		sig:            sig,
		handle:         handle,
		vertexSource:   vertexSrc,
		fragmentSource: fragmentSrc,
	}
	if err := p.confirmLocations(); err != nil {
		ctx.DeleteProgram(handle)
		return nil, err
	}
	if err := p.locateUniforms(); err != nil {
		ctx.DeleteProgram(handle)
		return nil, err
	}
	return p, nil
}

func (p *program) Kind() Kind {
	return p.kind
}

func (p *program) Signature() signature.ShaderSignature {
	return p.sig
}

func (p *program) Handle() uint32 {
	return p.handle
}

func (p *program) Use() {
	p.ctx.UseProgram(p.handle)
}

func (p *program) AttributeLocation(name signature.AttributeName) uint32 {
	if !p.sig.HasAttribute(name) {
		panic(fmt.Sprintf("shader: %s does not use attribute %s", p.kind, name))
	}
	return p.sig.Attribute(name).Location
}

func (p *program) UniformLocation(name signature.UniformName) int32 {
	if name < 0 || name >= signature.UniformCount || !p.declared[name] {
		panic(fmt.Sprintf("shader: %s does not use uniform %s", p.kind, name))
	}
	return p.uniforms[name]
}

func (p *program) Source(stage Stage) string {
	if stage == StageFragment {
		return p.fragmentSource
	}
	return p.vertexSource
}

func (p *program) Delete() {
	if p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
}

// confirmLocations compares the driver's view of every active attribute with the registry.
// Attributes the driver stripped report -1 and are skipped.
func (p *program) confirmLocations() error {
	for _, a := range p.sig.Attributes() {
		got := p.ctx.GetAttribLocation(p.handle, a.Wire)
		if got < 0 {
			continue
		}
		if uint32(got) != a.Location {
			return fmt.Errorf("%w: %s attribute %q linked at %d, registry says %d", ErrAttributeMismatch, p.kind, a.Wire, got, a.Location)
		}
	}
	return nil
}

func (p *program) locateUniforms() error {
	for i := range p.uniforms {
		p.uniforms[i] = -1
	}
	for _, u := range p.sig.Uniforms() {
		loc := p.ctx.GetUniformLocation(p.handle, u.Wire)
		if loc < 0 {
			return fmt.Errorf("%w: %s uniform %q", ErrUniformNotFound, p.kind, u.Wire)
		}
		p.uniforms[u.Name] = loc
		p.declared[u.Name] = true
	}
	return nil
}

// compileStage creates and compiles one shader object. The object is deleted on failure.
func compileStage(ctx glapi.Context, stage Stage, source string, checker glapi.Checker) (uint32, error) {
	sh := ctx.CreateShader(stage.glEnum())
	if sh == 0 {
		return 0, fmt.Errorf("%w: %s stage", ErrCreateShader, stage)
	}
	ctx.ShaderSource(sh, source)
	ctx.CompileShader(sh)
	if ok, log := ctx.ShaderCompileStatus(sh); !ok {
		ctx.DeleteShader(sh)
		if stage == StageFragment {
			return 0, fmt.Errorf("%w: %s", ErrCompileFragment, log)
		}
		return 0, fmt.Errorf("%w: %s", ErrCompileVertex, log)
	}
	if err := checker.Check(glapi.PhaseSceneInit, "CompileShader"); err != nil {
		ctx.DeleteShader(sh)
		return 0, err
	}
	return sh, nil
}
