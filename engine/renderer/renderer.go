package renderer

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/shader"
)

// MinVertexAttribs is the number of vertex attribute slots the engine needs.
const MinVertexAttribs = 16

// instancedArraysExtension provides instancing on contexts older than 3.3.
const instancedArraysExtension = "GL_ARB_instanced_arrays"

// ProgramIndex is the stable handle of a program registered with AddProgram.
type ProgramIndex int

// Buffer is a GL buffer object name.
type Buffer uint32

// renderer is the implementation of the Renderer interface.
type renderer struct {
	ctx     glapi.Context
	checker glapi.Checker
	logger  *slog.Logger

	width, height int
	policy        glapi.Policy
	maxAttribs    int32

	programs []shader.Program
	buffers  []Buffer
	vao      uint32

	// Mirrors of the context's implicit binding state.
	current      ProgramIndex
	arrayBuffer  Buffer
	elementBuf   Buffer
	elementCount int
}

// Renderer owns the graphics context, the diagnostic policy and the programs and buffers of the
// current scene. It is not safe for concurrent use; every call must come from the thread that
// owns the GL context.
type Renderer interface {
	// Context returns the graphics context the renderer drives.
	//
	// Returns:
	//   - glapi.Context: the context
	Context() glapi.Context

	// Policy returns the diagnostic policy in force.
	//
	// Returns:
	//   - glapi.Policy: the policy
	Policy() glapi.Policy

	// Logger returns the renderer's logger.
	//
	// Returns:
	//   - *slog.Logger: the logger
	Logger() *slog.Logger

	// AspectRatio returns width divided by height of the drawing surface.
	//
	// Returns:
	//   - float32: the aspect ratio
	AspectRatio() float32

	// Extent returns the drawing surface size in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Extent() (int, int)

	// Resize records a new surface size and updates the viewport.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// MaxVertexAttribs returns the attribute slot count reported by the context.
	//
	// Returns:
	//   - int32: the number of slots
	MaxVertexAttribs() int32

	// Program returns a registered program. Panics for an unknown index.
	//
	// Parameters:
	//   - index: the handle returned by AddProgram
	//
	// Returns:
	//   - shader.Program: the program
	Program(index ProgramIndex) shader.Program

	// ProgramCount returns the number of registered programs.
	//
	// Returns:
	//   - int: the count
	ProgramCount() int

	// Cool returns the binding kit used once per scene.
	//
	// Returns:
	//   - BindingKit: the binding kit
	Cool() BindingKit

	// Warm returns the frame kit used every frame.
	//
	// Returns:
	//   - FrameKit: the frame kit
	Warm() FrameKit

	// Reset deletes every program, buffer and vertex array owned by the current scene.
	Reset()
}

var _ Renderer = &renderer{}

// New performs cold setup on ctx and returns a Renderer.
//
// Setup queries the attribute slot count and instancing support, enables depth testing and
// program point sizes, sets the clear values and the viewport.
//
// Parameters:
//   - ctx: a ready-to-use graphics context
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrTooFewAttributes, ErrNoInstancing or a *glapi.Error raised during setup
func New(ctx glapi.Context, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		ctx:     ctx,
		width:   800,
		height:  600,
		policy:  glapi.PolicySetupAndSceneInit,
		logger:  slog.Default(),
		current: -1,
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With("component", "renderer")
	r.checker = glapi.NewChecker(ctx, r.policy)

	r.maxAttribs = ctx.GetInteger(glapi.MaxVertexAttribs)
	if r.maxAttribs < MinVertexAttribs {
		return nil, fmt.Errorf("%w: context has %d, need %d", ErrTooFewAttributes, r.maxAttribs, MinVertexAttribs)
	}
	major, minor := ctx.GetInteger(glapi.MajorVersion), ctx.GetInteger(glapi.MinorVersion)
	if major < 3 || (major == 3 && minor < 3) {
		if !ctx.HasExtension(instancedArraysExtension) {
			return nil, fmt.Errorf("%w: context is %d.%d without %s", ErrNoInstancing, major, minor, instancedArraysExtension)
		}
	}

	ctx.Enable(glapi.DepthTest)
	ctx.DepthFunc(glapi.Lequal)
	ctx.Enable(glapi.ProgramPointSize)
	ctx.ClearColor(0.1, 0.05, 0.15, 1.0)
	ctx.ClearDepth(1.0)
	ctx.Viewport(0, 0, int32(r.width), int32(r.height))
	if err := r.checker.Check(glapi.PhaseSetup, "setup"); err != nil {
		return nil, err
	}

	r.logger.Info("renderer ready",
		"gl", fmt.Sprintf("%d.%d", major, minor),
		"max_vertex_attribs", r.maxAttribs,
		"policy", r.policy.String(),
		"width", r.width,
		"height", r.height)
	return r, nil
}

func (r *renderer) Context() glapi.Context {
	return r.ctx
}

func (r *renderer) Policy() glapi.Policy {
	return r.policy
}

func (r *renderer) Logger() *slog.Logger {
	return r.logger
}

func (r *renderer) AspectRatio() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *renderer) Extent() (int, int) {
	return r.width, r.height
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.ctx.Viewport(0, 0, int32(width), int32(height))
}

func (r *renderer) MaxVertexAttribs() int32 {
	return r.maxAttribs
}

func (r *renderer) Program(index ProgramIndex) shader.Program {
	if index < 0 || int(index) >= len(r.programs) {
		panic(fmt.Sprintf("renderer: no program at index %d (have %d)", index, len(r.programs)))
	}
	return r.programs[index]
}

func (r *renderer) ProgramCount() int {
	return len(r.programs)
}

func (r *renderer) Cool() BindingKit {
	return bindingKit{r}
}

func (r *renderer) Warm() FrameKit {
	return frameKit{r}
}

func (r *renderer) Reset() {
	r.ctx.UseProgram(0)
	for _, p := range r.programs {
		p.Delete()
	}
	for _, b := range r.buffers {
		r.ctx.DeleteBuffer(uint32(b))
	}
	if r.vao != 0 {
		r.ctx.BindVertexArray(0)
		r.ctx.DeleteVertexArray(r.vao)
	}
	released := len(r.programs) + len(r.buffers)
	r.programs = nil
	r.buffers = nil
	r.vao = 0
	r.current = -1
	r.arrayBuffer = 0
	r.elementBuf = 0
	r.elementCount = 0
	r.logger.Debug("scene resources released", "objects", released)
}
