package engine

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/scene"
)

// Pointer is the primary button state at the time of a frame, in surface coordinates.
type Pointer struct {
	X, Y int32
	Down bool
}

// FrameInput is everything the host hands the App for one frame.
type FrameInput struct {
	// TimestampMs is a monotonic timestamp in milliseconds.
	TimestampMs float64
	Pointer     Pointer
	Develop     develop.Develop
	// Parameters is the raw comma-separated parameter string.
	Parameters string
}

// App drives one scene on one renderer, a frame at a time.
// It is not safe for concurrent use; Tick must be called from the thread that owns the GL context.
type App interface {
	// Tick runs one frame: clock update, input bookkeeping, parameter update, clear and render.
	// A rejected parameter string is logged and the frame renders with the previous values.
	//
	// Parameters:
	//   - in: the frame input
	Tick(in FrameInput)

	// SwitchScene discards the current scene and builds another on the same renderer.
	// On failure the renderer holds no scene resources and the previous scene is gone.
	//
	// Parameters:
	//   - name: the scene to build
	//
	// Returns:
	//   - error: an error if the scene could not be built
	SwitchScene(name scene.Name) error

	// Scene returns the current scene.
	//
	// Returns:
	//   - scene.Scene: the scene, or nil after a failed switch
	Scene() scene.Scene

	// Renderer returns the renderer the App draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Clock returns the frame clock.
	//
	// Returns:
	//   - *clock.Clock: the clock
	Clock() *clock.Clock

	// Develop returns the development overrides seen on the last frame.
	//
	// Returns:
	//   - develop.Develop: the overrides
	Develop() develop.Develop

	// Frames returns the number of frames rendered.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64
}

type app struct {
	renderer     renderer.Renderer
	scene        scene.Scene
	clock        *clock.Clock
	develop      develop.Develop
	pointerDown  bool
	frames       uint64
	logger       *slog.Logger
	root         *slog.Logger
	sceneOptions []scene.SceneBuilderOption
}

var _ App = &app{}

// NewApp builds the named scene on r and returns an App ready to tick.
//
// Parameters:
//   - r: a renderer whose cold setup has completed
//   - name: the first scene
//   - options: functional options
//
// Returns:
//   - App: the app
//   - error: an error if the scene could not be built
func NewApp(r renderer.Renderer, name scene.Name, options ...AppBuilderOption) (App, error) {
	if r == nil {
		panic("engine: NewApp requires a non-nil Renderer")
	}
	a := &app{
		renderer: r,
		clock:    clock.New(),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(a)
	}
	a.root = a.logger
	a.logger = a.logger.With("component", "app")

	if err := a.SwitchScene(name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) Tick(in FrameInput) {
	a.clock.Update(in.TimestampMs)

	if in.Pointer.Down && !a.pointerDown {
		a.logger.Info("pointer down", "x", in.Pointer.X, "y", in.Pointer.Y, "clock", a.clock.Time())
	}
	a.pointerDown = in.Pointer.Down

	if in.Develop != a.develop {
		a.logger.Info("develop overrides changed", "develop", in.Develop.String())
		a.develop = in.Develop
	}

	if a.scene == nil {
		return
	}
	if err := a.scene.SetParameters(in.Parameters); err != nil {
		a.logger.Warn("parameters rejected", "error", err)
	}

	a.renderer.Warm().Clear()
	a.scene.Render(a.develop, a.renderer, a.clock)
	a.frames++
}

func (a *app) SwitchScene(name scene.Name) error {
	a.scene = nil
	s, err := scene.New(name, a.renderer, append([]scene.SceneBuilderOption{scene.WithLogger(a.root)}, a.sceneOptions...)...)
	if err != nil {
		a.renderer.Reset()
		return fmt.Errorf("engine: %w", err)
	}
	a.scene = s
	return nil
}

func (a *app) Scene() scene.Scene {
	return a.scene
}

func (a *app) Renderer() renderer.Renderer {
	return a.renderer
}

func (a *app) Clock() *clock.Clock {
	return a.clock
}

func (a *app) Develop() develop.Develop {
	return a.develop
}

func (a *app) Frames() uint64 {
	return a.frames
}
