package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/furl/common"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/params"
	"github.com/Carmen-Shannon/furl/engine/profiler"
	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/Carmen-Shannon/furl/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine: no window")
	// ErrFramePanic wraps a panic recovered while running a frame.
	ErrFramePanic = errors.New("engine: frame panicked")
)

// engine implements the Engine interface.
// Every frame runs on the goroutine that owns the GL context.
type engine struct {
	paramsChannel chan string // Latest raw parameter string from outside the frame loop

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	app    App
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	headlessStep     time.Duration // synthetic frame period for RunHeadless
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	parameterFile    string

	develop    develop.Develop
	parameters string
	pointer    Pointer
	held       map[uint32]bool // keys down since their last release
	started    time.Time
	err        error
}

// Engine runs an App inside a window, or headless, and maps input to the App.
type Engine interface {
	// App returns the driven App.
	//
	// Returns:
	//   - App: the app
	App() App

	// Window returns the underlying window, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// HandleKey applies the action bound to a key: Space pauses, C G L W cycle the camera,
	// guides, level of detail and wireframe overrides, 1 to 8 load a scene preset and Escape quits.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	HandleKey(keyCode uint32)

	// SetParameters replaces the raw parameter string used from the next frame on.
	// Safe to call from any goroutine; only the latest value is kept.
	//
	// Parameters:
	//   - raw: the comma-separated parameter string
	SetParameters(raw string)

	// SetDevelop replaces the development overrides used from the next frame on.
	//
	// Parameters:
	//   - d: the overrides
	SetDevelop(d develop.Develop)

	// Develop returns the development overrides the next frame will use.
	//
	// Returns:
	//   - develop.Develop: the overrides
	Develop() develop.Develop

	// Run drives frames from the window message loop until the window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow, a parameter file error, or a recovered frame panic
	Run() error

	// RunHeadless drives frames from a synthetic clock at the configured tick rate.
	//
	// Parameters:
	//   - frames: the number of frames to run
	//
	// Returns:
	//   - error: a parameter file error or a recovered frame panic
	RunHeadless(frames int) error

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine around app with the provided options.
//
// Parameters:
//   - app: the App to drive
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(app App, options ...EngineBuilderOption) Engine {
	if app == nil {
		panic("engine: NewEngine requires a non-nil App")
	}
	e := &engine{
		paramsChannel:    make(chan string, 1),
		quitChannel:      make(chan struct{}),
		app:              app,
		logger:           slog.Default(),
		profilingEnabled: false,
		headlessStep:     time.Second / 60,
		held:             make(map[uint32]bool),
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	e.logger = e.logger.With("component", "engine")
	if s := app.Scene(); e.parameters == "" && s != nil && s.Parameters() != nil {
		e.parameters = s.Parameters().Raw()
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.app.Renderer().Resize(width, height)
		})
		e.window.SetKeyDownCallback(e.keyDown)
		e.window.SetKeyUpCallback(e.keyUp)
		e.window.SetPointerCallback(func(x, y int32, down bool) {
			e.pointer = Pointer{X: x, Y: y, Down: down}
		})
		e.window.SetMouseMoveCallback(func(x, y int32) {
			e.pointer.X, e.pointer.Y = x, y
		})
	}

	return e
}

func (e *engine) App() App {
	return e.app
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	stop, err := e.watch()
	if err != nil {
		return err
	}
	defer stop()

	e.started = time.Now()
	e.window.SetUpdateCallback(func() {
		if e.quitting() {
			e.window.RequestClose()
			return
		}
		frameStart := time.Now()
		e.frame(float64(frameStart.Sub(e.started)) / float64(time.Millisecond))
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	return e.err
}

func (e *engine) RunHeadless(frames int) error {
	stop, err := e.watch()
	if err != nil {
		return err
	}
	defer stop()

	stepMs := float64(e.headlessStep) / float64(time.Millisecond)
	for i := 0; i < frames && !e.quitting(); i++ {
		e.frame(float64(i) * stepMs)
	}
	return e.err
}

// frame runs one App tick. A panic ends the run: it is logged, kept as the run error and quits.
func (e *engine) frame(ms float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame recovered from panic", "panic", r, "frame", e.app.Frames())
			e.err = fmt.Errorf("%w: %v", ErrFramePanic, r)
			e.signalQuit()
		}
	}()

	select {
	case raw := <-e.paramsChannel:
		e.parameters = raw
	default:
	}

	e.app.Tick(FrameInput{
		TimestampMs: ms,
		Pointer:     e.pointer,
		Develop:     e.develop,
		Parameters:  e.parameters,
	})

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetParameters(raw string) {
	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.paramsChannel <- raw:
	default:
		select {
		case <-e.paramsChannel:
		default:
		}
		select {
		case e.paramsChannel <- raw:
		default:
		}
	}
}

func (e *engine) SetDevelop(d develop.Develop) {
	e.develop = d
}

func (e *engine) Develop() develop.Develop {
	return e.develop
}

// keyDown handles the first key-down of a press. Auto-repeat events are dropped until the key
// is released.
func (e *engine) keyDown(keyCode uint32) {
	if e.held[keyCode] {
		return
	}
	e.held[keyCode] = true
	e.HandleKey(keyCode)
}

func (e *engine) keyUp(keyCode uint32) {
	delete(e.held, keyCode)
}

func (e *engine) HandleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyEsc:
		e.logger.Info("quit requested")
		e.Quit()
	case common.KeySpace:
		paused := e.app.Clock().TogglePause()
		e.logger.Info("pause toggled", "paused", paused)
	case common.KeyC:
		e.develop.Camera = e.develop.Camera.Next()
	case common.KeyG:
		e.develop.Guides = e.develop.Guides.Next()
	case common.KeyL:
		e.develop.Lod = e.develop.Lod.Next()
	case common.KeyW:
		e.develop.Wireframe = e.develop.Wireframe.Next()
	default:
		if keyCode >= common.Key1 && keyCode <= common.Key8 {
			e.applyPreset(int(keyCode - common.Key1))
		}
	}
}

// applyPreset makes a scene preset the raw parameter string of the next frame.
func (e *engine) applyPreset(index int) {
	s := e.app.Scene()
	if s == nil {
		return
	}
	values, err := s.PresetValues(index)
	if err != nil {
		e.logger.Warn("preset unavailable", "error", err)
		return
	}
	e.SetParameters(params.Format(values))
	e.logger.Info("preset selected", "index", index, "title", scene.PresetTitle(s, index))
}
