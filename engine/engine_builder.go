package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the synthetic frame rate used by RunHeadless.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: synthetic frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.headlessStep = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window whose message loop drives Run. The window's GL context must be the
// one the App's renderer was built on.
//
// Parameters:
//   - w: a Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: the logger (nil keeps slog.Default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithParameterFile watches a file whose trimmed contents become the raw parameter string.
//
// Parameters:
//   - path: the file to watch ("" disables)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithParameterFile(path string) EngineBuilderOption {
	return func(e *engine) {
		e.parameterFile = path
	}
}

// WithParameters sets the raw parameter string of the first frame.
//
// Parameters:
//   - raw: the comma-separated parameter string
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithParameters(raw string) EngineBuilderOption {
	return func(e *engine) {
		e.parameters = raw
	}
}

// WithDevelop sets the development overrides of the first frame.
//
// Parameters:
//   - d: the overrides
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDevelop(d develop.Develop) EngineBuilderOption {
	return func(e *engine) {
		e.develop = d
	}
}
