package scene

import (
	"log/slog"
	"runtime"
	"time"
)

// config collects the options shared by every scene constructor.
type config struct {
	logger        *slog.Logger
	curveWorkers  int
	cameraBlend   time.Duration
	initialParams string
}

func defaultConfig() *config {
	return &config{
		logger:       slog.Default(),
		curveWorkers: max(runtime.NumCPU()-1, 1),
		cameraBlend:  350 * time.Millisecond,
	}
}

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(c *config)

// WithLogger sets the logger of the scene and its parameter vector.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCurveWorkers sets the number of workers that precompute per-instance curves.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCurveWorkers(n int) SceneBuilderOption {
	return func(c *config) {
		c.curveWorkers = max(n, 1)
	}
}

// WithCameraBlend sets how long a camera preset change takes to ease in. Zero switches at once.
//
// Parameters:
//   - d: the blend duration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraBlend(d time.Duration) SceneBuilderOption {
	return func(c *config) {
		c.cameraBlend = max(d, 0)
	}
}

// WithInitialParameters sets the raw parameter string applied right after setup.
//
// Parameters:
//   - raw: comma-separated float literals
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInitialParameters(raw string) SceneBuilderOption {
	return func(c *config) {
		c.initialParams = raw
	}
}
