package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/furl/engine/scene"
)

// AppBuilderOption is a functional option for configuring an App.
type AppBuilderOption func(*app)

// WithAppLogger sets the logger for the App and the scenes it builds.
//
// Parameters:
//   - logger: the logger (nil keeps slog.Default)
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithAppLogger(logger *slog.Logger) AppBuilderOption {
	return func(a *app) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSceneOptions passes options to every scene the App builds, including later switches.
// They are applied after the App's own logger option.
//
// Parameters:
//   - options: scene options
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) AppBuilderOption {
	return func(a *app) {
		a.sceneOptions = append(a.sceneOptions, options...)
	}
}
