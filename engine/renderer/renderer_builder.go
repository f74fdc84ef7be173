package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via New.
type RendererBuilderOption func(*renderer)

// WithExtent sets the initial drawing surface size used for the viewport and aspect ratio.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the extent option to a renderer
func WithExtent(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithPolicy sets which pipeline phases check the GL error flag. The default is
// glapi.PolicySetupAndSceneInit.
//
// Parameters:
//   - policy: the diagnostic policy
//
// Returns:
//   - RendererBuilderOption: a function that applies the policy option to a renderer
func WithPolicy(policy glapi.Policy) RendererBuilderOption {
	return func(r *renderer) {
		r.policy = policy
	}
}

// WithLogger sets the logger. A "component" attribute is added to it.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
