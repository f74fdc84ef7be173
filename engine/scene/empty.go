package scene

import (
	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer"
)

// empty owns a vertex array and nothing else. Frames are cleared and left blank.
type empty struct {
	base
}

func newEmpty(r renderer.Renderer, cfg *config) (*empty, error) {
	if err := r.Cool().BeginScene(); err != nil {
		return nil, err
	}
	return &empty{base: base{name: NameEmpty, logger: cfg.logger, catalog: emptyCatalog}}, nil
}

func (s *empty) Render(develop.Develop, renderer.Renderer, *clock.Clock) {}
