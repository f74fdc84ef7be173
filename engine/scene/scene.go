package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/furl/engine/clock"
	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/params"
	"github.com/Carmen-Shannon/furl/engine/renderer"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrCatalog      = errors.New("scene: invalid fieldsets or presets")
	ErrNoPreset     = errors.New("scene: no such preset")
)

// Name identifies one of the closed set of scene configurations.
type Name int

const (
	NameBlueRedBoxes Name = iota
	NameRainbowCactus
	NameAloneFurl
	NameEmpty
	nameCount
)

var names = [nameCount]string{
	NameBlueRedBoxes:  "blue-red-boxes",
	NameRainbowCactus: "rainbow-cactus",
	NameAloneFurl:     "alone-furl",
	NameEmpty:         "empty",
}

func (n Name) String() string {
	if n >= 0 && n < nameCount {
		return names[n]
	}
	return fmt.Sprintf("Name(%d)", int(n))
}

// Names returns every scene name in declaration order.
func Names() []Name {
	out := make([]Name, nameCount)
	for i := range out {
		out[i] = Name(i)
	}
	return out
}

// ParseName parses a kebab-case scene name.
func ParseName(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownScene, s, strings.Join(names[:], ", "))
}

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	v, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Scene is one fully set up configuration of programs, buffers and attribute wiring. It is Ready
// as soon as New returns and only ever renders after that; switching scenes means building a new
// one, which discards everything the old one put on the renderer.
type Scene interface {
	// Name returns the scene's identifier.
	Name() Name

	// Render draws one frame. Per-frame uniforms are derived from the current parameters and
	// the clock only.
	//
	// Parameters:
	//   - dev: the development overrides
	//   - r: the renderer the scene was built on
	//   - clk: the frame clock, already updated for this frame
	Render(dev develop.Develop, r renderer.Renderer, clk *clock.Clock)

	// SetParameters decodes a raw parameter string. Scenes without parameters ignore it.
	//
	// Parameters:
	//   - raw: comma-separated float literals
	//
	// Returns:
	//   - error: a params error when the update is rejected, the previous values stay in place
	SetParameters(raw string) error

	// Parameters returns the parameter vector, or nil when the scene takes none.
	Parameters() *params.Vector

	// Fieldsets returns the JSON description of the adjustable parameter groups.
	Fieldsets() []byte

	// Presets returns the JSON list of named parameter vectors.
	Presets() []byte

	// PresetCount returns the number of presets.
	PresetCount() int

	// PresetValues returns the values of one preset.
	//
	// Parameters:
	//   - index: the preset, from 0
	//
	// Returns:
	//   - []float32: a copy of the preset values
	//   - error: ErrNoPreset for an index out of range
	PresetValues(index int) ([]float32, error)
}

// New builds a scene on r. Everything the previous scene left on r is released first.
//
// Parameters:
//   - name: the scene to build
//   - r: the renderer
//   - options: functional options
//
// Returns:
//   - Scene: the ready scene
//   - error: ErrUnknownScene, a shader or renderer setup error, or ErrCatalog
func New(name Name, r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		panic("scene: New requires a non-nil Renderer")
	}
	cfg := defaultConfig()
	for _, opt := range options {
		opt(cfg)
	}
	cfg.logger = cfg.logger.With("component", "scene", "scene", name.String())

	var (
		s   Scene
		err error
	)
	switch name {
	case NameBlueRedBoxes:
		s, err = newBlueRedBoxes(r, cfg)
	case NameRainbowCactus:
		s, err = newRainbowCactus(r, cfg)
	case NameAloneFurl:
		s, err = newAloneFurl(r, cfg)
	case NameEmpty:
		s, err = newEmpty(r, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if err != nil {
		return nil, fmt.Errorf("scene: building %s: %w", name, err)
	}
	cfg.logger.Info("scene ready", "programs", r.ProgramCount(), "presets", s.PresetCount())
	return s, nil
}

// Parameter describes one slider of a fieldset.
type Parameter struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Title string  `json:"title"`
}

// Fieldset is a group of related parameters. Fieldsets of kind "iu" drive one iu_* uniform.
type Fieldset struct {
	Kind       string      `json:"kind"`
	ID         string      `json:"id"`
	Heading    string      `json:"heading"`
	Sm         []float64   `json:"sm,omitempty"`
	Tm         []float64   `json:"tm,omitempty"`
	Parameters []Parameter `json:"parameters"`
}

// Preset is a named parameter vector.
type Preset struct {
	Title  string    `json:"title"`
	Notes  string    `json:"notes,omitempty"`
	Values []float32 `json:"values"`
}

// catalog holds a scene's fieldsets and presets, raw and decoded.
type catalog struct {
	fieldsetsRaw []byte
	presetsRaw   []byte
	fieldsets    []Fieldset
	presets      []Preset
}

// emptyCatalog is the catalog of a scene without parameters.
var emptyCatalog = catalog{fieldsetsRaw: []byte("[]"), presetsRaw: []byte("[]")}

// loadCatalog decodes and checks fieldsets and presets. Every preset must hold exactly count
// values and every fieldset parameter must be accepted by known.
func loadCatalog(fieldsetsRaw, presetsRaw []byte, count int, known func(string) bool) (catalog, error) {
	c := catalog{fieldsetsRaw: fieldsetsRaw, presetsRaw: presetsRaw}
	if err := json.Unmarshal(fieldsetsRaw, &c.fieldsets); err != nil {
		return catalog{}, fmt.Errorf("%w: fieldsets: %w", ErrCatalog, err)
	}
	if err := json.Unmarshal(presetsRaw, &c.presets); err != nil {
		return catalog{}, fmt.Errorf("%w: presets: %w", ErrCatalog, err)
	}
	for _, fs := range c.fieldsets {
		for _, p := range fs.Parameters {
			if !known(p.Name) {
				return catalog{}, fmt.Errorf("%w: fieldset %q names unknown parameter %q", ErrCatalog, fs.ID, p.Name)
			}
			if p.Min > p.Max || p.Step <= 0 {
				return catalog{}, fmt.Errorf("%w: parameter %q has range [%v, %v] step %v", ErrCatalog, p.Name, p.Min, p.Max, p.Step)
			}
		}
	}
	for i, p := range c.presets {
		if len(p.Values) != count {
			return catalog{}, fmt.Errorf("%w: preset %d %q has %d values, want %d", ErrCatalog, i, p.Title, len(p.Values), count)
		}
	}
	return c, nil
}

// Documents are a scene's fieldsets and presets, as embedded and decoded.
type Documents struct {
	FieldsetsJSON []byte
	PresetsJSON   []byte
	Fieldsets     []Fieldset
	Presets       []Preset
}

// Catalog returns the checked fieldsets and presets of a scene without building it.
//
// Parameters:
//   - name: the scene
//
// Returns:
//   - Documents: the documents
//   - error: ErrUnknownScene, or ErrCatalog when the embedded documents are inconsistent
func Catalog(name Name) (Documents, error) {
	var (
		c   catalog
		err error
	)
	switch name {
	case NameAloneFurl:
		c, err = aloneFurlCatalog()
	case NameBlueRedBoxes, NameRainbowCactus, NameEmpty:
		c = emptyCatalog
	default:
		return Documents{}, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if err != nil {
		return Documents{}, err
	}
	return Documents{
		FieldsetsJSON: c.fieldsetsRaw,
		PresetsJSON:   c.presetsRaw,
		Fieldsets:     c.fieldsets,
		Presets:       c.presets,
	}, nil
}

// base carries what every scene shares.
type base struct {
	name    Name
	logger  *slog.Logger
	params  *params.Vector
	catalog catalog
}

func (b *base) Name() Name {
	return b.name
}

func (b *base) SetParameters(raw string) error {
	if b.params == nil {
		return nil
	}
	return b.params.Set(raw)
}

func (b *base) Parameters() *params.Vector {
	return b.params
}

func (b *base) Fieldsets() []byte {
	return b.catalog.fieldsetsRaw
}

func (b *base) Presets() []byte {
	return b.catalog.presetsRaw
}

func (b *base) PresetCount() int {
	return len(b.catalog.presets)
}

func (b *base) PresetValues(index int) ([]float32, error) {
	if index < 0 || index >= len(b.catalog.presets) {
		return nil, fmt.Errorf("%w: %d of %d in %s", ErrNoPreset, index, len(b.catalog.presets), b.name)
	}
	return append([]float32(nil), b.catalog.presets[index].Values...), nil
}

// PresetTitle returns the title of a preset, or "" for an index out of range.
func PresetTitle(s Scene, index int) string {
	var presets []Preset
	if err := json.Unmarshal(s.Presets(), &presets); err != nil || index < 0 || index >= len(presets) {
		return ""
	}
	return presets[index].Title
}
