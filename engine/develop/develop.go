// Package develop holds the development overrides a host can flip while a scene runs: camera,
// guide overlays, level of detail and wireframe mode. Every override has a "chosen-by-scene"
// value that leaves the decision to the scene.
package develop

import (
	"fmt"
	"strings"
)

// CameraPreset overrides the scene camera.
type CameraPreset int

const (
	CameraChosenByScene CameraPreset = iota
	CameraOrthographicFront
	CameraOrthographicLeft
	CameraOrthographicTop
)

var cameraNames = []string{
	"chosen-by-scene",
	"orthographic-front",
	"orthographic-left",
	"orthographic-top",
}

// GuidesPreset overrides which axes and grids are drawn.
type GuidesPreset int

const (
	GuidesChosenByScene GuidesPreset = iota
	GuidesNone
	GuidesAll10m
	GuidesAll1m
	GuidesAxesOnly10m
	GuidesAxesOnly1m
	GuidesGridsOnly10m
	GuidesGridsOnly1m
)

var guidesNames = []string{
	"chosen-by-scene",
	"none",
	"all-10m",
	"all-1m",
	"axes-only-10m",
	"axes-only-1m",
	"grids-only-10m",
	"grids-only-1m",
}

// LodPreset overrides the level of detail of every mesh.
type LodPreset int

const (
	LodChosenByScene LodPreset = iota
	// LodAll0 sets every mesh to its minimum level of detail.
	LodAll0
	// LodAll1 sets every mesh to a low, but not minimum, level of detail.
	LodAll1
)

var lodNames = []string{
	"chosen-by-scene",
	"all-0",
	"all-1",
}

// WireframePreset overrides how meshes are rasterized.
type WireframePreset int

const (
	WireframeChosenByScene WireframePreset = iota
	WireframeDots
	WireframeLines
	WireframeSolid
)

var wireframeNames = []string{
	"chosen-by-scene",
	"dots",
	"lines",
	"solid",
}

// Develop bundles the four overrides. The zero value leaves everything to the scene.
type Develop struct {
	Camera    CameraPreset    `toml:"camera" yaml:"camera"`
	Guides    GuidesPreset    `toml:"guides" yaml:"guides"`
	Lod       LodPreset       `toml:"lod" yaml:"lod"`
	Wireframe WireframePreset `toml:"wireframe" yaml:"wireframe"`
}

func (d Develop) String() string {
	return fmt.Sprintf("camera=%s guides=%s lod=%s wireframe=%s", d.Camera, d.Guides, d.Lod, d.Wireframe)
}

func name[T ~int](names []string, kind string, v T) string {
	if v >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, int(v))
}

func parse[T ~int](names []string, kind, s string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("develop: unknown %s %q (want one of %s)", kind, s, strings.Join(names, ", "))
}

func next[T ~int](names []string, v T) T {
	return T((int(v) + 1) % len(names))
}

func (p CameraPreset) String() string { return name(cameraNames, "CameraPreset", p) }

// Next returns the following preset, wrapping to the first.
func (p CameraPreset) Next() CameraPreset { return next(cameraNames, p) }

// ParseCameraPreset parses a kebab-case camera preset name.
func ParseCameraPreset(s string) (CameraPreset, error) {
	return parse[CameraPreset](cameraNames, "camera preset", s)
}

func (p CameraPreset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *CameraPreset) UnmarshalText(text []byte) error {
	v, err := ParseCameraPreset(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p GuidesPreset) String() string { return name(guidesNames, "GuidesPreset", p) }

// Next returns the following preset, wrapping to the first.
func (p GuidesPreset) Next() GuidesPreset { return next(guidesNames, p) }

// ParseGuidesPreset parses a kebab-case guides preset name.
func ParseGuidesPreset(s string) (GuidesPreset, error) {
	return parse[GuidesPreset](guidesNames, "guides preset", s)
}

func (p GuidesPreset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *GuidesPreset) UnmarshalText(text []byte) error {
	v, err := ParseGuidesPreset(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ShowsAxes reports whether the preset draws axes. ChosenByScene and None report false.
func (p GuidesPreset) ShowsAxes() bool {
	switch p {
	case GuidesAll10m, GuidesAll1m, GuidesAxesOnly10m, GuidesAxesOnly1m:
		return true
	}
	return false
}

// ShowsGrids reports whether the preset draws grids. ChosenByScene and None report false.
func (p GuidesPreset) ShowsGrids() bool {
	switch p {
	case GuidesAll10m, GuidesAll1m, GuidesGridsOnly10m, GuidesGridsOnly1m:
		return true
	}
	return false
}

// OneMetre reports whether the preset draws the 1 metre guides rather than the 10 metre ones.
func (p GuidesPreset) OneMetre() bool {
	switch p {
	case GuidesAll1m, GuidesAxesOnly1m, GuidesGridsOnly1m:
		return true
	}
	return false
}

func (p LodPreset) String() string { return name(lodNames, "LodPreset", p) }

// Next returns the following preset, wrapping to the first.
func (p LodPreset) Next() LodPreset { return next(lodNames, p) }

// ParseLodPreset parses a kebab-case level-of-detail preset name.
func ParseLodPreset(s string) (LodPreset, error) {
	return parse[LodPreset](lodNames, "lod preset", s)
}

func (p LodPreset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *LodPreset) UnmarshalText(text []byte) error {
	v, err := ParseLodPreset(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p WireframePreset) String() string { return name(wireframeNames, "WireframePreset", p) }

// Next returns the following preset, wrapping to the first.
func (p WireframePreset) Next() WireframePreset { return next(wireframeNames, p) }

// ParseWireframePreset parses a kebab-case wireframe preset name.
func ParseWireframePreset(s string) (WireframePreset, error) {
	return parse[WireframePreset](wireframeNames, "wireframe preset", s)
}

func (p WireframePreset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *WireframePreset) UnmarshalText(text []byte) error {
	v, err := ParseWireframePreset(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
