// Package config loads the furl run configuration from TOML or YAML. Every field has a default,
// so a missing file section keeps the default and command line flags are applied on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/furl/engine/develop"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrFormat is returned for a file extension other than .toml, .yaml or .yml.
	ErrFormat = errors.New("config: unsupported format")
	// ErrInvalid is returned when a loaded value is out of range.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the complete run configuration.
type Config struct {
	Scene        scene.Name      `toml:"scene" yaml:"scene"`
	LogLevel     string          `toml:"log_level" yaml:"log_level"`
	Diagnostics  glapi.Policy    `toml:"diagnostics" yaml:"diagnostics"`
	Profile      bool            `toml:"profile" yaml:"profile"`
	CurveWorkers int             `toml:"curve_workers" yaml:"curve_workers"`
	Window       Window          `toml:"window" yaml:"window"`
	Develop      develop.Develop `toml:"develop" yaml:"develop"`
	Parameters   Parameters      `toml:"parameters" yaml:"parameters"`
	Headless     Headless        `toml:"headless" yaml:"headless"`
}

// Window configures the desktop window.
type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
	// FrameLimit caps frames per second; 0 leaves the rate to vsync.
	FrameLimit float64 `toml:"frame_limit" yaml:"frame_limit"`
}

// Parameters selects the initial parameter values of the scene.
type Parameters struct {
	// Raw is a comma-separated parameter string.
	Raw string `toml:"raw" yaml:"raw"`
	// File is watched and its contents replace Raw whenever it changes.
	File string `toml:"file" yaml:"file"`
	// Preset is a 1-based scene preset applied when Raw is empty; 0 selects none.
	Preset int `toml:"preset" yaml:"preset"`
}

// Headless runs the scene against the recording context instead of a window.
type Headless struct {
	Enabled  bool    `toml:"enabled" yaml:"enabled"`
	Frames   int     `toml:"frames" yaml:"frames"`
	TickRate float64 `toml:"tick_rate" yaml:"tick_rate"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scene:       scene.NameAloneFurl,
		LogLevel:    "info",
		Diagnostics: glapi.PolicySetupAndSceneInit,
		Window: Window{
			Title:  "furl",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Headless: Headless{
			Frames:   120,
			TickRate: 60,
		},
	}
}

// FormatOf picks the encoding from a file extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Format: the encoding
//   - error: ErrFormat for an unknown extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Load reads path over the defaults and validates the result.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - Config: the configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the encoded configuration
//   - format: the encoding
//
// Returns:
//   - Config: the configuration
//   - error: a decode or validation error
func Decode(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes c to w.
//
// Parameters:
//   - w: the destination
//   - format: the encoding
//
// Returns:
//   - error: an encode error or ErrFormat
func (c Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// Validate checks every field that has a range.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Window.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: frame limit %g", ErrInvalid, c.Window.FrameLimit))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("%w: headless frames %d", ErrInvalid, c.Headless.Frames))
	}
	if c.Headless.TickRate < 0 {
		errs = append(errs, fmt.Errorf("%w: tick rate %g", ErrInvalid, c.Headless.TickRate))
	}
	if c.CurveWorkers < 0 {
		errs = append(errs, fmt.Errorf("%w: curve workers %d", ErrInvalid, c.CurveWorkers))
	}
	if c.Parameters.Preset < 0 {
		errs = append(errs, fmt.Errorf("%w: preset %d", ErrInvalid, c.Parameters.Preset))
	}
	return errors.Join(errs...)
}

// ParseLevel parses debug, info, warn or error, in any case.
//
// Parameters:
//   - s: the level name
//
// Returns:
//   - slog.Level: the level
//   - error: ErrInvalid for an unknown name
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at level.
//
// Parameters:
//   - w: the destination
//   - level: the minimum level
//
// Returns:
//   - *slog.Logger: the logger
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
