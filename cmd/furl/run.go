package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/Carmen-Shannon/furl/engine"
	"github.com/Carmen-Shannon/furl/engine/config"
	"github.com/Carmen-Shannon/furl/engine/params"
	"github.com/Carmen-Shannon/furl/engine/renderer"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi"
	"github.com/Carmen-Shannon/furl/engine/renderer/glapi/glcore"
	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/Carmen-Shannon/furl/engine/window"
	"github.com/spf13/cobra"
)

// runFlags mirror the configuration fields a run can override.
type runFlags struct {
	scene      string
	headless   bool
	frames     int
	tickRate   float64
	params     string
	paramsFile string
	preset     int
	policy     string
	profile    bool
	workers    int
	frameLimit float64
	camera     string
	guides     string
	lod        string
	wireframe  string
	width      int
	height     int
	noVSync    bool
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render a scene",
		Long: "Render a scene in a window until it is closed or Escape is pressed. With --headless the scene\n" +
			"is driven for a fixed number of frames against a recording context and no window is opened.\n\n" +
			"Keys: Space pause, C camera, G guides, L level of detail, W wireframe, 1-8 presets, Esc quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}
			logger, err := opts.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			if cfg.Headless.Enabled {
				return runHeadless(cmd, cfg, logger)
			}
			return runWindowed(cmd.Context(), cfg, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.scene, "scene", "s", "", "scene: "+sceneList())
	fl.BoolVar(&f.headless, "headless", false, "run without a window against a recording context")
	fl.IntVar(&f.frames, "frames", 0, "frames to run headless")
	fl.Float64Var(&f.tickRate, "tick-rate", 0, "synthetic frames per second when headless")
	fl.StringVarP(&f.params, "params", "p", "", "comma-separated parameter values")
	fl.StringVar(&f.paramsFile, "params-file", "", "file of parameter values, reloaded on change")
	fl.IntVar(&f.preset, "preset", 0, "1-based scene preset used when no parameters are given")
	fl.StringVar(&f.policy, "policy", "", "GL error checks: off, setup-only, setup+scene-init or all-phases")
	fl.BoolVar(&f.profile, "profile", false, "log frame rate and memory statistics every second")
	fl.IntVar(&f.workers, "workers", 0, "workers for curve precomputation")
	fl.Float64Var(&f.frameLimit, "frame-limit", 0, "maximum frames per second")
	fl.StringVar(&f.camera, "camera", "", "camera override")
	fl.StringVar(&f.guides, "guides", "", "guides override")
	fl.StringVar(&f.lod, "lod", "", "level of detail override")
	fl.StringVar(&f.wireframe, "wireframe", "", "wireframe override")
	fl.IntVar(&f.width, "width", 0, "window width")
	fl.IntVar(&f.height, "height", 0, "window height")
	fl.BoolVar(&f.noVSync, "no-vsync", false, "do not wait for vertical blank")
	return cmd
}

// apply copies every flag given on the command line over cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("scene") {
		name, err := scene.ParseName(f.scene)
		if err != nil {
			return err
		}
		cfg.Scene = name
	}
	if changed("policy") {
		p, err := glapi.ParsePolicy(f.policy)
		if err != nil {
			return err
		}
		cfg.Diagnostics = p
	}
	if changed("camera") {
		if err := cfg.Develop.Camera.UnmarshalText([]byte(f.camera)); err != nil {
			return err
		}
	}
	if changed("guides") {
		if err := cfg.Develop.Guides.UnmarshalText([]byte(f.guides)); err != nil {
			return err
		}
	}
	if changed("lod") {
		if err := cfg.Develop.Lod.UnmarshalText([]byte(f.lod)); err != nil {
			return err
		}
	}
	if changed("wireframe") {
		if err := cfg.Develop.Wireframe.UnmarshalText([]byte(f.wireframe)); err != nil {
			return err
		}
	}
	if changed("headless") {
		cfg.Headless.Enabled = f.headless
	}
	if changed("frames") {
		cfg.Headless.Frames = f.frames
	}
	if changed("tick-rate") {
		cfg.Headless.TickRate = f.tickRate
	}
	if changed("params") {
		cfg.Parameters.Raw = f.params
	}
	if changed("params-file") {
		cfg.Parameters.File = f.paramsFile
	}
	if changed("preset") {
		cfg.Parameters.Preset = f.preset
	}
	if changed("profile") {
		cfg.Profile = f.profile
	}
	if changed("workers") {
		cfg.CurveWorkers = f.workers
	}
	if changed("frame-limit") {
		cfg.Window.FrameLimit = f.frameLimit
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("no-vsync") {
		cfg.Window.VSync = !f.noVSync
	}
	return cfg.Validate()
}

// newApp builds the renderer and the first scene on ctx.
func newApp(ctx glapi.Context, width, height int, cfg config.Config, logger *slog.Logger) (engine.App, error) {
	r, err := renderer.New(ctx,
		renderer.WithExtent(width, height),
		renderer.WithPolicy(cfg.Diagnostics),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	var sceneOptions []scene.SceneBuilderOption
	if cfg.CurveWorkers > 0 {
		sceneOptions = append(sceneOptions, scene.WithCurveWorkers(cfg.CurveWorkers))
	}
	return engine.NewApp(r, cfg.Scene, engine.WithAppLogger(logger), engine.WithSceneOptions(sceneOptions...))
}

// initialParameters resolves the raw parameter string of the first frame.
func initialParameters(app engine.App, cfg config.Config) (string, error) {
	if cfg.Parameters.Raw != "" || cfg.Parameters.Preset == 0 {
		return cfg.Parameters.Raw, nil
	}
	values, err := app.Scene().PresetValues(cfg.Parameters.Preset - 1)
	if err != nil {
		return "", err
	}
	return params.Format(values), nil
}

func engineOptions(app engine.App, cfg config.Config, logger *slog.Logger) ([]engine.EngineBuilderOption, error) {
	raw, err := initialParameters(app, cfg)
	if err != nil {
		return nil, err
	}
	return []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Profile),
		engine.WithParameters(raw),
		engine.WithParameterFile(cfg.Parameters.File),
		engine.WithDevelop(cfg.Develop),
	}, nil
}

func runHeadless(cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	rec := glapi.NewRecorder()
	app, err := newApp(rec, cfg.Window.Width, cfg.Window.Height, cfg, logger)
	if err != nil {
		return err
	}
	options, err := engineOptions(app, cfg, logger)
	if err != nil {
		return err
	}
	eng := engine.NewEngine(app, append(options, engine.WithTickRate(cfg.Headless.TickRate))...)
	if err := eng.RunHeadless(cfg.Headless.Frames); err != nil {
		return err
	}

	draws := 0
	for _, c := range rec.Calls() {
		switch c.Name {
		case "DrawArrays", "DrawElements", "DrawArraysInstanced", "DrawElementsInstanced":
			draws++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d draw calls, %.3fs\n",
		app.Scene().Name(), app.Frames(), draws, app.Clock().Time())
	return nil
}

func runWindowed(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithVSync(cfg.Window.VSync),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	glctx, err := glcore.New()
	if err != nil {
		return err
	}
	logger.Info("gl context ready", "version", glcore.Version())

	app, err := newApp(glctx, w.Width(), w.Height(), cfg, logger)
	if err != nil {
		return err
	}
	options, err := engineOptions(app, cfg, logger)
	if err != nil {
		return err
	}
	eng := engine.NewEngine(app, append(options,
		engine.WithWindow(w),
		engine.WithRenderFrameLimit(cfg.Window.FrameLimit),
	)...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	logger.Info("running", "scene", cfg.Scene.String(), "develop", eng.Develop().String())
	return eng.Run()
}

func sceneList() string {
	names := make([]string, 0, len(scene.Names()))
	for _, n := range scene.Names() {
		names = append(names, n.String())
	}
	return strings.Join(names, ", ")
}
