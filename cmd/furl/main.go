// Command furl renders the furl demo scenes in a window, or headless against a recording
// context, and prints the scene catalogs and shader signatures.
package main

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/furl/engine/config"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// GLFW and the GL context must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "furl",
		Short:         "Parametrized spiral and instanced cube demos on OpenGL 3.3",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "log errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		newRunCommand(opts),
		newFieldsetsCommand(),
		newPresetsCommand(),
		newSignaturesCommand(),
		newConfigCommand(opts),
	)
	return root
}

// load returns the configuration file named by --config, or the defaults.
func (o *rootOptions) load() (config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

// logger builds the run logger from the configured level and the -v/-q flags.
func (o *rootOptions) logger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	switch {
	case o.verbose:
		level = slog.LevelDebug
	case o.quiet:
		level = slog.LevelError
	}
	return config.NewLogger(w, level), nil
}
