package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Carmen-Shannon/furl/engine/config"
	"github.com/Carmen-Shannon/furl/engine/renderer/signature"
	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/spf13/cobra"
)

// sceneArg parses the optional scene argument, defaulting to alone-furl.
func sceneArg(args []string) (scene.Name, error) {
	if len(args) == 0 {
		return scene.NameAloneFurl, nil
	}
	return scene.ParseName(args[0])
}

// oneLine keeps multi-line labels inside one table row.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// writeJSON indents raw onto w.
func writeJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func newFieldsetsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fieldsets [scene]",
		Short: "List the adjustable parameter groups of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := sceneArg(args)
			if err != nil {
				return err
			}
			docs, err := scene.Catalog(name)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), docs.FieldsetsJSON)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELDSET\tPARAMETER\tMIN\tMAX\tSTEP\tTITLE")
			for _, fs := range docs.Fieldsets {
				for _, p := range fs.Parameters {
					fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", fs.ID, p.Name, p.Min, p.Max, p.Step, oneLine(p.Title))
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the embedded JSON document")
	return cmd
}

func newPresetsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "List the named parameter presets of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := sceneArg(args)
			if err != nil {
				return err
			}
			docs, err := scene.Catalog(name)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), docs.PresetsJSON)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tNOTES")
			for i, p := range docs.Presets {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, oneLine(p.Title), oneLine(p.Notes))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the embedded JSON document")
	return cmd
}

func newSignaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "signatures",
		Short: "List the attribute locations and uniforms of every shader family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FAMILY\tKIND\tNAME\tLOCATION\tTYPE\tWIRE")
			for _, f := range signature.Families() {
				sig := signature.For(f)
				if err := sig.Validate(); err != nil {
					return err
				}
				for _, a := range sig.Attributes() {
					fmt.Fprintf(tw, "%s\tattribute\t%s\t%d\t%s\t%s\n", f, a.Name, a.Location, a.Kind.GLSL(), a.Wire)
				}
				for _, u := range sig.Uniforms() {
					fmt.Fprintf(tw, "%s\tuniform\t%s\t-\t%s\t%s\n", f, u.Name, u.Kind.GLSL(), u.Wire)
				}
			}
			return tw.Flush()
		},
	}
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), config.Format(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), "toml or yaml")
	return cmd
}
