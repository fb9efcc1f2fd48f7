package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output SVG path
	scale   float64 // SVG coordinate multiplier
	padding float64 // SVG padding in layout units
	labels  bool    // draw item indices
	verify  bool    // re-check the stored partition before rendering
}

// renderCommand creates the render command for re-rendering saved layouts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1, verify: true}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a saved layout document as SVG",
		Long: `Render reads a layout document previously produced by "solve --format json"
and renders it as SVG without re-solving. The stored partition is verified
against the document's items first; pass --verify=false to skip that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path (default: input with .svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG coordinate multiplier")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "SVG padding in layout units")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item indices in the SVG")
	cmd.Flags().BoolVar(&opts.verify, "verify", opts.verify, "verify the stored partition before rendering")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := render.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded document: %d items, %d columns", len(doc.Items), doc.Result.Columns())

	if opts.verify {
		engine, err := column.NewEngine(doc.Items, doc.Spacing, doc.ColumnLimit)
		if err != nil {
			return err
		}
		if err := engine.Verify(doc.Result); err != nil {
			return fmt.Errorf("stored partition does not match items: %w", err)
		}
		logger.Debug("Partition verified")
	}

	renderOpts := []render.Option{
		render.WithScale(opts.scale),
		render.WithPadding(opts.padding),
	}
	if opts.labels {
		renderOpts = append(renderOpts, render.WithLabels())
	}
	data := render.SVG(doc.Result, doc.Layouts, renderOpts...)

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered %d items", len(doc.Items))
	printFile(path)
	return nil
}
