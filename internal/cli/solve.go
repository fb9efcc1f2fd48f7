package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartvig/colstack/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: "svg", "json"
	method  string   // partition method: "dp", "greedy", "binsearch"
	columns int      // column limit override
	width   float64  // width limit override
	scale   float64  // SVG coordinate multiplier
	padding float64  // SVG padding in layout units
	labels  bool     // draw item indices in the SVG
	noCache bool     // disable the result cache
	refresh bool     // recompute even on a cache hit
}

// solveCommand creates the solve command for partitioning a manifest.
func (c *CLI) solveCommand() *cobra.Command {
	var formatsStr string
	opts := solveOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "solve [manifest]",
		Short: "Partition a manifest's items into columns",
		Long: `Solve reads an item manifest (TOML or JSON), partitions the items into
vertical columns, and writes the rendered artifacts next to the manifest
unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVarP(&opts.method, "method", "m", "", "partition method: binsearch (default), dp, greedy")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "column limit (overrides manifest)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "available width (overrides manifest, 0 = unbounded)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG coordinate multiplier")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "SVG padding in layout units")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item indices in the SVG")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, input string, opts *solveOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		ManifestPath: input,
		Method:       opts.method,
		ColumnLimit:  opts.columns,
		WidthLimit:   opts.width,
		Formats:      opts.formats,
		Scale:        opts.scale,
		Padding:      opts.padding,
		Labels:       opts.labels,
		Refresh:      opts.refresh,
		Logger:       logger,
	}

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %d items", result.Stats.ItemCount))

	printSolveSummary(result, result.Spacing)

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the artifact path for a format. With multiple
// formats the output flag acts as a base path and the format extension
// is appended; with a single format it is used verbatim when set.
func outputPath(output, input, format string, multi bool) string {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if !multi && filepath.Ext(base) != "" {
		return base
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "." + format
}
