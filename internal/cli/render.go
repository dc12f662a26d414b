package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/energylevels/pkg/errors"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// renderCommand creates the render command: diagram file in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [diagram]",
		Short: "Render an energy-level diagram",
		Long: `Render an energy-level diagram.

The input is a .lvl text file or a TOML, YAML or JSON document; the format is
picked from the file extension. Settings in the file (width, height, font size,
spread factor, output file) apply unless overridden by flags.

With -t links the states and their links are drawn as a Graphviz graph instead.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			withContextLogger(cmd.Context(), &opts)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")

	// Render flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: levels (default), links")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 600)")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", 0, "font size (default 12)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.HideEnergies, "no-energies", false, "do not print energy values next to the bars")
	cmd.Flags().BoolVar(&opts.HideLinks, "no-links", false, "do not draw links between states")
	layoutFlags(cmd, &opts)

	return cmd
}

// runRender parses the diagram, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	d, err := runner.ParseFile(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if output == "" {
		output = d.OutputFile
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		links:     opts.VizType == pipeline.VizLinks,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.States, result.Stats.Columns, result.Crowded, result.CacheInfo.RenderHit)
	if len(result.Crowded) > 0 {
		printWarning("labels still overlap in column(s) %s", columnList(result.Crowded))
	}
	prog.done("Done")

	if opts.VizType != pipeline.VizLinks {
		printNewline()
		printNextStep("Inspect label positions", appName+" layout "+input)
	}
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	links     bool
}

// writeArtifacts writes each artifact and returns the paths written, in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths := outputPaths(p)
	written := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := errs.ValidatePath(path); err != nil {
			return written, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// outputPaths picks a file name per format. A single format written to an
// explicit output uses it verbatim; otherwise the extension is replaced.
func outputPaths(p artifactWriteParams) map[string]string {
	paths := make(map[string]string, len(p.formats))
	if p.output != "" && len(p.formats) == 1 {
		paths[p.formats[0]] = p.output
		return paths
	}

	base := basePath(p.output, p.input)
	if p.output == "" && p.links {
		base += ".links"
	}
	for _, format := range p.formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if isFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func isFormat(s string) bool {
	for _, formats := range pipeline.ValidFormats {
		if slices.Contains(formats, s) {
			return true
		}
	}
	return false
}

// columnList formats column indices as the 1-based numbers used in documents.
func columnList(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c + 1)
	}
	return strings.Join(parts, ", ")
}
