package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/energylevels/pkg/buildinfo"
	"github.com/matzehuels/energylevels/pkg/cache"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "energylevels"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Energylevels draws energy-level diagrams with readable labels",
		Long: `Energylevels reads a description of energy states (reaction profiles,
orbital diagrams, spectroscopic levels) and draws it as an energy-level diagram.
Labels of states that sit too close together are moved apart automatically.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache opens the file cache, falling back to no caching when the
// directory cannot be determined.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags binds the layout options shared by render, layout and inspect.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.MinSpacing, "min-spacing", 0, "minimum label separation in energy units (default 0.12)")
	cmd.Flags().Float64Var(&opts.SpreadFactor, "spread-factor", 0, "slot size of a spread label as a multiple of min-spacing (default 1.4)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "resolve passes per column (default max(8, 4 x labels))")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "lay out columns concurrently")
	cmd.Flags().BoolVar(&opts.AllowCrowded, "allow-crowded", false, "draw the diagram even if some labels still overlap")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// withContextLogger sets the logger carried by ctx on opts.
func withContextLogger(ctx context.Context, opts *pipeline.Options) {
	opts.Logger = loggerFromContext(ctx)
}
