package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/energylevels/pkg/cache"
	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ParseFile reads a diagram from disk, picking the format from the extension.
func (r *Runner) ParseFile(ctx context.Context, path string) (*diagram.Diagram, error) {
	start := time.Now()
	d, err := diagram.ReadFile(path)
	if err == nil {
		err = r.checkDiagram(d)
	}
	r.parsed(ctx, diagram.FormatFor(path), d, start, err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads a diagram in the given format.
func (r *Runner) Parse(ctx context.Context, rd io.Reader, format diagram.Format) (*diagram.Diagram, error) {
	start := time.Now()
	d, err := diagram.Read(rd, format)
	if err == nil {
		err = r.checkDiagram(d)
	}
	r.parsed(ctx, format, d, start, err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Runner) parsed(ctx context.Context, format diagram.Format, d *diagram.Diagram, start time.Time, err error) {
	states := 0
	if d != nil {
		states = len(d.States)
	}
	observability.Pipeline().OnParseComplete(ctx, string(format), states, time.Since(start), err)
}

// checkDiagram logs reader warnings and validates the diagram.
func (r *Runner) checkDiagram(d *diagram.Diagram) error {
	for _, w := range d.Warnings {
		r.Logger.Warn(w)
	}
	return d.Validate()
}

// Execute runs the complete layout -> render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	opts.ApplyDiagram(d)
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := diagramHash(d)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Diagram:     d,
		DiagramHash: hash,
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.States = len(d.States)
	result.Stats.Columns = d.Columns()

	// Stage 1: Layout (the links view has no label positions)
	var laid *Laid
	if !opts.IsLinks() {
		layoutStart := time.Now()
		laid, err = r.Layout(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Axis = laid.Axis
		result.Layout = laid.Result
		result.Placements = laid.Placements(d)
		result.Crowded = laid.Crowded
		result.Stats.Iterations = laid.Result.Iterations()
		result.Stats.LayoutTime = time.Since(layoutStart)

		opts.Logger.Info("laid out labels",
			"states", result.Stats.States,
			"columns", result.Stats.Columns,
			"iterations", result.Stats.Iterations,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, laid, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteFile parses the file at path and runs Execute on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	d, err := r.ParseFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return r.Execute(ctx, d, opts)
}

// LayoutJSONWithCacheInfo returns the JSON layout export of d (no pixel
// geometry), cached under the layout key. It reports whether it was a cache hit.
func (r *Runner) LayoutJSONWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) ([]byte, bool, error) {
	opts.ApplyDiagram(d)
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := diagramHash(d)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, observability.KeyLayout)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyLayout)
	}

	laid, err := r.Layout(ctx, d, opts)
	if err != nil {
		return nil, false, fmt.Errorf("layout: %w", err)
	}
	data, err := laid.JSON(d)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
		opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, observability.KeyLayout, len(data))
	}
	return data, false, nil
}

// RenderWithCacheInfo renders every requested format, serving them from the
// cache when all are present. laid may be nil for the links view.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.Diagram, laid *Laid, hash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, observability.KeyArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, d, laid, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, observability.KeyArtifact, len(data))
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func diagramHash(d *diagram.Diagram) (string, error) {
	data, err := d.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	return cache.Hash(data), nil
}
