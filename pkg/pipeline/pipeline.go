// Package pipeline provides the parse -> layout -> render pipeline used by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read a diagram document (.lvl, TOML, YAML or JSON)
//  2. Layout: scale the energy axis, then move labels until none overlap
//  3. Render: draw the scene in the requested formats (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached under the hash of the canonical diagram JSON
// and the options that affect the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	d, err := runner.ParseFile(ctx, "profile.lvl")
//	result, err := runner.Execute(ctx, d, pipeline.Options{Formats: []string{"svg", "png"}})
//	svg := result.Artifacts["svg"]
//
// A column whose labels cannot be separated within the iteration cap fails the
// run with LAYOUT_DID_NOT_CONVERGE, unless AllowCrowded is set; the diagram is
// then drawn with the last positions and the columns are listed in
// Result.Crowded.
package pipeline

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/energylevels/pkg/cache"
	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/levels"
	"github.com/matzehuels/energylevels/pkg/core/render"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = render.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = render.DefaultHeight

	// DefaultFontSize is the default font size in pixels.
	DefaultFontSize = render.DefaultFontSize

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Upper bounds on frame options. A PNG canvas is Width*Scale by Height*Scale
// pixels and each side is further limited to MaxCanvasSide, which keeps one
// RGBA canvas under 1 GiB.
const (
	MaxWidth      = 10000
	MaxHeight     = 10000
	MaxFontSize   = 500
	MaxScale      = 8
	MaxCanvasSide = 16384
)

// Visualization types.
const (
	VizLevels = "levels" // energy-level diagram
	VizLinks  = "links"  // Graphviz view of the links between states
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizLevels

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the supported output formats per visualization type.
var ValidFormats = map[string][]string{
	VizLevels: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	VizLinks:  {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero frame and layout values fall back to the diagram's own settings and
// then to the defaults.
type Options struct {
	VizType string `json:"viz_type,omitempty"`

	// Frame options
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	// Layout options
	MinSpacing      float64 `json:"min_spacing,omitempty"`
	SpreadFactor    float64 `json:"spread_factor,omitempty"`
	IterationFactor int     `json:"iteration_factor,omitempty"`
	MaxIterations   int     `json:"max_iterations,omitempty"`
	Parallel        bool    `json:"parallel,omitempty"`
	AllowCrowded    bool    `json:"allow_crowded,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	HideEnergies bool     `json:"hide_energies,omitempty"`
	HideLinks    bool     `json:"hide_links,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the normalized input.
	Diagram *diagram.Diagram

	// DiagramHash is the content hash of the canonical diagram JSON.
	DiagramHash string

	// Axis is the energy axis the labels were clamped to.
	Axis render.Axis

	// Layout holds the per-column outcome of the label layout.
	Layout levels.Result

	// Placements lists every state and its final label position.
	Placements []render.Placement

	// Crowded lists the columns that did not converge (only with AllowCrowded).
	Crowded []int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	States     int
	Columns    int
	Iterations int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := ValidFormats[vizType]; !ok {
		return errs.New(errs.ErrCodeInvalidParameter, "invalid viz_type: %q (must be one of: levels, links)", vizType)
	}
	return nil
}

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(vizType, format string) error {
	if !slices.Contains(ValidFormats[vizType], format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format for %s: %q (must be one of: %v)",
			vizType, format, ValidFormats[vizType])
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	for _, f := range []struct {
		name         string
		value, limit float64
	}{
		{"width", o.Width, MaxWidth},
		{"height", o.Height, MaxHeight},
		{"font size", o.FontSize, MaxFontSize},
		{"scale", o.Scale, MaxScale},
	} {
		if err := checkRange(f.name, f.value, f.limit); err != nil {
			return err
		}
	}
	if slices.Contains(o.Formats, FormatPNG) && max(o.Width, o.Height)*o.Scale > MaxCanvasSide {
		return errs.New(errs.ErrCodeInvalidParameter, "png canvas of %gx%g at scale %g exceeds %d pixels per side",
			o.Width, o.Height, o.Scale, MaxCanvasSide)
	}
	if err := o.Params(levels.Unbounded).Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// checkRange accepts finite values in [0, limit].
func checkRange(name string, v, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.New(errs.ErrCodeInvalidParameter, "%s must be a finite number, got %v", name, v)
	}
	if v < 0 || v > limit {
		return errs.New(errs.ErrCodeInvalidParameter, "%s must be between 0 and %g, got %g", name, limit, v)
	}
	return nil
}

// ApplyDiagram fills unset frame and layout options from the diagram's own
// settings. It must be called before ValidateAndSetDefaults.
func (o *Options) ApplyDiagram(d *diagram.Diagram) {
	if o.Width == 0 {
		o.Width = float64(d.Width)
	}
	if o.Height == 0 {
		o.Height = float64(d.Height)
	}
	if o.FontSize == 0 {
		o.FontSize = float64(d.FontSize)
	}
	if o.MinSpacing == 0 {
		o.MinSpacing = d.MinSpacing
	}
	if o.SpreadFactor == 0 {
		o.SpreadFactor = d.SpreadFactor
	}
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	def := levels.DefaultParams()
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.MinSpacing == 0 {
		o.MinSpacing = def.MinSpacing
	}
	if o.SpreadFactor == 0 {
		o.SpreadFactor = def.SpreadFactor
	}
	if o.IterationFactor == 0 {
		o.IterationFactor = def.IterationFactor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsLinks returns true if this is a links visualization.
func (o *Options) IsLinks() bool {
	return o.VizType == VizLinks
}

// Params returns the layout parameters clamped to the given axis bound.
func (o *Options) Params(bound float64) levels.Params {
	return levels.Params{
		MinSpacing:      o.MinSpacing,
		SpreadFactor:    o.SpreadFactor,
		AxisUpperBound:  bound,
		IterationFactor: o.IterationFactor,
		MaxIterations:   o.MaxIterations,
		Parallel:        o.Parallel,
	}
}

// Frame returns the render frame.
func (o *Options) Frame() render.Frame {
	return render.Frame{
		Width:        o.Width,
		Height:       o.Height,
		FontSize:     o.FontSize,
		HideEnergies: o.HideEnergies,
		HideLinks:    o.HideLinks,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MinSpacing:      o.MinSpacing,
		SpreadFactor:    o.SpreadFactor,
		IterationFactor: o.IterationFactor,
		MaxIterations:   o.MaxIterations,
		AllowCrowded:    o.AllowCrowded,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       o.VizType + "/" + format,
		Width:        o.Width,
		Height:       o.Height,
		FontSize:     o.FontSize,
		HideEnergies: o.HideEnergies,
		HideLinks:    o.HideLinks,
		Layout:       o.LayoutKeyOpts(),
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
