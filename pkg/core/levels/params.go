package levels

import (
	"math"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

const (
	// DefaultMinSpacing is the height of one line of label text in axis units.
	DefaultMinSpacing = 0.12

	// DefaultSpreadFactor widens each slot of a redistributed run beyond the
	// bare minimum spacing.
	DefaultSpreadFactor = 1.4

	// DefaultIterationFactor multiplies a column's point count to give its
	// iteration cap.
	DefaultIterationFactor = 4

	// minIterations is the smallest cap any column gets.
	minIterations = 8
)

// Unbounded is an axis roof that never clamps.
var Unbounded = math.Inf(1)

// Params configures the label layout.
type Params struct {
	// MinSpacing is the smallest allowed vertical gap between adjacent labels.
	MinSpacing float64 `json:"min_spacing"`

	// SpreadFactor (> 1) scales MinSpacing when a crowded run is spread out.
	SpreadFactor float64 `json:"spread_factor"`

	// AxisUpperBound is the top of the visible axis. No label of a
	// redistributed run is left above it. Use Unbounded when there is no roof.
	AxisUpperBound float64 `json:"axis_upper_bound"`

	// IterationFactor sets the per-column cap to IterationFactor * points
	// (at least 8). Zero means DefaultIterationFactor.
	IterationFactor int `json:"iteration_factor,omitempty"`

	// MaxIterations, when positive, overrides the computed cap.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Parallel lays out columns concurrently.
	Parallel bool `json:"parallel,omitempty"`
}

// DefaultParams returns the default spacing with no axis roof.
func DefaultParams() Params {
	return Params{
		MinSpacing:      DefaultMinSpacing,
		SpreadFactor:    DefaultSpreadFactor,
		AxisUpperBound:  Unbounded,
		IterationFactor: DefaultIterationFactor,
	}
}

// Validate checks that the parameters describe a usable layout.
func (p Params) Validate() error {
	if !(p.MinSpacing > 0) || math.IsInf(p.MinSpacing, 0) {
		return errs.New(errs.ErrCodeInvalidParameter, "min spacing must be a positive number, got %v", p.MinSpacing)
	}
	if !(p.SpreadFactor > 1) || math.IsInf(p.SpreadFactor, 0) {
		return errs.New(errs.ErrCodeInvalidParameter, "spread factor must be greater than 1, got %v", p.SpreadFactor)
	}
	if math.IsNaN(p.AxisUpperBound) {
		return errs.New(errs.ErrCodeInvalidParameter, "axis upper bound is NaN")
	}
	if p.IterationFactor < 0 || p.MaxIterations < 0 {
		return errs.New(errs.ErrCodeInvalidParameter, "iteration limits must not be negative")
	}
	return nil
}

// step is the slot height of one member of a redistributed run.
func (p Params) step() float64 { return p.MinSpacing * p.SpreadFactor }

// iterationCap returns the number of resolve passes a column of n points may take.
func (p Params) iterationCap(n int) int {
	if p.MaxIterations > 0 {
		return p.MaxIterations
	}
	factor := p.IterationFactor
	if factor == 0 {
		factor = DefaultIterationFactor
	}
	return max(minIterations, factor*n)
}
