package levels

import (
	"math"
	"slices"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Registry owns every point of a diagram. Points are kept in registration
// order and indexed by key; the layout mutates label positions in place
// through the same pointers the registry hands out.
type Registry struct {
	points []*Point
	index  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers a point with its label on its bar.
// Duplicate keys fail with DUPLICATE_KEY, a negative column or a non-finite
// energy with INVALID_INPUT.
func (r *Registry) Add(key string, energy float64, column int) (*Point, error) {
	if _, ok := r.index[key]; ok {
		return nil, errs.New(errs.ErrCodeDuplicateKey, "state %q is already in use", key)
	}
	if column < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "state %q: column must be non-negative, got %d", key, column)
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "state %q: energy must be finite", key)
	}

	p := &Point{key: key, energy: energy, column: column, label: energy}
	r.index[key] = len(r.points)
	r.points = append(r.points, p)
	return p, nil
}

// Point looks up a point by key.
func (r *Registry) Point(key string) (*Point, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.points[i], true
}

// Points returns all points in registration order.
// The slice is a copy; the points are shared with the registry.
func (r *Registry) Points() []*Point {
	return slices.Clone(r.points)
}

// Len returns the number of registered points.
func (r *Registry) Len() int { return len(r.points) }

// Reset puts every label back on its bar.
func (r *Registry) Reset() {
	for _, p := range r.points {
		p.label = p.energy
	}
}

// EnergyRange returns the lowest and highest energy in the registry.
// It returns zeros for an empty registry.
func (r *Registry) EnergyRange() (lo, hi float64) {
	for i, p := range r.points {
		if i == 0 || p.energy < lo {
			lo = p.energy
		}
		if i == 0 || p.energy > hi {
			hi = p.energy
		}
	}
	return lo, hi
}
