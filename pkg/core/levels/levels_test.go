package levels

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tolerance }

// column builds a registry with all given energies in column 0, keyed S0, S1, ...
func column(t *testing.T, energies ...float64) *Registry {
	t.Helper()
	r := NewRegistry()
	for i, e := range energies {
		if _, err := r.Add(keyOf(i), e, 0); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return r
}

func keyOf(i int) string {
	return "S" + string(rune('A'+i/26)) + string(rune('A'+i%26))
}

func labels(r *Registry) []float64 {
	pts := r.Points()
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.LabelPosition()
	}
	return out
}

func params(bound float64) Params {
	p := DefaultParams()
	p.AxisUpperBound = bound
	return p
}
