package render

import (
	"math"
	"strconv"

	"github.com/matzehuels/energylevels/pkg/core/levels"
)

const (
	axisPadding = 0.05 // fraction of the energy span added above and below
	targetTicks = 5
)

// niceSteps are the tick step mantissas tried in order.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// Axis is the vertical energy axis in energy units.
type Axis struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Step  float64   `json:"step"`
	Ticks []float64 `json:"ticks"`
}

// Span returns Max - Min.
func (a Axis) Span() float64 { return a.Max - a.Min }

// TickLabel formats a tick value without floating point noise.
func (a Axis) TickLabel(v float64) string {
	if a.Step > 0 {
		v = math.Round(v/a.Step*1e6) / 1e6 * a.Step
	}
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Scale computes the axis for every point in the registry.
// An empty registry gets the unit axis [0, 1].
func Scale(r *levels.Registry) Axis {
	if r == nil || r.Len() == 0 {
		return ScaleRange(0, 1)
	}
	return ScaleRange(r.EnergyRange())
}

// ScaleRange pads [lo, hi] by 5% of the span and rounds both ends outward
// to a multiple of a nice tick step (1, 2, 2.5 or 5 times a power of ten).
func ScaleRange(lo, hi float64) Axis {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 {
		span = max(math.Abs(lo), 1)
		lo, hi = lo-span/2, hi+span/2
	} else {
		lo, hi = lo-axisPadding*span, hi+axisPadding*span
	}

	step := niceStep((hi - lo) / targetTicks)
	a := Axis{
		Min:  math.Floor(lo/step) * step,
		Max:  math.Ceil(hi/step) * step,
		Step: step,
	}
	n := int(math.Round((a.Max - a.Min) / step))
	a.Ticks = make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a.Ticks = append(a.Ticks, a.Min+float64(i)*step)
	}
	return a
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	for _, m := range niceSteps {
		if frac <= m+1e-9 {
			return m * base
		}
	}
	return 10 * base
}
