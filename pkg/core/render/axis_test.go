package render

import (
	"math"
	"testing"
)

func TestScaleRange(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi         float64
		min, max, step float64
	}{
		{"unit", 0, 1, -0.25, 1.25, 0.25},
		{"three", 0, 3, -1, 4, 1},
		{"flat", 5, 5, 2, 8, 1},
		{"mixed sign", -10.25, 42.5, -20, 60, 20},
		{"swapped", 3, 0, -1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ScaleRange(tt.lo, tt.hi)
			if !near(a.Min, tt.min) || !near(a.Max, tt.max) || !near(a.Step, tt.step) {
				t.Errorf("ScaleRange(%v, %v) = [%v, %v] step %v, want [%v, %v] step %v",
					tt.lo, tt.hi, a.Min, a.Max, a.Step, tt.min, tt.max, tt.step)
			}
		})
	}
}

func TestScaleRangeProperties(t *testing.T) {
	ranges := [][2]float64{{0, 0.05}, {-1e4, 3e4}, {0.001, 0.002}, {-7, -3}, {123.4, 567.8}}
	for _, r := range ranges {
		a := ScaleRange(r[0], r[1])
		if a.Min > r[0] || a.Max < r[1] {
			t.Errorf("ScaleRange(%v) = [%v, %v] does not cover the range", r, a.Min, a.Max)
		}
		if len(a.Ticks) < 2 {
			t.Fatalf("ScaleRange(%v) has %d ticks", r, len(a.Ticks))
		}
		if !near(a.Ticks[0], a.Min) || !near(a.Ticks[len(a.Ticks)-1], a.Max) {
			t.Errorf("ScaleRange(%v) ticks %v do not span [%v, %v]", r, a.Ticks, a.Min, a.Max)
		}
		for i := 1; i < len(a.Ticks); i++ {
			if !near(a.Ticks[i]-a.Ticks[i-1], a.Step) {
				t.Errorf("ScaleRange(%v) uneven ticks %v", r, a.Ticks)
				break
			}
		}
	}
}

func TestNiceStep(t *testing.T) {
	tests := map[float64]float64{
		0.22: 0.25, 0.66: 1, 1: 1, 1.5: 2, 3: 5, 11.6: 20, 0.0042: 0.005,
	}
	for raw, want := range tests {
		if got := niceStep(raw); !near(got, want) {
			t.Errorf("niceStep(%v) = %v, want %v", raw, got, want)
		}
	}
}

func TestTickLabel(t *testing.T) {
	a := Axis{Step: 0.1}
	if got := a.TickLabel(0.1 + 0.2); got != "0.3" {
		t.Errorf("TickLabel(0.1+0.2) = %q, want 0.3", got)
	}
	if got := a.TickLabel(-1e-17); got != "0" {
		t.Errorf("TickLabel(-1e-17) = %q, want 0", got)
	}
	if got := (Axis{Step: 20}).TickLabel(-20); got != "-20" {
		t.Errorf("TickLabel(-20) = %q", got)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
