package levels

import (
	"cmp"
	"slices"
)

// Detection is the outcome of one crowding check over a column.
// Crowded[i] belongs to Points[i]. The flags describe the positions at the
// time of the check and go stale as soon as any label moves.
type Detection struct {
	Points  []*Point
	Crowded []bool
	Any     bool
}

// Detect sorts a column and flags every label that sits closer than
// minSpacing to one of its neighbours. A label is crowded if either of its two
// neighbour checks fails.
//
// The returned order is the column's order by label position, with energy
// then key breaking ties. Points are sorted by energy, then key: labels never
// swap places relative to their bars, so the two orders agree, and sorting by
// energy keeps that true even while a run is mid-move.
func Detect(points []*Point, minSpacing float64) Detection {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, compareEnergy)

	d := Detection{Points: sorted, Crowded: make([]bool, len(sorted))}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].label+minSpacing > sorted[i].label {
			d.Crowded[i-1] = true
			d.Crowded[i] = true
			d.Any = true
		}
	}
	return d
}

func compareEnergy(a, b *Point) int {
	if c := cmp.Compare(a.energy, b.energy); c != 0 {
		return c
	}
	return cmp.Compare(a.key, b.key)
}

// Run is a maximal range [First, Last] of consecutive crowded points.
type Run struct {
	First, Last int
}

// Len returns the number of points in the run.
func (r Run) Len() int { return r.Last - r.First + 1 }

// Runs returns the crowded runs of the detection in ascending order.
func (d Detection) Runs() []Run {
	var runs []Run
	for i := 0; i < len(d.Crowded); i++ {
		if !d.Crowded[i] {
			continue
		}
		first := i
		for i+1 < len(d.Crowded) && d.Crowded[i+1] {
			i++
		}
		runs = append(runs, Run{First: first, Last: i})
	}
	return runs
}
