package levels

// Resolve spreads every crowded run of d evenly around the run's midpoint and
// then shifts it down as a whole if its top edge pokes above the axis roof.
// It returns the number of runs moved.
//
// Each run is moved once per call. Moving a run can crowd a previously clear
// neighbour, so Resolve is meant to be driven by [Layout] until [Detect]
// finds nothing left; the flags in d are stale once it returns.
func Resolve(d Detection, p Params) int {
	runs := d.Runs()
	for _, run := range runs {
		spread(d.Points, run, p)
		clamp(d.Points, run, p)
	}
	return len(runs)
}

// spread places the run's labels one slot apart, centred on the midpoint
// between the lowest label and the top edge of the highest one.
func spread(points []*Point, run Run, p Params) {
	bottom := points[run.First].label
	top := points[run.Last].label + p.MinSpacing
	middle := (bottom + top) / 2

	step := p.step()
	demand := float64(run.Len()) * step
	start := middle - demand/2

	for i := run.First; i <= run.Last; i++ {
		points[i].label = start + float64(i-run.First)*step
	}
}

// clamp moves the whole run down until its top edge touches the roof.
func clamp(points []*Point, run Run, p Params) {
	overflow := points[run.Last].label + p.MinSpacing - p.AxisUpperBound
	if overflow <= 0 {
		return
	}
	for i := run.First; i <= run.Last; i++ {
		points[i].label -= overflow
	}
}
