package levels

import "testing"

func TestResolveTwoPoints(t *testing.T) {
	// bottom 1.00, top 1.14, middle 1.07, demand 0.336
	r := column(t, 1.00, 1.02)
	d := Detect(r.Points(), DefaultMinSpacing)

	if n := Resolve(d, params(Unbounded)); n != 1 {
		t.Errorf("Resolve() moved %d runs, want 1", n)
	}

	want := []float64{0.902, 1.070}
	for i, got := range labels(r) {
		if !approx(got, want[i]) {
			t.Errorf("label[%d] = %.6f, want %.6f", i, got, want[i])
		}
	}
}

func TestResolveThreePoints(t *testing.T) {
	r := column(t, 1.00, 1.01, 1.02)
	d := Detect(r.Points(), DefaultMinSpacing)
	Resolve(d, params(Unbounded))

	want := []float64{0.818, 0.986, 1.154}
	got := labels(r)
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("label[%d] = %.6f, want %.6f", i, got[i], want[i])
		}
	}

	// Centred on the run's original midpoint
	mid := (got[0] + got[2] + DefaultMinSpacing*DefaultSpreadFactor) / 2
	if !approx(mid, 1.07) {
		t.Errorf("run centre = %.6f, want 1.07", mid)
	}
}

func TestResolveClampsToRoof(t *testing.T) {
	r := column(t, 0.90, 0.92)
	d := Detect(r.Points(), DefaultMinSpacing)
	Resolve(d, params(1.00))

	got := labels(r)
	top := got[1] + DefaultMinSpacing
	if !approx(top, 1.00) {
		t.Errorf("run top = %.6f, want 1.00", top)
	}
	if gap := got[1] - got[0]; !approx(gap, DefaultMinSpacing*DefaultSpreadFactor) {
		t.Errorf("internal spacing = %.6f, want %.6f", gap, DefaultMinSpacing*DefaultSpreadFactor)
	}
	if !approx(got[0], 0.712) || !approx(got[1], 0.880) {
		t.Errorf("labels = %v, want [0.712 0.880]", got)
	}
}

func TestResolveLeavesUncrowdedAlone(t *testing.T) {
	r := column(t, 0, 0.01, 2)
	d := Detect(r.Points(), DefaultMinSpacing)
	Resolve(d, params(Unbounded))

	p, _ := r.Point(keyOf(2))
	if p.Moved() {
		t.Errorf("uncrowded point moved to %v", p.LabelPosition())
	}
}

func TestResolveEachRunIndependently(t *testing.T) {
	r := column(t, 0, 0.01, 5, 5.01)
	d := Detect(r.Points(), DefaultMinSpacing)

	if n := Resolve(d, params(Unbounded)); n != 2 {
		t.Fatalf("Resolve() moved %d runs, want 2", n)
	}
	got := labels(r)
	if !approx(got[1]-got[0], 0.168) || !approx(got[3]-got[2], 0.168) {
		t.Errorf("labels = %v, want two runs spaced 0.168 apart", got)
	}
	if got[2] < 4.5 {
		t.Errorf("second run moved toward the first: %v", got)
	}
}
