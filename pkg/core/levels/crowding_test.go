package levels

import (
	"slices"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		energies []float64
		want     []bool
		wantAny  bool
	}{
		{
			name:     "single point",
			energies: []float64{1},
			want:     []bool{false},
		},
		{
			name:     "well separated",
			energies: []float64{0, 0.5, 1},
			want:     []bool{false, false, false},
		},
		{
			name:     "exactly min spacing apart",
			energies: []float64{0, 0.125},
			want:     []bool{false, false},
		},
		{
			name:     "one crowded pair",
			energies: []float64{1.00, 1.02},
			want:     []bool{true, true},
			wantAny:  true,
		},
		{
			name:     "crowded flag is not cleared by the next neighbour",
			energies: []float64{0, 0.05, 1},
			want:     []bool{true, true, false},
			wantAny:  true,
		},
		{
			name:     "two separate pairs",
			energies: []float64{0, 0.01, 1, 1.01},
			want:     []bool{true, true, true, true},
			wantAny:  true,
		},
		{
			name:     "unsorted input",
			energies: []float64{1.05, 3, 1},
			want:     []bool{true, true, false},
			wantAny:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := column(t, tt.energies...)
			d := Detect(r.Points(), DefaultMinSpacing)

			if !slices.Equal(d.Crowded, tt.want) {
				t.Errorf("Crowded = %v, want %v", d.Crowded, tt.want)
			}
			if d.Any != tt.wantAny {
				t.Errorf("Any = %v, want %v", d.Any, tt.wantAny)
			}
			for i := 1; i < len(d.Points); i++ {
				if d.Points[i-1].Energy() > d.Points[i].Energy() {
					t.Errorf("Points not sorted at %d: %v > %v", i, d.Points[i-1].Energy(), d.Points[i].Energy())
				}
			}
		})
	}
}

func TestDetectTiesBrokenByKey(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"C", "A", "B"} {
		if _, err := r.Add(k, 1, 0); err != nil {
			t.Fatal(err)
		}
	}

	d := Detect(r.Points(), DefaultMinSpacing)
	var keys []string
	for _, p := range d.Points {
		keys = append(keys, p.Key())
	}
	if !slices.Equal(keys, []string{"A", "B", "C"}) {
		t.Errorf("order = %v, want [A B C]", keys)
	}
}

func TestDetectOrderIsLabelOrder(t *testing.T) {
	r := column(t, 0, 0.01, 0.02, 0.95, 0.96, 0.97)
	p := params(1.0)

	for pass := 0; pass < 20; pass++ {
		d := Detect(r.Points(), p.MinSpacing)
		for i := 1; i < len(d.Points); i++ {
			if d.Points[i-1].LabelPosition() > d.Points[i].LabelPosition()+tolerance {
				t.Fatalf("pass %d: label %v sorted before %v", pass,
					d.Points[i-1].LabelPosition(), d.Points[i].LabelPosition())
			}
		}
		if !d.Any {
			return
		}
		Resolve(d, p)
	}
	t.Fatal("column did not settle in 20 passes")
}

func TestDetectDoesNotMutate(t *testing.T) {
	r := column(t, 1.02, 1.00)
	in := r.Points()
	Detect(in, DefaultMinSpacing)

	if in[0].Energy() != 1.02 {
		t.Error("Detect() should not reorder its input slice")
	}
	for _, p := range in {
		if p.Moved() {
			t.Error("Detect() should not move labels")
		}
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name    string
		crowded []bool
		want    []Run
	}{
		{"none", []bool{false, false}, nil},
		{"all", []bool{true, true, true}, []Run{{0, 2}}},
		{"two runs", []bool{true, true, false, true, true}, []Run{{0, 1}, {3, 4}}},
		{"run at end", []bool{false, true, true}, []Run{{1, 2}}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detection{Crowded: tt.crowded}.Runs()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Runs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunLen(t *testing.T) {
	if got := (Run{First: 2, Last: 4}).Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
