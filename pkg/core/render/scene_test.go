package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/levels"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

const sceneDoc = `
energy-units = eV
{
    name = a
    energy = 0
    links-to = c
}
{
    name = b
    energy = 0.05
    color = red
}
{
    name = c
    energy = 3
    column = 2
    legend = product
}
`

func laidOut(t *testing.T, doc string) (*diagram.Diagram, *levels.Registry, Axis) {
	t.Helper()
	d, err := diagram.ParseText(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := d.Registry()
	if err != nil {
		t.Fatal(err)
	}
	axis := Scale(reg)
	p := levels.DefaultParams()
	p.AxisUpperBound = axis.Max
	if _, err := levels.Layout(reg, p); err != nil {
		t.Fatal(err)
	}
	return d, reg, axis
}

func TestBuildScene(t *testing.T) {
	d, reg, axis := laidOut(t, sceneDoc)

	s, err := BuildScene(d, reg, axis, Frame{})
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}

	if s.Width != DefaultWidth || s.Height != DefaultHeight || s.FontSize != DefaultFontSize {
		t.Errorf("frame = %vx%v font %v, want defaults", s.Width, s.Height, s.FontSize)
	}
	if len(s.Bars) != 3 || len(s.Labels) != 3 || len(s.Energies) != 3 || len(s.Placements) != 3 {
		t.Fatalf("bars/labels/energies/placements = %d/%d/%d/%d, want 3 each",
			len(s.Bars), len(s.Labels), len(s.Energies), len(s.Placements))
	}

	// A and B are crowded and both move; C stays put.
	if len(s.Connectors) != 4 {
		t.Errorf("len(Connectors) = %d, want 4", len(s.Connectors))
	}
	for i, key := range []string{"A", "B", "C"} {
		if s.Placements[i].Key != key {
			t.Errorf("Placements[%d].Key = %q, want %q", i, s.Placements[i].Key, key)
		}
	}
	if !s.Placements[0].Moved || !s.Placements[1].Moved || s.Placements[2].Moved {
		t.Errorf("moved flags = %v %v %v", s.Placements[0].Moved, s.Placements[1].Moved, s.Placements[2].Moved)
	}

	// Bars sit at their energies; A and B share a y, C is higher up.
	if s.Bars[0].Y1 != s.Bars[0].Y2 {
		t.Error("bars must be horizontal")
	}
	if !(s.Bars[2].Y1 < s.Bars[0].Y1) {
		t.Errorf("bar C (y=%v) should be above bar A (y=%v)", s.Bars[2].Y1, s.Bars[0].Y1)
	}
	if !(s.Bars[2].X1 > s.Bars[0].X2) {
		t.Error("column 2 should be right of column 1")
	}
	if s.Bars[1].Color != "red" || s.Labels[1].Color != "red" {
		t.Errorf("state colour not applied: bar %q label %q", s.Bars[1].Color, s.Labels[1].Color)
	}

	// Label B was pushed above label A.
	if !(s.Labels[1].Y < s.Labels[0].Y) {
		t.Errorf("label B (y=%v) should be above label A (y=%v)", s.Labels[1].Y, s.Labels[0].Y)
	}
	if s.Energies[1].Text != "0.05" || s.Energies[2].Text != "3.00" {
		t.Errorf("energy texts = %q %q", s.Energies[1].Text, s.Energies[2].Text)
	}

	if len(s.Links) != 1 || !s.Links[0].Dashed {
		t.Fatalf("Links = %+v, want one dashed link", s.Links)
	}
	if s.Links[0].X1 != s.Bars[0].X2 || s.Links[0].X2 != s.Bars[2].X1 {
		t.Error("link should join the facing bar ends")
	}

	if len(s.Legend) != 1 || s.Legend[0].Text.Text != "product" {
		t.Errorf("Legend = %+v", s.Legend)
	}

	var units bool
	for _, txt := range s.AxisText {
		units = units || txt.Text == "eV"
	}
	if !units {
		t.Error("axis units label missing")
	}
	if len(s.AxisLines) != len(axis.Ticks)+1 {
		t.Errorf("len(AxisLines) = %d, want %d", len(s.AxisLines), len(axis.Ticks)+1)
	}
}

func TestBuildSceneInsidePlot(t *testing.T) {
	d, reg, axis := laidOut(t, sceneDoc)
	s, err := BuildScene(d, reg, axis, Frame{Width: 400, Height: 300, FontSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	p := s.Plot
	for _, b := range s.Bars {
		if b.X1 < p.X || b.X2 > p.X+p.W || b.Y1 < p.Y || b.Y1 > p.Y+p.H {
			t.Errorf("bar %+v outside plot %+v", b, p)
		}
	}
}

func TestBuildSceneHide(t *testing.T) {
	d, reg, axis := laidOut(t, sceneDoc)
	s, err := BuildScene(d, reg, axis, Frame{HideEnergies: true, HideLinks: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Energies) != 0 || len(s.Links) != 0 {
		t.Errorf("energies/links = %d/%d, want none", len(s.Energies), len(s.Links))
	}
	if len(s.Connectors) != 2 {
		t.Errorf("len(Connectors) = %d, want only the bar-to-label segments", len(s.Connectors))
	}
}

func TestBuildSceneErrors(t *testing.T) {
	d, reg, _ := laidOut(t, sceneDoc)

	if _, err := BuildScene(d, levels.NewRegistry(), Axis{Min: 0, Max: 1}, Frame{}); !errs.Is(err, errs.ErrCodeEmptyDiagram) {
		t.Errorf("empty registry error = %v", err)
	}
	if _, err := BuildScene(d, reg, Axis{Min: 1, Max: 1}, Frame{}); !errs.Is(err, errs.ErrCodeInvalidParameter) {
		t.Errorf("zero span error = %v", err)
	}
}

func TestPlacements(t *testing.T) {
	d, reg, _ := laidOut(t, sceneDoc)
	ps := Placements(d, reg)
	if len(ps) != 3 {
		t.Fatalf("len(Placements) = %d, want 3", len(ps))
	}
	a, b := ps[0], ps[1]
	if a.Column != 0 || a.Energy != 0 || !a.Moved {
		t.Errorf("A = %+v", a)
	}
	if b.LabelPosition-a.LabelPosition < levels.DefaultMinSpacing {
		t.Errorf("labels A and B still overlap: %v, %v", a.LabelPosition, b.LabelPosition)
	}
	if b.Shift != b.LabelPosition-b.Energy {
		t.Errorf("B shift = %v", b.Shift)
	}
}

func TestFormatEnergy(t *testing.T) {
	tests := map[float64]string{0: "0.00", -10.254: "-10.25", 42.5: "42.50"}
	for e, want := range tests {
		if got := FormatEnergy(e); got != want {
			t.Errorf("FormatEnergy(%v) = %q, want %q", e, got, want)
		}
	}
}
