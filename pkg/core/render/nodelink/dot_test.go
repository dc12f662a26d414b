package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
)

func testDiagram() *diagram.Diagram {
	return &diagram.Diagram{States: []diagram.State{
		{Name: "R", Label: "R", Energy: 0, Column: 1, LinksTo: []string{"TS"}},
		{Name: "TS", Label: "TS‡", Energy: 12.5, Column: 2, Color: "red", LinksTo: []string{"P"}},
		{Name: "P", Label: "P", Energy: -3, Column: 3},
		{Name: "P2", Label: "P2", Energy: -1, Column: 3, LabelColor: "#00f"},
	}}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDiagram(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"R" [label="R"]`,
		`"R" -> "TS"`,
		`"TS" -> "P"`,
		`color="red"`,
		`fontcolor="#00f"`,
		"subgraph column_3",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if strings.Count(dot, "rank=same") != 3 {
		t.Errorf("ToDOT() should emit one rank per column:\n%s", dot)
	}
}

func TestToDOTColumnOrder(t *testing.T) {
	dot := ToDOT(testDiagram(), Options{})
	if strings.Index(dot, "column_1") > strings.Index(dot, "column_2") ||
		strings.Index(dot, "column_2") > strings.Index(dot, "column_3") {
		t.Error("columns should be emitted left to right")
	}
}

func TestFmtLabel(t *testing.T) {
	s := testDiagram().States[1]

	if got := fmtLabel(s, false); got != "TS" {
		t.Errorf("fmtLabel() simple = %q, want TS", got)
	}

	label := fmtLabel(s, true)
	for _, want := range []string{"TS\n", "label: TS‡", "energy: 12.50", "column: 2"} {
		if !strings.Contains(label, want) {
			t.Errorf("fmtLabel() detailed = %q, missing %q", label, want)
		}
	}
	if strings.Contains(fmtLabel(testDiagram().States[0], true), "label:") {
		t.Error("fmtLabel() should omit a label equal to the name")
	}
}

func TestFmtAttrs(t *testing.T) {
	if attrs := fmtAttrs(diagram.State{Name: "A"}, "A"); len(attrs) != 1 {
		t.Errorf("fmtAttrs() plain state = %v, want only the label", attrs)
	}
	attrs := fmtAttrs(diagram.State{Name: "A", Color: "red", LabelColor: "blue"}, "A")
	if len(attrs) != 3 {
		t.Errorf("fmtAttrs() coloured state = %v, want 3 attrs", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testDiagram(), Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
