package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/levels"
	"github.com/matzehuels/energylevels/pkg/core/render"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

const doc = `
energy-units = kcal/mol
{
    name = r
    label = A<B
    energy = 0
    links-to = p
}
{
    name = r2
    energy = 0.05
    color = #c00
}
{
    name = p
    energy = 3
    column = 2
    color = steelblue
    legend = product
}
`

func testScene(t *testing.T, d string) (render.Scene, levels.Result) {
	t.Helper()
	dg, err := diagram.ParseText(strings.NewReader(d))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := dg.Registry()
	if err != nil {
		t.Fatal(err)
	}
	axis := render.Scale(reg)
	p := levels.DefaultParams()
	p.AxisUpperBound = axis.Max
	res, err := levels.Layout(reg, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := render.BuildScene(dg, reg, axis, render.Frame{Width: 400, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	return s, res
}

func TestRenderSVG(t *testing.T) {
	s, _ := testScene(t, doc)
	out := string(RenderSVG(s, WithTitle("profile"), WithBackground("white")))

	for _, want := range []string{
		`<svg`,
		`width="400" height="300"`,
		`<title>profile</title>`,
		`A&lt;B`,
		`3.00`,
		`stroke-dasharray:6,3`,
		`stroke:#c00`,
		`id="legend"`,
		`product`,
		`rotate(-90`,
		`kcal/mol`,
		`font-family:serif`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() output missing %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("RenderSVG() output not closed")
	}
}

func TestRenderSVGFontFamily(t *testing.T) {
	s, _ := testScene(t, doc)
	out := string(RenderSVG(s, WithFontFamily("monospace")))
	if !strings.Contains(out, "font-family:monospace") || strings.Contains(out, "font-family:serif") {
		t.Error("WithFontFamily() not applied to every text")
	}
}

func TestRenderPNG(t *testing.T) {
	s, _ := testScene(t, doc)

	data, err := RenderPNG(s, 2)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("bounds = %v, want 800x600", b)
	}

	// Centre of the first bar, which is black.
	bar := s.Bars[0]
	r, g, b, _ := img.At(int((bar.X1+bar.X2)), int(bar.Y1*2)).RGBA()
	if r > 0x8000 || g > 0x8000 || b > 0x8000 {
		t.Errorf("bar pixel = (%x, %x, %x), want dark", r, g, b)
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0xffff {
		t.Error("background should be white")
	}
}

func TestRenderPNGUnknownColor(t *testing.T) {
	s, _ := testScene(t, strings.Replace(doc, "steelblue", "notacolour", 1))
	if _, err := RenderPNG(s, 1); !errs.Is(err, errs.ErrCodeInvalidColor) {
		t.Errorf("RenderPNG() error = %v, want %s", err, errs.ErrCodeInvalidColor)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#ff0000", 0xff, 0, 0, true},
		{"#0F0", 0, 0xff, 0, true},
		{"black", 0, 0, 0, true},
		{"SteelBlue", 0x46, 0x82, 0xb4, true},
		{"#12345", 0, 0, 0, false},
		{"nosuchcolor", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if !tt.ok {
				if err == nil {
					t.Errorf("ParseColor(%q) = %v, want error", tt.in, c)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			r, g, b, _ := c.RGBA()
			if uint8(r>>8) != tt.r || uint8(g>>8) != tt.g || uint8(b>>8) != tt.b {
				t.Errorf("ParseColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.in, r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	s, res := testScene(t, doc)

	data, err := RenderJSON(s, WithResult(res), WithWarnings([]string{"line 3: something"}))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(e.States) != 3 || e.States[0].Key != "R" {
		t.Fatalf("States = %+v", e.States)
	}
	if !e.States[0].Moved || e.States[0].LabelPosition >= 0 {
		t.Errorf("R should have been pushed down: %+v", e.States[0])
	}
	if len(e.Columns) != 2 || e.Columns[0].Status != levels.Converged {
		t.Errorf("Columns = %+v", e.Columns)
	}
	if e.Crowded || e.Units != "kcal/mol" || len(e.Warnings) != 1 {
		t.Errorf("export = crowded %v units %q warnings %v", e.Crowded, e.Units, e.Warnings)
	}
	if !strings.Contains(string(data), `"status": "converged"`) {
		t.Error("status should be encoded as text")
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	s, _ := testScene(t, doc)
	data, err := RenderPDF(context.Background(), s)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("RenderPDF() output is not a PDF")
	}
}
