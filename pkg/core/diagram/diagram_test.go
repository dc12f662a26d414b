package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		states []State
		code   errs.Code
	}{
		{"empty", nil, errs.ErrCodeEmptyDiagram},
		{"duplicate", []State{{Name: "A", Column: 1}, {Name: "A", Column: 2}}, errs.ErrCodeDuplicateKey},
		{"empty name", []State{{Name: "", Column: 1}}, errs.ErrCodeInvalidInput},
		{"bad column", []State{{Name: "A", Column: 0}}, errs.ErrCodeInvalidInput},
		{"bad color", []State{{Name: "A", Column: 1, Color: "rgb(1,2,3)"}}, errs.ErrCodeInvalidInput},
		{"unknown link", []State{{Name: "A", Column: 1, LinksTo: []string{"B"}}}, errs.ErrCodeInvalidInput},
		{"valid", []State{{Name: "A", Column: 1, LinksTo: []string{"B"}}, {Name: "B", Column: 1}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Diagram{States: tt.states}
			err := d.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	states := []State{{Name: "A", Column: 1}}
	tests := []struct {
		name string
		d    Diagram
		ok   bool
	}{
		{"defaults", Diagram{States: states}, true},
		{"negative width", Diagram{Width: -1, States: states}, false},
		{"spread factor one", Diagram{SpreadFactor: 1, States: states}, false},
		{"spread factor set", Diagram{SpreadFactor: 1.2, States: states}, true},
		{"negative spacing", Diagram{MinSpacing: -0.1, States: states}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errs.Is(err, errs.ErrCodeInvalidParameter) {
				t.Errorf("Validate() error = %v, want %s", err, errs.ErrCodeInvalidParameter)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	d, err := ParseText(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	reg, err := d.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	p, ok := reg.Point("TS1")
	if !ok {
		t.Fatal("TS1 not registered")
	}
	if p.Column() != 1 || p.Energy() != 42.5 {
		t.Errorf("TS1 point = column %d energy %v, want 1 and 42.5", p.Column(), p.Energy())
	}

	if _, err := (&Diagram{}).Registry(); !errs.Is(err, errs.ErrCodeEmptyDiagram) {
		t.Errorf("empty Registry() error = %v", err)
	}
}

func TestDiagramHelpers(t *testing.T) {
	d, err := ParseText(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Columns(); got != 3 {
		t.Errorf("Columns() = %d, want 3", got)
	}
	if !d.HasLegend() {
		t.Error("HasLegend() = false, want true")
	}
	if s, ok := d.State("ts1"); !ok || s.Energy != 42.5 {
		t.Errorf("State(ts1) = %+v, %v", s, ok)
	}
}

func TestReadFormats(t *testing.T) {
	tomlDoc := `
width = 500
energy-units = "eV"

[[state]]
name = "gs"
energy = -1.0
column = 1
links-to = ["ex"]

[[state]]
name = "ex"
energy = 2.5
column = 1
label = "S1"
label-offset = [0.5, 0.0]
`
	yamlDoc := `
width: 500
energy-units: eV
states:
  - name: gs
    energy: -1.0
    column: 1
    links-to: [ex]
  - name: ex
    energy: 2.5
    column: 1
    label: S1
    label-offset: [0.5, 0.0]
`
	jsonDoc := `{"width": 500, "energy_units": "eV", "states": [
  {"name": "gs", "energy": -1.0, "column": 1, "links_to": ["ex"]},
  {"name": "ex", "energy": 2.5, "column": 1, "label": "S1", "label_offset": [0.5, 0]}
]}`

	tests := []struct {
		format Format
		doc    string
	}{
		{FormatTOML, tomlDoc},
		{FormatYAML, yamlDoc},
		{FormatJSON, jsonDoc},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			d, err := Read(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if d.Width != 500 || d.EnergyUnits != "eV" {
				t.Errorf("settings = %d %q", d.Width, d.EnergyUnits)
			}
			if len(d.States) != 2 {
				t.Fatalf("len(States) = %d, want 2", len(d.States))
			}
			gs, ex := d.States[0], d.States[1]
			if gs.Name != "GS" || gs.Label != "GS" || len(gs.LinksTo) != 1 || gs.LinksTo[0] != "EX" {
				t.Errorf("gs = %+v", gs)
			}
			if ex.Label != "S1" || ex.Energy != 2.5 || ex.LabelOffset != (Offset{0.5, 0}) {
				t.Errorf("ex = %+v", ex)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json"), FormatJSON); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad JSON error = %v", err)
	}
	if _, err := Read(strings.NewReader(""), Format("xml")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := ParseText(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := d.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	back, err := Read(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	a, _ := d.MarshalCanonical()
	b, _ := back.MarshalCanonical()
	if !bytes.Equal(a, b) {
		t.Errorf("round trip changed the diagram:\n%s\n%s", a, b)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d.yml")
	if err := os.WriteFile(path, []byte("states:\n  - name: a\n    energy: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(d.States) != 1 || d.States[0].Column != 1 {
		t.Errorf("States = %+v", d.States)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.lvl")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML, "a.YAML": FormatYAML, "a.yml": FormatYAML,
		"a.json": FormatJSON, "a.lvl": FormatText, "a": FormatText,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}

	if got := FormatForMediaType("application/json; charset=utf-8"); got != FormatJSON {
		t.Errorf("FormatForMediaType(json) = %q", got)
	}
	if got := FormatForMediaType("text/plain"); got != FormatText {
		t.Errorf("FormatForMediaType(text/plain) = %q", got)
	}
}
