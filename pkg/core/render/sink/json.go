package sink

import (
	"encoding/json"

	"github.com/matzehuels/energylevels/pkg/core/levels"
	"github.com/matzehuels/energylevels/pkg/core/render"
)

// Export is the JSON form of a laid-out diagram.
type Export struct {
	Width    float64               `json:"width,omitempty"`
	Height   float64               `json:"height,omitempty"`
	Units    string                `json:"units,omitempty"`
	Axis     render.Axis           `json:"axis"`
	States   []render.Placement    `json:"states"`
	Columns  []levels.ColumnResult `json:"columns,omitempty"`
	Crowded  bool                  `json:"crowded"`
	Warnings []string              `json:"warnings,omitempty"`
}

type JSONOption func(*Export)

// WithResult adds per-column layout outcomes.
func WithResult(res levels.Result) JSONOption {
	return func(e *Export) {
		e.Columns = res.Columns
		e.Crowded = !res.Converged()
	}
}

// WithWarnings records reader warnings in the export.
func WithWarnings(w []string) JSONOption {
	return func(e *Export) { e.Warnings = w }
}

// BuildExport collects the placements of a scene.
func BuildExport(s render.Scene, opts ...JSONOption) Export {
	e := ExportLayout(s.Axis, s.Units, s.Placements, opts...)
	e.Width, e.Height = s.Width, s.Height
	return e
}

// ExportLayout builds an export without pixel geometry.
func ExportLayout(axis render.Axis, units string, states []render.Placement, opts ...JSONOption) Export {
	e := Export{
		Units:  units,
		Axis:   axis,
		States: states,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// RenderJSON encodes the export as indented JSON.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	return json.MarshalIndent(BuildExport(s, opts...), "", "  ")
}
