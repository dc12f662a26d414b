package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/matzehuels/energylevels/pkg/core/levels"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Offset is an (x, y) nudge in axis units.
type Offset [2]float64

// State is one energy level as written in a diagram document.
type State struct {
	Name        string   `json:"name" toml:"name" yaml:"name"`
	Label       string   `json:"label,omitempty" toml:"label" yaml:"label,omitempty"`
	Energy      float64  `json:"energy" toml:"energy" yaml:"energy"`
	Column      int      `json:"column" toml:"column" yaml:"column"` // 1-based
	Color       string   `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	LabelColor  string   `json:"label_color,omitempty" toml:"label-color" yaml:"label-color,omitempty"`
	LinksTo     []string `json:"links_to,omitempty" toml:"links-to" yaml:"links-to,omitempty"`
	Legend      string   `json:"legend,omitempty" toml:"legend" yaml:"legend,omitempty"`
	LabelOffset Offset   `json:"label_offset,omitzero" toml:"label-offset" yaml:"label-offset,omitempty"`
	TextOffset  Offset   `json:"text_offset,omitzero" toml:"text-offset" yaml:"text-offset,omitempty"`
}

// ColumnIndex returns the 0-based column the state is laid out in.
func (s State) ColumnIndex() int { return s.Column - 1 }

// Diagram is a complete diagram description.
type Diagram struct {
	Width        int     `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height       int     `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	FontSize     int     `json:"font_size,omitempty" toml:"font-size" yaml:"font-size,omitempty"`
	OutputFile   string  `json:"output_file,omitempty" toml:"output-file" yaml:"output-file,omitempty"`
	EnergyUnits  string  `json:"energy_units,omitempty" toml:"energy-units" yaml:"energy-units,omitempty"`
	MinSpacing   float64 `json:"min_spacing,omitempty" toml:"min-spacing" yaml:"min-spacing,omitempty"`
	SpreadFactor float64 `json:"spread_factor,omitempty" toml:"spread-factor" yaml:"spread-factor,omitempty"`
	States       []State `json:"states" toml:"state" yaml:"states"`

	// Warnings collects recoverable problems found while reading.
	Warnings []string `json:"-" toml:"-" yaml:"-"`
}

// normalize upper-cases names and links, fills in default labels and columns.
// Every reader calls it before returning.
func (d *Diagram) normalize() {
	for i := range d.States {
		s := &d.States[i]
		s.Name = strings.ToUpper(strings.TrimSpace(s.Name))
		if s.Label == "" {
			s.Label = s.Name
		}
		if s.Column == 0 {
			s.Column = 1
		}
		links := s.LinksTo[:0]
		for _, l := range s.LinksTo {
			if l = strings.ToUpper(strings.TrimSpace(l)); l != "" {
				links = append(links, l)
			}
		}
		s.LinksTo = links
		if len(s.LinksTo) == 0 {
			s.LinksTo = nil
		}
	}
}

// Validate checks the diagram before layout. It fails with EMPTY_DIAGRAM when
// there are no states and DUPLICATE_KEY when two states share a name.
func (d *Diagram) Validate() error {
	if len(d.States) == 0 {
		return errs.New(errs.ErrCodeEmptyDiagram, "diagram has no states")
	}

	seen := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if err := errs.ValidateKey(s.Name); err != nil {
			return err
		}
		if seen[s.Name] {
			return errs.New(errs.ErrCodeDuplicateKey, "state %q is already in use", s.Name)
		}
		seen[s.Name] = true

		if s.Column < 1 {
			return errs.New(errs.ErrCodeInvalidInput, "state %q: column must be 1 or greater, got %d", s.Name, s.Column)
		}
		if math.IsNaN(s.Energy) || math.IsInf(s.Energy, 0) {
			return errs.New(errs.ErrCodeInvalidInput, "state %q: energy must be finite", s.Name)
		}
		for _, c := range []string{s.Color, s.LabelColor} {
			if err := errs.ValidateColor(c); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "state %q", s.Name)
			}
		}
	}

	for _, s := range d.States {
		for _, l := range s.LinksTo {
			if !seen[l] {
				return errs.New(errs.ErrCodeInvalidInput, "state %q links to unknown state %q", s.Name, l)
			}
		}
	}

	if d.Width < 0 || d.Height < 0 || d.FontSize < 0 {
		return errs.New(errs.ErrCodeInvalidParameter, "width, height and font size must not be negative")
	}
	if d.MinSpacing < 0 {
		return errs.New(errs.ErrCodeInvalidParameter, "min spacing must not be negative, got %g", d.MinSpacing)
	}
	if d.SpreadFactor != 0 && d.SpreadFactor <= 1 {
		return errs.New(errs.ErrCodeInvalidParameter, "spread factor must be greater than 1, got %g", d.SpreadFactor)
	}
	return nil
}

// Registry validates the diagram and registers one point per state.
func (d *Diagram) Registry() (*levels.Registry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	reg := levels.NewRegistry()
	for _, s := range d.States {
		if _, err := reg.Add(s.Name, s.Energy, s.ColumnIndex()); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// State looks up a state by name (case-insensitive).
func (d *Diagram) State(name string) (State, bool) {
	name = strings.ToUpper(name)
	for _, s := range d.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// Columns returns the number of columns spanned, i.e. the highest column used.
func (d *Diagram) Columns() int {
	n := 0
	for _, s := range d.States {
		n = max(n, s.Column)
	}
	return n
}

// HasLegend reports whether any state carries a legend entry.
func (d *Diagram) HasLegend() bool {
	for _, s := range d.States {
		if s.Legend != "" {
			return true
		}
	}
	return false
}

// WriteJSON writes the diagram as indented JSON.
func (d *Diagram) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// MarshalCanonical returns the compact JSON encoding used for content hashing.
func (d *Diagram) MarshalCanonical() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Diagram) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}
