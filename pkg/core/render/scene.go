package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/levels"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Slot geometry, in fractions of the column width measured from the left
// edge of a column slot.
const (
	barLeft     = 2.0 / 7.0
	barRight    = 4.0 / 7.0
	labelX      = 5.0 / 7.0
	energyX     = -1.75 / 7.0
	energyRight = 1.1 / 7.0
	connBarL    = 1.85 / 7.0
	connBarR    = 4.15 / 7.0
	connLabel   = 4.85 / 7.0
	slotStride  = 1.5
)

// Frame defaults, used when neither the options nor the diagram set a value.
// Widths and heights are in pixels, DefaultColumnWidth in axis units, and
// DefaultColor applies to bars and labels without their own colour.
const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultFontSize    = 12
	DefaultColumnWidth = 1.0
	DefaultColor       = "black"

	barStroke       = 3.0
	connectorStroke = 0.5
	linkStroke      = 1.0
	axisStroke      = 1.0
	tickLength      = 5.0
)

// LinkDash is the dash pattern of link lines, ink then skip, in pixels.
var LinkDash = [2]float64{6, 3}

// Frame configures the output canvas.
type Frame struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	FontSize     float64 `json:"font_size"`
	ColumnWidth  float64 `json:"column_width"`
	HideEnergies bool    `json:"hide_energies,omitempty"`
	HideLinks    bool    `json:"hide_links,omitempty"`
}

func (f *Frame) setDefaults() {
	if f.Width <= 0 {
		f.Width = DefaultWidth
	}
	if f.Height <= 0 {
		f.Height = DefaultHeight
	}
	if f.FontSize <= 0 {
		f.FontSize = DefaultFontSize
	}
	if f.ColumnWidth <= 0 {
		f.ColumnWidth = DefaultColumnWidth
	}
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Line is a stroked segment in pixels.
type Line struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Color  string  `json:"color"`
	Stroke float64 `json:"stroke"`
	Dashed bool    `json:"dashed,omitempty"`
}

// Text is a single line of text in pixels. Y is the vertical centre.
type Text struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Color  string  `json:"color"`
	Anchor Anchor  `json:"anchor"`
	Rotate float64 `json:"rotate,omitempty"`
}

// Placement records where a state and its label ended up, in energy units.
type Placement struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	Column        int     `json:"column"`
	Energy        float64 `json:"energy"`
	LabelPosition float64 `json:"label_position"`
	Shift         float64 `json:"shift"`
	Moved         bool    `json:"moved"`
}

// LegendEntry is one row of the legend box.
type LegendEntry struct {
	Swatch Line `json:"swatch"`
	Text   Text `json:"text"`
}

// Scene is a complete drawable diagram.
type Scene struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	FontSize   float64       `json:"font_size"`
	Plot       Rect          `json:"plot"`
	Axis       Axis          `json:"axis"`
	Units      string        `json:"units,omitempty"`
	Placements []Placement   `json:"placements"`
	Bars       []Line        `json:"bars"`
	Connectors []Line        `json:"connectors,omitempty"`
	Links      []Line        `json:"links,omitempty"`
	Labels     []Text        `json:"labels"`
	Energies   []Text        `json:"energies,omitempty"`
	AxisLines  []Line        `json:"axis_lines"`
	AxisText   []Text        `json:"axis_text"`
	Legend     []LegendEntry `json:"legend,omitempty"`
}

// BuildScene maps a laid-out diagram to pixel geometry. The registry must
// be the one built from d and already passed through [levels.Layout].
func BuildScene(d *diagram.Diagram, reg *levels.Registry, axis Axis, f Frame) (Scene, error) {
	if d == nil || reg == nil || reg.Len() == 0 {
		return Scene{}, errs.New(errs.ErrCodeEmptyDiagram, "nothing to render")
	}
	if axis.Span() <= 0 {
		return Scene{}, errs.New(errs.ErrCodeInvalidParameter, "axis span must be positive, got [%g, %g]", axis.Min, axis.Max)
	}
	f.setDefaults()

	b := newBuilder(d, reg, axis, f)
	for _, s := range d.States {
		p, ok := reg.Point(s.Name)
		if !ok {
			return Scene{}, errs.New(errs.ErrCodeInternal, "state %q missing from the registry", s.Name)
		}
		b.addState(s, p)
	}
	if !f.HideLinks {
		for _, s := range d.States {
			b.addLinks(s)
		}
	}
	b.addAxis()
	b.addLegend()
	return b.scene, nil
}

type builder struct {
	d     *diagram.Diagram
	reg   *levels.Registry
	axis  Axis
	frame Frame
	scene Scene

	xMin, xMax float64
}

func newBuilder(d *diagram.Diagram, reg *levels.Registry, axis Axis, f Frame) *builder {
	cw := f.ColumnWidth
	maxCol := max(levels.MaxColumn(reg), 0)

	left := 4.5 * f.FontSize
	if d.EnergyUnits != "" {
		left += 1.5 * f.FontSize
	}
	margin := 1.5 * f.FontSize
	plot := Rect{X: left, Y: margin, W: f.Width - left - margin, H: f.Height - 2*margin}

	return &builder{
		d:     d,
		reg:   reg,
		axis:  axis,
		frame: f,
		xMin:  -0.75 * cw,
		xMax:  slotStride*float64(maxCol)*cw + 2*cw,
		scene: Scene{
			Width:    f.Width,
			Height:   f.Height,
			FontSize: f.FontSize,
			Plot:     plot,
			Axis:     axis,
			Units:    d.EnergyUnits,
		},
	}
}

// px maps an x position in column units to pixels.
func (b *builder) px(x float64) float64 {
	p := b.scene.Plot
	return p.X + (x-b.xMin)/(b.xMax-b.xMin)*p.W
}

// py maps an energy to pixels; larger energies are higher up.
func (b *builder) py(e float64) float64 {
	p := b.scene.Plot
	return p.Y + (b.axis.Max-e)/b.axis.Span()*p.H
}

func (b *builder) slotLeft(column int) float64 {
	return slotStride * float64(column) * b.frame.ColumnWidth
}

func (b *builder) addState(s diagram.State, p *levels.Point) {
	cw := b.frame.ColumnWidth
	left := b.slotLeft(p.Column())
	e, l := p.Energy(), p.LabelPosition()
	color := colorOr(s.Color, DefaultColor)
	textColor := colorOr(s.LabelColor, color)

	b.scene.Placements = append(b.scene.Placements, placement(s, p))

	b.scene.Bars = append(b.scene.Bars, Line{
		X1: b.px(left + barLeft*cw), Y1: b.py(e),
		X2: b.px(left + barRight*cw), Y2: b.py(e),
		Color: color, Stroke: barStroke,
	})

	lo := s.LabelOffset
	b.scene.Labels = append(b.scene.Labels, Text{
		X: b.px(left + labelX*cw + lo[0]), Y: b.py(l + lo[1]),
		Text: s.Label, Color: textColor, Anchor: AnchorStart,
	})

	if !b.frame.HideEnergies {
		to := s.TextOffset
		b.scene.Energies = append(b.scene.Energies, Text{
			X: b.px(left + energyX*cw + to[0]), Y: b.py(l + to[1]),
			Text: FormatEnergy(e), Color: textColor, Anchor: AnchorStart,
		})
	}

	if p.Moved() {
		if !b.frame.HideEnergies {
			b.scene.Connectors = append(b.scene.Connectors, Line{
				X1: b.px(left + energyRight*cw), Y1: b.py(l),
				X2: b.px(left + connBarL*cw), Y2: b.py(e),
				Color: color, Stroke: connectorStroke,
			})
		}
		b.scene.Connectors = append(b.scene.Connectors, Line{
			X1: b.px(left + connBarR*cw), Y1: b.py(e),
			X2: b.px(left + connLabel*cw), Y2: b.py(l),
			Color: color, Stroke: connectorStroke,
		})
	}
}

// addLinks draws a dashed line from the state's bar to each linked bar.
// Links run from the facing bar ends; links within a column join the right ends.
func (b *builder) addLinks(s diagram.State) {
	from, _ := b.reg.Point(s.Name)
	cw := b.frame.ColumnWidth
	for _, name := range s.LinksTo {
		to, ok := b.reg.Point(name)
		if !ok {
			continue
		}
		fl, tl := b.slotLeft(from.Column()), b.slotLeft(to.Column())
		var x1, x2 float64
		switch {
		case to.Column() > from.Column():
			x1, x2 = fl+barRight*cw, tl+barLeft*cw
		case to.Column() < from.Column():
			x1, x2 = fl+barLeft*cw, tl+barRight*cw
		default:
			x1, x2 = fl+barRight*cw, tl+barRight*cw
		}
		b.scene.Links = append(b.scene.Links, Line{
			X1: b.px(x1), Y1: b.py(from.Energy()),
			X2: b.px(x2), Y2: b.py(to.Energy()),
			Color: colorOr(s.Color, DefaultColor), Stroke: linkStroke, Dashed: true,
		})
	}
}

func (b *builder) addAxis() {
	p := b.scene.Plot
	fs := b.frame.FontSize
	b.scene.AxisLines = append(b.scene.AxisLines, Line{
		X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y + p.H,
		Color: DefaultColor, Stroke: axisStroke,
	})
	for _, t := range b.axis.Ticks {
		y := b.py(t)
		b.scene.AxisLines = append(b.scene.AxisLines, Line{
			X1: p.X - tickLength, Y1: y, X2: p.X, Y2: y,
			Color: DefaultColor, Stroke: axisStroke,
		})
		b.scene.AxisText = append(b.scene.AxisText, Text{
			X: p.X - tickLength - fs/3, Y: y,
			Text: b.axis.TickLabel(t), Color: DefaultColor, Anchor: AnchorEnd,
		})
	}
	if b.d.EnergyUnits != "" {
		b.scene.AxisText = append(b.scene.AxisText, Text{
			X: fs, Y: p.Y + p.H/2,
			Text: b.d.EnergyUnits, Color: DefaultColor, Anchor: AnchorMiddle, Rotate: -90,
		})
	}
}

func (b *builder) addLegend() {
	fs := b.frame.FontSize
	p := b.scene.Plot
	swatch := 2 * fs
	y := p.Y + fs
	x := p.X + p.W - 12*fs
	for _, s := range b.d.States {
		if s.Legend == "" {
			continue
		}
		color := colorOr(s.Color, DefaultColor)
		b.scene.Legend = append(b.scene.Legend, LegendEntry{
			Swatch: Line{X1: x, Y1: y, X2: x + swatch, Y2: y, Color: color, Stroke: barStroke},
			Text:   Text{X: x + swatch + fs/2, Y: y, Text: s.Legend, Color: colorOr(s.LabelColor, color), Anchor: AnchorStart},
		})
		y += 1.5 * fs
	}
}

// Placements lists where every state of d and its label ended up, in
// document order. States missing from the registry are skipped.
func Placements(d *diagram.Diagram, reg *levels.Registry) []Placement {
	out := make([]Placement, 0, len(d.States))
	for _, s := range d.States {
		if p, ok := reg.Point(s.Name); ok {
			out = append(out, placement(s, p))
		}
	}
	return out
}

func placement(s diagram.State, p *levels.Point) Placement {
	return Placement{
		Key:           p.Key(),
		Label:         s.Label,
		Column:        p.Column(),
		Energy:        p.Energy(),
		LabelPosition: p.LabelPosition(),
		Shift:         p.Shift(),
		Moved:         p.Moved(),
	}
}

// FormatEnergy formats an energy value the way it is printed next to a bar.
func FormatEnergy(e float64) string {
	return fmt.Sprintf("%4.2f", e)
}

func colorOr(c, fallback string) string {
	if c = strings.TrimSpace(c); c != "" {
		return c
	}
	return fallback
}
