package levels

// Point is one labelled state. Key, energy and column are fixed when the point
// is registered; only the layout moves the label.
type Point struct {
	key    string
	energy float64
	column int
	label  float64
}

// Key returns the unique state identifier.
func (p *Point) Key() string { return p.key }

// Energy returns the height the bar is drawn at.
func (p *Point) Energy() float64 { return p.energy }

// Column returns the column index the point is drawn in.
func (p *Point) Column() int { return p.column }

// LabelPosition returns the height the label text is drawn at.
func (p *Point) LabelPosition() float64 { return p.label }

// Shift returns how far the label was moved away from its bar.
func (p *Point) Shift() float64 { return p.label - p.energy }

// Moved reports whether the label left its bar, in which case the renderer
// draws a connector between them.
func (p *Point) Moved() bool { return p.label != p.energy }
