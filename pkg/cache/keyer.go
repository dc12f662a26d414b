package cache

// LayoutKeyOpts are the layout parameters that change label positions.
type LayoutKeyOpts struct {
	MinSpacing      float64 `json:"min_spacing"`
	SpreadFactor    float64 `json:"spread_factor"`
	IterationFactor int     `json:"iteration_factor"`
	MaxIterations   int     `json:"max_iterations"`
	AllowCrowded    bool    `json:"allow_crowded,omitempty"`
}

// ArtifactKeyOpts are the render options that change an output file.
type ArtifactKeyOpts struct {
	Format       string        `json:"format"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	FontSize     float64       `json:"font_size"`
	Scale        float64       `json:"scale,omitempty"`
	HideEnergies bool          `json:"hide_energies,omitempty"`
	HideLinks    bool          `json:"hide_links,omitempty"`
	Layout       LayoutKeyOpts `json:"layout"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the JSON layout of a diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses one rendered output.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:" followed by the hash of the diagram and options.
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey returns "artifact:" followed by the hash of the diagram and options.
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
