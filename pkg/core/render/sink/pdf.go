package sink

import (
	"context"

	"github.com/matzehuels/energylevels/pkg/core/render"
)

// RenderPDF draws the scene as SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, s render.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}
