package sink

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/energylevels/pkg/core/render"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

var (
	fontOnce sync.Once
	ttf      *truetype.Font
	fontErr  error
)

func regularFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		ttf, fontErr = truetype.Parse(goregular.TTF)
	})
	return ttf, fontErr
}

// anchorX maps a text anchor to gg's horizontal alignment factor.
var anchorX = map[render.Anchor]float64{
	render.AnchorStart:  0,
	render.AnchorMiddle: 0.5,
	render.AnchorEnd:    1,
}

type pngCanvas struct {
	dc    *gg.Context
	scale float64
}

// RenderPNG draws the scene onto a white raster. A scale of 2.0 doubles the
// pixel dimensions of the scene.
func RenderPNG(s render.Scene, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	f, err := regularFont()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "parse font")
	}

	w, h := int(s.Width*scale+0.5), int(s.Height*scale+0.5)
	c := pngCanvas{dc: gg.NewContext(w, h), scale: scale}
	c.dc.SetColor(color.White)
	c.dc.Clear()
	c.dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    s.FontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	groups := [][]render.Line{s.AxisLines, s.Links, s.Bars, s.Connectors}
	for _, lines := range groups {
		if err := c.lines(lines); err != nil {
			return nil, err
		}
	}
	for _, texts := range [][]render.Text{s.AxisText, s.Energies, s.Labels} {
		if err := c.texts(texts); err != nil {
			return nil, err
		}
	}
	for _, e := range s.Legend {
		if err := c.lines([]render.Line{e.Swatch}); err != nil {
			return nil, err
		}
		if err := c.texts([]render.Text{e.Text}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (c pngCanvas) lines(lines []render.Line) error {
	for _, l := range lines {
		col, err := ParseColor(l.Color)
		if err != nil {
			return err
		}
		c.dc.SetColor(col)
		c.dc.SetLineWidth(l.Stroke * c.scale)
		if l.Dashed {
			c.dc.SetDash(render.LinkDash[0]*c.scale, render.LinkDash[1]*c.scale)
		} else {
			c.dc.SetDash()
		}
		c.dc.DrawLine(l.X1*c.scale, l.Y1*c.scale, l.X2*c.scale, l.Y2*c.scale)
		c.dc.Stroke()
	}
	return nil
}

func (c pngCanvas) texts(texts []render.Text) error {
	for _, t := range texts {
		col, err := ParseColor(t.Color)
		if err != nil {
			return err
		}
		x, y := t.X*c.scale, t.Y*c.scale
		c.dc.SetColor(col)
		c.dc.Push()
		if t.Rotate != 0 {
			c.dc.RotateAbout(gg.Radians(t.Rotate), x, y)
		}
		c.dc.DrawStringAnchored(t.Text, x, y, anchorX[t.Anchor], 0.35)
		c.dc.Pop()
	}
	return nil
}
