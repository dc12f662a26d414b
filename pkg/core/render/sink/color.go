package sink

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// ParseColor resolves "#rgb", "#rrggbb" or an SVG colour name.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		c, err := colorful.Hex(strings.ToLower(s))
		if err == nil && len(s) != 7 {
			err = errs.New(errs.ErrCodeInvalidColor, "want #rgb or #rrggbb")
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidColor, err, "invalid color %q", s)
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, errs.New(errs.ErrCodeInvalidColor, "unknown color name %q", s)
}
