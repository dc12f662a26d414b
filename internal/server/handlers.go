package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	errs "github.com/matzehuels/energylevels/pkg/errors"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// contentTypes maps artifact formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// handleRender renders the posted diagram in a single format and returns the
// artifact as the response body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDiagram(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	if len(res.Crowded) > 0 {
		w.Header().Set("X-Crowded-Columns", columnList(res.Crowded))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// handleLayout returns the label positions of the posted diagram.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	d, err := s.readDiagram(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, hit, err := s.runner.LayoutJSONWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) readDiagram(w http.ResponseWriter, r *http.Request) (*diagram.Diagram, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	format := diagram.FormatForMediaType(r.Header.Get("Content-Type"))
	return s.runner.Parse(r.Context(), body, format)
}

// optionsFromQuery reads pipeline options from URL query parameters.
// Unknown parameters are ignored.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error

	opts.VizType = q.Get("viz")
	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"font_size", &opts.FontSize},
		{"min_spacing", &opts.MinSpacing},
		{"spread_factor", &opts.SpreadFactor},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		if v := q.Get(f.name); v != "" {
			if *f.dst, err = strconv.ParseFloat(v, 64); err != nil {
				return opts, errs.New(errs.ErrCodeInvalidParameter, "%s: %q is not a number", f.name, v)
			}
		}
	}
	if v := q.Get("max_iterations"); v != "" {
		if opts.MaxIterations, err = strconv.Atoi(v); err != nil {
			return opts, errs.New(errs.ErrCodeInvalidParameter, "max_iterations: %q is not an integer", v)
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"allow_crowded", &opts.AllowCrowded},
		{"hide_energies", &opts.HideEnergies},
		{"hide_links", &opts.HideLinks},
		{"refresh", &opts.Refresh},
	}
	for _, b := range bools {
		if v := q.Get(b.name); v != "" {
			if *b.dst, err = strconv.ParseBool(v); err != nil {
				return opts, errs.New(errs.ErrCodeInvalidParameter, "%s: %q is not a boolean", b.name, v)
			}
		}
	}
	return opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func columnList(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strconv.Itoa(c + 1)
	}
	return strings.Join(parts, ",")
}
