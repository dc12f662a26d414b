package diagram

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// canonicalKey folds "Font Size", "font-size" and "FONTSIZE" to one spelling.
func canonicalKey(k string) string {
	k = strings.ToUpper(strings.TrimSpace(k))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(k)
}

// ParseText reads a diagram in the line-based text format.
//
// Unrecognised lines and a missing final '}' are recorded in Warnings.
// An opening '{' inside a state block and malformed numbers are errors.
func ParseText(r io.Reader) (*Diagram, error) {
	d := &Diagram{}
	sc := bufio.NewScanner(r)

	var cur *State
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case cur != nil && strings.HasPrefix(line, "{"):
			return nil, errs.New(errs.ErrCodeInvalidInput,
				"line %d: unexpected '{' inside a state block (missing '}'?)", lineNo)
		case cur != nil && strings.HasPrefix(line, "}"):
			d.States = append(d.States, *cur)
			cur = nil
		case cur != nil:
			if err := parseStateLine(d, cur, line, lineNo); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "{"):
			cur = &State{Column: 1}
		case strings.HasPrefix(line, "}"):
			d.warnf("line %d: unexpected '}'", lineNo)
		default:
			if err := parseSettingLine(d, line, lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read diagram")
	}

	if cur != nil {
		d.warnf("final closing '}' is missing")
		d.States = append(d.States, *cur)
	}

	d.normalize()
	return d, nil
}

func parseSettingLine(d *Diagram, line string, lineNo int) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok || strings.Contains(value, "=") {
		d.warnf("line %d: ignoring unrecognised line %q", lineNo, line)
		return nil
	}
	value = strings.TrimSpace(value)

	var err error
	switch canonicalKey(key) {
	case "WIDTH":
		d.Width, err = parseInt(value, "diagram width", lineNo)
	case "HEIGHT":
		d.Height, err = parseInt(value, "diagram height", lineNo)
	case "FONTSIZE":
		d.FontSize, err = parseInt(value, "font size", lineNo)
	case "OUTPUTFILE", "OUTPUT":
		d.OutputFile = value
	case "ENERGYUNITS":
		d.EnergyUnits = value
	case "MINSPACING", "FONTSPACING":
		d.MinSpacing, err = parseFloat(value, "min spacing", lineNo)
	case "SPREADFACTOR":
		d.SpreadFactor, err = parseFloat(value, "spread factor", lineNo)
	default:
		d.warnf("line %d: skipping unknown setting %q", lineNo, line)
	}
	return err
}

func parseStateLine(d *Diagram, s *State, line string, lineNo int) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		d.warnf("line %d: ignoring unrecognised line %q", lineNo, line)
		return nil
	}
	key = canonicalKey(key)
	value = strings.TrimSpace(value)

	// Only labels may contain '='.
	if key != "LABEL" && strings.Contains(value, "=") {
		d.warnf("line %d: ignoring unrecognised line %q", lineNo, line)
		return nil
	}

	var err error
	switch key {
	case "NAME":
		s.Name = value
	case "LABEL":
		s.Label = value
	case "ENERGY":
		s.Energy, err = parseFloat(value, "energy", lineNo)
	case "COLUMN":
		s.Column, err = parseInt(value, "column number", lineNo)
	case "COLOR", "COLOUR", "TEXTCOLOR", "TEXTCOLOUR":
		s.Color = value
	case "LABELCOLOR", "LABELCOLOUR":
		s.LabelColor = value
	case "LINKSTO":
		s.LinksTo = append(s.LinksTo, strings.Split(value, ",")...)
	case "LEGEND":
		s.Legend = value
	case "LABELOFFSET":
		s.LabelOffset, err = parseOffset(value, "label offset", lineNo)
	case "TEXTOFFSET":
		s.TextOffset, err = parseOffset(value, "text offset", lineNo)
	default:
		if strings.HasPrefix(key, "IMAGE") {
			d.warnf("line %d: images are not supported, ignoring %q", lineNo, line)
			return nil
		}
		d.warnf("line %d: ignoring unrecognised line %q", lineNo, line)
	}
	return err
}

func parseInt(v, what string, lineNo int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d: could not read integer for %s", lineNo, what)
	}
	return n, nil
}

func parseFloat(v, what string, lineNo int) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "line %d: could not read real number for %s", lineNo, what)
	}
	return f, nil
}

func parseOffset(v, what string, lineNo int) (Offset, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return Offset{}, errs.New(errs.ErrCodeInvalidInput, "line %d: %s must be written as x,y", lineNo, what)
	}
	x, err := parseFloat(strings.TrimSpace(xs), what, lineNo)
	if err != nil {
		return Offset{}, err
	}
	y, err := parseFloat(strings.TrimSpace(ys), what, lineNo)
	if err != nil {
		return Offset{}, err
	}
	return Offset{x, y}, nil
}
