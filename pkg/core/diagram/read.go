package diagram

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Format names a diagram document format.
type Format string

const (
	FormatText Format = "lvl"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the document format from a file name's extension.
// Unknown extensions are read as the text format.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// FormatForMediaType maps an HTTP Content-Type to a document format.
func FormatForMediaType(mediaType string) Format {
	mt, _, _ := strings.Cut(mediaType, ";")
	switch strings.TrimSpace(strings.ToLower(mt)) {
	case "application/toml":
		return FormatTOML
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML
	case "application/json":
		return FormatJSON
	default:
		return FormatText
	}
}

// ReadFile reads and normalizes a diagram from disk.
func ReadFile(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "diagram %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Read(bytes.NewReader(data), FormatFor(path))
}

// Read decodes a diagram in the given format.
func Read(r io.Reader, format Format) (*Diagram, error) {
	if format == FormatText {
		return ParseText(r)
	}

	d := &Diagram{}
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(d)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(d)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(d)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown diagram format: %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode %s diagram", format)
	}

	d.normalize()
	return d, nil
}
