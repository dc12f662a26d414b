package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// parseCommand creates the parse command, which normalizes a diagram file.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "parse [diagram]",
		Short: "Check a diagram and write it in normalized form",
		Long: `Check a diagram and write it in normalized form.

Reads any supported input (.lvl, TOML, YAML, JSON), reports warnings such as
unknown keys, validates it, and writes the result with names upper-cased and
defaults filled in. Use --to to convert between formats.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output, diagram.Format(to))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&to, "to", string(diagram.FormatJSON), "output format: json, toml, yaml")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, input, output string, to diagram.Format) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	d, err := runner.ParseFile(ctx, input)
	if err != nil {
		return err
	}

	data, err := encodeDiagram(d, to)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Parsed %s", input)
		printFile(output)
		printStats(len(d.States), d.Columns(), nil, false)
		for _, w := range d.Warnings {
			printDetail("warning: %s", w)
		}
	}
	return nil
}

// encodeDiagram writes d in one of the structured formats.
func encodeDiagram(d *diagram.Diagram, to diagram.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch to {
	case diagram.FormatJSON:
		err = d.WriteJSON(&buf)
	case diagram.FormatTOML:
		err = toml.NewEncoder(&buf).Encode(d)
	case diagram.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "cannot write %q (must be one of: json, toml, yaml)", to)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to, err)
	}
	return buf.Bytes(), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
