package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/render"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// layoutCommand creates the layout command for printing label positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [diagram]",
		Short: "Compute label positions without drawing",
		Long: `Compute label positions without drawing.

Prints one row per state with its energy, the final label position and how far
the label was moved. With --json (or -o) the layout is written as JSON instead,
in the same shape as 'render -f json' minus the pixel geometry.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			withContextLogger(cmd.Context(), &opts)
			if asJSON || output != "" {
				return c.runLayoutJSON(cmd.Context(), args[0], opts, output, noCache)
			}
			return c.runLayoutTable(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON layout to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayoutJSON writes the JSON layout to output, or stdout when empty.
func (c *CLI) runLayoutJSON(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	d, err := runner.ParseFile(ctx, input)
	if err != nil {
		return err
	}
	data, cacheHit, err := runner.LayoutJSONWithCacheInfo(ctx, d, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(append(data, '\n')); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Layout complete")
		printFile(output)
		printStats(len(d.States), d.Columns(), nil, cacheHit)
		printNewline()
		printNextStep("Render", appName+" render "+input)
	}
	return nil
}

// runLayoutTable prints the placements as a table.
func (c *CLI) runLayoutTable(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	d, laid, err := layoutFile(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	fmt.Println(placementTable(laid.Placements(d), d.EnergyUnits))
	printStats(len(d.States), d.Columns(), laid.Crowded, false)
	if len(laid.Crowded) > 0 {
		printWarning("labels still overlap in column(s) %s", columnList(laid.Crowded))
	}
	return nil
}

// layoutFile parses input and lays out its labels.
func layoutFile(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*diagram.Diagram, *pipeline.Laid, error) {
	d, err := runner.ParseFile(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	opts.ApplyDiagram(d)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	laid, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return nil, nil, err
	}
	return d, laid, nil
}

// placementTable renders placements with moved labels highlighted.
func placementTable(placements []render.Placement, units string) string {
	energyHeader := "Energy"
	if units != "" {
		energyHeader += " (" + units + ")"
	}

	rows := make([][]string, len(placements))
	for i, p := range placements {
		shift := "—"
		if p.Moved {
			shift = fmt.Sprintf("%+.3f", p.Shift)
		}
		rows[i] = []string{
			p.Key,
			p.Label,
			strconv.Itoa(p.Column + 1),
			render.FormatEnergy(p.Energy),
			fmt.Sprintf("%.3f", p.LabelPosition),
			shift,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("State", "Label", "Column", energyHeader, "Label at", "Shift").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			if row < len(placements) && placements[row].Moved && col == 5 {
				return base.Inherit(styleMoved)
			}
			if col == 0 {
				return base.Inherit(StyleNumber)
			}
			return base.Inherit(StyleValue)
		})

	return t.Render()
}
