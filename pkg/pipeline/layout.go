package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/levels"
	"github.com/matzehuels/energylevels/pkg/core/render"
	"github.com/matzehuels/energylevels/pkg/core/render/sink"
	errs "github.com/matzehuels/energylevels/pkg/errors"
	"github.com/matzehuels/energylevels/pkg/observability"
)

// Laid is a diagram after label layout.
type Laid struct {
	Registry *levels.Registry
	Axis     render.Axis
	Result   levels.Result

	// Crowded lists the columns left overlapping under AllowCrowded.
	Crowded []int
}

// Placements returns the final positions of every state of d.
func (l *Laid) Placements(d *diagram.Diagram) []render.Placement {
	return render.Placements(d, l.Registry)
}

// JSON encodes the layout export of d.
func (l *Laid) JSON(d *diagram.Diagram) ([]byte, error) {
	e := sink.ExportLayout(l.Axis, d.EnergyUnits, l.Placements(d),
		sink.WithResult(l.Result), sink.WithWarnings(d.Warnings))
	return json.MarshalIndent(e, "", "  ")
}

// Layout registers the states of d, scales the energy axis and moves the
// labels apart. The axis maximum is the upper bound labels are clamped to.
//
// Opts must already be validated. A column that does not converge fails the
// layout unless opts.AllowCrowded is set.
func (r *Runner) Layout(ctx context.Context, d *diagram.Diagram, opts Options) (*Laid, error) {
	r.applyLogger(&opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg, err := d.Registry()
	if err != nil {
		return nil, err
	}
	axis := render.Scale(reg)
	opts.Logger.Debug("scaled axis", "min", axis.Min, "max", axis.Max, "step", axis.Step)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, reg.Len())
	start := time.Now()

	laid := &Laid{Registry: reg, Axis: axis}
	laid.Result, err = levels.Layout(reg, opts.Params(axis.Max))
	hooks.OnLayoutComplete(ctx, laid.Result.Iterations(), laid.Result.Unconverged(), time.Since(start), err)

	for _, c := range laid.Result.Columns {
		opts.Logger.Debug("column resolved",
			"column", c.Column+1,
			"states", c.Points,
			"iterations", c.Iterations,
			"status", c.Status)
	}

	if err != nil {
		if !errs.Is(err, errs.ErrCodeDidNotConverge) || !opts.AllowCrowded {
			return nil, err
		}
		laid.Crowded = laid.Result.Unconverged()
		opts.Logger.Warn("labels still overlap", "columns", oneBased(laid.Crowded))
	}
	return laid, nil
}

// oneBased converts column indices to the numbering used in documents.
func oneBased(cols []int) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c + 1
	}
	return out
}
