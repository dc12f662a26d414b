package levels

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/energylevels/pkg/errors"
)

// Status reports how a column's layout ended.
type Status int

const (
	// Converged means no label in the column is crowded.
	Converged Status = iota
	// DidNotConverge means the iteration cap was hit with labels still crowded.
	DidNotConverge
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case DidNotConverge:
		return "did-not-converge"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "converged":
		*s = Converged
	case "did-not-converge":
		*s = DidNotConverge
	default:
		return fmt.Errorf("unknown layout status %q", b)
	}
	return nil
}

// ColumnResult describes the layout of one column.
type ColumnResult struct {
	Column     int    `json:"column"`
	Points     int    `json:"points"`
	Iterations int    `json:"iterations"` // resolve passes performed
	Moved      int    `json:"moved"`      // runs moved across all passes
	Status     Status `json:"status"`
}

// Result collects the per-column outcomes of a layout, in column order.
type Result struct {
	Columns []ColumnResult `json:"columns"`
}

// Converged reports whether every column settled.
func (r Result) Converged() bool {
	return len(r.Unconverged()) == 0
}

// Unconverged returns the indices of columns that hit their iteration cap.
func (r Result) Unconverged() []int {
	var cols []int
	for _, c := range r.Columns {
		if c.Status == DidNotConverge {
			cols = append(cols, c.Column)
		}
	}
	return cols
}

// Iterations returns the total number of resolve passes across all columns.
func (r Result) Iterations() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Iterations
	}
	return n
}

// ConvergenceError lists the columns whose labels were still crowded when
// their iteration cap ran out.
type ConvergenceError struct {
	Columns []int
}

func (e *ConvergenceError) Error() string {
	parts := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		parts[i] = fmt.Sprint(c)
	}
	return "labels still crowded in column(s) " + strings.Join(parts, ", ")
}

// Layout moves the labels of every column of r until none overlap.
//
// The registry's points are updated in place. An empty registry fails with
// EMPTY_DIAGRAM and invalid parameters with INVALID_PARAMETER, both before any
// label moves. If some column does not converge, the full Result is still
// returned together with an error of code LAYOUT_DID_NOT_CONVERGE wrapping a
// *ConvergenceError; the positions are the last ones computed.
func Layout(r *Registry, p Params) (Result, error) {
	if r == nil || r.Len() == 0 {
		return Result{}, errs.New(errs.ErrCodeEmptyDiagram, "diagram has no states")
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	cols := Partition(r)
	res := Result{Columns: make([]ColumnResult, len(cols))}

	if p.Parallel {
		var g errgroup.Group
		for i, col := range cols {
			g.Go(func() error {
				res.Columns[i] = LayoutColumn(col, p)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, col := range cols {
			res.Columns[i] = LayoutColumn(col, p)
		}
	}

	if bad := res.Unconverged(); len(bad) > 0 {
		return res, errs.Wrap(errs.ErrCodeDidNotConverge, &ConvergenceError{Columns: bad},
			"label layout did not converge")
	}
	return res, nil
}

// LayoutColumn runs Detect and Resolve on one column until no label is
// crowded or the column's iteration cap is spent. p must be valid.
func LayoutColumn(col Column, p Params) ColumnResult {
	res := ColumnResult{Column: col.Index, Points: len(col.Points), Status: DidNotConverge}
	limit := p.iterationCap(len(col.Points))

	for {
		d := Detect(col.Points, p.MinSpacing)
		if !d.Any {
			res.Status = Converged
			return res
		}
		if res.Iterations == limit {
			return res
		}
		res.Moved += Resolve(d, p)
		res.Iterations++
	}
}
