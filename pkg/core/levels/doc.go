// Package levels places the text labels of an energy-level diagram so that
// they never overlap within a column.
//
// # Overview
//
// Every state of a diagram is a [Point]: a bar drawn at a fixed energy in a
// fixed column, plus a label whose vertical position may drift away from the
// bar. Labels only compete for space with other labels of the same column, so
// each column is laid out on its own:
//
//	Registry -> Partition -> { Detect <-> Resolve } per column -> Registry
//
// [Detect] sorts a column and flags every pair of neighbours that sit closer
// than the minimum spacing. [Resolve] groups flagged neighbours into runs and
// spreads each run evenly around its original midpoint, then pushes it back
// under the axis roof. [Layout] repeats the two steps until no label is
// flagged, bounded by an iteration cap.
//
// # Ordering With the Renderer
//
// The roof ([Params.AxisUpperBound]) is only known once the renderer has
// scaled the axis to the bars. Callers therefore scale first, lay out labels
// second and draw labels and connectors last:
//
//	axis := render.Scale(states)
//	params := levels.DefaultParams()
//	params.AxisUpperBound = axis.Max
//	result, err := levels.Layout(reg, params)
//
// # Guarantees
//
// After a converged layout, for every column:
//
//   - labels keep the order of their energies
//   - adjacent labels are at least MinSpacing apart
//   - no label is above AxisUpperBound
//   - a column with a single point keeps its label on its bar
//
// If a column does not settle within the cap, [Layout] returns the partial
// result together with an error carrying code LAYOUT_DID_NOT_CONVERGE, and
// leaves the last computed positions in place for the caller to use or drop.
package levels
