package levels

import (
	"maps"
	"slices"
)

// Column is the set of points sharing one column index.
type Column struct {
	Index  int
	Points []*Point
}

// Partition groups the registry's points by column, in ascending column order.
// Columns without points do not appear. The points are the registry's own, so
// moving a label through a Column moves it in the registry.
func Partition(r *Registry) []Column {
	byIndex := make(map[int][]*Point)
	for _, p := range r.points {
		byIndex[p.column] = append(byIndex[p.column], p)
	}

	cols := make([]Column, 0, len(byIndex))
	for _, idx := range slices.Sorted(maps.Keys(byIndex)) {
		cols = append(cols, Column{Index: idx, Points: byIndex[idx]})
	}
	return cols
}

// MaxColumn returns the highest column index in use, or -1 for an empty registry.
func MaxColumn(r *Registry) int {
	maxCol := -1
	for _, p := range r.points {
		maxCol = max(maxCol, p.column)
	}
	return maxCol
}
