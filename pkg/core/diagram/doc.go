// Package diagram holds the description of an energy-level diagram and reads
// it from disk.
//
// A [Diagram] is a list of [State] entries plus a few drawing settings. It is
// read from one of four formats, chosen by file extension:
//
//   - .lvl (and anything unrecognised): the line-based text format
//   - .toml: one [[state]] table per state
//   - .yaml / .yml: a states: list
//   - .json: the format written by [Diagram.WriteJSON]
//
// The text format consists of "key = value" settings and one { ... } block per
// state:
//
//	width = 800
//	height = 600
//	energy-units = kJ/mol
//
//	{
//	    name     = R
//	    energy   = 0.0
//	    column   = 1
//	    label    = Reactant
//	    color    = black
//	    links-to = TS1
//	}
//
// Columns are 1-based in every format. State names are case-insensitive and
// stored upper-cased. [Diagram.Validate] enforces unique names and a non-empty
// state list; [Diagram.Registry] turns the states into the points the label
// layout works on.
package diagram
