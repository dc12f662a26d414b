// Package pkg provides the libraries behind energylevels, a tool that draws
// energy-level diagrams and keeps their labels readable.
//
// # Overview
//
// An energy-level diagram places each state as a short horizontal bar at the
// height of its energy, grouped into columns. States with nearly equal
// energies would print their labels on top of each other, so the labels are
// moved apart while the bars stay where they are. The pkg directory is
// organized into these areas:
//
//  1. [core/levels] - label layout: registry, partitioning, crowding detection and resolution
//  2. [core/diagram] - the diagram model and its readers (.lvl text, TOML, YAML, JSON)
//  3. [core/render] - axis scaling, scene geometry and the output sinks
//  4. [pipeline] - orchestration (parse → scale → layout → render) with caching
//  5. [cache] - file, Redis and null cache backends
//
// # Architecture
//
// The typical data flow:
//
//	diagram file (.lvl / .toml / .yaml / .json)
//	         ↓
//	    [core/diagram] package (read, normalize, validate)
//	         ↓
//	    [core/render] Scale (axis range, roof for the labels)
//	         ↓
//	    [core/levels] Layout (move crowded labels apart)
//	         ↓
//	    [core/render] BuildScene → sink: SVG/PNG/PDF/JSON
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/energylevels/pkg/core/diagram"
//	    "github.com/matzehuels/energylevels/pkg/core/levels"
//	    "github.com/matzehuels/energylevels/pkg/core/render"
//	    "github.com/matzehuels/energylevels/pkg/core/render/sink"
//	)
//
//	d, _ := diagram.ReadFile("profile.lvl")
//	reg, _ := d.Registry()
//	axis := render.Scale(reg)
//
//	p := levels.DefaultParams()
//	p.AxisUpperBound = axis.Max
//	levels.Layout(reg, p)
//
//	scene, _ := render.BuildScene(d, reg, axis, render.Frame{})
//	svg := sink.RenderSVG(scene)
//
// Most callers use [pipeline.Runner] instead, which does the same with
// caching and error reporting:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.ExecuteFile(ctx, "profile.lvl", pipeline.Options{Formats: []string{"svg", "png"}})
//
// # Error Handling
//
// Errors carry a code from [errors]: DUPLICATE_KEY and EMPTY_DIAGRAM for bad
// input, LAYOUT_DID_NOT_CONVERGE when a column's labels cannot be separated
// within the iteration cap. Check them with errors.Is(err, code).
//
// [core/levels]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/core/levels
// [core/diagram]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/core/diagram
// [core/render]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/core/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/energylevels/pkg/errors
package pkg
