// Package render turns a laid-out energy-level diagram into drawable geometry.
//
// # Overview
//
// Rendering happens in two steps. [Scale] picks the energy axis from the
// registered energies; its upper bound is what the label layout clamps
// against. After [levels.Layout] has placed the labels, [BuildScene] maps
// every state to pixel geometry:
//
//   - a bar at the state's energy, from 2/7 to 4/7 of its column slot
//   - the label at 5/7 of the slot, at the label position
//   - the energy value left of the bar, at the label position
//   - thin connectors from the value to the bar and from the bar to the
//     label, drawn only for labels that were moved
//   - dashed link lines between linked states
//   - a legend and an energy axis with ticks
//
// The resulting [Scene] is format independent. The [sink] subpackage
// encodes it as SVG, PNG, PDF or JSON.
//
//	axis := render.Scale(reg)
//	params.AxisUpperBound = axis.Max
//	res, err := levels.Layout(reg, params)
//	scene, err := render.BuildScene(d, reg, axis, render.Frame{Width: 800, Height: 600})
//	svg := sink.RenderSVG(scene)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
// [sink]: github.com/matzehuels/energylevels/pkg/core/render/sink
package render
