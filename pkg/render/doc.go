// Package render draws serialized family layouts.
//
// Every renderer works on a [graph.Layout], so layouts read back from a
// file, a cache or a store render exactly like freshly computed ones.
//
//   - [ToDOT] emits Graphviz DOT with every node pinned to its computed
//     position
//   - [RenderSVG] runs the DOT through Graphviz (neato, no re-layout)
//   - [Text] draws one frame of the growth sequence as plain text, for
//     terminals and the replay viewer
//
// Typical use:
//
//	dot := render.ToDOT(l, render.Options{Labels: true})
//	svg, err := render.RenderSVG(ctx, dot)
package render
