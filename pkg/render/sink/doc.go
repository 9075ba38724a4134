// Package sink turns a resolved [grid.Frame] into output artifacts.
//
// Three formats are supported:
//
//   - SVG: a standalone document with optional <title> tooltips ([RenderSVG])
//   - JSON: the frame itself for external renderers ([RenderJSON])
//   - PNG: a raster image drawn with gg ([RenderPNG])
//
// [Render] dispatches on a list of formats. [Recorder] adapts the renderers
// to [grid.Surface], so a grid draws straight into artifacts:
//
//	rec := sink.NewRecorder(sink.Options{Formats: []string{"svg", "png"}})
//	g := grid.New(grid.Params{Donors: d, Genes: g, Observations: o, Surface: rec})
//	_ = g.Render(ctx)
//	svg := rec.Artifacts()["svg"]
//
// All renderers are pure functions of the frame. Element classes carry the
// frame prefix so several grids can share one page.
package sink
