package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/render/tooltip"
)

const (
	gridStroke  = "#dddddd"
	rowLabelGap = 8
)

const svgCSS = `
    .%[1]slabel-text-font { font: 10px sans-serif; fill: #333333; }
    .%[1]shistogram-axis { stroke: #555555; stroke-width: 1; }
    .%[1]sgrid-line { stroke: #dddddd; stroke-width: 0.5; }
    .%[1]scell:hover, .%[1]strack-data:hover { stroke: #000000; stroke-width: 0.5; }
    .%[1]strack-group-label { font: bold 10px sans-serif; fill: #333333; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tooltips     bool
	cellTemplate string
	background   string
	title        string
}

// WithTooltips adds a <title> to every cell, track cell and histogram bar.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithCellTemplate sets the template of main grid cell tooltips.
func WithCellTemplate(tmpl string) SVGOption {
	return func(r *svgRenderer) { r.cellTemplate = tmpl }
}

// WithBackground fills the canvas. An empty colour leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws a frame as a standalone SVG document.
func RenderSVG(f *grid.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{cellTemplate: grid.DefaultMainGridTemplate, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="%soncogrid" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Prefix, f.Width, f.Height, f.Width, f.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", esc(r.title))
	}
	fmt.Fprintf(&buf, "  <style>"+svgCSS+"\n  </style>\n", f.Prefix)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", f.Width, f.Height, r.background)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.2f,%.2f)">`+"\n", f.Origin.X, f.Origin.Y)
	r.mainGrid(&buf, f)
	r.histogram(&buf, f.Prefix, f.DonorHistogram)
	r.histogram(&buf, f.Prefix, f.GeneHistogram)
	r.tracks(&buf, f, f.DonorTracks)
	r.tracks(&buf, f, f.GeneTracks)
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) mainGrid(buf *bytes.Buffer, f *grid.Frame) {
	fmt.Fprintf(buf, `    <g class="%smain-grid">`+"\n", f.Prefix)
	fmt.Fprintf(buf, `      <rect class="%sbackground" width="%.2f" height="%.2f" fill="none" stroke="%s"/>`+"\n",
		f.Prefix, f.GridWidth, f.GridHeight, gridStroke)

	labels := rowLabels(f)
	for _, c := range f.Cells {
		fill := c.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(buf, `      <rect class="%[1]scell %[1]s%[2]s-cell" x="%[3].2f" y="%[4].2f" width="%[5].2f" height="%[6].2f" fill="%[7]s" opacity="%[8].2f"`,
			f.Prefix, esc(c.ObservationID), c.X, c.Y, c.Width, c.Height, fill, c.Opacity)
		r.closeWithTitle(buf, func() (string, error) {
			return tooltip.Execute(r.cellTemplate, cellData(c, labels))
		})
	}

	if f.GridLines {
		for _, col := range f.Columns {
			fmt.Fprintf(buf, `      <line class="%sgrid-line" x1="%.2f" y1="0" x2="%.2f" y2="%.2f"/>`+"\n",
				f.Prefix, col.X, col.X, f.GridHeight)
		}
		for _, row := range f.Rows {
			fmt.Fprintf(buf, `      <line class="%sgrid-line" x1="0" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
				f.Prefix, row.Y, f.GridWidth, row.Y)
		}
	}

	for _, row := range f.Rows {
		if !row.ShowLabel {
			continue
		}
		fmt.Fprintf(buf, `      <text class="%slabel-text-font" x="%d" y="%.2f" dy=".32em" text-anchor="end">%s</text>`+"\n",
			f.Prefix, -rowLabelGap, row.Y+f.CellHeight/2, esc(row.Label))
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) histogram(buf *bytes.Buffer, prefix string, h grid.HistogramFrame) {
	fmt.Fprintf(buf, `    <g class="%shistogram">`+"\n", prefix)
	for _, b := range h.Bars {
		fmt.Fprintf(buf, `      <rect class="%[1]ssortable-bar %[1]s%[2]s-bar" x="%[3].2f" y="%[4].2f" width="%[5].2f" height="%[6].2f" fill="%[7]s"`,
			prefix, esc(b.ID), b.X, b.Y, b.Width, b.Height, h.Fill)
		r.closeWithTitle(buf, func() (string, error) { return tooltip.Bar(b) })
	}
	for _, l := range h.Axes {
		fmt.Fprintf(buf, `      <line class="%shistogram-axis" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			prefix, l.X1, l.Y1, l.X2, l.Y2)
	}
	for _, t := range h.Labels {
		text(buf, prefix+"label-text-font", t)
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) tracks(buf *bytes.Buffer, f *grid.Frame, groups []grid.TrackGroupFrame) {
	for _, g := range groups {
		fmt.Fprintf(buf, `    <g class="%strack-group" data-group="%s">`+"\n", f.Prefix, esc(g.Name))
		fmt.Fprintf(buf, `      <rect class="%sbackground" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s"/>`+"\n",
			f.Prefix, g.Bounds.X, g.Bounds.Y, g.Bounds.Width, g.Bounds.Height, gridStroke)
		for _, c := range g.Cells {
			fmt.Fprintf(buf, `      <rect class="%strack-data" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" opacity="%.2f"`,
				f.Prefix, c.X, c.Y, c.Width, c.Height, c.Fill, c.Opacity)
			r.closeWithTitle(buf, func() (string, error) { return tooltip.Datum(c.Datum) })
		}
		if f.GridLines {
			for _, row := range g.Rows {
				fmt.Fprintf(buf, `      <rect class="%sgrid-line" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none"/>`+"\n",
					f.Prefix, row.X, row.Y, row.Width, row.Height)
			}
		}
		for _, row := range g.Rows {
			text(buf, f.Prefix+"label-text-font", row.Label)
		}
		text(buf, f.Prefix+"track-group-label", g.Label)
		if g.Legend != "" && f.TrackLegendLabel != "" {
			fmt.Fprintf(buf, `      <text class="%slabel-text-font" x="%.2f" y="%.2f" dy=".32em" text-anchor="start"%s>%s<title>%s</title></text>`+"\n",
				f.Prefix, g.Label.X+4, g.Label.Y, rotate(g.Label), esc(f.TrackLegendLabel), esc(tooltip.Plain(g.Legend)))
		}
		if g.Collapsed > 0 {
			fmt.Fprintf(buf, `      <text class="%slabel-text-font" x="%.2f" y="%.2f" dy=".32em" text-anchor="start"%s>+%d</text>`+"\n",
				f.Prefix, g.Label.X+4, g.Label.Y+12, rotate(g.Label), g.Collapsed)
		}
		buf.WriteString("    </g>\n")
	}
}

// closeWithTitle ends an open element, adding a tooltip title when enabled.
// Template errors drop the title.
func (r *svgRenderer) closeWithTitle(buf *bytes.Buffer, tip func() (string, error)) {
	if !r.tooltips {
		buf.WriteString("/>\n")
		return
	}
	s, err := tip()
	if err != nil || s == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></rect>\n", esc(tooltip.Plain(s)))
}

func rowLabels(f *grid.Frame) map[string]string {
	labels := make(map[string]string, len(f.Rows))
	for _, row := range f.Rows {
		labels[row.ID] = row.Label
	}
	return labels
}

// cellData rebuilds the tooltip data of a drawn cell.
func cellData(c grid.Cell, labels map[string]string) tooltip.CellData {
	o := model.Observation{ID: c.ObservationID, DonorID: c.DonorID, GeneID: c.GeneID, Consequence: c.Consequence}
	return tooltip.CellData{
		Observation: &o,
		Gene:        &model.Gene{ID: c.GeneID, Symbol: labels[c.GeneID]},
		Donor:       &model.Donor{ID: c.DonorID},
	}
}

func text(buf *bytes.Buffer, class string, t grid.Text) {
	anchor := t.Anchor
	if anchor == "" {
		anchor = "start"
	}
	fmt.Fprintf(buf, `      <text class="%s" x="%.2f" y="%.2f" dy=".32em" text-anchor="%s"%s>%s</text>`+"\n",
		class, t.X, t.Y, anchor, rotate(t), esc(t.Text))
}

func rotate(t grid.Text) string {
	if t.Rotate == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="rotate(%.0f %.2f %.2f)"`, t.Rotate, t.X, t.Y)
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
