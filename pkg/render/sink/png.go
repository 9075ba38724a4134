package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/oncogrid/pkg/errors"
	"github.com/matzehuels/oncogrid/pkg/grid"
)

// DefaultPNGScale renders at twice the frame size.
const DefaultPNGScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the pixel density. Values <= 0 keep the default.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGBackground fills the canvas. An empty colour leaves it
// transparent.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterises a frame.
func RenderPNG(f *grid.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(f.Width*r.scale + 0.5)
	h := int(f.Height*r.scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "frame has no area (%vx%v)", f.Width, f.Height)
	}

	dc := gg.NewContext(w, h)
	if c, ok := parseColor(r.background, 1); ok {
		dc.SetColor(c)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.Translate(f.Origin.X, f.Origin.Y)

	drawMainGrid(dc, f)
	drawHistogram(dc, f.DonorHistogram)
	drawHistogram(dc, f.GeneHistogram)
	drawTracks(dc, f, f.DonorTracks)
	drawTracks(dc, f, f.GeneTracks)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawMainGrid(dc *gg.Context, f *grid.Frame) {
	for _, c := range f.Cells {
		fillRect(dc, c.Rect, c.Fill, c.Opacity)
	}
	if f.GridLines {
		dc.SetColor(mustColor(gridStroke))
		dc.SetLineWidth(0.5)
		for _, col := range f.Columns {
			dc.DrawLine(col.X, 0, col.X, f.GridHeight)
		}
		for _, row := range f.Rows {
			dc.DrawLine(0, row.Y, f.GridWidth, row.Y)
		}
		dc.Stroke()
	}
	strokeRect(dc, grid.Rect{Width: f.GridWidth, Height: f.GridHeight})

	dc.SetColor(mustColor("#333333"))
	for _, row := range f.Rows {
		if row.ShowLabel {
			drawText(dc, grid.Text{X: -rowLabelGap, Y: row.Y + f.CellHeight/2, Text: row.Label, Anchor: "end"})
		}
	}
}

func drawHistogram(dc *gg.Context, h grid.HistogramFrame) {
	for _, b := range h.Bars {
		fillRect(dc, b.Rect, h.Fill, 1)
	}
	dc.SetColor(mustColor("#555555"))
	dc.SetLineWidth(1)
	for _, l := range h.Axes {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
	}
	dc.Stroke()
	dc.SetColor(mustColor("#333333"))
	for _, t := range h.Labels {
		drawText(dc, t)
	}
}

func drawTracks(dc *gg.Context, f *grid.Frame, groups []grid.TrackGroupFrame) {
	for _, g := range groups {
		for _, c := range g.Cells {
			fillRect(dc, c.Rect, c.Fill, c.Opacity)
		}
		strokeRect(dc, g.Bounds)
		dc.SetColor(mustColor("#333333"))
		for _, row := range g.Rows {
			drawText(dc, row.Label)
		}
		drawText(dc, g.Label)
	}
}

func fillRect(dc *gg.Context, r grid.Rect, fill string, opacity float64) {
	c, ok := parseColor(fill, opacity)
	if !ok || opacity <= 0 {
		return
	}
	dc.SetColor(c)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Fill()
}

func strokeRect(dc *gg.Context, r grid.Rect) {
	dc.SetColor(mustColor(gridStroke))
	dc.SetLineWidth(1)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Stroke()
}

func drawText(dc *gg.Context, t grid.Text) {
	ax := 0.0
	switch t.Anchor {
	case "end":
		ax = 1
	case "middle":
		ax = 0.5
	}
	if t.Rotate == 0 {
		dc.DrawStringAnchored(t.Text, t.X, t.Y, ax, 0.5)
		return
	}
	dc.Push()
	dc.RotateAbout(gg.Radians(t.Rotate), t.X, t.Y)
	dc.DrawStringAnchored(t.Text, t.X, t.Y, ax, 0.5)
	dc.Pop()
}

// parseColor reads #rgb or #rrggbb and applies opacity as alpha.
func parseColor(s string, opacity float64) (color.NRGBA, bool) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	a := min(max(opacity, 0), 1)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(a*255 + 0.5)}, true
}

func mustColor(s string) color.NRGBA {
	c, _ := parseColor(s, 1)
	return c
}
