package grid

import (
	"strconv"

	"github.com/matzehuels/oncogrid/pkg/cell"
	"github.com/matzehuels/oncogrid/pkg/histogram"
	"github.com/matzehuels/oncogrid/pkg/scale"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Frame is a fully resolved snapshot of the grid ready to be drawn. All
// coordinates are relative to Origin, the top-left corner of the cell area.
type Frame struct {
	Prefix string  `json:"prefix"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Origin Pointer `json:"origin"`

	GridWidth  float64 `json:"gridWidth"`
	GridHeight float64 `json:"gridHeight"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`

	HeatMap   bool `json:"heatMap"`
	GridLines bool `json:"gridLines"`
	Crosshair bool `json:"crosshair"`

	Cells   []Cell   `json:"cells"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`

	DonorHistogram HistogramFrame `json:"donorHistogram"`
	GeneHistogram  HistogramFrame `json:"geneHistogram"`

	DonorTracks      []TrackGroupFrame `json:"donorTracks"`
	GeneTracks       []TrackGroupFrame `json:"geneTracks"`
	TrackLegendLabel string            `json:"trackLegendLabel,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Line is a straight segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Text is a positioned label. Anchor follows SVG text-anchor.
type Text struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Anchor string  `json:"anchor"`
	Rotate float64 `json:"rotate,omitempty"`
}

// Cell is one drawn observation.
type Cell struct {
	Rect
	ObservationID string  `json:"observationId"`
	DonorID       string  `json:"donorId"`
	GeneID        string  `json:"geneId"`
	Consequence   string  `json:"consequence"`
	Fill          string  `json:"fill"`
	Opacity       float64 `json:"opacity"`
}

// Column is a donor column.
type Column struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
}

// Row is a gene row and its label.
type Row struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Y         float64 `json:"y"`
	ShowLabel bool    `json:"showLabel"`
}

// Bar is a histogram bar.
type Bar struct {
	Rect
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramFrame is a resolved histogram.
type HistogramFrame struct {
	Rotated   bool   `json:"rotated"`
	TopCount  int    `json:"topCount"`
	HalfCount int    `json:"halfCount"`
	Fill      string `json:"fill"`
	Bars      []Bar  `json:"bars"`
	Axes      []Line `json:"axes"`
	Labels    []Text `json:"labels"`
}

// TrackCell is one drawn track value.
type TrackCell struct {
	Rect
	track.Datum
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
}

// TrackRow is the band of one visible track.
type TrackRow struct {
	Rect
	FieldName string `json:"fieldName"`
	Label     Text   `json:"label"`
}

// TrackGroupFrame is a resolved track group.
type TrackGroupFrame struct {
	Name       string      `json:"name"`
	Legend     string      `json:"legend,omitempty"`
	Rotated    bool        `json:"rotated"`
	Expandable bool        `json:"expandable"`
	Collapsed  int         `json:"collapsed"`
	Bounds     Rect        `json:"bounds"`
	Label      Text        `json:"label"`
	Rows       []TrackRow  `json:"rows"`
	Cells      []TrackCell `json:"cells"`
}

// placement maps section-local coordinates into grid coordinates. Rotated
// sections are turned 90° clockwise and anchored at dx.
type placement struct {
	rotated bool
	dx, dy  float64
}

func (p placement) point(lx, ly float64) (float64, float64) {
	if p.rotated {
		return p.dx - ly, lx + p.dy
	}
	return lx + p.dx, ly + p.dy
}

func (p placement) rect(r Rect) Rect {
	if p.rotated {
		return Rect{X: p.dx - r.Y - r.Height, Y: r.X + p.dy, Width: r.Height, Height: r.Width}
	}
	return Rect{X: r.X + p.dx, Y: r.Y + p.dy, Width: r.Width, Height: r.Height}
}

func (p placement) line(l Line) Line {
	x1, y1 := p.point(l.X1, l.Y1)
	x2, y2 := p.point(l.X2, l.Y2)
	return Line{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (p placement) text(t Text) Text {
	t.X, t.Y = p.point(t.X, t.Y)
	if p.rotated {
		t.Rotate += 90
	}
	return t
}

// Frame resolves the current state without emitting render events.
func (g *Grid) Frame() *Frame {
	return g.buildFrame(func(EventKind) {})
}

func (g *Grid) buildFrame(emit func(EventKind)) *Frame {
	p := g.params
	f := &Frame{
		Prefix:           p.Prefix,
		GridWidth:        g.width,
		GridHeight:       g.height,
		CellWidth:        g.cellWidth,
		CellHeight:       g.cellHeight,
		HeatMap:          g.heatMap,
		GridLines:        g.gridLines,
		Crosshair:        g.crosshair,
		TrackLegendLabel: p.TrackLegendLabel,
	}

	emit(EventRenderMainGridStart)
	g.buildMainGrid(f)
	emit(EventRenderMainGridEnd)

	emit(EventRenderDonorHistogramStart)
	f.DonorHistogram = histogramFrame(histogram.Compute(g.donors.items, g.x),
		placement{dy: histogram.Offset})
	emit(EventRenderDonorHistogramEnd)

	emit(EventRenderDonorTrackStart)
	f.DonorTracks = g.trackFrames(g.donorTracks, g.x, g.cellWidth,
		placement{dy: g.height + g.donorTracks.Padding()}, p.DonorFillFunc, p.DonorOpacityFunc)
	emit(EventRenderDonorTrackEnd)

	emit(EventRenderGeneHistogramStart)
	f.GeneHistogram = histogramFrame(histogram.Compute(g.genes.items, g.y),
		placement{rotated: true, dx: g.width - histogram.Offset})
	emit(EventRenderGeneHistogramEnd)

	emit(EventRenderGeneTrackStart)
	f.GeneTracks = g.trackFrames(g.geneTracks, g.y, g.cellHeight,
		placement{rotated: true, dx: g.width + histogram.TotalHeight + g.geneTracks.Height()}, p.GeneFillFunc, p.GeneOpacityFunc)
	emit(EventRenderGeneTrackEnd)

	f.Origin = Pointer{X: p.Margin.Left + p.LeftTextWidth, Y: p.Margin.Top + histogram.TotalHeight}
	f.Width = p.Margin.Left + p.LeftTextWidth + g.width + histogram.TotalHeight + g.geneTracks.Height() + p.Margin.Right
	f.Height = p.Margin.Top + histogram.TotalHeight + g.height + g.donorTracks.Height() + p.Margin.Bottom
	return f
}

func (g *Grid) buildMainGrid(f *Frame) {
	donorAt := make(map[string]int, g.donors.Len())
	for i, d := range g.donors.items {
		donorAt[d.ID] = i
	}
	geneAt := make(map[string]int, g.genes.Len())
	for i, x := range g.genes.items {
		geneAt[x.ID] = i
	}

	r := cell.Resolver{HeatMap: g.heatMap, Colors: g.params.ColorMap, Index: g.index}
	f.Cells = make([]Cell, 0, len(g.observations))
	for _, o := range g.observations {
		di, ok := donorAt[o.DonorID]
		if !ok {
			continue
		}
		gi, ok := geneAt[o.GeneID]
		if !ok {
			continue
		}
		geo := r.Resolve(o, g.y.IndexToPixel(gi), g.cellHeight)
		f.Cells = append(f.Cells, Cell{
			Rect:          Rect{X: g.x.IndexToPixel(di), Y: geo.Y, Width: g.cellWidth, Height: geo.Height},
			ObservationID: o.ID,
			DonorID:       o.DonorID,
			GeneID:        o.GeneID,
			Consequence:   o.Consequence,
			Fill:          geo.Fill,
			Opacity:       geo.Opacity,
		})
	}

	f.Columns = make([]Column, g.donors.Len())
	for i, d := range g.donors.items {
		f.Columns[i] = Column{ID: d.ID, X: g.x.IndexToPixel(i)}
	}
	showLabels := g.cellHeight >= g.params.MinCellHeight
	f.Rows = make([]Row, g.genes.Len())
	for i, x := range g.genes.items {
		f.Rows[i] = Row{ID: x.ID, Label: x.Label(), Y: g.y.IndexToPixel(i), ShowLabel: showLabels}
	}
}

func histogramFrame(h histogram.Histogram, at placement) HistogramFrame {
	hf := HistogramFrame{
		Rotated:   at.rotated,
		TopCount:  h.TopCount,
		HalfCount: h.HalfCount,
		Fill:      histogram.Fill,
		Bars:      make([]Bar, len(h.Bars)),
	}
	for i, b := range h.Bars {
		hf.Bars[i] = Bar{
			Rect:  at.rect(Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}),
			ID:    b.ID,
			Label: b.Label,
			Count: b.Count,
		}
	}

	const off = histogram.LineHeightOffset
	base := float64(histogram.Height + off)
	hf.Axes = []Line{
		at.line(Line{X1: -off, Y1: base, X2: h.AxisWidth - off, Y2: base}),
		at.line(Line{X1: -off, Y1: 0, X2: -off, Y2: base}),
	}
	hf.Labels = []Text{
		at.text(Text{X: histogram.CenterText, Y: 0, Text: strconv.Itoa(h.TopCount), Anchor: "end"}),
		at.text(Text{X: histogram.CenterText, Y: h.HalfY, Text: strconv.Itoa(h.HalfCount), Anchor: "end"}),
		at.text(Text{X: -(off + histogram.Padding), Y: histogram.Height / 2, Text: histogram.Label, Anchor: "middle", Rotate: -90}),
	}
	return hf
}

func (g *Grid) trackFrames(set *track.Set, band scale.Band, cellWidth float64, at placement, fill FillFunc, opacity OpacityFunc) []TrackGroupFrame {
	groups := set.Groups()
	out := make([]TrackGroupFrame, 0, len(groups))
	for _, grp := range groups {
		oy := set.GroupOffset(grp.Name)
		ch := grp.CellHeight()
		tf := TrackGroupFrame{
			Name:       grp.Name,
			Legend:     grp.Legend,
			Rotated:    set.Rotated(),
			Expandable: grp.Expandable,
			Collapsed:  len(grp.CollapsedTracks()),
			Bounds:     at.rect(Rect{X: 0, Y: oy, Width: band.Extent(), Height: grp.Height()}),
			Label:      at.text(Text{X: -6, Y: oy - 11, Text: grp.Name, Anchor: "end"}),
		}

		for _, t := range grp.Tracks() {
			ry := oy + grp.RowY(t.FieldName)
			tf.Rows = append(tf.Rows, TrackRow{
				Rect:      at.rect(Rect{X: 0, Y: ry, Width: band.Extent(), Height: ch}),
				FieldName: t.FieldName,
				Label:     at.text(Text{X: -6, Y: ry + ch/2, Text: t.Name, Anchor: "end"}),
			})
		}

		data := grp.Data()
		perItem := grp.Len()
		tf.Cells = make([]TrackCell, len(data))
		for i, d := range data {
			item := 0
			if perItem > 0 {
				item = i / perItem
			}
			tc := TrackCell{
				Rect:    at.rect(Rect{X: band.IndexToPixel(item), Y: oy + grp.RowY(d.FieldName), Width: cellWidth, Height: ch}),
				Datum:   d,
				Fill:    DefaultTrackFill,
				Opacity: 1,
			}
			if fill != nil {
				tc.Fill = fill(d)
			}
			if opacity != nil {
				tc.Opacity = opacity(d)
			}
			tf.Cells[i] = tc
		}
		out = append(out, tf)
	}
	return out
}
