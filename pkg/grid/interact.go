package grid

import (
	"strings"
	"time"

	"github.com/matzehuels/oncogrid/pkg/cell"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/scale"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Hover is the tooltip context at a pointer position.
type Hover struct {
	Pointer     Pointer
	Donor       *model.Donor
	Gene        *model.Gene
	Observation *model.Observation
	// Obs joins the observation ids of the hovered cell with ", ".
	Obs string
	// Template is the tooltip template for the current mode.
	Template string
}

// Hover resolves what lies under (x, y). In crosshair mode it reports the
// donor column and gene row under the pointer; otherwise it reports the
// observation drawn there.
func (g *Grid) Hover(x, y float64) (Hover, bool) {
	h := Hover{Pointer: Pointer{X: x, Y: y}}
	di := g.x.PixelToIndex(x)
	gi := g.y.PixelToIndex(y)

	if g.crosshair {
		h.Template = g.params.Templates.MainGridCrosshair
		if d, ok := g.donors.At(di); ok {
			h.Donor = d.Clone()
		}
		if gene, ok := g.genes.At(gi); ok {
			h.Gene = gene.Clone()
		}
		if h.Donor != nil && h.Gene != nil {
			h.Obs = strings.Join(g.index.IDs(h.Donor.ID, h.Gene.ID), ", ")
		}
		return h, h.Donor != nil || h.Gene != nil
	}

	h.Template = g.params.Templates.MainGrid
	d, ok := g.donors.At(di)
	if !ok || x >= g.x.IndexToPixel(di)+g.cellWidth {
		return h, false
	}
	gene, ok := g.genes.At(gi)
	if !ok {
		return h, false
	}
	o, ok := g.observationAt(d.ID, gene.ID, g.y.IndexToPixel(gi), y)
	if !ok {
		return h, false
	}
	h.Observation = &o
	h.Donor = d.Clone()
	h.Gene = gene.Clone()
	h.Obs = strings.Join(g.index.IDs(o.DonorID, o.GeneID), ", ")
	return h, true
}

// observationAt returns the topmost observation of a donor and gene whose
// cell spans y. Later observations draw over earlier ones.
func (g *Grid) observationAt(donorID, geneID string, rowTop, y float64) (model.Observation, bool) {
	if !g.index.Has(donorID, geneID) {
		return model.Observation{}, false
	}
	r := cell.Resolver{HeatMap: g.heatMap, Colors: g.params.ColorMap, Index: g.index}
	for i := len(g.observations) - 1; i >= 0; i-- {
		o := g.observations[i]
		if o.DonorID != donorID || o.GeneID != geneID {
			continue
		}
		geo := r.Resolve(o, rowTop, g.cellHeight)
		if y >= geo.Y && y < geo.Y+geo.Height {
			return o, true
		}
	}
	return model.Observation{}, false
}

// cellAt returns the topmost observation cell containing the point.
func cellAt(f *Frame, x, y float64) (Cell, bool) {
	for i := len(f.Cells) - 1; i >= 0; i-- {
		if f.Cells[i].Contains(x, y) {
			return f.Cells[i], true
		}
	}
	return Cell{}, false
}

// Click dispatches a click at (x, y) to the grid, donor track or gene track
// callback. It reports whether a callback was invoked.
func (g *Grid) Click(x, y float64) bool {
	ptr := Pointer{X: x, Y: y}
	f := g.Frame()
	if c, ok := cellAt(f, x, y); ok {
		if g.params.GridClick == nil {
			return false
		}
		g.params.GridClick(ptr, model.Observation{ID: c.ObservationID, DonorID: c.DonorID, GeneID: c.GeneID, Consequence: c.Consequence})
		return true
	}

	if d, ok := trackCellAt(f.DonorTracks, x, y); ok && g.params.DonorClick != nil {
		g.params.DonorClick(ptr, d)
		return true
	}
	if d, ok := trackCellAt(f.GeneTracks, x, y); ok && g.params.GeneClick != nil {
		g.params.GeneClick(ptr, d)
		return true
	}
	return false
}

func trackCellAt(groups []TrackGroupFrame, x, y float64) (track.Datum, bool) {
	for _, grp := range groups {
		for _, c := range grp.Cells {
			if c.Contains(x, y) {
				return c.Datum, true
			}
		}
	}
	return track.Datum{}, false
}

// SelectRegion keeps only the donors and genes inside the rectangle spanned
// by two corners. It only acts in crosshair mode and reports whether it did.
func (g *Grid) SelectRegion(x1, y1, x2, y2 float64) bool {
	if !g.crosshair {
		return false
	}
	start := time.Now()
	xs, xe := ordered(x1, x2)
	ys, ye := ordered(y1, y2)

	donors := keys(g.donors.SliceRange(g.x.PixelToIndexClamped(xs), g.x.PixelToIndexClamped(xe)))
	genes := keys(g.genes.SliceRange(g.y.PixelToIndexClamped(ys), g.y.PixelToIndexClamped(ye)))
	g.dropObservations(donors, genes)

	// Resize must run before the update so the new cell sizes are in place.
	if !g.fullscreen {
		g.resize(g.inputWidth, g.inputHeight)
	}
	g.update(true)
	g.done(EventUpdate, start)
	return true
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

// DragGene moves the gene at index from to the row under pixel y, then
// resorts donors.
func (g *Grid) DragGene(from int, y float64) bool {
	start := time.Now()
	to := g.y.PixelToIndexClamped(y)
	if to == scale.NoBand || !g.genes.ReorderSingle(from, to) {
		return false
	}
	g.update(true)
	g.done(EventUpdate, start)
	return true
}

// RemoveGeneAt removes the gene at row i and resorts donors.
func (g *Grid) RemoveGeneAt(i int) bool {
	start := time.Now()
	x, ok := g.genes.RemoveAt(i)
	if ok {
		g.dropObservations(nil, []string{x.ID})
	}
	g.update(true)
	g.done(EventUpdate, start)
	return ok
}

// SortDonorsByTrack orders donors with the comparator of the visible donor
// track showing field.
func (g *Grid) SortDonorsByTrack(field string) bool {
	t, ok := g.donorTracks.Track(field)
	if !ok {
		return false
	}
	cmp := t.Comparator()
	g.SortDonors(func(a, b *model.Donor) int { return cmp(a, b) })
	return true
}

// SortGenesByTrack orders genes with the comparator of the visible gene
// track showing field. Unlike SortGenes it does not resort donors.
func (g *Grid) SortGenesByTrack(field string) bool {
	t, ok := g.geneTracks.Track(field)
	if !ok {
		return false
	}
	start := time.Now()
	cmp := t.Comparator()
	g.genes.SortBy(func(a, b *model.Gene) int { return cmp(a, b) })
	g.update(false)
	g.done(EventSortGenes, start)
	return true
}

// RemoveTrack collapses the visible track at index i of a group.
func (g *Grid) RemoveTrack(axis Axis, group string, i int) bool {
	grp, ok := g.trackSet(axis).Group(group)
	if !ok || !grp.RemoveTrack(i) {
		return false
	}
	g.trackChanged()
	return true
}

// ExpandTrack makes the first collapsed track of a group visible.
func (g *Grid) ExpandTrack(axis Axis, group string) bool {
	grp, ok := g.trackSet(axis).Group(group)
	if !ok || !grp.ExpandNext() {
		return false
	}
	g.trackChanged()
	return true
}

// AddTrack adds a track definition to an axis.
func (g *Grid) AddTrack(axis Axis, t track.Track) {
	g.trackSet(axis).AddTrack(t)
	g.trackChanged()
}

// TrackGroups returns the group names of an axis in display order.
func (g *Grid) TrackGroups(axis Axis) []string {
	var names []string
	for _, grp := range g.trackSet(axis).Groups() {
		names = append(names, grp.Name)
	}
	return names
}

func (g *Grid) trackSet(axis Axis) *track.Set {
	if axis == GeneAxis {
		return g.geneTracks
	}
	return g.donorTracks
}

// trackChanged refreshes track data and resizes at the input size, which
// recomputes the track heights.
func (g *Grid) trackChanged() {
	start := time.Now()
	g.resize(g.inputWidth, g.inputHeight)
	g.done(EventResize, start)
}
