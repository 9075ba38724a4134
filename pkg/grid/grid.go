package grid

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/observability"
	"github.com/matzehuels/oncogrid/pkg/scale"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Axis selects the donor or gene side of the grid.
type Axis int

const (
	DonorAxis Axis = iota
	GeneAxis
)

func (a Axis) String() string {
	if a == GeneAxis {
		return "gene"
	}
	return "donor"
}

// Grid is an oncogrid instance.
type Grid struct {
	source Params
	params Params
	log    *log.Logger
	events emitter

	donors       *Domain[*model.Donor]
	genes        *Domain[*model.Gene]
	observations []model.Observation
	index        *model.Index

	donorTracks *track.Set
	geneTracks  *track.Set

	inputWidth, inputHeight float64
	width, height           float64
	cellWidth, cellHeight   float64
	numDonors, numGenes     int
	x, y                    scale.Band

	heatMap    bool
	gridLines  bool
	crosshair  bool
	fullscreen bool
	rendered   bool
	destroyed  bool
}

// New builds a grid from p. Entity collections are deep-copied; the caller
// keeps ownership of its own values.
func New(p Params) *Grid {
	g := &Grid{source: p.clone()}
	g.init()
	return g
}

// init loads state from the stored source params: index, score, sort, lay out.
func (g *Grid) init() {
	p := g.source.clone()
	g.params = p
	g.log = p.Logger

	g.donors = NewDomain(p.Donors)
	g.genes = NewDomain(p.Genes)
	g.observations = p.Observations
	g.index = model.BuildIndex(g.observations)

	ComputeDonorCounts(p.Donors, g.index)
	ComputeGeneScoresAndCounts(p.Genes, p.Donors, g.index)
	g.genes.SortByScore()
	ComputeDonorScores(g.donors.items, g.genes.items, g.index)
	g.donors.SortByScore()

	g.inputWidth, g.inputHeight = p.Width, p.Height
	g.width, g.height = p.Width, p.Height
	g.numDonors, g.numGenes = g.donors.Len(), g.genes.Len()
	g.cellWidth = perBand(g.width, g.numDonors)
	g.cellHeight = perBand(g.height, g.numGenes)
	if g.cellHeight < p.MinCellHeight {
		g.cellHeight = p.MinCellHeight
		g.height = float64(g.numGenes) * p.MinCellHeight
	}

	g.heatMap = p.HeatMap
	g.gridLines = p.Grid
	g.crosshair = false
	g.fullscreen = false
	g.rendered = false
	g.destroyed = false

	g.donorTracks = track.NewSet(g.trackConfig(false), p.DonorTracks)
	g.geneTracks = track.NewSet(g.trackConfig(true), p.GeneTracks)

	g.computeCoordinates()
	g.refreshTracks()

	g.log.Debug("grid loaded", "donors", g.numDonors, "genes", g.numGenes, "observations", len(g.observations))
}

func (g *Grid) trackConfig(rotated bool) track.SetConfig {
	return track.SetConfig{
		Rotated:          rotated,
		CellHeight:       g.params.TrackHeight,
		Padding:          g.params.TrackPadding,
		NullSentinel:     g.params.NullSentinel,
		ExpandableGroups: g.params.ExpandableGroups,
		Legends:          g.params.TrackLegends,
	}
}

func perBand(extent float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return extent / float64(n)
}

func (g *Grid) computeCoordinates() {
	g.x = scale.NewBand(g.donors.Len(), g.width)
	g.cellWidth = perBand(g.width, g.donors.Len())
	g.y = scale.NewBand(g.genes.Len(), g.height)
	g.cellHeight = perBand(g.height, g.genes.Len())
}

func (g *Grid) refreshTracks() {
	g.donorTracks.Refresh(asItems(g.donors.items))
	g.geneTracks.Refresh(asItems(g.genes.items))
}

func asItems[T track.Item](ts []T) []track.Item {
	out := make([]track.Item, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func (g *Grid) emit(kind EventKind) {
	g.events.emit(Event{Kind: kind, Donors: g.donors.Len(), Genes: g.genes.Len()})
}

// done logs, reports and emits a finished operation.
func (g *Grid) done(kind EventKind, start time.Time) {
	d := time.Since(start)
	g.log.Debug(kind.String(), "donors", g.donors.Len(), "genes", g.genes.Len(), "elapsed", d)
	observability.Grid().OnOperation(kind.String(), g.donors.Len(), g.genes.Len(), d)
	g.emit(kind)
}

// Subscribe registers fn for one event kind and returns its unsubscribe func.
func (g *Grid) Subscribe(kind EventKind, fn Listener) func() {
	return g.events.subscribe(kind, false, fn)
}

// SubscribeAll registers fn for every event kind.
func (g *Grid) SubscribeAll(fn Listener) func() {
	return g.events.subscribe(0, true, fn)
}

// layout recomputes cell sizes and coordinates when the domain sizes changed
// since the last layout.
func (g *Grid) layout() {
	if g.numDonors != g.donors.Len() || g.numGenes != g.genes.Len() {
		g.numDonors, g.numGenes = g.donors.Len(), g.genes.Len()
		g.computeCoordinates()
	}
	g.refreshTracks()
}

// Update re-lays out the grid after data changes. With resort, donor scores
// are recomputed against the current gene order and donors are resorted.
func (g *Grid) Update(resort bool) {
	start := time.Now()
	g.update(resort)
	g.done(EventUpdate, start)
}

func (g *Grid) update(resort bool) {
	if resort {
		ComputeDonorScores(g.donors.items, g.genes.items, g.index)
		g.donors.SortByScore()
	}
	g.layout()
}

// Resize sets the cell area to width × height. Rows never shrink below the
// minimum cell height; the height grows instead.
func (g *Grid) Resize(width, height float64, fullscreen bool) {
	start := time.Now()
	g.fullscreen = fullscreen
	g.resize(width, height)
	g.done(EventResize, start)
}

func (g *Grid) resize(width, height float64) {
	g.width, g.height = width, height
	g.cellHeight = perBand(g.height, g.genes.Len())
	if g.cellHeight < g.params.MinCellHeight {
		g.height = float64(g.genes.Len()) * g.params.MinCellHeight
	}
	g.computeCoordinates()
	g.layout()
}

// Cluster sorts genes by score, rescores donors and sorts them, pushing
// mutations towards the top-left corner.
func (g *Grid) Cluster() {
	start := time.Now()
	g.genes.SortByScore()
	g.update(true)
	g.done(EventCluster, start)
}

// RemoveDonors removes donors matching pred together with their
// observations, then relayouts at the input size. It returns removed ids.
// The predicate sees the grid's own donors and must not retain them.
func (g *Grid) RemoveDonors(pred func(*model.Donor) bool) []string {
	start := time.Now()
	removed := g.donors.RemoveWhere(pred)
	ids := keys(removed)
	g.dropObservations(ids, nil)

	ComputeGeneScoresAndCounts(g.genes.items, g.donors.items, g.index)
	g.update(false)
	g.fullscreen = false
	g.resize(g.inputWidth, g.inputHeight)
	g.done(EventRemoveDonors, start)
	return ids
}

// RemoveGenes removes genes matching pred together with their observations,
// then relayouts at the input size. It returns removed ids. Donor scores
// follow the new gene set but donors keep their order.
func (g *Grid) RemoveGenes(pred func(*model.Gene) bool) []string {
	start := time.Now()
	removed := g.genes.RemoveWhere(pred)
	ids := keys(removed)
	g.dropObservations(nil, ids)

	ComputeDonorScores(g.donors.items, g.genes.items, g.index)

	g.update(false)
	g.fullscreen = false
	g.resize(g.inputWidth, g.inputHeight)
	g.done(EventRemoveGenes, start)
	return ids
}

// SortDonors orders donors with cmp.
func (g *Grid) SortDonors(cmp func(a, b *model.Donor) int) {
	start := time.Now()
	g.donors.SortBy(cmp)
	g.update(false)
	g.done(EventSortDonors, start)
}

// SortGenes rescores and resorts donors, then orders genes with cmp.
func (g *Grid) SortGenes(cmp func(a, b *model.Gene) int) {
	start := time.Now()
	ComputeDonorScores(g.donors.items, g.genes.items, g.index)
	g.donors.SortByScore()
	g.genes.SortBy(cmp)
	g.update(false)
	g.done(EventSortGenes, start)
}

// ToggleHeatmap switches cell rendering mode and returns the new state.
func (g *Grid) ToggleHeatmap() bool {
	start := time.Now()
	g.heatMap = !g.heatMap
	g.done(EventToggleHeatmap, start)
	return g.heatMap
}

// ToggleGridLines switches grid lines and returns the new state.
func (g *Grid) ToggleGridLines() bool {
	start := time.Now()
	g.gridLines = !g.gridLines
	g.done(EventToggleGridLines, start)
	return g.gridLines
}

// ToggleCrosshair switches crosshair mode and returns the new state.
func (g *Grid) ToggleCrosshair() bool {
	start := time.Now()
	g.crosshair = !g.crosshair
	g.done(EventToggleCrosshair, start)
	return g.crosshair
}

// Destroy clears the configured surface and marks the grid destroyed.
func (g *Grid) Destroy() {
	start := time.Now()
	if c, ok := g.params.Surface.(Clearer); ok {
		c.Clear()
	}
	g.destroyed = true
	g.done(EventDestroy, start)
}

func (g *Grid) dropObservations(donorIDs, geneIDs []string) {
	if len(donorIDs) == 0 && len(geneIDs) == 0 {
		return
	}
	g.observations = slices.DeleteFunc(g.observations, func(o model.Observation) bool {
		return slices.Contains(donorIDs, o.DonorID) || slices.Contains(geneIDs, o.GeneID)
	})
}

func keys[T Entity](ts []T) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Key()
	}
	return out
}

// Donors returns copies of the donors in display order.
func (g *Grid) Donors() []*model.Donor {
	out := make([]*model.Donor, g.donors.Len())
	for i, d := range g.donors.items {
		out[i] = d.Clone()
	}
	return out
}

// Genes returns copies of the genes in display order.
func (g *Grid) Genes() []*model.Gene {
	out := make([]*model.Gene, g.genes.Len())
	for i, x := range g.genes.items {
		out[i] = x.Clone()
	}
	return out
}

// Observations returns the live observations.
func (g *Grid) Observations() []model.Observation {
	return slices.Clone(g.observations)
}

// Size returns the cell area size.
func (g *Grid) Size() (width, height float64) { return g.width, g.height }

// CellSize returns the size of one cell.
func (g *Grid) CellSize() (width, height float64) { return g.cellWidth, g.cellHeight }

// HeatMap reports whether heatmap mode is on.
func (g *Grid) HeatMap() bool { return g.heatMap }

// GridLines reports whether grid lines are drawn.
func (g *Grid) GridLines() bool { return g.gridLines }

// Crosshair reports whether crosshair mode is on.
func (g *Grid) Crosshair() bool { return g.crosshair }

// Fullscreen reports whether the last resize was fullscreen.
func (g *Grid) Fullscreen() bool { return g.fullscreen }

// Destroyed reports whether Destroy was called since the last load.
func (g *Grid) Destroyed() bool { return g.destroyed }

// Rendered reports whether a render has been committed since the last load.
func (g *Grid) Rendered() bool { return g.rendered }
