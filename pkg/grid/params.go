package grid

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oncogrid/pkg/cell"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Layout defaults.
const (
	DefaultWidth         = 500
	DefaultHeight        = 500
	DefaultMinCellHeight = 10
	DefaultLeftTextWidth = 80
	DefaultPrefix        = "og-"
	DefaultTrackFill     = "#6d72c5"
)

// Default tooltip templates, executed with a [Hover].
const (
	DefaultMainGridTemplate = "{{with .Observation}}{{.ID}}<br>{{with $.Gene}}{{.Label}}{{end}}<br>" +
		"{{.DonorID}}<br>{{.Consequence}}<br>{{end}}"
	DefaultCrosshairTemplate = "{{with .Donor}}Donor: {{.ID}}<br>{{end}}" +
		"{{with .Gene}}Gene: {{.Label}}<br>{{end}}{{with .Obs}}Mutations: {{.}}<br>{{end}}"
)

// Margin is the space around the drawing.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin returns the margin used when none is configured.
func DefaultMargin() Margin {
	return Margin{Top: 30, Right: 100, Bottom: 15, Left: 80}
}

// Templates holds tooltip templates.
type Templates struct {
	MainGrid          string
	MainGridCrosshair string
}

// Pointer is a position in grid coordinates, relative to the top-left
// corner of the cell area.
type Pointer struct {
	X, Y float64
}

// OpacityFunc maps a track cell to its opacity.
type OpacityFunc func(track.Datum) float64

// FillFunc maps a track cell to its fill colour.
type FillFunc func(track.Datum) string

// Surface draws frames. Draw is called once per committed render.
type Surface interface {
	Draw(ctx context.Context, f *Frame) error
}

// Clearer is implemented by surfaces that can discard what they drew.
type Clearer interface {
	Clear()
}

// Params configures a [Grid]. Zero values select defaults.
type Params struct {
	Donors       []*model.Donor
	Genes        []*model.Gene
	Observations []model.Observation

	Width, Height float64
	HeatMap       bool
	// Grid draws grid lines.
	Grid          bool
	MinCellHeight float64
	ColorMap      cell.ColorMap

	DonorTracks      []track.Track
	GeneTracks       []track.Track
	DonorOpacityFunc OpacityFunc
	DonorFillFunc    FillFunc
	GeneOpacityFunc  OpacityFunc
	GeneFillFunc     FillFunc
	TrackLegends     map[string]string
	TrackLegendLabel string
	ExpandableGroups []string
	NullSentinel     float64
	TrackHeight      float64
	TrackPadding     float64

	GridClick  func(Pointer, model.Observation)
	DonorClick func(Pointer, track.Datum)
	GeneClick  func(Pointer, track.Datum)

	Templates     Templates
	Margin        Margin
	LeftTextWidth float64
	Prefix        string

	Logger  *log.Logger
	Surface Surface
}

// clone deep-copies the entity collections and fills defaults.
func (p Params) clone() Params {
	out := p
	out.Donors = make([]*model.Donor, len(p.Donors))
	for i, d := range p.Donors {
		out.Donors[i] = d.Clone()
	}
	out.Genes = make([]*model.Gene, len(p.Genes))
	for i, g := range p.Genes {
		out.Genes[i] = g.Clone()
	}
	out.Observations = append([]model.Observation(nil), p.Observations...)
	out.DonorTracks = append([]track.Track(nil), p.DonorTracks...)
	out.GeneTracks = append([]track.Track(nil), p.GeneTracks...)
	out.setDefaults()
	return out
}

func (p *Params) setDefaults() {
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.MinCellHeight <= 0 {
		p.MinCellHeight = DefaultMinCellHeight
	}
	if p.ColorMap == nil {
		p.ColorMap = cell.DefaultColorMap()
	}
	if p.NullSentinel == 0 {
		p.NullSentinel = track.DefaultNullSentinel
	}
	if p.TrackHeight <= 0 {
		p.TrackHeight = track.DefaultCellHeight
	}
	if p.TrackPadding <= 0 {
		p.TrackPadding = track.DefaultPadding
	}
	if p.Templates.MainGrid == "" {
		p.Templates.MainGrid = DefaultMainGridTemplate
	}
	if p.Templates.MainGridCrosshair == "" {
		p.Templates.MainGridCrosshair = DefaultCrosshairTemplate
	}
	if p.Margin == (Margin{}) {
		p.Margin = DefaultMargin()
	}
	if p.LeftTextWidth <= 0 {
		p.LeftTextWidth = DefaultLeftTextWidth
	}
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	if p.Logger == nil {
		p.Logger = log.New(io.Discard)
	}
}
