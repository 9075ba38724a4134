package config

import (
	"maps"

	"github.com/matzehuels/oncogrid/pkg/cell"
	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/track"
)

// Apply copies the configuration into p. Values already set on p win over
// zero values of the config, so callers can fill p from flags first.
func (c *Config) Apply(p *grid.Params) {
	if p.Width == 0 {
		p.Width = c.Width
	}
	if p.Height == 0 {
		p.Height = c.Height
	}
	if p.MinCellHeight == 0 {
		p.MinCellHeight = c.MinCellHeight
	}
	p.HeatMap = p.HeatMap || c.HeatMap
	p.Grid = p.Grid || c.GridLines

	if p.Margin == (grid.Margin{}) && c.Margin != (MarginConfig{}) {
		m := grid.DefaultMargin()
		if c.Margin.Top > 0 {
			m.Top = c.Margin.Top
		}
		if c.Margin.Right > 0 {
			m.Right = c.Margin.Right
		}
		if c.Margin.Bottom > 0 {
			m.Bottom = c.Margin.Bottom
		}
		if c.Margin.Left > 0 {
			m.Left = c.Margin.Left
		}
		p.Margin = m
	}

	if len(c.Colors) > 0 {
		cm := maps.Clone(p.ColorMap)
		if cm == nil {
			cm = cell.DefaultColorMap()
		}
		maps.Copy(cm, c.Colors)
		p.ColorMap = cm
	}

	p.DonorTracks = append(p.DonorTracks, tracks(c.DonorTracks)...)
	p.GeneTracks = append(p.GeneTracks, tracks(c.GeneTracks)...)
	if p.DonorFillFunc == nil {
		p.DonorFillFunc = c.DonorStyle.FillFunc(groupsOf(p.DonorTracks))
	}
	if p.DonorOpacityFunc == nil {
		p.DonorOpacityFunc = c.DonorStyle.OpacityFunc()
	}
	if p.GeneFillFunc == nil {
		p.GeneFillFunc = c.GeneStyle.FillFunc(groupsOf(p.GeneTracks))
	}
	if p.GeneOpacityFunc == nil {
		p.GeneOpacityFunc = c.GeneStyle.OpacityFunc()
	}

	if p.TrackHeight == 0 {
		p.TrackHeight = c.TrackHeight
	}
	if p.TrackPadding == 0 {
		p.TrackPadding = c.TrackPadding
	}
	if p.TrackLegends == nil && len(c.TrackLegends) > 0 {
		p.TrackLegends = maps.Clone(c.TrackLegends)
	}
	if p.TrackLegendLabel == "" {
		p.TrackLegendLabel = c.TrackLegendLabel
	}
	p.ExpandableGroups = append(p.ExpandableGroups, c.ExpandableGroups...)
	if p.NullSentinel == 0 {
		p.NullSentinel = c.NullSentinel
	}
	if p.Templates.MainGrid == "" {
		p.Templates.MainGrid = c.Templates.MainGrid
	}
	if p.Templates.MainGridCrosshair == "" {
		p.Templates.MainGridCrosshair = c.Templates.Crosshair
	}
}

func tracks(cfg []TrackConfig) []track.Track {
	out := make([]track.Track, len(cfg))
	for i, t := range cfg {
		out[i] = t.Track()
	}
	return out
}

func groupsOf(ts []track.Track) map[string]string {
	m := make(map[string]string, len(ts))
	for _, t := range ts {
		if _, ok := m[t.FieldName]; !ok {
			m[t.FieldName] = t.GroupName()
		}
	}
	return m
}
