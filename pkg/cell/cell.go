// Package cell resolves the drawn geometry and colour of one observation
// inside its grid cell.
//
// In heatmap mode every observation covers the whole cell with a translucent
// constant fill, so overlapping observations darken the cell. In stacked mode
// the cell height is split evenly between the observations at that cell and
// each one is coloured by its consequence.
package cell

import "github.com/matzehuels/oncogrid/pkg/model"

// Heatmap styling constants.
const (
	HeatmapFill    = "#D33682"
	HeatmapOpacity = 0.25
)

// ColorMap maps consequence names to fill colours.
type ColorMap map[string]string

// DefaultColorMap returns the built-in consequence palette.
func DefaultColorMap() ColorMap {
	return ColorMap{
		"missense_variant":        "#ff9b6c",
		"frameshift_variant":      "#57dba4",
		"stop_gained":             "#af57db",
		"start_lost":              "#ff2323",
		"stop_lost":               "#d3ec00",
		"initiator_codon_variant": "#5abaff",
	}
}

// Fill returns the colour for a consequence, or "" when unmapped.
func (m ColorMap) Fill(consequence string) string {
	return m[consequence]
}

// Geometry is the vertical placement and style of one observation.
type Geometry struct {
	Y       float64
	Height  float64
	Fill    string
	Opacity float64
}

// Resolver computes [Geometry] for observations.
type Resolver struct {
	HeatMap bool
	Colors  ColorMap
	Index   *model.Index
}

// Resolve places obs within the row starting at rowTop.
func (r Resolver) Resolve(obs model.Observation, rowTop, cellHeight float64) Geometry {
	if r.HeatMap {
		return Geometry{Y: rowTop, Height: cellHeight, Fill: HeatmapFill, Opacity: HeatmapOpacity}
	}

	count := max(r.Index.CountAt(obs.DonorID, obs.GeneID), 1)
	stack := max(r.Index.StackIndexOf(obs.ID, obs.DonorID, obs.GeneID), 0)
	h := cellHeight / float64(count)
	return Geometry{
		Y:       rowTop + h*float64(stack),
		Height:  h,
		Fill:    r.Colors.Fill(obs.Consequence),
		Opacity: 1,
	}
}
