// Package histogram computes the per-donor and per-gene mutation count bars
// drawn above and beside the grid.
//
// Bars are laid out along the same band scale as the grid axis they annotate,
// so bar i lines up with column (or row) i. Heights are relative to the
// largest count, with a floor of one so an all-zero axis draws empty bars
// instead of dividing by zero.
package histogram

import "github.com/matzehuels/oncogrid/pkg/scale"

// Layout constants.
const (
	Height           = 80
	LineHeightOffset = 5
	LineWidthOffset  = 10
	Padding          = 20
	CenterText       = -6
	TotalHeight      = Height + LineHeightOffset + Padding

	// Offset is the distance from the histogram origin to the grid edge.
	Offset = -(TotalHeight + CenterText)

	Fill  = "#1693C0"
	Label = "Mutation freq."
)

// Counted is an axis entry with an observation count.
type Counted interface {
	Key() string
	Label() string
	Total() int
}

// Bar is one histogram bar in histogram-local coordinates.
type Bar struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Histogram is the resolved bar chart of one axis.
type Histogram struct {
	Bars      []Bar   `json:"bars"`
	TopCount  int     `json:"topCount"`
	HalfCount int     `json:"halfCount"`
	HalfY     float64 `json:"halfY"`
	AxisWidth float64 `json:"axisWidth"`
}

// Compute builds the histogram of items laid out on band.
func Compute[T Counted](items []T, band scale.Band) Histogram {
	top := 1
	for _, it := range items {
		top = max(top, it.Total())
	}

	step := band.Step()
	width := step
	if step >= 3 {
		width = step - 1
	}

	h := Histogram{
		Bars:      make([]Bar, len(items)),
		TopCount:  top,
		HalfCount: top / 2,
		AxisWidth: band.Extent() + LineWidthOffset,
	}
	h.HalfY = Height - Height*float64(h.HalfCount)/float64(top)

	for i, it := range items {
		bh := Height * float64(it.Total()) / float64(top)
		h.Bars[i] = Bar{
			ID:     it.Key(),
			Label:  it.Label(),
			Count:  it.Total(),
			X:      band.IndexToPixel(i),
			Y:      Height - bh,
			Width:  width,
			Height: bh,
		}
	}
	return h
}
