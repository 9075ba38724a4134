// Package scale maps between integer band indices and pixel coordinates.
//
// A [Band] divides a pixel extent into n equal bands with no padding. Band i
// starts at i*step. [Band.PixelToIndex] inverts that mapping, so for every
// valid index:
//
//	b.PixelToIndex(b.IndexToPixel(i)) == i
//
// Pixels outside [0, extent) map to [NoBand]; callers that need a usable
// index for any pixel use [Band.PixelToIndexClamped].
package scale

import (
	"math"
	"sort"
)

// NoBand is returned by [Band.PixelToIndex] when a pixel lies outside the range.
const NoBand = -1

// Band is an ordinal scale of n bands spanning [0, extent).
type Band struct {
	n      int
	extent float64
}

// NewBand returns a band scale. Negative inputs are treated as zero.
func NewBand(n int, extent float64) Band {
	return Band{n: max(n, 0), extent: math.Max(extent, 0)}
}

// Len returns the number of bands.
func (b Band) Len() int { return b.n }

// Extent returns the pixel range width.
func (b Band) Extent() float64 { return b.extent }

// Step returns the width of one band, or 0 for an empty scale.
func (b Band) Step() float64 {
	if b.n == 0 {
		return 0
	}
	return b.extent / float64(b.n)
}

// IndexToPixel returns the start pixel of band i.
func (b Band) IndexToPixel(i int) float64 {
	return float64(i) * b.Step()
}

// PixelToIndex returns the band containing px, or NoBand.
func (b Band) PixelToIndex(px float64) int {
	if b.n == 0 || math.IsNaN(px) || px < 0 || px >= b.extent {
		return NoBand
	}
	// Search on the forward mapping so the inverse is exact for band starts
	// regardless of floating point rounding in Step.
	i := sort.Search(b.n, func(i int) bool { return b.IndexToPixel(i) > px })
	return i - 1
}

// PixelToIndexClamped returns the band containing px, clamping pixels outside
// the range to the first or last band. It returns NoBand only for empty scales.
func (b Band) PixelToIndexClamped(px float64) int {
	if b.n == 0 {
		return NoBand
	}
	switch {
	case math.IsNaN(px) || px < 0:
		return 0
	case px >= b.extent:
		return b.n - 1
	}
	return b.PixelToIndex(px)
}
