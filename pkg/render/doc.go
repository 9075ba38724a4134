// Package render holds the output side of oncogrid.
//
// The grid package computes layout and produces a grid.Frame; nothing in
// it knows about pixels or markup. Subpackages take it from there:
//
//   - sink: SVG, JSON and PNG renderers plus a recording surface
//   - tooltip: template execution for cell, track and histogram hover text
package render
