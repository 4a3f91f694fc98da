// Package diagram decodes chord diagram markup into fingering codes.
//
// A diagram cell is a sequence of string renderings separated by <br>, each
// rendering a run of <img src="img/<stem>.gif"> fret markers. Decoding happens
// in two steps:
//   - extract: markup -> Grid (one Row of Markers per string)
//   - encode:  Grid -> "t6,t5,...,t1" (one token per string, reversed)
//
// Everything in this package is pure and safe for concurrent use.
package diagram
