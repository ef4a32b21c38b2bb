// Package math provides the value types used to describe where raster tiles
// sit and what values they hold: integer rectangles and floating intervals.
package math
