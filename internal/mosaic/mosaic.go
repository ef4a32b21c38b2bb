// Package mosaic assembles a directory of elevation tiles into one mosaic
// with shared spatial and value bounds.
package mosaic

import (
	"github.com/dhconnelly/rtreego"

	"github.com/Faultbox/siliconia/pkg/formats"
	"github.com/Faultbox/siliconia/pkg/math"
)

// Mosaic is an ordered set of tiles with their combined bounds.
type Mosaic struct {
	Tiles []*formats.Tile

	// Bounds is the union of every tile's Rect.
	Bounds math.Rect

	// ValueRange is the union of every tile's observed range.
	ValueRange math.Range

	index *rtreego.Rtree
}

// New creates an empty mosaic.
func New() *Mosaic {
	return &Mosaic{
		ValueRange: math.EmptyRange(),
		index:      rtreego.NewTree(2, 25, 50),
	}
}

// Add appends a tile. The first tile seeds the aggregates, later tiles are
// unioned in.
func (m *Mosaic) Add(t *formats.Tile) {
	if len(m.Tiles) == 0 {
		m.Bounds = t.Rect()
		m.ValueRange = t.ObservedRange
	} else {
		m.Bounds = m.Bounds.Union(t.Rect())
		m.ValueRange = m.ValueRange.Union(t.ObservedRange)
	}
	m.Tiles = append(m.Tiles, t)
	m.index.Insert(&tileSpatial{tile: t, bound: Extent(t)})
}

// Len returns the number of tiles.
func (m *Mosaic) Len() int {
	return len(m.Tiles)
}

// CellSize returns the grid spacing of the first tile, or 0 for an empty
// mosaic.
func (m *Mosaic) CellSize() uint32 {
	if len(m.Tiles) == 0 {
		return 0
	}
	return m.Tiles[0].CellSize
}

// Offset returns the tile's placement in cells relative to the mosaic
// bounds. The vertical axis is flipped so row 0 of every tile, the
// northernmost row, lands at its mosaic-relative position.
//
// Each distance is divided by the cell size separately with integer
// division, so an origin that is not a whole number of cells from the
// mosaic edge is truncated to the cell containing it.
func (m *Mosaic) Offset(t *formats.Tile) (x, y int) {
	cs := int(m.CellSize())
	if cs == 0 {
		return 0, 0
	}
	r := t.Rect()
	x = (r.X - m.Bounds.X) / cs
	y = m.Bounds.Height/cs - (r.Y-m.Bounds.Y)/cs - r.Height/cs
	return x, y
}
