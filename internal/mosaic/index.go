package mosaic

import (
	gomath "math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/Faultbox/siliconia/pkg/formats"
)

// tileSpatial adapts a tile to the r-tree.
type tileSpatial struct {
	tile  *formats.Tile
	bound orb.Bound
}

// Bounds implements the rtreego.Spatial interface
func (s *tileSpatial) Bounds() rtreego.Rect {
	return boundRect(s.bound)
}

func boundRect(b orb.Bound) rtreego.Rect {
	minX, minY := b.Min[0], b.Min[1]
	w, h := b.Max[0]-minX, b.Max[1]-minY

	// rtreego rejects zero-length sides.
	const eps = 1e-9
	w = gomath.Max(w, eps)
	h = gomath.Max(h, eps)

	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
	return rect
}

// Extent returns the ground area covered by a tile in source coordinates:
// easting from xllcorner, northing from yllcorner, both growing with the
// tile's width and height.
func Extent(t *formats.Tile) orb.Bound {
	x := float64(t.OriginX)
	y := float64(t.OriginY)
	w := float64(t.NCols) * float64(t.CellSize)
	h := float64(t.NRows) * float64(t.CellSize)
	return orb.Bound{
		Min: orb.Point{x, y},
		Max: orb.Point{x + w, y + h},
	}
}

// contains tests a half-open extent: min edges are inside, max edges are not.
func contains(b orb.Bound, x, y float64) bool {
	return x >= b.Min[0] && x < b.Max[0] && y >= b.Min[1] && y < b.Max[1]
}

// TileAt returns the tile covering the point (x, y), in source coordinates.
// When tiles overlap the earliest one wins.
func (m *Mosaic) TileAt(x, y float64) (*formats.Tile, bool) {
	var found *formats.Tile
	pos := -1
	for _, s := range m.index.SearchIntersect(rtreego.Point{x, y}.ToRect(0.01)) {
		ts := s.(*tileSpatial)
		if !contains(ts.bound, x, y) {
			continue
		}
		if i := m.position(ts.tile); pos < 0 || i < pos {
			found, pos = ts.tile, i
		}
	}
	return found, found != nil
}

// Intersecting returns every tile whose extent overlaps b, in mosaic order.
func (m *Mosaic) Intersecting(b orb.Bound) []*formats.Tile {
	hits := make(map[*formats.Tile]bool)
	for _, s := range m.index.SearchIntersect(boundRect(b)) {
		ts := s.(*tileSpatial)
		if ts.bound.Intersects(b) {
			hits[ts.tile] = true
		}
	}

	out := make([]*formats.Tile, 0, len(hits))
	for _, t := range m.Tiles {
		if hits[t] {
			out = append(out, t)
		}
	}
	return out
}

// ElevationAt returns the sample under the point (x, y), in source
// coordinates. ok is false outside every tile and for NODATA cells.
func (m *Mosaic) ElevationAt(x, y float64) (float32, bool) {
	t, ok := m.TileAt(x, y)
	if !ok {
		return 0, false
	}
	b := Extent(t)
	cs := float64(t.CellSize)
	col := int(gomath.Floor((x - b.Min[0]) / cs))
	row := int(t.NRows) - 1 - int(gomath.Floor((y-b.Min[1])/cs))
	return t.At(col, row).Get()
}

func (m *Mosaic) position(t *formats.Tile) int {
	for i, tt := range m.Tiles {
		if tt == t {
			return i
		}
	}
	return -1
}
