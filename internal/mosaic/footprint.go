package mosaic

import (
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/siliconia/pkg/formats"
	"github.com/Faultbox/siliconia/pkg/math"
)

// Footprint returns one polygon feature per tile plus a "mosaic" feature for
// the combined extent. Coordinates are in the tiles' source units.
func (m *Mosaic) Footprint() *geojson.FeatureCollection {
	return FootprintOf(m.Tiles)
}

// FootprintOf is Footprint restricted to tiles. The "mosaic" feature covers
// only the given tiles.
func FootprintOf(tiles []*formats.Tile) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(tiles) == 0 {
		return fc
	}

	total := Extent(tiles[0])
	values := math.EmptyRange()
	for _, t := range tiles {
		b := Extent(t)
		total = total.Union(b)
		values = values.Union(t.ObservedRange)

		f := geojson.NewFeature(b.ToPolygon())
		f.Properties["kind"] = "tile"
		f.Properties["name"] = t.Name()
		f.Properties["ncols"] = t.NCols
		f.Properties["nrows"] = t.NRows
		f.Properties["cellsize"] = t.CellSize
		if !t.ObservedRange.IsEmpty() {
			f.Properties["min"] = t.ObservedRange.Min
			f.Properties["max"] = t.ObservedRange.Max
		}
		fc.Append(f)
	}

	f := geojson.NewFeature(total.ToPolygon())
	f.Properties["kind"] = "mosaic"
	f.Properties["tiles"] = len(tiles)
	if !values.IsEmpty() {
		f.Properties["min"] = values.Min
		f.Properties["max"] = values.Max
	}
	fc.Append(f)

	return fc
}
