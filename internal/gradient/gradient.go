// Package gradient maps normalized elevation values to colours through a
// piecewise-linear colour ramp.
package gradient

import (
	"github.com/Faultbox/siliconia/pkg/formats"
)

// Stop anchors a colour at a point of the normalized domain.
type Stop struct {
	Point  float64
	Colour Colour
}

// Gradient is an ordered list of stops. Stops must be given with
// increasing points; this is not checked.
type Gradient struct {
	Stops []Stop

	// Default is returned for values below the first stop and for an empty
	// gradient.
	Default Colour

	// NoData is the colour of cells without a measurement.
	NoData Colour
}

// New creates a gradient from stops, with white as both the default and
// the NODATA colour.
func New(stops ...Stop) *Gradient {
	return &Gradient{
		Stops:   stops,
		Default: White,
		NoData:  White,
	}
}

// Default returns the black-to-red ramp.
func Default() *Gradient {
	return New(
		Stop{Point: 0.0, Colour: Black},
		Stop{Point: 1.0, Colour: Red},
	)
}

// Evaluate returns the colour at v.
//
// Between two stops the colour is interpolated channel by channel and
// truncated. At or above the last stop the last colour is returned. Below the
// first stop the default colour is returned.
func (g *Gradient) Evaluate(v float64) Colour {
	n := len(g.Stops)
	if n == 0 || v < g.Stops[0].Point {
		return g.Default
	}

	for i := 0; i < n-1; i++ {
		a, b := g.Stops[i], g.Stops[i+1]
		if v >= a.Point && v < b.Point {
			t := (v - a.Point) / (b.Point - a.Point)
			return Colour{
				R: lerp(a.Colour.R, b.Colour.R, t),
				G: lerp(a.Colour.G, b.Colour.G, t),
				B: lerp(a.Colour.B, b.Colour.B, t),
			}
		}
	}
	return g.Stops[n-1].Colour
}

// ColourOf returns the colour of a sample. NODATA samples bypass
// interpolation.
func (g *Gradient) ColourOf(s formats.Sample, norm Normalizer) Colour {
	v, ok := s.Get()
	if !ok {
		return g.NoData
	}
	return g.Evaluate(norm(float64(v)))
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
