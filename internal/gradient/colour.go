package gradient

import (
	"fmt"
	"image/color"
	"strconv"
)

// Colour is an 8-bit RGB colour.
type Colour struct {
	R, G, B uint8
}

// Common colours.
var (
	White = Colour{255, 255, 255}
	Black = Colour{0, 0, 0}
	Red   = Colour{255, 0, 0}
)

// Vec3 returns the colour as normalized floats in [0, 1], the layout used
// by mesh vertices.
func (c Colour) Vec3() [3]float32 {
	return [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}

// NRGBA converts the colour to an opaque image/color value.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the colour as "#rrggbb".
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Colour) String() string {
	return c.Hex()
}

// ParseHex parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ParseHex(s string) (Colour, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Colour{r * 17, g * 17, b * 17}, nil
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return Colour{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	default:
		return Colour{}, fmt.Errorf("invalid colour %q: expected #rgb or #rrggbb", s)
	}
}
