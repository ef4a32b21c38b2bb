package gradient

import (
	"fmt"

	"github.com/Faultbox/siliconia/internal/config"
)

// FromConfig builds a gradient from the configured stops and NODATA colour.
func FromConfig(cfg config.GradientConfig) (*Gradient, error) {
	stops := make([]Stop, 0, len(cfg.Stops))
	for i, s := range cfg.Stops {
		c, err := ParseHex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		stops = append(stops, Stop{Point: s.Point, Colour: c})
	}

	g := New(stops...)
	if cfg.NoDataColor != "" {
		c, err := ParseHex(cfg.NoDataColor)
		if err != nil {
			return nil, fmt.Errorf("nodata colour: %w", err)
		}
		g.NoData = c
	}
	return g, nil
}
