package config

import "fmt"

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.Gradient.Normalize {
	case "", "span", "relative":
	default:
		return fmt.Errorf("gradient.normalize: unknown mode %q", c.Gradient.Normalize)
	}

	for i := 1; i < len(c.Gradient.Stops); i++ {
		if c.Gradient.Stops[i].Point < c.Gradient.Stops[i-1].Point {
			return fmt.Errorf("gradient.stops[%d]: point %g is lower than the previous stop %g",
				i, c.Gradient.Stops[i].Point, c.Gradient.Stops[i-1].Point)
		}
	}

	if c.Data.Workers < 0 {
		return fmt.Errorf("data.workers: must not be negative, got %d", c.Data.Workers)
	}
	switch c.Graphics.ScreenshotFormat {
	case "", "png", "bmp":
	default:
		return fmt.Errorf("graphics.screenshot_format: unknown format %q", c.Graphics.ScreenshotFormat)
	}
	if c.Preview.Width < 0 || c.Preview.Height < 0 {
		return fmt.Errorf("preview: size must not be negative, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	return nil
}
