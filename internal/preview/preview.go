// Package preview renders a mosaic as a flat heat-map image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/siliconia/internal/gradient"
	"github.com/Faultbox/siliconia/internal/mosaic"
)

// legendHeight is the strip added below the map when Options.Legend is set.
const legendHeight = 24

// Options controls preview rendering.
type Options struct {
	// Width and Height scale the map. Zero keeps one pixel per cell; a single
	// zero side keeps the aspect ratio.
	Width  int
	Height int

	// Smooth uses Catmull-Rom resampling instead of nearest neighbour.
	Smooth bool

	// Legend adds a gradient bar labelled with the value range.
	Legend bool
}

// Render draws every sample of m at its mosaic position on a white canvas,
// one pixel per cell, then applies opts.
func Render(m *mosaic.Mosaic, g *gradient.Gradient, norm gradient.Normalizer, opts Options) (*image.NRGBA, error) {
	cs := int(m.CellSize())
	if cs == 0 {
		return nil, fmt.Errorf("empty mosaic")
	}
	w := m.Bounds.Width / cs
	h := m.Bounds.Height / cs
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("mosaic has no area: %v", m.Bounds)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), color.NRGBA{255, 255, 255, 255})

	for _, t := range m.Tiles {
		xoff, yoff := m.Offset(t)
		for j := range int(t.NRows) {
			for i := range int(t.NCols) {
				img.SetNRGBA(xoff+i, yoff+j, g.ColourOf(t.At(i, j), norm).NRGBA())
			}
		}
	}

	img = scale(img, opts)
	if opts.Legend {
		img = addLegend(img, g, m.ValueRange.Min, m.ValueRange.Max, norm)
	}
	return img, nil
}

func scale(src *image.NRGBA, opts Options) *image.NRGBA {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	w, h := opts.Width, opts.Height
	switch {
	case w <= 0 && h <= 0:
		return src
	case w <= 0:
		w = max(1, sw*h/sh)
	case h <= 0:
		h = max(1, sh*w/sw)
	}
	if w == sw && h == sh {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	var s xdraw.Scaler = xdraw.NearestNeighbor
	if opts.Smooth {
		s = xdraw.CatmullRom
	}
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// addLegend extends img with a strip holding the gradient between lo and hi
// and their values as text.
func addLegend(img *image.NRGBA, g *gradient.Gradient, lo, hi float64, norm gradient.Normalizer) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h+legendHeight))
	xdraw.Draw(out, img.Bounds(), img, image.Point{}, xdraw.Src)

	strip := image.Rect(0, h, w, h+legendHeight)
	fill(out, strip, color.NRGBA{255, 255, 255, 255})

	bar := image.Rect(0, h+legendHeight-8, w, h+legendHeight)
	for x := range w {
		v := lo
		if w > 1 {
			v = lo + (hi-lo)*float64(x)/float64(w-1)
		}
		c := g.Evaluate(norm(v)).NRGBA()
		for y := bar.Min.Y; y < bar.Max.Y; y++ {
			out.SetNRGBA(x, y, c)
		}
	}

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	baseline := h + 12
	d.Dot = fixed.P(2, baseline)
	d.DrawString(fmt.Sprintf("%g", lo))

	hiText := fmt.Sprintf("%g", hi)
	d.Dot = fixed.P(w-2-d.MeasureString(hiText).Ceil(), baseline)
	d.DrawString(hiText)

	return out
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	xdraw.Draw(img, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Save writes img to path as PNG or BMP, chosen by extension.
func Save(path string, img image.Image) error {
	var encode func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	default:
		return fmt.Errorf("unsupported preview format %q (want .png or .bmp)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}
