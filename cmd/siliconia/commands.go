package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/internal/config"
	"github.com/Faultbox/siliconia/internal/gradient"
	"github.com/Faultbox/siliconia/internal/logger"
	"github.com/Faultbox/siliconia/internal/mosaic"
	"github.com/Faultbox/siliconia/internal/preview"
	"github.com/Faultbox/siliconia/internal/terrain"
)

// scene is everything the commands derive from the config.
type scene struct {
	mosaic   *mosaic.Mosaic
	gradient *gradient.Gradient
	norm     gradient.Normalizer
}

func loadScene(cfg *config.Config) (*scene, error) {
	m, err := mosaic.Assemble(cfg.Data.TileDir, mosaic.Options{
		Pattern: cfg.Data.Pattern,
		Workers: cfg.Data.Workers,
		Logger:  logger.Named("mosaic"),
	})
	if err != nil {
		return nil, err
	}

	g, err := gradient.FromConfig(cfg.Gradient)
	if err != nil {
		return nil, err
	}
	norm, err := gradient.NormalizerFor(cfg.Gradient.Normalize, m.ValueRange)
	if err != nil {
		return nil, err
	}
	return &scene{mosaic: m, gradient: g, norm: norm}, nil
}

func (s *scene) meshes(cfg *config.Config) ([]*terrain.Mesh, error) {
	return terrain.BuildMeshes(s.mosaic, s.gradient, s.norm, cfg.Data.Workers, logger.Named("mesh"))
}

func cmdInfo(cfg *config.Config) error {
	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	m := s.mosaic

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TILE\tSIZE\tCELL\tRECT\tRANGE\tNODATA\tWARNINGS")
	for _, t := range m.Tiles {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\t%v\t%d\t%d\n",
			t.Name(), t.NCols, t.NRows, t.CellSize, t.Rect(), t.ObservedRange, t.NoDataCount(), len(t.InvalidTokens))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTiles:     %d\n", m.Len())
	fmt.Printf("Cell size: %d\n", m.CellSize())
	fmt.Printf("Bounds:    %v\n", m.Bounds)
	fmt.Printf("Range:     %v\n", m.ValueRange)
	return nil
}

func cmdPreview(cfg *config.Config) error {
	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	img, err := preview.Render(s.mosaic, s.gradient, s.norm, preview.Options{
		Width:  cfg.Preview.Width,
		Height: cfg.Preview.Height,
		Smooth: cfg.Preview.Smooth,
		Legend: cfg.Preview.Legend,
	})
	if err != nil {
		return err
	}
	if err := preview.Save(cfg.Preview.Output, img); err != nil {
		return err
	}

	logger.Info("preview written",
		zap.String("path", cfg.Preview.Output),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

func cmdFootprint(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("footprint", flag.ContinueOnError)
	bbox := fs.String("bbox", "", "Only tiles overlapping minx,miny,maxx,maxy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	args = fs.Args()

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	tiles := s.mosaic.Tiles
	if *bbox != "" {
		b, err := parseBBox(*bbox)
		if err != nil {
			return err
		}
		tiles = s.mosaic.Intersecting(b)
		logger.Debug("bbox filter", zap.String("bbox", *bbox), zap.Int("tiles", len(tiles)))
	}

	data, err := json.MarshalIndent(mosaic.FootprintOf(tiles), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding footprint: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("writing footprint: %w", err)
	}
	logger.Info("footprint written", zap.String("path", args[0]), zap.Int("tiles", len(tiles)))
	return nil
}

// parseBBox reads "minx,miny,maxx,maxy" in source coordinates.
func parseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("invalid bbox %q: want minx,miny,maxx,maxy", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, fmt.Errorf("invalid bbox %q: min exceeds max", s)
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func cmdQuery(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: siliconia query <x> <y>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[1], err)
	}

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	t, ok := s.mosaic.TileAt(x, y)
	if !ok {
		fmt.Printf("%g %g: outside mosaic\n", x, y)
		return nil
	}
	v, ok := s.mosaic.ElevationAt(x, y)
	if !ok {
		fmt.Printf("%g %g: NODATA (%s)\n", x, y, t.Name())
		return nil
	}
	c := s.gradient.Evaluate(s.norm(float64(v)))
	fmt.Printf("%g %g: %g (%s, colour %s)\n", x, y, v, t.Name(), c)
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	meshes, err := s.meshes(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return terrain.WriteOBJ(os.Stdout, meshes)
	}
	if err := writeOBJFile(args[0], meshes); err != nil {
		return err
	}
	logger.Info("meshes exported", zap.String("path", args[0]), zap.Int("meshes", len(meshes)))
	return nil
}

// writeOBJFile writes meshes to path. A failed Close is returned
// along with any write error.
func writeOBJFile(path string, meshes []*terrain.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing OBJ: %w", cerr))
		}
	}()
	return terrain.WriteOBJ(f, meshes)
}

func cmdInitConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Println(args[0])
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
