package mosaic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/pkg/formats"
)

// ErrNoTiles is returned when a directory holds no matching files.
var ErrNoTiles = errors.New("no tiles found")

// Options controls directory assembly.
type Options struct {
	// Pattern filters file names with filepath.Match. Empty matches all.
	Pattern string

	// Workers is the number of tiles parsed concurrently. Values <= 1 parse
	// sequentially.
	Workers int

	// Logger receives progress and warnings. Nil disables logging.
	Logger *zap.Logger
}

// Assemble parses every file in dir and folds the tiles into a Mosaic.
// Files are taken in name order and the tile order matches it regardless of
// Workers. The first parse error aborts the whole assembly.
func Assemble(dir string, opts Options) (*Mosaic, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	paths, err := listTiles(dir, opts.Pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTiles, dir)
	}

	tiles, err := parseAll(paths, opts.Workers, log)
	if err != nil {
		return nil, err
	}

	m := New()
	for _, t := range tiles {
		if cs := m.CellSize(); cs != 0 && t.CellSize != cs {
			log.Warn("tile cell size differs from mosaic",
				zap.String("tile", t.Name()),
				zap.Uint32("cellsize", t.CellSize),
				zap.Uint32("mosaic_cellsize", cs))
		}
		m.Add(t)
	}

	log.Info("mosaic assembled",
		zap.Int("tiles", m.Len()),
		zap.Stringer("bounds", m.Bounds),
		zap.Stringer("range", m.ValueRange))

	return m, nil
}

// listTiles returns the regular files in dir, sorted by name.
func listTiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading tile directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pattern != "" {
			ok, err := filepath.Match(pattern, e.Name())
			if err != nil {
				return nil, fmt.Errorf("tile pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func parseAll(paths []string, workers int, log *zap.Logger) ([]*formats.Tile, error) {
	tiles := make([]*formats.Tile, len(paths))
	errs := make([]error, len(paths))

	if workers <= 1 {
		for i, p := range paths {
			tiles[i], errs[i] = parseTile(p, log)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return tiles, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, len(paths)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tiles[i], errs[i] = parseTile(paths[i], log)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Report the first failure in directory order so the error does not
	// depend on scheduling.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

func parseTile(path string, log *zap.Logger) (*formats.Tile, error) {
	log.Debug("parsing tile", zap.String("path", path))

	t, err := formats.ParseASCFile(path)
	if err != nil {
		return nil, err
	}

	for _, issue := range t.InvalidTokens {
		log.Warn("unparsable sample stored as 0",
			zap.String("tile", t.Name()),
			zap.Int("line", issue.Line),
			zap.String("token", issue.Token))
	}
	if !t.Complete() {
		log.Warn("tile sample count does not match header",
			zap.String("tile", t.Name()),
			zap.Int("samples", len(t.Samples)),
			zap.Uint32("expected", t.NRows*t.NCols))
	}

	log.Debug("parsed tile",
		zap.String("tile", t.Name()),
		zap.Stringer("rect", t.Rect()),
		zap.Stringer("range", t.ObservedRange),
		zap.Int("nodata", t.NoDataCount()))
	return t, nil
}
