package terrain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/internal/gradient"
	"github.com/Faultbox/siliconia/internal/mosaic"
	"github.com/Faultbox/siliconia/pkg/formats"
)

// ErrMeshTooLarge is returned for tiles with more vertices than a parsed
// grid may hold.
var ErrMeshTooLarge = errors.New("mesh too large")

// BuildMesh creates the mesh of one tile of m.
//
// Vertex (i, j) sits at (i, -sample, j): column along X, negated elevation
// along Y, row along Z. NODATA cells sit at height 0 with the gradient's
// NODATA colour. Every interior cell becomes two triangles
// (top-left, top-right, bottom-left) and (top-right, bottom-right, bottom-left).
func BuildMesh(t *formats.Tile, m *mosaic.Mosaic, g *gradient.Gradient, norm gradient.Normalizer) (*Mesh, error) {
	if size := uint64(t.NCols) * uint64(t.NRows); size > formats.MaxGridSamples {
		return nil, fmt.Errorf("%w: %s has %dx%d vertices", ErrMeshTooLarge, t.Name(), t.NCols, t.NRows)
	}
	ncols := int(t.NCols)
	nrows := int(t.NRows)

	mesh := &Mesh{
		Name:     t.Name(),
		Vertices: make([]Vertex, ncols*nrows),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}
	if ncols > 1 && nrows > 1 {
		mesh.Indices = make([]uint32, (ncols-1)*(nrows-1)*6)
	}

	for j := range nrows {
		for i := range ncols {
			s := t.At(i, j)
			pos := [3]float32{float32(i), -s.Or(0), float32(j)}
			mesh.Vertices[j*ncols+i] = Vertex{
				Position: pos,
				Color:    g.ColourOf(s, norm).Vec3(),
			}
			updateBounds(&mesh.Bounds, pos)
		}
	}

	k := 0
	for j := range nrows - 1 {
		for i := range ncols - 1 {
			tl := uint32(j*ncols + i)
			tr := tl + 1
			bl := tl + uint32(ncols)
			br := bl + 1
			copy(mesh.Indices[k:k+6], []uint32{tl, tr, bl, tr, br, bl})
			k += 6
		}
	}

	x, z := m.Offset(t)
	mesh.Offset = [3]float32{float32(x), 0, float32(z)}
	mesh.Transform = mgl32.Translate3D(float32(x), 0, float32(z))

	return mesh, nil
}

// BuildMeshes creates one mesh per tile, in tile order. Tiles are meshed
// concurrently when workers > 1. The first failure in tile order is returned.
func BuildMeshes(m *mosaic.Mosaic, g *gradient.Gradient, norm gradient.Normalizer, workers int, log *zap.Logger) ([]*Mesh, error) {
	if log == nil {
		log = zap.NewNop()
	}
	meshes := make([]*Mesh, len(m.Tiles))
	errs := make([]error, len(m.Tiles))

	build := func(i int) {
		meshes[i], errs[i] = BuildMesh(m.Tiles[i], m, g, norm)
		if errs[i] != nil {
			return
		}
		log.Debug("built mesh",
			zap.String("tile", meshes[i].Name),
			zap.Int("vertices", len(meshes[i].Vertices)),
			zap.Int("triangles", meshes[i].TriangleCount()))
	}

	if workers <= 1 {
		for i := range m.Tiles {
			build(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return meshes, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, len(m.Tiles)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				build(i)
			}
		}()
	}
	for i := range m.Tiles {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
