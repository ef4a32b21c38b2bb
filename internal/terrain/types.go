// Package terrain builds coloured height-field meshes from elevation tiles.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one grid sample: local position and colour.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// Mesh holds one tile's mesh data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32 // triangle list, local to Vertices

	// Offset places the tile in the mosaic, in cells.
	Offset [3]float32

	// Transform is a pure translation by Offset.
	Transform mgl32.Mat4

	Bounds Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh in local space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Model places the mesh in world space: its translation in cells, then X
// and Z scaled by the cell size. Heights are already in world units.
func (m *Mesh) Model(cellSize float32) mgl32.Mat4 {
	return mgl32.Scale3D(cellSize, 1, cellSize).Mul4(m.Transform)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
