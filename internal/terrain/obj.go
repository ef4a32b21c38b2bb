package terrain

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// WriteOBJ writes meshes as Wavefront OBJ with their transforms applied.
// Vertex colours use the common "v x y z r g b" extension.
func WriteOBJ(w io.Writer, meshes []*Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d meshes\n", len(meshes))

	base := uint32(1)
	for _, m := range meshes {
		fmt.Fprintf(bw, "o %s\n", m.Name)
		for _, v := range m.Vertices {
			p := m.Transform.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1})
			fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n",
				p.X(), p.Y(), p.Z(), v.Color[0], v.Color[1], v.Color[2])
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n",
				base+m.Indices[i], base+m.Indices[i+1], base+m.Indices[i+2])
		}
		base += uint32(len(m.Vertices))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}
