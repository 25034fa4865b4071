package kernel

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// Triangles expands the indexed mesh into independent triangles.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	if m.IsEmpty() {
		return nil
	}
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &sdf.Triangle3{
			m.Vertex(int(m.Indices[i])),
			m.Vertex(int(m.Indices[i+1])),
			m.Vertex(int(m.Indices[i+2])),
		})
	}
	return tris
}

// SaveSTL writes the meshes into one binary STL file. Empty meshes are
// skipped.
func SaveSTL(path string, meshes ...*Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		tris = append(tris, m.Triangles()...)
	}
	return render.SaveSTL(path, tris)
}
