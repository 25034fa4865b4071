// Package kernel holds the flat triangle-mesh buffers handed to the renderer
// and the generators that fill them: swept tubes, swept rectangles, UV spheres
// and plane grids. Generators assume validated input; callers in the builder
// package check sizes and finiteness first.
package kernel

import (
	"fmt"
	"math"
	"slices"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}

// Vertex returns vertex i as a vector.
func (m *Mesh) Vertex(i int) v3.Vec {
	return v3.Vec{X: float64(m.Vertices[3*i]), Y: float64(m.Vertices[3*i+1]), Z: float64(m.Vertices[3*i+2])}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) v3.Vec {
	return v3.Vec{X: float64(m.Normals[3*i]), Y: float64(m.Normals[3*i+1]), Z: float64(m.Normals[3*i+2])}
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty mesh
// has a zero box.
func (m *Mesh) Bounds() sdf.Box3 {
	if m.IsEmpty() {
		return sdf.Box3{}
	}
	bb := sdf.Box3{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		bb.Min = bb.Min.Min(v)
		bb.Max = bb.Max.Max(v)
	}
	return bb
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: slices.Clone(m.Vertices),
		Normals:  slices.Clone(m.Normals),
		Indices:  slices.Clone(m.Indices),
	}
}

// Transform returns a copy of the mesh with positions mapped through t and
// normals mapped through its rotation part. t must be a rigid transform.
func (m *Mesh) Transform(t sdf.M44) *Mesh {
	out := m.Clone()
	origin := t.MulPosition(v3.Vec{})
	for i := 0; i < m.VertexCount(); i++ {
		p := t.MulPosition(m.Vertex(i))
		out.Vertices[3*i] = float32(p.X)
		out.Vertices[3*i+1] = float32(p.Y)
		out.Vertices[3*i+2] = float32(p.Z)
		if len(m.Normals) == len(m.Vertices) {
			n := t.MulPosition(m.Normal(i)).Sub(origin).Normalize()
			out.Normals[3*i] = float32(n.X)
			out.Normals[3*i+1] = float32(n.Y)
			out.Normals[3*i+2] = float32(n.Z)
		}
	}
	return out
}

// Validate checks buffer consistency: matching normal count, whole
// triangles, in-range indices and finite values.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("kernel: vertex buffer length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("kernel: %d normals for %d vertex floats", len(m.Normals), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("kernel: index buffer length %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("kernel: index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	for i, f := range m.Vertices {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return fmt.Errorf("kernel: vertex component %d is %v", i, f)
		}
	}
	for i, f := range m.Normals {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return fmt.Errorf("kernel: normal component %d is %v", i, f)
		}
	}
	return nil
}

// builder accumulates vertices and triangles.
type builder struct {
	m Mesh
}

func newBuilder(nVtx, nTri int) *builder {
	return &builder{m: Mesh{
		Vertices: make([]float32, 0, nVtx*3),
		Normals:  make([]float32, 0, nVtx*3),
		Indices:  make([]uint32, 0, nTri*3),
	}}
}

// vertex appends a position and normal and returns its index.
func (b *builder) vertex(p, n v3.Vec) uint32 {
	idx := uint32(len(b.m.Vertices) / 3)
	b.m.Vertices = append(b.m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	b.m.Normals = append(b.m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	return idx
}

func (b *builder) triangle(i0, i1, i2 uint32) {
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

func (b *builder) mesh() *Mesh {
	m := b.m
	return &m
}
