package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32  `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32  `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32   `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string     `json:"name"`     // which model this came from
	Color    [3]float32 `json:"color"`    // normalized RGB
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
	return len(m.Indices) == 0
}

func (m *Mesh) vertex(i uint32) [3]float64 {
	return [3]float64{
		float64(m.Vertices[i*3]),
		float64(m.Vertices[i*3+1]),
		float64(m.Vertices[i*3+2]),
	}
}

// Volume returns the signed enclosed volume. It is only meaningful for a
// closed, outward-facing mesh.
func (m *Mesh) Volume() float64 {
	var vol float64
	for t := 0; t < m.TriangleCount(); t++ {
		a := m.vertex(m.Indices[t*3])
		b := m.vertex(m.Indices[t*3+1])
		c := m.vertex(m.Indices[t*3+2])
		// a . (b x c)
		vol += a[0]*(b[1]*c[2]-b[2]*c[1]) +
			a[1]*(b[2]*c[0]-b[0]*c[2]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])
	}
	return vol / 6
}

// BoundingBox returns the axis-aligned bounds of the referenced vertices.
// An empty mesh returns zero vectors.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for i := range min {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for _, idx := range m.Indices {
		v := m.vertex(idx)
		for i := range v {
			min[i] = math.Min(min[i], v[i])
			max[i] = math.Max(max[i], v[i])
		}
	}
	return min, max
}

// IsClosed reports whether the triangles form a watertight surface: with
// vertices matched by position, every directed edge is met by exactly one
// edge running the other way.
func (m *Mesh) IsClosed() bool {
	if m.IsEmpty() {
		return false
	}
	type key [3]float32
	pos := func(i uint32) key {
		return key{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
	}
	type edge struct{ from, to key }
	edges := make(map[edge]int)
	for t := 0; t < m.TriangleCount(); t++ {
		for j := 0; j < 3; j++ {
			a := pos(m.Indices[t*3+j])
			b := pos(m.Indices[t*3+(j+1)%3])
			if a != b {
				edges[edge{a, b}]++
			}
		}
	}
	for e, n := range edges {
		if n != 1 || edges[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}

// Reset drops the buffers so a mesh that is no longer displayed stops
// holding memory.
func (m *Mesh) Reset() {
	m.Vertices = nil
	m.Normals = nil
	m.Indices = nil
}
