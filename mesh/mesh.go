// Package mesh holds the procedural geometry voices draw with and a small
// immediate-mode Graphics interface for drawing it.
package mesh

import "github.com/go-gl/mathgl/mgl32"

type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	}
	return "unknown"
}

// A Mesh is a list of vertices with optional per-vertex colors and normals,
// and optional indices into the vertex list.
type Mesh struct {
	primitive Primitive
	vertices  []mgl32.Vec3
	colors    []Color
	normals   []mgl32.Vec3
	indices   []uint32
}

func New(p Primitive) *Mesh {
	return &Mesh{primitive: p}
}

func (m *Mesh) Primitive() Primitive   { return m.primitive }
func (m *Mesh) Vertices() []mgl32.Vec3 { return m.vertices }
func (m *Mesh) Colors() []Color        { return m.colors }
func (m *Mesh) Normals() []mgl32.Vec3  { return m.normals }
func (m *Mesh) Indices() []uint32      { return m.indices }
func (m *Mesh) Vertex(x, y, z float32)   { m.vertices = append(m.vertices, mgl32.Vec3{x, y, z}) }
func (m *Mesh) Color(c Color)            { m.colors = append(m.colors, c) }
func (m *Mesh) Normal(n mgl32.Vec3)      { m.normals = append(m.normals, n) }
func (m *Mesh) Index(i ...uint32)        { m.indices = append(m.indices, i...) }

// Reset empties the mesh, keeping its primitive and allocations.
func (m *Mesh) Reset() {
	m.vertices = m.vertices[:0]
	m.colors = m.colors[:0]
	m.normals = m.normals[:0]
	m.indices = m.indices[:0]
}

// Fill gives every vertex the color c.
func (m *Mesh) Fill(c Color) {
	m.colors = m.colors[:0]
	for range m.vertices {
		m.colors = append(m.colors, c)
	}
}

// Decompress expands indexed geometry so each index gets its own vertex.
func (m *Mesh) Decompress() {
	if len(m.indices) == 0 {
		return
	}
	verts := make([]mgl32.Vec3, 0, len(m.indices))
	var colors []Color
	var normals []mgl32.Vec3
	for _, i := range m.indices {
		verts = append(verts, m.vertices[i])
		if int(i) < len(m.colors) {
			colors = append(colors, m.colors[i])
		}
		if int(i) < len(m.normals) {
			normals = append(normals, m.normals[i])
		}
	}
	m.vertices, m.colors, m.normals = verts, colors, normals
	m.indices = m.indices[:0]
}

// GenerateNormals computes flat face normals for triangle meshes.  Indexed
// meshes get smooth normals averaged over the faces sharing each vertex.
func (m *Mesh) GenerateNormals() {
	if m.primitive != Triangles {
		return
	}
	m.normals = make([]mgl32.Vec3, len(m.vertices))
	face := func(a, b, c uint32) {
		n := m.vertices[b].Sub(m.vertices[a]).Cross(m.vertices[c].Sub(m.vertices[a]))
		m.normals[a] = m.normals[a].Add(n)
		m.normals[b] = m.normals[b].Add(n)
		m.normals[c] = m.normals[c].Add(n)
	}
	if len(m.indices) > 0 {
		for i := 0; i+2 < len(m.indices); i += 3 {
			face(m.indices[i], m.indices[i+1], m.indices[i+2])
		}
	} else {
		for i := uint32(0); int(i)+2 < len(m.vertices); i += 3 {
			face(i, i+1, i+2)
		}
	}
	for i, n := range m.normals {
		if n.Len() > 0 {
			m.normals[i] = n.Normalize()
		}
	}
}

// Scale multiplies every vertex position.
func (m *Mesh) Scale(x, y, z float32) {
	for i, v := range m.vertices {
		m.vertices[i] = mgl32.Vec3{v[0] * x, v[1] * y, v[2] * z}
	}
}

// Translate offsets every vertex position.
func (m *Mesh) Translate(x, y, z float32) {
	for i, v := range m.vertices {
		m.vertices[i] = v.Add(mgl32.Vec3{x, y, z})
	}
}

// Copy replaces m's contents with a deep copy of src.
func (m *Mesh) Copy(src *Mesh) {
	m.primitive = src.primitive
	m.vertices = append(m.vertices[:0], src.vertices...)
	m.colors = append(m.colors[:0], src.colors...)
	m.normals = append(m.normals[:0], src.normals...)
	m.indices = append(m.indices[:0], src.indices...)
}

