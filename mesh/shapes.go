package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AddSphere appends an indexed UV sphere centered on the origin.
func AddSphere(m *Mesh, radius float32, slices, stacks int) {
	m.primitive = Triangles
	base := uint32(len(m.vertices))
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		sp, cp := math.Sincos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			st, ct := math.Sincos(theta)
			n := mgl32.Vec3{float32(sp * ct), float32(cp), float32(sp * st)}
			m.vertices = append(m.vertices, n.Mul(radius))
			m.normals = append(m.normals, n)
		}
	}
	row := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := base + i*row + j
			b := a + row
			m.indices = append(m.indices, a, b, a+1, a+1, b, b+1)
		}
	}
}

// AddDisc appends a disc in the xy plane as a fan of triangles.
func AddDisc(m *Mesh, radius float32, slices int) {
	m.primitive = Triangles
	base := uint32(len(m.vertices))
	up := mgl32.Vec3{0, 0, 1}
	m.vertices = append(m.vertices, mgl32.Vec3{})
	m.normals = append(m.normals, up)
	for j := 0; j < slices; j++ {
		s, c := math.Sincos(2 * math.Pi * float64(j) / float64(slices))
		m.vertices = append(m.vertices, mgl32.Vec3{radius * float32(c), radius * float32(s), 0})
		m.normals = append(m.normals, up)
	}
	for j := uint32(0); j < uint32(slices); j++ {
		next := (j+1)%uint32(slices) + 1
		m.indices = append(m.indices, base, base+j+1, base+next)
	}
}

// AddRect appends a width by height rectangle in the xy plane centered on
// the origin.
func AddRect(m *Mesh, width, height float32) {
	m.primitive = Triangles
	base := uint32(len(m.vertices))
	w, h := width/2, height/2
	up := mgl32.Vec3{0, 0, 1}
	for _, v := range []mgl32.Vec3{{-w, -h, 0}, {w, -h, 0}, {w, h, 0}, {-w, h, 0}} {
		m.vertices = append(m.vertices, v)
		m.normals = append(m.normals, up)
	}
	m.indices = append(m.indices, base, base+1, base+2, base+2, base+3, base)
}
