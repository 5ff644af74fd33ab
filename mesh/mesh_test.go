package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestShapes(t *testing.T) {
	for name, test := range map[string]struct {
		build          func(*Mesh)
		verts, indices int
	}{
		"sphere": {func(m *Mesh) { AddSphere(m, 1, 8, 4) }, 9 * 5, 8 * 4 * 6},
		"disc":   {func(m *Mesh) { AddDisc(m, .3, 30) }, 31, 90},
		"rect":   {func(m *Mesh) { AddRect(m, .3, .5) }, 4, 6},
	} {
		m := New(Points)
		test.build(m)
		if m.Primitive() != Triangles {
			t.Errorf("%s: primitive %v", name, m.Primitive())
		}
		if len(m.Vertices()) != test.verts || len(m.Indices()) != test.indices {
			t.Errorf("%s: %d vertices, %d indices; want %d, %d", name, len(m.Vertices()), len(m.Indices()), test.verts, test.indices)
		}
		for _, i := range m.Indices() {
			if int(i) >= len(m.Vertices()) {
				t.Fatalf("%s: index %d out of range", name, i)
			}
		}
	}
}

func TestSphereRadius(t *testing.T) {
	m := New(Triangles)
	AddSphere(m, 2, 10, 10)
	for _, v := range m.Vertices() {
		if math.Abs(float64(v.Len())-2) > 1e-5 {
			t.Fatalf("vertex %v not on sphere", v)
		}
	}
}

func TestDecompressAndNormals(t *testing.T) {
	m := New(Triangles)
	AddRect(m, 2, 2)
	m.Decompress()
	if len(m.Vertices()) != 6 || len(m.Indices()) != 0 {
		t.Fatalf("decompressed to %d vertices, %d indices", len(m.Vertices()), len(m.Indices()))
	}
	m.GenerateNormals()
	for _, n := range m.Normals() {
		if !n.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
			t.Errorf("normal %v, want +z", n)
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	m := New(Triangles)
	AddRect(m, 1, 1)
	c := New(Points)
	c.Copy(m)
	if c.Primitive() != Triangles {
		t.Errorf("copy has primitive %v", c.Primitive())
	}
	c.Scale(2, 2, 2)
	if m.Vertices()[0] == c.Vertices()[0] {
		t.Error("scaling the copy changed the original")
	}
	if c.Vertices()[0] != (mgl32.Vec3{-1, -1, 0}) {
		t.Errorf("scaled vertex %v", c.Vertices()[0])
	}
}

func TestHSV(t *testing.T) {
	for h, want := range map[float64]Color{
		0:      {1, 0, 0, 1},
		1:      {1, 0, 0, 1},
		1.5:    {0, 1, 1, 1},
		-.5:    {0, 1, 1, 1},
		1. / 3: {0, 1, 0, 1},
	} {
		got := HSV(h, 1, 1)
		if math.Abs(float64(got.R-want.R)) > 1e-4 || math.Abs(float64(got.G-want.G)) > 1e-4 || math.Abs(float64(got.B-want.B)) > 1e-4 {
			t.Errorf("HSV(%v) = %v, want %v", h, got, want)
		}
	}
	if c := HSV(math.Inf(1), 1, 1); c.A != 1 {
		t.Errorf("HSV(inf) = %v", c)
	}
}

func TestProjectorCenter(t *testing.T) {
	p := NewProjector(200, 100)
	x, y, _, ok := p.Project(mgl32.Vec3{0, 0, -10})
	if !ok || math.Abs(float64(x-100)) > 1e-3 || math.Abs(float64(y-50)) > 1e-3 {
		t.Errorf("center projects to %v, %v (%v)", x, y, ok)
	}
	if _, _, _, ok := p.Project(mgl32.Vec3{0, 0, 10}); ok {
		t.Error("point behind camera projected")
	}
	x, y, _, _ = p.Project(mgl32.Vec3{1, 1, -10})
	if x <= 100 || y >= 50 {
		t.Errorf("up-right point at %v, %v", x, y)
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(640, 480)
	m := New(Triangles)
	AddRect(m, 1, 1)

	c.PushMatrix()
	c.Translate(0, 0, -4)
	c.Color(RGB(.5, .5, .5))
	c.Draw(m)
	c.PopMatrix()

	strip := New(LineStrip)
	for i := 0; i < 5; i++ {
		strip.Color(Hue(float64(i) / 5))
		strip.Vertex(float32(i), 0, -10)
	}
	c.MeshColor()
	c.LineWidth(3)
	c.Draw(strip)

	shapes := c.Shapes()
	if len(shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(shapes))
	}
	for _, s := range shapes[:2] {
		if s.Primitive != Triangles || len(s.Points) != 3 {
			t.Errorf("bad triangle %+v", s)
		}
		if s.Points[0].Color != RGB(.5, .5, .5) {
			t.Errorf("triangle color %v", s.Points[0].Color)
		}
	}
	if s := shapes[2]; s.Primitive != LineStrip || len(s.Points) != 5 || s.Width != 3 {
		t.Errorf("bad strip %+v", s)
	} else if s.Points[0].Color != Hue(0) {
		t.Errorf("strip did not use mesh colors: %v", s.Points[0].Color)
	}

	c.Clear()
	if len(c.Shapes()) != 0 {
		t.Error("Clear kept shapes")
	}
}

func TestCanvasDepthOrder(t *testing.T) {
	c := NewCanvas(100, 100)
	c.DepthTesting(true)
	near, far := New(Triangles), New(Triangles)
	AddRect(near, 1, 1)
	AddRect(far, 1, 1)
	near.Translate(0, 0, -2)
	far.Translate(0, 0, -20)
	c.Draw(near)
	c.Draw(far)
	s := c.Shapes()
	if s[0].Depth < s[len(s)-1].Depth {
		t.Errorf("shapes not ordered far to near: %v .. %v", s[0].Depth, s[len(s)-1].Depth)
	}
}

func TestStack(t *testing.T) {
	s := NewStack()
	s.Push()
	s.Translate(1, 2, 3)
	s.Scale(2, 2, 2)
	if v := s.Apply(mgl32.Vec3{1, 1, 1}); !v.ApproxEqual(mgl32.Vec3{3, 4, 5}) {
		t.Errorf("transformed point %v", v)
	}
	s.Rotate(90, mgl32.Vec3{0, 0, 1})
	if v := s.Apply(mgl32.Vec3{1, 0, 0}); !v.ApproxEqualThreshold(mgl32.Vec3{1, 4, 3}, 1e-5) {
		t.Errorf("rotated point %v", v)
	}
	s.Pop()
	if v := s.Apply(mgl32.Vec3{1, 1, 1}); v != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Pop did not restore identity: %v", v)
	}
}
