package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Graphics is what voices draw into.  Transformations apply to subsequent
// draws until the matching PopMatrix.
type Graphics interface {
	PushMatrix()
	PopMatrix()
	Translate(x, y, z float32)
	// Rotate turns by angle degrees around axis.
	Rotate(angle float32, axis mgl32.Vec3)
	Scale(x, y, z float32)

	// Color sets a uniform color for subsequent draws; MeshColor switches to
	// the meshes' own vertex colors.
	Color(c Color)
	MeshColor()
	LineWidth(w float32)
	PointSize(s float32)
	DepthTesting(on bool)
	Lighting(on bool)

	Draw(m *Mesh)
}

// Stack is a model-view matrix stack.
type Stack struct {
	top  mgl32.Mat4
	rest []mgl32.Mat4
}

func NewStack() *Stack { return &Stack{top: mgl32.Ident4()} }

func (s *Stack) Push() { s.rest = append(s.rest, s.top) }

func (s *Stack) Pop() {
	if n := len(s.rest); n > 0 {
		s.top = s.rest[n-1]
		s.rest = s.rest[:n-1]
	}
}

func (s *Stack) Top() mgl32.Mat4 { return s.top }

func (s *Stack) Reset() {
	s.top = mgl32.Ident4()
	s.rest = s.rest[:0]
}

func (s *Stack) Translate(x, y, z float32) { s.top = s.top.Mul4(mgl32.Translate3D(x, y, z)) }
func (s *Stack) Scale(x, y, z float32)     { s.top = s.top.Mul4(mgl32.Scale3D(x, y, z)) }

func (s *Stack) Rotate(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	s.top = s.top.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize()))
}

// Apply transforms a point by the top matrix.
func (s *Stack) Apply(v mgl32.Vec3) mgl32.Vec3 {
	return s.top.Mul4x1(v.Vec4(1)).Vec3()
}

// Projector maps eye space to pixels with a perspective camera at the
// origin looking down -z.
type Projector struct {
	Width, Height int
	FovY          float32
	Near, Far     float32
	proj          mgl32.Mat4
}

func NewProjector(width, height int) *Projector {
	p := &Projector{FovY: 60, Near: .1, Far: 100}
	p.Resize(width, height)
	return p
}

func (p *Projector) Resize(width, height int) {
	p.Width, p.Height = width, height
	aspect := float32(width) / float32(max(height, 1))
	p.proj = mgl32.Perspective(mgl32.DegToRad(p.FovY), aspect, p.Near, p.Far)
}

// Project returns pixel coordinates and depth in [-1, 1]; ok is false for
// points behind the camera.
func (p *Projector) Project(v mgl32.Vec3) (x, y, depth float32, ok bool) {
	c := p.proj.Mul4x1(v.Vec4(1))
	if c[3] <= 0 {
		return 0, 0, 0, false
	}
	ndc := c.Vec3().Mul(1 / c[3])
	x = (ndc[0] + 1) / 2 * float32(p.Width)
	y = (1 - ndc[1]) / 2 * float32(p.Height)
	return x, y, ndc[2], true
}

// Point is a projected vertex.
type Point struct {
	X, Y, Depth float32
	Color       Color
}

// Shape is one projected draw: a run of points to be joined according to
// the primitive.  Triangles always come as independent triples.
type Shape struct {
	Primitive Primitive
	Points    []Point
	Width     float32
	Depth     float32
	tested    bool
}

// Canvas is a Graphics that projects everything it is given into Shapes, for
// a backend to rasterize.
type Canvas struct {
	proj      *Projector
	stack     *Stack
	color     Color
	useMesh   bool
	lineWidth float32
	pointSize float32
	depthTest bool
	lighting  bool
	shapes    []Shape
}

var lightDir = mgl32.Vec3{.3, .6, 1}.Normalize()

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{proj: NewProjector(width, height), stack: NewStack()}
	c.Clear()
	return c
}

func (c *Canvas) Projector() *Projector { return c.proj }

// Clear drops recorded shapes and resets the drawing state.
func (c *Canvas) Clear() {
	c.shapes = c.shapes[:0]
	c.stack.Reset()
	c.color = White
	c.useMesh = false
	c.lineWidth = 1
	c.pointSize = 1
	c.depthTest = false
	c.lighting = false
}

// Shapes returns what has been drawn since Clear.  Runs of depth-tested
// shapes are ordered far to near; everything else keeps draw order.
func (c *Canvas) Shapes() []Shape {
	for i := 0; i < len(c.shapes); {
		j := i
		for j < len(c.shapes) && c.shapes[j].tested {
			j++
		}
		if run := c.shapes[i:j]; len(run) > 1 {
			sort.SliceStable(run, func(a, b int) bool { return run[a].Depth > run[b].Depth })
		}
		i = j + 1
	}
	return c.shapes
}

func (c *Canvas) PushMatrix()                           { c.stack.Push() }
func (c *Canvas) PopMatrix()                            { c.stack.Pop() }
func (c *Canvas) Translate(x, y, z float32)             { c.stack.Translate(x, y, z) }
func (c *Canvas) Rotate(angle float32, axis mgl32.Vec3) { c.stack.Rotate(angle, axis) }
func (c *Canvas) Scale(x, y, z float32)                 { c.stack.Scale(x, y, z) }
func (c *Canvas) LineWidth(w float32)                   { c.lineWidth = w }
func (c *Canvas) PointSize(s float32)                   { c.pointSize = s }
func (c *Canvas) DepthTesting(on bool)                  { c.depthTest = on }
func (c *Canvas) Lighting(on bool)                      { c.lighting = on }
func (c *Canvas) MeshColor()                            { c.useMesh = true }

func (c *Canvas) Color(col Color) {
	c.color = col
	c.useMesh = false
}

func (c *Canvas) Draw(m *Mesh) {
	verts := m.vertices
	idx := m.indices
	at := func(i int) int {
		if len(idx) > 0 {
			return int(idx[i])
		}
		return i
	}
	n := len(verts)
	if len(idx) > 0 {
		n = len(idx)
	}

	world := make([]mgl32.Vec3, len(verts))
	for i, v := range verts {
		world[i] = c.stack.Apply(v)
	}
	point := func(i int) (Point, bool) {
		k := at(i)
		x, y, d, ok := c.proj.Project(world[k])
		col := c.color
		if c.useMesh && k < len(m.colors) {
			col = m.colors[k]
		}
		if c.lighting && k < len(m.normals) {
			col = col.Scale(c.shade(m.normals[k]))
		}
		return Point{x, y, d, col}, ok
	}

	switch m.primitive {
	case Triangles, TriangleStrip:
		tri := func(a, b, d int) {
			pa, oka := point(a)
			pb, okb := point(b)
			pd, okd := point(d)
			if !oka || !okb || !okd {
				return
			}
			c.add(Shape{Primitive: Triangles, Points: []Point{pa, pb, pd}})
		}
		if m.primitive == Triangles {
			for i := 0; i+2 < n; i += 3 {
				tri(i, i+1, i+2)
			}
		} else {
			for i := 0; i+2 < n; i++ {
				tri(i, i+1, i+2)
			}
		}
	default:
		s := Shape{Primitive: m.primitive, Width: c.lineWidth}
		if m.primitive == Points {
			s.Width = c.pointSize
		}
		for i := 0; i < n; i++ {
			if p, ok := point(i); ok {
				s.Points = append(s.Points, p)
			}
		}
		if len(s.Points) > 0 {
			c.add(s)
		}
	}
}

func (c *Canvas) add(s Shape) {
	d := float32(0)
	for _, p := range s.Points {
		d += p.Depth
	}
	s.Depth = d / float32(len(s.Points))
	s.tested = c.depthTest
	c.shapes = append(c.shapes, s)
}

func (c *Canvas) shade(n mgl32.Vec3) float32 {
	m := c.stack.Top()
	w := m.Mul4x1(n.Vec4(0)).Vec3()
	if w.Len() == 0 {
		return 1
	}
	l := w.Normalize().Dot(lightDir)
	return float32(.3 + .7*math.Max(0, float64(l)))
}
