package biome

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GeometryKind is the closed set of shapes a scene can draw.
type GeometryKind uint8

const (
	GeometrySphere GeometryKind = iota
	GeometryCapsule
	GeometryBox
	GeometryIcosahedron
	GeometryTorusKnot
	GeometryPoint
)

func (k GeometryKind) String() string {
	switch k {
	case GeometrySphere:
		return "sphere"
	case GeometryCapsule:
		return "capsule"
	case GeometryBox:
		return "box"
	case GeometryIcosahedron:
		return "icosahedron"
	case GeometryTorusKnot:
		return "torus-knot"
	case GeometryPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Wireframe is a model-space line mesh.
type Wireframe struct {
	Vertices []mgl32.Vec3
	Edges    [][2]int
}

var icosahedronVertices = func() []mgl32.Vec3 {
	t := float32((1 + math.Sqrt(5)) / 2)
	return []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}()

var icosahedronFaces = [][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Icosahedron builds a unit-radius icosphere wireframe. Each face is split
// into (detail+1)^2 triangles whose vertices are pushed onto the sphere.
func Icosahedron(detail int) Wireframe {
	if detail < 0 {
		detail = 0
	}
	b := wireBuilder{index: make(map[[3]int32]int), edges: make(map[[2]int]struct{})}
	cols := detail + 1

	for _, f := range icosahedronFaces {
		a, bv, c := icosahedronVertices[f[0]], icosahedronVertices[f[1]], icosahedronVertices[f[2]]

		grid := make([][]mgl32.Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			aj := lerpVec(a, c, float32(i)/float32(cols))
			bj := lerpVec(bv, c, float32(i)/float32(cols))
			rows := cols - i
			grid[i] = make([]mgl32.Vec3, rows+1)
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i][j] = aj
				} else {
					grid[i][j] = lerpVec(aj, bj, float32(j)/float32(rows))
				}
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					b.triangle(grid[i][k+1], grid[i+1][k], grid[i][k])
				} else {
					b.triangle(grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
				}
			}
		}
	}
	return b.wireframe()
}

type wireBuilder struct {
	vertices []mgl32.Vec3
	index    map[[3]int32]int
	edges    map[[2]int]struct{}
	order    [][2]int
}

func (b *wireBuilder) vertex(v mgl32.Vec3) int {
	v = v.Normalize()
	key := [3]int32{
		int32(math.Round(float64(v.X()) * 1e4)),
		int32(math.Round(float64(v.Y()) * 1e4)),
		int32(math.Round(float64(v.Z()) * 1e4)),
	}
	if i, ok := b.index[key]; ok {
		return i
	}
	b.vertices = append(b.vertices, v)
	b.index[key] = len(b.vertices) - 1
	return len(b.vertices) - 1
}

func (b *wireBuilder) edge(i, j int) {
	if i > j {
		i, j = j, i
	}
	e := [2]int{i, j}
	if _, ok := b.edges[e]; ok {
		return
	}
	b.edges[e] = struct{}{}
	b.order = append(b.order, e)
}

func (b *wireBuilder) triangle(p0, p1, p2 mgl32.Vec3) {
	i0, i1, i2 := b.vertex(p0), b.vertex(p1), b.vertex(p2)
	b.edge(i0, i1)
	b.edge(i1, i2)
	b.edge(i2, i0)
}

func (b *wireBuilder) wireframe() Wireframe {
	return Wireframe{Vertices: b.vertices, Edges: b.order}
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// TorusKnotCurve samples the closed (p, q) torus knot centerline. The last
// point connects back to the first.
func TorusKnotCurve(radius float32, p, q, segments int) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, segments)
	for i := range points {
		u := float64(i) / float64(segments) * float64(p) * 2 * math.Pi
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		r := float64(radius)
		points[i] = mgl32.Vec3{
			float32(r * (2 + cs) * 0.5 * math.Cos(u)),
			float32(r * (2 + cs) * 0.5 * math.Sin(u)),
			float32(r * math.Sin(quOverP) * 0.5),
		}
	}
	return points
}

// Capsule dimensions of a bacterium before instance scale.
const (
	CapsuleRadius = 0.5
	CapsuleLength = 1.2
)

// CapsuleAxis returns the model-space end points of the capsule's straight
// section, which runs along Y.
func CapsuleAxis() (mgl32.Vec3, mgl32.Vec3) {
	return mgl32.Vec3{0, -CapsuleLength / 2, 0}, mgl32.Vec3{0, CapsuleLength / 2, 0}
}
