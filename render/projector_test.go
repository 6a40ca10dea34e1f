package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/biome"
)

func testCamera() *biome.Camera {
	var def biome.SceneDef
	def.Normalize()
	return biome.NewCamera(def.Camera)
}

func TestProjector_OriginAtCenter(t *testing.T) {
	pr := NewProjector(testCamera(), 800, 600)

	x, y, depth, ok := pr.Project(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-3)
	assert.InDelta(t, 10, depth, 1e-4)
	assert.InDelta(t, 10, pr.Depth(mgl32.Vec3{}), 1e-4)
}

func TestProjector_Orientation(t *testing.T) {
	pr := NewProjector(testCamera(), 800, 600)

	rx, _, _, _ := pr.Project(mgl32.Vec3{1, 0, 0})
	_, uy, _, _ := pr.Project(mgl32.Vec3{0, 1, 0})
	assert.Greater(t, rx, float32(400), "+X is to the right")
	assert.Less(t, uy, float32(300), "+Y is up on screen")

	_, _, _, ok := pr.Project(mgl32.Vec3{0, 0, 20})
	assert.False(t, ok, "points behind the camera are culled")
}

func TestProjector_RadiusShrinksWithDepth(t *testing.T) {
	pr := NewProjector(testCamera(), 800, 600)
	near := pr.Radius(0.5, 5)
	far := pr.Radius(0.5, 20)
	assert.Greater(t, near, far)
	assert.InDelta(t, near/4, far, 1e-4)
	assert.Equal(t, float32(0), pr.Radius(1, 0))

	// A unit at the origin matches the projected offset of a point one unit up.
	_, y0, d, _ := pr.Project(mgl32.Vec3{})
	_, y1, _, _ := pr.Project(mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, y0-y1, pr.Radius(1, d), 1e-2)
}

func TestProjector_Visible(t *testing.T) {
	pr := NewProjector(testCamera(), 100, 100)
	assert.True(t, pr.Visible(50, 50, 1))
	assert.True(t, pr.Visible(-2, 50, 3))
	assert.False(t, pr.Visible(-5, 50, 3))
	assert.False(t, pr.Visible(50, 110, 5))
}

func TestPainter_OrderFarToNear(t *testing.T) {
	pr := NewProjector(testCamera(), 800, 600)
	frame := biome.NewFrame()
	for i, z := range []float32{2, -8, 0, -3} {
		id := biome.InstanceID("g", "x", i)
		frame.Renderables[id] = biome.Renderable{
			ID:    id,
			World: biome.DerivedTransform{Position: mgl32.Vec3{0, 0, z}, Scale: mgl32.Vec3{1, 1, 1}}.World(),
		}
	}

	var p Painter
	order := p.Order(frame, pr)
	require.Len(t, order, 4)
	var zs []float32
	for _, r := range order {
		zs = append(zs, r.World.Position.Z())
	}
	assert.Equal(t, []float32{-8, -3, 0, 2}, zs)
}
