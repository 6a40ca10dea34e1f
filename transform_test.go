package biome

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	parent := DerivedTransform{
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.Vec3{0, 0, math.Pi / 2},
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	local := DerivedTransform{Position: mgl32.Vec3{1, 0, 0}, Scale: uniform(0.5)}

	world := Compose(parent, local)
	// (1,0,0) scaled by 2 then turned 90 degrees about Z lands on +Y.
	assertVec3InDelta(t, mgl32.Vec3{10, 2, 0}, world.Position, 1e-5)
	assert.Equal(t, uniform(1), world.Scale)
}

func TestCompose_IdentityParent(t *testing.T) {
	local := DerivedTransform{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.Vec3{0.3, 0.2, 0.1}, Scale: uniform(4)}
	world := Compose(IdentityTransform(), local)
	direct := local.World()

	assertVec3InDelta(t, direct.Position, world.Position, 1e-5)
	assert.InDelta(t, direct.Rotation.W, world.Rotation.W, 1e-5)
	assertVec3InDelta(t, direct.Rotation.V, world.Rotation.V, 1e-5)
	assert.Equal(t, direct.Scale, world.Scale)
}

func TestWorldTransform_Point(t *testing.T) {
	w := DerivedTransform{
		Position: mgl32.Vec3{0, 1, 0},
		Rotation: mgl32.Vec3{0, math.Pi, 0},
		Scale:    uniform(2),
	}.World()
	got := w.Point(mgl32.Vec3{1, 0, 0})
	assertVec3InDelta(t, mgl32.Vec3{-2, 1, 0}, got, 1e-5)
}

func TestWorldTransform_PointZeroComponents(t *testing.T) {
	// Half turns leave float noise where the exact answer is zero.
	w := DerivedTransform{Rotation: mgl32.Vec3{math.Pi, math.Pi, 0}, Scale: uniform(1)}.World()
	got := w.Point(mgl32.Vec3{0, 0, 3})
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 3}, got, 1e-5)
}

// assertVec3InDelta compares component by component with an absolute
// tolerance, so exact zeros on one side do not tighten the bound.
func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d: want %v, got %v", i, want, got)
	}
}
