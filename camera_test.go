package biome

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCameraDef() CameraDef {
	var def SceneDef
	def.Normalize()
	return def.Camera
}

func TestCamera_IdleUntilFirstPointer(t *testing.T) {
	cam := NewCamera(defaultCameraDef())
	for i := 0; i < 10; i++ {
		cam.Step(&FrameState{Elapsed: float32(i)})
	}
	assert.Equal(t, CameraIdle, cam.State)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Position)

	cam.Step(&FrameState{PointerSeen: true, PointerX: 1, PointerY: 1})
	assert.Equal(t, CameraTracking, cam.State)
	assert.Equal(t, "tracking", cam.State.String())
}

func TestCamera_TargetMapping(t *testing.T) {
	cam := NewCamera(defaultCameraDef())

	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.TargetFor(0, 0))

	// Top-left of the viewport moves the camera left and up.
	topLeft := cam.TargetFor(-1, -1)
	assert.InDelta(t, -1.2, topLeft.X(), 1e-6)
	assert.InDelta(t, 0.8, topLeft.Y(), 1e-6)
	assert.InDelta(t, 10, topLeft.Z(), 1e-6)
}

func TestCamera_ConvergesWithoutOvershoot(t *testing.T) {
	cam := NewCamera(defaultCameraDef())
	frame := &FrameState{PointerSeen: true, PointerX: 1, PointerY: -1}
	target := cam.TargetFor(1, -1)

	last := cam.Position.Sub(target).Len()
	for i := 0; i < 600; i++ {
		cam.Step(frame)
		d := cam.Position.Sub(target).Len()
		require.LessOrEqual(t, d, last, "distance grew at frame %d", i)
		assert.LessOrEqual(t, cam.Position.X(), target.X()+1e-6, "overshoot at frame %d", i)
		last = d
	}
	assert.Less(t, last, float32(0.01))

	// One frame covers exactly the damping fraction of the gap.
	fresh := NewCamera(defaultCameraDef())
	fresh.Step(frame)
	assert.InDelta(t, 1.2*0.02, fresh.Position.X(), 1e-6)
	assert.InDelta(t, 0.8*0.02, fresh.Position.Y(), 1e-6)
}

func TestCamera_CenterSettlesOnStart(t *testing.T) {
	cam := NewCamera(defaultCameraDef())
	cam.Position = mgl32.Vec3{1, -1, 10}
	cam.State = CameraTracking
	for i := 0; i < 1000; i++ {
		cam.Step(&FrameState{PointerSeen: true})
	}
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 10}, cam.Position, 1e-4)
}

func TestCamera_LooksAtOrigin(t *testing.T) {
	cam := NewCamera(defaultCameraDef())
	cam.Position = mgl32.Vec3{1, 0.5, 10}
	view := cam.View()

	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), 1e-5)
	assert.InDelta(t, 0, origin.Y(), 1e-5)
	assert.Less(t, origin.Z(), float32(0), "origin is in front of the camera")

	proj := cam.Projection(16.0 / 9.0)
	assert.NotEqual(t, mgl32.Mat4{}, proj)
	assert.Equal(t, cam.Projection(1), cam.Projection(0))
}

func TestCameraModule_StepsOncePerFrame(t *testing.T) {
	def := SceneDef{}
	scene, err := NewScene(def, NewRand(1))
	require.NoError(t, err)

	app := NewApp()
	frame := &FrameState{PointerSeen: true, PointerX: 1}
	app.Commands().AddResources(scene, frame)
	app.UseModules(CameraModule{})

	app.Tick()
	app.Tick()
	assert.InDelta(t, 1.2*(1-0.98*0.98), scene.Camera.Position.X(), 1e-5)
}

func TestCamera_StaticIgnoresPointer(t *testing.T) {
	def := defaultCameraDef()
	def.Position = mgl32.Vec3{0, 0, 8}
	def.Static = true
	cam := NewCamera(def)
	for i := 0; i < 100; i++ {
		cam.Step(&FrameState{PointerSeen: true, PointerX: 1, PointerY: 1})
	}
	assert.Equal(t, CameraIdle, cam.State)
	assert.Equal(t, mgl32.Vec3{0, 0, 8}, cam.Position)
}

func TestCamera_ExplicitZeroGains(t *testing.T) {
	def, err := ParseSceneDef([]byte("camera:\n  horizontal_gain: 0\n  vertical_gain: 0\n"))
	require.NoError(t, err)
	def.Normalize()
	cam := NewCamera(def.Camera)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.TargetFor(1, -1))
}
