package biome

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraState int

const (
	// CameraIdle holds the initial position until the first pointer event.
	CameraIdle CameraState = iota
	// CameraTracking eases toward the pointer-derived target every frame.
	CameraTracking
)

func (s CameraState) String() string {
	switch s {
	case CameraIdle:
		return "idle"
	case CameraTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Camera follows the pointer with exponential smoothing and always looks
// at the world origin.
type Camera struct {
	State    CameraState
	Position mgl32.Vec3
	Target   mgl32.Vec3
	FOV      float32

	horizontalGain float32
	verticalGain   float32
	depth          float32
	damping        float32
	static         bool
}

func NewCamera(def CameraDef) *Camera {
	return &Camera{
		State:          CameraIdle,
		Position:       def.Position,
		Target:         def.Position,
		FOV:            def.FOV,
		horizontalGain: valueOr(def.HorizontalGain, defaultHorizontalGain),
		verticalGain:   valueOr(def.VerticalGain, defaultVerticalGain),
		depth:          def.Depth,
		damping:        def.Damping,
		static:         def.Static,
	}
}

// TargetFor maps a normalized pointer to the camera target. Screen Y grows
// downward, so it is negated.
func (c *Camera) TargetFor(px, py float32) mgl32.Vec3 {
	return mgl32.Vec3{px * c.horizontalGain, -py * c.verticalGain, c.depth}
}

// Step advances the camera one frame. The damping is a fixed fraction per
// frame, not normalized to the frame time. A static camera stays idle.
func (c *Camera) Step(frame *FrameState) {
	if c.static {
		return
	}
	if c.State == CameraIdle {
		if !frame.PointerSeen {
			return
		}
		c.State = CameraTracking
	}
	c.Target = c.TargetFor(frame.PointerX, frame.PointerY)
	c.Position = c.Position.Add(c.Target.Sub(c.Position).Mul(c.damping))
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection builds a perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, 0.1, 100)
}

type CameraModule struct{}

func (CameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(cameraSystem).
			InStage(Update),
	)
}

func cameraSystem(scene *Scene, frame *FrameState) {
	scene.Camera.Step(frame)
}
