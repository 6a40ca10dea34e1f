package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/biome"
)

const nearPlane = 0.1

// Projector maps world points to surface pixels for one frame.
type Projector struct {
	viewProj mgl32.Mat4
	view     mgl32.Mat4
	width    float32
	height   float32
	// focal is the pixel size of one world unit at depth 1.
	focal float32
}

func NewProjector(cam *biome.Camera, width, height float32) Projector {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	view := cam.View()
	proj := cam.Projection(aspect)
	halfFov := float64(mgl32.DegToRad(cam.FOV)) / 2
	return Projector{
		viewProj: proj.Mul4(view),
		view:     view,
		width:    width,
		height:   height,
		focal:    float32(float64(height) / 2 / math.Tan(halfFov)),
	}
}

// Project returns the pixel position of p with the origin at the top-left
// and its view depth. ok is false for points behind the near plane.
func (pr Projector) Project(p mgl32.Vec3) (x, y, depth float32, ok bool) {
	clip := pr.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * pr.width
	y = (1 - ndcY) / 2 * pr.height
	return x, y, clip.W(), true
}

// Depth is the distance of p in front of the camera along its view axis.
func (pr Projector) Depth(p mgl32.Vec3) float32 {
	return -pr.view.Mul4x1(p.Vec4(1)).Z()
}

// Radius converts a world-space length at the given depth to pixels.
func (pr Projector) Radius(world, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return world * pr.focal / depth
}

// Visible reports whether a circle at (x, y) with pixel radius r touches
// the surface.
func (pr Projector) Visible(x, y, r float32) bool {
	return x+r >= 0 && y+r >= 0 && x-r <= pr.width && y-r <= pr.height
}
