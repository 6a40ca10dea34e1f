package biome

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DerivedTransform is recomputed every frame and never stored past it.
// Rotation holds Euler angles applied in XYZ order.
type DerivedTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func IdentityTransform() DerivedTransform {
	return DerivedTransform{Scale: mgl32.Vec3{1, 1, 1}}
}

func uniform(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}

// Quat converts the Euler rotation to a quaternion.
func (t DerivedTransform) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z(), mgl32.XYZ)
}

// Compose resolves a transform expressed in parent space to world space:
// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos).
func Compose(parent, local DerivedTransform) WorldTransform {
	parentRot := parent.Quat()
	scaledLocalPos := mgl32.Vec3{
		local.Position.X() * parent.Scale.X(),
		local.Position.Y() * parent.Scale.Y(),
		local.Position.Z() * parent.Scale.Z(),
	}
	return WorldTransform{
		Position: parent.Position.Add(parentRot.Rotate(scaledLocalPos)),
		Rotation: parentRot.Mul(local.Quat()).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}
}

// WorldTransform is a transform resolved to world space.
type WorldTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// World resolves a root transform (no parent) to world space.
func (t DerivedTransform) World() WorldTransform {
	return WorldTransform{Position: t.Position, Rotation: t.Quat(), Scale: t.Scale}
}

// Point maps a model-space point to world space.
func (w WorldTransform) Point(p mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{p.X() * w.Scale.X(), p.Y() * w.Scale.Y(), p.Z() * w.Scale.Z()}
	return w.Position.Add(w.Rotation.Rotate(scaled))
}
