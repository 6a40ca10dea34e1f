package biome

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

// AnimateParticle floats a particle around its base position and makes it
// breathe. The phase keeps neighbouring particles out of step.
func AnimateParticle(elapsed float32, d InstanceDescriptor) DerivedTransform {
	t := elapsed*d.Speed + d.Phase
	breathe := 1 + sinf(t*2)*0.15
	return DerivedTransform{
		Position: mgl32.Vec3{
			d.Base.X() + cosf(t*0.7)*0.4,
			d.Base.Y() + sinf(t)*0.6,
			d.Base.Z() + sinf(t*0.5)*0.3,
		},
		Rotation: mgl32.Vec3{t * 0.3, 0, t * 0.2},
		Scale:    uniform(d.Scale * breathe),
	}
}

// AnimateClusterGroup turns a bacteria cluster slowly about Y with a small
// rocking tilt about X.
func AnimateClusterGroup(elapsed float32, origin mgl32.Vec3) DerivedTransform {
	return DerivedTransform{
		Position: origin,
		Rotation: mgl32.Vec3{sinf(elapsed*0.04) * 0.15, elapsed * 0.06, 0},
		Scale:    uniform(1),
	}
}

// ClusterMemberLocal is constant: members ride the group rotation only.
func ClusterMemberLocal(d InstanceDescriptor) DerivedTransform {
	return DerivedTransform{
		Position: d.Base,
		Rotation: d.Rotation,
		Scale:    uniform(d.Scale),
	}
}

// AnimateHelixGroup spins a helix about its vertical axis.
func AnimateHelixGroup(elapsed float32, def HelixDef) DerivedTransform {
	return DerivedTransform{
		Position: def.Position,
		Rotation: mgl32.Vec3{0, elapsed * def.SpinSpeed(), 0},
		Scale:    uniform(1),
	}
}

// AnimateRingGroup rolls a ring about Z at its signed speed and rocks it
// about X.
func AnimateRingGroup(elapsed float32, def RingDef) DerivedTransform {
	return DerivedTransform{
		Rotation: mgl32.Vec3{sinf(elapsed*0.1) * 0.15, 0, elapsed * def.Speed},
		Scale:    uniform(1),
	}
}

// AnimateMembrane pulses a wireframe shell around its base radius.
func AnimateMembrane(elapsed float32, def MembraneDef) DerivedTransform {
	pulse := def.BaseRadius + sinf(elapsed*1.5)*0.15
	return DerivedTransform{
		Position: def.Position,
		Rotation: mgl32.Vec3{elapsed * 0.07, elapsed * 0.1, 0},
		Scale:    uniform(pulse),
	}
}

// AnimateTrail tumbles a torus knot about all three axes at the fixed
// per-axis rates in def.Spin.
func AnimateTrail(elapsed float32, def TrailDef) DerivedTransform {
	return DerivedTransform{
		Position: def.Position,
		Rotation: def.Spin.Mul(elapsed),
		Scale:    uniform(def.Scale),
	}
}

// AnimatePointCloudGroup turns a point cloud slowly about Y.
func AnimatePointCloudGroup(elapsed float32, def PointCloudDef) DerivedTransform {
	return DerivedTransform{
		Rotation: mgl32.Vec3{0, elapsed * def.Speed, 0},
		Scale:    uniform(1),
	}
}
