package biome

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Rand is the random source generators draw from. *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// NewRand returns a seeded source; seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// InstanceDescriptor fixes the random identity of one decorative element.
// Descriptors are built once per mount and never mutated.
type InstanceDescriptor struct {
	ID       uuid.UUID
	Base     mgl32.Vec3
	Scale    float32
	Color    Color
	Phase    float32
	Speed    float32
	Rotation mgl32.Vec3
}

var instanceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("biome/instance"))

// InstanceID derives a stable id from the group name, element role and
// index, so regenerating a group keeps its ids.
func InstanceID(group, role string, index int) uuid.UUID {
	return uuid.NewSHA1(instanceNamespace, []byte(group+"/"+role+"/"+strconv.Itoa(index)))
}

const fullTurn = 2 * math.Pi

// GenerateField scatters floating particles uniformly in the field box.
// Colors cycle through the palette.
func GenerateField(rng Rand, def FieldDef) []InstanceDescriptor {
	out := make([]InstanceDescriptor, def.Count)
	for i := range out {
		out[i] = InstanceDescriptor{
			ID:    InstanceID(def.Name, "particle", i),
			Base:  def.Box.Sample(rng),
			Scale: def.Scale.Sample(rng),
			Color: def.Palette.At(i),
			Speed: def.Speed.Sample(rng),
			Phase: rng.Float32() * fullTurn,
		}
	}
	return out
}

// GenerateCluster places capsule members in a cube of side Spread around
// the group origin. Base positions are local to the group.
func GenerateCluster(rng Rand, def ClusterDef) []InstanceDescriptor {
	volume := Box{Size: uniform(def.Spread)}
	out := make([]InstanceDescriptor, def.Count)
	for i := range out {
		out[i] = InstanceDescriptor{
			ID:    InstanceID(def.Name, "member", i),
			Base:  volume.Sample(rng),
			Scale: def.Scale.Sample(rng),
			Color: def.Color,
			Rotation: mgl32.Vec3{
				rng.Float32() * math.Pi,
				rng.Float32() * math.Pi,
				rng.Float32() * math.Pi,
			},
		}
	}
	return out
}

// GenerateRing spaces dots evenly on a flattened ellipse. Phase carries each
// dot's angle; only the scale is random.
func GenerateRing(rng Rand, def RingDef) []InstanceDescriptor {
	out := make([]InstanceDescriptor, def.Count)
	for i := range out {
		angle := RingAngle(i, def.Count)
		sin, cos := math.Sincos(float64(angle))
		out[i] = InstanceDescriptor{
			ID: InstanceID(def.Name, "dot", i),
			Base: mgl32.Vec3{
				float32(cos) * def.Radius,
				float32(sin) * def.Radius * def.FlattenY,
				float32(sin) * def.Radius * def.FlattenZ,
			},
			Scale: def.Scale.Sample(rng),
			Color: def.Color,
			Phase: angle,
		}
	}
	return out
}

// RingAngle is the angle of dot i on a ring of count dots.
func RingAngle(i, count int) float32 {
	return float32(i) / float32(count) * fullTurn
}

// Bridge is a rung connecting the two helix strands.
type Bridge struct {
	ID       uuid.UUID
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
	Color    Color
}

type Helix struct {
	Strand1 []InstanceDescriptor
	Strand2 []InstanceDescriptor
	Bridges []Bridge
}

const helixBeadScale = 0.06

// BuildHelix lays out a double helix along Y. It draws no random numbers;
// strand 2 trails strand 1 by half a turn at every step.
func BuildHelix(def HelixDef) Helix {
	h := Helix{
		Strand1: make([]InstanceDescriptor, 0, def.Steps),
		Strand2: make([]InstanceDescriptor, 0, def.Steps),
	}
	for i := 0; i < def.Steps; i++ {
		t := float32(i) / float32(def.Steps)
		angle := HelixAngle(i, def.Steps, def.Turns)
		y := t*def.Height - def.Height/2

		p1 := helixPoint(angle, def.Radius, y)
		p2 := helixPoint(angle+math.Pi, def.Radius, y)

		h.Strand1 = append(h.Strand1, InstanceDescriptor{
			ID:    InstanceID(def.Name, "strand1", i),
			Base:  p1,
			Scale: helixBeadScale,
			Color: def.Strand1,
			Phase: angle,
		})
		h.Strand2 = append(h.Strand2, InstanceDescriptor{
			ID:    InstanceID(def.Name, "strand2", i),
			Base:  p2,
			Scale: helixBeadScale,
			Color: def.Strand2,
			Phase: angle + math.Pi,
		})

		if def.BridgeEvery > 0 && i%def.BridgeEvery == 0 {
			mid := p1.Add(p2).Mul(0.5)
			h.Bridges = append(h.Bridges, Bridge{
				ID:       InstanceID(def.Name, "bridge", i),
				Position: mid,
				Scale:    mgl32.Vec3{def.Radius * 2, 0.04, 0.04},
				Rotation: mgl32.Vec3{0, -angle, 0},
				Color:    def.Bridge,
			})
		}
	}
	return h
}

// HelixAngle is the strand-1 angle at step i.
func HelixAngle(i, steps int, turns float32) float32 {
	return float32(i) / float32(steps) * fullTurn * turns
}

func helixPoint(angle, radius, y float32) mgl32.Vec3 {
	sin, cos := math.Sincos(float64(angle))
	return mgl32.Vec3{float32(cos) * radius, y, float32(sin) * radius}
}

// GeneratePointCloud scatters static points in the cloud box.
func GeneratePointCloud(rng Rand, def PointCloudDef) []InstanceDescriptor {
	out := make([]InstanceDescriptor, def.Count)
	for i := range out {
		out[i] = InstanceDescriptor{
			ID:    InstanceID(def.Name, "point", i),
			Base:  def.Box.Sample(rng),
			Scale: def.Size,
			Color: def.Color,
		}
	}
	return out
}
