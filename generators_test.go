package biome

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testField() FieldDef {
	return FieldDef{
		Name:    "dust",
		Count:   100,
		Box:     Box{Center: mgl32.Vec3{1, 2, 3}, Size: mgl32.Vec3{24, 16, 14}},
		Scale:   Range{Min: 0.02, Max: 0.09},
		Speed:   Range{Min: 0.2, Max: 1.0},
		Palette: Palette{MustColor("#2db88a"), MustColor("#38bdf8"), MustColor("#a7f3d0")},
	}
}

func TestGenerateField(t *testing.T) {
	def := testField()
	particles := GenerateField(NewRand(42), def)
	require.Len(t, particles, 100)

	ids := make(map[uuid.UUID]struct{})
	for i, p := range particles {
		assert.True(t, def.Box.Contains(p.Base), "particle %d at %v outside box", i, p.Base)
		assert.True(t, def.Scale.Contains(p.Scale), "scale %v", p.Scale)
		assert.True(t, def.Speed.Contains(p.Speed), "speed %v", p.Speed)
		assert.GreaterOrEqual(t, p.Phase, float32(0))
		assert.Less(t, p.Phase, float32(fullTurn))
		assert.Equal(t, def.Palette[i%3].Hex, p.Color.Hex)
		ids[p.ID] = struct{}{}
	}
	assert.Len(t, ids, 100)
}

func TestGenerateField_Empty(t *testing.T) {
	def := testField()
	def.Count = 0
	assert.Empty(t, GenerateField(NewRand(1), def))
}

func TestGenerateField_SameSeedSameScene(t *testing.T) {
	a := GenerateField(NewRand(7), testField())
	b := GenerateField(NewRand(7), testField())
	assert.Equal(t, a, b)
}

func TestGenerateCluster(t *testing.T) {
	def := ClusterDef{Name: "c", Count: 5, Spread: 2.5, Scale: Range{Min: 0.08, Max: 0.22}, Color: MustColor("#2db88a")}
	members := GenerateCluster(NewRand(3), def)
	require.Len(t, members, 5)
	volume := Box{Size: uniform(2.5)}
	for _, m := range members {
		assert.True(t, volume.Contains(m.Base))
		assert.True(t, def.Scale.Contains(m.Scale))
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, m.Rotation[i], float32(0))
			assert.Less(t, m.Rotation[i], float32(math.Pi))
		}
	}
}

func TestGenerateRing_EvenSpacing(t *testing.T) {
	def := RingDef{Name: "r", Radius: 4, Count: 30, FlattenY: 0.35, FlattenZ: 0.5, Scale: Range{Min: 0.03, Max: 0.09}}
	dots := GenerateRing(NewRand(1), def)
	require.Len(t, dots, 30)

	step := float32(fullTurn / 30)
	for i, d := range dots {
		assert.InDelta(t, float32(i)*step, d.Phase, 1e-5)
		if i > 0 {
			assert.InDelta(t, step, d.Phase-dots[i-1].Phase, 1e-5)
		}
		// Base lies on the flattened ellipse.
		sin, cos := math.Sincos(float64(d.Phase))
		assert.InDelta(t, cos*4, d.Base.X(), 1e-4)
		assert.InDelta(t, sin*4*0.35, d.Base.Y(), 1e-4)
		assert.InDelta(t, sin*4*0.5, d.Base.Z(), 1e-4)
	}
	assert.InDelta(t, 4, dots[0].Base.X(), 1e-6)
}

func TestBuildHelix(t *testing.T) {
	def := HelixDef{Name: "h", Steps: 40, Radius: 0.8, Height: 8, Turns: 2, BridgeEvery: 4}
	h := BuildHelix(def)

	require.Len(t, h.Strand1, 40)
	require.Len(t, h.Strand2, 40)
	require.Len(t, h.Bridges, 10)

	for i := range h.Strand1 {
		a, b := h.Strand1[i].Base, h.Strand2[i].Base
		assert.InDelta(t, a.Y(), b.Y(), 1e-6, "strands share height at step %d", i)
		assert.InDelta(t, -a.X(), b.X(), 1e-5, "strand 2 is opposite at step %d", i)
		assert.InDelta(t, -a.Z(), b.Z(), 1e-5)
		assert.InDelta(t, 0.8, mgl32.Vec2{a.X(), a.Z()}.Len(), 1e-5)
		assert.InDelta(t, 0.8, mgl32.Vec2{b.X(), b.Z()}.Len(), 1e-5)
	}
	assert.InDelta(t, -4, h.Strand1[0].Base.Y(), 1e-6)

	for k, br := range h.Bridges {
		i := k * 4
		mid := h.Strand1[i].Base.Add(h.Strand2[i].Base).Mul(0.5)
		assertVec3InDelta(t, mid, br.Position, 1e-5)
		assert.Equal(t, InstanceID("h", "bridge", i), br.ID)
		assert.InDelta(t, 1.6, br.Scale.X(), 1e-6)
	}

	assert.Equal(t, h, BuildHelix(def), "helix layout is deterministic")
}

func TestBuildHelix_NoBridges(t *testing.T) {
	h := BuildHelix(HelixDef{Name: "h", Steps: 8, Radius: 1, Height: 1, Turns: 1})
	assert.Empty(t, h.Bridges)
}

func TestInstanceID_Stable(t *testing.T) {
	assert.Equal(t, InstanceID("ring-0", "dot", 3), InstanceID("ring-0", "dot", 3))
	assert.NotEqual(t, InstanceID("ring-0", "dot", 3), InstanceID("ring-0", "dot", 4))
	assert.NotEqual(t, InstanceID("ring-0", "dot", 3), InstanceID("ring-1", "dot", 3))
	assert.Equal(t, uuid.Version(5), InstanceID("a", "b", 0).Version())
}

func TestGeneratePointCloud(t *testing.T) {
	def := PointCloudDef{Name: "stars", Count: 800, Box: Box{Center: mgl32.Vec3{0, 0, -8}, Size: mgl32.Vec3{40, 20, 30}}, Size: 0.12}
	points := GeneratePointCloud(NewRand(5), def)
	require.Len(t, points, 800)
	for _, p := range points {
		assert.True(t, def.Box.Contains(p.Base))
		assert.Equal(t, float32(0.12), p.Scale)
	}
}
