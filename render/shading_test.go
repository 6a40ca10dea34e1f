package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/biome"
)

func TestLighting_FogBlendsToFogColor(t *testing.T) {
	def := biome.SceneDef{
		Fog:    biome.FogDef{Color: biome.MustColor("#f0fdf9"), Near: 8, Far: 28},
		Lights: []biome.LightDef{{Type: biome.LightAmbient, Intensity: 1, Color: biome.MustColor("#ffffff")}},
	}
	l := NewLighting(def)
	base := biome.MustColor("#2db88a")
	mat := biome.Material{Opacity: 1}
	eye := mgl32.Vec3{0, 0, 10}

	near := l.Shade(base, mat, mgl32.Vec3{0, 0, 5}, eye, 1)
	r, g, b := base.RGB.RGB255()
	assert.Equal(t, r, near.R)
	assert.Equal(t, g, near.G)
	assert.Equal(t, b, near.B)

	far := l.Shade(base, mat, mgl32.Vec3{0, 0, -30}, eye, 1)
	fr, fg, fb := def.Fog.Color.RGB.RGB255()
	assert.Equal(t, fr, far.R)
	assert.Equal(t, fg, far.G)
	assert.Equal(t, fb, far.B)
}

func TestLighting_PointLightFacing(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	base := biome.MustColor("#808080")
	mat := biome.Material{Opacity: 1}

	front := NewLighting(biome.SceneDef{Lights: []biome.LightDef{
		{Type: biome.LightPoint, Position: mgl32.Vec3{0, 0, 10}, Intensity: 1, Color: biome.MustColor("#ffffff")},
	}})
	behind := NewLighting(biome.SceneDef{Lights: []biome.LightDef{
		{Type: biome.LightPoint, Position: mgl32.Vec3{0, 0, -10}, Intensity: 1, Color: biome.MustColor("#ffffff")},
	}})

	lit := front.Shade(base, mat, mgl32.Vec3{}, eye, 1)
	dark := behind.Shade(base, mat, mgl32.Vec3{}, eye, 1)
	assert.Greater(t, lit.R, dark.R)
	assert.Equal(t, uint8(0), dark.R)
}

func TestLighting_EmissiveAndOpacity(t *testing.T) {
	l := NewLighting(biome.SceneDef{})
	c := l.Shade(biome.MustColor("#ff0000"), biome.Material{Emissive: 1}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 10}, 0.5)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.A)
}

func TestFade(t *testing.T) {
	f := NewFade(1)
	assert.Equal(t, float32(0), f.Value())

	mid := f.Advance(0.5)
	assert.Greater(t, mid, float32(0.5), "ease-out is past halfway at half time")
	assert.Less(t, mid, float32(1))
	assert.False(t, f.Done())

	assert.Equal(t, float32(1), f.Advance(1))
	assert.True(t, f.Done())
	assert.Equal(t, float32(1), f.Advance(1))

	instant := NewFade(0)
	assert.Equal(t, float32(1), instant.Value())
}

func TestOverlayLines(t *testing.T) {
	frame := biome.NewFrame()
	frame.Elapsed = 2
	lines := OverlayLines(59.9, frame, map[string]int{"rings": 3, "dust": 10})
	assert.Equal(t, "fps 59.9  t 2.00s", lines[0])
	assert.Contains(t, lines[1], "idle")
	assert.Contains(t, lines[3], "dust")
	assert.Contains(t, lines[4], "rings")
}

func TestSurface_PointerSubscriptions(t *testing.T) {
	s := NewSurface(Options{Width: 800, Height: 600})
	var got []biome.PointerEvent
	cancel := s.SubscribePointer(func(e biome.PointerEvent) { got = append(got, e) })
	assert.Equal(t, 1, s.Subscribers())

	s.dispatch(biome.PointerEvent{X: 1, Y: 2, Width: 800, Height: 600})
	cancel()
	cancel()
	s.dispatch(biome.PointerEvent{X: 3, Y: 4, Width: 800, Height: 600})

	assert.Len(t, got, 1)
	assert.Equal(t, 0, s.Subscribers())
	assert.Error(t, s.Run(), "run without an app")
}

func TestClampDPR(t *testing.T) {
	assert.Equal(t, 1.0, clampDPR(0.5, 1, 1.5))
	assert.Equal(t, 1.5, clampDPR(3, 1, 1.5))
	assert.Equal(t, 1.25, clampDPR(1.25, 1, 1.5))
}

func TestSurface_AttachOnce(t *testing.T) {
	app := biome.NewApp()
	assert.NoError(t, NewSurface(Options{}).Attach(app))
	assert.NoError(t, NewSurface(Options{}).Attach(app), "same surface kind may re-attach")
	assert.Error(t, biome.ClaimSurface(app, "other"))
}
