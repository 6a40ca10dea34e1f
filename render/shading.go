package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gekko3d/biome"
)

// Lighting approximates the scene lights for flat-shaded primitives. Each
// primitive is lit with the normal that faces the eye, so only the light
// directions relative to the view matter.
type Lighting struct {
	ambient colorful.Color
	hemi    []hemisphereLight
	lamps   []lamp
	fog     biome.FogDef
}

type hemisphereLight struct {
	sky, ground colorful.Color
	intensity   float64
}

type lamp struct {
	color     colorful.Color
	intensity float64
	position  mgl32.Vec3
	// directional lamps shine from position toward the origin.
	directional bool
}

func NewLighting(def biome.SceneDef) Lighting {
	l := Lighting{fog: def.Fog}
	for _, ld := range def.Lights {
		c := ld.Color.RGB
		if ld.Color.Hex == "" {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
		switch ld.Type {
		case biome.LightAmbient:
			l.ambient = addColor(l.ambient, scaleColor(c, float64(ld.Intensity)))
		case biome.LightHemisphere:
			l.hemi = append(l.hemi, hemisphereLight{sky: c, ground: ld.Ground.RGB, intensity: float64(ld.Intensity)})
		case biome.LightPoint:
			l.lamps = append(l.lamps, lamp{color: c, intensity: float64(ld.Intensity), position: ld.Position})
		case biome.LightDirectional:
			l.lamps = append(l.lamps, lamp{color: c, intensity: float64(ld.Intensity), position: ld.Position, directional: true})
		}
	}
	return l
}

// Shade returns the display color of a surface at p seen from eye.
// opacity is the final alpha in [0, 1].
func (l Lighting) Shade(base biome.Color, mat biome.Material, p, eye mgl32.Vec3, opacity float32) color.NRGBA {
	normal := eye.Sub(p)
	dist := normal.Len()
	if dist > 0 {
		normal = normal.Mul(1 / dist)
	}

	light := l.ambient
	for _, h := range l.hemi {
		t := 0.5 + 0.5*float64(normal.Y())
		light = addColor(light, scaleColor(h.ground.BlendRgb(h.sky, t), h.intensity))
	}
	for _, lp := range l.lamps {
		dir := lp.position
		if !lp.directional {
			dir = lp.position.Sub(p)
		}
		if dir.Len() == 0 {
			continue
		}
		lambert := float64(normal.Dot(dir.Normalize()))
		if lambert <= 0 {
			continue
		}
		light = addColor(light, scaleColor(lp.color, lp.intensity*lambert))
	}

	c := base.RGB
	out := colorful.Color{
		R: c.R*light.R + c.R*float64(mat.Emissive),
		G: c.G*light.G + c.G*float64(mat.Emissive),
		B: c.B*light.B + c.B*float64(mat.Emissive),
	}.Clamped()
	if f := l.fog.Factor(dist); f > 0 {
		out = out.BlendRgb(l.fog.Color.RGB, float64(f))
	}
	return toNRGBA(out, opacity)
}

func toNRGBA(c colorful.Color, alpha float32) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	a := math.Max(0, math.Min(1, float64(alpha)))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

func addColor(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

func scaleColor(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}
}
