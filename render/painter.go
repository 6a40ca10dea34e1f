package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gekko3d/biome"
)

const (
	minPixelRadius = 0.35
	lineWorldWidth = 0.02
)

// drawItem is one renderable with its sort depth for this frame.
type drawItem struct {
	r     biome.Renderable
	depth float32
}

// Painter draws a frame back to front with the painter's algorithm.
type Painter struct {
	items []drawItem
}

// Order returns the frame's renderables sorted far to near. Ties break on
// id so the order is stable between frames.
func (p *Painter) Order(frame *biome.Frame, pr Projector) []biome.Renderable {
	p.items = p.items[:0]
	for _, r := range frame.Renderables {
		p.items = append(p.items, drawItem{r: r, depth: pr.Depth(r.World.Position)})
	}
	sort.Slice(p.items, func(i, j int) bool {
		a, b := p.items[i], p.items[j]
		if a.depth != b.depth {
			return a.depth > b.depth
		}
		return a.r.ID.String() < b.r.ID.String()
	})
	out := make([]biome.Renderable, len(p.items))
	for i, it := range p.items {
		out[i] = it.r
	}
	return out
}

// Paint clears dst to background and draws every renderable. alpha scales
// all opacities and carries the fade in.
func (p *Painter) Paint(dst *ebiten.Image, frame *biome.Frame, pr Projector, light Lighting, background color.Color, alpha float32) {
	dst.Fill(background)
	for _, r := range p.Order(frame, pr) {
		opacity := r.Material.Opacity * alpha
		if opacity <= 0 {
			continue
		}
		switch r.Kind {
		case biome.GeometrySphere, biome.GeometryPoint:
			p.sphere(dst, r, pr, light, frame.Eye, opacity)
		case biome.GeometryCapsule:
			p.capsule(dst, r, pr, light, frame.Eye, opacity)
		case biome.GeometryBox:
			p.bar(dst, r, pr, light, frame.Eye, opacity)
		case biome.GeometryIcosahedron, biome.GeometryTorusKnot:
			p.wire(dst, r, pr, light, frame.Eye, opacity)
		}
	}
}

func (p *Painter) sphere(dst *ebiten.Image, r biome.Renderable, pr Projector, light Lighting, eye mgl32.Vec3, opacity float32) {
	x, y, depth, ok := pr.Project(r.World.Position)
	if !ok {
		return
	}
	radius := pr.Radius(r.World.Scale.X(), depth)
	if r.Kind == biome.GeometryPoint && radius < 1 {
		radius = 1
	}
	if radius < minPixelRadius || !pr.Visible(x, y, radius) {
		return
	}
	clr := light.Shade(r.Color, r.Material, r.World.Position, eye, opacity)
	vector.DrawFilledCircle(dst, x, y, radius, clr, true)
}

// capsule draws a thick segment along the local Y axis with round caps.
func (p *Painter) capsule(dst *ebiten.Image, r biome.Renderable, pr Projector, light Lighting, eye mgl32.Vec3, opacity float32) {
	a, b := biome.CapsuleAxis()
	wa, wb := r.World.Point(a), r.World.Point(b)
	xa, ya, da, okA := pr.Project(wa)
	xb, yb, db, okB := pr.Project(wb)
	if !okA || !okB {
		return
	}
	radius := pr.Radius(biome.CapsuleRadius*r.World.Scale.X(), (da+db)/2)
	if radius < minPixelRadius {
		return
	}
	clr := light.Shade(r.Color, r.Material, r.World.Position, eye, opacity)
	vector.StrokeLine(dst, xa, ya, xb, yb, radius*2, clr, true)
	vector.DrawFilledCircle(dst, xa, ya, radius, clr, true)
	vector.DrawFilledCircle(dst, xb, yb, radius, clr, true)
}

// bar draws a helix bridge: a box whose long side is local X.
func (p *Painter) bar(dst *ebiten.Image, r biome.Renderable, pr Projector, light Lighting, eye mgl32.Vec3, opacity float32) {
	wa := r.World.Point(mgl32.Vec3{-0.5, 0, 0})
	wb := r.World.Point(mgl32.Vec3{0.5, 0, 0})
	xa, ya, da, okA := pr.Project(wa)
	xb, yb, db, okB := pr.Project(wb)
	if !okA || !okB {
		return
	}
	width := pr.Radius(r.World.Scale.Y(), (da+db)/2)
	if width < 1 {
		width = 1
	}
	clr := light.Shade(r.Color, r.Material, r.World.Position, eye, opacity)
	vector.StrokeLine(dst, xa, ya, xb, yb, width, clr, true)
}

func (p *Painter) wire(dst *ebiten.Image, r biome.Renderable, pr Projector, light Lighting, eye mgl32.Vec3, opacity float32) {
	if r.Mesh == nil {
		return
	}
	type screenPoint struct {
		x, y, depth float32
		ok          bool
	}
	points := make([]screenPoint, len(r.Mesh.Vertices))
	for i, v := range r.Mesh.Vertices {
		x, y, d, ok := pr.Project(r.World.Point(v))
		points[i] = screenPoint{x, y, d, ok}
	}
	clr := light.Shade(r.Color, r.Material, r.World.Position, eye, opacity)
	for _, e := range r.Mesh.Edges {
		a, b := points[e[0]], points[e[1]]
		if !a.ok || !b.ok {
			continue
		}
		width := pr.Radius(lineWorldWidth*r.World.Scale.X(), (a.depth+b.depth)/2)
		if width < 1 {
			width = 1
		}
		vector.StrokeLine(dst, a.x, a.y, b.x, b.y, width, clr, true)
	}
}
