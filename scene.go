package biome

import (
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Renderable is one element of one frame, resolved to world space.
type Renderable struct {
	ID       uuid.UUID
	Group    string
	Kind     GeometryKind
	World    WorldTransform
	Color    Color
	Material Material
	// Mesh is set for the line kinds (icosahedron, torus knot).
	Mesh *Wireframe
}

// Frame maps stable instance ids to this frame's renderables. The map is
// rebuilt every frame.
type Frame struct {
	Elapsed     float32
	Eye         mgl32.Vec3
	CameraState CameraState
	Renderables map[uuid.UUID]Renderable
}

func NewFrame() *Frame {
	return &Frame{Renderables: make(map[uuid.UUID]Renderable)}
}

type fieldGroup struct {
	def       FieldDef
	particles []InstanceDescriptor
}

type clusterGroup struct {
	def     ClusterDef
	members []InstanceDescriptor
}

type helixGroup struct {
	def   HelixDef
	helix Helix
}

type ringGroup struct {
	def  RingDef
	dots []InstanceDescriptor
}

type membraneGroup struct {
	def  MembraneDef
	id   uuid.UUID
	mesh *Wireframe
}

type trailGroup struct {
	def  TrailDef
	id   uuid.UUID
	mesh *Wireframe
}

type pointCloudGroup struct {
	def    PointCloudDef
	points []InstanceDescriptor
}

type orbGroup struct {
	def OrbDef
	id  uuid.UUID
}

// Scene holds every generated group of one mount plus the camera.
type Scene struct {
	Camera *Camera

	def SceneDef
	rng Rand

	fields      []fieldGroup
	clusters    []clusterGroup
	helices     []helixGroup
	rings       []ringGroup
	membranes   []membraneGroup
	trails      []trailGroup
	pointClouds []pointCloudGroup
	orbs        []orbGroup
}

// NewScene validates def and generates every group once.
func NewScene(def SceneDef, rng Rand) (*Scene, error) {
	def.Normalize()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{rng: rng, Camera: NewCamera(def.Camera)}
	s.apply(def, nil)
	return s, nil
}

// Def returns the normalized definition the scene was built from.
func (s *Scene) Def() SceneDef {
	return s.def
}

// Reload swaps in a new definition. Groups whose definition is unchanged
// keep their descriptors; only changed or new groups draw fresh random
// numbers. It returns the number of regenerated groups.
func (s *Scene) Reload(def SceneDef) (int, error) {
	def.Normalize()
	if err := def.Validate(); err != nil {
		return 0, err
	}
	regenerated := 0
	s.apply(def, &regenerated)
	s.Camera.retune(def.Camera)
	return regenerated, nil
}

func (s *Scene) apply(def SceneDef, regenerated *int) {
	count := func() {
		if regenerated != nil {
			*regenerated++
		}
	}
	old := *s
	s.def = def

	s.fields = s.fields[:0:0]
	for _, d := range def.Fields {
		if prev, ok := findGroup(old.fields, d.Name, func(g fieldGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.fields = append(s.fields, prev)
			continue
		}
		count()
		s.fields = append(s.fields, fieldGroup{def: d, particles: GenerateField(s.rng, d)})
	}

	s.clusters = s.clusters[:0:0]
	for _, d := range def.Clusters {
		if prev, ok := findGroup(old.clusters, d.Name, func(g clusterGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.clusters = append(s.clusters, prev)
			continue
		}
		count()
		s.clusters = append(s.clusters, clusterGroup{def: d, members: GenerateCluster(s.rng, d)})
	}

	s.helices = s.helices[:0:0]
	for _, d := range def.Helices {
		if prev, ok := findGroup(old.helices, d.Name, func(g helixGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.helices = append(s.helices, prev)
			continue
		}
		count()
		s.helices = append(s.helices, helixGroup{def: d, helix: BuildHelix(d)})
	}

	s.rings = s.rings[:0:0]
	for _, d := range def.Rings {
		if prev, ok := findGroup(old.rings, d.Name, func(g ringGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.rings = append(s.rings, prev)
			continue
		}
		count()
		s.rings = append(s.rings, ringGroup{def: d, dots: GenerateRing(s.rng, d)})
	}

	s.membranes = s.membranes[:0:0]
	for _, d := range def.Membranes {
		if prev, ok := findGroup(old.membranes, d.Name, func(g membraneGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.membranes = append(s.membranes, prev)
			continue
		}
		count()
		mesh := Icosahedron(d.Detail)
		s.membranes = append(s.membranes, membraneGroup{def: d, id: InstanceID(d.Name, "shell", 0), mesh: &mesh})
	}

	s.trails = s.trails[:0:0]
	for _, d := range def.Trails {
		if prev, ok := findGroup(old.trails, d.Name, func(g trailGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.trails = append(s.trails, prev)
			continue
		}
		count()
		mesh := closedPolyline(TorusKnotCurve(d.Radius, d.P, d.Q, d.Segments))
		s.trails = append(s.trails, trailGroup{def: d, id: InstanceID(d.Name, "knot", 0), mesh: &mesh})
	}

	s.pointClouds = s.pointClouds[:0:0]
	for _, d := range def.PointClouds {
		if prev, ok := findGroup(old.pointClouds, d.Name, func(g pointCloudGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.pointClouds = append(s.pointClouds, prev)
			continue
		}
		count()
		s.pointClouds = append(s.pointClouds, pointCloudGroup{def: d, points: GeneratePointCloud(s.rng, d)})
	}

	s.orbs = s.orbs[:0:0]
	for _, d := range def.Orbs {
		if prev, ok := findGroup(old.orbs, d.Name, func(g orbGroup) string { return g.def.Name }); ok && reflect.DeepEqual(prev.def, d) {
			s.orbs = append(s.orbs, prev)
			continue
		}
		count()
		s.orbs = append(s.orbs, orbGroup{def: d, id: InstanceID(d.Name, "orb", 0)})
	}
}

func findGroup[G any](groups []G, name string, nameOf func(G) string) (G, bool) {
	for _, g := range groups {
		if nameOf(g) == name {
			return g, true
		}
	}
	var zero G
	return zero, false
}

func closedPolyline(points []mgl32.Vec3) Wireframe {
	w := Wireframe{Vertices: points, Edges: make([][2]int, 0, len(points))}
	for i := range points {
		w.Edges = append(w.Edges, [2]int{i, (i + 1) % len(points)})
	}
	return w
}

func (c *Camera) retune(def CameraDef) {
	c.FOV = def.FOV
	c.horizontalGain = valueOr(def.HorizontalGain, defaultHorizontalGain)
	c.verticalGain = valueOr(def.VerticalGain, defaultVerticalGain)
	c.depth = def.Depth
	c.damping = def.Damping
	c.static = def.Static
	if c.static {
		c.State = CameraIdle
		c.Position = def.Position
		c.Target = def.Position
	}
}

// Frame computes every renderable for the given elapsed time and writes
// them into out, replacing its previous contents. Descriptors are only read.
func (s *Scene) Frame(elapsed float32, out *Frame) {
	if out.Renderables == nil {
		out.Renderables = make(map[uuid.UUID]Renderable, s.InstanceCount())
	}
	clear(out.Renderables)
	out.Elapsed = elapsed
	out.Eye = s.Camera.Position
	out.CameraState = s.Camera.State

	put := func(r Renderable) { out.Renderables[r.ID] = r }

	for _, g := range s.fields {
		for _, d := range g.particles {
			put(Renderable{ID: d.ID, Group: g.def.Name, Kind: GeometrySphere,
				World: AnimateParticle(elapsed, d).World(), Color: d.Color, Material: g.def.Material})
		}
	}
	for _, g := range s.clusters {
		parent := AnimateClusterGroup(elapsed, g.def.Position)
		for _, d := range g.members {
			put(Renderable{ID: d.ID, Group: g.def.Name, Kind: GeometryCapsule,
				World: Compose(parent, ClusterMemberLocal(d)), Color: d.Color, Material: g.def.Material})
		}
	}
	for _, g := range s.helices {
		parent := AnimateHelixGroup(elapsed, g.def)
		bead := Material{Opacity: 0.6, Emissive: 0.5}
		for _, strand := range [][]InstanceDescriptor{g.helix.Strand1, g.helix.Strand2} {
			for _, d := range strand {
				local := DerivedTransform{Position: d.Base, Scale: uniform(d.Scale)}
				put(Renderable{ID: d.ID, Group: g.def.Name, Kind: GeometrySphere,
					World: Compose(parent, local), Color: d.Color, Material: bead})
			}
		}
		for _, b := range g.helix.Bridges {
			local := DerivedTransform{Position: b.Position, Rotation: b.Rotation, Scale: b.Scale}
			put(Renderable{ID: b.ID, Group: g.def.Name, Kind: GeometryBox,
				World: Compose(parent, local), Color: b.Color, Material: Material{Opacity: 0.4, Emissive: 0.3}})
		}
	}
	for _, g := range s.rings {
		parent := AnimateRingGroup(elapsed, g.def)
		for _, d := range g.dots {
			local := DerivedTransform{Position: d.Base, Scale: uniform(d.Scale)}
			put(Renderable{ID: d.ID, Group: g.def.Name, Kind: GeometrySphere,
				World: Compose(parent, local), Color: d.Color, Material: g.def.Material})
		}
	}
	for _, g := range s.membranes {
		put(Renderable{ID: g.id, Group: g.def.Name, Kind: GeometryIcosahedron,
			World: AnimateMembrane(elapsed, g.def).World(), Color: g.def.Color, Material: g.def.Material, Mesh: g.mesh})
	}
	for _, g := range s.trails {
		put(Renderable{ID: g.id, Group: g.def.Name, Kind: GeometryTorusKnot,
			World: AnimateTrail(elapsed, g.def).World(), Color: g.def.Color, Material: g.def.Material, Mesh: g.mesh})
	}
	for _, g := range s.pointClouds {
		parent := AnimatePointCloudGroup(elapsed, g.def)
		for _, d := range g.points {
			local := DerivedTransform{Position: d.Base, Scale: uniform(d.Scale)}
			put(Renderable{ID: d.ID, Group: g.def.Name, Kind: GeometryPoint,
				World: Compose(parent, local), Color: d.Color, Material: g.def.Material})
		}
	}
	for _, g := range s.orbs {
		local := DerivedTransform{Position: g.def.Position, Scale: uniform(g.def.Scale)}
		put(Renderable{ID: g.id, Group: g.def.Name, Kind: GeometrySphere,
			World: local.World(), Color: g.def.Color, Material: g.def.Material})
	}
}

// GroupCounts returns the instance count of every group by name.
func (s *Scene) GroupCounts() map[string]int {
	counts := make(map[string]int)
	for _, g := range s.fields {
		counts[g.def.Name] = len(g.particles)
	}
	for _, g := range s.clusters {
		counts[g.def.Name] = len(g.members)
	}
	for _, g := range s.helices {
		counts[g.def.Name] = len(g.helix.Strand1) + len(g.helix.Strand2) + len(g.helix.Bridges)
	}
	for _, g := range s.rings {
		counts[g.def.Name] = len(g.dots)
	}
	for _, g := range s.membranes {
		counts[g.def.Name] = 1
	}
	for _, g := range s.trails {
		counts[g.def.Name] = 1
	}
	for _, g := range s.pointClouds {
		counts[g.def.Name] = len(g.points)
	}
	for _, g := range s.orbs {
		counts[g.def.Name] = 1
	}
	return counts
}

func (s *Scene) InstanceCount() int {
	n := 0
	for _, c := range s.GroupCounts() {
		n += c
	}
	return n
}

// Descriptors returns a copy of the named group's descriptors, or an error
// if there is no such group. Groups without descriptors return nil.
func (s *Scene) Descriptors(group string) ([]InstanceDescriptor, error) {
	clone := func(d []InstanceDescriptor) []InstanceDescriptor {
		return append([]InstanceDescriptor(nil), d...)
	}
	for _, g := range s.fields {
		if g.def.Name == group {
			return clone(g.particles), nil
		}
	}
	for _, g := range s.clusters {
		if g.def.Name == group {
			return clone(g.members), nil
		}
	}
	for _, g := range s.helices {
		if g.def.Name == group {
			return append(clone(g.helix.Strand1), g.helix.Strand2...), nil
		}
	}
	for _, g := range s.rings {
		if g.def.Name == group {
			return clone(g.dots), nil
		}
	}
	for _, g := range s.pointClouds {
		if g.def.Name == group {
			return clone(g.points), nil
		}
	}
	if _, ok := s.GroupCounts()[group]; ok {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: no group %q", ErrInvalidScene, group)
}
