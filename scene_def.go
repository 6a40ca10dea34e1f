package biome

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Range is a half-open numeric range [Min, Max).
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

func (r Range) Sample(rng Rand) float32 {
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

func (r Range) Contains(v float32) bool {
	if r.Min == r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

func (r Range) valid() bool {
	return !isNaN(r.Min) && !isNaN(r.Max) && r.Min <= r.Max
}

// Box is an axis-aligned volume given by its center and full extents.
type Box struct {
	Center mgl32.Vec3 `yaml:"center"`
	Size   mgl32.Vec3 `yaml:"size"`
}

// Sample draws a point uniformly inside the box.
func (b Box) Sample(rng Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		b.Center.X() + (rng.Float32()-0.5)*b.Size.X(),
		b.Center.Y() + (rng.Float32()-0.5)*b.Size.Y(),
		b.Center.Z() + (rng.Float32()-0.5)*b.Size.Z(),
	}
}

func (b Box) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		half := b.Size[i] / 2
		if p[i] < b.Center[i]-half || p[i] > b.Center[i]+half {
			return false
		}
	}
	return true
}

func (b Box) degenerate() bool {
	return b.Size.X() <= 0 || b.Size.Y() <= 0 || b.Size.Z() <= 0
}

type Material struct {
	Opacity   float32 `yaml:"opacity"`
	Emissive  float32 `yaml:"emissive"`
	Wireframe bool    `yaml:"wireframe"`
}

func (m Material) or(def Material) Material {
	if m.Opacity == 0 {
		m.Opacity = def.Opacity
	}
	if m.Emissive == 0 {
		m.Emissive = def.Emissive
	}
	m.Wireframe = m.Wireframe || def.Wireframe
	return m
}

type FieldDef struct {
	Name     string   `yaml:"name"`
	Count    int      `yaml:"count"`
	Box      Box      `yaml:"box"`
	Scale    Range    `yaml:"scale"`
	Speed    Range    `yaml:"speed"`
	Palette  Palette  `yaml:"palette"`
	Material Material `yaml:"material"`
}

type ClusterDef struct {
	Name     string     `yaml:"name"`
	Position mgl32.Vec3 `yaml:"position"`
	Count    int        `yaml:"count"`
	Spread   float32    `yaml:"spread"`
	Scale    Range      `yaml:"scale"`
	Color    Color      `yaml:"color"`
	Material Material   `yaml:"material"`
}

type HelixDef struct {
	Name        string     `yaml:"name"`
	Position    mgl32.Vec3 `yaml:"position"`
	Steps       int        `yaml:"steps"`
	Radius      float32    `yaml:"radius"`
	Height      float32    `yaml:"height"`
	Turns       float32    `yaml:"turns"`
	BridgeEvery int        `yaml:"bridge_every"`
	Speed       *float32   `yaml:"speed"`
	Strand1     Color      `yaml:"strand1"`
	Strand2     Color      `yaml:"strand2"`
	Bridge      Color      `yaml:"bridge"`
}

// SpinSpeed returns the helix spin rate about Y, or the default when Speed
// is nil. An explicit 0 holds the helix still.
func (h HelixDef) SpinSpeed() float32 {
	return valueOr(h.Speed, defaultHelixSpeed)
}

type RingDef struct {
	Name     string   `yaml:"name"`
	Radius   float32  `yaml:"radius"`
	Count    int      `yaml:"count"`
	Speed    float32  `yaml:"speed"`
	FlattenY float32  `yaml:"flatten_y"`
	FlattenZ float32  `yaml:"flatten_z"`
	Scale    Range    `yaml:"scale"`
	Color    Color    `yaml:"color"`
	Material Material `yaml:"material"`
}

type MembraneDef struct {
	Name       string     `yaml:"name"`
	Position   mgl32.Vec3 `yaml:"position"`
	BaseRadius float32    `yaml:"base_radius"`
	Detail     int        `yaml:"detail"`
	Color      Color      `yaml:"color"`
	Material   Material   `yaml:"material"`
}

type TrailDef struct {
	Name     string     `yaml:"name"`
	Position mgl32.Vec3 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
	Radius   float32    `yaml:"radius"`
	P        int        `yaml:"p"`
	Q        int        `yaml:"q"`
	Segments int        `yaml:"segments"`
	Spin     mgl32.Vec3 `yaml:"spin"`
	Color    Color      `yaml:"color"`
	Material Material   `yaml:"material"`
}

type PointCloudDef struct {
	Name     string   `yaml:"name"`
	Count    int      `yaml:"count"`
	Box      Box      `yaml:"box"`
	Size     float32  `yaml:"size"`
	Speed    float32  `yaml:"speed"`
	Color    Color    `yaml:"color"`
	Material Material `yaml:"material"`
}

type OrbDef struct {
	Name     string     `yaml:"name"`
	Position mgl32.Vec3 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
	Color    Color      `yaml:"color"`
	Material Material   `yaml:"material"`
}

type LightType string

const (
	LightAmbient     LightType = "ambient"
	LightPoint       LightType = "point"
	LightDirectional LightType = "directional"
	LightHemisphere  LightType = "hemisphere"
)

type LightDef struct {
	Type      LightType  `yaml:"type"`
	Position  mgl32.Vec3 `yaml:"position"`
	Color     Color      `yaml:"color"`
	Ground    Color      `yaml:"ground"`
	Intensity float32    `yaml:"intensity"`
}

type FogDef struct {
	Color Color   `yaml:"color"`
	Near  float32 `yaml:"near"`
	Far   float32 `yaml:"far"`
}

// Factor returns how much of the fog color replaces a surface at depth d:
// 0 up to Near, 1 from Far on, linear in between.
func (f FogDef) Factor(d float32) float32 {
	if f.Far <= f.Near {
		return 0
	}
	t := (d - f.Near) / (f.Far - f.Near)
	return float32(math.Max(0, math.Min(1, float64(t))))
}

// CameraDef configures the camera. Gains are pointers so that an explicit
// 0 survives Normalize. A Static camera never follows the pointer.
type CameraDef struct {
	Position       mgl32.Vec3 `yaml:"position"`
	FOV            float32    `yaml:"fov"`
	HorizontalGain *float32   `yaml:"horizontal_gain"`
	VerticalGain   *float32   `yaml:"vertical_gain"`
	Depth          float32    `yaml:"depth"`
	Damping        float32    `yaml:"damping"`
	Static         bool       `yaml:"static"`
}

const (
	defaultHorizontalGain = 1.2
	defaultVerticalGain   = 0.8
	defaultHelixSpeed     = 0.15
)

func valueOr(p *float32, def float32) float32 {
	if p == nil {
		return def
	}
	return *p
}

func float32Ptr(v float32) *float32 { return &v }

// SceneDef is the declarative composition of one background scene.
type SceneDef struct {
	Name        string          `yaml:"name"`
	Background  Color           `yaml:"background"`
	Fog         FogDef          `yaml:"fog"`
	Camera      CameraDef       `yaml:"camera"`
	Lights      []LightDef      `yaml:"lights"`
	Fields      []FieldDef      `yaml:"fields"`
	Clusters    []ClusterDef    `yaml:"clusters"`
	Helices     []HelixDef      `yaml:"helices"`
	Rings       []RingDef       `yaml:"rings"`
	Membranes   []MembraneDef   `yaml:"membranes"`
	Trails      []TrailDef      `yaml:"trails"`
	PointClouds []PointCloudDef `yaml:"point_clouds"`
	Orbs        []OrbDef        `yaml:"orbs"`
}

// Normalize fills unset fields with the microbiome defaults and
// names unnamed groups by kind and index.
func (def *SceneDef) Normalize() {
	if def.Camera.Position == (mgl32.Vec3{}) {
		def.Camera.Position = mgl32.Vec3{0, 0, 10}
	}
	if def.Camera.FOV == 0 {
		def.Camera.FOV = 55
	}
	if def.Camera.HorizontalGain == nil {
		def.Camera.HorizontalGain = float32Ptr(defaultHorizontalGain)
	}
	if def.Camera.VerticalGain == nil {
		def.Camera.VerticalGain = float32Ptr(defaultVerticalGain)
	}
	if def.Camera.Depth == 0 {
		def.Camera.Depth = def.Camera.Position.Z()
	}
	if def.Camera.Damping == 0 {
		def.Camera.Damping = 0.02
	}

	for i := range def.Fields {
		f := &def.Fields[i]
		setName(&f.Name, "field", i)
		f.Material = f.Material.or(Material{Opacity: 0.55, Emissive: 0.4})
	}
	for i := range def.Clusters {
		c := &def.Clusters[i]
		setName(&c.Name, "cluster", i)
		if c.Spread == 0 {
			c.Spread = 2.5
		}
		if c.Scale == (Range{}) {
			c.Scale = Range{Min: 0.08, Max: 0.22}
		}
		c.Material = c.Material.or(Material{Opacity: 0.45, Emissive: 0.25})
	}
	for i := range def.Helices {
		h := &def.Helices[i]
		setName(&h.Name, "helix", i)
		if h.Steps == 0 {
			h.Steps = 40
		}
		if h.Radius == 0 {
			h.Radius = 0.8
		}
		if h.Height == 0 {
			h.Height = 8
		}
		if h.Turns == 0 {
			h.Turns = 2
		}
		if h.BridgeEvery == 0 {
			h.BridgeEvery = 4
		}
		if h.Speed == nil {
			h.Speed = float32Ptr(defaultHelixSpeed)
		}
	}
	for i := range def.Rings {
		r := &def.Rings[i]
		setName(&r.Name, "ring", i)
		if r.FlattenY == 0 {
			r.FlattenY = 0.35
		}
		if r.FlattenZ == 0 {
			r.FlattenZ = 0.5
		}
		if r.Scale == (Range{}) {
			r.Scale = Range{Min: 0.03, Max: 0.09}
		}
		r.Material = r.Material.or(Material{Opacity: 0.45, Emissive: 0.5})
	}
	for i := range def.Membranes {
		m := &def.Membranes[i]
		setName(&m.Name, "membrane", i)
		if m.BaseRadius == 0 {
			m.BaseRadius = 1.2
		}
		if m.Detail == 0 {
			m.Detail = 1
		}
		m.Material = m.Material.or(Material{Opacity: 0.12, Emissive: 0.3, Wireframe: true})
	}
	for i := range def.Trails {
		t := &def.Trails[i]
		setName(&t.Name, "trail", i)
		if t.Scale == 0 {
			t.Scale = 0.6
		}
		if t.Radius == 0 {
			t.Radius = 1.5
		}
		if t.P == 0 {
			t.P = 2
		}
		if t.Q == 0 {
			t.Q = 3
		}
		if t.Segments == 0 {
			t.Segments = 128
		}
		if t.Spin == (mgl32.Vec3{}) {
			t.Spin = mgl32.Vec3{0.2, 0.15, 0.1}
		}
		t.Material = t.Material.or(Material{Opacity: 0.2, Emissive: 0.6})
	}
	for i := range def.PointClouds {
		p := &def.PointClouds[i]
		setName(&p.Name, "points", i)
		if p.Size == 0 {
			p.Size = 0.12
		}
		p.Material = p.Material.or(Material{Opacity: 0.9})
	}
	for i := range def.Orbs {
		o := &def.Orbs[i]
		setName(&o.Name, "orb", i)
		if o.Scale == 0 {
			o.Scale = 1
		}
		o.Material = o.Material.or(Material{Opacity: 1, Emissive: 1.2})
	}
}

func setName(name *string, kind string, i int) {
	if *name == "" {
		*name = fmt.Sprintf("%s-%d", kind, i)
	}
}

// Validate reports the first problem found, wrapped in ErrInvalidScene.
// Call Normalize first.
func (def *SceneDef) Validate() error {
	if def.Camera.Damping <= 0 || def.Camera.Damping > 1 {
		return fmt.Errorf("%w: camera damping %v outside (0, 1]", ErrInvalidScene, def.Camera.Damping)
	}
	if def.Fog.Far < def.Fog.Near {
		return fmt.Errorf("%w: fog far %v before near %v", ErrInvalidScene, def.Fog.Far, def.Fog.Near)
	}

	names := make(map[string]struct{})
	unique := func(name string) error {
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: duplicate group name %q", ErrInvalidScene, name)
		}
		names[name] = struct{}{}
		return nil
	}

	for _, f := range def.Fields {
		if err := unique(f.Name); err != nil {
			return err
		}
		if f.Count < 0 {
			return fmt.Errorf("%w: field %q: negative count %d", ErrInvalidScene, f.Name, f.Count)
		}
		if f.Count > 0 && f.Box.degenerate() {
			return fmt.Errorf("%w: field %q: degenerate box", ErrInvalidScene, f.Name)
		}
		if !f.Scale.valid() || !f.Speed.valid() {
			return fmt.Errorf("%w: field %q: bad range", ErrInvalidScene, f.Name)
		}
		if f.Count > 0 && len(f.Palette) == 0 {
			return fmt.Errorf("%w: field %q: empty palette", ErrInvalidScene, f.Name)
		}
	}
	for _, c := range def.Clusters {
		if err := unique(c.Name); err != nil {
			return err
		}
		if c.Count < 0 {
			return fmt.Errorf("%w: cluster %q: negative count %d", ErrInvalidScene, c.Name, c.Count)
		}
		if c.Spread <= 0 || !c.Scale.valid() {
			return fmt.Errorf("%w: cluster %q: bad volume", ErrInvalidScene, c.Name)
		}
	}
	for _, h := range def.Helices {
		if err := unique(h.Name); err != nil {
			return err
		}
		if h.Steps < 0 || h.BridgeEvery < 0 || h.Radius <= 0 {
			return fmt.Errorf("%w: helix %q: bad shape", ErrInvalidScene, h.Name)
		}
	}
	for _, r := range def.Rings {
		if err := unique(r.Name); err != nil {
			return err
		}
		if r.Count < 0 || r.Radius <= 0 || !r.Scale.valid() {
			return fmt.Errorf("%w: ring %q: bad shape", ErrInvalidScene, r.Name)
		}
	}
	for _, m := range def.Membranes {
		if err := unique(m.Name); err != nil {
			return err
		}
		if m.BaseRadius <= 0 || m.Detail < 0 || m.Detail > 4 {
			return fmt.Errorf("%w: membrane %q: bad shape", ErrInvalidScene, m.Name)
		}
	}
	for _, t := range def.Trails {
		if err := unique(t.Name); err != nil {
			return err
		}
		if t.Segments < 3 || t.Radius <= 0 {
			return fmt.Errorf("%w: trail %q: bad shape", ErrInvalidScene, t.Name)
		}
	}
	for _, p := range def.PointClouds {
		if err := unique(p.Name); err != nil {
			return err
		}
		if p.Count < 0 || (p.Count > 0 && p.Box.degenerate()) {
			return fmt.Errorf("%w: point cloud %q: bad volume", ErrInvalidScene, p.Name)
		}
	}
	for _, o := range def.Orbs {
		if err := unique(o.Name); err != nil {
			return err
		}
	}
	for i, l := range def.Lights {
		switch l.Type {
		case LightAmbient, LightPoint, LightDirectional, LightHemisphere:
		default:
			return fmt.Errorf("%w: light %d: unknown type %q", ErrInvalidScene, i, l.Type)
		}
	}
	return nil
}

func isNaN(f float32) bool {
	return f != f
}
