package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gekko3d/biome"
)

// Options configures the drawing surface.
type Options struct {
	Width, Height  int
	Title          string
	DPRMin, DPRMax float64
	FadeIn         float32
	TPS            int
	Debug          bool
}

// Surface is the ebiten window a scene is drawn to. It feeds cursor moves
// to pointer subscribers and ticks the attached App once per update.
type Surface struct {
	opts Options
	app  *biome.App

	mu          sync.Mutex
	subscribers map[int]func(biome.PointerEvent)
	nextSub     int

	lastX, lastY int
	cursorKnown  bool
	screenW      float64
	screenH      float64
	fade         *Fade
	painter      Painter
}

func NewSurface(opts Options) *Surface {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.DPRMin <= 0 {
		opts.DPRMin = 1
	}
	if opts.DPRMax < opts.DPRMin {
		opts.DPRMax = opts.DPRMin
	}
	return &Surface{
		opts:        opts,
		subscribers: make(map[int]func(biome.PointerEvent)),
		fade:        NewFade(opts.FadeIn),
		screenW:     float64(opts.Width),
		screenH:     float64(opts.Height),
	}
}

// SubscribePointer implements biome.PointerSource.
func (s *Surface) SubscribePointer(fn func(biome.PointerEvent)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live pointer subscriptions.
func (s *Surface) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func (s *Surface) dispatch(e biome.PointerEvent) {
	s.mu.Lock()
	fns := make([]func(biome.PointerEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

// Attach sets the App ticked by Update and drawn by Draw. An App can be
// attached to one surface only.
func (s *Surface) Attach(app *biome.App) error {
	if err := biome.ClaimSurface(app, "ebiten"); err != nil {
		return err
	}
	s.app = app
	return nil
}

// Run opens the window and blocks until it is closed or the App halts.
// The App is torn down before Run returns. A surface that cannot be
// created is reported as biome.ErrRenderUnsupported.
func (s *Surface) Run() (err error) {
	if s.app == nil {
		return errors.New("render: surface has no app attached")
	}
	defer s.app.Teardown()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", biome.ErrRenderUnsupported, r)
		}
	}()

	ebiten.SetWindowSize(s.opts.Width, s.opts.Height)
	ebiten.SetWindowTitle(s.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.opts.TPS)

	err = ebiten.RunGame(s)
	if err == nil || errors.Is(err, ebiten.Termination) {
		return nil
	}
	return fmt.Errorf("%w: %v", biome.ErrRenderUnsupported, err)
}

func (s *Surface) Update() error {
	s.pollCursor()
	if !s.app.Tick() {
		return ebiten.Termination
	}
	if clock, ok := biome.Resource[biome.Clock](s.app); ok {
		s.fade.Advance(float32(clock.Dt.Seconds()))
	}
	return nil
}

// pollCursor turns cursor motion into pointer events. The first reading
// only sets the baseline: a cursor that never moves sends nothing.
func (s *Surface) pollCursor() {
	x, y := ebiten.CursorPosition()
	if !s.cursorKnown {
		s.cursorKnown = true
		s.lastX, s.lastY = x, y
		return
	}
	if x == s.lastX && y == s.lastY {
		return
	}
	s.lastX, s.lastY = x, y
	s.dispatch(biome.PointerEvent{X: float64(x), Y: float64(y), Width: s.screenW, Height: s.screenH})
}

func (s *Surface) Draw(screen *ebiten.Image) {
	scene, ok := biome.Resource[biome.Scene](s.app)
	if !ok {
		return
	}
	frame, ok := biome.Resource[biome.Frame](s.app)
	if !ok {
		return
	}
	def := scene.Def()
	bounds := screen.Bounds()
	pr := NewProjector(scene.Camera, float32(bounds.Dx()), float32(bounds.Dy()))
	alpha := s.fade.Value()
	s.painter.Paint(screen, frame, pr, NewLighting(def), toNRGBA(def.Background.RGB, 1), alpha)

	if s.opts.Debug {
		drawOverlay(screen, OverlayLines(ebiten.ActualFPS(), frame, scene.GroupCounts()), overlayColor(def.Background))
	}
}

func (s *Surface) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := s.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF renders at the device pixel ratio clamped to the configured range.
func (s *Surface) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := clampDPR(ebiten.Monitor().DeviceScaleFactor(), s.opts.DPRMin, s.opts.DPRMax)
	s.screenW, s.screenH = outsideWidth*scale, outsideHeight*scale
	return s.screenW, s.screenH
}

func clampDPR(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
