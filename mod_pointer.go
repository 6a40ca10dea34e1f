package biome

import (
	"sync"
)

// PointerEvent is a pointer-move in viewport pixels.
type PointerEvent struct {
	X, Y          float64
	Width, Height float64
}

// Normalized maps the event to [-1, 1] on both axes, with (-1, -1) at the
// top-left corner. ok is false for a degenerate viewport.
func (e PointerEvent) Normalized() (x, y float32, ok bool) {
	if e.Width <= 0 || e.Height <= 0 {
		return 0, 0, false
	}
	x = clampUnit(float32((e.X/e.Width - 0.5) * 2))
	y = clampUnit(float32((e.Y/e.Height - 0.5) * 2))
	return x, y, true
}

// PointerSource delivers pointer-move events until the returned cancel
// func is called.
type PointerSource interface {
	SubscribePointer(fn func(PointerEvent)) (cancel func())
}

// Pointer holds the most recent normalized pointer position. Events may
// arrive from another goroutine than the frame loop; the last write wins.
type Pointer struct {
	mu   sync.Mutex
	x, y float32
	seen bool
}

func (p *Pointer) Set(e PointerEvent) {
	x, y, ok := e.Normalized()
	if !ok {
		return
	}
	p.mu.Lock()
	p.x, p.y = x, y
	p.seen = true
	p.mu.Unlock()
}

// Read returns the latest position and whether any event has arrived yet.
func (p *Pointer) Read() (x, y float32, seen bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.seen
}

// FrameState is the per-frame snapshot every animator and the camera read.
// It is written once at frame start.
type FrameState struct {
	Elapsed     float32
	PointerX    float32
	PointerY    float32
	PointerSeen bool
}

type PointerModule struct {
	Source PointerSource
}

func (mod PointerModule) Install(app *App, cmd *Commands) {
	pointer := &Pointer{}
	cmd.AddResources(pointer, &FrameState{})

	if mod.Source != nil {
		cancel := mod.Source.SubscribePointer(pointer.Set)
		cmd.OnTeardown(cancel)
	} else {
		app.Logger().Warnf("pointer module installed without a source; camera stays idle")
	}

	app.UseSystem(
		System(frameStateSystem).
			InStage(PreUpdate),
	)
}

func frameStateSystem(clock *Clock, pointer *Pointer, frame *FrameState) {
	frame.Elapsed = clock.Seconds()
	frame.PointerX, frame.PointerY, frame.PointerSeen = pointer.Read()
}

func clampUnit(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
