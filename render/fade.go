package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade eases the scene opacity from 0 to 1 after mount.
type Fade struct {
	tween *gween.Tween
	value float32
	done  bool
}

// NewFade returns a fade over seconds. A non-positive duration starts fully
// opaque.
func NewFade(seconds float32) *Fade {
	if seconds <= 0 {
		return &Fade{value: 1, done: true}
	}
	return &Fade{tween: gween.New(0, 1, seconds, ease.OutCubic)}
}

// Advance moves the fade forward by dt seconds and returns the opacity.
func (f *Fade) Advance(dt float32) float32 {
	if f.done || dt <= 0 {
		return f.value
	}
	f.value, f.done = f.tween.Update(dt)
	if f.done {
		f.value = 1
	}
	return f.value
}

func (f *Fade) Value() float32 { return f.value }

func (f *Fade) Done() bool { return f.done }
