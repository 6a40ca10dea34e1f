package biome

import (
	"time"
)

// MountOptions describes one scene mount.
type MountOptions struct {
	Scene   *Scene
	Pointer PointerSource
	Logger  Logger
	Reloads <-chan SceneDef
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Mount wires the clock, pointer, camera and scene modules into a new App.
// Per-frame order: clock and pointer snapshot, camera, scene transforms.
func Mount(opts MountOptions) *App {
	return NewAppBuilder().
		UseModule(
			LoggingModule{Prefix: "biome", Logger: opts.Logger},
			ClockModule{Now: opts.Now},
			PointerModule{Source: opts.Pointer},
			SceneModule{Scene: opts.Scene, Reloads: opts.Reloads},
			CameraModule{},
		).
		Build()
}
