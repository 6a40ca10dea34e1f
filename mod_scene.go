package biome

import (
	"time"
)

// SceneModule installs a composed scene and the per-frame system that turns
// it into a Frame.
type SceneModule struct {
	Scene *Scene
	// Reloads optionally delivers replacement definitions, applied at the
	// start of the next frame.
	Reloads <-chan SceneDef
}

type sceneReloads struct {
	ch <-chan SceneDef
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	if mod.Scene == nil {
		panic("SceneModule: Scene is nil")
	}
	cmd.AddResources(mod.Scene, NewFrame(), &sceneReloads{ch: mod.Reloads})

	app.UseSystem(
		System(sceneReloadSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(sceneFrameSystem).
			InStage(PostUpdate),
	)

	app.Logger().Infof("scene %q mounted: %d instances", mod.Scene.Def().Name, mod.Scene.InstanceCount())
}

func sceneReloadSystem(scene *Scene, reloads *sceneReloads, cmd *Commands) {
	if reloads.ch == nil {
		return
	}
	for {
		select {
		case def, ok := <-reloads.ch:
			if !ok {
				reloads.ch = nil
				return
			}
			start := time.Now()
			n, err := scene.Reload(def)
			if err != nil {
				cmd.Logger().Warnf("scene reload rejected, keeping current scene: %v", err)
				continue
			}
			cmd.Logger().Infof("scene reloaded: %d groups regenerated in %s", n, time.Since(start))
		default:
			return
		}
	}
}

func sceneFrameSystem(scene *Scene, frame *FrameState, out *Frame) {
	scene.Frame(frame.Elapsed, out)
}
