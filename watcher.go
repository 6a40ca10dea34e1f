package biome

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SceneWatcher reloads a scene file whenever it changes on disk and
// publishes the parsed definition. Bursts of writes within the debounce
// window produce one reload.
//
// The parent directory is watched rather than the file, so editors that
// save by rename keep triggering reloads.
type SceneWatcher struct {
	path     string
	debounce time.Duration
	log      Logger

	watcher  *fsnotify.Watcher
	defs     chan SceneDef
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSceneWatcher(path string, debounce time.Duration, log Logger) (*SceneWatcher, error) {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	if log == nil {
		log = NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve scene path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &SceneWatcher{
		path:     abs,
		debounce: debounce,
		log:      log,
		watcher:  w,
		defs:     make(chan SceneDef, 1),
		done:     make(chan struct{}),
	}, nil
}

// Defs delivers freshly parsed definitions. Only the newest unread one is kept.
func (sw *SceneWatcher) Defs() <-chan SceneDef {
	return sw.defs
}

// Start runs the watch loop until ctx is cancelled or Stop is called.
func (sw *SceneWatcher) Start(ctx context.Context) {
	sw.wg.Add(1)
	go sw.loop(ctx)
}

// Stop ends the watch loop and releases the OS watch. Safe to call twice.
func (sw *SceneWatcher) Stop() {
	sw.stopOnce.Do(func() {
		close(sw.done)
		sw.watcher.Close()
		sw.wg.Wait()
	})
}

func (sw *SceneWatcher) loop(ctx context.Context) {
	defer sw.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sw.done:
			return
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(sw.debounce)
			} else {
				timer.Reset(sw.debounce)
			}
			fire = timer.C
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.log.Warnf("scene watcher: %v", err)
		case <-fire:
			fire = nil
			sw.reload()
		}
	}
}

func (sw *SceneWatcher) reload() {
	def, err := LoadSceneDef(sw.path)
	if err != nil {
		sw.log.Warnf("scene file changed but could not be loaded: %v", err)
		return
	}
	// Replace any unread definition with the newer one.
	select {
	case <-sw.defs:
	default:
	}
	select {
	case sw.defs <- def:
	default:
	}
	sw.log.Debugf("scene file %s reloaded", sw.path)
}
