package biome

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// App drives one scene mount. The render surface calls Tick once per
// display refresh; nothing runs between ticks.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	releases []func()
	halted   bool
	frames   uint64
}

type Module interface {
	Install(app *App, cmd *Commands)
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// Tick runs every stage once. It reports false once the app has been torn
// down; a halted app never calls a system again.
func (app *App) Tick() bool {
	if app.halted {
		return false
	}
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
			if app.halted {
				return false
			}
		}
	}
	app.frames++
	return true
}

// Frames returns the number of completed ticks.
func (app *App) Frames() uint64 {
	return app.frames
}

func (app *App) Halted() bool {
	return app.halted
}

// Teardown releases scoped subscriptions in reverse acquisition order and
// halts the frame loop. Safe to call more than once.
func (app *App) Teardown() {
	if app.halted {
		return
	}
	app.halted = true
	for i := len(app.releases) - 1; i >= 0; i-- {
		app.releases[i]()
	}
	app.releases = nil
	app.Logger().Debugf("app torn down after %d frames", app.frames)
}

func (app *App) onTeardown(release func()) {
	if app.halted {
		release()
		return
	}
	app.releases = append(app.releases, release)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its element type.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("system %s: argument %d must be a pointer, got %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(), i, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
