package biome

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: NewApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs modules in registration order, so a module may depend on
// resources installed by the modules before it.
func (b *AppBuilder) Build() *App {
	app := b.app
	commands := app.Commands()

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
