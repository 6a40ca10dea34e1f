package biome

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemFn) *Commands {
	cmd.app.UseSystem(System(system))
	return cmd
}

// OnTeardown registers a release func that runs when the app is torn down.
// Registering on an already halted app releases immediately.
func (cmd *Commands) OnTeardown(release func()) *Commands {
	cmd.app.onTeardown(release)
	return cmd
}

// Halt tears the app down from inside a system.
func (cmd *Commands) Halt() {
	cmd.app.Teardown()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
