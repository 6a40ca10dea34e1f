package biome

import (
	"fmt"
)

// SurfaceTag marks that a drawing surface has been attached to the App.
// Only one surface may draw a given App.
type SurfaceTag struct {
	Name string
}

// ClaimSurface records name as the App's drawing surface. Claiming again
// with the same name is a no-op; a different name is an error.
func ClaimSurface(app *App, name string) error {
	if app == nil {
		return fmt.Errorf("claim surface %q: app is nil", name)
	}
	if tag, ok := Resource[SurfaceTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple surfaces attached: %s and %s", tag.Name, name)
			return fmt.Errorf("multiple surfaces attached: %s and %s", tag.Name, name)
		}
		return nil
	}
	app.addResources(&SurfaceTag{Name: name})
	return nil
}
