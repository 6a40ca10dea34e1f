package biome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	commands.AddResources(NewMockResource1("from module"))
}

type MockModule2 struct {
	installed bool
	sawFirst  bool
}

func (m *MockModule2) Install(app *App, commands *Commands) {
	m.installed = true
	_, m.sawFirst = Resource[MockResource1](app)
}

func TestAppBuilder_Empty(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Equal(t, defaultStages, app.stages)
	assert.False(t, app.Halted())
	assert.True(t, app.Tick())
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	assert.Len(t, builder.modules, 1)
	assert.False(t, mockModule.installed, "modules install on Build")
}

func TestAppBuilder_BuildInstallsInOrder(t *testing.T) {
	first := &MockModule{}
	second := &MockModule2{}
	NewAppBuilder().UseModule(first, second).Build()

	assert.True(t, first.installed)
	assert.True(t, second.installed)
	assert.True(t, second.sawFirst)
}
