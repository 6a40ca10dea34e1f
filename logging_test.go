package biome

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger_RoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWriterLogger("bg", false, &out, &errOut)

	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)
	logger.Warnf("careful")
	logger.Errorf("broken: %s", "x")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[bg] INFO: shown 2\n")
	assert.NotContains(t, out.String(), "WARN")
	assert.Contains(t, errOut.String(), "[bg] WARN: careful\n")
	assert.Contains(t, errOut.String(), "[bg] ERROR: broken: x\n")
}

func TestWriterLogger_DebugToggle(t *testing.T) {
	var out bytes.Buffer
	logger := NewWriterLogger("", false, &out, &out)
	assert.False(t, logger.DebugEnabled())

	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
	logger.Debugf("frame %d", 7)
	assert.Contains(t, out.String(), " DEBUG: frame 7\n")
	assert.NotContains(t, out.String(), "[")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())
	assert.False(t, NewApp().Logger().DebugEnabled())

	custom := NewWriterLogger("x", true, &bytes.Buffer{}, &bytes.Buffer{})
	installed := NewApp().UseModules(LoggingModule{Logger: custom})
	assert.Same(t, custom, installed.Logger())
}
