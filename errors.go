package biome

import "errors"

var (
	// ErrInvalidScene reports a scene definition that cannot be composed.
	ErrInvalidScene = errors.New("invalid scene")
	// ErrInvalidConfig reports a configuration value out of range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrRenderUnsupported means the host cannot provide a drawing surface.
	// The decorative layer is dropped; nothing else depends on it.
	ErrRenderUnsupported = errors.New("render surface unsupported")
)
