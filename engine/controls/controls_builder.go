package controls

import (
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/viewpoint"
)

// ControlsBuilderOption configures Controls.
type ControlsBuilderOption func(*controlsImpl)

// WithAnimatorOptions passes extra options to the camera animator, after the ones Controls sets itself.
func WithAnimatorOptions(options ...camera.AnimatorBuilderOption) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.animatorOptions = append(c.animatorOptions, options...)
	}
}

// WithStoreOptions passes extra options to the viewpoint store, after the ones Controls sets itself.
func WithStoreOptions(options ...viewpoint.StoreBuilderOption) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.storeOptions = append(c.storeOptions, options...)
	}
}

// WithSeedViewpoints decides whether the default viewpoints are loaded when storage holds none.
func WithSeedViewpoints(seed bool) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.seedViewpoints = seed
	}
}

// WithAxesLength sets the length of the axes helper.
func WithAxesLength(length float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if length > 0 {
			c.axesLength = length
		}
	}
}

// WithOrbitHelper sets the height and centre elevation of the orbit ring helper.
func WithOrbitHelper(height, centerZ float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if height > 0 {
			c.orbitHeight = height
		}
		c.orbitCenterZ = centerZ
	}
}
