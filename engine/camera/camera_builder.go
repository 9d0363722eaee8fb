package camera

import "github.com/Carmen-Shannon/oxy-bookcase/common"

type CameraBuilderOption func(*cameraImpl)

// WithUp sets the world up axis the view matrix is built around. The viewer uses Z up.
func WithUp(up common.Point3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFovDegrees sets the vertical field of view. Values outside (0, 180) are ignored.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFovDegrees(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if degrees > 0 && degrees < 180 {
			c.fov = degrees * common.DegToRad
		}
	}
}

// WithAspect sets the initial width / height ratio. The window resize callback keeps it current afterwards.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipRange sets the near and far clip distances together.
// A range that does not satisfy 0 < near < far leaves the defaults in place.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets both clip planes
func WithClipRange(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithFog blends lines towards color between start and end distance from the eye,
// so geometry near the far plane fades into the background instead of being cut off.
// An end that is not beyond start disables the fade.
//
// Parameters:
//   - start: distance where the fade begins
//   - end: distance where lines reach the fog color
//   - color: fog color, normally the clear color
//
// Returns:
//   - CameraBuilderOption: a function that sets the fog range
func WithFog(start, end float32, color common.Color) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fog = fog{start: start, end: end, color: [3]float32{color[0], color[1], color[2]}}
	}
}

// WithController attaches the controller whose position and target drive the view matrix.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
