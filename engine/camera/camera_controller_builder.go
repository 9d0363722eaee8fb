package camera

import "github.com/Carmen-Shannon/oxy-bookcase/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition places the camera directly. The orbit coordinates are derived from the offset to the target,
// so WithRadius, WithAzimuth and WithElevation have no effect when this option is given.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(position common.Point3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = position
		cc.positionSet = true
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - target: world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(target common.Point3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Z axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +X axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithDistanceBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if min > max {
			min, max = max, min
		}
		cc.distance = common.Range{Min: min, Max: max}
	}
}

// WithPolarBounds sets the allowed angle between the up axis and the camera offset.
//
// Parameters:
//   - min: smallest polar angle in radians
//   - max: largest polar angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set polar bounds
func WithPolarBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.polar = common.Range{Min: min, Max: max}
	}
}

// WithPanBounds confines the target to a box.
//
// Parameters:
//   - bounds: the allowed target region
//
// Returns:
//   - CameraControllerOption: functional option to set pan bounds
func WithPanBounds(bounds common.Bounds) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panBounds = &bounds
	}
}

// WithPanEnabled enables or disables panning.
//
// Parameters:
//   - enabled: the initial pan state
//
// Returns:
//   - CameraControllerOption: functional option to set the pan state
func WithPanEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panEnabled = enabled
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - CameraControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse drag sensitivity.
//
// Parameters:
//   - sensitivity: multiplier for mouse movement
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the planar pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
