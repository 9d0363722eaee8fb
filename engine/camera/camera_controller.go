package camera

import "github.com/Carmen-Shannon/oxy-bookcase/common"

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, look target). Camera reads from controller
// and computes view/projection matrices. Embeds both orbitCameraController and
// planarCameraController, enabling orbit and planar controls to work simultaneously
// from a single controller instance.
//
// The scene is Z-up: azimuth is measured around the Z axis from +X towards +Y, and elevation
// is measured from the XY plane.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Point3: world-space camera position
	Position() common.Point3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Point3: world-space target position
	Target() common.Point3

	// SetTarget moves the look-at/pivot point, clamped to the pan bounds when they are set.
	// The camera stays in place; its orbit coordinates are re-derived around the new target.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target common.Point3)

	// SetPosition moves the camera, keeping the current target.
	// The orbit coordinates are re-derived from the new offset. No constraints are applied.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position common.Point3)

	// SetView places the camera and its target in one step without applying any constraint.
	// Used by scripted camera moves, which own the camera while they run.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space look-at point
	SetView(position, target common.Point3)

	// Zoom adjusts the camera's distance by modifying orbit radius, clamped to the distance bounds.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to the polar limits.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to the polar limits.
	OrbitDown()

	// Rotate applies a mouse drag. Deltas are in pixels and scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dx: horizontal drag, positive to the right
	//   - dy: vertical drag, positive downwards
	Rotate(dx, dy float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to the distance bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// DistanceBounds returns the minimum and maximum allowed orbit radius.
	//
	// Returns:
	//   - common.Range: the allowed distance range
	DistanceBounds() common.Range

	// SetDistanceBounds limits the orbit radius to [min, max] and clamps the current radius.
	// Inverted bounds are swapped.
	//
	// Parameters:
	//   - min: minimum zoom distance
	//   - max: maximum zoom distance
	SetDistanceBounds(min, max float32)

	// ClearDistanceBounds removes the distance limits.
	ClearDistanceBounds()

	// Azimuth returns the current horizontal angle around the Z axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly, clamped to the azimuth window, and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// AzimuthWindow returns the allowed azimuth range. An unrestricted window is (-Inf, +Inf).
	//
	// Returns:
	//   - common.Range: the allowed azimuth range in radians
	AzimuthWindow() common.Range

	// SetAzimuthWindow restricts the azimuth to [min, max] and clamps the current azimuth.
	//
	// Parameters:
	//   - min: lowest azimuth in radians
	//   - max: highest azimuth in radians
	SetAzimuthWindow(min, max float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to the polar limits.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// PolarBounds returns the allowed angle between the up axis and the camera offset.
	//
	// Returns:
	//   - common.Range: polar range in radians, [0, π] when unrestricted
	PolarBounds() common.Range

	// SetPolarBounds restricts the angle between the up axis and the camera offset and clamps
	// the current elevation. Values are clamped to [0, π].
	//
	// Parameters:
	//   - min: smallest polar angle in radians (0 looks straight down)
	//   - max: largest polar angle in radians (π looks straight up)
	SetPolarBounds(min, max float32)

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit call
	OrbitSpeed() float32

	// MouseSensitivity returns the mouse drag sensitivity multiplier.
	//
	// Returns:
	//   - float32: multiplier for mouse movement
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

// planarCameraController defines planar translation control methods.
// Panning shifts both position and target by the same offset, preserving the orbit relationship.
// When pan bounds are set the target never leaves them, and the camera only moves by the offset
// the target actually travelled.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	// Positive delta moves right, negative moves left. No-op while panning is disabled.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along its local up axis.
	// Positive delta moves up, negative moves down. No-op while panning is disabled.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	// Positive delta moves toward the target, negative moves away. No-op while panning is disabled.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32

	// PanEnabled reports whether the pan methods move the camera.
	//
	// Returns:
	//   - bool: true if panning is enabled
	PanEnabled() bool

	// SetPanEnabled enables or disables panning.
	//
	// Parameters:
	//   - enabled: the new state
	SetPanEnabled(enabled bool)

	// PanBounds returns the box the target is confined to.
	//
	// Returns:
	//   - common.Bounds: the bounds
	//   - bool: false if no bounds are set
	PanBounds() (common.Bounds, bool)

	// SetPanBounds confines the target to the given box and clamps the current target into it.
	//
	// Parameters:
	//   - bounds: the allowed target region
	SetPanBounds(bounds common.Bounds)

	// ClearPanBounds removes the target confinement.
	ClearPanBounds()
}
