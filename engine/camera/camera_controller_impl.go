package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
)

// elevationEpsilon keeps the offset off the up axis, where LookAt has no defined right vector.
const elevationEpsilon = 1e-3

// cameraControllerImpl is the single implementation of CameraController.
// Supports both orbit and planar controls simultaneously. Orbit methods modify
// spherical coordinates and recompute position; planar methods translate both
// position and target along local camera axes, preserving the orbit relationship.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position common.Point3
	target   common.Point3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // around Z, from +X towards +Y
	elevation float32 // from the XY plane

	// set when WithPosition was given, so construction derives the spherical coordinates from it
	positionSet bool

	// Constraints
	distance      common.Range
	polar         common.Range
	azimuthWindow common.Range
	panBounds     *common.Bounds
	panEnabled    bool

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller.
// Unless WithPosition is given, the position is derived from the target and the spherical coordinates.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		target: common.P3(0, 0, 1000),

		radius:    2500,
		azimuth:   0,
		elevation: math32.Pi / 6,

		distance:      unbounded(),
		polar:         common.Range{Min: 0, Max: math32.Pi},
		azimuthWindow: unbounded(),
		panEnabled:    true,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        100,
		panSpeed:         10,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.panBounds != nil {
		cc.target = cc.panBounds.Clamp(cc.target)
	}
	if !cc.positionSet {
		cc.applyOrbitConstraints()
		cc.updatePosition()
		return cc
	}

	cc.syncSpherical()
	radius, azimuth, elevation := cc.radius, cc.azimuth, cc.elevation
	cc.applyOrbitConstraints()
	if radius != cc.radius || azimuth != cc.azimuth || elevation != cc.elevation {
		cc.updatePosition()
	}
	return cc
}

func unbounded() common.Range {
	return common.Range{Min: math32.Inf(-1), Max: math32.Inf(1)}
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	cc.position = cc.target.Add(common.Point3{
		X: cc.radius * cosElev * math32.Cos(cc.azimuth),
		Y: cc.radius * cosElev * math32.Sin(cc.azimuth),
		Z: cc.radius * math32.Sin(cc.elevation),
	})
}

// syncSpherical re-derives radius, azimuth and elevation from position and target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) syncSpherical() {
	offset := cc.position.Sub(cc.target)
	cc.radius = offset.Length()
	if cc.radius == 0 {
		return
	}
	cc.azimuth = math32.Atan2(offset.Y, offset.X)
	cc.elevation = math32.Atan2(offset.Z, offset.HorizontalDistance())
}

// applyOrbitConstraints clamps radius, elevation and azimuth to their limits.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) applyOrbitConstraints() {
	cc.radius = cc.distance.Clamp(cc.radius)
	if cc.radius < 0 {
		cc.radius = 0
	}
	cc.elevation = cc.clampElevation(cc.elevation)
	cc.azimuth = cc.clampAzimuth(cc.azimuth)
}

// clampElevation converts the polar limits into elevation limits and clamps e to them.
func (cc *cameraControllerImpl) clampElevation(e float32) float32 {
	lo := math32.Max(math32.Pi/2-cc.polar.Max, -math32.Pi/2+elevationEpsilon)
	hi := math32.Min(math32.Pi/2-cc.polar.Min, math32.Pi/2-elevationEpsilon)
	return common.Clamp(e, lo, hi)
}

// clampAzimuth keeps a inside the azimuth window, trying the equivalent angles a±2π first.
// Angles that cannot be placed in the window snap to the angularly nearer bound.
func (cc *cameraControllerImpl) clampAzimuth(a float32) float32 {
	w := cc.azimuthWindow
	if math32.IsInf(w.Min, -1) && math32.IsInf(w.Max, 1) {
		return a
	}
	for _, c := range [3]float32{a, a + 2*math32.Pi, a - 2*math32.Pi} {
		if w.Contains(c) {
			return c
		}
	}
	if angularDistance(a, w.Min) <= angularDistance(a, w.Max) {
		return w.Min
	}
	return w.Max
}

func angularDistance(a, b float32) float32 {
	d := math32.Mod(math32.Abs(a-b), 2*math32.Pi)
	if d > math32.Pi {
		d = 2*math32.Pi - d
	}
	return d
}

// localAxes computes the camera's local coordinate axes consistent with the LookAt matrix for a Z-up world.
// If position and target coincide, all returned vectors are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward common.Point3) {
	backward := cc.position.Sub(cc.target)
	bLen := backward.Length()
	if bLen < 1e-8 {
		return
	}
	backward = backward.Scale(1 / bLen)

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 0, 1)
	right = common.Point3{X: -backward.Y, Y: backward.X}
	rLen := right.Length()
	if rLen < 1e-8 {
		return common.Point3{}, common.Point3{}, common.Point3{}
	}
	right = right.Scale(1 / rLen)

	up = common.Cross(backward, right)
	forward = backward.Scale(-1)
	return
}

// pan moves the target by offset, clamped to the pan bounds, and moves the camera by the same
// displacement the target actually made.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) pan(offset common.Point3) {
	if !cc.panEnabled {
		return
	}
	next := cc.target.Add(offset)
	if cc.panBounds != nil {
		next = cc.panBounds.Clamp(next)
	}
	moved := next.Sub(cc.target)
	cc.target = next
	cc.position = cc.position.Add(moved)
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() common.Point3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(position common.Point3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
	cc.syncSpherical()
}

func (cc *cameraControllerImpl) Target() common.Point3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target common.Point3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.panBounds != nil {
		target = cc.panBounds.Clamp(target)
	}
	cc.target = target
	cc.syncSpherical()
}

func (cc *cameraControllerImpl) SetView(position, target common.Point3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
	cc.target = target
	cc.syncSpherical()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.applyOrbitConstraints()
	cc.updatePosition()
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = cc.clampAzimuth(cc.azimuth - cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = cc.clampAzimuth(cc.azimuth + cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = cc.clampElevation(cc.elevation + cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = cc.clampElevation(cc.elevation - cc.orbitSpeed)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = cc.clampAzimuth(cc.azimuth - dx*cc.mouseSensitivity)
	cc.elevation = cc.clampElevation(cc.elevation + dy*cc.mouseSensitivity)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.applyOrbitConstraints()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) DistanceBounds() common.Range {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.distance
}

func (cc *cameraControllerImpl) SetDistanceBounds(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if min > max {
		min, max = max, min
	}
	cc.distance = common.Range{Min: min, Max: max}
	cc.applyOrbitConstraints()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) ClearDistanceBounds() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.distance = unbounded()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = cc.clampAzimuth(azimuth)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) AzimuthWindow() common.Range {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuthWindow
}

func (cc *cameraControllerImpl) SetAzimuthWindow(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if min > max {
		min, max = max, min
	}
	cc.azimuthWindow = common.Range{Min: min, Max: max}
	cc.azimuth = cc.clampAzimuth(cc.azimuth)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = cc.clampElevation(elevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) PolarBounds() common.Range {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.polar
}

func (cc *cameraControllerImpl) SetPolarBounds(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	min = common.Clamp(min, 0, math32.Pi)
	max = common.Clamp(max, 0, math32.Pi)
	if min > max {
		min, max = max, min
	}
	cc.polar = common.Range{Min: min, Max: max}
	cc.elevation = cc.clampElevation(cc.elevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.pan(right.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.pan(up.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.pan(forward.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) PanEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panEnabled
}

func (cc *cameraControllerImpl) SetPanEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panEnabled = enabled
}

func (cc *cameraControllerImpl) PanBounds() (common.Bounds, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.panBounds == nil {
		return common.Bounds{}, false
	}
	return *cc.panBounds, true
}

func (cc *cameraControllerImpl) SetPanBounds(bounds common.Bounds) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panBounds = &bounds
	clamped := bounds.Clamp(cc.target)
	cc.position = cc.position.Add(clamped.Sub(cc.target))
	cc.target = clamped
}

func (cc *cameraControllerImpl) ClearPanBounds() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panBounds = nil
}
