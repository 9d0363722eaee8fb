package orbit

// OrbitBuilderOption is a functional option for configuring an Orbit.
type OrbitBuilderOption func(*orbitImpl)

// WithStepAngle sets the approximate angular distance between waypoints.
// Non-positive values are ignored.
//
// Parameters:
//   - radians: step size in radians
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithStepAngle(radians float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		if radians > 0 {
			o.stepAngle = radians
		}
	}
}

// WithInnerFactor sets the radius factor of the first and last waypoint of a swing.
// Non-positive values are ignored.
//
// Parameters:
//   - factor: radius multiplier (0.9 keeps the points just inside the ring)
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithInnerFactor(factor float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		if factor > 0 {
			o.innerFactor = factor
		}
	}
}
