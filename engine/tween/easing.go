package tween

// EasingFunc maps linear progress k in [0, 1] onto eased progress. Every easing returns 0 at k = 0 and 1 at k = 1.
type EasingFunc func(k float32) float32

// Linear returns k unchanged.
func Linear(k float32) float32 {
	return k
}

// QuadraticIn accelerates from zero velocity.
func QuadraticIn(k float32) float32 {
	return k * k
}

// QuadraticOut decelerates to zero velocity.
func QuadraticOut(k float32) float32 {
	return k * (2 - k)
}

// QuadraticInOut accelerates until halfway, then decelerates. QuadraticInOut(0.5) is exactly 0.5.
func QuadraticInOut(k float32) float32 {
	k *= 2
	if k < 1 {
		return 0.5 * k * k
	}
	k--
	return -0.5 * (k*(k-2) - 1)
}

// CubicInOut is the cubic counterpart of QuadraticInOut.
func CubicInOut(k float32) float32 {
	k *= 2
	if k < 1 {
		return 0.5 * k * k * k
	}
	k -= 2
	return 0.5 * (k*k*k + 2)
}

// EasingByName resolves an easing from its configuration name. Unknown names resolve to QuadraticInOut.
//
// Parameters:
//   - name: one of "linear", "quadraticIn", "quadraticOut", "quadraticInOut", "cubicInOut"
//
// Returns:
//   - EasingFunc: the easing function
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return Linear
	case "quadraticIn":
		return QuadraticIn
	case "quadraticOut":
		return QuadraticOut
	case "cubicInOut":
		return CubicInOut
	default:
		return QuadraticInOut
	}
}
