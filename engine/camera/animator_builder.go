package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/orbit"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/path"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/tween"
	"github.com/rs/zerolog"
)

type AnimatorBuilderOption func(*animatorImpl)

// WithOrbit anchors viewpoint moves to the given orbit.
//
// Parameters:
//   - o: the orbit
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the orbit
func WithOrbit(o orbit.Orbit) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.orbit = o
	}
}

// WithGrid sets the grid used by MoveToGridPosition and the offset from a cell centre to the camera.
//
// Parameters:
//   - grid: the cell resolver
//   - offset: camera position relative to the cell centre
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the grid
func WithGrid(grid GridResolver, offset common.Point3) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.grid = grid
		a.gridOffset = offset
	}
}

// WithDuration sets the duration of every move.
//
// Parameters:
//   - d: the move duration
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the duration
func WithDuration(d time.Duration) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.duration = d
	}
}

// WithEasing sets the easing applied to move progress. A nil easing is ignored.
//
// Parameters:
//   - easing: the easing function
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the easing
func WithEasing(easing tween.EasingFunc) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		if easing != nil {
			a.easing = easing
		}
	}
}

// WithPathOptions sets the options used when building viewpoint curves.
//
// Parameters:
//   - options: curve options such as path.WithCurveType
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the path options
func WithPathOptions(options ...path.CameraPathBuilderOption) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.pathOptions = options
	}
}

// WithPathObserver registers a callback that receives every curve a move starts on.
//
// Parameters:
//   - fn: the observer
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the observer
func WithPathObserver(fn func(path.CameraPath)) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.onPath = fn
	}
}

// WithLogger sets the animator's logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the logger
func WithLogger(logger zerolog.Logger) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.logger = logger
	}
}
