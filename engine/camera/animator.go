package camera

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/orbit"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/path"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/tween"
	"github.com/rs/zerolog"
)

// DefaultMoveDuration is the time a scripted camera move takes from start to finish.
const DefaultMoveDuration = 2000 * time.Millisecond

var (
	// ErrInvalidDestination is returned when a move targets a non-finite position or look target.
	ErrInvalidDestination = errors.New("camera destination is not finite")
	// ErrNoGrid is returned by MoveToGridPosition when the animator has no grid resolver.
	ErrNoGrid = errors.New("camera animator has no grid")
)

// State is the lifecycle state of an Animator.
type State int

const (
	// StateIdle means no move is in flight and user input owns the camera.
	StateIdle State = iota
	// StateAnimating means a scripted move is driving the camera.
	StateAnimating
)

func (s State) String() string {
	if s == StateAnimating {
		return "animating"
	}
	return "idle"
}

// GridResolver maps a (column, row) cell to the world-space point the camera should look at.
type GridResolver interface {
	// Slot returns the centre of the cell.
	//
	// Parameters:
	//   - col: zero-based column
	//   - row: zero-based row
	//
	// Returns:
	//   - common.Point3: the cell centre
	//   - error: an error if the cell does not exist
	Slot(col, row int) (common.Point3, error)
}

type animatorImpl struct {
	controller CameraController
	orbit      orbit.Orbit
	grid       GridResolver
	gridOffset common.Point3

	duration    time.Duration
	easing      tween.EasingFunc
	pathOptions []path.CameraPathBuilderOption
	onPath      func(path.CameraPath)
	logger      zerolog.Logger

	active tween.Tween
	path   path.CameraPath
}

// Animator drives scripted camera moves along smooth curves.
//
// Only one move is in flight at a time: starting a move stops the previous one, whose callbacks
// never fire again. Time advances only through Advance, which the frame loop calls once per frame.
// An Animator is not safe for concurrent use.
type Animator interface {
	// MoveOnCurve animates the camera along curve over the move duration. Each step places the camera
	// at curve.PointAt(u) and looks at the point u of the way from the controller's current target to
	// lookTarget, where u is the eased progress. On completion the target is set to lookTarget exactly
	// and onComplete, if not nil, is called once.
	//
	// Parameters:
	//   - curve: the path to follow
	//   - lookTarget: the final look target
	//   - onComplete: optional continuation run when the move finishes
	MoveOnCurve(curve path.CameraPath, lookTarget common.Point3, onComplete func())

	// MoveToViewpoint builds a path from the current camera position through the orbit waypoints
	// to position and follows it, ending up looking at target.
	//
	// Parameters:
	//   - position: destination camera position
	//   - target: destination look target
	//
	// Returns:
	//   - error: ErrInvalidDestination if either point is not finite
	MoveToViewpoint(position, target common.Point3) error

	// MoveToGridPosition moves to the grid cell (col, row): the camera ends at the cell centre plus the
	// grid offset, looking at the cell centre.
	//
	// Parameters:
	//   - col: zero-based column
	//   - row: zero-based row
	//
	// Returns:
	//   - error: ErrNoGrid without a resolver, or the resolver's error for unknown cells
	MoveToGridPosition(col, row int) error

	// Advance moves the active animation forward by dt.
	//
	// Parameters:
	//   - dt: time elapsed since the previous frame
	//
	// Returns:
	//   - tween.Status: StatusRunning while a move is in flight, StatusCompleted otherwise
	Advance(dt time.Duration) tween.Status

	// Cancel stops the move in flight, leaving the camera where it is. The completion callback does not run.
	Cancel()

	// State returns whether a move is in flight.
	//
	// Returns:
	//   - State: StateAnimating or StateIdle
	State() State

	// Progress returns the eased progress of the move in flight, or 0 when idle.
	//
	// Returns:
	//   - float32: progress in [0, 1]
	Progress() float32

	// Path returns the curve of the most recent move, or nil if none was started.
	//
	// Returns:
	//   - path.CameraPath: the last curve
	Path() path.CameraPath
}

var _ Animator = &animatorImpl{}

// NewAnimator creates an Animator driving the given controller.
// Without WithOrbit every move is a direct curve from the camera to the destination.
//
// Parameters:
//   - ctrl: the controller that owns the camera position and target
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the newly created animator
func NewAnimator(ctrl CameraController, options ...AnimatorBuilderOption) Animator {
	if ctrl == nil {
		panic("camera: NewAnimator requires a controller")
	}
	a := &animatorImpl{
		controller: ctrl,
		duration:   DefaultMoveDuration,
		easing:     tween.QuadraticInOut,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animatorImpl) MoveOnCurve(curve path.CameraPath, lookTarget common.Point3, onComplete func()) {
	if a.active != nil {
		a.active.Stop()
		a.logger.Debug().Msg("camera move replaced")
	}

	startTarget := a.controller.Target()
	a.path = curve
	if a.onPath != nil {
		a.onPath(curve)
	}

	var t tween.Tween
	t = tween.NewTween(a.duration,
		tween.WithEasing(a.easing),
		tween.WithOnUpdate(func(u float32) {
			a.controller.SetView(curve.PointAt(u), startTarget.Lerp(lookTarget, u))
		}),
		tween.WithOnComplete(func() {
			a.controller.SetView(curve.PointAt(1), lookTarget)
			if a.active == t {
				a.active = nil
			}
			if onComplete != nil {
				onComplete()
			}
		}),
	)
	a.active = t
}

func (a *animatorImpl) MoveToViewpoint(position, target common.Point3) error {
	if !position.IsFinite() || !target.IsFinite() {
		return ErrInvalidDestination
	}

	start := a.controller.Position()
	points := []common.Point3{start}
	if a.orbit != nil {
		for _, p := range a.orbit.WaypointsBetween(start, position) {
			if p.IsFinite() {
				points = append(points, p)
			}
		}
	}
	points = append(points, position)

	curve, err := path.NewCameraPath(points, a.pathOptions...)
	if err != nil {
		return fmt.Errorf("build camera path: %w", err)
	}
	a.logger.Debug().
		Stringer("from", start).
		Stringer("to", position).
		Int("waypoints", len(points)-2).
		Msg("camera move")

	a.MoveOnCurve(curve, target, nil)
	return nil
}

func (a *animatorImpl) MoveToGridPosition(col, row int) error {
	if a.grid == nil {
		return ErrNoGrid
	}
	slot, err := a.grid.Slot(col, row)
	if err != nil {
		return fmt.Errorf("grid position (%d, %d): %w", col, row, err)
	}
	return a.MoveToViewpoint(slot.Add(a.gridOffset), slot)
}

func (a *animatorImpl) Advance(dt time.Duration) tween.Status {
	if a.active == nil {
		return tween.StatusCompleted
	}
	a.active.Advance(dt)
	if a.active != nil {
		return tween.StatusRunning
	}
	return tween.StatusCompleted
}

func (a *animatorImpl) Cancel() {
	if a.active == nil {
		return
	}
	a.active.Stop()
	a.active = nil
}

func (a *animatorImpl) State() State {
	if a.active != nil {
		return StateAnimating
	}
	return StateIdle
}

func (a *animatorImpl) Progress() float32 {
	if a.active == nil {
		return 0
	}
	return a.active.Progress()
}

func (a *animatorImpl) Path() path.CameraPath {
	return a.path
}
