package tween

import "time"

// Status is the lifecycle state of a Tween.
type Status int

const (
	// StatusRunning means the tween still has time left and will report progress on the next Advance.
	StatusRunning Status = iota
	// StatusCompleted means the tween reached the end of its duration and fired its completion callback.
	StatusCompleted
	// StatusStopped means the tween was stopped before completing. No further callbacks fire.
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusStopped:
		return "stopped"
	}
	return "unknown"
}

type tweenImpl struct {
	duration time.Duration
	elapsed  time.Duration
	easing   EasingFunc
	progress float32
	status   Status

	onUpdate   func(u float32)
	onComplete func()
}

// Tween interpolates a scalar from 0 to 1 over a fixed duration under an easing curve.
// Time only moves when Advance is called, so the owner decides the clock: the frame loop passes the
// frame delta and tests pass whatever durations they need.
type Tween interface {
	// Advance moves the tween forward by dt, reports the eased progress to the update callback and
	// fires the completion callback once the duration has elapsed. Calling Advance on a tween that
	// is no longer running does nothing.
	//
	// Parameters:
	//   - dt: time elapsed since the previous Advance
	//
	// Returns:
	//   - Status: the status after advancing
	Advance(dt time.Duration) Status

	// Status returns the current lifecycle state.
	//
	// Returns:
	//   - Status: the status
	Status() Status

	// Progress returns the most recent eased progress in [0, 1].
	//
	// Returns:
	//   - float32: the eased progress
	Progress() float32

	// Elapsed returns the time accumulated by Advance, capped at the duration.
	//
	// Returns:
	//   - time.Duration: the elapsed time
	Elapsed() time.Duration

	// Duration returns the total duration of the tween.
	//
	// Returns:
	//   - time.Duration: the duration
	Duration() time.Duration

	// Stop halts a running tween. Neither callback fires afterwards.
	Stop()
}

var _ Tween = &tweenImpl{}

// NewTween creates a running tween. Durations of zero or less complete on the first Advance.
//
// Parameters:
//   - duration: total time from progress 0 to progress 1
//   - options: functional options to configure the tween
//
// Returns:
//   - Tween: the newly created tween
func NewTween(duration time.Duration, options ...TweenBuilderOption) Tween {
	t := &tweenImpl{
		duration: duration,
		easing:   Linear,
		status:   StatusRunning,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *tweenImpl) Advance(dt time.Duration) Status {
	if t.status != StatusRunning {
		return t.status
	}
	if dt > 0 {
		t.elapsed += dt
	}

	k := float32(1)
	if t.duration > 0 && t.elapsed < t.duration {
		k = float32(float64(t.elapsed) / float64(t.duration))
	}
	if k >= 1 {
		t.elapsed = max(t.duration, 0)
	}

	t.progress = t.easing(k)
	if k >= 1 {
		t.progress = 1
	}
	if t.onUpdate != nil {
		t.onUpdate(t.progress)
	}

	if k >= 1 {
		t.status = StatusCompleted
		if t.onComplete != nil {
			t.onComplete()
		}
	}
	return t.status
}

func (t *tweenImpl) Status() Status {
	return t.status
}

func (t *tweenImpl) Progress() float32 {
	return t.progress
}

func (t *tweenImpl) Elapsed() time.Duration {
	return t.elapsed
}

func (t *tweenImpl) Duration() time.Duration {
	return t.duration
}

func (t *tweenImpl) Stop() {
	if t.status == StatusRunning {
		t.status = StatusStopped
	}
}
