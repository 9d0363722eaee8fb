package tween

type TweenBuilderOption func(*tweenImpl)

// WithEasing sets the easing curve applied to linear time progress. A nil easing is ignored.
//
// Parameters:
//   - easing: the easing function
//
// Returns:
//   - TweenBuilderOption: a function that sets the easing
func WithEasing(easing EasingFunc) TweenBuilderOption {
	return func(t *tweenImpl) {
		if easing != nil {
			t.easing = easing
		}
	}
}

// WithOnUpdate sets the callback invoked with the eased progress on every Advance.
//
// Parameters:
//   - fn: the update callback
//
// Returns:
//   - TweenBuilderOption: a function that sets the update callback
func WithOnUpdate(fn func(u float32)) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onUpdate = fn
	}
}

// WithOnComplete sets the callback invoked once when the tween completes.
//
// Parameters:
//   - fn: the completion callback
//
// Returns:
//   - TweenBuilderOption: a function that sets the completion callback
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onComplete = fn
	}
}
