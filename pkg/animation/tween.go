package animation

import "time"

// Tween interpolates between Begin and End values based on animation progress.
//
// Tween maps progress from an [AnimationState] to any value range or type.
// Use the helper constructors ([TweenFloat64], [TweenPoint], [TweenFloat64s])
// for common types, or create custom tweens with a Lerp function.
//
// Progress may leave [0, 1] for overshooting curves; Lerp functions should
// extrapolate rather than clamp.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End. Receives the begin value,
	// end value, and progress t. Returns the interpolated value.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value using the state's current progress.
func (tw *Tween[T]) Transform(state *AnimationState) T {
	return tw.Evaluate(state.Progress())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint linearly interpolates between two points.
func LerpPoint(a, b Point, t float64) Point {
	return Point{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpFloat64s interpolates two vectors element-wise. The result has the
// length of the shorter input.
func LerpFloat64s(a, b []float64, t float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range n {
		out[i] = LerpFloat64(a[i], b[i], t)
	}
	return out
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenPoint creates a tween for Point values.
func TweenPoint(begin, end Point) *Tween[Point] {
	return &Tween[Point]{Begin: begin, End: end, Lerp: LerpPoint}
}

// TweenFloat64s creates a tween for float64 vectors.
func TweenFloat64s(begin, end []float64) *Tween[[]float64] {
	return &Tween[[]float64]{Begin: begin, End: end, Lerp: LerpFloat64s}
}

// Animation pairs an [AnimationState] with a tween so a host gets typed values
// straight from Tick.
type Animation[T any] struct {
	tween *Tween[T]
	state *AnimationState
	value T
}

// NewAnimation starts an animation from start to end at the current clock time.
func NewAnimation[T any](tween *Tween[T], curve Curve, duration time.Duration) (*Animation[T], error) {
	return NewAnimationAt(tween, curve, duration, Now())
}

// NewAnimationAt is like NewAnimation with an explicit start time.
func NewAnimationAt[T any](tween *Tween[T], curve Curve, duration time.Duration, start time.Time) (*Animation[T], error) {
	state, err := NewAnimationStateAt(curve, duration, start)
	if err != nil {
		return nil, err
	}
	a := &Animation[T]{tween: tween, state: state}
	a.value = tween.Transform(state)
	return a, nil
}

// Tick advances the animation and returns the new value.
func (a *Animation[T]) Tick(now time.Time) T {
	a.state.Tick(now)
	if a.state.State() == Running {
		a.value = a.tween.Transform(a.state)
	}
	return a.value
}

// Value returns the value computed by the last Tick.
func (a *Animation[T]) Value() T { return a.value }

// Tween returns the tween mapping progress to values.
func (a *Animation[T]) Tween() *Tween[T] { return a.tween }

// State returns the underlying animation state.
func (a *Animation[T]) State() *AnimationState { return a.state }

// IsFinished reports whether the underlying state is finished.
func (a *Animation[T]) IsFinished() bool { return a.state.IsFinished() }

// RetargetFloat64 interrupts a running float64 animation at now and returns a
// new animation from its current value to end. Spring animations keep their
// velocity across the interruption.
func RetargetFloat64(a *Animation[float64], now time.Time, end float64) (*Animation[float64], error) {
	state, err := a.state.Interrupt(now, a.tween.Begin, a.tween.End, end)
	if err != nil {
		return nil, err
	}
	begin := LerpFloat64(a.tween.Begin, a.tween.End, a.state.Progress())
	next := &Animation[float64]{tween: TweenFloat64(begin, end), state: state}
	next.value = next.tween.Transform(state)
	return next, nil
}
