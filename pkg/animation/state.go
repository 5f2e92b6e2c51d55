package animation

import (
	"fmt"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// State is the run state of an [AnimationState].
type State int

const (
	// Running animations advance with every Tick.
	Running State = iota
	// Paused animations hold their value; ticks push the start time forward
	// by the paused interval so the animation resumes where it stopped.
	Paused
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AnimationState drives one curve over time on behalf of a host loop.
//
// The host owns time: it calls Tick with the current instant once per frame
// and reads Progress. For simple and cubic curves the duration is fixed at
// construction. For springs it is the estimated settling duration and
// IsFinished follows the spring's settled check instead.
//
// An AnimationState is owned by exactly one animation and is not safe for
// concurrent mutation. Use one state per animated property.
type AnimationState struct {
	curve    Curve
	duration time.Duration
	state    State

	start    time.Time
	lastTick time.Time

	progress float64
	// Spring integration state, refreshed on every tick.
	position float64
	velocity float64
}

// NewAnimationState starts curve at the current clock time. duration is
// required (> 0) for simple and cubic curves and ignored for springs.
func NewAnimationState(curve Curve, duration time.Duration) (*AnimationState, error) {
	return NewAnimationStateAt(curve, duration, Now())
}

// NewAnimationStateAt is like NewAnimationState with an explicit start time.
func NewAnimationStateAt(curve Curve, duration time.Duration, start time.Time) (*AnimationState, error) {
	if curve.kind == KindSpring {
		duration = curve.spring.Duration()
	} else if duration <= 0 {
		return nil, &motionerrors.CurveError{
			Op:     "animation.NewAnimationState",
			Kind:   motionerrors.KindInvalidDuration,
			Field:  "duration",
			Reason: fmt.Sprintf("must be > 0 for %s curves", curve.kind),
			Value:  duration,
		}
	}
	s := &AnimationState{
		curve:    curve,
		duration: duration,
		start:    start,
		lastTick: start,
	}
	s.sample()
	return s, nil
}

// Tick advances the animation to now and returns the new progress.
//
// now is expected to come from a monotonic clock. While paused, Tick shifts
// the start time by the interval since the previous tick and leaves the
// progress untouched.
func (s *AnimationState) Tick(now time.Time) float64 {
	if s.state == Paused {
		s.start = s.start.Add(now.Sub(s.lastTick))
		s.lastTick = now
		return s.progress
	}
	s.lastTick = now
	s.sample()
	return s.progress
}

func (s *AnimationState) sample() {
	elapsed := s.Elapsed()
	if s.curve.kind == KindSpring {
		s.position, s.velocity = s.curve.spring.Sample(elapsed)
		s.progress = s.position
		return
	}
	s.progress = Progress(s.curve, elapsed, s.duration)
	s.position = s.progress
	s.velocity = velocityAt(s.curve, elapsed, s.duration)
}

// Progress returns the value computed by the last Tick.
func (s *AnimationState) Progress() float64 { return s.progress }

// Velocity returns the progress velocity per second at the last Tick. It is
// exact for springs and a finite-difference estimate for other curves.
func (s *AnimationState) Velocity() float64 { return s.velocity }

// Elapsed returns the running time between the start and the last Tick.
func (s *AnimationState) Elapsed() time.Duration { return s.lastTick.Sub(s.start) }

// TimeProgress returns elapsed time as a fraction of the duration, in [0, 1].
func (s *AnimationState) TimeProgress() float64 {
	return normalize(s.Elapsed(), s.duration)
}

// IsFinished reports whether the host can drop the animation.
func (s *AnimationState) IsFinished() bool {
	return Settled(s.curve, s.Elapsed(), s.duration, 0)
}

// Curve returns the curve being driven.
func (s *AnimationState) Curve() Curve { return s.curve }

// Duration returns the fixed duration, or the settling estimate for springs.
func (s *AnimationState) Duration() time.Duration { return s.duration }

// State returns whether the animation is running or paused.
func (s *AnimationState) State() State { return s.state }

// SetState sets the run state.
func (s *AnimationState) SetState(state State) { s.state = state }

// Pause holds the animation at its current value.
func (s *AnimationState) Pause() { s.state = Paused }

// Resume continues a paused animation.
func (s *AnimationState) Resume() { s.state = Running }

// Restart restarts the animation at the current clock time.
func (s *AnimationState) Restart() { s.RestartAt(Now()) }

// RestartAt restarts the animation at t.
func (s *AnimationState) RestartAt(t time.Time) {
	s.start = t
	s.lastTick = t
	s.sample()
}

// Interrupt redirects an animation that maps progress onto the value range
// from..to so that it heads to newTo instead, starting at now.
//
// The returned state animates from the current value (from + progress·(to-from)
// at now) to newTo. Springs carry their current velocity over into the new
// spring, so the motion has no velocity discontinuity. Other curves restart
// with the same curve and duration.
func (s *AnimationState) Interrupt(now time.Time, from, to, newTo float64) (*AnimationState, error) {
	s.Tick(now)
	if s.curve.kind != KindSpring {
		return NewAnimationStateAt(s.curve, s.duration, now)
	}
	span := to - from
	value := from + s.position*span
	next, err := s.curve.spring.Retarget(value, s.velocity*span, newTo)
	if err != nil {
		return nil, err
	}
	return NewAnimationStateAt(Spring(next), 0, now)
}
