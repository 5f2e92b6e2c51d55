package animation

import (
	"fmt"
	"math"
	"time"
)

// CurveKind identifies which family a [Curve] belongs to.
type CurveKind int

const (
	// KindSimple is a named easing from the catalog.
	KindSimple CurveKind = iota
	// KindCubic is a two-control-point cubic Bézier.
	KindCubic
	// KindSpring is a damped spring.
	KindSpring
)

func (k CurveKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCubic:
		return "cubic"
	case KindSpring:
		return "spring"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// Curve is one of the three curve families behind a single evaluation
// contract. Curves are immutable values and cheap to copy. The zero value is
// Simple(Linear).
//
// Simple and cubic curves are pure functions of normalized progress and are
// safe for concurrent use. Spring curves are too; the mutable part of a spring
// animation lives in [AnimationState].
type Curve struct {
	kind   CurveKind
	easing Easing
	cubic  CubicCurve
	spring SpringCurve
}

// Simple wraps a catalog easing.
func Simple(e Easing) Curve {
	return Curve{kind: KindSimple, easing: e}
}

// Cubic wraps a validated cubic Bézier.
func Cubic(c CubicCurve) Curve {
	return Curve{kind: KindCubic, cubic: c}
}

// Spring wraps a validated spring.
func Spring(s SpringCurve) Curve {
	return Curve{kind: KindSpring, spring: s}
}

// Kind reports the curve family. Hosts evaluating curves should not need it;
// it exists for encoders.
func (c Curve) Kind() CurveKind { return c.kind }

// Easing returns the easing of a simple curve.
func (c Curve) Easing() (Easing, bool) {
	return c.easing, c.kind == KindSimple
}

// CubicCurve returns the Bézier of a cubic curve.
func (c Curve) CubicCurve() (CubicCurve, bool) {
	return c.cubic, c.kind == KindCubic
}

// SpringCurve returns the spring of a spring curve.
func (c Curve) SpringCurve() (SpringCurve, bool) {
	return c.spring, c.kind == KindSpring
}

// Duration returns the curve's total duration: total for simple and cubic
// curves, the estimated settling duration for springs.
func (c Curve) Duration(total time.Duration) time.Duration {
	if c.kind == KindSpring {
		return c.spring.Duration()
	}
	return total
}

func (c Curve) String() string {
	switch c.kind {
	case KindCubic:
		return c.cubic.String()
	case KindSpring:
		return c.spring.String()
	default:
		return c.easing.String()
	}
}

// Progress evaluates curve at elapsed.
//
// Simple and cubic curves normalize t = clamp(elapsed/total, 0, 1) and
// evaluate the easing or Bézier at t; a non-positive total jumps straight to
// the end. Springs ignore total and return the spring position at elapsed,
// which may overshoot 1.
func Progress(curve Curve, elapsed, total time.Duration) float64 {
	switch curve.kind {
	case KindSpring:
		pos, _ := curve.spring.Sample(elapsed)
		return pos
	case KindCubic:
		return curve.cubic.Transform(normalize(elapsed, total))
	default:
		return curve.easing.Transform(normalize(elapsed, total))
	}
}

// Settled reports whether an animation driven by curve is done at elapsed.
// Springs use [SpringCurve.IsSettled] with epsilon; other curves are done once
// elapsed reaches total.
func Settled(curve Curve, elapsed, total time.Duration, epsilon float64) bool {
	if curve.kind == KindSpring {
		return curve.spring.IsSettled(elapsed, epsilon)
	}
	return elapsed >= total
}

// velocityAt estimates d(progress)/dt in units per second. Springs use their
// closed-form velocity; other curves use a central difference.
func velocityAt(curve Curve, elapsed, total time.Duration) float64 {
	if curve.kind == KindSpring {
		_, vel := curve.spring.Sample(elapsed)
		return vel
	}
	if total <= 0 || elapsed >= total {
		return 0
	}
	const h = time.Millisecond
	lo, hi := elapsed-h, elapsed+h
	if lo < 0 {
		lo = 0
	}
	if hi > total {
		hi = total
	}
	if hi <= lo {
		return 0
	}
	return (Progress(curve, hi, total) - Progress(curve, lo, total)) / (hi - lo).Seconds()
}

func normalize(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(total)
	return math.Max(0, math.Min(1, t))
}
