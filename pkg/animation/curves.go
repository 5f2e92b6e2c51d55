package animation

import (
	"fmt"
	"math"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// Point is a 2D coordinate, used for Bézier control points and vector tweens.
type Point struct {
	X, Y float64
}

// SolverOptions tunes the root finder that inverts x(u) for a [CubicCurve].
//
// Newton-Raphson runs for at most Iterations steps and accepts u once a
// step moves it by less than Tolerance. When Newton stalls on a flat tangent,
// leaves [0, 1] or runs out of iterations, bisection narrows the u bracket
// to 1e-12. Zero fields use [DefaultSolverOptions].
//
// Convergence is judged in u, not in x: near a vertical tangent of y(x) a
// tiny x residual still hides a large y error.
type SolverOptions struct {
	Iterations int
	Tolerance  float64
}

// DefaultSolverOptions matches the budget browsers use for CSS cubic-bezier().
var DefaultSolverOptions = SolverOptions{Iterations: 8, Tolerance: 1e-7}

const (
	// Below this |x'(u)| a Newton step is meaningless.
	flatTangent = 1e-7
	// 2^-64 is below float64 resolution on [0, 1].
	maxBisections = 64
	// Bisection stops once the u bracket is this narrow.
	bracketWidth = 1e-12
)

func (o SolverOptions) normalized() SolverOptions {
	if o.Iterations <= 0 {
		o.Iterations = DefaultSolverOptions.Iterations
	}
	if !(o.Tolerance > 0) {
		o.Tolerance = DefaultSolverOptions.Tolerance
	}
	return o
}

// CubicCurve is a cubic Bézier easing with implicit endpoints (0,0) and (1,1).
//
// The x coordinates of both control points lie in [0, 1], which keeps x(u)
// monotonic and therefore invertible. The y coordinates are free, so curves
// may overshoot. Build one with [NewCubicCurve]; the zero value is a valid
// curve with both control points at the origin.
type CubicCurve struct {
	p1, p2 Point
	solver SolverOptions
}

// NewCubicCurve validates the control points and returns the curve.
// Non-finite coordinates and x values outside [0, 1] are rejected.
func NewCubicCurve(p1, p2 Point) (CubicCurve, error) {
	const op = "animation.NewCubicCurve"
	if err := checkControlPoint(op, "p1", p1, false); err != nil {
		return CubicCurve{}, err
	}
	if err := checkControlPoint(op, "p2", p2, false); err != nil {
		return CubicCurve{}, err
	}
	return CubicCurve{p1: p1, p2: p2}, nil
}

// NewCubicCurveClamped is like [NewCubicCurve] but clamps x coordinates into
// [0, 1] instead of rejecting them. Non-finite coordinates are still errors.
func NewCubicCurveClamped(p1, p2 Point) (CubicCurve, error) {
	const op = "animation.NewCubicCurveClamped"
	if err := checkControlPoint(op, "p1", p1, true); err != nil {
		return CubicCurve{}, err
	}
	if err := checkControlPoint(op, "p2", p2, true); err != nil {
		return CubicCurve{}, err
	}
	p1.X = clampUnit(p1.X)
	p2.X = clampUnit(p2.X)
	return CubicCurve{p1: p1, p2: p2}, nil
}

func checkControlPoint(op, name string, p Point, clamp bool) error {
	if !isFinite(p.X) {
		return motionerrors.Invalid(op, name+".x", "must be finite", p.X)
	}
	if !isFinite(p.Y) {
		return motionerrors.Invalid(op, name+".y", "must be finite", p.Y)
	}
	if !clamp && (p.X < 0 || p.X > 1) {
		return motionerrors.Invalid(op, name+".x", "must be within [0, 1]", p.X)
	}
	return nil
}

func mustCubicCurve(x1, y1, x2, y2 float64) CubicCurve {
	c, err := NewCubicCurve(Point{x1, y1}, Point{x2, y2})
	if err != nil {
		panic(err)
	}
	return c
}

// P1 returns the first control point.
func (c CubicCurve) P1() Point { return c.p1 }

// P2 returns the second control point.
func (c CubicCurve) P2() Point { return c.p2 }

// Solver returns the effective solver options.
func (c CubicCurve) Solver() SolverOptions { return c.solver.normalized() }

// WithSolver returns a copy of the curve using the given solver options.
func (c CubicCurve) WithSolver(opts SolverOptions) CubicCurve {
	c.solver = opts
	return c
}

// String formats the curve like CSS cubic-bezier().
func (c CubicCurve) String() string {
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c.p1.X, c.p1.Y, c.p2.X, c.p2.Y)
}

// Transform returns y for the point on the curve whose x equals t.
// t <= 0 yields exactly 0 and t >= 1 exactly 1.
func (c CubicCurve) Transform(t float64) float64 {
	return solveCubic(c.p1.X, c.p1.Y, c.p2.X, c.p2.Y, t, c.solver.normalized())
}

// Easing curves transform linear animation progress into natural-feeling motion.
//
// Named Penner curves live in the [Easing] catalog. The presets below are the
// common CSS and platform cubic-bezier() curves.

// IOSNavigationCurve approximates iOS navigation transition easing.
var IOSNavigationCurve = mustCubicCurve(0.22, 1.0, 0.36, 1.0)

// EaseCurve is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var EaseCurve = mustCubicCurve(0.25, 0.1, 0.25, 1.0)

// EaseInCurve starts slowly and accelerates. Use for elements exiting the screen.
var EaseInCurve = mustCubicCurve(0.4, 0.0, 1.0, 1.0)

// EaseOutCurve starts quickly and decelerates. Use for elements entering the screen.
var EaseOutCurve = mustCubicCurve(0.0, 0.0, 0.2, 1.0)

// EaseInOutCurve starts and ends slowly with acceleration in the middle.
// Use for elements that stay on screen but change state.
var EaseInOutCurve = mustCubicCurve(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1). The control points are not
// validated; use [NewCubicCurve] for configuration input.
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	opts := DefaultSolverOptions
	return func(t float64) float64 {
		return solveCubic(x1, y1, x2, y2, t, opts)
	}
}

func solveCubic(x1, y1, x2, y2, t float64, opts SolverOptions) float64 {
	if math.IsNaN(t) {
		return t
	}
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	u := t
	// Newton-Raphson converges quickly for most values.
	for range opts.Iterations {
		dx := sampleCurveDerivative(x1, x2, u)
		if math.Abs(dx) < flatTangent {
			break
		}
		step := (sampleCurve(x1, x2, u) - t) / dx
		u -= step
		if u < 0 || u > 1 {
			break
		}
		if math.Abs(step) < opts.Tolerance {
			return sampleCurve(y1, y2, u)
		}
	}

	// Fallback to bisection to guarantee a stable solution in [0,1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range maxBisections {
		x := sampleCurve(x1, x2, u) - t
		if x == 0 {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
		if hi-lo < bracketWidth {
			break
		}
	}

	return sampleCurve(y1, y2, u)
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
