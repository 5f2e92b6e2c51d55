package animation

import (
	"fmt"
	"math"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

const (
	// DefaultEpsilon is the settling tolerance used when SpringParams.Epsilon is zero.
	DefaultEpsilon = 1e-3

	// Forever is the duration reported by springs that never settle.
	Forever = time.Duration(math.MaxInt64)

	// float32 machine epsilon; float64 epsilon is too strict to detect
	// critical damping from user-supplied parameters.
	criticalTolerance = 1.1920929e-07

	settleStep = time.Millisecond
	// Settling estimates beyond this are reported as Forever.
	maxSettle = time.Hour
	// Longest backward walk from a decay bound to the last unsettled instant.
	maxRefineSteps = 2000
)

// SpringRegime classifies a spring by its damping ratio.
type SpringRegime int

const (
	// Underdamped springs (ratio < 1) oscillate around the target before settling.
	Underdamped SpringRegime = iota
	// CriticallyDamped springs (ratio == 1) reach the target as fast as possible without overshoot.
	CriticallyDamped
	// Overdamped springs (ratio > 1) creep toward the target without overshoot.
	Overdamped
)

func (r SpringRegime) String() string {
	switch r {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically-damped"
	case Overdamped:
		return "overdamped"
	default:
		return fmt.Sprintf("SpringRegime(%d)", int(r))
	}
}

// SpringParams holds the physical description of a spring before validation.
//
// The spring moves progress from 0 to 1 following m·x'' + c·x' + k·(x - 1) = 0
// with x(0) = 0 and x'(0) = InitialVelocity (progress units per second).
type SpringParams struct {
	// Mass is the inertia of the moving body. Must be > 0.
	Mass float64
	// Stiffness is the spring constant k. Must be > 0.
	Stiffness float64
	// Damping is the damping coefficient c. Must be >= 0.
	Damping float64
	// InitialVelocity is the progress velocity at elapsed zero.
	InitialVelocity float64
	// Epsilon is the settling tolerance for position and velocity.
	// Zero selects DefaultEpsilon.
	Epsilon float64
	// Clamp stops the spring the first time it reaches the target instead of
	// letting it overshoot.
	Clamp bool
}

// WithDampingRatio returns a copy with Damping derived from a damping ratio:
// c = ratio · 2√(mk). Mass and Stiffness must already be set.
func (p SpringParams) WithDampingRatio(ratio float64) SpringParams {
	p.Damping = ratio * 2 * math.Sqrt(p.Mass*p.Stiffness)
	return p
}

// BouncySpring is an underdamped spring with visible overshoot.
func BouncySpring() SpringParams {
	return SpringParams{Mass: 1, Stiffness: 180}.WithDampingRatio(0.4)
}

// SmoothSpring is a critically damped spring.
func SmoothSpring() SpringParams {
	return SpringParams{Mass: 1, Stiffness: 100}.WithDampingRatio(1)
}

// SnappySpring is a stiff, lightly underdamped spring for quick UI feedback.
func SnappySpring() SpringParams {
	return SpringParams{Mass: 1, Stiffness: 400}.WithDampingRatio(0.85)
}

// SpringCurve is a validated damped harmonic oscillator.
//
// Positions are evaluated in closed form from the absolute elapsed time, so
// hosts may sample at any frame rate, pause, seek or skip without accumulating
// integration error. Build one with [NewSpringCurve].
type SpringCurve struct {
	params SpringParams
	regime SpringRegime
	beta   float64 // c / 2m
	omega0 float64 // √(k/m)
	omegaD float64 // damped (under) or decay split (over) frequency

	settle   time.Duration
	crossing time.Duration
}

// NewSpringCurve validates p and precomputes the spring's regime and settling
// duration.
func NewSpringCurve(p SpringParams) (SpringCurve, error) {
	const op = "animation.NewSpringCurve"
	switch {
	case !(p.Mass > 0) || math.IsInf(p.Mass, 0):
		return SpringCurve{}, motionerrors.Invalid(op, "mass", "must be > 0", p.Mass)
	case !(p.Stiffness > 0) || math.IsInf(p.Stiffness, 0):
		return SpringCurve{}, motionerrors.Invalid(op, "stiffness", "must be > 0", p.Stiffness)
	case !(p.Damping >= 0) || math.IsInf(p.Damping, 0):
		return SpringCurve{}, motionerrors.Invalid(op, "damping", "must be >= 0", p.Damping)
	case !isFinite(p.InitialVelocity):
		return SpringCurve{}, motionerrors.Invalid(op, "initial-velocity", "must be finite", p.InitialVelocity)
	case !(p.Epsilon >= 0) || math.IsInf(p.Epsilon, 0):
		return SpringCurve{}, motionerrors.Invalid(op, "epsilon", "must be >= 0", p.Epsilon)
	}
	if p.Epsilon == 0 {
		p.Epsilon = DefaultEpsilon
	}

	c := SpringCurve{
		params: p,
		beta:   p.Damping / (2 * p.Mass),
		omega0: math.Sqrt(p.Stiffness / p.Mass),
	}
	switch {
	case math.Abs(c.beta-c.omega0) <= criticalTolerance*math.Max(1, c.omega0):
		c.regime = CriticallyDamped
	case c.beta < c.omega0:
		c.regime = Underdamped
		c.omegaD = math.Sqrt(c.omega0*c.omega0 - c.beta*c.beta)
	default:
		c.regime = Overdamped
		c.omegaD = math.Sqrt(c.beta*c.beta - c.omega0*c.omega0)
	}

	c.crossing = Forever
	if p.Clamp {
		c.crossing = c.firstCrossing()
	}
	c.settle = c.estimateSettle()
	return c, nil
}

// Params returns the validated parameters, with Epsilon resolved.
func (c SpringCurve) Params() SpringParams { return c.params }

// Regime returns the damping regime.
func (c SpringCurve) Regime() SpringRegime { return c.regime }

// DampingRatio returns ζ = c / (2√(mk)).
func (c SpringCurve) DampingRatio() float64 {
	return c.params.Damping / (2 * math.Sqrt(c.params.Mass*c.params.Stiffness))
}

// NaturalFrequency returns ω0 = √(k/m) in radians per second.
func (c SpringCurve) NaturalFrequency() float64 { return c.omega0 }

// Epsilon returns the settling tolerance.
func (c SpringCurve) Epsilon() float64 { return c.params.Epsilon }

// Duration returns the estimated settling duration: the millisecond from
// which the spring stays settled, or the first time it reaches the target when
// clamped. Undamped springs, and springs that need longer than an hour,
// return [Forever].
func (c SpringCurve) Duration() time.Duration { return c.settle }

// String describes the spring parameters.
func (c SpringCurve) String() string {
	return fmt.Sprintf("spring(mass=%g, stiffness=%g, damping=%g, velocity=%g)",
		c.params.Mass, c.params.Stiffness, c.params.Damping, c.params.InitialVelocity)
}

// Sample returns progress position and velocity (per second) at elapsed.
// Negative elapsed times are treated as zero.
func (c SpringCurve) Sample(elapsed time.Duration) (position, velocity float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	if c.params.Clamp && elapsed >= c.crossing {
		return 1, 0
	}
	return c.oscillate(elapsed.Seconds())
}

// IsSettled reports whether the spring is within epsilon of rest at the
// target. A non-positive epsilon uses the curve's own tolerance.
func (c SpringCurve) IsSettled(elapsed time.Duration, epsilon float64) bool {
	if !(epsilon > 0) {
		epsilon = c.params.Epsilon
	}
	pos, vel := c.Sample(elapsed)
	return math.Abs(pos-1) < epsilon && math.Abs(vel) < epsilon
}

// Retarget returns the spring that continues a motion currently at position
// with velocity (both in value space) toward a new value to. The returned
// curve maps progress 0..1 onto position..to and starts with the equivalent
// progress velocity, so the spliced trajectory has no velocity jump.
func (c SpringCurve) Retarget(position, velocity, to float64) (SpringCurve, error) {
	span := to - position
	if span == 0 || !isFinite(span) {
		return SpringCurve{}, motionerrors.Invalid("animation.SpringCurve.Retarget", "to",
			"must be finite and differ from the current position", to)
	}
	p := c.params
	p.InitialVelocity = velocity / span
	return NewSpringCurve(p)
}

// oscillate evaluates the closed-form solution at t seconds.
func (c SpringCurve) oscillate(t float64) (position, velocity float64) {
	// Displacement from the target starts at -1 (start 0, end 1).
	x0 := -1.0
	v0 := c.params.InitialVelocity
	beta := c.beta

	switch c.regime {
	case CriticallyDamped:
		env := math.Exp(-beta * t)
		b := beta*x0 + v0
		return 1 + env*(x0+b*t), env * (v0 - beta*b*t)

	case Underdamped:
		w := c.omegaD
		env := math.Exp(-beta * t)
		b := (beta*x0 + v0) / w
		sin, cos := math.Sincos(w * t)
		return 1 + env*(x0*cos+b*sin), env * (v0*cos - (beta*b+x0*w)*sin)

	default:
		r1, r2, c1, c2 := c.exponents()
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		return 1 + c1*e1 + c2*e2, r1*c1*e1 + r2*c2*e2
	}
}

// exponents returns the decay rates (r1 slower than r2) and coefficients of
// an overdamped displacement c1·e^(r1·t) + c2·e^(r2·t).
func (c SpringCurve) exponents() (r1, r2, c1, c2 float64) {
	// Sum of two decaying exponentials. r1 is written as ω0²/(β+ω) to
	// avoid cancellation when β >> ω0.
	x0, v0 := -1.0, c.params.InitialVelocity
	r1 = -(c.omega0 * c.omega0) / (c.beta + c.omegaD)
	r2 = -c.beta - c.omegaD
	c1 = (v0 - r2*x0) / (r1 - r2)
	c2 = x0 - c1
	return r1, r2, c1, c2
}

// decayBound returns a time in seconds after which |position-1| (and
// |velocity| when withVelocity is set) stays below eps. It bounds each
// regime's envelope, so it never undershoots.
func (c SpringCurve) decayBound(eps float64, withVelocity bool) float64 {
	x0, v0, beta := -1.0, c.params.InitialVelocity, c.beta
	switch c.regime {
	case CriticallyDamped:
		b := beta*x0 + v0
		t := decayTime(math.Abs(x0), math.Abs(b), beta, eps)
		if withVelocity {
			t = math.Max(t, decayTime(math.Abs(v0), beta*math.Abs(b), beta, eps))
		}
		return t

	case Underdamped:
		w := c.omegaD
		b := (beta*x0 + v0) / w
		amp := math.Hypot(x0, b)
		if withVelocity {
			amp = math.Max(amp, math.Hypot(v0, beta*b+x0*w))
		}
		return decayTime(amp, 0, beta, eps)

	default:
		r1, r2, c1, c2 := c.exponents()
		t := sumDecayTime(math.Abs(c1), r1, math.Abs(c2), r2, eps)
		if withVelocity {
			t = math.Max(t, sumDecayTime(math.Abs(r1*c1), r1, math.Abs(r2*c2), r2, eps))
		}
		return t
	}
}

// sumDecayTime returns the time at which a1·e^(r1·t) + a2·e^(r2·t) falls
// below eps, for a1, a2 >= 0 and negative rates.
func sumDecayTime(a1, r1, a2, r2, eps float64) float64 {
	f := func(t float64) (v, slope float64) {
		e1, e2 := a1*math.Exp(r1*t), a2*math.Exp(r2*t)
		return e1 + e2, r1*e1 + r2*e2
	}
	if v, _ := f(0); v < eps {
		return 0
	}
	// ln f is convex and decreasing, so Newton from the left climbs to the
	// root without passing it.
	t := 0.0
	for range 100 {
		v, slope := f(t)
		if slope >= 0 || v == 0 {
			return math.Inf(1)
		}
		step := (math.Log(v) - math.Log(eps)) * v / slope
		t -= step
		if math.Abs(step) < 1e-9 {
			break
		}
	}
	return t + 1e-9
}

// decayTime returns the time after which e^(-rate·t)·(a + b·t) stays below
// eps, for a, b >= 0. A non-positive rate never decays.
func decayTime(a, b, rate, eps float64) float64 {
	if !(rate > 0) {
		return math.Inf(1)
	}
	if b == 0 {
		if a < eps {
			return 0
		}
		return math.Log(a/eps) / rate
	}
	// g(t) = e^(-rate·t)·(a + b·t) decreases from peak onward.
	peak := math.Max(0, 1/rate-a/b)
	if math.Exp(-rate*peak)*(a+b*peak) < eps {
		return peak
	}
	// h(t) = ln(a + b·t) - ln(eps) - rate·t is concave, so Newton from the
	// decreasing side lands on or beyond the root and walks down to it.
	t := peak + 1/rate
	for range 64 {
		h := math.Log((a+b*t)/eps) - rate*t
		step := h / (b/(a+b*t) - rate)
		t -= step
		if math.Abs(step) < 1e-9 {
			break
		}
	}
	return t
}

// firstZero returns the first time in seconds at which the displacement
// crosses zero, or +Inf when it only approaches the target from below.
func (c SpringCurve) firstZero() float64 {
	x0, v0 := -1.0, c.params.InitialVelocity
	switch c.regime {
	case CriticallyDamped:
		if b := c.beta*x0 + v0; b > 0 {
			return -x0 / b
		}
	case Underdamped:
		// x0·cos(ωt) + b·sin(ωt) = R·sin(ωt + ψ) with ψ = atan2(x0, b).
		w := c.omegaD
		b := (c.beta*x0 + v0) / w
		psi := math.Atan2(x0, b)
		k := math.Floor(psi/math.Pi) + 1
		return (k*math.Pi - psi) / w
	default:
		r1, r2, c1, c2 := c.exponents()
		if c1 != 0 && -c2/c1 > 1 {
			return math.Log(-c2/c1) / (r1 - r2)
		}
	}
	return math.Inf(1)
}

// gridCeil rounds seconds up to the settle grid. It reports false for
// estimates beyond maxSettle.
func gridCeil(seconds float64) (time.Duration, bool) {
	if math.IsNaN(seconds) || seconds > maxSettle.Seconds() {
		return 0, false
	}
	steps := math.Ceil(math.Max(seconds, 0) * float64(time.Second/settleStep))
	return time.Duration(steps) * settleStep, true
}

// firstCrossing returns the first grid instant at which the spring reaches
// the target within epsilon. Before the first zero the displacement is
// unimodal, so the reached set is an interval ending there and bisection
// finds its start.
func (c SpringCurve) firstCrossing() time.Duration {
	eps := c.params.Epsilon
	reached := func(t time.Duration) bool {
		pos, _ := c.oscillate(t.Seconds())
		return pos >= 1 || math.Abs(pos-1) < eps
	}
	if reached(0) {
		return 0
	}
	bound := c.firstZero()
	if math.IsInf(bound, 1) {
		bound = c.decayBound(eps, false)
	}
	hi, ok := gridCeil(bound)
	if !ok {
		return Forever
	}
	for !reached(hi) {
		if hi += settleStep; hi > maxSettle {
			return Forever
		}
	}
	lo := time.Duration(0)
	for hi-lo > settleStep {
		mid := lo + (hi-lo)/settleStep/2*settleStep
		if reached(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

func (c SpringCurve) estimateSettle() time.Duration {
	if c.params.Clamp && c.crossing != Forever {
		return c.crossing
	}
	if c.beta <= 0 {
		return Forever
	}
	eps := c.params.Epsilon
	t, ok := gridCeil(c.decayBound(eps, true))
	if !ok {
		return Forever
	}
	settled := func(t time.Duration) bool {
		pos, vel := c.oscillate(t.Seconds())
		return math.Abs(pos-1) < eps && math.Abs(vel) < eps
	}
	for i := 0; !settled(t) && i < maxRefineSteps; i++ {
		t += settleStep
	}
	// The bound is tight at envelope peaks; step back to the last unsettled
	// grid instant.
	for range maxRefineSteps {
		prev := t - settleStep
		if prev < 0 || !settled(prev) {
			break
		}
		t = prev
	}
	return t
}
