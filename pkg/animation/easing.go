package animation

import (
	"fmt"
	"math"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// Easing names a curve from the fixed easing catalog.
//
// Each easing maps normalized progress t in [0, 1] to eased progress. The
// result is not clamped: the elastic and back families deliberately overshoot
// or undershoot between the endpoints. Every easing maps 0 to 0 and 1 to 1.
//
// Formulas follow the Penner easing equations as published on easings.net.
// [EaseIn], [EaseOut] and [EaseInOut] are the CSS keyword curves and are
// evaluated with the cubic Bézier solver.
type Easing int

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce

	easingCount
)

var easingNames = [easingCount]string{
	Linear:           "linear",
	EaseIn:           "ease-in",
	EaseOut:          "ease-out",
	EaseInOut:        "ease-in-out",
	EaseInQuad:       "ease-in-quad",
	EaseOutQuad:      "ease-out-quad",
	EaseInOutQuad:    "ease-in-out-quad",
	EaseInCubic:      "ease-in-cubic",
	EaseOutCubic:     "ease-out-cubic",
	EaseInOutCubic:   "ease-in-out-cubic",
	EaseInQuart:      "ease-in-quart",
	EaseOutQuart:     "ease-out-quart",
	EaseInOutQuart:   "ease-in-out-quart",
	EaseInQuint:      "ease-in-quint",
	EaseOutQuint:     "ease-out-quint",
	EaseInOutQuint:   "ease-in-out-quint",
	EaseInSine:       "ease-in-sine",
	EaseOutSine:      "ease-out-sine",
	EaseInOutSine:    "ease-in-out-sine",
	EaseInCirc:       "ease-in-circ",
	EaseOutCirc:      "ease-out-circ",
	EaseInOutCirc:    "ease-in-out-circ",
	EaseInExpo:       "ease-in-expo",
	EaseOutExpo:      "ease-out-expo",
	EaseInOutExpo:    "ease-in-out-expo",
	EaseInElastic:    "ease-in-elastic",
	EaseOutElastic:   "ease-out-elastic",
	EaseInOutElastic: "ease-in-out-elastic",
	EaseInBack:       "ease-in-back",
	EaseOutBack:      "ease-out-back",
	EaseInOutBack:    "ease-in-out-back",
	EaseInBounce:     "ease-in-bounce",
	EaseOutBounce:    "ease-out-bounce",
	EaseInOutBounce:  "ease-in-out-bounce",
}

// CSS keyword curves backing EaseIn, EaseOut and EaseInOut.
var (
	cssEaseIn    = mustCubicCurve(0.42, 0, 1, 1)
	cssEaseOut   = mustCubicCurve(0, 0, 0.58, 1)
	cssEaseInOut = mustCubicCurve(0.42, 0, 0.58, 1)
)

const (
	backC1    = 1.70158
	backC2    = backC1 * 1.525
	backC3    = backC1 + 1
	elasticC4 = 2 * math.Pi / 3
	elasticC5 = 2 * math.Pi / 4.5
	bounceN1  = 7.5625
	bounceD1  = 2.75
)

// Easings returns the whole catalog in declaration order.
func Easings() []Easing {
	out := make([]Easing, 0, easingCount)
	for e := Linear; e < easingCount; e++ {
		out = append(out, e)
	}
	return out
}

// String returns the kebab-case name used in configuration files.
func (e Easing) String() string {
	if e >= 0 && e < easingCount {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", int(e))
}

// Valid reports whether e is a member of the catalog.
func (e Easing) Valid() bool {
	return e >= 0 && e < easingCount
}

// ParseEasing looks up an easing by its kebab-case name.
func ParseEasing(name string) (Easing, error) {
	for e := Linear; e < easingCount; e++ {
		if easingNames[e] == name {
			return e, nil
		}
	}
	return Linear, &motionerrors.CurveError{
		Op:     "animation.ParseEasing",
		Kind:   motionerrors.KindUnknownEasing,
		Reason: fmt.Sprintf("unknown easing %q", name),
	}
}

// Transform evaluates the easing at t. Values outside [0, 1] are not clamped;
// callers clamp t before calling.
func (e Easing) Transform(t float64) float64 {
	switch e {
	case Linear:
		return t
	case EaseIn:
		return cssEaseIn.Transform(t)
	case EaseOut:
		return cssEaseOut.Transform(t)
	case EaseInOut:
		return cssEaseInOut.Transform(t)

	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return 1 - (1-t)*(1-t)
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2

	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2

	case EaseInQuart:
		return t * t * t * t
	case EaseOutQuart:
		u := 1 - t
		return 1 - u*u*u*u
	case EaseInOutQuart:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u*u/2

	case EaseInQuint:
		return t * t * t * t * t
	case EaseOutQuint:
		u := 1 - t
		return 1 - u*u*u*u*u
	case EaseInOutQuint:
		if t < 0.5 {
			return 16 * t * t * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u*u*u/2

	case EaseInSine:
		return 1 - math.Cos(t*math.Pi/2)
	case EaseOutSine:
		return math.Sin(t * math.Pi / 2)
	case EaseInOutSine:
		return -(math.Cos(math.Pi*t) - 1) / 2

	case EaseInCirc:
		return 1 - math.Sqrt(1-t*t)
	case EaseOutCirc:
		u := t - 1
		return math.Sqrt(1 - u*u)
	case EaseInOutCirc:
		if t < 0.5 {
			u := 2 * t
			return (1 - math.Sqrt(1-u*u)) / 2
		}
		u := -2*t + 2
		return (math.Sqrt(1-u*u) + 1) / 2

	case EaseInExpo:
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*t-10)
	case EaseOutExpo:
		if t == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	case EaseInOutExpo:
		switch {
		case t == 0:
			return 0
		case t == 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		default:
			return (2 - math.Pow(2, -20*t+10)) / 2
		}

	case EaseInElastic:
		if t == 0 || t == 1 {
			return t
		}
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
	case EaseOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
	case EaseInOutElastic:
		switch {
		case t == 0 || t == 1:
			return t
		case t < 0.5:
			return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5)) / 2
		default:
			return math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5)/2 + 1
		}

	case EaseInBack:
		return backC3*t*t*t - backC1*t*t
	case EaseOutBack:
		u := t - 1
		return 1 + backC3*u*u*u + backC1*u*u
	case EaseInOutBack:
		if t < 0.5 {
			u := 2 * t
			return u * u * ((backC2+1)*u - backC2) / 2
		}
		u := 2*t - 2
		return (u*u*((backC2+1)*u+backC2) + 2) / 2

	case EaseInBounce:
		return 1 - bounceOut(1-t)
	case EaseOutBounce:
		return bounceOut(t)
	case EaseInOutBounce:
		if t < 0.5 {
			return (1 - bounceOut(1-2*t)) / 2
		}
		return (1 + bounceOut(2*t-1)) / 2
	}
	return t
}

func bounceOut(t float64) float64 {
	switch {
	case t < 1/bounceD1:
		return bounceN1 * t * t
	case t < 2/bounceD1:
		t -= 1.5 / bounceD1
		return bounceN1*t*t + 0.75
	case t < 2.5/bounceD1:
		t -= 2.25 / bounceD1
		return bounceN1*t*t + 0.9375
	default:
		t -= 2.625 / bounceD1
		return bounceN1*t*t + 0.984375
	}
}
