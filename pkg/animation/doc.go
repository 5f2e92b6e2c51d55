// Package animation computes animation progress from elapsed time.
//
// # Core Components
//
//   - [Easing]: a fixed catalog of named Penner easings mapping normalized
//     progress t in [0, 1] to eased progress.
//
//   - [CubicCurve]: a CSS-style cubic Bézier with two free control points,
//     inverted with Newton-Raphson and a bisection fallback.
//
//   - [SpringCurve]: a damped harmonic oscillator evaluated in closed form
//     from absolute elapsed time, with a settling check and an estimated
//     settling duration.
//
//   - [Curve] and [Progress]: one evaluation contract over all three
//     families. This is the entry point for widget integration layers.
//
//   - [AnimationState]: per-animation state owned by the host loop, with
//     pause, restart, and velocity-preserving interruption for springs.
//
//   - [Tween] and [Animation]: map progress onto typed values.
//
// The package does no scheduling. The host owns time, calls Tick once per
// frame, and drops the animation once IsFinished reports true.
//
// # Basic Usage
//
//	spring, err := animation.NewSpringCurve(animation.BouncySpring())
//	if err != nil {
//	    return err
//	}
//	opacity, _ := animation.NewAnimation(animation.TweenFloat64(0, 1), animation.Spring(spring), 0)
//
//	// Each frame
//	value := opacity.Tick(time.Now())
//	if opacity.IsFinished() {
//	    // drop the animation
//	}
//
// # Concurrency
//
// Curves are immutable values and safe for concurrent evaluation.
// AnimationState, Animation and SpringStepper are single-writer: each belongs
// to one animation and must not be mutated from several goroutines at once.
package animation
