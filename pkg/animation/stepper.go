package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringStepper advances a [SpringCurve] one fixed frame at a time.
//
// Hosts that tick at a constant rate (terminal UIs, game loops) can step the
// spring instead of sampling it by elapsed time. The stepper precomputes the
// per-frame coefficients once, and its trajectory matches
// [SpringCurve.Sample] at multiples of the frame interval.
//
// A SpringStepper is not safe for concurrent use.
type SpringStepper struct {
	curve  SpringCurve
	spring harmonica.Spring
	frame  time.Duration
	frames int
	pos    float64
	vel    float64
	locked bool
}

// NewSpringStepper creates a stepper for curve at fps frames per second.
// Non-positive fps defaults to 60.
func NewSpringStepper(curve SpringCurve, fps int) *SpringStepper {
	if fps <= 0 {
		fps = 60
	}
	return &SpringStepper{
		curve:  curve,
		spring: harmonica.NewSpring(harmonica.FPS(fps), curve.NaturalFrequency(), curve.DampingRatio()),
		frame:  time.Second / time.Duration(fps),
		vel:    curve.params.InitialVelocity,
	}
}

// Step advances one frame and returns the new position and velocity.
func (s *SpringStepper) Step() (position, velocity float64) {
	s.frames++
	if s.locked {
		return s.pos, s.vel
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, 1)
	if s.curve.params.Clamp && (s.pos >= 1 || math.Abs(s.pos-1) < s.curve.params.Epsilon) {
		s.pos, s.vel, s.locked = 1, 0, true
	}
	return s.pos, s.vel
}

// Position returns the current progress position.
func (s *SpringStepper) Position() float64 { return s.pos }

// Velocity returns the current progress velocity per second.
func (s *SpringStepper) Velocity() float64 { return s.vel }

// Elapsed returns the simulated time covered by the steps taken so far.
func (s *SpringStepper) Elapsed() time.Duration { return time.Duration(s.frames) * s.frame }

// IsSettled reports whether position and velocity are within the curve's
// epsilon of rest at the target.
func (s *SpringStepper) IsSettled() bool {
	eps := s.curve.params.Epsilon
	return math.Abs(s.pos-1) < eps && math.Abs(s.vel) < eps
}

// Reset rewinds the stepper to the curve's initial conditions.
func (s *SpringStepper) Reset() {
	s.frames = 0
	s.pos = 0
	s.vel = s.curve.params.InitialVelocity
	s.locked = false
}
