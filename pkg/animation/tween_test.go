package animation

import (
	"math"
	"testing"
	"time"
)

func TestTweenEvaluate(t *testing.T) {
	tw := TweenFloat64(10, 20)
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 10},
		{0.5, 15},
		{1, 20},
		{1.2, 22},
		{-0.1, 9},
	}
	for _, tt := range tests {
		if got := tw.Evaluate(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	nilLerp := &Tween[string]{Begin: "a", End: "b"}
	if got := nilLerp.Evaluate(0.3); got != "b" {
		t.Errorf("nil Lerp Evaluate = %q, want End", got)
	}
}

func TestLerpFloat64s(t *testing.T) {
	got := LerpFloat64s([]float64{0, 10, 5}, []float64{10, 20}, 0.5)
	if len(got) != 2 || got[0] != 5 || got[1] != 15 {
		t.Errorf("LerpFloat64s = %v", got)
	}
	tw := TweenFloat64s([]float64{0, 0}, []float64{1, 2})
	if v := tw.Evaluate(0.25); v[1] != 0.5 {
		t.Errorf("Evaluate = %v", v)
	}
}

func TestAnimationTick(t *testing.T) {
	a, err := NewAnimationAt(TweenPoint(Point{}, Point{X: 100, Y: 50}), Simple(Linear), 100*time.Millisecond, at(0))
	if err != nil {
		t.Fatal(err)
	}
	if a.Value() != (Point{}) {
		t.Errorf("initial value = %v", a.Value())
	}
	if got := a.Tick(at(50)); got != (Point{X: 50, Y: 25}) {
		t.Errorf("Tick(50ms) = %v", got)
	}

	a.State().Pause()
	if got := a.Tick(at(90)); got != (Point{X: 50, Y: 25}) {
		t.Errorf("paused Tick = %v", got)
	}
	a.State().Resume()
	a.Tick(at(200))
	if !a.IsFinished() || a.Value() != (Point{X: 100, Y: 50}) {
		t.Errorf("finished = %v value = %v", a.IsFinished(), a.Value())
	}
}

func TestRetargetFloat64Spring(t *testing.T) {
	spring := mustSpring(t, SpringParams{Mass: 1, Stiffness: 200, Damping: 16})
	a, err := NewAnimationAt(TweenFloat64(0, 100), Spring(spring), 0, at(0))
	if err != nil {
		t.Fatal(err)
	}
	valueBefore := a.Tick(at(60))
	velBefore := a.State().Velocity() * 100

	b, err := RetargetFloat64(a, at(60), 40)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(b.Value()-valueBefore) > 1e-9 {
		t.Errorf("value jumps from %v to %v", valueBefore, b.Value())
	}
	if got := b.State().Velocity() * (40 - valueBefore); math.Abs(got-velBefore) > 1e-9 {
		t.Errorf("velocity jumps from %v to %v", velBefore, got)
	}
	b.Tick(at(60).Add(b.State().Duration()))
	if math.Abs(b.Value()-40) > 0.1 {
		t.Errorf("retargeted animation ends at %v, want 40", b.Value())
	}
}

func TestRetargetFloat64Cubic(t *testing.T) {
	a, err := NewAnimationAt(TweenFloat64(0, 10), Cubic(EaseInOutCurve), time.Second, at(0))
	if err != nil {
		t.Fatal(err)
	}
	mid := a.Tick(at(500))
	b, err := RetargetFloat64(a, at(500), 0)
	if err != nil {
		t.Fatal(err)
	}
	if b.Value() != mid {
		t.Errorf("start value = %v, want %v", b.Value(), mid)
	}
	if got := b.Tick(at(1500)); got != 0 {
		t.Errorf("end value = %v, want 0", got)
	}
}
