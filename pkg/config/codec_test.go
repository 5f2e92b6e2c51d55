package config

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

func TestParseCurveYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind animation.CurveKind
	}{
		{"simple", "simple: ease-in-out-cubic", animation.KindSimple},
		{"bare easing", "ease-out-back", animation.KindSimple},
		{"cubic", "cubic: {p1: [0.25, 0.1], p2: [0.25, 1.0]}", animation.KindCubic},
		{"spring", "spring: {mass: 1, stiffness: 100, damping: 10}", animation.KindSpring},
		{"spring ratio", "spring: {mass: 1, stiffness: 100, damping-ratio: 0.5}", animation.KindSpring},
		{"json cubic", `{"cubic": {"p1": [0.4, 0], "p2": [0.2, 1]}}`, animation.KindCubic},
		{"block spring", "spring:\n  mass: 2\n  stiffness: 300\n  damping: 8\n  initial-velocity: 4\n  clamp: true\n", animation.KindSpring},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCurve([]byte(tt.in))
			if err != nil {
				t.Fatalf("ParseCurve: %v", err)
			}
			if c.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", c.Kind(), tt.kind)
			}
		})
	}
}

func TestParseCurveValues(t *testing.T) {
	c, err := ParseCurve([]byte("spring: {mass: 1, stiffness: 100, damping-ratio: 0.5, epsilon: 0.01}"))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := c.SpringCurve()
	p := s.Params()
	if p.Damping != 10 || p.Epsilon != 0.01 {
		t.Errorf("params = %+v", p)
	}

	c, err = ParseCurve([]byte("cubic: {p1: [0.25, 0.1], p2: [0.25, 1.0]}"))
	if err != nil {
		t.Fatal(err)
	}
	cubic, _ := c.CubicCurve()
	if cubic.P1() != animation.EaseCurve.P1() || cubic.P2() != animation.EaseCurve.P2() {
		t.Errorf("cubic = %v", cubic)
	}
}

func TestParseCurveErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		target error
		field  string
	}{
		{"unknown easing", "simple: wobble", motionerrors.ErrUnknownEasing, ""},
		{"two variants", "{simple: linear, cubic: {p1: [0, 0], p2: [1, 1]}}", motionerrors.ErrDecode, ""},
		{"unknown variant", "bezier: {p1: [0, 0], p2: [1, 1]}", motionerrors.ErrDecode, "bezier"},
		{"unknown spring field", "spring: {mass: 1, stiffness: 1, friction: 2}", motionerrors.ErrDecode, "spring.friction"},
		{"short point", "cubic: {p1: [0.5], p2: [1, 1]}", motionerrors.ErrDecode, "p1"},
		{"x out of range", "cubic: {p1: [1.5, 0], p2: [1, 1]}", motionerrors.ErrInvalidParameter, "p1.x"},
		{"zero mass", "spring: {mass: 0, stiffness: 100}", motionerrors.ErrInvalidParameter, "mass"},
		{"missing stiffness", "spring: {mass: 1}", motionerrors.ErrInvalidParameter, "stiffness"},
		{"negative damping", "spring: {mass: 1, stiffness: 100, damping: -2}", motionerrors.ErrInvalidParameter, "damping"},
		{"negative ratio", "spring: {mass: 1, stiffness: 100, damping-ratio: -1}", motionerrors.ErrInvalidParameter, "damping-ratio"},
		{"both dampings", "spring: {mass: 1, stiffness: 100, damping: 1, damping-ratio: 1}", motionerrors.ErrDecode, "damping-ratio"},
		{"wrong type", "spring: {mass: heavy, stiffness: 100}", motionerrors.ErrDecode, ""},
		{"sequence", "[1, 2]", motionerrors.ErrDecode, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCurve([]byte(tt.in))
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			var ce *motionerrors.CurveError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CurveError, got %T", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestCurveYAMLRoundTrip(t *testing.T) {
	ease, _ := animation.NewCubicCurve(animation.Point{X: 0.4, Y: 0}, animation.Point{X: 0.2, Y: 1})
	spring, _ := animation.NewSpringCurve(animation.SpringParams{Mass: 2, Stiffness: 300, Damping: 8, InitialVelocity: 1.5, Epsilon: 0.01, Clamp: true})
	curves := []animation.Curve{
		animation.Simple(animation.EaseInOutCubic),
		animation.Cubic(ease),
		animation.Spring(spring),
	}
	for _, c := range curves {
		data, err := yaml.Marshal(Curve{Curve: c})
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c, err)
		}
		var got Curve
		if err := yaml.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got.String() != c.String() {
			t.Errorf("round trip %q -> %q", c, got)
		}
		for _, ms := range []int{0, 40, 150, 400} {
			elapsed := time.Duration(ms) * time.Millisecond
			if a, b := animation.Progress(c, elapsed, 300*time.Millisecond), animation.Progress(got.Curve, elapsed, 300*time.Millisecond); a != b {
				t.Errorf("%v progress at %v: %v != %v", c, elapsed, a, b)
			}
		}
	}
}

func TestCurveYAMLShape(t *testing.T) {
	data, err := yaml.Marshal(Curve{Curve: animation.Simple(animation.EaseOutQuad)})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "simple: ease-out-quad" {
		t.Errorf("simple = %q", got)
	}

	data, err = yaml.Marshal(Curve{Curve: animation.Cubic(animation.EaseCurve)})
	if err != nil {
		t.Fatal(err)
	}
	want := "cubic:\n    p1: [0.25, 0.1]\n    p2: [0.25, 1]"
	if got := strings.TrimSpace(string(data)); got != want {
		t.Errorf("cubic =\n%s\nwant\n%s", got, want)
	}
}

func TestCurveJSON(t *testing.T) {
	spring, _ := animation.NewSpringCurve(animation.SpringParams{Mass: 1, Stiffness: 100, Damping: 10})
	data, err := json.Marshal(Curve{Curve: animation.Spring(spring)})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"spring":{"mass":1,"stiffness":100,"damping":10}}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}

	var got Curve
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	s, ok := got.SpringCurve()
	if !ok || s.Params().Damping != 10 {
		t.Errorf("decoded %v", got)
	}

	if err := json.Unmarshal([]byte(`"ease-in"`), &got); err != nil {
		t.Fatal(err)
	}
	if e, _ := got.Easing(); e != animation.EaseIn {
		t.Errorf("easing = %v", e)
	}

	err = json.Unmarshal([]byte(`{"spring":{"mass":1,"stiffness":100,"bounce":3}}`), &got)
	if !errors.Is(err, motionerrors.ErrDecode) {
		t.Errorf("unknown field: expected ErrDecode, got %v", err)
	}

	var list []Curve
	if err := json.Unmarshal([]byte(`["linear", {"cubic":{"p1":[0.5,0],"p2":[0.5,1]}}]`), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[1].Kind() != animation.KindCubic {
		t.Errorf("list = %v", list)
	}
}

func TestSpringRecordNoHiddenFields(t *testing.T) {
	spring, _ := animation.NewSpringCurve(animation.SmoothSpring())
	rec := RecordOf(animation.Spring(spring))
	if rec.Spring == nil || rec.Simple != nil || rec.Cubic != nil {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Spring.Epsilon != 0 {
		t.Errorf("default epsilon should be omitted, got %v", rec.Spring.Epsilon)
	}
	if math.Abs(*rec.Spring.Damping-20) > 1e-12 {
		t.Errorf("damping = %v", *rec.Spring.Damping)
	}
}
