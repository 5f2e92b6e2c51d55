package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// CurveRecord is the externally tagged, untrusted form of a curve as it
// appears in YAML or JSON. Exactly one variant must be set. Nothing is
// validated until Build.
//
//	simple: ease-in-out-cubic
//	cubic: {p1: [0.25, 0.1], p2: [0.25, 1.0]}
//	spring: {mass: 1, stiffness: 100, damping: 10}
type CurveRecord struct {
	Simple *string       `yaml:"simple,omitempty" json:"simple,omitempty"`
	Cubic  *CubicRecord  `yaml:"cubic,omitempty" json:"cubic,omitempty"`
	Spring *SpringRecord `yaml:"spring,omitempty" json:"spring,omitempty"`
}

// CubicRecord holds the two free control points as [x, y] pairs.
type CubicRecord struct {
	P1 []float64 `yaml:"p1,flow" json:"p1"`
	P2 []float64 `yaml:"p2,flow" json:"p2"`
}

// SpringRecord holds spring parameters. Damping and DampingRatio are mutually
// exclusive.
type SpringRecord struct {
	Mass            float64  `yaml:"mass" json:"mass"`
	Stiffness       float64  `yaml:"stiffness" json:"stiffness"`
	Damping         *float64 `yaml:"damping,omitempty" json:"damping,omitempty"`
	DampingRatio    *float64 `yaml:"damping-ratio,omitempty" json:"damping-ratio,omitempty"`
	InitialVelocity float64  `yaml:"initial-velocity,omitempty" json:"initial-velocity,omitempty"`
	Epsilon         float64  `yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
	Clamp           bool     `yaml:"clamp,omitempty" json:"clamp,omitempty"`
}

var (
	recordKeys = []string{"simple", "cubic", "spring"}
	cubicKeys  = []string{"p1", "p2"}
	springKeys = []string{"mass", "stiffness", "damping", "damping-ratio", "initial-velocity", "epsilon", "clamp"}
)

// Build validates the record and constructs the curve.
func (r CurveRecord) Build() (animation.Curve, error) {
	const op = "config.CurveRecord.Build"
	set := 0
	for _, ok := range []bool{r.Simple != nil, r.Cubic != nil, r.Spring != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return animation.Curve{}, &motionerrors.CurveError{
			Op:     op,
			Kind:   motionerrors.KindDecode,
			Reason: fmt.Sprintf("exactly one of %s is required (got %d)", strings.Join(recordKeys, ", "), set),
		}
	}

	switch {
	case r.Simple != nil:
		e, err := animation.ParseEasing(*r.Simple)
		if err != nil {
			return animation.Curve{}, err
		}
		return animation.Simple(e), nil

	case r.Cubic != nil:
		p1, err := point(op, "p1", r.Cubic.P1)
		if err != nil {
			return animation.Curve{}, err
		}
		p2, err := point(op, "p2", r.Cubic.P2)
		if err != nil {
			return animation.Curve{}, err
		}
		c, err := animation.NewCubicCurve(p1, p2)
		if err != nil {
			return animation.Curve{}, err
		}
		return animation.Cubic(c), nil

	default:
		params, err := r.Spring.params(op)
		if err != nil {
			return animation.Curve{}, err
		}
		s, err := animation.NewSpringCurve(params)
		if err != nil {
			return animation.Curve{}, err
		}
		return animation.Spring(s), nil
	}
}

func (s *SpringRecord) params(op string) (animation.SpringParams, error) {
	p := animation.SpringParams{
		Mass:            s.Mass,
		Stiffness:       s.Stiffness,
		InitialVelocity: s.InitialVelocity,
		Epsilon:         s.Epsilon,
		Clamp:           s.Clamp,
	}
	switch {
	case s.Damping != nil && s.DampingRatio != nil:
		return p, &motionerrors.CurveError{
			Op:     op,
			Kind:   motionerrors.KindDecode,
			Field:  "damping-ratio",
			Reason: "cannot be combined with damping",
		}
	case s.DampingRatio != nil:
		ratio := *s.DampingRatio
		if !(ratio >= 0) || math.IsInf(ratio, 0) {
			return p, motionerrors.Invalid(op, "damping-ratio", "must be >= 0", ratio)
		}
		if !(p.Mass > 0) || !(p.Stiffness > 0) {
			// Let NewSpringCurve report the mass or stiffness problem.
			return p, nil
		}
		p = p.WithDampingRatio(ratio)
	case s.Damping != nil:
		p.Damping = *s.Damping
	}
	return p, nil
}

func point(op, field string, xy []float64) (animation.Point, error) {
	if len(xy) != 2 {
		return animation.Point{}, &motionerrors.CurveError{
			Op:     op,
			Kind:   motionerrors.KindDecode,
			Field:  field,
			Reason: "must be an [x, y] pair",
			Value:  len(xy),
		}
	}
	return animation.Point{X: xy[0], Y: xy[1]}, nil
}

// RecordOf returns the externally tagged record for c. Spring records carry
// the damping coefficient, and omit epsilon when it is the default.
func RecordOf(c animation.Curve) CurveRecord {
	switch c.Kind() {
	case animation.KindCubic:
		cubic, _ := c.CubicCurve()
		p1, p2 := cubic.P1(), cubic.P2()
		return CurveRecord{Cubic: &CubicRecord{
			P1: []float64{p1.X, p1.Y},
			P2: []float64{p2.X, p2.Y},
		}}
	case animation.KindSpring:
		spring, _ := c.SpringCurve()
		p := spring.Params()
		damping := p.Damping
		rec := &SpringRecord{
			Mass:            p.Mass,
			Stiffness:       p.Stiffness,
			Damping:         &damping,
			InitialVelocity: p.InitialVelocity,
			Clamp:           p.Clamp,
		}
		if p.Epsilon != animation.DefaultEpsilon {
			rec.Epsilon = p.Epsilon
		}
		return CurveRecord{Spring: rec}
	default:
		e, _ := c.Easing()
		name := e.String()
		return CurveRecord{Simple: &name}
	}
}

// Curve wraps an [animation.Curve] with YAML and JSON codecs for the
// externally tagged record form. A bare easing name is accepted as
// shorthand for a simple curve when decoding.
type Curve struct {
	animation.Curve

	// record is the decoded form, kept so catalog defaults can be applied
	// to fields the record left unset.
	record *CurveRecord
}

// MarshalYAML implements yaml.Marshaler.
func (c Curve) MarshalYAML() (any, error) {
	return RecordOf(c.Curve), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	const op = "config.Curve.UnmarshalYAML"
	var rec CurveRecord
	switch node.Kind {
	case yaml.ScalarNode:
		name := node.Value
		rec.Simple = &name
	case yaml.MappingNode:
		if err := checkKeys(op, node, "", recordKeys); err != nil {
			return err
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch node.Content[i].Value {
			case "cubic":
				if err := checkKeys(op, node.Content[i+1], "cubic.", cubicKeys); err != nil {
					return err
				}
			case "spring":
				if err := checkKeys(op, node.Content[i+1], "spring.", springKeys); err != nil {
					return err
				}
			}
		}
		if err := node.Decode(&rec); err != nil {
			return decodeError(op, node.Line, err)
		}
	default:
		return decodeError(op, node.Line, fmt.Errorf("curve must be an easing name or a tagged record"))
	}

	curve, err := rec.Build()
	if err != nil {
		var ce *motionerrors.CurveError
		if errors.As(err, &ce) && ce.Source == "" {
			ce.Source = fmt.Sprintf("line %d", node.Line)
		}
		return err
	}
	c.Curve, c.record = curve, &rec
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(RecordOf(c.Curve))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Curve) UnmarshalJSON(data []byte) error {
	const op = "config.Curve.UnmarshalJSON"
	var rec CurveRecord
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return decodeError(op, 0, err)
		}
		rec.Simple = &name
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rec); err != nil {
			return decodeError(op, 0, err)
		}
	}

	curve, err := rec.Build()
	if err != nil {
		return err
	}
	c.Curve, c.record = curve, &rec
	return nil
}

// ParseCurve decodes a single curve from YAML. JSON is a subset of YAML, so
// JSON input is accepted too.
func ParseCurve(data []byte) (animation.Curve, error) {
	c, err := parseCurve(data)
	return c.Curve, err
}

func parseCurve(data []byte) (Curve, error) {
	var c Curve
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Curve{}, err
	}
	return c, nil
}

// withEpsilon rebuilds c with epsilon as the settling tolerance when c is a
// spring record that does not set its own.
func (c Curve) withEpsilon(epsilon float64) (animation.Curve, error) {
	if c.record == nil || c.record.Spring == nil || c.record.Spring.Epsilon != 0 {
		return c.Curve, nil
	}
	spring := *c.record.Spring
	spring.Epsilon = epsilon
	return CurveRecord{Spring: &spring}.Build()
}

// checkKeys rejects mapping keys outside allowed.
func checkKeys(op string, node *yaml.Node, prefix string, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		name := strings.TrimSuffix(prefix, ".")
		if name == "" {
			name = "curve"
		}
		return decodeError(op, node.Line, fmt.Errorf("%s must be a mapping", name))
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return &motionerrors.CurveError{
				Op:     op,
				Kind:   motionerrors.KindDecode,
				Field:  prefix + key.Value,
				Reason: fmt.Sprintf("unknown field at line %d (want one of %s)", key.Line, strings.Join(allowed, ", ")),
			}
		}
	}
	return nil
}

func decodeError(op string, line int, err error) error {
	reason := "malformed curve record"
	if line > 0 {
		reason = fmt.Sprintf("malformed curve record at line %d", line)
	}
	return &motionerrors.CurveError{
		Op:     op,
		Kind:   motionerrors.KindDecode,
		Reason: reason,
		Err:    err,
	}
}
