// Package config loads curve configuration.
//
// Curves are encoded as externally tagged records (see [CurveRecord]) in YAML
// or JSON. A project may also keep a catalog of named curves in motion.yaml:
//
//	version: v1.0.0
//	defaults:
//	  duration: 300ms
//	  epsilon: 0.001
//	curves:
//	  fade: ease-in-out
//	  sheet:
//	    cubic: {p1: [0.32, 0.72], p2: [0, 1]}
//	  bounce:
//	    spring: {mass: 1, stiffness: 180, damping-ratio: 0.4}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// FileName is the catalog file looked up by LoadOptional.
const FileName = "motion.yaml"

// SchemaMajor is the catalog schema major version this package reads.
const SchemaMajor = "v1"

// DefaultDuration is used for simple and cubic curves when the catalog does
// not set one.
const DefaultDuration = 300 * time.Millisecond

// File represents a motion.yaml catalog before validation.
type File struct {
	Version  string           `yaml:"version,omitempty"`
	Defaults Defaults         `yaml:"defaults,omitempty"`
	Curves   map[string]Curve `yaml:"curves,omitempty"`

	path string
}

// Defaults contains catalog-wide settings.
type Defaults struct {
	Duration string  `yaml:"duration,omitempty"`
	Epsilon  float64 `yaml:"epsilon,omitempty"`
}

// Catalog contains resolved, validated curves.
type Catalog struct {
	Path     string
	Version  string
	Duration time.Duration
	Epsilon  float64

	curves map[string]animation.Curve
}

// LoadOptional reads motion.yaml from dir if present. A missing file yields
// an empty catalog.
func LoadOptional(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	f, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{path: path}, nil
		}
		return nil, err
	}
	return f, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &motionerrors.CurveError{
			Op:     "config.Load",
			Kind:   motionerrors.KindConfig,
			Reason: "failed to read catalog",
			Source: path,
			Err:    err,
		}
	}
	f, err := Parse(data)
	if err != nil {
		var ce *motionerrors.CurveError
		if errors.As(err, &ce) {
			switch {
			case ce.Source == "":
				ce.Source = path
			case strings.HasPrefix(ce.Source, "line "):
				ce.Source = path + ":" + strings.TrimPrefix(ce.Source, "line ")
			}
		}
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse decodes catalog YAML. Curve records are validated while decoding.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		var ce *motionerrors.CurveError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &motionerrors.CurveError{
			Op:     "config.Parse",
			Kind:   motionerrors.KindConfig,
			Reason: "failed to parse catalog",
			Err:    err,
		}
	}
	return &f, nil
}

// Resolve validates the schema version and defaults and returns the catalog.
func (f *File) Resolve() (*Catalog, error) {
	const op = "config.File.Resolve"
	invalid := func(field, reason string, value any) error {
		return &motionerrors.CurveError{
			Op:     op,
			Kind:   motionerrors.KindConfig,
			Field:  field,
			Reason: reason,
			Value:  value,
			Source: f.path,
		}
	}

	version := strings.TrimSpace(f.Version)
	if version == "" {
		version = SchemaMajor + ".0.0"
	}
	if !semver.IsValid(version) {
		return nil, invalid("version", "must be a semantic version", version)
	}
	if semver.Major(version) != SchemaMajor {
		return nil, invalid("version", fmt.Sprintf("unsupported major version (want %s)", SchemaMajor), version)
	}

	duration := DefaultDuration
	if d := strings.TrimSpace(f.Defaults.Duration); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, invalid("defaults.duration", "must be a duration such as 300ms", d)
		}
		if parsed <= 0 {
			return nil, invalid("defaults.duration", "must be > 0", d)
		}
		duration = parsed
	}

	epsilon := f.Defaults.Epsilon
	if epsilon < 0 {
		return nil, invalid("defaults.epsilon", "must be >= 0", epsilon)
	}
	if epsilon == 0 {
		epsilon = animation.DefaultEpsilon
	}

	curves := make(map[string]animation.Curve, len(f.Curves))
	for name, c := range f.Curves {
		if strings.TrimSpace(name) == "" {
			return nil, invalid("curves", "contains an empty name", name)
		}
		curve, err := c.withEpsilon(epsilon)
		if err != nil {
			return nil, invalid("curves."+name, err.Error(), epsilon)
		}
		curves[name] = curve
	}

	return &Catalog{
		Path:     f.path,
		Version:  version,
		Duration: duration,
		Epsilon:  epsilon,
		curves:   curves,
	}, nil
}

// Lookup returns the named curve.
func (c *Catalog) Lookup(name string) (animation.Curve, bool) {
	curve, ok := c.curves[name]
	return curve, ok
}

// Names returns the catalog's curve names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.curves))
	for name := range c.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve finds a curve by catalog name, easing name, or inline record, in
// that order. Inline springs without an epsilon take the catalog's. A nil
// catalog only resolves easings and inline records.
func (c *Catalog) Resolve(ref string) (animation.Curve, error) {
	if c != nil {
		if curve, ok := c.Lookup(ref); ok {
			return curve, nil
		}
	}
	if e, err := animation.ParseEasing(ref); err == nil {
		return animation.Simple(e), nil
	}
	if !strings.ContainsAny(ref, ":{") {
		return animation.Curve{}, &motionerrors.CurveError{
			Op:     "config.Catalog.Resolve",
			Kind:   motionerrors.KindUnknownEasing,
			Reason: fmt.Sprintf("no curve or easing named %q", ref),
		}
	}
	inline, err := parseCurve([]byte(ref))
	if err != nil || c == nil {
		return inline.Curve, err
	}
	return inline.withEpsilon(c.Epsilon)
}

// FindProjectRoot walks up from the current directory to the nearest
// directory containing motion.yaml or go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or go.mod found", FileName)
		}
		dir = parent
	}
}
