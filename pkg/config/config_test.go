package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

const sampleCatalog = `version: v1.2.0
defaults:
  duration: 250ms
  epsilon: 0.0005
curves:
  fade: ease-in-out
  sheet:
    cubic: {p1: [0.32, 0.72], p2: [0, 1]}
  bounce:
    spring: {mass: 1, stiffness: 180, damping-ratio: 0.4}
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadOptionalMissing(t *testing.T) {
	f, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	cat, err := f.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cat.Duration != DefaultDuration || cat.Epsilon != animation.DefaultEpsilon || cat.Version != "v1.0.0" {
		t.Errorf("defaults = %+v", cat)
	}
	if len(cat.Names()) != 0 {
		t.Errorf("Names() = %v", cat.Names())
	}
}

func TestLoadOptionalCatalog(t *testing.T) {
	dir := writeCatalog(t, sampleCatalog)
	f, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	cat, err := f.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cat.Duration != 250*time.Millisecond || cat.Epsilon != 0.0005 || cat.Version != "v1.2.0" {
		t.Errorf("catalog = %+v", cat)
	}
	if got := strings.Join(cat.Names(), ","); got != "bounce,fade,sheet" {
		t.Errorf("Names() = %s", got)
	}
	if cat.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q", cat.Path)
	}

	tests := []struct {
		name string
		kind animation.CurveKind
	}{
		{"fade", animation.KindSimple},
		{"sheet", animation.KindCubic},
		{"bounce", animation.KindSpring},
	}
	for _, tt := range tests {
		c, ok := cat.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missing", tt.name)
			continue
		}
		if c.Kind() != tt.kind {
			t.Errorf("Lookup(%q) kind = %v, want %v", tt.name, c.Kind(), tt.kind)
		}
	}
	if _, ok := cat.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
}

func TestLoadInvalidCurveNamesSource(t *testing.T) {
	dir := writeCatalog(t, "curves:\n  broken:\n    spring: {mass: -1, stiffness: 100}\n")
	_, err := LoadOptional(dir)
	if !errors.Is(err, motionerrors.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	var ce *motionerrors.CurveError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CurveError, got %T", err)
	}
	if want := filepath.Join(dir, FileName) + ":3"; ce.Source != want {
		t.Errorf("Source = %q, want %q", ce.Source, want)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("curves: [unterminated"))
	if !errors.Is(err, motionerrors.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestResolveValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"bad version", "version: one", "version"},
		{"major two", "version: v2.0.0", "version"},
		{"bad duration", "defaults: {duration: soon}", "defaults.duration"},
		{"zero duration", "defaults: {duration: 0s}", "defaults.duration"},
		{"negative epsilon", "defaults: {epsilon: -1}", "defaults.epsilon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			_, err = f.Resolve()
			if !errors.Is(err, motionerrors.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			var ce *motionerrors.CurveError
			if errors.As(err, &ce) && ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestCatalogResolve(t *testing.T) {
	f, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := f.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref  string
		kind animation.CurveKind
	}{
		{"sheet", animation.KindCubic},
		{"ease-out-bounce", animation.KindSimple},
		{"spring: {mass: 1, stiffness: 100, damping: 20}", animation.KindSpring},
		{`{"cubic": {"p1": [0.4, 0], "p2": [0.2, 1]}}`, animation.KindCubic},
	}
	for _, tt := range tests {
		c, err := cat.Resolve(tt.ref)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.ref, err)
			continue
		}
		if c.Kind() != tt.kind {
			t.Errorf("Resolve(%q) kind = %v, want %v", tt.ref, c.Kind(), tt.kind)
		}
	}

	if _, err := cat.Resolve("nope"); !errors.Is(err, motionerrors.ErrUnknownEasing) {
		t.Errorf("Resolve(nope): expected ErrUnknownEasing, got %v", err)
	}

	var none *Catalog
	if c, err := none.Resolve("linear"); err != nil || c.Kind() != animation.KindSimple {
		t.Errorf("nil catalog Resolve = %v, %v", c, err)
	}
}

func TestResolveAppliesCatalogEpsilon(t *testing.T) {
	f, err := Parse([]byte(`defaults:
  epsilon: 0.1
curves:
  loose:
    spring: {mass: 1, stiffness: 100, damping-ratio: 0.3}
  tight:
    spring: {mass: 1, stiffness: 100, damping-ratio: 0.3, epsilon: 0.002}
`))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := f.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	springOf := func(c animation.Curve) animation.SpringCurve {
		t.Helper()
		s, ok := c.SpringCurve()
		if !ok {
			t.Fatalf("%v is not a spring", c)
		}
		return s
	}

	loose, _ := cat.Lookup("loose")
	tight, _ := cat.Lookup("tight")
	if got := springOf(loose).Epsilon(); got != 0.1 {
		t.Errorf("loose epsilon = %v, want catalog default 0.1", got)
	}
	if got := springOf(tight).Epsilon(); got != 0.002 {
		t.Errorf("tight epsilon = %v, want its own 0.002", got)
	}
	if springOf(loose).Duration() >= springOf(tight).Duration() {
		t.Errorf("catalog epsilon did not shorten settling: %v >= %v",
			springOf(loose).Duration(), springOf(tight).Duration())
	}
	if d := loose.Duration(0); !animation.Settled(loose, d, 0, 0) {
		t.Errorf("loose spring not settled at its duration %v", d)
	}

	inline, err := cat.Resolve("spring: {mass: 1, stiffness: 100, damping: 6}")
	if err != nil {
		t.Fatal(err)
	}
	if got := springOf(inline).Epsilon(); got != 0.1 {
		t.Errorf("inline epsilon = %v, want catalog default 0.1", got)
	}
	var none *Catalog
	inline, err = none.Resolve("spring: {mass: 1, stiffness: 100, damping: 6}")
	if err != nil {
		t.Fatal(err)
	}
	if got := springOf(inline).Epsilon(); got != animation.DefaultEpsilon {
		t.Errorf("inline epsilon without catalog = %v", got)
	}
}
