package plot

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/go-drift/motion/pkg/animation"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if got := FormatForPath("out/curve.tiff"); got != FormatTIFF {
		t.Errorf("FormatForPath = %q", got)
	}
	if got := FormatForPath("curve"); got != FormatPNG {
		t.Errorf("FormatForPath without extension = %q", got)
	}
}

func TestRenderDrawsSeries(t *testing.T) {
	img := Render([]Series{{Label: "linear", Curve: animation.Simple(animation.Linear)}}, Options{
		Width:  200,
		Height: 120,
		Total:  time.Second,
	})
	if img.Bounds() != image.Rect(0, 0, 200, 120) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(199, 0); got != background {
		t.Errorf("corner = %v, want background", got)
	}

	// The linear series passes through the middle of the plot area.
	c := chart{plot: image.Rect(margin, margin/2, 200-margin/2, 120-margin), span: time.Second, minY: -0.05, maxY: 1.05}
	x, y := int(c.x(500*time.Millisecond)), int(c.y(0.5))
	found := false
	for dy := -2; dy <= 2 && !found; dy++ {
		if img.RGBAAt(x, y+dy) != background {
			found = true
		}
	}
	if !found {
		t.Errorf("no stroke near (%d, %d)", x, y)
	}
}

func TestRenderSpringSpan(t *testing.T) {
	spring, err := animation.NewSpringCurve(animation.BouncySpring())
	if err != nil {
		t.Fatal(err)
	}
	img := Render([]Series{
		{Label: "ease", Curve: animation.Simple(animation.EaseInOut)},
		{Label: "bouncy", Curve: animation.Spring(spring)},
	}, DefaultOptions())
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 400 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestEncodeFormats(t *testing.T) {
	img := Render([]Series{{Label: "cubic", Curve: animation.Cubic(animation.EaseCurve)}}, Options{Width: 120, Height: 100})
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for format, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		got, err := decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if got.Bounds() != img.Bounds() {
			t.Errorf("%s bounds = %v, want %v", format, got.Bounds(), img.Bounds())
		}
	}
	if err := Encode(&bytes.Buffer{}, img, Format("gif")); err == nil {
		t.Error("expected error for unknown format")
	}
}
