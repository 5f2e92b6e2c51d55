// Package plot renders curve trajectories to raster images.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"

	"github.com/go-drift/motion/pkg/animation"
)

// Format is an output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat parses a format name. "tif" is accepted for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unknown image format %q (use png, bmp, or tiff)", name)
	}
}

// FormatForPath picks the format from a file extension, defaulting to PNG.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatPNG
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}

// Series is one curve to draw.
type Series struct {
	Label string
	Curve animation.Curve
}

// Options controls the chart layout.
type Options struct {
	Width  int
	Height int
	// Total is the duration of simple and cubic curves.
	Total time.Duration
	// Span is the time axis length. Zero uses the longest series duration.
	Span time.Duration
}

// DefaultOptions returns a 640x400 chart for 300ms curves.
func DefaultOptions() Options {
	return Options{Width: 640, Height: 400, Total: 300 * time.Millisecond}
}

// Palette cycles through these colors, one per series.
var Palette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
}

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	axisColor  = color.RGBA{0x40, 0x40, 0x40, 0xff}
	guideColor = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	textColor  = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

const margin = 40

// chart maps time and progress onto pixel coordinates.
type chart struct {
	plot       image.Rectangle
	span       time.Duration
	minY, maxY float64
}

func (c chart) x(elapsed time.Duration) float64 {
	return float64(c.plot.Min.X) + float64(c.plot.Dx())*float64(elapsed)/float64(c.span)
}

func (c chart) y(progress float64) float64 {
	frac := (progress - c.minY) / (c.maxY - c.minY)
	return float64(c.plot.Max.Y) - float64(c.plot.Dy())*frac
}

// Render draws progress over time for each series, with guides at 0 and 1,
// a marker at each spring's settling time, and a legend.
func Render(series []Series, opts Options) *image.RGBA {
	if opts.Width <= 2*margin {
		opts.Width = DefaultOptions().Width
	}
	if opts.Height <= 2*margin {
		opts.Height = DefaultOptions().Height
	}
	if opts.Total <= 0 {
		opts.Total = DefaultOptions().Total
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	c := chart{
		plot: image.Rect(margin, margin/2, opts.Width-margin/2, opts.Height-margin),
		span: opts.Span,
		minY: 0,
		maxY: 1,
	}
	if c.span <= 0 {
		for _, s := range series {
			if d := s.Curve.Duration(opts.Total); d > c.span && d != animation.Forever {
				c.span = d
			}
		}
		if c.span <= 0 {
			c.span = opts.Total
		}
	}

	samples := make([][]float64, len(series))
	for i, s := range series {
		samples[i] = make([]float64, c.plot.Dx()+1)
		for px := range samples[i] {
			elapsed := time.Duration(float64(c.span) * float64(px) / float64(c.plot.Dx()))
			p := animation.Progress(s.Curve, elapsed, opts.Total)
			samples[i][px] = p
			if !math.IsNaN(p) {
				c.minY = math.Min(c.minY, p)
				c.maxY = math.Max(c.maxY, p)
			}
		}
	}
	pad := (c.maxY - c.minY) * 0.05
	c.minY -= pad
	c.maxY += pad

	hline(img, c.plot.Min.X, c.plot.Max.X, int(math.Round(c.y(1))), guideColor)
	hline(img, c.plot.Min.X, c.plot.Max.X, int(math.Round(c.y(0))), axisColor)
	vline(img, c.plot.Min.X, c.plot.Min.Y, c.plot.Max.Y, axisColor)

	face := basicfont.Face7x13
	label(img, face, 4, int(math.Round(c.y(1)))+4, "1", textColor)
	label(img, face, 4, int(math.Round(c.y(0)))+4, "0", textColor)
	label(img, face, c.plot.Min.X, opts.Height-margin/2+4, "0", textColor)
	spanText := c.span.String()
	label(img, face, c.plot.Max.X-font.MeasureString(face, spanText).Ceil(), opts.Height-margin/2+4, spanText, textColor)

	for i, s := range series {
		col := Palette[i%len(Palette)]
		if s.Curve.Kind() == animation.KindSpring {
			if d := s.Curve.Duration(opts.Total); d < c.span {
				x := int(math.Round(c.x(d)))
				for y := c.plot.Min.Y; y < c.plot.Max.Y; y += 4 {
					img.SetRGBA(x, y, col)
				}
			}
		}
		stroke(img, c, samples[i], col)
		label(img, face, c.plot.Min.X+8, c.plot.Min.Y+14*(i+1), s.Label, col)
	}
	return img
}

// stroke rasterizes a polyline through samples as a 2px wide band.
func stroke(img *image.RGBA, c chart, samples []float64, col color.RGBA) {
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	const half = 1.0
	for px := 1; px < len(samples); px++ {
		y0, y1 := samples[px-1], samples[px]
		if math.IsNaN(y0) || math.IsNaN(y1) {
			continue
		}
		ax, ay := float64(c.plot.Min.X+px-1), c.y(y0)
		bx, by := float64(c.plot.Min.X+px), c.y(y1)
		dx, dy := bx-ax, by-ay
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		r.MoveTo(float32(ax+nx), float32(ay+ny))
		r.LineTo(float32(bx+nx), float32(by+ny))
		r.LineTo(float32(bx-nx), float32(by-ny))
		r.LineTo(float32(ax-nx), float32(ay-ny))
		r.ClosePath()
	}
	r.Draw(img, b, image.NewUniform(col), image.Point{})
}

func hline(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, col)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, col)
	}
}

func label(img *image.RGBA, face font.Face, x, y int, text string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
