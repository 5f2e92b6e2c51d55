package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/motion/cmd/motion/internal/plot"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Render curve trajectories to an image",
		Long: `Plot progress over time for one or more curves and write the chart
as PNG, BMP or TIFF. The format follows the output file extension unless
--format is given. Spring settling times are marked with a dotted line.

Flags:
  -o, --output FILE   Output file (default: curve.png)
  --format F          png, bmp or tiff
  --duration D        Duration of simple and cubic curves
  --width N           Image width in pixels (default: 640)
  --height N          Image height in pixels (default: 400)`,
		Usage: "motion plot <curve>... [-o FILE] [--format F] [--duration D] [--width N] [--height N]",
		Run:   runPlot,
	})
}

func runPlot(args []string) error {
	parsed, err := parseArgs(args,
		[]string{"output", "format", "duration", "width", "height"},
		map[string]string{"-o": "--output"})
	if err != nil {
		return err
	}
	if len(parsed.positional) == 0 {
		return fmt.Errorf("plot needs at least one curve\n\nUsage: motion plot <curve>... [-o FILE]")
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	opts := plot.DefaultOptions()
	if opts.Total, err = parsed.duration("duration", cat.Duration); err != nil {
		return err
	}
	if opts.Width, err = parsed.count("width", opts.Width); err != nil {
		return err
	}
	if opts.Height, err = parsed.count("height", opts.Height); err != nil {
		return err
	}

	output := parsed.values["output"]
	if output == "" {
		output = "curve.png"
	}
	format := plot.FormatForPath(output)
	if name, ok := parsed.values["format"]; ok {
		if format, err = plot.ParseFormat(name); err != nil {
			return err
		}
	}

	series := make([]plot.Series, 0, len(parsed.positional))
	for _, ref := range parsed.positional {
		curve, err := cat.Resolve(ref)
		if err != nil {
			return err
		}
		series = append(series, plot.Series{Label: ref, Curve: curve})
	}

	img := plot.Render(series, opts)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := plot.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s (%s, %dx%d)\n", output, format, opts.Width, opts.Height)
	return nil
}
