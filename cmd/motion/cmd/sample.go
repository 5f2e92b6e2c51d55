package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// springPreviewCap bounds the time axis for springs that never settle.
const springPreviewCap = 5 * time.Second

func init() {
	RegisterCommand(&Command{
		Name:  "sample",
		Short: "Print a progress table for a curve",
		Long: `Sample a curve at evenly spaced times and print elapsed time,
progress, velocity (progress per second) and whether the animation is done.

Simple and cubic curves run for --duration (default: the catalog default,
300ms without a catalog). Springs run until they settle.

Flags:
  --duration D   Duration of simple and cubic curves (e.g. 250ms)
  --steps N      Number of intervals (default: 10)`,
		Usage: "motion sample <curve> [--duration D] [--steps N]",
		Run:   runSample,
	})
}

func runSample(args []string) error {
	parsed, err := parseArgs(args, []string{"duration", "steps"}, nil)
	if err != nil {
		return err
	}
	if len(parsed.positional) != 1 {
		return fmt.Errorf("sample needs exactly one curve\n\nUsage: motion sample <curve> [--duration D] [--steps N]")
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	curve, err := cat.Resolve(parsed.positional[0])
	if err != nil {
		return err
	}
	duration, err := parsed.duration("duration", cat.Duration)
	if err != nil {
		return err
	}
	steps, err := parsed.count("steps", 10)
	if err != nil {
		return err
	}

	return writeSamples(curve, duration, steps)
}

func writeSamples(curve animation.Curve, duration time.Duration, steps int) error {
	span := curve.Duration(duration)
	fmt.Fprintf(stdout, "curve:    %s (%s)\n", curve, curve.Kind())
	if span == animation.Forever {
		span = springPreviewCap
		fmt.Fprintf(stdout, "duration: never settles, showing %s\n", span)
	} else {
		fmt.Fprintf(stdout, "duration: %s\n", span)
	}
	fmt.Fprintln(stdout)

	start := time.Unix(0, 0)
	state, err := animation.NewAnimationStateAt(curve, duration, start)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%-10s  %9s  %9s  %s\n", "elapsed", "progress", "velocity", "done")
	for i := 0; i <= steps; i++ {
		elapsed := span * time.Duration(i) / time.Duration(steps)
		progress := state.Tick(start.Add(elapsed))
		done := animation.Settled(curve, elapsed, duration, 0)
		fmt.Fprintf(stdout, "%-10s  %9.4f  %9.4f  %t\n", elapsed, progress, state.Velocity(), done)
	}
	return nil
}
