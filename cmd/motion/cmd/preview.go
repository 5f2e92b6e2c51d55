package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/cmd/motion/internal/preview"
	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Animate curves in the terminal",
		Long: `Animate one or more curves side by side in the terminal. Each curve
moves a marker from the left edge to its target column. The preview exits
once every curve has finished, or when q, Escape or Ctrl-C is pressed.

Flags:
  --duration D   Duration of simple and cubic curves
  --fps N        Frame rate (default: 60)
  --linger D     Keep the final frame on screen (default: 1s)`,
		Usage: "motion preview <curve>... [--duration D] [--fps N] [--linger D]",
		Run:   runPreview,
	})
}

func runPreview(args []string) (err error) {
	parsed, err := parseArgs(args, []string{"duration", "fps", "linger"}, nil)
	if err != nil {
		return err
	}
	if len(parsed.positional) == 0 {
		return fmt.Errorf("preview needs at least one curve\n\nUsage: motion preview <curve>...")
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	duration, err := parsed.duration("duration", cat.Duration)
	if err != nil {
		return err
	}
	fps, err := parsed.count("fps", 60)
	if err != nil {
		return err
	}
	linger, err := parsed.duration("linger", time.Second)
	if err != nil {
		return err
	}

	curves := make([]animation.Curve, 0, len(parsed.positional))
	for _, ref := range parsed.positional {
		curve, err := cat.Resolve(ref)
		if err != nil {
			return err
		}
		curves = append(curves, curve)
	}

	defer motionerrors.RecoverTo("motion.preview", &err)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	start := animation.Now()
	tracks := make([]preview.Track, len(curves))
	for i, curve := range curves {
		state, err := animation.NewAnimationStateAt(curve, duration, start)
		if err != nil {
			return err
		}
		tracks[i] = preview.Track{Label: parsed.positional[i], State: state}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = preview.New(screen, tracks).Run(ctx, fps, linger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
