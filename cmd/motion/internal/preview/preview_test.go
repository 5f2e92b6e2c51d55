package preview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/pkg/animation"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return strings.TrimRight(string(runes), " ")
}

func newTrack(t *testing.T, label string, curve animation.Curve, d time.Duration, start time.Time) Track {
	t.Helper()
	s, err := animation.NewAnimationStateAt(curve, d, start)
	if err != nil {
		t.Fatal(err)
	}
	return Track{Label: label, State: s}
}

func TestFrameDrawsMarker(t *testing.T) {
	screen := newScreen(t)
	start := time.Unix(0, 0)
	p := New(screen, []Track{
		newTrack(t, "linear", animation.Simple(animation.Linear), 100*time.Millisecond, start),
		newTrack(t, "in", animation.Simple(animation.EaseInQuad), 100*time.Millisecond, start),
	})

	p.Frame(start.Add(50 * time.Millisecond))

	if got := readScreenLine(screen, 0, 2, 6); got != "linear" {
		t.Errorf("label = %q", got)
	}
	// laneStart 8, target 8 + 63*4/5 = 58; half progress lands on column 33.
	if ch, _, _, _ := screen.GetContent(33, 2); ch != '●' {
		t.Errorf("marker at 33 = %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(58, 2); ch != '|' {
		t.Errorf("target at 58 = %q", ch)
	}
	// ease-in-quad is at 0.25 when linear is at 0.5.
	if ch, _, _, _ := screen.GetContent(8+13, 4); ch != '●' {
		t.Errorf("ease-in marker = %q", ch)
	}
	if got := readScreenLine(screen, 73, 2, 8); got != "0.500" {
		t.Errorf("status = %q", got)
	}
	if p.Finished() {
		t.Error("finished halfway")
	}

	p.Frame(start.Add(time.Second))
	if ch, _, _, _ := screen.GetContent(58, 2); ch != '●' {
		t.Errorf("marker at target = %q", ch)
	}
	if got := readScreenLine(screen, 73, 2, 8); got != "1.000 ✓" {
		t.Errorf("finished status = %q", got)
	}
	if !p.Finished() {
		t.Error("not finished after duration")
	}
}

func TestRunStopsWhenFinished(t *testing.T) {
	screen := newScreen(t)
	p := New(screen, []Track{
		newTrack(t, "fast", animation.Simple(animation.EaseOut), 20*time.Millisecond, time.Now()),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx, 100, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.Finished() {
		t.Error("Run returned before the track finished")
	}
}

func TestRunQuitKey(t *testing.T) {
	screen := newScreen(t)
	p := New(screen, []Track{
		newTrack(t, "slow", animation.Simple(animation.Linear), time.Hour, time.Now()),
	})
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx, 60, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	screen := newScreen(t)
	p := New(screen, []Track{
		newTrack(t, "slow", animation.Simple(animation.Linear), time.Hour, time.Now()),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx, 60, 0); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v, want deadline exceeded", err)
	}
}
