// Package preview animates curves in a terminal.
//
// Each track is drawn as a labelled lane with a marker that moves from the
// left edge (progress 0) to a target column (progress 1). Overshooting curves
// move the marker past the target. The preview owns the frame loop: it ticks
// every track once per frame and stops when all tracks are finished or the
// user presses q, Escape or Ctrl-C.
package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/pkg/animation"
)

// Track is one animated curve.
type Track struct {
	Label string
	State *animation.AnimationState
}

// Preview draws tracks onto a tcell screen.
type Preview struct {
	screen tcell.Screen
	tracks []Track

	labelWidth int
	style      tcell.Style
	markStyle  tcell.Style
	dimStyle   tcell.Style
}

// New creates a preview for screen. The screen must already be initialized.
func New(screen tcell.Screen, tracks []Track) *Preview {
	width := 0
	for _, t := range tracks {
		width = max(width, len(t.Label))
	}
	return &Preview{
		screen:     screen,
		tracks:     tracks,
		labelWidth: width,
		style:      tcell.StyleDefault,
		markStyle:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		dimStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Finished reports whether every track is finished.
func (p *Preview) Finished() bool {
	for _, t := range p.tracks {
		if !t.State.IsFinished() {
			return false
		}
	}
	return true
}

// Frame ticks every track to now and draws one frame. It does not call Show.
func (p *Preview) Frame(now time.Time) {
	p.screen.Clear()
	w, _ := p.screen.Size()

	// lane layout: label, space, track of laneWidth cells, space, value
	const valueWidth = 8
	laneStart := p.labelWidth + 2
	laneWidth := w - laneStart - valueWidth - 1
	if laneWidth < 4 {
		laneWidth = 4
	}
	// Leave headroom past the target for overshoot.
	target := laneStart + laneWidth*4/5

	p.puts(0, 0, "q to quit", p.dimStyle)
	for i, t := range p.tracks {
		y := 2 + 2*i
		progress := t.State.Tick(now)

		p.puts(0, y, t.Label, p.style)
		for x := laneStart; x < laneStart+laneWidth; x++ {
			p.screen.SetContent(x, y, '·', nil, p.dimStyle)
		}
		p.screen.SetContent(target, y, '|', nil, p.dimStyle)

		col := laneStart + int(progress*float64(target-laneStart)+0.5)
		col = max(laneStart, min(col, laneStart+laneWidth-1))
		p.screen.SetContent(col, y, '●', nil, p.markStyle)

		status := fmt.Sprintf("%6.3f", progress)
		if t.State.IsFinished() {
			status += " ✓"
		}
		p.puts(laneStart+laneWidth+1, y, status, p.style)
	}
}

func (p *Preview) puts(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run drives frames at fps until all tracks finish, the user quits, or ctx
// is cancelled. It returns ctx.Err() on cancellation and nil otherwise.
// linger keeps the final frame on screen after the tracks finish.
func (p *Preview) Run(ctx context.Context, fps int, linger time.Duration) error {
	if fps <= 0 {
		fps = 60
	}

	quit := make(chan struct{})
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var doneAt time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case now := <-ticker.C:
			p.Frame(now)
			p.screen.Show()
			if p.Finished() {
				if doneAt.IsZero() {
					doneAt = now
				}
				if now.Sub(doneAt) >= linger {
					return nil
				}
			}
		}
	}
}
