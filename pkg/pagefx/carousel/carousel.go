// Package carousel implements the index arithmetic and timers of the
// site's carousels: the cloned showcase loop, pixel scroll tracks, the
// endless drift strip and the stacked card reel.
package carousel

import (
	"math"
	"time"
)

const (
	LoopInterval   = 4500 * time.Millisecond
	SnapDelay      = 720 * time.Millisecond // just over the 0.7s transition
	StripInterval  = 2800 * time.Millisecond
	IdleRestart    = 3500 * time.Millisecond
	StripStep      = 260.0 // mobile work strip
	PortfolioStep  = 300.0 // portfolio prev/next buttons
	endTolerancePx = 10.0
)

// Wrap maps i into [0, n). It returns 0 when n <= 0.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// VisibleCount is how many cards fit the viewport width.
func VisibleCount(width float64) int {
	switch {
	case width <= 600:
		return 1
	case width <= 1024:
		return 2
	default:
		return 4
	}
}

// Move is one transform update of a loop track.
type Move struct {
	Position  int     // raw index into the doubled track
	OffsetPct float64 // translateX in percent
	Animate   bool
	NeedsSnap bool // schedule Snap after SnapDelay
}

// Loop is a track of n originals followed by n clones. Advancing past the
// originals lands on the clones, and Snap jumps back by n without animation.
type Loop struct {
	n        int
	position int
	visible  int
}

func NewLoop(n int, width float64) *Loop {
	if n < 0 {
		n = 0
	}
	return &Loop{n: n, visible: VisibleCount(width)}
}

// Len is the number of original items.
func (l *Loop) Len() int { return l.n }

// Index is the logical item shown first, always in [0, n).
func (l *Loop) Index() int { return Wrap(l.position, l.n) }

// Next advances one card. With no items it is a no-op.
func (l *Loop) Next() Move {
	if l.n == 0 {
		return Move{}
	}
	l.position++
	m := l.move(true)
	m.NeedsSnap = l.position >= l.n
	return m
}

// Snap brings the position back onto the originals without animation.
func (l *Loop) Snap() Move {
	if l.n > 0 && l.position >= l.n {
		l.position -= l.n
	}
	return l.move(false)
}

// Resize recomputes the visible count; the track jumps without animation.
func (l *Loop) Resize(width float64) Move {
	l.visible = VisibleCount(width)
	return l.move(false)
}

func (l *Loop) move(animate bool) Move {
	offset := 0.0
	if l.position != 0 {
		offset = -float64(l.position) * 100 / float64(l.visible)
	}
	return Move{
		Position:  l.position,
		OffsetPct: offset,
		Animate:   animate,
	}
}

// Track is a horizontally scrolling strip measured in pixels.
type Track struct {
	Step        float64
	ScrollLeft  float64
	ScrollWidth float64
	ClientWidth float64
}

// MaxScroll is the furthest ScrollLeft can go.
func (t *Track) MaxScroll() float64 {
	return math.Max(0, t.ScrollWidth-t.ClientWidth)
}

// Next scrolls one step, or back to the start when within 10px of the end.
func (t *Track) Next() float64 {
	max := t.MaxScroll()
	if t.ScrollLeft+endTolerancePx >= max {
		t.ScrollLeft = 0
	} else {
		t.ScrollLeft = math.Min(t.ScrollLeft+t.Step, max)
	}
	return t.ScrollLeft
}

// Prev scrolls one step back, stopping at the start.
func (t *Track) Prev() float64 {
	t.ScrollLeft = math.Max(0, t.ScrollLeft-t.Step)
	return t.ScrollLeft
}

// DriftSpeed is the per-frame scroll of the endless portfolio strip.
const DriftSpeed = 3.0

// Drift is a doubled strip that scrolls left every frame and wraps at the
// halfway point, where the copy lines up with the original.
type Drift struct {
	Speed       float64
	ScrollLeft  float64
	ScrollWidth float64
	Paused      bool
}

// NewDrift starts a quarter of the way into the strip.
func NewDrift(scrollWidth float64) *Drift {
	return &Drift{Speed: DriftSpeed, ScrollWidth: scrollWidth, ScrollLeft: scrollWidth / 4}
}

// Tick advances one frame unless paused.
func (d *Drift) Tick() float64 {
	if d.Paused {
		return d.ScrollLeft
	}
	d.ScrollLeft += d.Speed
	if d.ScrollLeft >= d.ScrollWidth/2 {
		d.ScrollLeft = 0
	}
	return d.ScrollLeft
}
