package carousel_test

import (
	"testing"
	"time"

	"easein-studio-backend/pkg/pagefx/carousel"
	"easein-studio-backend/pkg/pagefx/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, carousel.Wrap(5, 0))
	assert.Equal(t, 0, carousel.Wrap(-3, -1))
	assert.Equal(t, 2, carousel.Wrap(7, 5))
	assert.Equal(t, 4, carousel.Wrap(-1, 5))
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 1, carousel.VisibleCount(390))
	assert.Equal(t, 1, carousel.VisibleCount(600))
	assert.Equal(t, 2, carousel.VisibleCount(1024))
	assert.Equal(t, 4, carousel.VisibleCount(1440))
}

func TestLoop(t *testing.T) {
	t.Run("Index after k advances is k mod n", func(t *testing.T) {
		for n := 1; n <= 7; n++ {
			l := carousel.NewLoop(n, 1440)
			for k := 1; k <= 3*n+2; k++ {
				m := l.Next()
				if m.NeedsSnap {
					l.Snap()
				}
				require.Equal(t, k%n, l.Index(), "n=%d k=%d", n, k)
			}
		}
	})

	t.Run("Slides onto clones then snaps back without animation", func(t *testing.T) {
		l := carousel.NewLoop(3, 800) // two visible
		l.Next()
		l.Next()
		m := l.Next()

		assert.Equal(t, 3, m.Position)
		assert.True(t, m.Animate)
		assert.True(t, m.NeedsSnap)
		assert.InDelta(t, -150, m.OffsetPct, 1e-12)

		snap := l.Snap()
		assert.Equal(t, 0, snap.Position)
		assert.False(t, snap.Animate)
		assert.Equal(t, 0.0, snap.OffsetPct)
	})

	t.Run("Empty loop is a no-op", func(t *testing.T) {
		l := carousel.NewLoop(0, 1440)
		assert.Equal(t, carousel.Move{}, l.Next())
		assert.Equal(t, 0, l.Index())
	})

	t.Run("Resize changes step width", func(t *testing.T) {
		l := carousel.NewLoop(6, 1440)
		l.Next()
		m := l.Resize(400)
		assert.InDelta(t, -100, m.OffsetPct, 1e-12)
		assert.False(t, m.Animate)
	})
}

func TestTrack(t *testing.T) {
	tr := &carousel.Track{Step: carousel.StripStep, ScrollWidth: 1000, ClientWidth: 390}

	assert.Equal(t, 260.0, tr.Next())
	assert.Equal(t, 520.0, tr.Next())
	assert.Equal(t, 610.0, tr.Next(), "clamped to max scroll")
	assert.Equal(t, 0.0, tr.Next(), "wraps at the end")

	tr.ScrollLeft = 601
	assert.Equal(t, 0.0, tr.Next(), "within 10px of the end wraps")

	assert.Equal(t, 0.0, tr.Prev())
}

func TestDrift(t *testing.T) {
	d := carousel.NewDrift(1200)
	assert.Equal(t, 300.0, d.ScrollLeft)

	for i := 0; i < 99; i++ {
		d.Tick()
	}
	assert.Equal(t, 597.0, d.ScrollLeft)
	assert.Equal(t, 0.0, d.Tick())

	d.Paused = true
	assert.Equal(t, 0.0, d.Tick())
}

func TestAutoplay(t *testing.T) {
	t.Run("Advances on interval and pauses on interaction", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		steps := 0
		a := carousel.NewAutoplay(clk, carousel.StripInterval, carousel.IdleRestart, true, func() { steps++ })
		defer a.Close()

		clk.Advance(carousel.StripInterval)
		assert.Equal(t, 1, steps)

		a.Interact()
		assert.False(t, a.Running())
		clk.Advance(3 * time.Second)
		assert.Equal(t, 1, steps)

		// Second interaction re-arms the idle delay
		a.Interact()
		clk.Advance(3 * time.Second)
		assert.False(t, a.Running())
		clk.Advance(500 * time.Millisecond)
		assert.True(t, a.Running())

		clk.Advance(carousel.StripInterval)
		assert.Equal(t, 2, steps)
	})

	t.Run("Disabled by media query", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		steps := 0
		a := carousel.NewAutoplay(clk, time.Second, carousel.IdleRestart, false, func() { steps++ })

		clk.Advance(5 * time.Second)
		assert.Equal(t, 0, steps)

		a.SetEnabled(true)
		clk.Advance(2 * time.Second)
		assert.Equal(t, 2, steps)

		a.SetEnabled(false)
		clk.Advance(5 * time.Second)
		assert.Equal(t, 2, steps)
		assert.Equal(t, 0, clk.Pending())
	})

	t.Run("Close releases real timers", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		a := carousel.NewAutoplay(clock.Real(), time.Hour, time.Hour, true, func() {})
		a.Interact()
		a.Close()
		a.Start()
		assert.False(t, a.Running())
	})
}

func TestReel(t *testing.T) {
	t.Run("Needs two cards", func(t *testing.T) {
		_, err := carousel.NewReel(clock.NewFake(epoch), 1, 0, nil)
		assert.ErrorIs(t, err, carousel.ErrTooFewCards)
	})

	t.Run("Rotates roles on interval, pauses on hover", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		var seen []carousel.Roles
		r, err := carousel.NewReel(clk, 3, 0, func(roles carousel.Roles) { seen = append(seen, roles) })
		require.NoError(t, err)
		defer r.Close()

		clk.Advance(carousel.ReelInterval)
		assert.Equal(t, carousel.Roles{Active: 1, Next: 2, Back: 0}, r.Roles())

		r.Hover()
		clk.Advance(3 * carousel.ReelInterval)
		assert.Len(t, seen, 1)

		r.Leave()
		clk.Advance(carousel.ReelInterval)
		assert.Equal(t, carousel.Roles{Active: 2, Next: 0, Back: 1}, r.Roles())

		clk.Advance(time.Second)
		assert.Equal(t, carousel.Roles{Active: 0, Next: 1, Back: 2}, r.Click())
		clk.Advance(3 * time.Second)
		assert.Len(t, seen, 3, "click restarts the interval")
	})
}
