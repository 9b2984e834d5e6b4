package motion_test

import (
	"math"
	"testing"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
	"easein-studio-backend/pkg/pagefx/motion"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestProgress(t *testing.T) {
	t.Run("Monotonic and clamped over the whole range", func(t *testing.T) {
		const doc, vh = 5400.0, 900.0
		prev := -1.0
		for s := -200.0; s <= doc+200; s += 7 {
			p := motion.Progress(s, doc, vh)
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 1.0)
			require.GreaterOrEqual(t, p, prev, "scrollY=%v", s)
			prev = p
		}
		assert.Equal(t, 1.0, motion.Progress(doc-vh, doc, vh))
	})

	t.Run("Page shorter than viewport", func(t *testing.T) {
		assert.Equal(t, 0.0, motion.Progress(100, 500, 900))
		assert.Equal(t, 0.0, motion.Progress(0, 900, 900))
	})
}

func TestEaseInOut(t *testing.T) {
	assert.Equal(t, 0.0, motion.EaseInOut(0))
	assert.InDelta(t, 0.5, motion.EaseInOut(0.5), 1e-12)
	assert.InDelta(t, 1.0, motion.EaseInOut(1), 1e-12)
	assert.InDelta(t, 0.125, motion.EaseInOut(0.25), 1e-12)
}

func TestCompute(t *testing.T) {
	t.Run("Top of page shows the full beam", func(t *testing.T) {
		f := motion.Compute(motion.Viewport{ScrollY: 0, DocHeight: 2000, Width: 1440, Height: 1000})

		assert.Equal(t, motion.ModeBeam, f.Mode)
		want := motion.Beam{LeftPct: 6, TopPct: 6, WidthVW: 28, HeightVH: 36, RotateDeg: -8, Opacity: 1}
		assert.Empty(t, cmp.Diff(want, f.Beam, approx))
		assert.Equal(t, 0.0, f.Trail.Opacity)
		assert.InDelta(t, 0.32, f.Lens.Opacity, 1e-12)
	})

	t.Run("Beam top is capped at 28 percent", func(t *testing.T) {
		f := motion.Compute(motion.Viewport{ScrollY: 1150, DocHeight: 12000, Width: 1440, Height: 800})
		require.Equal(t, motion.ModeBeam, f.Mode)
		assert.Equal(t, 28.0, f.Beam.TopPct)
	})

	t.Run("Trail halfway through travel", func(t *testing.T) {
		// p = 0.56 -> travel = 0.5
		v := motion.Viewport{ScrollY: 560, DocHeight: 2000, Width: 1440, Height: 1000}
		f := motion.Compute(v)

		assert.Equal(t, motion.ModeTrail, f.Mode)
		assert.InDelta(t, 0.5, f.Travel, 1e-9)
		assert.InDelta(t, 48.5, f.Trail.LeftPct, 1e-9)
		assert.InDelta(t, (120+560*0.35)/1000*100, f.Trail.TopPct, 1e-9)
		assert.InDelta(t, 16+0.5*1000*0.8, f.Trail.HeightPx, 1e-9)
		assert.InDelta(t, 0.8, f.Trail.Opacity, 1e-9)
		assert.InDelta(t, 0.2, f.Beam.Opacity, 1e-9)
	})

	t.Run("Beam keeps its collapse geometry in trail mode", func(t *testing.T) {
		v := motion.Viewport{DocHeight: 3000, Width: 1200, Height: 1000}
		v.ScrollY = motion.CollapseThreshold * v.MaxScroll()
		atCollapse := motion.Compute(v).Beam

		v.ScrollY = 0.2 * v.MaxScroll()
		later := motion.Compute(v).Beam

		assert.Empty(t, cmp.Diff(atCollapse, later, approx, cmpopts.IgnoreFields(motion.Beam{}, "Opacity")))
		assert.Less(t, later.Opacity, 1.0)
	})

	t.Run("Footer fade and final vanish", func(t *testing.T) {
		v := motion.Viewport{DocHeight: 2000, Width: 1440, Height: 1000}

		v.ScrollY = 970 // p = 0.97, fade = 0.5
		f := motion.Compute(v)
		assert.InDelta(t, 0.5, f.Trail.Opacity, 1e-9)
		assert.InDelta(t, 70, f.Trail.HeightPx, 1e-9)
		assert.InDelta(t, 5, f.Trail.RGBOffsetPx, 1e-9)
		assert.InDelta(t, 10, f.Trail.GlowBlurPx, 1e-9)
		assert.InDelta(t, 0.125, f.Trail.GlowAlpha, 1e-9)
		assert.InDelta(t, 4, f.Trail.ShiftXPx, 1e-9)

		v.ScrollY = 1000
		f = motion.Compute(v)
		assert.Equal(t, 0.0, f.Trail.Opacity)
		assert.Equal(t, 0.0, f.Trail.HeightPx)
	})

	t.Run("Opacities stay in range", func(t *testing.T) {
		v := motion.Viewport{DocHeight: 7000, Width: 390, Height: 844}
		for s := 0.0; s <= v.MaxScroll(); s += 13 {
			v.ScrollY = s
			f := motion.Compute(v)
			for _, o := range []float64{f.Beam.Opacity, f.Trail.Opacity, f.Lens.Opacity} {
				require.False(t, math.IsNaN(o))
				require.GreaterOrEqual(t, o, 0.0)
				require.LessOrEqual(t, o, 1.0)
			}
		}
	})
}

func TestSecondaryMappings(t *testing.T) {
	assert.InDelta(t, 50, motion.CTAGhostY(500), 1e-12)
	assert.InDelta(t, 0, motion.SectionGhostY(200, 400, 800), 1e-12)
	assert.InDelta(t, 20, motion.SectionGhostY(600, 400, 800), 1e-12)
	assert.InDelta(t, -20, motion.BackgroundParallax(900, 400, 800), 1e-12)
	assert.InDelta(t, 20, motion.BackgroundParallax(-400, 400, 800), 1e-12)

	scale, opacity, ok := motion.HeroReel(300)
	assert.True(t, ok)
	assert.InDelta(t, 0.95, scale, 1e-12)
	assert.InDelta(t, 0.7, opacity, 1e-12)
	_, _, ok = motion.HeroReel(700)
	assert.False(t, ok)

	dx, dy := motion.LensParallax(760, 400, 1440, 900)
	assert.InDelta(t, 1, dx, 1e-12)
	assert.InDelta(t, -1.25, dy, 1e-12)
}

func TestCursor(t *testing.T) {
	c := motion.Cursor{X: 120, Y: 45.5}
	assert.Equal(t, "translate(120px, 45.5px)", c.Transform())
	c.Pressed = true
	assert.Equal(t, "translate(120px, 45.5px) scale(0.86)", c.Transform())
}

func TestCoalescer(t *testing.T) {
	t.Run("Last scroll in a frame wins", func(t *testing.T) {
		var q motion.FrameQueue
		var frames []motion.Frame
		c := motion.NewCoalescer(&q, func(f motion.Frame) { frames = append(frames, f) })

		for _, s := range []float64{10, 200, 480} {
			c.Scroll(motion.Viewport{ScrollY: s, DocHeight: 2000, Height: 1000})
		}
		assert.Equal(t, 1, q.Len())
		assert.Equal(t, 1, q.Run())

		require.Len(t, frames, 1)
		assert.InDelta(t, 0.48, frames[0].Progress, 1e-12)

		c.Scroll(motion.Viewport{ScrollY: 1000, DocHeight: 2000, Height: 1000})
		q.Run()
		require.Len(t, frames, 2)
		assert.Equal(t, 1.0, frames[1].Progress)
	})

	t.Run("Clock frames fire once per interval and close cleanly", func(t *testing.T) {
		clk := clock.NewFake(time.Unix(0, 0))
		frames := motion.NewClockFrames(clk)
		renders := 0
		c := motion.NewCoalescer(frames, func(motion.Frame) { renders++ })

		c.Scroll(motion.Viewport{ScrollY: 1, DocHeight: 100, Height: 50})
		c.Scroll(motion.Viewport{ScrollY: 2, DocHeight: 100, Height: 50})
		clk.Advance(motion.FrameInterval)
		assert.Equal(t, 1, renders)

		c.Scroll(motion.Viewport{ScrollY: 3, DocHeight: 100, Height: 50})
		frames.Close()
		clk.Advance(time.Second)
		assert.Equal(t, 1, renders)
		assert.Equal(t, 0, clk.Pending())
	})
}
