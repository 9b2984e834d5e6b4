package widget_test

import (
	"testing"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
	"easein-studio-backend/pkg/pagefx/widget"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFAQ(t *testing.T) {
	f := widget.NewFAQ(3)
	assert.Equal(t, -1, f.Active())
	assert.Equal(t, 0, f.Toggle(0))
	assert.Equal(t, 2, f.Toggle(2), "opening one closes the other")
	assert.Equal(t, -1, f.Toggle(2))
	assert.Equal(t, -1, f.Toggle(7), "out of range is ignored")
}

func TestCounterText(t *testing.T) {
	assert.Equal(t, "0", widget.CounterText(120, 0, 0))
	assert.Equal(t, "60", widget.CounterText(120, 450*time.Millisecond, 0))
	assert.Equal(t, "120+", widget.CounterText(120, 900*time.Millisecond, 0))
	assert.Equal(t, "0", widget.CounterText(0, time.Second, 0))
}

func TestCounter(t *testing.T) {
	clk := clock.NewFake(epoch)
	var frames []string
	widget.StartCounter(clk, 50, 100*time.Millisecond, func(s string) { frames = append(frames, s) })

	clk.Advance(2 * time.Second)
	assert.Equal(t, "0", frames[0])
	assert.Equal(t, "50+", frames[len(frames)-1])
	assert.Len(t, frames, 10)
	assert.Equal(t, 0, clk.Pending())
}

func TestLightbox(t *testing.T) {
	clk := clock.NewFake(epoch)
	lb := widget.NewLightbox(clk, nil)

	assert.False(t, lb.Open("", "t", "d"))
	assert.True(t, lb.Open("https://cdn.example.com/reel.mp4", "Reel", "Showreel"))
	assert.True(t, lb.State().BodyLocked)

	lb.Close()
	st := lb.State()
	assert.False(t, st.Active)
	assert.Equal(t, "https://cdn.example.com/reel.mp4", st.Src, "source kept during the close transition")

	clk.Advance(widget.LightboxClearDelay)
	assert.Empty(t, lb.State().Src)
	assert.False(t, lb.State().Playing)

	t.Run("Reopen cancels pending clear", func(t *testing.T) {
		lb.Open("a.mp4", "", "")
		lb.Close()
		lb.Open("b.mp4", "", "")
		clk.Advance(time.Second)
		assert.Equal(t, "b.mp4", lb.State().Src)
	})

	t.Run("Clear that already fired keeps the reopened video", func(t *testing.T) {
		clk := &firedClock{Clock: clock.NewFake(epoch)}
		var changes []widget.LightboxState
		lb := widget.NewLightbox(clk, func(st widget.LightboxState) { changes = append(changes, st) })

		lb.Open("a.mp4", "", "")
		lb.Close()
		lb.Open("b.mp4", "", "")
		seen := len(changes)
		clk.fire()

		st := lb.State()
		assert.True(t, st.Active)
		assert.True(t, st.Playing)
		assert.Equal(t, "b.mp4", st.Src)
		assert.Len(t, changes, seen, "stale clear does not notify")
	})
}

// firedClock hands out timers that are already past the point of Stop,
// like a time.Timer whose callback is waiting on the lightbox lock.
type firedClock struct {
	clock.Clock
	pending []func()
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

func (c *firedClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	c.pending = append(c.pending, f)
	return firedTimer{}
}

func (c *firedClock) fire() {
	for _, f := range c.pending {
		f()
	}
	c.pending = nil
}

func TestTyper(t *testing.T) {
	t.Run("Types after lead-in", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		var done bool
		ty := widget.StartTyper(clk, "Hi ✨", 0, widget.TypeLead, false, func(_ string, d bool) { done = d })

		clk.Advance(widget.TypeLead)
		assert.Empty(t, ty.Text())
		clk.Advance(2 * widget.TypeDelay)
		assert.Equal(t, "Hi", ty.Text())
		clk.Advance(time.Second)
		assert.Equal(t, "Hi ✨", ty.Text())
		assert.True(t, done)
		assert.Equal(t, 0, clk.Pending())
	})

	t.Run("Reduced motion shows everything", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		ty := widget.StartTyper(clk, "Stories in motion", 0, widget.TypeLead, true, func(string, bool) {})
		assert.Equal(t, "Stories in motion", ty.Text())
		assert.Equal(t, 0, clk.Pending())
	})

	t.Run("Stop during lead-in", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		ty := widget.StartTyper(clk, "abc", 0, widget.TypeLead, false, func(string, bool) {})
		ty.Stop()
		clk.Advance(time.Second)
		assert.Empty(t, ty.Text())
	})
}

func TestRipple(t *testing.T) {
	g := widget.Ripple(widget.Rect{Left: 100, Top: 50, Width: 200, Height: 48}, 150, 70)
	assert.InDelta(t, 240, g.Size, 1e-9)
	assert.InDelta(t, -70, g.Left, 1e-9)
	assert.InDelta(t, -100, g.Top, 1e-9)
}

func TestRevealer(t *testing.T) {
	r := widget.NewRevealer()
	assert.False(t, r.Check(0, 700, 800))
	assert.True(t, r.Check(0, 679, 800))
	assert.False(t, r.Check(0, 100, 800), "reported once")
	assert.True(t, r.Visible(0))
}

func TestStaggerDelays(t *testing.T) {
	assert.Equal(t, []time.Duration{0, 80 * time.Millisecond, 160 * time.Millisecond},
		widget.StaggerDelays(3, widget.FormGroupStagger))
	assert.Empty(t, widget.StaggerDelays(0, widget.DirectItemStagger))
}

func TestNextVideoStatus(t *testing.T) {
	s := widget.NextVideoStatus("", "loadstart")
	assert.Equal(t, widget.VideoLoading, s)
	s = widget.NextVideoStatus(s, "playing")
	assert.Equal(t, widget.VideoLoaded, s)
	s = widget.NextVideoStatus(s, "error")
	assert.Equal(t, widget.VideoFailed, s)
	assert.Equal(t, widget.VideoFailed, widget.NextVideoStatus(s, "timeupdate"))
}
