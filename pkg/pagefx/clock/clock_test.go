package clock_test

import (
	"testing"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFake(t *testing.T) {
	t.Run("Fires due timers in order", func(t *testing.T) {
		c := clock.NewFake(epoch)
		var got []string
		c.AfterFunc(300*time.Millisecond, func() { got = append(got, "b") })
		c.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
		c.AfterFunc(time.Second, func() { got = append(got, "c") })

		c.Advance(500 * time.Millisecond)
		assert.Equal(t, []string{"a", "b"}, got)
		assert.Equal(t, 1, c.Pending())
		assert.Equal(t, epoch.Add(500*time.Millisecond), c.Now())
	})

	t.Run("Stopped timer never fires", func(t *testing.T) {
		c := clock.NewFake(epoch)
		fired := false
		tm := c.AfterFunc(time.Millisecond, func() { fired = true })

		assert.True(t, tm.Stop())
		assert.False(t, tm.Stop())
		c.Advance(time.Second)
		assert.False(t, fired)
	})

	t.Run("Callback sees its due time", func(t *testing.T) {
		c := clock.NewFake(epoch)
		var at time.Time
		c.AfterFunc(220*time.Millisecond, func() { at = c.Now() })
		c.Advance(time.Second)
		assert.Equal(t, epoch.Add(220*time.Millisecond), at)
	})
}

func TestTicker(t *testing.T) {
	t.Run("Ticks every interval on fake clock", func(t *testing.T) {
		c := clock.NewFake(epoch)
		ticks := 0
		tk := clock.NewTicker(c, 2800*time.Millisecond, func() { ticks++ })

		c.Advance(10 * time.Second)
		assert.Equal(t, 3, ticks)

		tk.Stop()
		c.Advance(10 * time.Second)
		assert.Equal(t, 3, ticks)
		assert.Equal(t, 0, c.Pending())
	})

	t.Run("Stop releases the real timer", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		tk := clock.NewTicker(clock.Real(), time.Hour, func() {})
		assert.True(t, tk.Stop())
	})
}
