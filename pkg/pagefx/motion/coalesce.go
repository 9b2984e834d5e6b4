package motion

import (
	"sync"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
)

// FrameScheduler runs f before the next paint.
type FrameScheduler interface {
	RequestFrame(f func())
}

// Coalescer turns any number of scroll events into one Compute per frame.
// The last viewport seen before the frame wins.
type Coalescer struct {
	mu      sync.Mutex
	frames  FrameScheduler
	render  func(Frame)
	last    Viewport
	pending bool
}

func NewCoalescer(frames FrameScheduler, render func(Frame)) *Coalescer {
	return &Coalescer{frames: frames, render: render}
}

// Scroll records v and requests a frame if none is pending.
func (c *Coalescer) Scroll(v Viewport) {
	c.mu.Lock()
	c.last = v
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = true
	c.mu.Unlock()

	c.frames.RequestFrame(c.flush)
}

// Now renders v immediately, used for the initial position.
func (c *Coalescer) Now(v Viewport) {
	c.mu.Lock()
	c.last = v
	c.mu.Unlock()
	c.render(Compute(v))
}

func (c *Coalescer) flush() {
	c.mu.Lock()
	v := c.last
	c.pending = false
	c.mu.Unlock()

	c.render(Compute(v))
}

// FrameQueue is a FrameScheduler drained by hand.
type FrameQueue struct {
	mu     sync.Mutex
	queued []func()
}

func (q *FrameQueue) RequestFrame(f func()) {
	q.mu.Lock()
	q.queued = append(q.queued, f)
	q.mu.Unlock()
}

// Run executes the callbacks queued so far and returns how many ran.
func (q *FrameQueue) Run() int {
	q.mu.Lock()
	fs := q.queued
	q.queued = nil
	q.mu.Unlock()

	for _, f := range fs {
		f()
	}
	return len(fs)
}

// Len is the number of queued callbacks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// FrameInterval approximates one display refresh.
const FrameInterval = 16 * time.Millisecond

// ClockFrames schedules frames on a clock, one FrameInterval out.
type ClockFrames struct {
	mu     sync.Mutex
	clock  clock.Clock
	timers map[clock.Timer]struct{}
	closed bool
}

func NewClockFrames(c clock.Clock) *ClockFrames {
	return &ClockFrames{clock: c, timers: make(map[clock.Timer]struct{})}
}

func (f *ClockFrames) RequestFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	var t clock.Timer
	t = f.clock.AfterFunc(FrameInterval, func() {
		f.mu.Lock()
		_, live := f.timers[t]
		delete(f.timers, t)
		f.mu.Unlock()
		if live {
			fn()
		}
	})
	f.timers[t] = struct{}{}
}

// Close cancels pending frames; later requests are dropped.
func (f *ClockFrames) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for t := range f.timers {
		t.Stop()
	}
	f.timers = map[clock.Timer]struct{}{}
}
