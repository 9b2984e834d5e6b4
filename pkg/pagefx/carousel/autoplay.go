package carousel

import (
	"sync"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
)

// Autoplay calls step on a fixed interval. Interaction stops it and
// restarts it once the user has been idle for the idle delay.
type Autoplay struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	idle     time.Duration
	step     func()
	ticker   *clock.Ticker
	restart  clock.Timer
	enabled  bool
	closed   bool
}

// NewAutoplay starts immediately when enabled. An idle of 0 disables the
// restart after interaction.
func NewAutoplay(c clock.Clock, interval, idle time.Duration, enabled bool, step func()) *Autoplay {
	a := &Autoplay{
		clock:    c,
		interval: interval,
		idle:     idle,
		step:     step,
		enabled:  enabled,
	}
	a.Start()
	return a
}

// Start (re)starts the ticker if enabled.
func (a *Autoplay) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startLocked()
}

func (a *Autoplay) startLocked() {
	if a.closed || !a.enabled {
		return
	}
	a.stopTickerLocked()
	a.ticker = clock.NewTicker(a.clock, a.interval, a.step)
}

// Stop halts the ticker and any pending restart.
func (a *Autoplay) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTickerLocked()
	a.stopRestartLocked()
}

// Interact handles touch, pointer and wheel input.
func (a *Autoplay) Interact() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.stopTickerLocked()
	a.stopRestartLocked()
	if a.idle > 0 {
		a.restart = a.clock.AfterFunc(a.idle, func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.restart = nil
			a.startLocked()
		})
	}
}

// SetEnabled follows the media query that gates the carousel.
func (a *Autoplay) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	if enabled {
		a.startLocked()
		return
	}
	a.stopTickerLocked()
	a.stopRestartLocked()
}

// Running reports whether the ticker is active.
func (a *Autoplay) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticker != nil
}

// Close stops everything; the autoplay cannot be restarted.
func (a *Autoplay) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.stopTickerLocked()
	a.stopRestartLocked()
}

func (a *Autoplay) stopTickerLocked() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

func (a *Autoplay) stopRestartLocked() {
	if a.restart != nil {
		a.restart.Stop()
		a.restart = nil
	}
}
