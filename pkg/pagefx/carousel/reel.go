package carousel

import (
	"errors"
	"sync"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
)

const ReelInterval = 4000 * time.Millisecond

var ErrTooFewCards = errors.New("carousel: reel needs at least two cards")

// Roles names the card in each stacked position.
type Roles struct {
	Active int
	Next   int
	Back   int
}

// Reel rotates a stack of cards: next becomes active, the one after it
// becomes next, and the old active goes to the back.
type Reel struct {
	mu       sync.Mutex
	clock    clock.Clock
	n        int
	interval time.Duration
	roles    Roles
	ticker   *clock.Ticker
	onRotate func(Roles)
	closed   bool
}

// NewReel starts rotating immediately. onRotate runs without locks held.
func NewReel(c clock.Clock, n int, interval time.Duration, onRotate func(Roles)) (*Reel, error) {
	if n < 2 {
		return nil, ErrTooFewCards
	}
	if interval <= 0 {
		interval = ReelInterval
	}
	r := &Reel{
		clock:    c,
		n:        n,
		interval: interval,
		roles:    Roles{Active: 0, Next: Wrap(1, n), Back: Wrap(-1, n)},
		onRotate: onRotate,
	}
	r.mu.Lock()
	r.startLocked()
	r.mu.Unlock()
	return r, nil
}

// Roles returns the current assignment.
func (r *Reel) Roles() Roles {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles
}

// Rotate advances one position.
func (r *Reel) Rotate() Roles {
	r.mu.Lock()
	current := r.roles.Active
	r.roles = Roles{
		Active: Wrap(current+1, r.n),
		Next:   Wrap(current+2, r.n),
		Back:   current,
	}
	roles := r.roles
	r.mu.Unlock()

	if r.onRotate != nil {
		r.onRotate(roles)
	}
	return roles
}

// Hover pauses rotation.
func (r *Reel) Hover() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Leave resumes rotation with a full interval.
func (r *Reel) Leave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

// Click rotates at once and restarts the interval.
func (r *Reel) Click() Roles {
	r.mu.Lock()
	r.stopLocked()
	r.mu.Unlock()

	roles := r.Rotate()

	r.mu.Lock()
	r.startLocked()
	r.mu.Unlock()
	return roles
}

// Close stops rotation for good.
func (r *Reel) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopLocked()
}

func (r *Reel) startLocked() {
	if r.closed {
		return
	}
	r.stopLocked()
	r.ticker = clock.NewTicker(r.clock, r.interval, func() { r.Rotate() })
}

func (r *Reel) stopLocked() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}
