// Package widget implements the small page widgets: FAQ accordion, stats
// counter, video lightbox, typewriter, ripple, reveal and video status.
package widget

import (
	"math"
	"strconv"
	"sync"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
)

// FAQ is an accordion where at most one item is open.
type FAQ struct {
	mu     sync.Mutex
	n      int
	active int // -1 when all closed
}

func NewFAQ(n int) *FAQ {
	return &FAQ{n: n, active: -1}
}

// Toggle closes every item, then opens i unless it was the open one.
// It returns the open item or -1.
func (f *FAQ) Toggle(i int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= f.n {
		return f.active
	}
	if f.active == i {
		f.active = -1
	} else {
		f.active = i
	}
	return f.active
}

func (f *FAQ) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// CounterDuration is how long a stat takes to count up.
const CounterDuration = 900 * time.Millisecond

// CounterText is the stat label after elapsed time: the floor of the
// linear progress while counting, then the end value with a "+" suffix.
func CounterText(end int, elapsed, duration time.Duration) string {
	if duration <= 0 {
		duration = CounterDuration
	}
	p := math.Min(float64(elapsed)/float64(duration), 1)
	if p < 1 {
		return strconv.Itoa(int(math.Floor(p * float64(end))))
	}
	if end > 0 {
		return strconv.Itoa(end) + "+"
	}
	return strconv.Itoa(end)
}

// Counter animates one stat on a clock, one update per frame.
type Counter struct {
	mu      sync.Mutex
	clock   clock.Clock
	end     int
	started time.Time
	ticker  *clock.Ticker
	render  func(string)
}

// StartCounter renders "0" and counts to end. render runs without locks.
func StartCounter(c clock.Clock, end int, frame time.Duration, render func(string)) *Counter {
	ct := &Counter{clock: c, end: end, started: c.Now(), render: render}
	render(CounterText(end, 0, CounterDuration))
	ct.mu.Lock()
	ct.ticker = clock.NewTicker(c, frame, ct.tick)
	ct.mu.Unlock()
	return ct
}

func (ct *Counter) tick() {
	elapsed := ct.clock.Now().Sub(ct.started)
	ct.render(CounterText(ct.end, elapsed, CounterDuration))
	if elapsed >= CounterDuration {
		ct.Stop()
	}
}

func (ct *Counter) Stop() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.ticker != nil {
		ct.ticker.Stop()
		ct.ticker = nil
	}
}

// LightboxClearDelay lets the close transition finish before the video
// source is dropped.
const LightboxClearDelay = 300 * time.Millisecond

// LightboxState is what the lightbox markup shows.
type LightboxState struct {
	Active     bool
	Src        string
	Title      string
	Desc       string
	Playing    bool
	BodyLocked bool
}

// Lightbox is the video overlay.
type Lightbox struct {
	mu       sync.Mutex
	clock    clock.Clock
	state    LightboxState
	clear    clock.Timer
	gen      uint64 // bumped on every Open and Close
	onChange func(LightboxState)
}

func NewLightbox(c clock.Clock, onChange func(LightboxState)) *Lightbox {
	return &Lightbox{clock: c, onChange: onChange}
}

// Open shows src. Cards without a video source do nothing.
func (l *Lightbox) Open(src, title, desc string) bool {
	if src == "" {
		return false
	}
	l.mu.Lock()
	if l.clear != nil {
		l.clear.Stop()
		l.clear = nil
	}
	l.gen++
	l.state = LightboxState{Active: true, Src: src, Title: title, Desc: desc, Playing: true, BodyLocked: true}
	st := l.state
	l.mu.Unlock()

	l.notify(st)
	return true
}

// Close hides the overlay now and clears the source after the delay.
func (l *Lightbox) Close() {
	l.mu.Lock()
	if !l.state.Active {
		l.mu.Unlock()
		return
	}
	l.state.Active = false
	l.state.BodyLocked = false
	l.gen++
	gen := l.gen
	st := l.state
	l.clear = l.clock.AfterFunc(LightboxClearDelay, func() {
		l.mu.Lock()
		// A timer that fired while Open held the lock must not clear the new video.
		if l.gen != gen {
			l.mu.Unlock()
			return
		}
		l.clear = nil
		l.state.Playing = false
		l.state.Src = ""
		st := l.state
		l.mu.Unlock()
		l.notify(st)
	})
	l.mu.Unlock()

	l.notify(st)
}

func (l *Lightbox) State() LightboxState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Stop cancels a pending source clear.
func (l *Lightbox) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.clear != nil {
		l.clear.Stop()
		l.clear = nil
	}
}

func (l *Lightbox) notify(st LightboxState) {
	if l.onChange != nil {
		l.onChange(st)
	}
}

// Typewriter timing.
const (
	TypeDelay = 26 * time.Millisecond
	TypeLead  = 220 * time.Millisecond
)

// Typer reveals text one rune per delay after a lead-in. With reduced
// motion the full text is shown at once.
type Typer struct {
	mu     sync.Mutex
	runes  []rune
	shown  int
	lead   clock.Timer
	ticker *clock.Ticker
	render func(text string, done bool)
}

func StartTyper(c clock.Clock, text string, delay, lead time.Duration, reducedMotion bool, render func(string, bool)) *Typer {
	if delay <= 0 {
		delay = TypeDelay
	}
	t := &Typer{runes: []rune(text), render: render}

	if reducedMotion || len(t.runes) == 0 {
		t.shown = len(t.runes)
		render(text, true)
		return t
	}

	render("", false)
	t.mu.Lock()
	t.lead = c.AfterFunc(lead, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.lead == nil {
			return
		}
		t.lead = nil
		t.ticker = clock.NewTicker(c, delay, t.tick)
	})
	t.mu.Unlock()
	return t
}

func (t *Typer) tick() {
	t.mu.Lock()
	if t.shown >= len(t.runes) {
		t.mu.Unlock()
		return
	}
	t.shown++
	text := string(t.runes[:t.shown])
	done := t.shown == len(t.runes)
	if done && t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	t.mu.Unlock()

	t.render(text, done)
}

// Text is what is currently shown.
func (t *Typer) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.runes[:t.shown])
}

func (t *Typer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lead != nil {
		t.lead.Stop()
		t.lead = nil
	}
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// Rect is an element bounding box in viewport pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// RippleGeometry is the size and position of a click ripple inside a button.
type RippleGeometry struct {
	Size, Left, Top float64
}

// RippleLifetime removes the ripple even if the animation never ends.
const RippleLifetime = 900 * time.Millisecond

// Ripple centers a circle 1.2 times the button's larger side on the click.
func Ripple(button Rect, clickX, clickY float64) RippleGeometry {
	size := math.Max(button.Width, button.Height) * 1.2
	return RippleGeometry{
		Size: size,
		Left: clickX - button.Left - size/2,
		Top:  clickY - button.Top - size/2,
	}
}

// RevealRatio is the viewport fraction an element's top must pass.
const RevealRatio = 0.85

// Revealed reports whether an element at top should become visible.
func Revealed(top, viewportHeight float64) bool {
	return top < viewportHeight*RevealRatio
}

// Revealer remembers which elements have been revealed; they stay visible.
type Revealer struct {
	mu      sync.Mutex
	visible map[int]bool
}

func NewRevealer() *Revealer {
	return &Revealer{visible: make(map[int]bool)}
}

// Check marks i visible when its top passes the line. It reports whether
// this call revealed it.
func (r *Revealer) Check(i int, top, viewportHeight float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.visible[i] || !Revealed(top, viewportHeight) {
		return false
	}
	r.visible[i] = true
	return true
}

func (r *Revealer) Visible(i int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible[i]
}

// Stagger steps for entrance animations.
const (
	FormGroupStagger  = 80 * time.Millisecond
	DirectItemStagger = 110 * time.Millisecond
)

// StaggerDelays returns i*step for each of n items.
func StaggerDelays(n int, step time.Duration) []time.Duration {
	out := make([]time.Duration, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, time.Duration(i)*step)
	}
	return out
}

// VideoStatus is the overlay state of an embedded video.
type VideoStatus string

const (
	VideoLoading VideoStatus = "is-loading"
	VideoLoaded  VideoStatus = "video-loaded"
	VideoFailed  VideoStatus = "has-error"
)

// NextVideoStatus maps a media event name to the overlay state.
func NextVideoStatus(current VideoStatus, media string) VideoStatus {
	switch media {
	case "loadstart", "waiting":
		return VideoLoading
	case "canplay", "playing":
		return VideoLoaded
	case "error":
		return VideoFailed
	default:
		return current
	}
}
