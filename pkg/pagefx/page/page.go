// Package page mounts the interactive behaviors of one site page onto an
// event source. Each behavior runs only when its Options say the markup for
// it is present, and Close releases every subscription and timer.
package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"easein-studio-backend/pkg/logger"
	"easein-studio-backend/pkg/pagefx/carousel"
	"easein-studio-backend/pkg/pagefx/clock"
	"easein-studio-backend/pkg/pagefx/event"
	"easein-studio-backend/pkg/pagefx/form"
	"easein-studio-backend/pkg/pagefx/motion"
	"easein-studio-backend/pkg/pagefx/nav"
	"easein-studio-backend/pkg/pagefx/widget"
)

// Element selectors the page listens on. Click events target the element
// that was clicked, so a click on a backdrop selector is a click outside
// its content.
const (
	SelHamburger     = "#hamburger"
	SelMobileClose   = "#mobileClose"
	SelMobileMenu    = "#mobileMenu"
	SelNavLink       = ".nav-link"
	SelMobileLink    = ".mobile-link"
	SelAccordion     = ".accordion-toggle"
	SelDropdown      = ".dropdown"
	SelDropdownMenu  = ".dropdown-menu"
	SelDropdownLink  = ".dropdown-menu a"
	SelFAQ           = ".faq-question"
	SelStat          = ".stat-number"
	SelReveal        = ".reveal"
	SelShowcase      = ".ai-showcase-window"
	SelWorkStrip     = ".work-mobile-carousel"
	SelReel          = "#stackReel"
	SelVideoCard     = ".video-card"
	SelLightbox      = "#videoLightbox"
	SelLightboxClose = ".lightbox-close"
	SelContactForm   = "#contactForm"
	SelUpload        = "#referenceUpload"
	SelSubmitButton  = ".contact-submit-btn"
	SelModal         = "#successModal"
	SelModalClose    = "#closeModalBtn"
	SelVideo         = "video"
)

// Env is the browser environment at mount time.
type Env struct {
	UserAgent     string
	Width, Height float64
	DocHeight     float64
	ScrollY       float64
	ReducedMotion bool

	// Frames schedules render frames; nil uses the page clock.
	Frames motion.FrameScheduler
	// Poster sends the contact form; nil posts to the configured endpoint.
	Poster form.Poster
	// StripWidth is the scroll width of the mobile work strip.
	StripWidth float64
}

// State is everything the page currently shows.
type State struct {
	Name string

	Frame     motion.Frame
	Cursor    motion.Cursor
	LensX     float64
	LensY     float64
	CTAGhostY float64

	Menu       nav.MenuState
	Dropdowns  []bool
	Accordions []bool
	ScrollTo   *float64 // last smooth-scroll request

	FAQ      int
	Counters []string
	Revealed []bool
	Videos   []widget.VideoStatus

	Showcase  carousel.Move
	StripLeft float64
	Reel      carousel.Roles
	Lightbox  widget.LightboxState

	Typed      string
	TypingDone bool

	Form          form.State
	InvalidFields []string
	UploadName    string
	Ripple        *widget.RippleGeometry

	FormStagger   []time.Duration
	DirectStagger []time.Duration
}

// Page is one mounted page.
type Page struct {
	opts   Options
	env    Env
	clock  clock.Clock
	mobile bool
	src    event.Source
	subs   event.Group

	mu       sync.Mutex
	state    State
	viewport motion.Viewport
	invalid  map[string]bool
	timers   map[clock.Timer]struct{}
	closed   bool

	frames     motion.FrameScheduler
	ownFrames  *motion.ClockFrames
	coalescer  *motion.Coalescer
	menu       *nav.Menu
	dropdowns  []*nav.Dropdown
	accordion  *nav.Accordion
	faq        *widget.FAQ
	counters   []*widget.Counter
	revealer   *widget.Revealer
	showcase   *carousel.Loop
	showAuto   *carousel.Autoplay
	strip      *carousel.Track
	stripAuto  *carousel.Autoplay
	reel       *carousel.Reel
	lightbox   *widget.Lightbox
	typer      *widget.Typer
	form       *form.Form
	controller *form.Controller

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Mount validates opts, builds the enabled behaviors and subscribes them
// to src.
func Mount(src event.Source, clk clock.Clock, env Env, opts Options) (*Page, error) {
	if src == nil || clk == nil {
		return nil, errors.New("page: event source and clock are required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		opts:    opts,
		env:     env,
		clock:   clk,
		src:     src,
		mobile:  nav.IsMobile(env.UserAgent),
		invalid: make(map[string]bool),
		timers:  make(map[clock.Timer]struct{}),
		ctx:     ctx,
		cancel:  cancel,
		viewport: motion.Viewport{
			ScrollY:   env.ScrollY,
			DocHeight: env.DocHeight,
			Width:     env.Width,
			Height:    env.Height,
		},
	}
	p.state.Name = opts.Name
	p.state.FAQ = -1

	p.frames = env.Frames
	if p.frames == nil {
		p.ownFrames = motion.NewClockFrames(clk)
		p.frames = p.ownFrames
	}

	mounts := []func() error{
		p.mountMotion,
		p.mountNav,
		p.mountWidgets,
		p.mountCarousels,
		p.mountLightbox,
		p.mountForm,
		p.mountKeys,
	}
	for _, mount := range mounts {
		if err := mount(); err != nil {
			p.Close()
			return nil, fmt.Errorf("page %q: %w", opts.Name, err)
		}
	}

	logger.Log.Debug("Page mounted", "page", opts.Name, "mobile", p.mobile)
	return p, nil
}

// Snapshot returns a copy of the current state.
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.state
	st.Dropdowns = append([]bool(nil), st.Dropdowns...)
	st.Accordions = append([]bool(nil), st.Accordions...)
	st.Counters = append([]string(nil), st.Counters...)
	st.Revealed = append([]bool(nil), st.Revealed...)
	st.Videos = append([]widget.VideoStatus(nil), st.Videos...)
	st.InvalidFields = append([]string(nil), st.InvalidFields...)
	if st.ScrollTo != nil {
		v := *st.ScrollTo
		st.ScrollTo = &v
	}
	if st.Ripple != nil {
		r := *st.Ripple
		st.Ripple = &r
	}
	return st
}

// Close unsubscribes every handler, stops every timer and waits for an
// in-flight submission to return.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for t := range p.timers {
		t.Stop()
	}
	p.timers = map[clock.Timer]struct{}{}
	counters := p.counters
	p.counters = nil
	p.mu.Unlock()

	p.subs.Close()
	p.cancel()

	for _, d := range p.dropdowns {
		d.Close()
	}
	for _, c := range counters {
		if c != nil {
			c.Stop()
		}
	}
	if p.showAuto != nil {
		p.showAuto.Close()
	}
	if p.stripAuto != nil {
		p.stripAuto.Close()
	}
	if p.reel != nil {
		p.reel.Close()
	}
	if p.lightbox != nil {
		p.lightbox.Stop()
	}
	if p.typer != nil {
		p.typer.Stop()
	}
	p.wg.Wait()
	if p.ownFrames != nil {
		p.ownFrames.Close()
	}
}

func (p *Page) on(kind event.Kind, target string, h event.Handler) {
	p.subs.On(p.src, kind, target, h)
}

func (p *Page) update(f func(*State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(&p.state)
}

// after runs f once after d unless the page closes first.
func (p *Page) after(d time.Duration, f func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	var t clock.Timer
	t = p.clock.AfterFunc(d, func() {
		p.mu.Lock()
		_, live := p.timers[t]
		delete(p.timers, t)
		p.mu.Unlock()
		if live {
			f()
		}
	})
	p.timers[t] = struct{}{}
}

func (p *Page) headerHeight() float64 {
	if p.opts.HeaderHeight > 0 {
		return p.opts.HeaderHeight
	}
	return nav.DefaultHeaderHeight
}

func setAt[T any](s []T, i int, v T) {
	if i >= 0 && i < len(s) {
		s[i] = v
	}
}
