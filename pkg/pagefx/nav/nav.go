// Package nav holds the navigation behaviors: the mobile menu, desktop
// dropdowns, mobile accordions and smooth-scroll targets.
package nav

import (
	"regexp"
	"sync"
	"time"

	"easein-studio-backend/pkg/pagefx/clock"
)

var mobileUA = regexp.MustCompile(`(?i)Android|iPhone|iPad|iPod|Windows Phone|webOS|BlackBerry`)

// IsMobile reports whether the user agent is a phone or tablet.
func IsMobile(userAgent string) bool {
	return mobileUA.MatchString(userAgent)
}

const (
	DefaultHeaderHeight = 76.0
	scrollGap           = 10.0

	// MobileLinkDelay lets the menu close before scrolling starts.
	MobileLinkDelay = 180 * time.Millisecond
)

// ScrollTarget is the window scroll position that puts a target element
// just below the fixed header. targetTop is relative to the viewport.
func ScrollTarget(targetTop, scrollY, headerHeight float64) float64 {
	if headerHeight <= 0 {
		headerHeight = DefaultHeaderHeight
	}
	return targetTop + scrollY - headerHeight - scrollGap
}

// MenuState is what the markup shows. Open and BodyLocked always match.
type MenuState struct {
	Open       bool // #mobileMenu has .show
	BodyLocked bool // body overflow hidden
}

// Menu is the mobile menu overlay.
type Menu struct {
	mu       sync.Mutex
	open     bool
	onChange func(MenuState)
}

func NewMenu(onChange func(MenuState)) *Menu {
	return &Menu{onChange: onChange}
}

func (m *Menu) State() MenuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MenuState{Open: m.open, BodyLocked: m.open}
}

func (m *Menu) Open() MenuState   { return m.set(true) }
func (m *Menu) Close() MenuState  { return m.set(false) }
func (m *Menu) Toggle() MenuState { return m.set(!m.State().Open) }

func (m *Menu) set(open bool) MenuState {
	m.mu.Lock()
	changed := m.open != open
	m.open = open
	st := MenuState{Open: open, BodyLocked: open}
	m.mu.Unlock()

	if changed && m.onChange != nil {
		m.onChange(st)
	}
	return st
}

// Dropdown timing defaults for the desktop nav.
const (
	DropdownOpenDelay  = 160 * time.Millisecond
	DropdownCloseDelay = 220 * time.Millisecond
)

// DropdownTiming configures a Dropdown. MinOpen, when set, keeps the menu
// open for at least that long after it opened, replacing CloseDelay.
type DropdownTiming struct {
	OpenDelay  time.Duration
	CloseDelay time.Duration
	MinOpen    time.Duration
}

// DefaultDropdownTiming is the hover timing of the main site.
func DefaultDropdownTiming() DropdownTiming {
	return DropdownTiming{OpenDelay: DropdownOpenDelay, CloseDelay: DropdownCloseDelay}
}

// Dropdown is a desktop nav item that opens on hover after a delay.
type Dropdown struct {
	mu         sync.Mutex
	clock      clock.Clock
	timing     DropdownTiming
	open       bool
	openedAt   time.Time
	openTimer  clock.Timer
	closeTimer clock.Timer
	onChange   func(bool)
	closed     bool
}

func NewDropdown(c clock.Clock, timing DropdownTiming, onChange func(bool)) *Dropdown {
	return &Dropdown{clock: c, timing: timing, onChange: onChange}
}

func (d *Dropdown) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Enter handles mouseenter on the nav item.
func (d *Dropdown) Enter() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	stop(&d.closeTimer)
	stop(&d.openTimer)
	if d.timing.OpenDelay <= 0 {
		d.mu.Unlock()
		d.set(true)
		return
	}
	d.openTimer = d.clock.AfterFunc(d.timing.OpenDelay, func() { d.set(true) })
	d.mu.Unlock()
}

// Leave handles mouseleave on the nav item.
func (d *Dropdown) Leave() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	stop(&d.openTimer)
	stop(&d.closeTimer)

	delay := d.timing.CloseDelay
	if d.timing.MinOpen > 0 {
		elapsed := d.clock.Now().Sub(d.openedAt)
		delay = d.timing.MinOpen - elapsed
	}
	if delay <= 0 {
		d.mu.Unlock()
		d.set(false)
		return
	}
	d.closeTimer = d.clock.AfterFunc(delay, func() { d.set(false) })
	d.mu.Unlock()
}

// MenuEnter keeps the dropdown open while the pointer is inside its panel.
func (d *Dropdown) MenuEnter() {
	d.mu.Lock()
	defer d.mu.Unlock()
	stop(&d.closeTimer)
}

// MenuLeave closes after the close delay.
func (d *Dropdown) MenuLeave() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	stop(&d.closeTimer)
	d.closeTimer = d.clock.AfterFunc(d.timing.CloseDelay, func() { d.set(false) })
}

// Dismiss closes at once, for link clicks and Escape.
func (d *Dropdown) Dismiss() {
	d.mu.Lock()
	stop(&d.openTimer)
	stop(&d.closeTimer)
	d.mu.Unlock()
	d.set(false)
}

// Close cancels pending timers.
func (d *Dropdown) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	stop(&d.openTimer)
	stop(&d.closeTimer)
}

func (d *Dropdown) set(open bool) {
	d.mu.Lock()
	changed := d.open != open
	d.open = open
	if open && changed {
		d.openedAt = d.clock.Now()
	}
	d.mu.Unlock()

	if changed && d.onChange != nil {
		d.onChange(open)
	}
}

func stop(t *clock.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// Accordion is the set of mobile menu panels. Panels toggle independently.
type Accordion struct {
	mu   sync.Mutex
	open map[int]bool
}

func NewAccordion() *Accordion {
	return &Accordion{open: make(map[int]bool)}
}

// Toggle flips panel i and returns its new state, used for aria-expanded.
func (a *Accordion) Toggle(i int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open[i] = !a.open[i]
	return a.open[i]
}

func (a *Accordion) IsOpen(i int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open[i]
}
