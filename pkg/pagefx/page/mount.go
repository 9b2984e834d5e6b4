package page

import (
	"slices"

	"easein-studio-backend/pkg/logger"
	"easein-studio-backend/pkg/pagefx/carousel"
	"easein-studio-backend/pkg/pagefx/event"
	"easein-studio-backend/pkg/pagefx/form"
	"easein-studio-backend/pkg/pagefx/motion"
	"easein-studio-backend/pkg/pagefx/nav"
	"easein-studio-backend/pkg/pagefx/widget"
)

const defaultButtonText = "Send Message"

func (p *Page) mountMotion() error {
	par := p.opts.Parallax
	if par.Hero {
		p.coalescer = motion.NewCoalescer(p.frames, func(f motion.Frame) {
			p.update(func(s *State) { s.Frame = f })
		})
		p.coalescer.Now(p.viewport)
	}
	if par.CTAGhost {
		p.state.CTAGhostY = motion.CTAGhostY(p.env.ScrollY)
	}

	p.on(event.Scroll, event.Document, p.onScroll)
	p.on(event.Resize, event.Document, p.onResize)

	// Touch devices get neither the custom cursor nor pointer parallax.
	if p.mobile {
		return nil
	}
	if p.opts.BeamCursor || par.LensPointer {
		p.on(event.PointerMove, event.Document, p.onPointerMove)
	}
	if p.opts.BeamCursor {
		p.on(event.PointerDown, event.Document, func(event.Event) {
			p.update(func(s *State) { s.Cursor.Pressed = true })
		})
		p.on(event.PointerUp, event.Document, func(event.Event) {
			p.update(func(s *State) { s.Cursor.Pressed = false })
		})
		p.on(event.MouseLeave, event.Document, func(ev event.Event) {
			if ev.Target == event.Document {
				p.update(func(s *State) { s.Cursor.Hidden = true })
			}
		})
		p.on(event.MouseEnter, event.Document, func(ev event.Event) {
			if ev.Target == event.Document {
				p.update(func(s *State) { s.Cursor.Hidden = false })
			}
		})
	}
	return nil
}

func (p *Page) onScroll(ev event.Event) {
	if ev.Target != event.Document {
		return
	}
	p.mu.Lock()
	p.viewport.ScrollY = ev.ScrollY
	v := p.viewport
	if p.opts.Parallax.CTAGhost {
		p.state.CTAGhostY = motion.CTAGhostY(ev.ScrollY)
	}
	p.mu.Unlock()

	if p.coalescer != nil {
		p.coalescer.Scroll(v)
	}
}

func (p *Page) onResize(ev event.Event) {
	p.mu.Lock()
	if ev.Width > 0 {
		p.viewport.Width = ev.Width
	}
	if ev.Height > 0 {
		p.viewport.Height = ev.Height
	}
	v := p.viewport
	p.mu.Unlock()

	if p.coalescer != nil {
		p.coalescer.Now(v)
	}
}

func (p *Page) onPointerMove(ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.BeamCursor {
		p.state.Cursor.X, p.state.Cursor.Y = ev.X, ev.Y
		p.state.Cursor.Hidden = false
	}
	if p.opts.Parallax.LensPointer {
		p.state.LensX, p.state.LensY = motion.LensParallax(ev.X, ev.Y, p.viewport.Width, p.viewport.Height)
	}
}

func (p *Page) mountNav() error {
	if p.opts.Menu.Enabled {
		p.menu = nav.NewMenu(func(st nav.MenuState) {
			p.update(func(s *State) { s.Menu = st })
		})
		p.on(event.Click, SelHamburger, func(event.Event) {
			if p.opts.Menu.Toggle {
				p.menu.Toggle()
			} else {
				p.menu.Open()
			}
		})
		closeMenu := func(event.Event) { p.menu.Close() }
		p.on(event.Click, SelMobileClose, closeMenu)
		p.on(event.Click, SelMobileMenu, closeMenu)
		p.on(event.Click, SelMobileLink, func(ev event.Event) {
			p.menu.Close()
			top := ev.Rect.Top
			p.after(nav.MobileLinkDelay, func() { p.scrollTo(top) })
		})
	}

	// Rect of a nav link click is the rect of the section it points at.
	p.on(event.Click, SelNavLink, func(ev event.Event) {
		p.scrollTo(ev.Rect.Top)
	})

	if n := p.opts.Dropdowns.Count; n > 0 {
		timing := p.dropdownTiming()
		p.state.Dropdowns = make([]bool, n)
		for i := 0; i < n; i++ {
			p.dropdowns = append(p.dropdowns, nav.NewDropdown(p.clock, timing, func(open bool) {
				p.update(func(s *State) { setAt(s.Dropdowns, i, open) })
			}))
		}
		p.on(event.MouseEnter, SelDropdown, p.withDropdown((*nav.Dropdown).Enter))
		p.on(event.MouseLeave, SelDropdown, p.withDropdown((*nav.Dropdown).Leave))
		p.on(event.MouseEnter, SelDropdownMenu, p.withDropdown((*nav.Dropdown).MenuEnter))
		p.on(event.MouseLeave, SelDropdownMenu, p.withDropdown((*nav.Dropdown).MenuLeave))
		p.on(event.Click, SelDropdownLink, func(event.Event) { p.dismissDropdowns() })
	}

	if n := p.opts.Accordions; n > 0 {
		p.accordion = nav.NewAccordion()
		p.state.Accordions = make([]bool, n)
		p.on(event.Click, SelAccordion, func(ev event.Event) {
			if ev.Index < 0 || ev.Index >= n {
				return
			}
			open := p.accordion.Toggle(ev.Index)
			p.update(func(s *State) { setAt(s.Accordions, ev.Index, open) })
		})
	}
	return nil
}

func (p *Page) dropdownTiming() nav.DropdownTiming {
	t := nav.DefaultDropdownTiming()
	d := p.opts.Dropdowns
	t.OpenDelay = ms(d.OpenDelayMS, t.OpenDelay)
	t.CloseDelay = ms(d.CloseDelayMS, t.CloseDelay)
	t.MinOpen = ms(d.MinOpenMS, 0)
	return t
}

func (p *Page) withDropdown(f func(*nav.Dropdown)) event.Handler {
	return func(ev event.Event) {
		if ev.Index >= 0 && ev.Index < len(p.dropdowns) {
			f(p.dropdowns[ev.Index])
		}
	}
}

func (p *Page) dismissDropdowns() {
	for _, d := range p.dropdowns {
		d.Dismiss()
	}
}

func (p *Page) scrollTo(targetTop float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	y := nav.ScrollTarget(targetTop, p.viewport.ScrollY, p.headerHeight())
	p.state.ScrollTo = &y
}

func (p *Page) mountWidgets() error {
	if n := p.opts.FAQItems; n > 0 {
		p.faq = widget.NewFAQ(n)
		p.on(event.Click, SelFAQ, func(ev event.Event) {
			active := p.faq.Toggle(ev.Index)
			p.update(func(s *State) { s.FAQ = active })
		})
	}

	if n := len(p.opts.Counters); n > 0 {
		p.counters = make([]*widget.Counter, n)
		p.state.Counters = make([]string, n)
		for i := range p.state.Counters {
			p.state.Counters[i] = "0"
		}
		p.on(event.Visible, SelStat, p.startCounter)
	}

	if n := p.opts.RevealItems; n > 0 {
		p.revealer = widget.NewRevealer()
		p.state.Revealed = make([]bool, n)
		p.on(event.Visible, SelReveal, func(ev event.Event) {
			p.mu.Lock()
			vh := p.viewport.Height
			p.mu.Unlock()
			if p.revealer.Check(ev.Index, ev.Rect.Top, vh) {
				p.update(func(s *State) { setAt(s.Revealed, ev.Index, true) })
			}
		})
	}

	if n := p.opts.Videos; n > 0 {
		p.state.Videos = make([]widget.VideoStatus, n)
		for i := range p.state.Videos {
			p.state.Videos[i] = widget.VideoLoading
		}
		kinds := []event.Kind{
			event.VideoLoadStart, event.VideoWaiting, event.VideoCanPlay,
			event.VideoPlaying, event.VideoError,
		}
		for _, kind := range kinds {
			p.on(kind, SelVideo, func(ev event.Event) {
				p.update(func(s *State) {
					if ev.Index >= 0 && ev.Index < len(s.Videos) {
						s.Videos[ev.Index] = widget.NextVideoStatus(s.Videos[ev.Index], string(ev.Kind))
					}
				})
			})
		}
	}

	if text := p.opts.Typer.Text; text != "" {
		delay := ms(p.opts.Typer.DelayMS, widget.TypeDelay)
		lead := ms(p.opts.Typer.LeadMS, widget.TypeLead)
		p.typer = widget.StartTyper(p.clock, text, delay, lead, p.env.ReducedMotion, func(shown string, done bool) {
			p.update(func(s *State) {
				s.Typed = shown
				s.TypingDone = done
			})
		})
	}
	return nil
}

// startCounter runs a stat's count-up the first time it becomes visible.
func (p *Page) startCounter(ev event.Event) {
	i := ev.Index
	p.mu.Lock()
	if p.closed || i < 0 || i >= len(p.counters) || p.counters[i] != nil {
		p.mu.Unlock()
		return
	}
	// Placeholder until the real counter is stored, so a second Visible is ignored.
	p.counters[i] = &widget.Counter{}
	p.mu.Unlock()

	c := widget.StartCounter(p.clock, p.opts.Counters[i], motion.FrameInterval, func(text string) {
		p.update(func(s *State) { setAt(s.Counters, i, text) })
	})

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		c.Stop()
		return
	}
	p.counters[i] = c
	p.mu.Unlock()
}

func (p *Page) mountCarousels() error {
	if n := p.opts.Showcase.Items; n > 0 {
		p.showcase = carousel.NewLoop(n, p.env.Width)
		p.state.Showcase = p.showcase.Resize(p.env.Width)
		p.showAuto = carousel.NewAutoplay(p.clock, ms(p.opts.Showcase.IntervalMS, carousel.LoopInterval), 0, true, p.advanceShowcase)
		p.on(event.MouseEnter, SelShowcase, func(event.Event) { p.showAuto.Stop() })
		p.on(event.MouseLeave, SelShowcase, func(event.Event) { p.showAuto.Start() })
		p.on(event.Resize, event.Document, func(ev event.Event) {
			if ev.Width <= 0 {
				return
			}
			p.update(func(s *State) { s.Showcase = p.showcase.Resize(ev.Width) })
		})
	}

	if ws := p.opts.WorkStrip; ws.Enabled {
		maxWidth := ws.MaxWidth
		if maxWidth <= 0 {
			maxWidth = 768
		}
		step := ws.Step
		if step <= 0 {
			step = carousel.StripStep
		}
		scrollWidth := p.env.StripWidth
		if scrollWidth <= 0 {
			scrollWidth = ws.ScrollWidth
		}
		p.strip = &carousel.Track{Step: step, ScrollWidth: scrollWidth, ClientWidth: p.env.Width}
		enabled := p.env.Width > 0 && p.env.Width <= maxWidth
		p.stripAuto = carousel.NewAutoplay(p.clock,
			ms(ws.IntervalMS, carousel.StripInterval),
			ms(ws.IdleMS, carousel.IdleRestart),
			enabled,
			func() { p.update(func(s *State) { s.StripLeft = p.strip.Next() }) },
		)
		interact := func(event.Event) { p.stripAuto.Interact() }
		p.on(event.TouchStart, SelWorkStrip, interact)
		p.on(event.PointerDown, SelWorkStrip, interact)
		p.on(event.Wheel, SelWorkStrip, interact)
		p.on(event.MediaChange, SelWorkStrip, func(ev event.Event) {
			p.stripAuto.SetEnabled(ev.Matches)
		})
		p.on(event.Resize, event.Document, func(ev event.Event) {
			if ev.Width > 0 {
				p.update(func(*State) { p.strip.ClientWidth = ev.Width })
			}
		})
	}

	if n := p.opts.Reel.Cards; n > 0 {
		reel, err := carousel.NewReel(p.clock, n, ms(p.opts.Reel.IntervalMS, carousel.ReelInterval), func(r carousel.Roles) {
			p.update(func(s *State) { s.Reel = r })
		})
		if err != nil {
			return err
		}
		p.reel = reel
		p.state.Reel = reel.Roles()
		p.on(event.MouseEnter, SelReel, func(event.Event) { p.reel.Hover() })
		p.on(event.MouseLeave, SelReel, func(event.Event) { p.reel.Leave() })
		p.on(event.Click, SelReel, func(event.Event) { p.reel.Click() })
	}
	return nil
}

func (p *Page) advanceShowcase() {
	p.mu.Lock()
	m := p.showcase.Next()
	p.state.Showcase = m
	p.mu.Unlock()

	if m.NeedsSnap {
		p.after(carousel.SnapDelay, func() {
			p.update(func(s *State) { s.Showcase = p.showcase.Snap() })
		})
	}
}

func (p *Page) mountLightbox() error {
	if !p.opts.Lightbox {
		return nil
	}
	p.lightbox = widget.NewLightbox(p.clock, func(st widget.LightboxState) {
		p.update(func(s *State) { s.Lightbox = st })
	})
	p.on(event.Click, SelVideoCard, func(ev event.Event) {
		p.lightbox.Open(ev.Data["video"], ev.Data["title"], ev.Data["desc"])
	})
	closeBox := func(event.Event) { p.lightbox.Close() }
	p.on(event.Click, SelLightboxClose, closeBox)
	p.on(event.Click, SelLightbox, closeBox)
	return nil
}

func (p *Page) mountForm() error {
	fo := p.opts.ContactForm
	if !fo.Enabled {
		return nil
	}

	poster := p.env.Poster
	if poster == nil {
		endpoint := fo.Endpoint
		if endpoint == "" {
			endpoint = DefaultEndpoint
		}
		poster = form.NewClient(endpoint)
	}
	buttonText := fo.ButtonText
	if buttonText == "" {
		buttonText = defaultButtonText
	}

	p.form = form.New()
	p.controller = form.NewController(p.form, poster, buttonText, func(st form.State) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.state.Form = st
		if st.ModalOpen {
			clear(p.invalid)
			p.state.InvalidFields = nil
			p.state.UploadName = ""
		}
	})
	p.state.Form = p.controller.State()
	p.state.FormStagger = widget.StaggerDelays(len(form.ContactFields)+1, widget.FormGroupStagger)
	p.state.DirectStagger = widget.StaggerDelays(fo.DirectItems, widget.DirectItemStagger)

	p.on(event.Input, SelContactForm, func(ev event.Event) {
		if p.form.Set(ev.Name, ev.Value) {
			p.markInvalid(ev.Name, false)
		}
	})
	p.on(event.Blur, SelContactForm, func(ev event.Event) {
		p.markInvalid(ev.Name, !p.form.Set(ev.Name, ev.Value))
	})
	p.on(event.Change, SelUpload, func(ev event.Event) {
		if ev.Value == "" {
			p.form.Attach(nil)
		} else {
			p.form.Attach(&form.File{Name: ev.Value, Data: ev.Payload})
		}
		name := p.form.Filename()
		p.update(func(s *State) { s.UploadName = name })
	})
	p.on(event.Submit, SelContactForm, func(event.Event) { p.submit() })
	p.on(event.Click, SelSubmitButton, p.ripple)

	closeModal := func(event.Event) { p.controller.CloseModal() }
	p.on(event.Click, SelModalClose, closeModal)
	p.on(event.Click, SelModal, closeModal)
	return nil
}

// markInvalid flags a required field; other names are ignored.
func (p *Page) markInvalid(name string, invalid bool) {
	if !slices.Contains(form.ContactFields, name) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalid[name] = invalid
	p.state.InvalidFields = p.state.InvalidFields[:0:0]
	for _, f := range form.ContactFields {
		if p.invalid[f] {
			p.state.InvalidFields = append(p.state.InvalidFields, f)
		}
	}
}

func (p *Page) submit() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if _, err := p.controller.Submit(p.ctx); err != nil {
			logger.Log.Debug("Contact form submission failed", "page", p.opts.Name, "error", err)
		}
	}()
}

func (p *Page) ripple(ev event.Event) {
	g := widget.Ripple(widget.Rect(ev.Rect), ev.X, ev.Y)
	ripple := &g
	p.update(func(s *State) { s.Ripple = ripple })
	p.after(widget.RippleLifetime, func() {
		p.update(func(s *State) {
			if s.Ripple == ripple {
				s.Ripple = nil
			}
		})
	})
}

func (p *Page) mountKeys() error {
	p.on(event.KeyDown, event.Document, func(ev event.Event) {
		if ev.Key != "Escape" {
			return
		}
		if p.menu != nil {
			p.menu.Close()
		}
		p.dismissDropdowns()
		if p.lightbox != nil {
			p.lightbox.Close()
		}
		if p.controller != nil {
			p.controller.CloseModal()
		}
	})
	return nil
}
