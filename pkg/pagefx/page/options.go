package page

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Options declares which behaviors a page runs. A behavior whose markup is
// absent is left off, the same way the page script skips missing elements.
type Options struct {
	Name         string  `koanf:"name" json:"name" yaml:"name"`
	HeaderHeight float64 `koanf:"header_height" json:"header_height,omitempty" yaml:"header_height,omitempty"`

	BeamCursor bool            `koanf:"beam_cursor" json:"beam_cursor" yaml:"beam_cursor"`
	Parallax   ParallaxOptions `koanf:"parallax" json:"parallax" yaml:"parallax"`
	Menu       MenuOptions     `koanf:"menu" json:"menu" yaml:"menu"`
	Dropdowns  DropdownOptions `koanf:"dropdowns" json:"dropdowns" yaml:"dropdowns"`
	Accordions int             `koanf:"accordions" json:"accordions,omitempty" yaml:"accordions,omitempty"`

	FAQItems    int   `koanf:"faq_items" json:"faq_items,omitempty" yaml:"faq_items,omitempty"`
	Counters    []int `koanf:"counters" json:"counters,omitempty" yaml:"counters,omitempty"`
	RevealItems int   `koanf:"reveal_items" json:"reveal_items,omitempty" yaml:"reveal_items,omitempty"`
	Videos      int   `koanf:"videos" json:"videos,omitempty" yaml:"videos,omitempty"`

	Showcase  LoopOptions  `koanf:"showcase" json:"showcase" yaml:"showcase"`
	WorkStrip StripOptions `koanf:"work_strip" json:"work_strip" yaml:"work_strip"`
	Reel      ReelOptions  `koanf:"reel" json:"reel" yaml:"reel"`
	Lightbox  bool         `koanf:"lightbox" json:"lightbox" yaml:"lightbox"`
	Typer     TyperOptions `koanf:"typer" json:"typer" yaml:"typer"`

	ContactForm FormOptions `koanf:"contact_form" json:"contact_form" yaml:"contact_form"`
}

type ParallaxOptions struct {
	Hero        bool `koanf:"hero" json:"hero" yaml:"hero"`                         // lens, ghost, beam and trail
	CTAGhost    bool `koanf:"cta_ghost" json:"cta_ghost" yaml:"cta_ghost"`          // .cta-ghost-text
	LensPointer bool `koanf:"lens_pointer" json:"lens_pointer" yaml:"lens_pointer"` // desktop only
}

type MenuOptions struct {
	Enabled bool `koanf:"enabled" json:"enabled" yaml:"enabled"`
	// Toggle makes the hamburger close an open menu instead of only opening it.
	Toggle bool `koanf:"toggle" json:"toggle" yaml:"toggle"`
}

type DropdownOptions struct {
	Count        int `koanf:"count" json:"count,omitempty" yaml:"count,omitempty"`
	OpenDelayMS  int `koanf:"open_delay_ms" json:"open_delay_ms,omitempty" yaml:"open_delay_ms,omitempty"`
	CloseDelayMS int `koanf:"close_delay_ms" json:"close_delay_ms,omitempty" yaml:"close_delay_ms,omitempty"`
	MinOpenMS    int `koanf:"min_open_ms" json:"min_open_ms,omitempty" yaml:"min_open_ms,omitempty"`
}

type LoopOptions struct {
	Items      int `koanf:"items" json:"items,omitempty" yaml:"items,omitempty"`
	IntervalMS int `koanf:"interval_ms" json:"interval_ms,omitempty" yaml:"interval_ms,omitempty"`
}

type StripOptions struct {
	Enabled     bool    `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Step        float64 `koanf:"step" json:"step,omitempty" yaml:"step,omitempty"`
	IntervalMS  int     `koanf:"interval_ms" json:"interval_ms,omitempty" yaml:"interval_ms,omitempty"`
	IdleMS      int     `koanf:"idle_ms" json:"idle_ms,omitempty" yaml:"idle_ms,omitempty"`
	MaxWidth    float64 `koanf:"max_width" json:"max_width,omitempty" yaml:"max_width,omitempty"` // media query breakpoint
	ScrollWidth float64 `koanf:"scroll_width" json:"scroll_width,omitempty" yaml:"scroll_width,omitempty"`
}

type ReelOptions struct {
	Cards      int `koanf:"cards" json:"cards,omitempty" yaml:"cards,omitempty"`
	IntervalMS int `koanf:"interval_ms" json:"interval_ms,omitempty" yaml:"interval_ms,omitempty"`
}

type TyperOptions struct {
	Text    string `koanf:"text" json:"text,omitempty" yaml:"text,omitempty"`
	DelayMS int    `koanf:"delay_ms" json:"delay_ms,omitempty" yaml:"delay_ms,omitempty"`
	LeadMS  int    `koanf:"lead_ms" json:"lead_ms,omitempty" yaml:"lead_ms,omitempty"`
}

type FormOptions struct {
	Enabled     bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Endpoint    string `koanf:"endpoint" json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ButtonText  string `koanf:"button_text" json:"button_text,omitempty" yaml:"button_text,omitempty"`
	DirectItems int    `koanf:"direct_items" json:"direct_items,omitempty" yaml:"direct_items,omitempty"`
}

// DefaultEndpoint is where the contact form posts.
const DefaultEndpoint = "/contact_api.php"

// Validate rejects counts and delays that cannot describe real markup.
func (o Options) Validate() error {
	var errs []error
	if o.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	nonNegative := map[string]int{
		"accordions":               o.Accordions,
		"faq_items":                o.FAQItems,
		"reveal_items":             o.RevealItems,
		"videos":                   o.Videos,
		"dropdowns.count":          o.Dropdowns.Count,
		"dropdowns.open_delay_ms":  o.Dropdowns.OpenDelayMS,
		"dropdowns.close_delay_ms": o.Dropdowns.CloseDelayMS,
		"dropdowns.min_open_ms":    o.Dropdowns.MinOpenMS,
		"showcase.items":           o.Showcase.Items,
		"showcase.interval_ms":     o.Showcase.IntervalMS,
		"work_strip.interval_ms":   o.WorkStrip.IntervalMS,
		"work_strip.idle_ms":       o.WorkStrip.IdleMS,
		"reel.interval_ms":         o.Reel.IntervalMS,
		"typer.delay_ms":           o.Typer.DelayMS,
		"typer.lead_ms":            o.Typer.LeadMS,
	}
	for _, key := range slices.Sorted(maps.Keys(nonNegative)) {
		if nonNegative[key] < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", key))
		}
	}
	if o.Reel.Cards == 1 {
		errs = append(errs, errors.New("reel.cards must be 0 or at least 2"))
	}
	for i, end := range o.Counters {
		if end < 0 {
			errs = append(errs, fmt.Errorf("counters[%d] must not be negative", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("page %q: %w", o.Name, errors.Join(errs...))
	}
	return nil
}

func ms(v int, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Millisecond
}

// Defaults are the built-in profiles of the site's pages.
func Defaults() map[string]Options {
	nav := MenuOptions{Enabled: true, Toggle: true}
	dropdowns := DropdownOptions{Count: 2, OpenDelayMS: 160, CloseDelayMS: 220}

	return map[string]Options{
		"home": {
			Name:       "home",
			BeamCursor: true,
			Parallax:   ParallaxOptions{Hero: true, CTAGhost: true, LensPointer: true},
			Menu:       nav,
			Dropdowns:  dropdowns,
			Accordions: 2,
			FAQItems:   6,
			Showcase:   LoopOptions{Items: 6, IntervalMS: 4500},
			WorkStrip:  StripOptions{Enabled: true, Step: 260, IntervalMS: 2800, IdleMS: 3500, MaxWidth: 768},
			Lightbox:   true,
		},
		"about": {
			Name:         "about",
			HeaderHeight: 76,
			BeamCursor:   true,
			Menu:         nav,
			Dropdowns:    DropdownOptions{Count: 2, MinOpenMS: 1000},
			Accordions:   2,
			FAQItems:     5,
			Counters:     []int{120, 45, 8},
			RevealItems:  6,
		},
		"portfolio": {
			Name:         "portfolio",
			HeaderHeight: 76,
			BeamCursor:   true,
			Menu:         nav,
			Dropdowns:    dropdowns,
			Accordions:   2,
			Lightbox:     true,
			Videos:       8,
		},
		"contact": {
			Name:       "contact",
			BeamCursor: true,
			Menu:       nav,
			Dropdowns:  dropdowns,
			Accordions: 2,
			Reel:       ReelOptions{Cards: 3, IntervalMS: 4000},
			Typer:      TyperOptions{Text: "Tell us about your next video.", DelayMS: 26, LeadMS: 220},
			ContactForm: FormOptions{
				Enabled:     true,
				Endpoint:    DefaultEndpoint,
				ButtonText:  "Send Message",
				DirectItems: 3,
			},
		},
	}
}
