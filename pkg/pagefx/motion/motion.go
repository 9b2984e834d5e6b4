// Package motion maps scroll and pointer positions to the visual state of
// the hero lens, ghost text, light beam and trail.
package motion

import (
	"fmt"
	"math"
)

// Phase thresholds on normalized scroll progress.
const (
	CollapseThreshold = 0.12  // beam collapses into the trail
	FooterFadeStart   = 0.94  // trail fades over the last 6%
	VanishThreshold   = 0.999 // trail fully gone
)

const (
	trailStartX   = 0.12 // fraction of viewport width
	trailEndX     = 0.85
	trailStartY   = 0.12 // fraction of viewport height
	trailFadeRate = 1.6
)

// Viewport is the scroll state a frame is computed from.
type Viewport struct {
	ScrollY   float64
	DocHeight float64
	Width     float64
	Height    float64
}

// MaxScroll is the scrollable range; never negative.
func (v Viewport) MaxScroll() float64 {
	return math.Max(0, v.DocHeight-v.Height)
}

type Mode string

const (
	ModeBeam  Mode = "beam"
	ModeTrail Mode = "trail"
)

// Lens is the hero lens image state.
type Lens struct {
	X, Y    float64 // px
	Opacity float64
}

// Beam is the large light beam shown above the fold.
type Beam struct {
	LeftPct   float64
	TopPct    float64
	WidthVW   float64
	HeightVH  float64
	RotateDeg float64
	Opacity   float64
}

// Trail is the thin light trail that travels across the page.
type Trail struct {
	LeftPct     float64
	TopPct      float64
	HeightPx    float64
	Opacity     float64
	RGBOffsetPx float64
	GlowBlurPx  float64
	GlowAlpha   float64
	ShiftXPx    float64
}

// Frame is the full visual state for one scroll position.
type Frame struct {
	Progress float64
	Travel   float64
	Mode     Mode
	Lens     Lens
	GhostY   float64 // px, hero ghost text
	Beam     Beam
	Trail    Trail
}

// Progress is scrollY over the scrollable range, clamped to [0, 1].
// It is 0 when the page does not scroll.
func Progress(scrollY, docHeight, viewportHeight float64) float64 {
	max := docHeight - viewportHeight
	if max <= 0 {
		return 0
	}
	return clamp01(scrollY / max)
}

// EaseInOut is the quadratic ease used by the trail.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Compute maps a viewport to its frame. It is pure.
func Compute(v Viewport) Frame {
	p := Progress(v.ScrollY, v.DocHeight, v.Height)
	f := Frame{
		Progress: p,
		Lens: Lens{
			X:       p * 60,
			Y:       p * 30,
			Opacity: 0.32 + p*0.12,
		},
		GhostY: -(p * v.Height * 0.6),
	}

	if p <= CollapseThreshold {
		f.Mode = ModeBeam
		f.Beam = beamAt(v.ScrollY, p)
		f.Trail = trailAt(v, 0)
		f.Trail.Opacity = 0
	} else {
		// Beam geometry stays where it collapsed; only its opacity moves on
		f.Mode = ModeTrail
		f.Travel = (p - CollapseThreshold) / (1 - CollapseThreshold)
		f.Beam = beamAt(CollapseThreshold*v.MaxScroll(), CollapseThreshold)
		f.Beam.Opacity = math.Max(0, 1-f.Travel*trailFadeRate)
		f.Trail = trailAt(v, f.Travel)
		f.Trail.Opacity = math.Min(1, f.Travel*trailFadeRate)
	}

	if p >= FooterFadeStart {
		fade := clamp01((p - FooterFadeStart) / (1 - FooterFadeStart))
		f.Trail.Opacity = 1 - fade
		f.Trail.HeightPx = (1 - fade) * 140
		f.Trail.RGBOffsetPx = fade * 10
		f.Trail.GlowBlurPx = 20 - fade*20
		f.Trail.GlowAlpha = 0.25 - fade*0.25
		f.Trail.ShiftXPx = fade * 8
	}

	if p >= VanishThreshold {
		f.Trail.Opacity = 0
		f.Trail.HeightPx = 0
	}

	return f
}

func beamAt(scrollY, p float64) Beam {
	return Beam{
		LeftPct:   6 + scrollY*0.01,
		TopPct:    math.Min(6+scrollY*0.02, 28),
		WidthVW:   28 - p*8,
		HeightVH:  36 - p*12,
		RotateDeg: -8 + p*4,
		Opacity:   1,
	}
}

func trailAt(v Viewport, travel float64) Trail {
	t := EaseInOut(travel)
	tr := Trail{
		LeftPct:    (trailStartX + (trailEndX-trailStartX)*t) * 100,
		HeightPx:   16 + travel*v.Height*0.8,
		GlowBlurPx: 20,
		GlowAlpha:  0.25,
	}
	if v.Height > 0 {
		tr.TopPct = (trailStartY*v.Height + v.ScrollY*0.35) / v.Height * 100
	}
	return tr
}

// CTAGhostY is the call-to-action ghost text offset in px.
func CTAGhostY(scrollY float64) float64 {
	return scrollY * 0.10
}

// SectionGhostY offsets a section's ghost text by how far the section
// center sits from the viewport center, up to ±40px.
func SectionGhostY(sectionTop, sectionHeight, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	center := (sectionTop + sectionHeight/2) - viewportHeight/2
	return center / viewportHeight * 40
}

// BackgroundParallax moves a section background between -20px and +20px as
// the section crosses the viewport.
func BackgroundParallax(sectionTop, sectionHeight, viewportHeight float64) float64 {
	span := viewportHeight + sectionHeight
	if span <= 0 {
		return -20
	}
	return clamp01((viewportHeight-sectionTop)/span)*40 - 20
}

// HeroReelTrigger is the scroll distance over which the hero reel shrinks.
const HeroReelTrigger = 600.0

// HeroReel returns the reel scale and opacity. ok is false past the
// trigger, where the last written values stay.
func HeroReel(scrollY float64) (scale, opacity float64, ok bool) {
	if scrollY >= HeroReelTrigger {
		return 0, 0, false
	}
	p := math.Max(0, scrollY) / HeroReelTrigger
	return 1 - p*0.1, 1 - p*0.6, true
}

// LensParallax is the desktop pointer offset of the lens image.
func LensParallax(x, y, width, height float64) (dx, dy float64) {
	return (x - width/2) / 40, (y - height/2) / 40
}

// PressedScale is applied to the beam cursor while a button is held.
const PressedScale = 0.86

// Cursor is the beam cursor state.
type Cursor struct {
	X, Y    float64
	Pressed bool
	Hidden  bool // mobile user agents never show it
}

// Transform renders the CSS transform of the cursor.
func (c Cursor) Transform() string {
	s := fmt.Sprintf("translate(%spx, %spx)", num(c.X), num(c.Y))
	if c.Pressed {
		s += fmt.Sprintf(" scale(%s)", num(PressedScale))
	}
	return s
}

func num(f float64) string {
	return fmt.Sprintf("%g", f)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
