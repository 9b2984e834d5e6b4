// Package pagefx holds the browser-side behaviors of the studio site as
// plain Go: scroll and pointer mappings, carousels, navigation, widgets
// and the contact form state. DOM events arrive through event.Source and
// timers through clock.Clock, so every behavior runs without a browser.
//
// Subpackages:
//
//	event     event kinds, the Source interface, an in-process Bus
//	clock     real and fake clocks, tickers
//	motion    scroll-to-visual mapping, frame coalescing, pointer effects
//	carousel  index arithmetic, cloned loops, pixel tracks, autoplay, reels
//	nav       mobile menu, dropdowns, accordions, smooth-scroll offsets
//	widget    FAQ, counters, lightbox, typewriter, ripple, reveal
//	form      field flags, submission controller, multipart client
//	page      declarative per-page options and Mount
package pagefx
