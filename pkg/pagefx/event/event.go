// Package event models DOM events as values delivered through an
// injectable Source.
package event

import (
	"sort"
	"sync"
)

// Kind names a DOM event type.
type Kind string

const (
	Scroll      Kind = "scroll"
	Resize      Kind = "resize"
	PointerMove Kind = "mousemove"
	PointerDown Kind = "mousedown"
	PointerUp   Kind = "mouseup"
	TouchStart  Kind = "touchstart"
	Wheel       Kind = "wheel"
	Click       Kind = "click"
	KeyDown     Kind = "keydown"
	MouseEnter  Kind = "mouseenter"
	MouseLeave  Kind = "mouseleave"
	Input       Kind = "input"
	Blur        Kind = "blur"
	Change      Kind = "change"
	Submit      Kind = "submit"
	MediaChange Kind = "mediachange"
	Visible     Kind = "visible" // element entered the viewport

	VideoLoadStart Kind = "loadstart"
	VideoWaiting   Kind = "waiting"
	VideoCanPlay   Kind = "canplay"
	VideoPlaying   Kind = "playing"
	VideoError     Kind = "error"
)

// Document is the target of window and document level listeners. Handlers
// subscribed on Document see every event of their kind.
const Document = ""

// Event is one DOM event. Only the fields relevant to Kind are set.
type Event struct {
	Kind   Kind
	Target string // element selector, e.g. "#hamburger"
	Index  int    // position among elements sharing Target

	X, Y          float64 // pointer position
	ScrollY       float64
	Width, Height float64 // viewport, on Resize
	Rect          Rect    // target bounding rect, in viewport pixels
	Key           string
	Name          string            // form control name
	Value         string            // form control value or file name
	Data          map[string]string // data-* attributes of the target
	Payload       []byte            // file contents, on Change of a file input
	Matches       bool              // media query state, on MediaChange
}

// Rect is an element bounding box.
type Rect struct {
	Left, Top, Width, Height float64
}

// Handler receives events.
type Handler func(Event)

// Subscription is released with Unsubscribe. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Source delivers events of kind on target to h until the subscription is
// released.
type Source interface {
	Subscribe(kind Kind, target string, h Handler) Subscription
}

// Bus is an in-process Source. Emit calls handlers synchronously, in
// subscription order, with no lock held.
type Bus struct {
	mu       sync.Mutex
	seq      uint64
	handlers map[uint64]entry
}

type entry struct {
	kind    Kind
	target  string
	handler Handler
}

var _ Source = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{handlers: make(map[uint64]entry)}
}

func (b *Bus) Subscribe(kind Kind, target string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := b.seq
	b.handlers[id] = entry{kind: kind, target: target, handler: h}

	return &subscription{release: func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}}
}

// Emit delivers ev to handlers on its target and on Document.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	ids := make([]uint64, 0, len(b.handlers))
	for id, e := range b.handlers {
		if e.kind == ev.Kind && (e.target == Document || e.target == ev.Target) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	hs := make([]Handler, 0, len(ids))
	for _, id := range ids {
		hs = append(hs, b.handlers[id].handler)
	}
	b.mu.Unlock()

	for _, h := range hs {
		h(ev)
	}
}

// Len is the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

type subscription struct {
	once    sync.Once
	release func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.release)
}

// Group collects subscriptions for bulk teardown.
type Group struct {
	mu     sync.Mutex
	subs   []Subscription
	closed bool
}

// Add keeps subs until Close. Adding to a closed group releases them at once.
func (g *Group) Add(subs ...Subscription) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		for _, s := range subs {
			s.Unsubscribe()
		}
		return
	}
	g.subs = append(g.subs, subs...)
	g.mu.Unlock()
}

// On subscribes through src and keeps the subscription.
func (g *Group) On(src Source, kind Kind, target string, h Handler) {
	g.Add(src.Subscribe(kind, target, h))
}

// Close releases every subscription in reverse order.
func (g *Group) Close() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.closed = true
	g.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
}
