package live

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/roach88/tickinput/internal/binding"
)

// DefaultHoldTimeout covers the initial key-repeat delay of common terminals.
const DefaultHoldTimeout = 500 * time.Millisecond

// TcellBackend turns tcell events into input levels.
//
// Events arrive on the goroutine running Pump (or any caller of
// HandleEvent); levels are read by the tick loop. Reads only see the state
// captured by the most recent Poll.
type TcellBackend struct {
	holdTimeout time.Duration

	mu      sync.Mutex
	keys    map[tcell.Key]time.Time
	runes   map[rune]time.Time
	buttons tcell.ButtonMask
	lastX   int
	lastY   int
	havePos bool
	dx, dy  float64
	sink    func(dx, dy float64)

	// written by Poll; Pressed reads only these
	polledKeys   map[tcell.Key]bool
	polledRunes  map[rune]bool
	polledButton tcell.ButtonMask
}

// TcellOption configures a TcellBackend.
type TcellOption func(*TcellBackend)

// WithHoldTimeout sets how long a key stays down after its last event.
func WithHoldTimeout(d time.Duration) TcellOption {
	return func(b *TcellBackend) {
		if d > 0 {
			b.holdTimeout = d
		}
	}
}

// NewTcellBackend creates a backend with no keys down.
func NewTcellBackend(opts ...TcellOption) *TcellBackend {
	b := &TcellBackend{
		holdTimeout: DefaultHoldTimeout,
		keys:        make(map[tcell.Key]time.Time),
		runes:       make(map[rune]time.Time),
		polledKeys:  make(map[tcell.Key]bool),
		polledRunes: make(map[rune]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HoldTimeout returns the configured hold timeout.
func (b *TcellBackend) HoldTimeout() time.Duration {
	return b.holdTimeout
}

// SetMotionSink registers the receiver of pointer motion. Motion is
// delivered from Poll.
func (b *TcellBackend) SetMotionSink(fn func(dx, dy float64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink = fn
}

// HandleEvent records a key or mouse event. Returns false for events the
// backend does not track.
func (b *TcellBackend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b.mu.Lock()
		defer b.mu.Unlock()
		if ev.Key() == tcell.KeyRune {
			b.runes[ev.Rune()] = ev.When()
		} else {
			b.keys[ev.Key()] = ev.When()
		}
		return true

	case *tcell.EventMouse:
		b.mu.Lock()
		defer b.mu.Unlock()
		x, y := ev.Position()
		if b.havePos {
			b.dx += float64(x - b.lastX)
			b.dy += float64(y - b.lastY)
		}
		b.lastX, b.lastY, b.havePos = x, y, true
		b.buttons = ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		return true
	}
	return false
}

// Poll captures the levels for this frame and forwards accumulated motion
// to the sink. Events handled after Poll are not visible until the next Poll.
func (b *TcellBackend) Poll(now time.Time) {
	b.mu.Lock()
	b.polledButton = b.buttons
	clear(b.polledKeys)
	for k, seen := range b.keys {
		if now.Sub(seen) > b.holdTimeout {
			delete(b.keys, k)
			continue
		}
		b.polledKeys[k] = true
	}
	clear(b.polledRunes)
	for r, seen := range b.runes {
		if now.Sub(seen) > b.holdTimeout {
			delete(b.runes, r)
			continue
		}
		b.polledRunes[r] = true
	}
	dx, dy, sink := b.dx, b.dy, b.sink
	b.dx, b.dy = 0, 0
	b.mu.Unlock()

	if sink != nil && (dx != 0 || dy != 0) {
		sink(dx, dy)
	}
}

// Pressed reports whether t was down at the last Poll.
func (b *TcellBackend) Pressed(t binding.Trigger) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case t.Key != "":
		k, ok := keyNames[t.Key]
		if !ok {
			return false
		}
		return b.polledKeys[k]
	case t.Rune != "":
		r, _ := utf8.DecodeRuneInString(t.Rune)
		return b.polledRunes[r]
	case t.Mouse != "":
		btn := mouseButton(t.Mouse)
		return btn != tcell.ButtonNone && b.polledButton&btn != 0
	}
	return false
}

// Strength is 1 while the trigger is pressed and 0 otherwise. Terminals
// report no analog pressure.
func (b *TcellBackend) Strength(t binding.Trigger) float64 {
	if b.Pressed(t) {
		return 1
	}
	return 0
}

// EventSource is the part of tcell.Screen that Pump reads from.
type EventSource interface {
	PollEvent() tcell.Event
}

// Pump feeds events from screen into b until the screen is finalised or ctx
// is done. Every event, tracked or not, is also passed to onEvent when it is
// non-nil; Pump stops if onEvent returns false.
func (b *TcellBackend) Pump(ctx context.Context, screen EventSource, onEvent func(tcell.Event) bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		b.HandleEvent(ev)
		if onEvent != nil && !onEvent(ev) {
			return
		}
	}
}

var (
	_ Backend        = (*TcellBackend)(nil)
	_ MotionProducer = (*TcellBackend)(nil)
)
