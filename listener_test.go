package thicket

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type emitted struct {
	kinds    []EventKind
	payloads []Payload
}

func (e *emitted) emit(kind EventKind, p Payload) {
	e.kinds = append(e.kinds, kind)
	e.payloads = append(e.payloads, p)
}

func (e *emitted) take() []EventKind {
	k := e.kinds
	e.kinds, e.payloads = nil, nil
	return k
}

func pressed(x, y float64) *InputFrame {
	f := &InputFrame{X: x, Y: y}
	f.Buttons[MouseButtonLeft] = true
	return f
}

func released(x, y float64) *InputFrame {
	return &InputFrame{X: x, Y: y}
}

func TestMouseClick(t *testing.T) {
	m := newMouseListener(DefaultConfig())
	var e emitted

	m.advance(10, 10, pressed(10, 10), e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventMouseDown}) {
		t.Errorf("press = %v, want [mouse-down]", got)
	}
	// Movement inside the dead zone is not a drag.
	m.advance(12, 11, pressed(12, 11), e.emit)
	if got := e.take(); len(got) != 0 {
		t.Errorf("small move = %v, want nothing", got)
	}
	m.advance(12, 11, released(12, 11), e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventClick, EventMouseUp}) {
		t.Errorf("release = %v, want [click mouse-up]", got)
	}
}

func TestMouseDrag(t *testing.T) {
	m := newMouseListener(DefaultConfig())
	var e emitted

	m.advance(0, 0, pressed(0, 0), e.emit)
	e.take()
	m.advance(10, 0, pressed(10, 0), e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventDragStart, EventDrag}) {
		t.Fatalf("move past dead zone = %v, want [drag-start drag]", got)
	}
	if !m.Dragging() {
		t.Error("Dragging should be true")
	}
	m.advance(15, 5, pressed(15, 5), e.emit)
	if len(e.payloads) != 1 {
		t.Fatalf("expected one drag event, got %v", e.kinds)
	}
	p := e.payloads[0].(DragPayload)
	if p.StartX != 0 || p.DeltaX != 5 || p.DeltaY != 5 {
		t.Errorf("drag payload = %+v", p)
	}
	e.take()

	m.advance(15, 5, released(15, 5), e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventDragEnd, EventMouseUp}) {
		t.Errorf("release = %v, want [drag-end mouse-up]", got)
	}
	if m.Dragging() {
		t.Error("Dragging should be false after release")
	}
}

func TestMouseDoubleClick(t *testing.T) {
	m := newMouseListener(DefaultConfig())
	var e emitted
	click := func() []EventKind {
		m.advance(5, 5, pressed(5, 5), e.emit)
		m.advance(5, 5, released(5, 5), e.emit)
		return e.take()
	}

	click()
	if got := click(); !slices.Contains(got, EventDoubleClick) {
		t.Errorf("second click = %v, want a double-click", got)
	}
	// A third click starts over.
	if got := click(); slices.Contains(got, EventDoubleClick) {
		t.Errorf("third click = %v, want no double-click", got)
	}
}

func TestMouseDoubleClickWindowExpires(t *testing.T) {
	cfg := DefaultConfig()
	m := newMouseListener(cfg)
	var e emitted

	m.advance(5, 5, pressed(5, 5), e.emit)
	m.advance(5, 5, released(5, 5), e.emit)
	for i := 0; i < cfg.DoubleClickTicks+1; i++ {
		m.advance(5, 5, released(5, 5), e.emit)
	}
	e.take()
	m.advance(5, 5, pressed(5, 5), e.emit)
	m.advance(5, 5, released(5, 5), e.emit)
	if got := e.take(); slices.Contains(got, EventDoubleClick) {
		t.Errorf("late click = %v, want no double-click", got)
	}
}

func TestMouseWheel(t *testing.T) {
	m := newMouseListener(DefaultConfig())
	var e emitted
	m.advance(3, 4, &InputFrame{X: 3, Y: 4, WheelY: -1}, e.emit)
	if len(e.kinds) != 1 || e.kinds[0] != EventWheel {
		t.Fatalf("kinds = %v, want [wheel]", e.kinds)
	}
	if w := e.payloads[0].(WheelPayload); w.DeltaY != -1 || w.X != 3 {
		t.Errorf("wheel payload = %+v", w)
	}
}

func TestKeyboardPressRepeatRelease(t *testing.T) {
	cfg := DefaultConfig()
	k := newKeyboardListener(cfg)
	var e emitted
	held := &InputFrame{Keys: []ebiten.Key{ebiten.KeyA}}

	k.advance(held, e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventKeyPressed}) {
		t.Fatalf("press = %v, want [key-pressed]", got)
	}

	// Hold through the delay plus two intervals.
	frames := cfg.KeyRepeatDelayTicks + 2*cfg.KeyRepeatIntervalTicks
	repeats := 0
	for i := 0; i < frames; i++ {
		k.advance(held, e.emit)
	}
	for _, p := range e.payloads {
		if kp := p.(KeyPayload); kp.Repeat {
			repeats++
		}
	}
	if repeats != 3 {
		t.Errorf("repeats = %d, want 3", repeats)
	}
	e.take()

	k.advance(&InputFrame{}, e.emit)
	if got := e.take(); !slices.Equal(got, []EventKind{EventKeyReleased}) {
		t.Errorf("release = %v, want [key-released]", got)
	}
}

func TestKeyboardOrder(t *testing.T) {
	k := newKeyboardListener(DefaultConfig())
	var e emitted
	k.advance(&InputFrame{Keys: []ebiten.Key{ebiten.KeyA}}, e.emit)
	e.take()

	k.advance(&InputFrame{Keys: []ebiten.Key{ebiten.KeyB}, Chars: []rune("bc")}, e.emit)
	want := []EventKind{EventKeyReleased, EventKeyPressed, EventKeyTyped, EventKeyTyped}
	if !slices.Equal(e.kinds, want) {
		t.Fatalf("kinds = %v, want %v", e.kinds, want)
	}
	if kp := e.payloads[0].(KeyPayload); kp.Key != ebiten.KeyA {
		t.Errorf("released key = %v, want A", kp.Key)
	}
	if kp := e.payloads[3].(KeyPayload); kp.Rune != 'c' {
		t.Errorf("typed rune = %q, want 'c'", kp.Rune)
	}
}

func TestKeyboardRepeatDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyRepeatDelayTicks = 0
	k := newKeyboardListener(cfg)
	var e emitted
	held := &InputFrame{Keys: []ebiten.Key{ebiten.KeySpace}}
	for i := 0; i < 100; i++ {
		k.advance(held, e.emit)
	}
	if len(e.kinds) != 1 {
		t.Errorf("got %d events, want only the initial press", len(e.kinds))
	}
}

func TestInputFrameReset(t *testing.T) {
	f := InputFrame{X: 1, WheelY: 2, Chars: []rune("ab"), Keys: []ebiten.Key{ebiten.KeyA}, Modifiers: ModShift}
	f.reset()
	if f.X != 0 || f.WheelY != 0 || len(f.Chars) != 0 || len(f.Keys) != 0 || f.Modifiers != 0 {
		t.Errorf("reset frame = %+v", f)
	}
	if cap(f.Chars) == 0 {
		t.Error("reset should keep slice capacity")
	}
}
