package thicket

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputFrame is a snapshot of hardware input for one tick.
type InputFrame struct {
	// X and Y are the pointer position in window coordinates.
	X, Y float64
	// Buttons holds the pressed state per MouseButton.
	Buttons [mouseButtonCount]bool
	// WheelX and WheelY are the wheel movement since the previous tick.
	WheelX, WheelY float64
	// Chars are the characters typed since the previous tick.
	Chars []rune
	// Keys are the keys currently held down.
	Keys      []ebiten.Key
	Modifiers KeyModifiers

	// holdPointer marks injected frames that reuse the previous frame's
	// pointer position and buttons.
	holdPointer bool
}

// reset clears f for reuse, keeping slice capacity.
func (f *InputFrame) reset() {
	chars, keys := f.Chars[:0], f.Keys[:0]
	*f = InputFrame{Chars: chars, Keys: keys}
}

// emitFunc receives discrete events produced by a listener.
type emitFunc func(kind EventKind, p Payload)

// --- Mouse ---

// MouseListener turns per-tick pointer snapshots into discrete mouse events:
// down, up, click, double-click, drag-start, drag, drag-end and wheel.
type MouseListener struct {
	deadZone    float64
	dblTicks    int
	dblDistance float64

	tick     uint64
	down     bool
	button   MouseButton // button captured at press time
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool

	lastClick       bool
	lastClickTick   uint64
	lastClickX      float64
	lastClickY      float64
	lastClickButton MouseButton
}

func newMouseListener(cfg Config) MouseListener {
	return MouseListener{
		deadZone:    cfg.DragDeadZone,
		dblTicks:    cfg.DoubleClickTicks,
		dblDistance: cfg.DoubleClickDistance,
	}
}

// Dragging reports whether the held button has moved past the dead zone.
func (m *MouseListener) Dragging() bool {
	return m.dragging
}

// advance runs the pointer state machine for the logical position (x, y).
func (m *MouseListener) advance(x, y float64, f *InputFrame, emit emitFunc) {
	m.tick++
	mods := f.Modifiers

	// If the pointer is already down, keep the button from press time.
	var pressed bool
	button := MouseButtonLeft
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		if f.Buttons[b] {
			pressed = true
			button = b
			break
		}
	}

	switch {
	case pressed && !m.down:
		m.down = true
		m.button = button
		m.startX, m.startY = x, y
		m.lastX, m.lastY = x, y
		m.dragging = false
		emit(EventMouseDown, PointerPayload{X: x, Y: y, Button: button, Modifiers: mods})

	case !pressed && m.down:
		if m.dragging {
			emit(EventDragEnd, DragPayload{
				X: x, Y: y, StartX: m.startX, StartY: m.startY,
				DeltaX: x - m.lastX, DeltaY: y - m.lastY,
				Button: m.button, Modifiers: mods,
			})
		} else {
			p := PointerPayload{X: x, Y: y, Button: m.button, Modifiers: mods}
			emit(EventClick, p)
			if m.isDoubleClick(x, y) {
				m.lastClick = false
				emit(EventDoubleClick, p)
			} else {
				m.lastClick = true
				m.lastClickTick = m.tick
				m.lastClickX, m.lastClickY = x, y
				m.lastClickButton = m.button
			}
		}
		emit(EventMouseUp, PointerPayload{X: x, Y: y, Button: m.button, Modifiers: mods})
		m.down = false
		m.dragging = false

	case pressed && m.down:
		if x != m.lastX || y != m.lastY {
			if !m.dragging {
				dx := x - m.startX
				dy := y - m.startY
				if math.Sqrt(dx*dx+dy*dy) > m.deadZone {
					m.dragging = true
					emit(EventDragStart, DragPayload{
						X: x, Y: y, StartX: m.startX, StartY: m.startY,
						DeltaX: dx, DeltaY: dy,
						Button: m.button, Modifiers: mods,
					})
				}
			}
			if m.dragging {
				emit(EventDrag, DragPayload{
					X: x, Y: y, StartX: m.startX, StartY: m.startY,
					DeltaX: x - m.lastX, DeltaY: y - m.lastY,
					Button: m.button, Modifiers: mods,
				})
			}
		}
		m.lastX, m.lastY = x, y
	}

	if f.WheelX != 0 || f.WheelY != 0 {
		emit(EventWheel, WheelPayload{X: x, Y: y, DeltaX: f.WheelX, DeltaY: f.WheelY, Modifiers: mods})
	}
}

func (m *MouseListener) isDoubleClick(x, y float64) bool {
	if !m.lastClick || m.lastClickButton != m.button {
		return false
	}
	if m.tick-m.lastClickTick > uint64(m.dblTicks) {
		return false
	}
	dx := x - m.lastClickX
	dy := y - m.lastClickY
	return math.Sqrt(dx*dx+dy*dy) <= m.dblDistance
}

// --- Keyboard ---

type heldKey struct {
	key   ebiten.Key
	ticks int
}

// KeyboardListener turns per-tick key snapshots into key-pressed (with
// auto-repeat), key-released and key-typed events.
type KeyboardListener struct {
	repeatDelay    int
	repeatInterval int

	held []heldKey
}

func newKeyboardListener(cfg Config) KeyboardListener {
	return KeyboardListener{
		repeatDelay:    cfg.KeyRepeatDelayTicks,
		repeatInterval: cfg.KeyRepeatIntervalTicks,
	}
}

// advance emits releases first, then presses and repeats in the frame's key
// order, then typed characters.
func (k *KeyboardListener) advance(f *InputFrame, emit emitFunc) {
	mods := f.Modifiers

	kept := k.held[:0]
	for _, h := range k.held {
		if containsKey(f.Keys, h.key) {
			kept = append(kept, h)
			continue
		}
		emit(EventKeyReleased, KeyPayload{Key: h.key, Modifiers: mods})
	}
	k.held = kept

	for _, key := range f.Keys {
		i := k.indexOf(key)
		if i < 0 {
			k.held = append(k.held, heldKey{key: key})
			emit(EventKeyPressed, KeyPayload{Key: key, Modifiers: mods})
			continue
		}
		k.held[i].ticks++
		if k.shouldRepeat(k.held[i].ticks) {
			emit(EventKeyPressed, KeyPayload{Key: key, Repeat: true, Modifiers: mods})
		}
	}

	for _, r := range f.Chars {
		emit(EventKeyTyped, KeyPayload{Rune: r, Modifiers: mods})
	}
}

func (k *KeyboardListener) shouldRepeat(ticks int) bool {
	if k.repeatDelay <= 0 || ticks < k.repeatDelay {
		return false
	}
	interval := k.repeatInterval
	if interval <= 0 {
		interval = 1
	}
	return (ticks-k.repeatDelay)%interval == 0
}

func (k *KeyboardListener) indexOf(key ebiten.Key) int {
	for i := range k.held {
		if k.held[i].key == key {
			return i
		}
	}
	return -1
}

func containsKey(keys []ebiten.Key, key ebiten.Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
