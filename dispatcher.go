package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Dispatcher turns per-tick input snapshots into routed events.
//
// Each Tick transforms the pointer, re-runs the mouse-over pass when the
// pointer moved or the tree is dirty, then advances the mouse and keyboard
// listeners. Discrete events read the mouse-over state the same tick just
// produced. Pointer events go to the resolver's target, drag events to the
// drag session, and keyboard events to the focused control.
type Dispatcher struct {
	tree     *Tree
	resolver *Resolver
	drag     *DragSession
	focus    *FocusManager
	poster   Poster

	mouse MouseListener
	keys  KeyboardListener

	x, y   float64
	primed bool

	// per-tick counters, read by the Stage in debug mode
	transitions int
	events      int
}

// NewDispatcher wires the listeners to the given routing components.
func NewDispatcher(tree *Tree, resolver *Resolver, drag *DragSession, focus *FocusManager, poster Poster, cfg Config) *Dispatcher {
	return &Dispatcher{
		tree:     tree,
		resolver: resolver,
		drag:     drag,
		focus:    focus,
		poster:   poster,
		mouse:    newMouseListener(cfg),
		keys:     newKeyboardListener(cfg),
	}
}

// Pointer returns the last logical pointer position.
func (d *Dispatcher) Pointer() (x, y float64) {
	return d.x, d.y
}

// Mouse returns the mouse listener state.
func (d *Dispatcher) Mouse() *MouseListener {
	return &d.mouse
}

// Tick processes one input snapshot.
func (d *Dispatcher) Tick(f *InputFrame) {
	d.transitions, d.events = 0, 0

	x, y := d.resolver.Apply(f.X, f.Y)
	moved := !d.primed || x != d.x || y != d.y
	d.x, d.y, d.primed = x, y, true

	if moved || d.tree.Dirty() {
		// Cleared first so changes made by enter/leave handlers are picked
		// up next tick.
		d.tree.clearDirty()
		d.transitions = len(d.resolver.UpdateOver(x, y, d.drag.Target()))
	}

	d.mouse.advance(x, y, f, d.onMouse)
	d.keys.advance(f, d.onKey)
}

func (d *Dispatcher) onMouse(kind EventKind, p Payload) {
	d.events++
	switch kind {
	case EventDragStart:
		d.drag.Begin(p.(DragPayload))
	case EventDrag:
		d.drag.Move(p.(DragPayload))
	case EventDragEnd:
		d.drag.End(p.(DragPayload))
	case EventWheel:
		w := p.(WheelPayload)
		d.postTo(d.resolver.Target(w.X, w.Y), kind, p)
	default:
		pp := p.(PointerPayload)
		d.postTo(d.resolver.Target(pp.X, pp.Y), kind, p)
	}
}

func (d *Dispatcher) onKey(kind EventKind, p Payload) {
	d.events++
	focused := d.focus.Focused()
	if focused == NoControl {
		return
	}
	kp := p.(KeyPayload)
	if kind == EventKeyPressed && kp.Key == ebiten.KeyTab {
		d.focus.Cycle(kp.Modifiers.Has(ModShift))
		return
	}
	d.poster.Post(Event{Kind: kind, Target: focused, Payload: p})
}

func (d *Dispatcher) postTo(target ControlID, kind EventKind, p Payload) {
	if target == NoControl {
		return
	}
	d.poster.Post(Event{Kind: kind, Target: target, Payload: p})
}
