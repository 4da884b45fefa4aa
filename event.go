package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Event is a routed message delivered to a single control. Payload holds the
// kind-specific data; its concrete type is fixed per kind (see the accessors).
type Event struct {
	Kind    EventKind
	Target  ControlID
	Payload Payload
}

// Payload is implemented by the per-kind event payload types.
type Payload interface {
	payload()
}

// PointerPayload carries data for enter, over, leave, mouse-down, mouse-up,
// click and double-click events. X and Y are logical coordinates.
type PointerPayload struct {
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// WheelPayload carries wheel movement at the pointer position.
type WheelPayload struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Modifiers      KeyModifiers
}

// DragPayload carries drag data. StartX/StartY is where the button went down;
// DeltaX/DeltaY is the movement since the previous drag event.
type DragPayload struct {
	X, Y           float64
	StartX, StartY float64
	DeltaX, DeltaY float64
	Button         MouseButton
	Modifiers      KeyModifiers
}

// KeyPayload carries keyboard data. Rune is set only for key-typed events;
// Key is set only for key-pressed and key-released events.
type KeyPayload struct {
	Key       ebiten.Key
	Rune      rune
	Repeat    bool
	Modifiers KeyModifiers
}

// FocusPayload names the other side of a focus change: the previous holder
// for got-focus, the new holder for lost-focus. Either may be NoControl.
type FocusPayload struct {
	Other ControlID
}

func (PointerPayload) payload() {}
func (WheelPayload) payload()   {}
func (DragPayload) payload()    {}
func (KeyPayload) payload()     {}
func (FocusPayload) payload()   {}

// Pointer returns the pointer payload, if the event carries one.
func (e Event) Pointer() (PointerPayload, bool) {
	p, ok := e.Payload.(PointerPayload)
	return p, ok
}

// Wheel returns the wheel payload, if the event carries one.
func (e Event) Wheel() (WheelPayload, bool) {
	p, ok := e.Payload.(WheelPayload)
	return p, ok
}

// Drag returns the drag payload, if the event carries one.
func (e Event) Drag() (DragPayload, bool) {
	p, ok := e.Payload.(DragPayload)
	return p, ok
}

// Key returns the keyboard payload, if the event carries one.
func (e Event) Key() (KeyPayload, bool) {
	p, ok := e.Payload.(KeyPayload)
	return p, ok
}

// Focus returns the focus payload, if the event carries one.
func (e Event) Focus() (FocusPayload, bool) {
	p, ok := e.Payload.(FocusPayload)
	return p, ok
}

// Handler is the capability a control exposes to receive routed events.
// Handle is only called for kinds where Handles returns true.
type Handler interface {
	Handles(kind EventKind) bool
	Handle(ev Event)
}

// HandlerFuncs is a Handler built from one callback per event kind.
// Kinds without an entry are not handled.
type HandlerFuncs map[EventKind]func(Event)

// Handles reports whether a callback is registered for kind.
func (h HandlerFuncs) Handles(kind EventKind) bool {
	return h[kind] != nil
}

// Handle calls the callback registered for ev.Kind.
func (h HandlerFuncs) Handle(ev Event) {
	if fn := h[ev.Kind]; fn != nil {
		fn(ev)
	}
}

// Poster delivers a routed event to its target control.
type Poster interface {
	Post(ev Event)
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(ev Event)

// Post calls f(ev).
func (f PosterFunc) Post(ev Event) { f(ev) }
