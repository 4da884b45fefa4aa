package thicket

// --- Handler registry ---

type listener struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byKind [eventKindCount][]listener
	nextID uint32
}

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind EventKind
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.kind >= eventKindCount {
		return
	}
	s := h.reg.byKind[h.kind]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byKind[h.kind] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(kind EventKind, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byKind[kind] = append(r.byKind[kind], listener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, kind: kind}
}

func (r *handlerRegistry) fire(ev Event) {
	for _, l := range r.byKind[ev.Kind] {
		l.fn(ev)
	}
}

// On registers a stage-level callback that observes every delivered event of
// the given kind, before the target control's handler runs.
func (s *Stage) On(kind EventKind, fn func(Event)) CallbackHandle {
	if kind >= eventKindCount {
		return CallbackHandle{}
	}
	return s.handlers.add(kind, fn)
}

// --- ECS bridge ---

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, routed events for controls with a non-zero EntityID
// are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event RoutedEvent)
}

// RoutedEvent is the flattened form of an Event for the ECS bridge.
type RoutedEvent struct {
	Kind      EventKind
	Control   ControlID
	EntityID  uint32
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX, StartY float64
	DeltaX, DeltaY float64
	// Key fields (valid for key events)
	Key  int
	Rune rune
	// Focus field (valid for EventGotFocus, EventLostFocus)
	Other ControlID
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Stage) emitRoutedEvent(ev Event, entityID uint32) {
	if s.store == nil || entityID == 0 {
		return
	}
	re := RoutedEvent{Kind: ev.Kind, Control: ev.Target, EntityID: entityID}
	switch p := ev.Payload.(type) {
	case PointerPayload:
		re.X, re.Y = p.X, p.Y
		re.Button, re.Modifiers = p.Button, p.Modifiers
	case WheelPayload:
		re.X, re.Y = p.X, p.Y
		re.DeltaX, re.DeltaY = p.DeltaX, p.DeltaY
		re.Modifiers = p.Modifiers
	case DragPayload:
		re.X, re.Y = p.X, p.Y
		re.StartX, re.StartY = p.StartX, p.StartY
		re.DeltaX, re.DeltaY = p.DeltaX, p.DeltaY
		re.Button, re.Modifiers = p.Button, p.Modifiers
	case KeyPayload:
		re.Key, re.Rune, re.Modifiers = int(p.Key), p.Rune, p.Modifiers
	case FocusPayload:
		re.Other = p.Other
	}
	s.store.EmitEvent(re)
}
