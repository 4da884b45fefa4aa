package thicket

// Rect is an axis-aligned rectangle in logical coordinates. The origin is at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EventKind identifies a kind of routed event.
type EventKind uint8

const (
	EventEnter       EventKind = iota // pointer entered a control's area this tick
	EventOver                         // pointer is still over the control
	EventLeave                        // pointer left the control's area
	EventMouseDown                    // a mouse button was pressed
	EventMouseUp                      // a mouse button was released
	EventClick                        // press then release without dragging
	EventDoubleClick                  // two clicks inside the double-click window
	EventWheel                        // the wheel moved
	EventDragStart                    // movement exceeded the drag dead zone
	EventDrag                         // the pointer moved while captured
	EventDragEnd                      // the button was released while captured
	EventKeyTyped                     // a character was typed
	EventKeyPressed                   // a key went down (or auto-repeated)
	EventKeyReleased                  // a key went up
	EventGotFocus                     // the control became the focused control
	EventLostFocus                    // the control stopped being the focused control

	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	"enter", "over", "leave",
	"mouse-down", "mouse-up", "click", "double-click", "wheel",
	"drag-start", "drag", "drag-end",
	"key-typed", "key-pressed", "key-released",
	"got-focus", "lost-focus",
}

// String returns the kind's lower-case name.
func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m are set.
func (mods KeyModifiers) Has(m KeyModifiers) bool {
	return mods&m == m
}
