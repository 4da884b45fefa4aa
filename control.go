package thicket

import "log/slog"

// ControlID addresses a control inside a Tree. IDs are never reused.
type ControlID uint32

// NoControl is the zero ControlID. Resolution returns it when nothing is hit.
const NoControl ControlID = 0

// Control is one participant in hit testing and event routing. A single flat
// struct is used for every control variant; behavior is attached through
// Handler and OnUpdate rather than by embedding.
//
// Fields may be mutated directly. Call Tree.MarkDirty after changing Area,
// ZOrder, Visible, Enabled or Interactive so the next tick re-resolves
// mouse-over state, or use the Tree setters which do it for you.
type Control struct {
	// Identity
	ID   ControlID
	Name string

	// Hit testing
	Area        Rect
	ZOrder      int
	Visible     bool
	Enabled     bool
	Interactive bool

	// Update ordering. UpdateOrder is only meaningful when Updatable is set;
	// controls without the flag rank as update order 0 in tie-breaks.
	Updatable   bool
	UpdateOrder int
	OnUpdate    func(dt float64)

	// Keyboard focus
	Focusable bool
	TabOrder  int
	Modal     bool

	// Event delivery
	Handler Handler

	// Metadata
	UserData any
	EntityID uint32

	parent   ControlID
	children []ControlID
	disposed bool
}

// NewControl creates a visible, enabled, interactive control covering area.
func NewControl(name string, area Rect) *Control {
	return &Control{
		Name:        name,
		Area:        area,
		Visible:     true,
		Enabled:     true,
		Interactive: true,
	}
}

// Parent returns the parent ID, or NoControl for a root control.
func (c *Control) Parent() ControlID {
	return c.parent
}

// Children returns the child IDs in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (c *Control) Children() []ControlID {
	return c.children
}

// IsDisposed reports whether the control has been removed from its tree.
func (c *Control) IsDisposed() bool {
	return c.disposed
}

// effectiveUpdateOrder is the update order used for tie-breaks.
func (c *Control) effectiveUpdateOrder() int {
	if c.Updatable {
		return c.UpdateOrder
	}
	return 0
}

// Tree is an arena of controls addressed by ControlID. Parent and child links
// are stored as IDs, so walks never follow owning pointers.
type Tree struct {
	controls     []*Control // index id-1; nil once removed
	roots        []ControlID
	dirty        bool
	disposeHooks []func(ControlID)

	debug  bool
	logger *slog.Logger
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{logger: discardLogger}
}

// Add inserts c as the last child of parent (or as a root when parent is
// NoControl) and returns its new ID.
// Panics if c is nil, already in a tree, or parent is not a live control.
func (t *Tree) Add(parent ControlID, c *Control) ControlID {
	if c == nil {
		panic("thicket: cannot add nil control")
	}
	if c.ID != NoControl || c.disposed {
		panic("thicket: control already belongs to a tree")
	}
	var p *Control
	if parent != NoControl {
		p = t.Get(parent)
		if p == nil {
			panic("thicket: parent control does not exist")
		}
	}
	t.controls = append(t.controls, c)
	c.ID = ControlID(len(t.controls))
	c.parent = parent
	if p != nil {
		p.children = append(p.children, c.ID)
	} else {
		t.roots = append(t.roots, c.ID)
	}
	t.dirty = true
	if t.debug {
		debugCheckTreeDepth(t, c.ID)
		if p != nil {
			debugCheckChildCount(t, p)
		}
	}
	return c.ID
}

// Get returns the control for id, or nil if id is unknown or removed.
func (t *Tree) Get(id ControlID) *Control {
	if id == NoControl || int(id) > len(t.controls) {
		return nil
	}
	return t.controls[id-1]
}

// Alive reports whether id names a control currently in the tree.
func (t *Tree) Alive(id ControlID) bool {
	return t.Get(id) != nil
}

// Len returns the number of live controls.
func (t *Tree) Len() int {
	n := 0
	for _, c := range t.controls {
		if c != nil {
			n++
		}
	}
	return n
}

// Parent returns the parent of id, or NoControl.
func (t *Tree) Parent(id ControlID) ControlID {
	if c := t.Get(id); c != nil {
		return c.parent
	}
	return NoControl
}

// Roots returns the root IDs in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (t *Tree) Roots() []ControlID {
	return t.roots
}

// Reparent moves id to the end of newParent's children (or to the roots when
// newParent is NoControl). Panics if the move would create a cycle.
func (t *Tree) Reparent(id, newParent ControlID) {
	c := t.Get(id)
	if c == nil {
		return
	}
	if newParent != NoControl {
		if !t.Alive(newParent) {
			panic("thicket: parent control does not exist")
		}
		if t.IsAncestor(id, newParent) {
			panic("thicket: reparenting would create a cycle")
		}
	}
	t.detach(c)
	c.parent = newParent
	if newParent != NoControl {
		p := t.Get(newParent)
		p.children = append(p.children, id)
	} else {
		t.roots = append(t.roots, id)
	}
	t.dirty = true
}

// Remove detaches id from its parent and disposes it with its whole subtree.
// Dispose hooks run once for every removed control, children first.
func (t *Tree) Remove(id ControlID) {
	c := t.Get(id)
	if c == nil {
		return
	}
	t.detach(c)
	t.dispose(c)
	t.dirty = true
}

func (t *Tree) dispose(c *Control) {
	for _, child := range c.children {
		if cc := t.Get(child); cc != nil {
			t.dispose(cc)
		}
	}
	id := c.ID
	for _, hook := range t.disposeHooks {
		hook(id)
	}
	t.controls[id-1] = nil
	c.disposed = true
	c.children = nil
	c.parent = NoControl
	c.Handler = nil
	c.OnUpdate = nil
	c.UserData = nil
}

// detach removes c from its parent's child list (or the root list)
// without clearing c.parent.
func (t *Tree) detach(c *Control) {
	if c.parent == NoControl {
		t.roots = removeID(t.roots, c.ID)
		return
	}
	if p := t.Get(c.parent); p != nil {
		p.children = removeID(p.children, c.ID)
	}
}

func removeID(s []ControlID, id ControlID) []ControlID {
	for i := range s {
		if s[i] == id {
			copy(s[i:], s[i+1:])
			return s[:len(s)-1]
		}
	}
	return s
}

// OnDispose registers fn to be called with the ID of every removed control.
func (t *Tree) OnDispose(fn func(ControlID)) {
	t.disposeHooks = append(t.disposeHooks, fn)
}

// --- Walks ---

// Walk appends every live control to buf in enumeration order: roots in
// insertion order, each followed depth-first by its children in insertion
// order.
func (t *Tree) Walk(buf []ControlID) []ControlID {
	for _, r := range t.roots {
		buf = t.appendSubtree(r, buf)
	}
	return buf
}

func (t *Tree) appendSubtree(id ControlID, buf []ControlID) []ControlID {
	c := t.Get(id)
	if c == nil {
		return buf
	}
	buf = append(buf, id)
	for _, child := range c.children {
		buf = t.appendSubtree(child, buf)
	}
	return buf
}

// Descendants appends the flattened descendants of id (not id itself) to buf
// in depth-first order.
func (t *Tree) Descendants(id ControlID, buf []ControlID) []ControlID {
	c := t.Get(id)
	if c == nil {
		return buf
	}
	for _, child := range c.children {
		buf = t.appendSubtree(child, buf)
	}
	return buf
}

// Ancestors appends the ancestors of id to buf, nearest first.
func (t *Tree) Ancestors(id ControlID, buf []ControlID) []ControlID {
	for p := t.Parent(id); p != NoControl; p = t.Parent(p) {
		buf = append(buf, p)
	}
	return buf
}

// IsAncestor reports whether candidate is id or one of its ancestors.
func (t *Tree) IsAncestor(candidate, id ControlID) bool {
	for p := id; p != NoControl; p = t.Parent(p) {
		if p == candidate {
			return true
		}
	}
	return false
}

// EffectivelyVisible reports whether id and every ancestor are visible.
func (t *Tree) EffectivelyVisible(id ControlID) bool {
	for p := id; p != NoControl; {
		c := t.Get(p)
		if c == nil || !c.Visible {
			return false
		}
		p = c.parent
	}
	return id != NoControl
}

// --- Dirty tracking ---

// MarkDirty flags the tree as changed so the next tick re-runs the
// mouse-over pass even if the pointer did not move.
func (t *Tree) MarkDirty() {
	t.dirty = true
}

// Dirty reports whether the tree changed since the last mouse-over pass.
func (t *Tree) Dirty() bool {
	return t.dirty
}

func (t *Tree) clearDirty() {
	t.dirty = false
}

// --- Setters ---

// SetArea sets the control's event area and marks the tree dirty.
func (t *Tree) SetArea(id ControlID, area Rect) {
	if c := t.Get(id); c != nil && c.Area != area {
		c.Area = area
		t.dirty = true
	}
}

// SetZOrder sets the control's z-order and marks the tree dirty.
func (t *Tree) SetZOrder(id ControlID, z int) {
	if c := t.Get(id); c != nil && c.ZOrder != z {
		c.ZOrder = z
		t.dirty = true
	}
}

// SetVisible sets the control's visibility and marks the tree dirty.
func (t *Tree) SetVisible(id ControlID, visible bool) {
	if c := t.Get(id); c != nil && c.Visible != visible {
		c.Visible = visible
		t.dirty = true
	}
}

// SetEnabled sets whether the control takes part in routing and marks the
// tree dirty.
func (t *Tree) SetEnabled(id ControlID, enabled bool) {
	if c := t.Get(id); c != nil && c.Enabled != enabled {
		c.Enabled = enabled
		t.dirty = true
	}
}

// deliver hands ev to its target's handler. Events for removed controls are
// dropped; in debug mode they panic.
func (t *Tree) deliver(ev Event) bool {
	c := t.Get(ev.Target)
	if c == nil {
		if t.debug {
			debugCheckDisposed(t, ev)
		}
		return false
	}
	if c.Handler == nil || !c.Handler.Handles(ev.Kind) {
		return false
	}
	c.Handler.Handle(ev)
	return true
}
