package thicket

// DefaultHighZThreshold is the z-order at and above which controls form the
// high tier. The high tier is reserved for items lifted by click-to-drag; those
// never obscure, and are never obscured by, normal controls.
const DefaultHighZThreshold = 10000

// Transition records one mouse-over message produced by a pass.
type Transition struct {
	ID   ControlID
	Kind EventKind // EventEnter, EventOver or EventLeave
}

// Resolver performs hit testing over a Tree: the mouse-over pass that keeps
// OverState current, and single-target resolution for discrete events.
type Resolver struct {
	tree   *Tree
	over   *OverState
	poster Poster

	transform Transform
	highZ     int

	// Reused buffers; the resolver runs on one goroutine.
	liveBuf   []ControlID
	targetBuf []ControlID
	topBuf    []ControlID
	walkBuf   []ControlID
	candBuf   []ControlID
	transBuf  []Transition
	allowed   map[ControlID]bool
}

// NewResolver creates a resolver over tree that records mouse-over state in
// over and posts enter/over/leave messages through poster. A nil poster
// records state without delivering.
func NewResolver(tree *Tree, over *OverState, poster Poster) *Resolver {
	return &Resolver{
		tree:    tree,
		over:    over,
		poster:  poster,
		highZ:   DefaultHighZThreshold,
		allowed: make(map[ControlID]bool),
	}
}

// SetTransform sets the window-to-logical transform. Passing nil selects the
// legacy resolution path.
func (r *Resolver) SetTransform(t Transform) {
	r.transform = t
}

// HasTransform reports whether a transform is configured.
func (r *Resolver) HasTransform() bool {
	return r.transform != nil
}

// Apply maps a window position to logical coordinates. Without a transform
// the position is returned unchanged.
func (r *Resolver) Apply(wx, wy float64) (float64, float64) {
	if r.transform == nil {
		return wx, wy
	}
	return r.transform(wx, wy)
}

// SetHighZThreshold sets the z-order at which the high tier starts.
func (r *Resolver) SetHighZThreshold(z int) {
	r.highZ = z
}

// collectLive appends the enabled, interactive controls to buf in
// enumeration order.
func (r *Resolver) collectLive(buf []ControlID) []ControlID {
	r.walkBuf = r.tree.Walk(r.walkBuf[:0])
	for _, id := range r.walkBuf {
		c := r.tree.Get(id)
		if c.Enabled && c.Interactive {
			buf = append(buf, id)
		}
	}
	return buf
}

// UpdateOver runs the mouse-over pass for the logical pointer position (x, y).
// dragTarget is the currently captured control, or NoControl.
//
// Controls under the pointer split into a high tier (z-order at or above the
// threshold) and a normal tier. The allowed set is the drag target, the whole
// high tier, and the normal-tier controls sharing the maximum z-order together
// with their ancestors and their descendants that contain the pointer. The
// drag target never counts toward the normal tier's maximum. Every live
// control is then marked over if it contains the pointer and is allowed, and
// not over otherwise.
//
// The returned slice is reused by the next call.
func (r *Resolver) UpdateOver(x, y float64, dragTarget ControlID) []Transition {
	r.liveBuf = r.collectLive(r.liveBuf[:0])
	clear(r.allowed)
	if dragTarget != NoControl {
		r.allowed[dragTarget] = true
	}

	r.topBuf = r.topBuf[:0]
	var maxZ int
	for _, id := range r.liveBuf {
		c := r.tree.Get(id)
		if !c.Area.Contains(x, y) {
			continue
		}
		if c.ZOrder >= r.highZ {
			r.allowed[id] = true
			continue
		}
		if id == dragTarget {
			continue
		}
		if len(r.topBuf) == 0 || c.ZOrder > maxZ {
			maxZ = c.ZOrder
			r.topBuf = r.topBuf[:0]
		}
		if c.ZOrder == maxZ {
			r.topBuf = append(r.topBuf, id)
		}
	}

	for _, top := range r.topBuf {
		r.allowed[top] = true
		for p := r.tree.Parent(top); p != NoControl; p = r.tree.Parent(p) {
			r.allowed[p] = true
		}
		r.walkBuf = r.tree.Descendants(top, r.walkBuf[:0])
		for _, d := range r.walkBuf {
			if r.tree.Get(d).Area.Contains(x, y) {
				r.allowed[d] = true
			}
		}
	}

	r.transBuf = r.transBuf[:0]
	for _, id := range r.liveBuf {
		c := r.tree.Get(id)
		if c == nil {
			// Removed by a handler earlier in this pass.
			continue
		}
		if c.Area.Contains(x, y) && r.allowed[id] {
			kind := EventOver
			if !r.over.set(id, true) {
				kind = EventEnter
			}
			r.emit(id, kind, x, y)
		} else if r.over.IsOver(id) {
			r.over.set(id, false)
			r.emit(id, EventLeave, x, y)
		}
	}
	return r.transBuf
}

func (r *Resolver) emit(id ControlID, kind EventKind, x, y float64) {
	r.transBuf = append(r.transBuf, Transition{ID: id, Kind: kind})
	if r.poster != nil {
		r.poster.Post(Event{Kind: kind, Target: id, Payload: PointerPayload{X: x, Y: y}})
	}
}

// Target returns the single authoritative target for a discrete pointer event
// at logical position (x, y), or NoControl.
//
// With a transform configured the answer comes from the mouse-over state:
// among visible controls currently over, the highest z-order wins; ties go to
// the lowest update order, and when the tied controls share one update order
// the last one in enumeration order wins. That final rule depends on tree-walk
// order and is an arbitrary tie-break kept for compatibility.
//
// Without a transform the legacy path asks the tree for the last enumerated
// visible control whose area contains the point.
func (r *Resolver) Target(x, y float64) ControlID {
	if r.transform == nil {
		return r.legacyTarget(x, y)
	}
	return r.resolveOver()
}

func (r *Resolver) resolveOver() ControlID {
	r.targetBuf = r.collectLive(r.targetBuf[:0])
	cands := r.candBuf[:0]
	for _, id := range r.targetBuf {
		if r.over.IsOver(id) && r.tree.EffectivelyVisible(id) {
			cands = append(cands, id)
		}
	}
	r.candBuf = cands

	switch len(cands) {
	case 0:
		return NoControl
	case 1:
		return cands[0]
	}

	maxZ := r.tree.Get(cands[0]).ZOrder
	for _, id := range cands[1:] {
		if z := r.tree.Get(id).ZOrder; z > maxZ {
			maxZ = z
		}
	}
	top := cands[:0]
	for _, id := range cands {
		if r.tree.Get(id).ZOrder == maxZ {
			top = append(top, id)
		}
	}
	if len(top) == 1 {
		return top[0]
	}

	first := r.tree.Get(top[0]).effectiveUpdateOrder()
	lowest, lowestID := first, top[0]
	differ := false
	for _, id := range top[1:] {
		o := r.tree.Get(id).effectiveUpdateOrder()
		if o != first {
			differ = true
		}
		if o < lowest {
			lowest, lowestID = o, id
		}
	}
	if differ {
		return lowestID
	}
	return top[len(top)-1]
}

// legacyTarget scans live controls in reverse enumeration order and returns
// the first visible one containing (x, y).
func (r *Resolver) legacyTarget(x, y float64) ControlID {
	r.targetBuf = r.collectLive(r.targetBuf[:0])
	for i := len(r.targetBuf) - 1; i >= 0; i-- {
		id := r.targetBuf[i]
		if r.tree.Get(id).Area.Contains(x, y) && r.tree.EffectivelyVisible(id) {
			return id
		}
	}
	return NoControl
}
