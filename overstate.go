package thicket

// OverState records, per control, whether the pointer is currently over it.
// Entries are created lazily on first observation and never pruned; entries
// for removed controls are never queried again because queries always start
// from the live tree.
type OverState struct {
	over map[ControlID]bool
}

// NewOverState creates an empty mouse-over registry.
func NewOverState() *OverState {
	return &OverState{over: make(map[ControlID]bool)}
}

// IsOver reports whether id was marked over by the last mouse-over pass.
func (o *OverState) IsOver(id ControlID) bool {
	return o.over[id]
}

// set records the over flag for id and reports the previous value.
func (o *OverState) set(id ControlID, over bool) (was bool) {
	was = o.over[id]
	o.over[id] = over
	return was
}

// Len returns the number of recorded entries, stale ones included.
func (o *OverState) Len() int {
	return len(o.over)
}
