package thicket

import "log/slog"

// DragSession captures drag input for at most one control at a time.
//
// It has two states: idle, and capturing a target. Begin resolves a target
// and captures it; Move and End are delivered only to the captured control,
// bypassing hit testing; End always returns to idle.
type DragSession struct {
	tree     *Tree
	resolver *Resolver
	poster   Poster
	logger   *slog.Logger

	target ControlID
}

// NewDragSession creates an idle session. Removing the captured control from
// tree releases the capture without delivering anything further.
func NewDragSession(tree *Tree, resolver *Resolver, poster Poster) *DragSession {
	d := &DragSession{
		tree:     tree,
		resolver: resolver,
		poster:   poster,
		logger:   discardLogger,
	}
	tree.OnDispose(d.forget)
	return d
}

// Target returns the captured control, or NoControl when idle.
func (d *DragSession) Target() ControlID {
	return d.target
}

// Capturing reports whether a control is captured.
func (d *DragSession) Capturing() bool {
	return d.target != NoControl
}

// Begin handles a drag-start. When idle it resolves a target at the payload
// position and, if one is found, captures it and delivers EventDragStart.
// While capturing it does nothing. Returns the captured control.
func (d *DragSession) Begin(p DragPayload) ControlID {
	if d.target != NoControl {
		return d.target
	}
	target := d.resolver.Target(p.X, p.Y)
	if target == NoControl {
		return NoControl
	}
	d.target = target
	d.logger.Debug("drag capture", slog.Uint64("control", uint64(target)))
	d.poster.Post(Event{Kind: EventDragStart, Target: target, Payload: p})
	return target
}

// Move delivers EventDrag to the captured control. No-op when idle.
func (d *DragSession) Move(p DragPayload) {
	if d.target == NoControl {
		return
	}
	d.poster.Post(Event{Kind: EventDrag, Target: d.target, Payload: p})
}

// End delivers EventDragEnd to the captured control and returns to idle.
// No-op when idle.
func (d *DragSession) End(p DragPayload) {
	if d.target == NoControl {
		return
	}
	target := d.target
	d.target = NoControl
	d.logger.Debug("drag release", slog.Uint64("control", uint64(target)))
	d.poster.Post(Event{Kind: EventDragEnd, Target: target, Payload: p})
}

// Cancel returns to idle without delivering anything.
func (d *DragSession) Cancel() {
	d.target = NoControl
}

func (d *DragSession) forget(id ControlID) {
	if d.target == id {
		d.logger.Debug("drag target removed", slog.Uint64("control", uint64(id)))
		d.target = NoControl
	}
}
