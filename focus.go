package thicket

import (
	"log/slog"
	"sort"
)

// FocusManager owns the single focused control of a Tree.
// Keyboard events are routed to the focused control.
type FocusManager struct {
	tree   *Tree
	poster Poster
	logger *slog.Logger

	focused ControlID
	candBuf []ControlID
	walkBuf []ControlID
}

// NewFocusManager creates a manager with nothing focused. Removing the focused
// control from tree clears focus without posting to it.
func NewFocusManager(tree *Tree, poster Poster) *FocusManager {
	f := &FocusManager{tree: tree, poster: poster, logger: discardLogger}
	tree.OnDispose(f.forget)
	return f
}

// Focused returns the focused control, or NoControl.
func (f *FocusManager) Focused() ControlID {
	return f.focused
}

// Focus makes id the focused control. The previous holder, if any, receives
// EventLostFocus before id receives EventGotFocus. Focusing the current holder
// or a removed control does nothing. If the lost-focus handler removes id,
// nothing is left focused.
func (f *FocusManager) Focus(id ControlID) {
	if id == f.focused || !f.tree.Alive(id) {
		return
	}
	prev := f.focused
	if prev != NoControl {
		f.poster.Post(Event{Kind: EventLostFocus, Target: prev, Payload: FocusPayload{Other: id}})
		if !f.tree.Alive(id) {
			f.focused = NoControl
			f.logger.Debug("focus target removed", slog.Uint64("control", uint64(id)))
			return
		}
	}
	f.focused = id
	f.logger.Debug("focus", slog.Uint64("control", uint64(id)), slog.Uint64("previous", uint64(prev)))
	f.poster.Post(Event{Kind: EventGotFocus, Target: id, Payload: FocusPayload{Other: prev}})
}

// Blur clears focus, posting EventLostFocus to the previous holder.
func (f *FocusManager) Blur() {
	prev := f.focused
	if prev == NoControl {
		return
	}
	f.focused = NoControl
	f.logger.Debug("blur", slog.Uint64("control", uint64(prev)))
	f.poster.Post(Event{Kind: EventLostFocus, Target: prev, Payload: FocusPayload{}})
}

// ActiveModal returns the last enumerated visible modal control, or NoControl.
func (f *FocusManager) ActiveModal() ControlID {
	f.walkBuf = f.tree.Walk(f.walkBuf[:0])
	for i := len(f.walkBuf) - 1; i >= 0; i-- {
		id := f.walkBuf[i]
		if f.tree.Get(id).Modal && f.tree.EffectivelyVisible(id) {
			return id
		}
	}
	return NoControl
}

// Cycle moves focus to the next focusable control by tab order, or the
// previous one when reverse is set. Candidates are scoped to the active modal
// control when one is open. Focus goes to the first candidate whose tab order
// is strictly past the holder's, wrapping to the first candidate when none
// is. Does nothing unless a control is focused.
func (f *FocusManager) Cycle(reverse bool) {
	if f.focused == NoControl {
		return
	}
	cur := f.tree.Get(f.focused)
	if cur == nil {
		return
	}

	f.walkBuf = f.walkBuf[:0]
	if modal := f.ActiveModal(); modal != NoControl {
		f.walkBuf = append(f.walkBuf[:0], modal)
		f.walkBuf = f.tree.Descendants(modal, f.walkBuf)
	} else {
		f.walkBuf = f.tree.Walk(f.walkBuf[:0])
	}

	cands := f.candBuf[:0]
	for _, id := range f.walkBuf {
		c := f.tree.Get(id)
		if c.Focusable && c.Enabled && f.tree.EffectivelyVisible(id) {
			cands = append(cands, id)
		}
	}
	f.candBuf = cands
	if len(cands) == 0 {
		return
	}

	order := func(i int) int { return f.tree.Get(cands[i]).TabOrder }
	if reverse {
		sort.SliceStable(cands, func(i, j int) bool { return order(i) > order(j) })
	} else {
		sort.SliceStable(cands, func(i, j int) bool { return order(i) < order(j) })
	}

	next := cands[0]
	for _, id := range cands {
		o := f.tree.Get(id).TabOrder
		if (!reverse && o > cur.TabOrder) || (reverse && o < cur.TabOrder) {
			next = id
			break
		}
	}
	f.Focus(next)
}

func (f *FocusManager) forget(id ControlID) {
	if f.focused == id {
		f.logger.Debug("focused control removed", slog.Uint64("control", uint64(id)))
		f.focused = NoControl
	}
}
