package thicket

import (
	"slices"
	"testing"
)

func newTestResolver() (*Tree, *OverState, *Resolver) {
	tree := NewTree()
	over := NewOverState()
	return tree, over, NewResolver(tree, over, nil)
}

func addZ(tree *Tree, parent ControlID, name string, area Rect, z int) ControlID {
	c := NewControl(name, area)
	c.ZOrder = z
	return tree.Add(parent, c)
}

func overSet(tree *Tree, over *OverState) []ControlID {
	var out []ControlID
	for _, id := range tree.Walk(nil) {
		if over.IsOver(id) {
			out = append(out, id)
		}
	}
	return out
}

func TestUpdateOverTopmostWins(t *testing.T) {
	tree, over, r := newTestResolver()
	low := addZ(tree, NoControl, "low", rect(0, 0, 100, 100), 0)
	high := addZ(tree, NoControl, "high", rect(0, 0, 100, 100), 1)

	r.UpdateOver(50, 50, NoControl)
	if over.IsOver(low) {
		t.Error("obscured control should not be over")
	}
	if !over.IsOver(high) {
		t.Error("topmost control should be over")
	}
}

func TestUpdateOverAncestorClosure(t *testing.T) {
	tree, over, r := newTestResolver()
	parent := addZ(tree, NoControl, "panel", rect(0, 0, 100, 100), 0)
	child := addZ(tree, parent, "button", rect(10, 10, 20, 20), 5)
	sibling := addZ(tree, NoControl, "backdrop", rect(0, 0, 50, 50), 0)

	r.UpdateOver(15, 15, NoControl)
	want := []ControlID{parent, child}
	if got := overSet(tree, over); !slices.Equal(got, want) {
		t.Errorf("over = %v, want %v", got, want)
	}
	if over.IsOver(sibling) {
		t.Error("unrelated control at a lower z should not be over")
	}
}

func TestUpdateOverDescendantClosure(t *testing.T) {
	tree, over, r := newTestResolver()
	parent := addZ(tree, NoControl, "panel", rect(0, 0, 100, 100), 10)
	inside := addZ(tree, parent, "inside", rect(0, 0, 20, 20), 0)
	outside := addZ(tree, parent, "outside", rect(50, 50, 20, 20), 0)

	r.UpdateOver(5, 5, NoControl)
	if !over.IsOver(parent) || !over.IsOver(inside) {
		t.Error("top control and its descendant under the pointer should be over")
	}
	if over.IsOver(outside) {
		t.Error("descendant away from the pointer should not be over")
	}
}

func TestUpdateOverTransitions(t *testing.T) {
	tree, _, r := newTestResolver()
	a := addZ(tree, NoControl, "a", rect(0, 0, 10, 10), 0)

	steps := []struct {
		x, y float64
		want []Transition
	}{
		{5, 5, []Transition{{a, EventEnter}}},
		{6, 6, []Transition{{a, EventOver}}},
		{50, 50, []Transition{{a, EventLeave}}},
		{60, 60, nil},
	}
	for i, st := range steps {
		got := r.UpdateOver(st.x, st.y, NoControl)
		if !slices.Equal(got, st.want) {
			t.Errorf("step %d: transitions = %v, want %v", i, got, st.want)
		}
	}
}

func TestUpdateOverIdempotent(t *testing.T) {
	tree, over, r := newTestResolver()
	p := addZ(tree, NoControl, "p", rect(0, 0, 100, 100), 0)
	addZ(tree, p, "c", rect(0, 0, 40, 40), 2)
	addZ(tree, NoControl, "q", rect(20, 20, 100, 100), 1)

	r.UpdateOver(30, 30, NoControl)
	first := overSet(tree, over)
	trans := r.UpdateOver(30, 30, NoControl)
	if got := overSet(tree, over); !slices.Equal(got, first) {
		t.Errorf("second pass over = %v, want %v", got, first)
	}
	for _, tr := range trans {
		if tr.Kind != EventOver {
			t.Errorf("second pass produced %s for %d, want only over", tr.Kind, tr.ID)
		}
	}
}

func TestUpdateOverHighTier(t *testing.T) {
	tree, over, r := newTestResolver()
	normalTop := addZ(tree, NoControl, "slot", rect(0, 0, 100, 100), 5)
	normalLow := addZ(tree, NoControl, "bg", rect(0, 0, 100, 100), 3)
	lifted := addZ(tree, NoControl, "item", rect(0, 0, 100, 100), DefaultHighZThreshold)

	r.UpdateOver(50, 50, NoControl)
	if !over.IsOver(lifted) {
		t.Error("high-tier control should be over")
	}
	if !over.IsOver(normalTop) {
		t.Error("high tier must not obscure the top normal control")
	}
	if over.IsOver(normalLow) {
		t.Error("lower normal control should still be obscured")
	}
}

func TestUpdateOverDragTargetExcluded(t *testing.T) {
	tree, over, r := newTestResolver()
	below := addZ(tree, NoControl, "below", rect(0, 0, 100, 100), 0)
	dragged := addZ(tree, NoControl, "dragged", rect(40, 40, 20, 20), 5)

	r.UpdateOver(50, 50, NoControl)
	if over.IsOver(below) {
		t.Fatal("without a drag the dragged control obscures below")
	}

	r.UpdateOver(50, 50, dragged)
	if !over.IsOver(dragged) {
		t.Error("drag target should stay over")
	}
	if !over.IsOver(below) {
		t.Error("drag target must not obscure the control beneath it")
	}
}

func TestUpdateOverSkipsDisabledAndNonInteractive(t *testing.T) {
	tree, over, r := newTestResolver()
	top := addZ(tree, NoControl, "top", rect(0, 0, 10, 10), 5)
	label := addZ(tree, NoControl, "label", rect(0, 0, 10, 10), 9)
	below := addZ(tree, NoControl, "below", rect(0, 0, 10, 10), 0)
	tree.Get(label).Interactive = false
	tree.SetEnabled(top, false)

	r.UpdateOver(5, 5, NoControl)
	if over.IsOver(top) || over.IsOver(label) {
		t.Error("disabled and non-interactive controls should not be over")
	}
	if !over.IsOver(below) {
		t.Error("below should be over")
	}
}

func TestUpdateOverPostsMessages(t *testing.T) {
	tree := NewTree()
	over := NewOverState()
	log := &eventLog{}
	r := NewResolver(tree, over, log)
	a := addZ(tree, NoControl, "a", rect(0, 0, 10, 10), 0)

	r.UpdateOver(5, 5, NoControl)
	r.UpdateOver(50, 5, NoControl)
	if got, want := log.String(), "enter@1 leave@1"; got != want {
		t.Errorf("posted = %q, want %q", got, want)
	}
	if p, ok := log.events[0].Pointer(); !ok || p.X != 5 || p.Y != 5 {
		t.Errorf("enter payload = %+v", log.events[0].Payload)
	}
	_ = a
}

func identity(x, y float64) (float64, float64) { return x, y }

func TestTargetWithTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(tree *Tree, a, b ControlID)
		want  string
	}{
		{"higher z wins", func(tree *Tree, a, b ControlID) {
			tree.Get(a).ZOrder = 1
		}, "a"},
		{"equal orders pick last enumerated", func(tree *Tree, a, b ControlID) {}, "b"},
		{"lowest update order wins", func(tree *Tree, a, b ControlID) {
			tree.Get(a).Updatable = true
			tree.Get(a).UpdateOrder = -1
		}, "a"},
		{"non-updatable ranks as zero", func(tree *Tree, a, b ControlID) {
			tree.Get(b).Updatable = true
			tree.Get(b).UpdateOrder = 5
		}, "a"},
		{"invisible skipped", func(tree *Tree, a, b ControlID) {
			tree.Get(b).Visible = false
		}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _, r := newTestResolver()
			r.SetTransform(identity)
			p := addZ(tree, NoControl, "p", rect(0, 0, 100, 100), 0)
			a := addZ(tree, p, "a", rect(0, 0, 50, 50), 0)
			b := addZ(tree, p, "b", rect(0, 0, 50, 50), 0)
			tt.setup(tree, a, b)
			// Put p out of the running.
			tree.Get(p).ZOrder = -1

			r.UpdateOver(10, 10, NoControl)
			got := r.Target(10, 10)
			if name := tree.Get(got).Name; name != tt.want {
				t.Errorf("Target = %q, want %q", name, tt.want)
			}
		})
	}
}

func TestTargetNothingUnderPointer(t *testing.T) {
	tree, _, r := newTestResolver()
	r.SetTransform(identity)
	addZ(tree, NoControl, "a", rect(0, 0, 10, 10), 0)
	r.UpdateOver(50, 50, NoControl)
	if got := r.Target(50, 50); got != NoControl {
		t.Errorf("Target = %d, want NoControl", got)
	}
}

func TestTargetLegacyPath(t *testing.T) {
	tree, _, r := newTestResolver()
	a := addZ(tree, NoControl, "a", rect(0, 0, 100, 100), 5)
	b := addZ(tree, NoControl, "b", rect(0, 0, 100, 100), 0)

	// No mouse-over pass needed; z-order is ignored.
	if got := r.Target(10, 10); got != b {
		t.Errorf("Target = %d, want last enumerated %d", got, b)
	}
	tree.SetVisible(b, false)
	if got := r.Target(10, 10); got != a {
		t.Errorf("Target = %d, want %d when b is hidden", got, a)
	}
	if got := r.Target(500, 500); got != NoControl {
		t.Errorf("Target = %d, want NoControl", got)
	}
}

func TestResolverApply(t *testing.T) {
	_, _, r := newTestResolver()
	if x, y := r.Apply(3, 4); x != 3 || y != 4 {
		t.Errorf("Apply without transform = (%v, %v), want (3, 4)", x, y)
	}
	r.SetTransform(func(x, y float64) (float64, float64) { return x / 2, y / 2 })
	if !r.HasTransform() {
		t.Error("HasTransform should be true")
	}
	if x, y := r.Apply(10, 20); x != 5 || y != 10 {
		t.Errorf("Apply = (%v, %v), want (5, 10)", x, y)
	}
}
