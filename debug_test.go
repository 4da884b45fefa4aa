package thicket

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := debugWriter
	debugWriter = &buf
	t.Cleanup(func() { debugWriter = old })
	return &buf
}

func TestDebugMode_PostToRemovedPanics(t *testing.T) {
	captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)
	id := s.Add(NoControl, NewControl("a", Rect{}))
	s.Remove(id)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic when posting to a removed control, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "removed") {
			t.Errorf("panic message should mention 'removed', got: %s", msg)
		}
	}()
	s.Post(Event{Kind: EventClick, Target: id})
}

func TestDebugMode_PostToUnknownPanics(t *testing.T) {
	captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)
	expectPanic(t, "unknown control", func() {
		s.Post(Event{Kind: EventClick, Target: 77})
	})
}

func TestDebugMode_OffDropsSilently(t *testing.T) {
	s := newTestStage()
	id := s.Add(NoControl, NewControl("a", Rect{}))
	s.Remove(id)
	s.Post(Event{Kind: EventClick, Target: id}) // must not panic
}

func TestDebugMode_LogsTicksAndFocus(t *testing.T) {
	buf := captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)
	c := NewControl("a", rect(0, 0, 10, 10))
	c.Focusable = true
	id := s.Add(NoControl, c)
	s.Focus().Focus(id)

	s.InjectHover(5, 5)
	drain(t, s)

	out := buf.String()
	for _, want := range []string{"component=thicket", "msg=tick", "transitions=1", "msg=focus"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}

	s.SetDebugMode(false)
	buf.Reset()
	s.InjectHover(6, 6)
	drain(t, s)
	if buf.Len() != 0 {
		t.Errorf("debug off should log nothing, got:\n%s", buf.String())
	}
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	buf := captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)

	parent := NoControl
	for i := 0; i <= debugMaxTreeDepth; i++ {
		parent = s.Add(parent, NewControl(fmt.Sprintf("n%d", i), Rect{}))
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, got:\n%s", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	buf := captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)

	root := s.Add(NoControl, NewControl("root", Rect{}))
	for i := 0; i <= debugMaxChildCount; i++ {
		s.Add(root, NewControl("c", Rect{}))
	}
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Errorf("expected child count warning, got:\n%s", buf.String())
	}
}

func TestDebugMode_LogsRejectedInsert(t *testing.T) {
	buf := captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)
	tb := NewTextBox(s, NoControl, TextBoxOptions{Name: "code", Area: rect(10, 10, 100, 20), MaxChars: 2})
	s.Focus().Focus(tb.ID())

	s.InjectText("abc")
	drain(t, s)

	if tb.Text() != "ab" {
		t.Errorf("Text() = %q, want %q", tb.Text(), "ab")
	}
	if !strings.Contains(buf.String(), "insert rejected") {
		t.Errorf("expected rejected insert log, got:\n%s", buf.String())
	}
}

func TestDebugMode_CallbackRemovesTarget(t *testing.T) {
	captureDebug(t)
	s := newTestStage()
	s.SetDebugMode(true)
	id, rec := addRecorded(s.Tree(), NoControl, "a", rect(0, 0, 10, 10))
	s.On(EventClick, func(ev Event) { s.Remove(ev.Target) })

	s.Post(Event{Kind: EventClick, Target: id, Payload: PointerPayload{X: 5, Y: 5}})

	if s.Tree().Alive(id) {
		t.Error("callback should have removed the control")
	}
	if got := rec.only(EventClick); len(got) != 0 {
		t.Errorf("removed control received %d clicks, want 0", len(got))
	}
}
