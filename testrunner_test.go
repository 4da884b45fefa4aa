package thicket

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "type", "text": "hello"},
			{"action": "key", "key": "tab", "shift": true},
			{"action": "key", "key": "A"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "click" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "wait" || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Text != "hello" {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].key != ebiten.KeyTab || !runner.steps[3].Shift {
		t.Error("step 3 mismatch")
	}
	if runner.steps[4].key != ebiten.KeyA {
		t.Errorf("step 4 key = %v, want A", runner.steps[4].key)
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "hyper"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); !errors.Is(err, ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := newTestStage()
	_, rec := addRecorded(s.Tree(), NoControl, "button", rect(0, 0, 200, 200))

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release.
	runner.step(s)
	if s.Pending() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", s.Pending())
	}
	if runner.Done() {
		t.Error("runner should not be done while injections are pending")
	}

	for s.Pending() > 0 {
		var f InputFrame
		s.nextInjected(&f)
		s.Tick(&f)
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if len(rec.only(EventClick)) != 1 {
		t.Errorf("events = %v, want one click", rec.kinds())
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "hover", "x": 5, "y": 5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (two more frames to go).
	runner.step(s)
	runner.step(s)
	runner.step(s)
	if s.Pending() != 0 {
		t.Error("hover should not run during the wait")
	}
	// Frame 4: hover queued, runner finishes once it drains.
	runner.step(s)
	if s.Pending() != 1 {
		t.Fatalf("expected the hover frame, got %d", s.Pending())
	}
	if runner.Done() {
		t.Error("runner should wait for the queue")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := newTestStage()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if s.Pending() != 4 {
		t.Fatalf("expected 4 queued frames for drag, got %d", s.Pending())
	}
}

func TestRunnerThroughUpdate(t *testing.T) {
	s := newTestStage()
	tb := NewTextBox(s, NoControl, TextBoxOptions{Name: "name", Area: rect(0, 0, 100, 20), TabOrder: 1})
	other := NewTextBox(s, NoControl, TextBoxOptions{Name: "email", Area: rect(0, 30, 100, 20), TabOrder: 2})

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 10, "y": 10},
		{"action": "type", "text": "ada"},
		{"action": "key", "key": "backspace"},
		{"action": "key", "key": "tab"},
		{"action": "type", "text": "a@b"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; !runner.Done(); i++ {
		if i > 100 {
			t.Fatal("runner did not finish")
		}
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if tb.Text() != "ad" || other.Text() != "a@b" {
		t.Errorf("texts = %q, %q; want %q, %q", tb.Text(), other.Text(), "ad", "a@b")
	}
}
