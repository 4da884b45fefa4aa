package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Injected frames replace hardware sampling in Update, one per tick, until
// the queue drains. Pointer coordinates are window coordinates and go
// through the stage transform, exactly like real mouse input.

// InjectPress queues a left-button press at the given window coordinates.
func (s *Stage) InjectPress(x, y float64) {
	f := InputFrame{X: x, Y: y}
	f.Buttons[MouseButtonLeft] = true
	s.injectQueue = append(s.injectQueue, f)
}

// InjectMove queues a pointer move with the left button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.InjectPress(x, y)
}

// InjectHover queues a pointer move with no button held.
func (s *Stage) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, InputFrame{X: x, Y: y})
}

// InjectRelease queues a release at the given window coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, InputFrame{X: x, Y: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two ticks.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and release at
// (toX, toY). The sequence consumes `frames` ticks; the minimum is 2.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a press of key with mods, followed by its release.
// The pointer stays where it is. Consumes two ticks.
func (s *Stage) InjectKey(key ebiten.Key, mods KeyModifiers) {
	s.injectQueue = append(s.injectQueue,
		InputFrame{Keys: []ebiten.Key{key}, Modifiers: mods, holdPointer: true},
		InputFrame{Modifiers: mods, holdPointer: true},
	)
}

// InjectText queues text as typed characters in a single tick.
func (s *Stage) InjectText(text string) {
	s.injectQueue = append(s.injectQueue, InputFrame{Chars: []rune(text), holdPointer: true})
}

// Pending returns the number of injected frames still queued.
func (s *Stage) Pending() int {
	return len(s.injectQueue)
}

// nextInjected pops the next injected frame into f. Returns false when the
// queue is empty.
func (s *Stage) nextInjected(f *InputFrame) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	next := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = InputFrame{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if next.holdPointer {
		next.X, next.Y = s.lastFrame.X, s.lastFrame.Y
		next.Buttons = s.lastFrame.Buttons
	}
	*f = next
	return true
}
