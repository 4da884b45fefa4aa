package thicket

import (
	"log/slog"
	"sort"
	"time"
)

// Stage is the top-level object that owns the control tree, mouse-over
// state, drag session, focus manager and input dispatcher.
//
// A Stage is not safe for concurrent use. Call every method from the ebiten
// update goroutine (or serialize the whole tick behind one lock).
type Stage struct {
	tree       *Tree
	over       *OverState
	resolver   *Resolver
	drag       *DragSession
	focus      *FocusManager
	dispatcher *Dispatcher
	cfg        Config

	handlers handlerRegistry
	store    EntityStore

	debug  bool
	logger *slog.Logger

	source      InputSource
	frame       InputFrame
	injectQueue []InputFrame
	lastFrame   InputFrame
	testRunner  *TestRunner

	updateBuf []ControlID
}

// NewStage creates a stage with DefaultConfig.
func NewStage() *Stage {
	s, _ := NewStageWithConfig(DefaultConfig())
	return s
}

// NewStageWithConfig creates a stage with the given configuration.
func NewStageWithConfig(cfg Config) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Stage{
		tree:   NewTree(),
		over:   NewOverState(),
		cfg:    cfg,
		logger: discardLogger,
		source: EbitenSource{},
	}
	s.resolver = NewResolver(s.tree, s.over, s)
	s.resolver.SetHighZThreshold(cfg.HighZThreshold)
	s.drag = NewDragSession(s.tree, s.resolver, s)
	s.focus = NewFocusManager(s.tree, s)
	s.dispatcher = NewDispatcher(s.tree, s.resolver, s.drag, s.focus, s, cfg)
	return s, nil
}

// Tree returns the stage's control tree.
func (s *Stage) Tree() *Tree { return s.tree }

// OverState returns the mouse-over registry.
func (s *Stage) OverState() *OverState { return s.over }

// Resolver returns the hit-test resolver.
func (s *Stage) Resolver() *Resolver { return s.resolver }

// Drag returns the drag session.
func (s *Stage) Drag() *DragSession { return s.drag }

// Focus returns the focus manager.
func (s *Stage) Focus() *FocusManager { return s.focus }

// Dispatcher returns the input dispatcher.
func (s *Stage) Dispatcher() *Dispatcher { return s.dispatcher }

// Config returns the stage configuration.
func (s *Stage) Config() Config { return s.cfg }

// Add inserts c under parent (NoControl for a root) and returns its ID.
func (s *Stage) Add(parent ControlID, c *Control) ControlID {
	return s.tree.Add(parent, c)
}

// Remove removes id and its subtree. Focus and drag capture held by any
// removed control are cleared.
func (s *Stage) Remove(id ControlID) {
	s.tree.Remove(id)
}

// SetTransform sets the window-to-logical pointer transform. nil restores
// identity and the legacy target resolution path.
func (s *Stage) SetTransform(t Transform) {
	s.resolver.SetTransform(t)
	s.tree.MarkDirty()
}

// SetInputSource replaces the hardware input source used by Update.
func (s *Stage) SetInputSource(src InputSource) {
	s.source = src
}

// Post delivers ev to its target: stage-level callbacks first, then the
// control's handler, then the ECS bridge. Events for removed controls are
// dropped (debug mode panics instead).
func (s *Stage) Post(ev Event) {
	c := s.tree.Get(ev.Target)
	if c == nil {
		if s.debug {
			debugCheckDisposed(s.tree, ev)
		}
		return
	}
	entityID := c.EntityID
	s.handlers.fire(ev)
	// A stage callback may have removed the target.
	if !s.tree.Alive(ev.Target) {
		return
	}
	s.tree.deliver(ev)
	s.emitRoutedEvent(ev, entityID)
}

// Update samples input (injected frames take precedence over hardware),
// routes it, and runs the per-control update pass. It is meant to be called
// from ebiten.Game.Update.
func (s *Stage) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.nextInjected(&s.frame) {
		s.frame.reset()
		if s.source != nil {
			s.source.Sample(&s.frame)
		}
	}
	s.Tick(&s.frame)
	return nil
}

// Tick routes one input snapshot and runs the update pass without sampling
// hardware.
func (s *Stage) Tick(f *InputFrame) {
	var stats tickStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.dispatcher.Tick(f)

	if s.debug {
		stats.dispatchTime = time.Since(t0)
		t0 = time.Now()
	}

	s.updateControls(1 / float64(s.cfg.TPS))

	if s.debug {
		stats.updateTime = time.Since(t0)
		stats.transitions = s.dispatcher.transitions
		stats.events = s.dispatcher.events
		s.debugLogTick(stats)
	}

	s.lastFrame.X, s.lastFrame.Y = f.X, f.Y
	s.lastFrame.Buttons = f.Buttons
}

// updateControls calls OnUpdate on every enabled, updatable control in
// ascending update order; equal orders run in enumeration order.
func (s *Stage) updateControls(dt float64) {
	all := s.tree.Walk(s.updateBuf[:0])
	buf := all[:0]
	for _, id := range all {
		c := s.tree.Get(id)
		if c.Updatable && c.Enabled && c.OnUpdate != nil {
			buf = append(buf, id)
		}
	}
	s.updateBuf = buf
	sort.SliceStable(buf, func(i, j int) bool {
		return s.tree.Get(buf[i]).UpdateOrder < s.tree.Get(buf[j]).UpdateOrder
	})
	for _, id := range buf {
		// An earlier update may have removed this control.
		if c := s.tree.Get(id); c != nil && c.OnUpdate != nil {
			c.OnUpdate(dt)
		}
	}
}

// SetDebugMode enables or disables debug mode. When enabled, posting to a
// removed control panics, tree depth and child count warnings are logged, and
// per-tick routing stats are logged to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	logger := discardLogger
	if enabled {
		logger = newDebugLogger(debugWriter)
	}
	s.logger = logger
	s.tree.debug = enabled
	s.tree.logger = logger
	s.drag.logger = logger
	s.focus.logger = logger
}
