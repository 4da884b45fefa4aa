// Package thicket is a retained-mode input-routing core for [Ebitengine] user
// interfaces.
//
// Thicket owns the parts of a GUI that decide who receives input: a tree of
// controls, mouse-over tracking and hit testing, a drag session, an input
// dispatcher, keyboard focus with tab cycling, and a text editing state
// machine. Drawing is left to the application; thicket only tells it what is
// hovered, focused and where the caret is.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	s := thicket.NewStage()
//	btn := thicket.NewControl("ok", thicket.Rect{X: 20, Y: 20, Width: 80, Height: 30})
//	btn.Handler = thicket.HandlerFuncs{
//		thicket.EventClick: func(thicket.Event) { log.Println("clicked") },
//	}
//	s.Add(thicket.NoControl, btn)
//	thicket.Run(s, thicket.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call [Stage.Update]
// from its Update method.
//
// # Controls
//
// Every participant is a [Control] stored in a [Tree] and addressed by a
// [ControlID]. IDs are never reused, so a stale ID simply resolves to nothing.
// Visibility is inherited: a control is effectively visible only when it and
// all of its ancestors are visible.
//
// # Routing
//
// Each tick the [Dispatcher] updates mouse-over state, which marks the topmost
// control under the pointer together with its ancestors and descendants, and
// then delivers discrete events. Pointer events go to the [Resolver] target,
// drag events to the control captured by the [DragSession], and keyboard
// events to the control holding focus in the [FocusManager]. Controls at or
// above [DefaultHighZThreshold] form a high tier used for drag payloads.
//
// # Text input
//
// [TextEditor] is the pure editing model: a rune buffer, a caret, a length
// limit and password masking. [TextBox] wires an editor to a focusable
// control, placeholder and text labels, and a fading caret (via [gween]).
//
// # Testing
//
// [Stage.InjectClick], [Stage.InjectDrag] and friends queue synthetic input
// frames that take precedence over hardware, and [LoadTestScript] replays a
// JSON script of such steps. ECS integration (via [Donburi]) lives in
// thicket/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package thicket
