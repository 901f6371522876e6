// Package canvas implements the core of an infinite-canvas media arrangement
// tool: an interaction state machine that routes every pointer event to
// exactly one gesture (pan, marquee, drag, resize, rotate, auto-align,
// grid-align, …), an auto-align engine, a grid-align engine, and a
// dirty-driven render and viewport pipeline.
//
// Per-node rendering bodies, persistence backends, drag-and-drop ingestion,
// and collaborative sync are external collaborators; their interfaces live
// in persistence.go (stores), render.go (DrawHook, ResourceHooks) and
// entitybridge.go (CommitObserver) and are consumed, not implemented, here.
//
// # Quick start
//
//	g := canvas.NewGraph()
//	g.Insert(canvas.NewNode(canvas.NodeImage, canvas.Vec2{X: 0, Y: 0}, canvas.Vec2{X: 200, Y: 200}))
//	c := canvas.NewCanvas(g, canvas.NewDefaultConfig())
//	ebiten.RunGame(c)
//
// # Gesture arbitration
//
// [Canvas.HandlePointerDown] runs the priority-ordered arbitration of the
// interaction state machine: exactly one [GestureState] variant is active at
// a time, and its scratch is discarded in full when the gesture ends.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package canvas
