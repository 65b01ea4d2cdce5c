// Package gadget implements draggable desktop widget panels for [Ebitengine].
//
// A [Desktop] hosts a tree of [Panel] surfaces, a pointer state machine, a
// frame clock, and a timer queue. A [Widget] is a panel with desktop-shell
// behavior: pointer drags move it, a corner grip resizes it within configured
// bounds, its placement sticks to the nearest viewport edge and survives
// viewport resizes, and the result is written back to a [Settings] handle
// after each completed drag. Canvas widgets additionally own a drawing
// surface repainted on a throttled schedule.
//
// # Quick start
//
// Create a desktop, register widgets, and hand the desktop to [Run]:
//
//	desktop := gadget.NewDesktop(1024, 768)
//	store, _ := gadget.OpenFileStore("widgets.yaml")
//
//	clock := desktop.NewWidget("clock", gadget.Options{
//		Canvas:    true,
//		Resizable: true,
//		Frequency: 2,
//	}, store.Section("clock"))
//	clock.SetBehavior(&clockFace{})
//	clock.Init(nil)
//
//	gadget.Run(desktop, gadget.RunConfig{Title: "Desktop", Width: 1024, Height: 768})
//
// For full control, implement [ebiten.Game] yourself and call
// [Desktop.Update] and [Desktop.Draw] directly.
//
// # Widget behavior
//
// Concrete widget kinds implement [Behavior] (usually by embedding
// [NopBehavior]) and receive lifecycle and interaction hooks: Inited, Moved,
// Resized, PointerDown, and (for canvas widgets) Render on the configured
// frequency.
//
// # Determinism
//
// All state lives on the game loop goroutine. Timers run off an injectable
// [Clock], and synthetic pointer events can be queued with the Inject
// functions, so interaction sequences replay deterministically in tests.
//
// [Ebitengine]: https://ebitengine.org
package gadget
