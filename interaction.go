package gadget

// dragSession is the ephemeral state of one pointer-drag interaction. It
// exists from pointer-down to pointer-up and holds the baseline all deltas
// are applied against, so mid-drag updates never accumulate rounding from
// intermediate states.
type dragSession struct {
	action DragAction

	// Pointer-down origin in desktop coordinates.
	origin Vec2

	// Baselines snapshotted at entry: the normalized (absolute left/top)
	// position and the dimension.
	baseLeft float64
	baseTop  float64
	baseDim  Dimension

	// Viewport extent recorded at entry; sticking during this session is
	// computed against it.
	viewportW float64
	viewportH float64

	// Session-scoped desktop bindings, unbound at exit.
	move Binding
	up   Binding
}

// beginDrag enters a drag session from a pointer-down on the container (move)
// or the grip (resize). A second pointer-down while a session is live is
// ignored; the desktop delivers one pointer.
func (w *Widget) beginDrag(action DragAction, ctx PointerContext) {
	if w.destroyed || w.container == nil || w.session != nil {
		return
	}
	if action == DragResize && !w.opts.Resizable {
		return
	}

	// A drag supersedes any pending envelope hide.
	w.envHide.Cancel()

	vw, vh := w.desktop.Viewport()
	left, top := w.position.Normalized(vw, vh, w.dimension)

	s := &dragSession{
		action:    action,
		origin:    Vec2{X: ctx.X, Y: ctx.Y},
		baseLeft:  left,
		baseTop:   top,
		baseDim:   w.dimension,
		viewportW: vw,
		viewportH: vh,
	}

	if action == DragResize {
		// Rewrite anchors to the absolute left/top form so growth direction
		// is unambiguous no matter which corner the widget sticks to. The
		// sticky form is re-derived at exit.
		w.position = w.position.normalizedForm(vw, vh, w.dimension)
	}

	s.move = w.desktop.OnPointerMove(w.dragMove)
	s.up = w.desktop.OnPointerUp(w.endDrag)
	w.session = s

	if ctx.Panel != nil {
		w.desktop.CapturePointer(ctx.Panel)
	}
	w.container.Active = true
	w.behavior.PointerDown(w)
}

// dragMove applies one pointer-move to the session baseline.
func (w *Widget) dragMove(ctx PointerContext) {
	s := w.session
	if s == nil {
		return
	}
	w.manipulating = true

	dx := ctx.X - s.origin.X
	dy := ctx.Y - s.origin.Y

	switch s.action {
	case DragMove:
		proposed := Position{
			Left: Float(s.baseLeft + dx),
			Top:  Float(s.baseTop + dy),
		}
		w.position = proposed.stuck(s.viewportW, s.viewportH, w.dimension)
		w.applyGeometry()
		w.behavior.Moved(w, w.position.Clone())

	case DragResize:
		proposed := Dimension{
			Width:  s.baseDim.Width + dx,
			Height: s.baseDim.Height + dy,
		}
		if w.opts.Aspect {
			// TODO: aspect lock should derive height from the horizontal
			// delta; both branches currently track the axes independently,
			// matching the shipped behavior.
			proposed.Height = s.baseDim.Height + dy
		}
		w.dimension = proposed.clamped(w.opts)
		w.applyGeometry()
		w.behavior.Resized(w, w.dimension)
	}
}

// endDrag exits the session on pointer-up: session bindings are torn down
// first so a stale session can never react to a later drag, then the sticky
// anchor form is committed and the debounced settings write restarted.
func (w *Widget) endDrag(PointerContext) {
	s := w.session
	if s == nil {
		return
	}
	w.session = nil
	s.move.Unbind()
	s.up.Unbind()

	w.manipulating = false
	w.container.Active = false
	w.hideEnvelope(true)

	if s.action == DragResize {
		// Entry forced the normalized form; re-derive the sticky form for
		// the committed dimension.
		w.position = w.position.stuck(s.viewportW, s.viewportH, w.dimension)
		w.applyGeometry()
	}

	w.persist.Cancel()
	w.persist = w.desktop.After(PersistDelay, w.persistRecord)
}
