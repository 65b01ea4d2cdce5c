package gadget

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// clickDeadZone is the maximum pointer travel in pixels between press and
// release for the release to still count as a click. Travel beyond it means
// the interaction was a drag, and drags do not click.
const clickDeadZone = 4.0

// --- Pointer state ---

type pointerState struct {
	down       bool
	startX     float64
	startY     float64
	lastX      float64
	lastY      float64
	hitPanel   *Panel
	hoverPanel *Panel      // last panel the pointer was hovering over (for enter/leave)
	button     MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32

	// Reused dispatch snapshots so a handler may unbind (itself or others)
	// while its event is being dispatched.
	pointerBuf []pointerHandler
	clickBuf   []clickHandler
}

// Binding allows removing a registered desktop-level callback. Bindings are
// collected per widget instance and unbound in Destroy; there is no global
// registry.
type Binding struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Unbind unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (b Binding) Unbind() {
	if b.reg == nil {
		return
	}
	switch b.event {
	case EventPointerDown:
		b.reg.pointerDown = removePointerHandler(b.reg.pointerDown, b.id)
	case EventPointerUp:
		b.reg.pointerUp = removePointerHandler(b.reg.pointerUp, b.id)
	case EventPointerMove:
		b.reg.pointerMove = removePointerHandler(b.reg.pointerMove, b.id)
	case EventPointerEnter:
		b.reg.pointerEnter = removePointerHandler(b.reg.pointerEnter, b.id)
	case EventPointerLeave:
		b.reg.pointerLeave = removePointerHandler(b.reg.pointerLeave, b.id)
	case EventClick:
		b.reg.click = removeClickHandler(b.reg.click, b.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Desktop-level event registration ---

// OnPointerDown registers a desktop-level callback for pointer down events.
func (d *Desktop) OnPointerDown(fn func(PointerContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerDown = append(d.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventPointerDown}
}

// OnPointerUp registers a desktop-level callback for pointer up events.
func (d *Desktop) OnPointerUp(fn func(PointerContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerUp = append(d.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventPointerUp}
}

// OnPointerMove registers a desktop-level callback for pointer move events.
// Fires for hover moves and for moves with the button held.
func (d *Desktop) OnPointerMove(fn func(PointerContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerMove = append(d.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a desktop-level callback for pointer enter events.
// Fired when the pointer moves over a new panel (or from nil to a panel).
func (d *Desktop) OnPointerEnter(fn func(PointerContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerEnter = append(d.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a desktop-level callback for pointer leave events.
// Fired when the pointer leaves a panel (moves to a different panel or to
// empty space).
func (d *Desktop) OnPointerLeave(fn func(PointerContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerLeave = append(d.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventPointerLeave}
}

// OnClick registers a desktop-level callback for click events.
func (d *Desktop) OnClick(fn func(ClickContext)) Binding {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.click = append(d.handlers.click, clickHandler{id: id, fn: fn})
	return Binding{id: id, reg: &d.handlers, event: EventClick}
}

// CapturePointer routes all pointer events to the given panel until released.
func (d *Desktop) CapturePointer(panel *Panel) {
	d.captured = panel
}

// ReleasePointer stops routing events to a captured panel.
func (d *Desktop) ReleasePointer() {
	d.captured = nil
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable panels to buf. Skips Visible=false subtrees and
// non-interactable panels.
func (d *Desktop) collectInteractable(p *Panel, buf []*Panel) []*Panel {
	if !p.Visible {
		return buf
	}
	if p.Interactable && p != d.root {
		buf = append(buf, p)
	}

	if len(p.children) == 0 {
		return buf
	}

	children := p.children
	if !p.childrenSorted {
		rebuildSortedChildren(p)
	}
	if p.sortedChildren != nil {
		children = p.sortedChildren
	}
	for _, child := range children {
		buf = d.collectInteractable(child, buf)
	}
	return buf
}

// rebuildSortedChildren refreshes the ZIndex-sorted traversal order buffer.
// Equal ZIndex preserves insertion order.
func rebuildSortedChildren(p *Panel) {
	p.sortedChildren = p.sortedChildren[:0]
	p.sortedChildren = append(p.sortedChildren, p.children...)
	sort.SliceStable(p.sortedChildren, func(i, j int) bool {
		return p.sortedChildren[i].ZIndex < p.sortedChildren[j].ZIndex
	})
	p.childrenSorted = true
}

// hitTest finds the topmost interactable panel at (x, y) in desktop space.
// Returns nil if nothing is hit.
func (d *Desktop) hitTest(x, y float64) *Panel {
	d.hitBuf = d.collectInteractable(d.root, d.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual panel first.
	for i := len(d.hitBuf) - 1; i >= 0; i-- {
		p := d.hitBuf[i]
		lx, ly := p.WorldToLocal(x, y)
		if p.containsLocal(lx, ly) {
			return p
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Desktop.Update to handle pointer input. Injected
// synthetic events take precedence over the real mouse so tests and scripted
// sessions never race hardware state.
func (d *Desktop) processInput() {
	if d.processInjectedInput() {
		return
	}
	d.processMousePointer()
}

// processMousePointer reads the real mouse via ebiten.
func (d *Desktop) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	// Detect which button is pressed. If the pointer is already down, the
	// stored button is used to avoid changing mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	d.processPointer(x, y, pressed, button)
}

// processPointer runs the pointer state machine for one sampled pointer state.
func (d *Desktop) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &d.pointer

	// Determine target panel: captured panel or hit test.
	var target *Panel
	if d.captured != nil {
		target = d.captured
	} else {
		target = d.hitTest(x, y)
	}

	// Fire hover enter/leave when the hovered panel changes.
	if target != ps.hoverPanel {
		if ps.hoverPanel != nil {
			d.firePointerLeave(ps.hoverPanel, x, y, button)
		}
		if target != nil {
			d.firePointerEnter(target, x, y, button)
		}
		ps.hoverPanel = target
	}

	switch {
	case pressed && !ps.down:
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.button = button
		ps.startX = x
		ps.startY = y
		ps.lastX = x
		ps.lastY = y
		ps.hitPanel = target

		d.firePointerDown(target, x, y, ps.button)

	case !pressed && ps.down:
		// Just released: use button from press start. Up precedes click,
		// matching platform event order, so a drag session tears itself down
		// before any click-driven reveal fires.
		wasHit := ps.hitPanel
		d.firePointerUp(target, x, y, ps.button)
		dx := x - ps.startX
		dy := y - ps.startY
		if wasHit != nil && wasHit == target && dx*dx+dy*dy <= clickDeadZone*clickDeadZone {
			d.fireClick(target, x, y, ps.button)
		}

		// Auto-release capture.
		d.captured = nil
		ps.down = false
		ps.hitPanel = nil

	default:
		// Moved, held or not.
		if x != ps.lastX || y != ps.lastY {
			d.firePointerMove(target, x, y, ps.button)
			ps.lastX = x
			ps.lastY = y
		}
	}
}

// --- Event dispatch ---

func pointerCtx(panel *Panel, x, y float64, button MouseButton) PointerContext {
	var lx, ly float64
	if panel != nil {
		lx, ly = panel.WorldToLocal(x, y)
	}
	return PointerContext{
		Panel: panel, X: x, Y: y, LocalX: lx, LocalY: ly, Button: button,
	}
}

// dispatchPointer invokes desktop-level handlers from a snapshot, then the
// per-panel callback. The snapshot keeps dispatch stable when a handler
// unbinds during iteration (a drag session removes its own move/up bindings
// from inside the up handler).
func (d *Desktop) dispatchPointer(handlers []pointerHandler, ctx PointerContext, panelFn func(PointerContext)) {
	reg := &d.handlers
	reg.pointerBuf = append(reg.pointerBuf[:0], handlers...)
	for i := range reg.pointerBuf {
		reg.pointerBuf[i].fn(ctx)
	}
	if panelFn != nil {
		panelFn(ctx)
	}
}

func (d *Desktop) firePointerDown(panel *Panel, x, y float64, button MouseButton) {
	ctx := pointerCtx(panel, x, y, button)
	var panelFn func(PointerContext)
	if panel != nil {
		panelFn = panel.OnPointerDown
	}
	d.dispatchPointer(d.handlers.pointerDown, ctx, panelFn)
}

func (d *Desktop) firePointerUp(panel *Panel, x, y float64, button MouseButton) {
	ctx := pointerCtx(panel, x, y, button)
	var panelFn func(PointerContext)
	if panel != nil {
		panelFn = panel.OnPointerUp
	}
	d.dispatchPointer(d.handlers.pointerUp, ctx, panelFn)
}

func (d *Desktop) firePointerMove(panel *Panel, x, y float64, button MouseButton) {
	ctx := pointerCtx(panel, x, y, button)
	var panelFn func(PointerContext)
	if panel != nil {
		panelFn = panel.OnPointerMove
	}
	d.dispatchPointer(d.handlers.pointerMove, ctx, panelFn)
}

func (d *Desktop) firePointerEnter(panel *Panel, x, y float64, button MouseButton) {
	ctx := pointerCtx(panel, x, y, button)
	var panelFn func(PointerContext)
	if panel != nil {
		panelFn = panel.OnPointerEnter
	}
	d.dispatchPointer(d.handlers.pointerEnter, ctx, panelFn)
}

func (d *Desktop) firePointerLeave(panel *Panel, x, y float64, button MouseButton) {
	ctx := pointerCtx(panel, x, y, button)
	var panelFn func(PointerContext)
	if panel != nil {
		panelFn = panel.OnPointerLeave
	}
	d.dispatchPointer(d.handlers.pointerLeave, ctx, panelFn)
}

func (d *Desktop) fireClick(panel *Panel, x, y float64, button MouseButton) {
	var lx, ly float64
	if panel != nil {
		lx, ly = panel.WorldToLocal(x, y)
	}
	ctx := ClickContext{
		Panel: panel, X: x, Y: y, LocalX: lx, LocalY: ly, Button: button,
	}
	reg := &d.handlers
	reg.clickBuf = append(reg.clickBuf[:0], reg.click...)
	for i := range reg.clickBuf {
		reg.clickBuf[i].fn(ctx)
	}
	if panel != nil && panel.OnClick != nil {
		panel.OnClick(ctx)
	}
}
