package gadget

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
)

// Widget chrome metrics.
const (
	// GripSize is the edge length of the square resize grip. The grip is
	// centered on the widget's bottom-right corner.
	GripSize = 14.0

	// EnvelopeHeight is the height of the reveal flap along the widget's top
	// edge.
	EnvelopeHeight = 24.0

	// PersistDelay is the quiet period after a completed drag before the
	// position and dimension are written to the settings handle. Drags
	// completing within the window coalesce into a single write.
	PersistDelay = 500 * time.Millisecond
)

// Widget is a draggable, optionally resizable desktop panel with persisted
// placement. Pointer drags on its surface move it; drags on the resize grip
// change its dimensions; placement sticks to the nearest viewport edge and is
// written back to the settings handle after each completed drag.
//
// Create widgets with Desktop.NewWidget, mount with Init, activate with
// MarkInited, and tear down with Destroy.
type Widget struct {
	desktop  *Desktop
	name     string
	opts     Options
	settings Settings
	behavior Behavior

	position  Position
	dimension Dimension

	// Chrome (created in Init, disposed in Destroy)
	container *Panel
	grip      *Panel
	envelope  *Panel

	inited    bool
	destroyed bool

	// Desktop-level bindings registered by this instance, unbound in Destroy.
	bindings []Binding

	// Drag session; nil while idle.
	session      *dragSession
	manipulating bool

	// Pending debounced settings write.
	persist TaskHandle

	// Envelope reveal state.
	envShown bool
	envShow  TaskHandle
	envHide  TaskHandle
	envTween *gween.Tween

	// Canvas render schedule.
	rendering      bool
	renderBaseline time.Time
}

// NewWidget constructs a widget from options merged over defaults and the
// placement restored from the settings handle. No panels are created until
// Init. A nil settings handle disables persistence.
func (d *Desktop) NewWidget(name string, opts Options, settings Settings) *Widget {
	opts = applyDefaults(opts)

	w := &Widget{
		desktop:  d,
		name:     name,
		opts:     opts,
		settings: settings,
		behavior: NopBehavior{},
	}

	var stored map[string]float64
	if settings != nil {
		stored = settings.All()
	}
	// A persisted record replaces the option anchors wholesale. Mixing the two
	// could leave both anchors of an axis populated, with the option anchor
	// shadowing the persisted one.
	if len(stored) > 0 {
		w.position = Position{
			Left:   storedAnchor(stored, "left"),
			Top:    storedAnchor(stored, "top"),
			Right:  storedAnchor(stored, "right"),
			Bottom: storedAnchor(stored, "bottom"),
		}
	} else {
		w.position = Position{
			Left:   opts.Left,
			Top:    opts.Top,
			Right:  opts.Right,
			Bottom: opts.Bottom,
		}.Clone()
	}
	w.dimension = Dimension{
		Width:  restoreValue(stored, "width", opts.Width),
		Height: restoreValue(stored, "height", opts.Height),
	}.clamped(opts)

	d.widgets = append(d.widgets, w)
	return w
}

// storedAnchor returns the persisted anchor value, or nil when the key is
// absent. Absence marks the anchor as inactive for its axis.
func storedAnchor(stored map[string]float64, key string) *float64 {
	if v, ok := stored[key]; ok {
		return Float(v)
	}
	return nil
}

func restoreValue(stored map[string]float64, key string, fallback float64) float64 {
	if v, ok := stored[key]; ok {
		return v
	}
	return fallback
}

// SetBehavior installs the widget kind's hooks. Pass nil to restore no-ops.
// Call before MarkInited so the Inited hook is observed.
func (w *Widget) SetBehavior(b Behavior) {
	if b == nil {
		b = NopBehavior{}
	}
	w.behavior = b
}

// Init creates the widget's chrome and mounts it under root (the desktop root
// when root is nil): the resize grip first, then the container with the
// envelope flap as a hidden child. For canvas widgets a
// drawing surface sized to the current dimension is attached. Idempotent per
// instance: a second call returns the existing container.
func (w *Widget) Init(root *Panel) *Panel {
	if w.destroyed || w.container != nil {
		return w.container
	}
	if root == nil {
		root = w.desktop.root
	}

	container := NewPanel(w.name, w.dimension.Width, w.dimension.Height)
	container.Interactable = true
	container.Color = Color{R: 0.13, G: 0.14, B: 0.18, A: 0.95}
	w.container = container

	grip := NewPanel(w.name+"/grip", GripSize, GripSize)
	grip.Interactable = w.opts.Resizable
	grip.Visible = w.opts.Resizable
	grip.Color = Color{R: 0.55, G: 0.58, B: 0.65, A: 1}
	w.grip = grip

	envelope := NewPanel(w.name+"/envelope", w.dimension.Width, EnvelopeHeight)
	envelope.Visible = false
	envelope.Alpha = 0
	envelope.Color = Color{R: 0.85, G: 0.85, B: 0.9, A: 0.9}
	container.AddChild(envelope)
	w.envelope = envelope

	if w.opts.Canvas {
		container.SetCanvas(newCanvas(w.dimension))
	}

	container.OnPointerDown = func(ctx PointerContext) {
		w.beginDrag(DragMove, ctx)
	}
	grip.OnPointerDown = func(ctx PointerContext) {
		w.beginDrag(DragResize, ctx)
	}
	container.OnClick = func(ClickContext) {
		w.showEnvelope()
	}
	container.OnPointerEnter = func(PointerContext) {
		w.hoverStarted()
	}
	container.OnPointerLeave = func(PointerContext) {
		w.hoverEnded()
	}

	w.applyGeometry()

	// The container mounts above the grip; the grip's outer half pokes past
	// the corner and is its hit area.
	root.AddChild(grip)
	root.AddChild(container)
	return container
}

// MarkInited is called by the host once the mounted panel is part of a live
// desktop. It fires the Inited and Resized hooks and, for canvas widgets,
// starts the render schedule.
func (w *Widget) MarkInited() {
	if w.inited || w.destroyed || w.container == nil {
		return
	}
	w.inited = true
	w.behavior.Inited(w)
	w.behavior.Resized(w, w.dimension)
	if w.opts.Canvas {
		w.rendering = true
		w.renderBaseline = w.desktop.clock.Now()
	}
}

// Destroy unbinds every handler this widget registered, cancels pending
// timers and the render schedule, and disposes the chrome. Safe to call
// mid-drag and safe to call more than once.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true

	if w.session != nil {
		w.session.move.Unbind()
		w.session.up.Unbind()
		w.session = nil
		w.desktop.ReleasePointer()
	}
	w.manipulating = false

	w.persist.Cancel()
	w.envShow.Cancel()
	w.envHide.Cancel()
	w.envTween = nil
	w.rendering = false

	for _, b := range w.bindings {
		b.Unbind()
	}
	w.bindings = nil

	if w.grip != nil {
		w.grip.Dispose()
		w.grip = nil
	}
	if w.container != nil {
		w.container.Dispose()
		w.container = nil
	}
	w.envelope = nil

	w.desktop.widgetDestroyed(w)
}

// --- Accessors ---

// Name returns the widget's name, which also keys its settings record.
func (w *Widget) Name() string { return w.name }

// Options returns the merged options the widget was constructed with.
func (w *Widget) Options() Options { return w.opts }

// Container returns the mounted container panel, or nil before Init.
func (w *Widget) Container() *Panel { return w.container }

// Grip returns the resize grip panel, or nil before Init.
func (w *Widget) Grip() *Panel { return w.grip }

// Canvas returns the drawing surface for canvas widgets, nil otherwise.
func (w *Widget) Canvas() *ebiten.Image {
	if w.container == nil {
		return nil
	}
	return w.container.Canvas()
}

// ViewBox returns the configured canvas coordinate system, or "".
func (w *Widget) ViewBox() string { return w.opts.ViewBox }

// Position returns a copy of the current anchored position.
func (w *Widget) Position() Position { return w.position.Clone() }

// Dimension returns the current dimension.
func (w *Widget) Dimension() Dimension { return w.dimension }

// Manipulating reports whether a drag session is actively moving or resizing
// the widget.
func (w *Widget) Manipulating() bool { return w.manipulating }

// NormalizedPosition resolves the current anchors into absolute left/top
// coordinates under the current viewport without mutating stored state.
func (w *Widget) NormalizedPosition() (left, top float64) {
	vw, vh := w.desktop.Viewport()
	return w.position.Normalized(vw, vh, w.dimension)
}

// SetPosition replaces the widget's position. With stick true the position is
// re-anchored to the nearest viewport edges first, leaving exactly one anchor
// per axis.
func (w *Widget) SetPosition(pos Position, stick bool) {
	if w.destroyed {
		return
	}
	if stick {
		vw, vh := w.desktop.Viewport()
		pos = pos.stuck(vw, vh, w.dimension)
	}
	w.position = pos.Clone()
	w.applyGeometry()
}

// SetDimension replaces the widget's dimension, clamped to the option bounds.
func (w *Widget) SetDimension(dim Dimension) {
	if w.destroyed {
		return
	}
	w.dimension = dim.clamped(w.opts)
	w.applyGeometry()
}

// --- Geometry application ---

// newCanvas allocates a drawing surface for the given dimension, always at
// least 1x1 so degenerate dimensions cannot panic the allocator.
func newCanvas(dim Dimension) *ebiten.Image {
	cw, ch := int(dim.Width), int(dim.Height)
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	return ebiten.NewImage(cw, ch)
}

// applyGeometry projects the widget's position and dimension onto its panels.
// Silent no-op before Init and after Destroy. Safe to call repeatedly.
func (w *Widget) applyGeometry() {
	if w.container == nil {
		return
	}
	vw, vh := w.desktop.Viewport()
	left, top := w.position.Normalized(vw, vh, w.dimension)

	w.container.X = left
	w.container.Y = top
	w.container.Width = w.dimension.Width
	w.container.Height = w.dimension.Height

	// Grip centered on the bottom-right corner so half of it pokes out past
	// the container for hit testing.
	w.grip.X = left + w.dimension.Width - GripSize/2
	w.grip.Y = top + w.dimension.Height - GripSize/2

	w.envelope.Width = w.dimension.Width

	if canvas := w.container.Canvas(); canvas != nil {
		bounds := canvas.Bounds()
		if bounds.Dx() != int(w.dimension.Width) || bounds.Dy() != int(w.dimension.Height) {
			canvas.Deallocate()
			w.container.SetCanvas(newCanvas(w.dimension))
		}
	}
}

// persistRecord writes the current placement to the settings handle, replacing
// the stored record: width and height plus the active anchor per axis.
// Consumers must treat only the anchors present as meaningful.
func (w *Widget) persistRecord() {
	if w.destroyed || w.settings == nil {
		return
	}
	rec := map[string]float64{
		"width":  w.dimension.Width,
		"height": w.dimension.Height,
	}
	if w.position.Left != nil {
		rec["left"] = *w.position.Left
	}
	if w.position.Top != nil {
		rec["top"] = *w.position.Top
	}
	if w.position.Right != nil {
		rec["right"] = *w.position.Right
	}
	if w.position.Bottom != nil {
		rec["bottom"] = *w.position.Bottom
	}
	w.settings.SetAll(rec, true)
}
