package gadget

import (
	"time"
)

// Desktop is the top-level object that owns the panel tree, widget registry,
// pointer state, clock, and timer queue. All state transitions happen on the
// game loop goroutine in response to Update, never concurrently.
type Desktop struct {
	root  *Panel
	debug bool

	// Viewport extent in desktop coordinates.
	viewportW float64
	viewportH float64

	// Widgets registered via NewWidget, in creation order.
	widgets []*Widget
	stepBuf []*Widget // reused snapshot for the per-frame widget walk

	// Time
	clock      Clock
	lastUpdate time.Time
	hasUpdated bool

	// Timer queue
	tasks      []scheduledTask
	nextTaskID uint64
	dueBuf     []scheduledTask

	// Input state
	handlers    handlerRegistry
	captured    *Panel
	pointer     pointerState
	hitBuf      []*Panel
	injectQueue []syntheticPointerEvent

	// Drawing
	ClearColor Color
}

// NewDesktop creates a desktop with the given viewport size and a pre-created
// root container panel spanning it.
func NewDesktop(width, height float64) *Desktop {
	root := NewPanel("root", width, height)
	root.Interactable = true
	root.Color = Color{} // root has no fill of its own
	return &Desktop{
		root:      root,
		viewportW: width,
		viewportH: height,
		clock:     systemClock{},
	}
}

// Root returns the desktop's root container panel.
func (d *Desktop) Root() *Panel {
	return d.root
}

// Viewport returns the current viewport extent.
func (d *Desktop) Viewport() (w, h float64) {
	return d.viewportW, d.viewportH
}

// SetViewport resizes the viewport and re-applies every widget's geometry so
// edge-anchored widgets follow their edge.
func (d *Desktop) SetViewport(w, h float64) {
	if w == d.viewportW && h == d.viewportH {
		return
	}
	d.viewportW = w
	d.viewportH = h
	d.root.Width = w
	d.root.Height = h
	for _, wd := range d.widgets {
		wd.applyGeometry()
	}
}

// SetClock replaces the desktop clock. Returns the previous clock so callers
// can restore it during cleanup.
func (d *Desktop) SetClock(c Clock) Clock {
	prev := d.clock
	d.clock = c
	return prev
}

// Now returns the current time from the desktop clock.
func (d *Desktop) Now() time.Time {
	return d.clock.Now()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-panel
// access panics and tree depth warnings are printed to stderr.
func (d *Desktop) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Desktop debug flag so that panel
// operations (which lack a Desktop pointer) can check it cheaply. Only valid
// with a single Desktop; multiple Desktops with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Update advances the desktop by one frame: it processes pointer input, fires
// due timers, advances envelope animations, and runs widget render schedules.
func (d *Desktop) Update() {
	now := d.clock.Now()
	var dt float64
	if d.hasUpdated {
		dt = now.Sub(d.lastUpdate).Seconds()
	}
	d.lastUpdate = now
	d.hasUpdated = true

	d.processInput()
	d.runDueTasks(now)
	d.stepWidgets(now, dt)
}

// stepWidgets advances every widget's envelope fade and render schedule.
// A snapshot is iterated so a Behavior hook may destroy a widget mid-frame
// without skipping a neighbor's step; stepping a destroyed widget is a no-op.
func (d *Desktop) stepWidgets(now time.Time, dt float64) {
	d.stepBuf = append(d.stepBuf[:0], d.widgets...)
	for i, w := range d.stepBuf {
		w.stepEnvelope(float32(dt))
		w.stepRender(now)
		d.stepBuf[i] = nil
	}
}

// widgetDestroyed removes w from the registry. Called from Widget.Destroy.
func (d *Desktop) widgetDestroyed(w *Widget) {
	for i, reg := range d.widgets {
		if reg == w {
			d.widgets = append(d.widgets[:i], d.widgets[i+1:]...)
			return
		}
	}
}
