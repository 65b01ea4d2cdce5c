package gadget

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Shared test fixtures ---

// fakeClock is a manually advanced Clock for deterministic timer and
// scheduling tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// tick advances the desktop one frame without sampling the real mouse:
// injected input, due timers, envelope fades, and render schedules.
func tick(d *Desktop) {
	now := d.clock.Now()
	var dt float64
	if d.hasUpdated {
		dt = now.Sub(d.lastUpdate).Seconds()
	}
	d.lastUpdate = now
	d.hasUpdated = true

	d.processInjectedInput()
	d.runDueTasks(now)
	d.stepWidgets(now, dt)
}

// newTestDesktop creates a 1024x768 desktop on a fake clock.
func newTestDesktop() (*Desktop, *fakeClock) {
	d := NewDesktop(1024, 768)
	clock := newFakeClock()
	d.SetClock(clock)
	return d, clock
}

// recordBehavior captures every hook invocation for assertions.
type recordBehavior struct {
	inited      int
	pointerDown int
	moved       []Position
	resized     []Dimension
	rendered    int
}

func (r *recordBehavior) Inited(*Widget)      { r.inited++ }
func (r *recordBehavior) PointerDown(*Widget) { r.pointerDown++ }

func (r *recordBehavior) Moved(_ *Widget, pos Position) {
	r.moved = append(r.moved, pos)
}

func (r *recordBehavior) Resized(_ *Widget, dim Dimension) {
	r.resized = append(r.resized, dim)
}

func (r *recordBehavior) Render(*Widget, *ebiten.Image) { r.rendered++ }

// destroyOnRender tears the target widget down from inside the render hook.
type destroyOnRender struct {
	NopBehavior
	target *Widget
}

func (b *destroyOnRender) Render(*Widget, *ebiten.Image) { b.target.Destroy() }
