package gadget

import "github.com/hajimehoshi/ebiten/v2"

// Behavior is the extension surface for concrete widget kinds. Implementations
// compose with the widget rather than subclassing it: embed NopBehavior and
// override the hooks the widget kind cares about.
//
// All hooks run on the game loop goroutine.
type Behavior interface {
	// Inited fires once the widget's panels are mounted and live.
	Inited(w *Widget)

	// PointerDown fires when a drag session starts on the widget.
	PointerDown(w *Widget)

	// Moved fires after each applied position change during a move drag.
	Moved(w *Widget, pos Position)

	// Resized fires after each applied dimension change during a resize drag,
	// and once from MarkInited.
	Resized(w *Widget, dim Dimension)

	// Render fires on the widget's render schedule with the canvas surface.
	// Only called for canvas widgets.
	Render(w *Widget, canvas *ebiten.Image)
}

// NopBehavior implements Behavior with no-ops. Embed it so widget kinds only
// spell out the hooks they use.
type NopBehavior struct{}

func (NopBehavior) Inited(*Widget)                {}
func (NopBehavior) PointerDown(*Widget)           {}
func (NopBehavior) Moved(*Widget, Position)       {}
func (NopBehavior) Resized(*Widget, Dimension)    {}
func (NopBehavior) Render(*Widget, *ebiten.Image) {}
