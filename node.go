package gadget

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Callback contexts ---

// PointerContext carries pointer event data. Coordinates are in desktop space;
// LocalX/LocalY are relative to the panel's top-left corner (zero when no
// panel was hit).
type PointerContext struct {
	Panel  *Panel
	X      float64
	Y      float64
	LocalX float64
	LocalY float64
	Button MouseButton
}

// ClickContext carries click event data.
type ClickContext struct {
	Panel  *Panel
	X      float64
	Y      float64
	LocalX float64
	LocalY float64
	Button MouseButton
}

// --- ID counter ---

// panelIDCounter is a plain counter (no atomic, gadget is single-threaded).
var panelIDCounter uint32

func nextPanelID() uint32 {
	panelIDCounter++
	return panelIDCounter
}

// --- Panel ---

// Panel is the rectangular surface element of the desktop. Panels form a tree
// rooted at Desktop.Root; children are positioned relative to their parent.
// A single flat struct covers plain chrome and canvas-backed surfaces alike.
type Panel struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Panel
	children []*Panel

	// Geometry (relative to parent)
	X, Y          float64
	Width, Height float64

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool
	Active       bool // drawn highlighted while a drag session holds the panel

	// Ordering
	ZIndex int

	// Appearance
	Color  Color
	canvas *ebiten.Image // optional drawing surface stretched over the panel

	// Per-panel callbacks (nil by default; zero cost when unused)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Panel // reused buffer for ZIndex-sorted traversal order
}

// panelDefaults sets the common default field values shared by all constructors.
func panelDefaults(p *Panel) {
	p.ID = nextPanelID()
	p.Alpha = 1
	p.Color = ColorWhite
	p.Visible = true
	p.childrenSorted = true
}

// NewPanel creates a panel with the given name and size.
func NewPanel(name string, width, height float64) *Panel {
	p := &Panel{Name: name, Width: width, Height: height}
	panelDefaults(p)
	return p
}

// SetCanvas attaches a drawing surface to this panel. The image is stretched
// to the panel's current width and height when drawn.
func (p *Panel) SetCanvas(img *ebiten.Image) {
	p.canvas = img
}

// Canvas returns the panel's drawing surface, or nil if not set.
func (p *Panel) Canvas() *ebiten.Image {
	return p.canvas
}

// --- Tree manipulation ---

// AddChild appends child to this panel's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this panel (cycle).
func (p *Panel) AddChild(child *Panel) {
	if child == nil {
		panic("gadget: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(p, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, p) {
		panic("gadget: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = p
	p.children = append(p.children, child)
	p.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this panel.
// Panics if child.Parent != p.
func (p *Panel) RemoveChild(child *Panel) {
	if globalDebug {
		debugCheckDisposed(p, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != p {
		panic("gadget: child's parent is not this panel")
	}
	p.removeChildByPtr(child)
	child.Parent = nil
	p.childrenSorted = false
}

// RemoveFromParent detaches this panel from its parent.
// No-op if this panel has no parent.
func (p *Panel) RemoveFromParent() {
	if p.Parent == nil {
		return
	}
	p.Parent.RemoveChild(p)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (p *Panel) Children() []*Panel {
	return p.children
}

// NumChildren returns the number of children.
func (p *Panel) NumChildren() int {
	return len(p.children)
}

// SetZIndex sets the panel's ZIndex and marks the parent's children as unsorted.
func (p *Panel) SetZIndex(z int) {
	if p.ZIndex == z {
		return
	}
	p.ZIndex = z
	if p.Parent != nil {
		p.Parent.childrenSorted = false
	}
}

// --- Geometry ---

// WorldPosition returns the panel's top-left corner in desktop coordinates.
func (p *Panel) WorldPosition() (x, y float64) {
	for n := p; n != nil; n = n.Parent {
		x += n.X
		y += n.Y
	}
	return x, y
}

// worldAlpha returns the panel's effective alpha including all ancestors.
func (p *Panel) worldAlpha() float64 {
	a := 1.0
	for n := p; n != nil; n = n.Parent {
		a *= n.Alpha
	}
	return a
}

// containsLocal reports whether (lx, ly) falls inside the panel's bounds.
// Zero-sized panels are not hit-testable.
func (p *Panel) containsLocal(lx, ly float64) bool {
	if p.Width == 0 && p.Height == 0 {
		return false
	}
	return (Rect{Width: p.Width, Height: p.Height}).Contains(lx, ly)
}

// Bounds returns the panel's rectangle in desktop coordinates.
func (p *Panel) Bounds() Rect {
	x, y := p.WorldPosition()
	return Rect{X: x, Y: y, Width: p.Width, Height: p.Height}
}

// WorldToLocal converts a desktop-space point to this panel's local space.
func (p *Panel) WorldToLocal(wx, wy float64) (lx, ly float64) {
	x, y := p.WorldPosition()
	return wx - x, wy - y
}

// --- Disposal ---

// Dispose removes this panel from its parent, marks it as disposed,
// and recursively disposes all descendants. The canvas image, if any,
// is deallocated.
func (p *Panel) Dispose() {
	if p.disposed {
		return
	}
	p.RemoveFromParent()
	p.dispose()
}

func (p *Panel) dispose() {
	p.disposed = true
	p.ID = 0
	for _, child := range p.children {
		child.Parent = nil
		child.dispose()
	}
	p.children = nil
	p.sortedChildren = nil
	p.Parent = nil
	if p.canvas != nil {
		p.canvas.Deallocate()
		p.canvas = nil
	}
	p.OnPointerDown = nil
	p.OnPointerUp = nil
	p.OnPointerMove = nil
	p.OnClick = nil
	p.OnPointerEnter = nil
	p.OnPointerLeave = nil
}

// IsDisposed returns true if this panel has been disposed.
func (p *Panel) IsDisposed() bool {
	return p.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of panel.
func isAncestor(candidate, panel *Panel) bool {
	for n := panel; n != nil; n = n.Parent {
		if n == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from p.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (p *Panel) removeChildByPtr(child *Panel) {
	for i, c := range p.children {
		if c == child {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = nil
			p.children = p.children[:len(p.children)-1]
			return
		}
	}
}
