package gadget

import (
	"testing"
)

// --- Tree manipulation tests ---

func TestAddChild(t *testing.T) {
	parent := NewPanel("parent", 100, 100)
	child := NewPanel("child", 10, 10)

	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAddChild_Reparents(t *testing.T) {
	a := NewPanel("a", 100, 100)
	b := NewPanel("b", 100, 100)
	child := NewPanel("child", 10, 10)

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Error("child should belong to b")
	}
	if a.NumChildren() != 0 {
		t.Errorf("a.NumChildren = %d, want 0", a.NumChildren())
	}
}

func TestAddChild_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewPanel("p", 10, 10).AddChild(nil)
}

func TestAddChild_CyclePanics(t *testing.T) {
	a := NewPanel("a", 10, 10)
	b := NewPanel("b", 10, 10)
	a.AddChild(b)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChild_WrongParentPanics(t *testing.T) {
	a := NewPanel("a", 10, 10)
	b := NewPanel("b", 10, 10)
	child := NewPanel("child", 10, 10)
	a.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when removing from non-parent")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewPanel("parent", 100, 100)
	child := NewPanel("child", 10, 10)
	parent.AddChild(child)

	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child not detached")
	}

	// No parent: no-op.
	child.RemoveFromParent()
}

// --- Geometry tests ---

func TestWorldPosition(t *testing.T) {
	grandparent := NewPanel("gp", 500, 500)
	grandparent.X, grandparent.Y = 10, 20
	parent := NewPanel("p", 200, 200)
	parent.X, parent.Y = 30, 40
	child := NewPanel("c", 50, 50)
	child.X, child.Y = 5, 6

	grandparent.AddChild(parent)
	parent.AddChild(child)

	x, y := child.WorldPosition()
	if x != 45 || y != 66 {
		t.Errorf("WorldPosition = (%v, %v), want (45, 66)", x, y)
	}
}

func TestWorldToLocal(t *testing.T) {
	parent := NewPanel("p", 200, 200)
	parent.X, parent.Y = 100, 50
	child := NewPanel("c", 50, 50)
	child.X, child.Y = 10, 10
	parent.AddChild(child)

	lx, ly := child.WorldToLocal(130, 70)
	if lx != 20 || ly != 10 {
		t.Errorf("WorldToLocal = (%v, %v), want (20, 10)", lx, ly)
	}
}

func TestContainsLocal(t *testing.T) {
	p := NewPanel("p", 100, 50)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 25, true},
		{"top-left corner", 0, 0, true},
		{"bottom-right corner", 100, 50, true},
		{"outside left", -1, 25, false},
		{"outside bottom", 50, 51, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.containsLocal(tt.x, tt.y); got != tt.want {
				t.Errorf("containsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestContainsLocal_ZeroSizeNotHittable(t *testing.T) {
	p := NewPanel("p", 0, 0)
	if p.containsLocal(0, 0) {
		t.Error("zero-size panel should not be hit-testable")
	}
}

func TestBounds(t *testing.T) {
	parent := NewPanel("p", 200, 200)
	parent.X, parent.Y = 100, 50
	child := NewPanel("c", 40, 30)
	child.X, child.Y = 10, 20
	parent.AddChild(child)

	got := child.Bounds()
	want := Rect{X: 110, Y: 70, Width: 40, Height: 30}
	if got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"contained", Rect{X: 10, Y: 10, Width: 20, Height: 20}, true},
		{"sharing edge", Rect{X: 100, Y: 0, Width: 50, Height: 100}, true},
		{"disjoint", Rect{X: 101, Y: 0, Width: 50, Height: 100}, false},
		{"disjoint vertical", Rect{X: 0, Y: 200, Width: 100, Height: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestWorldAlpha(t *testing.T) {
	parent := NewPanel("p", 100, 100)
	parent.Alpha = 0.5
	child := NewPanel("c", 10, 10)
	child.Alpha = 0.5
	parent.AddChild(child)

	if got := child.worldAlpha(); got != 0.25 {
		t.Errorf("worldAlpha = %v, want 0.25", got)
	}
}

// --- ZIndex tests ---

func TestSetZIndex_MarksParentUnsorted(t *testing.T) {
	parent := NewPanel("p", 100, 100)
	child := NewPanel("c", 10, 10)
	parent.AddChild(child)
	rebuildSortedChildren(parent)

	child.SetZIndex(5)
	if parent.childrenSorted {
		t.Error("parent should be marked unsorted after ZIndex change")
	}

	// Same value: no invalidation.
	rebuildSortedChildren(parent)
	child.SetZIndex(5)
	if !parent.childrenSorted {
		t.Error("setting the same ZIndex should not invalidate")
	}
}

func TestRebuildSortedChildren_StableForEqualZIndex(t *testing.T) {
	parent := NewPanel("p", 100, 100)
	a := NewPanel("a", 10, 10)
	b := NewPanel("b", 10, 10)
	c := NewPanel("c", 10, 10)
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)
	b.SetZIndex(-1)

	rebuildSortedChildren(parent)
	got := parent.sortedChildren
	if got[0] != b || got[1] != a || got[2] != c {
		t.Errorf("sorted order = [%s %s %s], want [b a c]", got[0].Name, got[1].Name, got[2].Name)
	}
}

// --- Disposal tests ---

func TestDispose(t *testing.T) {
	parent := NewPanel("p", 100, 100)
	child := NewPanel("c", 10, 10)
	grandchild := NewPanel("gc", 5, 5)
	parent.AddChild(child)
	child.AddChild(grandchild)
	child.OnClick = func(ClickContext) {}

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("disposal should recurse")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed panel still attached to parent")
	}
	if child.OnClick != nil {
		t.Error("callbacks should be cleared")
	}
	if child.NumChildren() != 0 || grandchild.Parent != nil {
		t.Error("disposed tree should be unlinked")
	}

	// Second Dispose is a no-op.
	child.Dispose()
}
