package gadget

import (
	"testing"
)

// addBox mounts an interactable panel at (x, y).
func addBox(d *Desktop, name string, x, y, w, h float64) *Panel {
	p := NewPanel(name, w, h)
	p.X, p.Y = x, y
	p.Interactable = true
	d.Root().AddChild(p)
	return p
}

// --- Hit test tests ---

func TestHitTest_Topmost(t *testing.T) {
	d, _ := newTestDesktop()
	addBox(d, "a", 0, 0, 100, 100)
	b := addBox(d, "b", 0, 0, 100, 100)

	if hit := d.hitTest(50, 50); hit != b {
		t.Errorf("expected topmost panel b, got %v", hit)
	}
}

func TestHitTest_RespectsZIndex(t *testing.T) {
	d, _ := newTestDesktop()
	a := addBox(d, "a", 0, 0, 100, 100)
	addBox(d, "b", 0, 0, 100, 100)
	a.SetZIndex(10)

	if hit := d.hitTest(50, 50); hit != a {
		t.Errorf("expected panel a (higher ZIndex), got %v", hit)
	}
}

func TestHitTest_SkipsInvisible(t *testing.T) {
	d, _ := newTestDesktop()
	a := addBox(d, "a", 0, 0, 100, 100)
	b := addBox(d, "b", 0, 0, 100, 100)
	b.Visible = false

	if hit := d.hitTest(50, 50); hit != a {
		t.Errorf("expected panel a (b invisible), got %v", hit)
	}
}

func TestHitTest_SkipsInvisibleSubtree(t *testing.T) {
	d, _ := newTestDesktop()
	parent := addBox(d, "parent", 0, 0, 100, 100)
	parent.Visible = false
	child := NewPanel("child", 50, 50)
	child.Interactable = true
	parent.AddChild(child)

	if hit := d.hitTest(25, 25); hit != nil {
		t.Errorf("expected nil (invisible subtree), got %v", hit)
	}
}

func TestHitTest_SkipsNonInteractable(t *testing.T) {
	d, _ := newTestDesktop()
	a := addBox(d, "a", 0, 0, 100, 100)
	b := addBox(d, "b", 0, 0, 100, 100)
	b.Interactable = false

	if hit := d.hitTest(50, 50); hit != a {
		t.Errorf("expected panel a (b not interactable), got %v", hit)
	}
}

func TestHitTest_Miss(t *testing.T) {
	d, _ := newTestDesktop()
	addBox(d, "a", 0, 0, 100, 100)

	if hit := d.hitTest(500, 500); hit != nil {
		t.Errorf("expected nil, got %v", hit)
	}
}

func TestHitTest_RootNotHittable(t *testing.T) {
	d, _ := newTestDesktop()
	if hit := d.hitTest(50, 50); hit != nil {
		t.Errorf("root should not be a hit target, got %v", hit)
	}
}

// --- Pointer state machine tests ---

func TestProcessPointer_DownUpClickOrder(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	var order []string
	box.OnPointerDown = func(PointerContext) { order = append(order, "down") }
	box.OnPointerUp = func(PointerContext) { order = append(order, "up") }
	box.OnClick = func(ClickContext) { order = append(order, "click") }

	d.processPointer(50, 50, true, MouseButtonLeft)
	d.processPointer(50, 50, false, MouseButtonLeft)

	want := []string{"down", "up", "click"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("event order = %v, want %v", order, want)
	}
}

func TestProcessPointer_ClickWithinDeadZone(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	clicked := false
	box.OnClick = func(ClickContext) { clicked = true }

	d.processPointer(50, 50, true, MouseButtonLeft)
	d.processPointer(52, 52, true, MouseButtonLeft)
	d.processPointer(52, 52, false, MouseButtonLeft)

	if !clicked {
		t.Error("small pointer travel should still click")
	}
}

func TestProcessPointer_ClickSuppressedAfterDrag(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	clicked := false
	box.OnClick = func(ClickContext) { clicked = true }

	d.processPointer(50, 50, true, MouseButtonLeft)
	d.processPointer(80, 50, true, MouseButtonLeft)
	d.processPointer(80, 50, false, MouseButtonLeft)

	if clicked {
		t.Error("click should not fire after the pointer travelled")
	}
}

func TestProcessPointer_NoClickAcrossPanels(t *testing.T) {
	d, _ := newTestDesktop()
	a := addBox(d, "a", 0, 0, 50, 100)
	b := addBox(d, "b", 50.5, 0, 50, 100)

	clicked := false
	a.OnClick = func(ClickContext) { clicked = true }
	b.OnClick = func(ClickContext) { clicked = true }

	// Press on a, release just over the border on b.
	d.processPointer(49, 50, true, MouseButtonLeft)
	d.processPointer(52, 50, false, MouseButtonLeft)

	if clicked {
		t.Error("click should not fire when press and release hit different panels")
	}
}

func TestProcessPointer_EnterLeave(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	var events []string
	box.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	box.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	d.processPointer(50, 50, false, MouseButtonLeft) // hover on
	d.processPointer(60, 60, false, MouseButtonLeft) // move within
	d.processPointer(500, 500, false, MouseButtonLeft) // hover off

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestProcessPointer_HoverMoveFires(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	moves := 0
	box.OnPointerMove = func(PointerContext) { moves++ }

	d.processPointer(50, 50, false, MouseButtonLeft)
	d.processPointer(60, 60, false, MouseButtonLeft)
	d.processPointer(60, 60, false, MouseButtonLeft) // no movement

	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
}

func TestProcessPointer_LocalCoordinates(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 100, 50, 100, 100)

	box.OnPointerDown = func(ctx PointerContext) {
		if ctx.X != 130 || ctx.Y != 70 {
			t.Errorf("desktop coords = (%v, %v), want (130, 70)", ctx.X, ctx.Y)
		}
		if ctx.LocalX != 30 || ctx.LocalY != 20 {
			t.Errorf("local coords = (%v, %v), want (30, 20)", ctx.LocalX, ctx.LocalY)
		}
	}
	d.processPointer(130, 70, true, MouseButtonLeft)
}

func TestProcessPointer_ButtonHeldFromPress(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	var upButton MouseButton
	box.OnPointerUp = func(ctx PointerContext) { upButton = ctx.Button }

	d.processPointer(50, 50, true, MouseButtonRight)
	d.processPointer(50, 50, false, MouseButtonLeft) // sampled button differs

	if upButton != MouseButtonRight {
		t.Errorf("up button = %v, want the press button", upButton)
	}
}

// --- Capture tests ---

func TestCapturePointer_RoutesEvents(t *testing.T) {
	d, _ := newTestDesktop()
	a := addBox(d, "a", 0, 0, 100, 100)
	b := addBox(d, "b", 200, 0, 100, 100)

	var target *Panel
	d.OnPointerDown(func(ctx PointerContext) { target = ctx.Panel })

	d.CapturePointer(b)
	d.processPointer(50, 50, true, MouseButtonLeft) // over a

	if target != b {
		t.Errorf("captured target = %v, want b", target)
	}
	_ = a
}

func TestCapturePointer_AutoReleaseOnUp(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	d.CapturePointer(box)
	d.processPointer(50, 50, true, MouseButtonLeft)
	d.processPointer(50, 50, false, MouseButtonLeft)

	if d.captured != nil {
		t.Error("capture should auto-release on pointer up")
	}
}

// --- Binding tests ---

func TestBinding_Unbind(t *testing.T) {
	d, _ := newTestDesktop()
	addBox(d, "box", 0, 0, 100, 100)

	count := 0
	b := d.OnPointerDown(func(PointerContext) { count++ })

	d.processPointer(50, 50, true, MouseButtonLeft)
	d.processPointer(50, 50, false, MouseButtonLeft)
	b.Unbind()
	d.processPointer(50, 50, true, MouseButtonLeft)

	if count != 1 {
		t.Errorf("count = %d, want 1 (handler unbound)", count)
	}
}

func TestBinding_ZeroValueInert(t *testing.T) {
	var b Binding
	b.Unbind()
}

func TestBinding_UnbindSelfDuringDispatch(t *testing.T) {
	d, _ := newTestDesktop()
	addBox(d, "box", 0, 0, 100, 100)

	var first Binding
	firstCalls, secondCalls := 0, 0
	first = d.OnPointerMove(func(PointerContext) {
		firstCalls++
		first.Unbind()
	})
	d.OnPointerMove(func(PointerContext) { secondCalls++ })

	d.processPointer(50, 50, false, MouseButtonLeft)
	d.processPointer(60, 60, false, MouseButtonLeft)

	if firstCalls != 1 {
		t.Errorf("first handler calls = %d, want 1", firstCalls)
	}
	if secondCalls != 2 {
		t.Errorf("second handler calls = %d, want 2 (dispatch must survive unbind)", secondCalls)
	}
}

// --- Injection tests ---

func TestInject_OneEventPerFrame(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	downs := 0
	box.OnPointerDown = func(PointerContext) { downs++ }

	d.InjectClick(50, 50)
	tick(d)
	if downs != 1 {
		t.Fatalf("downs after one frame = %d, want 1", downs)
	}
	if len(d.injectQueue) != 1 {
		t.Fatalf("queue length = %d, want 1 (release still queued)", len(d.injectQueue))
	}
	tick(d)
	if len(d.injectQueue) != 0 {
		t.Error("queue should drain one event per frame")
	}
}

func TestInjectDrag_FullSequence(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	var events []string
	box.OnPointerDown = func(PointerContext) { events = append(events, "down") }
	box.OnPointerUp = func(PointerContext) { events = append(events, "up") }
	d.OnPointerMove(func(PointerContext) { events = append(events, "move") })

	d.InjectDrag(10, 10, 60, 60, 5)
	for i := 0; i < 5; i++ {
		tick(d)
	}

	want := []string{"down", "move", "move", "move", "up"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestInjectHover_NoButton(t *testing.T) {
	d, _ := newTestDesktop()
	box := addBox(d, "box", 0, 0, 100, 100)

	entered := false
	pressed := false
	box.OnPointerEnter = func(PointerContext) { entered = true }
	box.OnPointerDown = func(PointerContext) { pressed = true }

	d.InjectHover(50, 50)
	tick(d)

	if !entered {
		t.Error("hover should fire enter")
	}
	if pressed {
		t.Error("hover must not press")
	}
}
