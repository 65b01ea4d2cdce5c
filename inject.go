package gadget

// syntheticPointerEvent represents a single injected pointer event in desktop
// coordinates. Injected events flow through the same state machine as real
// mouse input, one event per frame.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a pointer press event at the given desktop coordinates
// (left button). The event is consumed on the next frame's input pass.
func (d *Desktop) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given desktop coordinates with
// the button held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (d *Desktop) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move event with no button held. Use this to
// exercise enter/leave driven behavior such as the envelope reveal.
func (d *Desktop) InjectHover(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		x: x, y: y,
	})
}

// InjectRelease queues a pointer release event at the given desktop coordinates.
func (d *Desktop) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same desktop coordinates. Consumes two frames.
func (d *Desktop) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames is 2
// (press + release).
func (d *Desktop) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		d.InjectMove(x, y)
	}
	d.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input should be skipped this frame).
func (d *Desktop) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	d.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
