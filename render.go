package gadget

import "time"

// minFrequency is the floor for the canvas render rate. A configured
// frequency below one pass per second (including zero or negative values)
// runs at one pass per second rather than stalling.
const minFrequency = 1.0

// renderInterval converts a configured frequency to the schedule interval.
func renderInterval(frequency float64) time.Duration {
	if frequency < minFrequency {
		frequency = minFrequency
	}
	return time.Duration(float64(time.Second) / frequency)
}

// stepRender runs the widget's throttled render schedule. On each frame where
// the elapsed time since the baseline reaches the interval, the Render hook
// fires once and the baseline advances by whole intervals. The remainder is
// carried so the cadence neither drifts nor bursts after a stall.
func (w *Widget) stepRender(now time.Time) {
	if !w.rendering {
		return
	}
	canvas := w.Canvas()
	if canvas == nil {
		return
	}

	interval := renderInterval(w.opts.Frequency)
	elapsed := now.Sub(w.renderBaseline)
	if elapsed < interval {
		return
	}
	w.renderBaseline = w.renderBaseline.Add(elapsed - elapsed%interval)
	w.behavior.Render(w, canvas)
}
