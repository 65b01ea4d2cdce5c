package gadget

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Envelope reveal timings.
const (
	// EnvelopeShowDelay is the continuous-hover dwell before the envelope
	// reveals itself without a click.
	EnvelopeShowDelay = 3000 * time.Millisecond

	// EnvelopeHideDelay is the grace period after the pointer leaves before
	// the envelope hides again.
	EnvelopeHideDelay = 1000 * time.Millisecond

	// envelopeFadeSeconds is the reveal/hide fade duration.
	envelopeFadeSeconds = 0.2
)

// showEnvelope reveals the flap immediately: on click, or when the hover
// dwell timer fires. Cancels any pending dwell timer so a click mid-dwell
// does not re-trigger the reveal.
func (w *Widget) showEnvelope() {
	if w.destroyed || w.envelope == nil {
		return
	}
	w.envShow.Cancel()
	w.envShown = true
	w.envelope.Visible = true
	w.envTween = gween.New(float32(w.envelope.Alpha), 1, envelopeFadeSeconds, ease.OutQuad)
}

// hideEnvelope retracts the flap. With force true (drag completion) both
// pending timers are cancelled and the flap disappears immediately,
// bypassing the fade; otherwise the flap fades out.
func (w *Widget) hideEnvelope(force bool) {
	if w.envelope == nil {
		return
	}
	if force {
		w.envShow.Cancel()
		w.envHide.Cancel()
		w.envShown = false
		w.envTween = nil
		w.envelope.Alpha = 0
		w.envelope.Visible = false
		return
	}
	w.envShown = false
	w.envTween = gween.New(float32(w.envelope.Alpha), 0, envelopeFadeSeconds, ease.OutQuad)
}

// EnvelopeShown reports whether the reveal flap is currently shown (or
// fading in).
func (w *Widget) EnvelopeShown() bool { return w.envShown }

// hoverStarted handles pointer entry: a pending hide is cancelled, and if the
// flap is hidden a dwell timer is armed to reveal it.
func (w *Widget) hoverStarted() {
	if w.destroyed || w.envelope == nil {
		return
	}
	w.envHide.Cancel()
	if w.envShown || w.envShow.Active() {
		return
	}
	w.envShow = w.desktop.After(EnvelopeShowDelay, w.showEnvelope)
}

// hoverEnded handles pointer exit: the dwell timer is cancelled, and a shown
// flap is scheduled to hide unless a drag session is manipulating the widget
// (the session force-hides at exit instead).
func (w *Widget) hoverEnded() {
	if w.destroyed || w.envelope == nil {
		return
	}
	w.envShow.Cancel()
	if !w.envShown || w.manipulating {
		return
	}
	w.envHide.Cancel()
	w.envHide = w.desktop.After(EnvelopeHideDelay, func() {
		if !w.manipulating {
			w.hideEnvelope(false)
		}
	})
}

// stepEnvelope advances the reveal fade by dt seconds. Called once per frame
// from Desktop.Update.
func (w *Widget) stepEnvelope(dt float32) {
	if w.envTween == nil || w.envelope == nil {
		return
	}
	v, done := w.envTween.Update(dt)
	w.envelope.Alpha = float64(v)
	if done {
		w.envTween = nil
		if !w.envShown {
			w.envelope.Visible = false
		}
	}
}
