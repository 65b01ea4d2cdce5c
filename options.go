package gadget

import "fmt"

// Default option values applied by applyDefaults.
const (
	DefaultWidth     = 100
	DefaultHeight    = 100
	DefaultMinWidth  = 64
	DefaultMinHeight = 64
	DefaultMaxWidth  = 500
	DefaultMaxHeight = 500
	DefaultFrequency = 2 // canvas render passes per second
)

// Options configures a widget at construction time. Zero-valued numeric
// fields take the package defaults; the anchor fields are optional and stay
// unset when nil. Options are immutable once the widget is constructed.
type Options struct {
	// Aspect locks resizing so both axes derive from one drag delta.
	Aspect bool

	// Target dimension and per-axis bounds.
	Width     float64
	Height    float64
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64

	// Initial anchors. At most one of Left/Right and one of Top/Bottom should
	// be set; persisted values restored at construction take precedence.
	Left   *float64
	Right  *float64
	Top    *float64
	Bottom *float64

	// Canvas enables the drawing surface and the throttled render schedule.
	Canvas bool

	// Resizable shows the resize grip and enables resize drags. Forced on
	// when a view box is configured.
	Resizable bool

	// ViewBox declares the canvas coordinate system ("x y w h"). ViewBoxAuto
	// expands to "0 0 <width> <height>" at construction. Either implies
	// Resizable.
	ViewBox     string
	ViewBoxAuto bool

	// Frequency is the canvas render rate in passes per second. Values below
	// one pass per second are raised to one when the schedule runs.
	Frequency float64
}

// applyDefaults fills zero-valued fields with the package defaults and
// resolves the view box. Returns the completed options; the input is not
// modified.
func applyDefaults(o Options) Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinWidth == 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight == 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	if o.Frequency == 0 {
		o.Frequency = DefaultFrequency
	}
	if o.ViewBoxAuto && o.ViewBox == "" {
		o.ViewBox = fmt.Sprintf("0 0 %g %g", o.Width, o.Height)
	}
	if o.ViewBox != "" {
		o.Resizable = true
	}
	return o
}
