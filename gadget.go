package gadget

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default panel fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts to a premultiplied 8-bit color for use with ebiten fills.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*clamp01(c.A)*255 + 0.5),
		G: uint8(clamp01(c.G)*clamp01(c.A)*255 + 0.5),
		B: uint8(clamp01(c.B)*clamp01(c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color panel fills.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.RGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EventType identifies a kind of pointer interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves
	EventClick                         // fires on press then release over the same panel
	EventPointerEnter                  // fires when the pointer enters a panel's bounds
	EventPointerLeave                  // fires when the pointer leaves a panel's bounds
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// DragAction distinguishes what a pointer-drag session manipulates.
type DragAction uint8

const (
	DragMove   DragAction = iota // drag repositions the widget
	DragResize                   // drag changes the widget's dimensions
)

// Float returns a pointer to v. Convenience for optional Options and
// Position fields.
func Float(v float64) *float64 {
	return &v
}
