package gadget

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// activeBorder is the highlight border thickness drawn around a panel while a
// drag session holds it.
const activeBorder = 2.0

// Draw paints the panel tree onto screen in painter order (DFS,
// ZIndex-sorted). Desktop trees are a handful of rectangles, so panels are
// submitted directly without command sorting or batching.
func (d *Desktop) Draw(screen *ebiten.Image) {
	if d.ClearColor.A > 0 {
		screen.Fill(d.ClearColor.RGBA())
	}
	d.drawPanel(screen, d.root)
}

func (d *Desktop) drawPanel(screen *ebiten.Image, p *Panel) {
	if !p.Visible {
		return
	}

	bounds := p.Bounds()
	wx, wy := bounds.X, bounds.Y
	alpha := p.worldAlpha()
	onScreen := bounds.Intersects(Rect{Width: d.viewportW, Height: d.viewportH})

	if onScreen && p.Color.A > 0 && p.Width > 0 && p.Height > 0 {
		fillRect(screen, wx, wy, p.Width, p.Height, p.Color, alpha)
	}
	if onScreen && p.canvas != nil && p.Width > 0 && p.Height > 0 {
		drawStretched(screen, p.canvas, wx, wy, p.Width, p.Height, alpha)
	}
	if onScreen && p.Active {
		drawBorder(screen, wx, wy, p.Width, p.Height, ColorWhite, alpha)
	}

	children := p.children
	if !p.childrenSorted {
		rebuildSortedChildren(p)
	}
	if p.sortedChildren != nil {
		children = p.sortedChildren
	}
	for _, child := range children {
		d.drawPanel(screen, child)
	}
}

// fillRect draws a solid rectangle by stretching the shared 1x1 white pixel,
// tinted with the premultiplied color.
func fillRect(screen *ebiten.Image, x, y, w, h float64, c Color, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	a := clamp01(c.A * alpha)
	op.ColorScale.Scale(
		float32(clamp01(c.R)*a),
		float32(clamp01(c.G)*a),
		float32(clamp01(c.B)*a),
		float32(a),
	)
	screen.DrawImage(WhitePixel, op)
}

// drawStretched draws img scaled to cover the w x h rectangle at (x, y).
func drawStretched(screen *ebiten.Image, img *ebiten.Image, x, y, w, h float64, alpha float64) {
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(x, y)
	a := clamp01(alpha)
	op.ColorScale.Scale(float32(a), float32(a), float32(a), float32(a))
	screen.DrawImage(img, op)
}

// drawBorder outlines the rectangle with four thin fills.
func drawBorder(screen *ebiten.Image, x, y, w, h float64, c Color, alpha float64) {
	t := activeBorder
	// Top, bottom, left, right.
	fillRect(screen, x-t, y-t, w+2*t, t, c, alpha)
	fillRect(screen, x-t, y+h, w+2*t, t, c, alpha)
	fillRect(screen, x-t, y, t, h, c, alpha)
	fillRect(screen, x+w, y, t, h, c, alpha)
}
