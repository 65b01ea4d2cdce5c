package gadget

// Position holds a widget's anchored placement. Each axis is anchored to one
// viewport edge: Left or Right horizontally, Top or Bottom vertically. The
// inactive field of a pair is nil. Both fields of a pair may be populated
// transiently while a drag session rewrites anchors, but at most one per axis
// is authoritative for rendering; Left and Top win when both are set.
type Position struct {
	Left   *float64
	Top    *float64
	Right  *float64
	Bottom *float64
}

// Clone returns a deep copy of the position.
func (p Position) Clone() Position {
	var c Position
	if p.Left != nil {
		c.Left = Float(*p.Left)
	}
	if p.Top != nil {
		c.Top = Float(*p.Top)
	}
	if p.Right != nil {
		c.Right = Float(*p.Right)
	}
	if p.Bottom != nil {
		c.Bottom = Float(*p.Bottom)
	}
	return c
}

// Normalized resolves the position into absolute left/top coordinates for the
// given viewport and dimension, without mutating the stored anchors. Axes with
// no anchor at all resolve to 0.
func (p Position) Normalized(viewportW, viewportH float64, dim Dimension) (left, top float64) {
	switch {
	case p.Left != nil:
		left = *p.Left
	case p.Right != nil:
		left = viewportW - dim.Width - *p.Right
	}
	switch {
	case p.Top != nil:
		top = *p.Top
	case p.Bottom != nil:
		top = viewportH - dim.Height - *p.Bottom
	}
	return left, top
}

// stuck re-anchors each axis independently: when the widget's center passes
// the viewport midpoint on an axis, the position is expressed as a distance
// from the far edge so it survives viewport resizes; otherwise it stays
// anchored to the near edge. The result always has exactly one anchor per axis.
func (p Position) stuck(viewportW, viewportH float64, dim Dimension) Position {
	left, top := p.Normalized(viewportW, viewportH, dim)

	var out Position
	if left+dim.Width/2 >= viewportW/2 {
		out.Right = Float(viewportW - dim.Width - left)
	} else {
		out.Left = Float(left)
	}
	if top+dim.Height/2 >= viewportH/2 {
		out.Bottom = Float(viewportH - dim.Height - top)
	} else {
		out.Top = Float(top)
	}
	return out
}

// normalizedForm returns the position rewritten to absolute left/top anchors
// with right/bottom cleared. Used at resize entry so growth direction is
// unambiguous regardless of which corner the widget is anchored to.
func (p Position) normalizedForm(viewportW, viewportH float64, dim Dimension) Position {
	left, top := p.Normalized(viewportW, viewportH, dim)
	return Position{Left: Float(left), Top: Float(top)}
}

// Dimension holds a widget's size.
type Dimension struct {
	Width  float64
	Height float64
}

// clamped constrains the dimension to the option bounds per axis. The min
// bound is applied before the max bound, so inverted bounds (min > max)
// degrade to the numerically lower max value rather than failing.
func (d Dimension) clamped(o Options) Dimension {
	return Dimension{
		Width:  clampAxis(d.Width, o.MinWidth, o.MaxWidth),
		Height: clampAxis(d.Height, o.MinHeight, o.MaxHeight),
	}
}

func clampAxis(v, min, max float64) float64 {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}
