package ocr

// Rect is an axis-aligned bounding rectangle in pixel coordinates, origin in
// the upper-left corner. Constructors canonicalize so X0 <= X1 and Y0 <= Y1
// always hold.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// NewRect builds a canonical rectangle from two corner points in any order.
func NewRect(x0, y0, x1, y1 int) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (r Rect) Dx() int { return r.X1 - r.X0 }

func (r Rect) Dy() int { return r.Y1 - r.Y0 }

func (r Rect) Empty() bool { return r.Dx() <= 0 && r.Dy() <= 0 }

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	u := r
	if o.X0 < u.X0 {
		u.X0 = o.X0
	}
	if o.Y0 < u.Y0 {
		u.Y0 = o.Y0
	}
	if o.X1 > u.X1 {
		u.X1 = o.X1
	}
	if o.Y1 > u.Y1 {
		u.Y1 = o.Y1
	}
	return u
}

// ContainsPoint reports whether (x, y) lies inside r, borders included.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// Point is a single pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Quad is a bounding quadrilateral of exactly four vertices, ordered
// top-left, top-right, bottom-right, bottom-left for upright text. The cloud
// engine emits these because text may be detected at an angle.
type Quad [4]Point

// QuadFromRect converts an axis-aligned rectangle to its corner quad.
func QuadFromRect(r Rect) Quad {
	return Quad{
		{r.X0, r.Y0},
		{r.X1, r.Y0},
		{r.X1, r.Y1},
		{r.X0, r.Y1},
	}
}

// Bounds returns the axis-aligned rectangle enclosing the quad.
func (q Quad) Bounds() Rect {
	minX, minY := q[0].X, q[0].Y
	maxX, maxY := minX, minY
	for _, p := range q[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return NewRect(minX, minY, maxX, maxY)
}
