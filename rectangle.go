package imgcc

// Rectangle selects a sub-region of pixels in top-left-origin, inclusive-min
// exclusive-max integer coordinates: it contains every pixel (px, py) with
// X <= px < MaxX and Y <= py < MaxY.
type Rectangle struct {
	X, Y       uint32
	MaxX, MaxY uint32
}

// RectangleWithWidthHeight returns the rectangle [0,0)-(w,h) at the origin.
func RectangleWithWidthHeight(w, h uint32) Rectangle {
	return Rectangle{X: 0, Y: 0, MaxX: w, MaxY: h}
}

// RectangleFromLayout returns the rectangle spanning a ByteLayout's full
// extent, i.e. Rectangle::with_width_height(layout.Width, layout.Height).
func RectangleFromLayout(layout ByteLayout) Rectangle {
	return RectangleWithWidthHeight(layout.Width, layout.Height)
}

// Width returns the rectangle's width, 0 if empty.
func (r Rectangle) Width() uint32 {
	if r.MaxX < r.X {
		return 0
	}
	return r.MaxX - r.X
}

// Height returns the rectangle's height, 0 if empty.
func (r Rectangle) Height() uint32 {
	if r.MaxY < r.Y {
		return 0
	}
	return r.MaxY - r.Y
}

// IsEmpty reports whether the rectangle contains no pixels (max < min on
// either axis).
func (r Rectangle) IsEmpty() bool {
	return r.MaxX < r.X || r.MaxY < r.Y
}

// Normalize sets MaxX = X + Width() and MaxY = Y + Height(), collapsing an
// inverted rectangle to an empty one anchored at its own origin rather than
// leaving max < min.
func (r Rectangle) Normalize() Rectangle {
	return Rectangle{
		X: r.X, Y: r.Y,
		MaxX: r.X + r.Width(),
		MaxY: r.Y + r.Height(),
	}
}

// Contains reports whether other is fully inside r. An empty other is
// always contained.
func (r Rectangle) Contains(other Rectangle) bool {
	if other.IsEmpty() {
		return true
	}
	return other.X >= r.X && other.Y >= r.Y && other.MaxX <= r.MaxX && other.MaxY <= r.MaxY
}

// Meet returns the intersection of r and other. Meet is commutative,
// associative, and idempotent; contains(x, meet(x, y)) holds for all x, y.
func (r Rectangle) Meet(other Rectangle) Rectangle {
	x, y := max(r.X, other.X), max(r.Y, other.Y)
	maxX, maxY := min(r.MaxX, other.MaxX), min(r.MaxY, other.MaxY)
	if maxX < x || maxY < y {
		return Rectangle{X: x, Y: y, MaxX: x, MaxY: y}
	}
	return Rectangle{X: x, Y: y, MaxX: maxX, MaxY: maxY}
}

// Join returns the smallest rectangle containing both r and other.
func (r Rectangle) Join(other Rectangle) Rectangle {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rectangle{
		X:    min(r.X, other.X),
		Y:    min(r.Y, other.Y),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// Inset removes border from all sides. When the rectangle is smaller than
// border in some dimension the result is empty but remains contained in the
// original rectangle.
func (r Rectangle) Inset(border uint32) Rectangle {
	return Rectangle{
		X:    satAdd(r.X, border),
		Y:    satAdd(r.Y, border),
		MaxX: satSub(r.MaxX, border),
		MaxY: satSub(r.MaxY, border),
	}
}

// WithLayout reports whether r exactly matches the full extent of layout,
// i.e. r == RectangleFromLayout(layout) after normalization, which requires
// r to start at the origin. Inscribe does not use it: its `above.size ==
// rect` check compares only the width and height.
func (r Rectangle) WithLayout(layout ByteLayout) bool {
	return r.Normalize() == RectangleFromLayout(layout)
}

// Affine returns the axis-aligned bounding box of r's four corners after
// applying m, used to compute the QuadTarget of an Affine placement.
func (r Rectangle) Affine(m RowMatrix) (minX, minY, maxX, maxY float64) {
	corners := [4][2]float64{
		{float64(r.X), float64(r.Y)},
		{float64(r.MaxX), float64(r.Y)},
		{float64(r.X), float64(r.MaxY)},
		{float64(r.MaxX), float64(r.MaxY)},
	}
	for i, c := range corners {
		x, y := m.ApplyPoint(c[0], c[1])
		if i == 0 {
			minX, minY, maxX, maxY = x, y, x, y
			continue
		}
		minX, minY = minFloat(minX, x), minFloat(minY, y)
		maxX, maxY = maxFloat(maxX, x), maxFloat(maxY, y)
	}
	return
}

func satAdd(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

func satSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
