package ocr

import "testing"

func TestNewRectCanonicalizes(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		expected       Rect
	}{
		{"Already canonical", 1, 2, 3, 4, Rect{1, 2, 3, 4}},
		{"Swapped x", 3, 2, 1, 4, Rect{1, 2, 3, 4}},
		{"Swapped y", 1, 4, 3, 2, Rect{1, 2, 3, 4}},
		{"Both swapped", 3, 4, 1, 2, Rect{1, 2, 3, 4}},
		{"Degenerate", 5, 5, 5, 5, Rect{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.x0, tt.y0, tt.x1, tt.y1)
			if r != tt.expected {
				t.Errorf("NewRect() = %+v, want %+v", r, tt.expected)
			}
			if r.X0 > r.X1 || r.Y0 > r.Y1 {
				t.Errorf("rectangle not canonical: %+v", r)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 8)

	u := a.Union(b)
	if u != (Rect{0, 0, 20, 10}) {
		t.Errorf("Union = %+v, want {0 0 20 10}", u)
	}

	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union(a) = %+v, want %+v", got, a)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("a.Union(empty) = %+v, want %+v", got, a)
	}
}

func TestQuadBounds(t *testing.T) {
	// Rotated quadrilateral; the enclosing rect covers all four vertices.
	q := Quad{{10, 0}, {20, 5}, {12, 15}, {2, 10}}
	want := Rect{2, 0, 20, 15}
	if got := q.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestQuadFromRectRoundTrip(t *testing.T) {
	r := NewRect(3, 4, 30, 40)
	q := QuadFromRect(r)

	// A quad always has exactly four vertices by construction.
	if len(q) != 4 {
		t.Fatalf("quad has %d vertices, want 4", len(q))
	}
	if got := q.Bounds(); got != r {
		t.Errorf("QuadFromRect(r).Bounds() = %+v, want %+v", got, r)
	}
}
