package cube

import "testing"

func TestBoundsZeroValueIsEmpty(t *testing.T) {
	var b Bounds
	if !b.Empty() {
		t.Fatalf("expected zero bounds to be empty")
	}
	if b.Contains(Pos{}) {
		t.Fatalf("expected empty bounds to contain nothing")
	}
	if b.Volume() != 0 {
		t.Fatalf("expected empty bounds volume 0, got %d", b.Volume())
	}
	if got := b.Offset(Pos{1, 2, 3}); !got.Empty() {
		t.Fatalf("expected offset empty bounds to stay empty, got %v", got)
	}
}

func TestBoundsEncompass(t *testing.T) {
	a := NewBounds(Pos{0, 0, 0}, Pos{2, 2, 2})
	b := NewBounds(Pos{-3, 1, 5}, Pos{-1, 4, 6})

	u := a.Encompass(b)
	if u.Min() != (Pos{-3, 0, 0}) || u.Max() != (Pos{2, 4, 6}) {
		t.Fatalf("unexpected union %v", u)
	}
	if !u.ContainsBounds(a) || !u.ContainsBounds(b) {
		t.Fatalf("expected union %v to contain both inputs", u)
	}
	if got := a.Encompass(Bounds{}); got != a {
		t.Fatalf("expected empty to be identity, got %v", got)
	}
	if got := (Bounds{}).Encompass(a); got != a {
		t.Fatalf("expected empty to be identity, got %v", got)
	}
}

func TestBoundsNormalisesCorners(t *testing.T) {
	b := NewBounds(Pos{3, -1, 7}, Pos{1, 4, 2})
	if b.Min() != (Pos{1, -1, 2}) || b.Max() != (Pos{3, 4, 7}) {
		t.Fatalf("unexpected corners %v", b)
	}
	if b.Size() != (Pos{3, 6, 6}) {
		t.Fatalf("unexpected size %v", b.Size())
	}
}

func TestBoundsOffsetAndIntersect(t *testing.T) {
	b := NewBounds(Pos{0, 0, 0}, Pos{1, 1, 1}).Offset(Pos{0, 1, 0})
	if b.Min() != (Pos{0, 1, 0}) || b.Max() != (Pos{1, 2, 1}) {
		t.Fatalf("unexpected offset bounds %v", b)
	}
	other := NewBounds(Pos{1, 2, 1}, Pos{5, 5, 5})
	if !b.Intersects(other) {
		t.Fatalf("expected %v to intersect %v", b, other)
	}
	if got := b.Intersection(other); got != BoundsAt(Pos{1, 2, 1}) {
		t.Fatalf("unexpected intersection %v", got)
	}
	if b.Intersects(other.Offset(Pos{1, 0, 0})) {
		t.Fatalf("expected no intersection after shifting")
	}
	if b.Intersects(Bounds{}) {
		t.Fatalf("expected empty bounds never to intersect")
	}
}

func TestRangeHalfOpen(t *testing.T) {
	r := Range[float64]{Min: 10, Max: 20}
	if !r.Contains(10) || r.Contains(20) || r.Contains(9.99) {
		t.Fatalf("unexpected containment for %v", r)
	}
	if got := r.Clamp(25); got != 20 {
		t.Fatalf("expected clamp to 20, got %v", got)
	}
	if (Range[int]{Min: 3, Max: 1}).Valid() {
		t.Fatalf("expected inverted range to be invalid")
	}
}

func TestFloorDiv(t *testing.T) {
	for _, c := range [][3]int{{7, 4, 1}, {8, 4, 2}, {-1, 4, -1}, {-4, 4, -1}, {-5, 4, -2}, {0, 4, 0}, {5, -4, -2}} {
		if got := FloorDiv(c[0], c[1]); got != c[2] {
			t.Fatalf("expected %d / %d = %d, got %d", c[0], c[1], c[2], got)
		}
	}
}
