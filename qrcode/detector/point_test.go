package detector

import "testing"

func TestBresenhamScanEndpoints(t *testing.T) {
	cases := []struct{ from, to Point }{
		{Point{0, 0}, Point{5, 0}},
		{Point{0, 0}, Point{0, 5}},
		{Point{0, 0}, Point{5, 5}},
		{Point{3, 3}, Point{-4, 2}},
		{Point{3, 3}, Point{3, 3}},
	}
	for _, c := range cases {
		pts := bresenhamScan(c.from, c.to)
		if len(pts) == 0 {
			t.Fatalf("empty scan for %v -> %v", c.from, c.to)
		}
		if pts[0] != c.from {
			t.Errorf("scan %v->%v: first point %v, want %v", c.from, c.to, pts[0], c.from)
		}
		if pts[len(pts)-1] != c.to {
			t.Errorf("scan %v->%v: last point %v, want %v", c.from, c.to, pts[len(pts)-1], c.to)
		}
		want := 1 + max(intAbs(c.to.X-c.from.X), intAbs(c.to.Y-c.from.Y))
		if len(pts) != want {
			t.Errorf("scan %v->%v: length %d, want %d", c.from, c.to, len(pts), want)
		}
	}
}

func TestLineIntersectParallel(t *testing.T) {
	_, ok := lineIntersect(Point{0, 0}, Point{10, 0}, Point{0, 1}, Point{10, 1})
	if ok {
		t.Fatal("expected parallel lines to report no intersection")
	}
}

func TestLineIntersectCrossing(t *testing.T) {
	p, ok := lineIntersect(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0})
	if !ok {
		t.Fatal("expected crossing lines to intersect")
	}
	if p.X != 5 || p.Y != 5 {
		t.Errorf("intersection = %v, want (5,5)", p)
	}
}
