package transform

import (
	"math"
	"testing"
)

func TestCoefficientsRoundTrip(t *testing.T) {
	pt := QuadrilateralToQuadrilateral(
		0, 0, 10, 0, 10, 10, 0, 10,
		5, 5, 25, 7, 23, 27, 3, 22,
	)
	rebuilt := NewPerspectiveTransform(pt.Coefficients())

	pts := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	a := append([]float64(nil), pts...)
	b := append([]float64(nil), pts...)
	pt.TransformPoints(a)
	rebuilt.TransformPoints(b)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			t.Fatalf("coefficient round trip mismatch at %d: %v vs %v", i, a, b)
		}
	}
}

func TestInverseUndoesForwardMap(t *testing.T) {
	fwd := SquareToQuadrilateral(2, 2, 12, 3, 11, 13, 1, 12)
	inv := fwd.Inverse()

	pts := []float64{0.25, 0.75}
	fwd.TransformPoints(pts)
	inv.TransformPoints(pts)

	if math.Abs(pts[0]-0.25) > 1e-6 || math.Abs(pts[1]-0.75) > 1e-6 {
		t.Fatalf("inverse did not undo forward map: got (%v,%v)", pts[0], pts[1])
	}
}
