package detector

import (
	"github.com/ericlevine/zxinggo/transform"
)

// CapStone is a single detected finder pattern: its four corners (in the
// implicit order produced by the two-pass corner extraction), its center,
// and the perspective mapping the 7x7 finder square to image space.
type CapStone struct {
	Corners     [4]Point
	Center      Point
	Perspective *transform.PerspectiveTransform
}

// detectCapstones scans every row of img for the 1:1:3:1:1 finder-pattern
// signature, verifies connectivity via flood fill, and extracts the four
// corners of each confirmed capstone. Capstones are returned in raster
// order (row-major, matching the scan order).
func detectCapstones(img *PreparedImage) []*CapStone {
	var stones []*CapStone
	for y := 0; y < img.height; y++ {
		var b [5]int
		changes := 0
		curDark := img.isDark(0, y)
		runLen := 0
		for x := 0; x <= img.width; x++ {
			var dark bool
			if x < img.width {
				dark = img.isDark(x, y)
			} else {
				dark = !curDark // force a trailing transition at the row edge
			}
			if dark == curDark {
				runLen++
				continue
			}

			b[0], b[1], b[2], b[3] = b[1], b[2], b[3], b[4]
			b[4] = runLen
			changes++
			curDark = dark
			runLen = 1

			if changes >= 5 && !curDark {
				if cs := tryCapstone(img, b, x, y); cs != nil {
					stones = append(stones, cs)
				}
			}
		}
	}
	return stones
}

// tryCapstone tests the just-completed run-length quintuple b for the
// 1:1:3:1:1 ratio and, on a match, attempts connectivity verification and
// corner extraction at row y, where x is the column the trailing white run
// started at.
func tryCapstone(img *PreparedImage, b [5]int, x, y int) *CapStone {
	avg := float64(b[0]+b[1]+b[3]+b[4]) / 4.0
	if avg <= 0 {
		return nil
	}
	errMargin := avg * 3.0 / 4.0
	check := [5]float64{1, 1, 3, 1, 1}
	for i := 0; i < 5; i++ {
		v := float64(b[i])
		want := check[i] * avg
		if v < want-errMargin || v > want+errMargin {
			return nil
		}
	}

	total := b[0] + b[1] + b[2] + b[3] + b[4]
	left := x - total
	stone := x - (b[2] + b[3] + b[4])
	right := x - b[4]

	if left < 0 || right >= img.width {
		return nil
	}
	if !img.isDark(left, y) || !img.isDark(right, y) {
		return nil
	}

	ringRegion, err := img.getRegion(Point{X: right, Y: y})
	if err != nil {
		return nil
	}
	stoneRegion, err := img.getRegion(Point{X: stone, Y: y})
	if err != nil {
		return nil
	}
	if ringRegion.Origin == stoneRegion.Origin {
		return nil
	}
	if ringRegion.PixelCount == 0 {
		return nil
	}
	ratio := stoneRegion.PixelCount * 100 / ringRegion.PixelCount
	if ratio <= 10 || ratio >= 70 {
		return nil
	}

	return extractCorners(img, Point{X: right, Y: y}, ringRegion)
}

// cornerCandidate tracks the farthest point seen so far under some scoring
// function, retained across many flood-fill spans.
type cornerCandidate struct {
	best     Point
	bestSeen bool
	score    int
	less     func(a, b int) bool
}

func newMaxCandidate() *cornerCandidate {
	return &cornerCandidate{less: func(a, b int) bool { return a < b }}
}

func (c *cornerCandidate) consider(p Point, score int) {
	if !c.bestSeen || c.less(c.score, score) {
		c.best = p
		c.score = score
		c.bestSeen = true
	}
}

// firstCornerFinder is pass A: it tracks the row-span endpoint farthest
// (by squared Euclidean distance) from the flood-fill's starting point.
type firstCornerFinder struct {
	start Point
	best  *cornerCandidate
}

func (f *firstCornerFinder) Update(row Row) {
	left := Point{X: row.Left, Y: row.Y}
	right := Point{X: row.Right, Y: row.Y}
	f.best.consider(left, squaredDistancePt(f.start, left))
	f.best.consider(right, squaredDistancePt(f.start, right))
}

// allCornerFinder is pass B: given a baseline direction d, it tracks the
// row-span endpoint maximizing each of four projected scores (along +d,
// +d-perp, -d, -d-perp).
type allCornerFinder struct {
	start                      Point
	d                          Point
	plusD, plusPerp            *cornerCandidate
	minusD, minusPerp          *cornerCandidate
}

func (f *allCornerFinder) considerPoint(p Point) {
	rel := p.sub(f.start)
	proj := rel.X*f.d.X + rel.Y*f.d.Y
	perp := -rel.X*f.d.Y + rel.Y*f.d.X
	f.plusD.consider(p, proj)
	f.minusD.consider(p, -proj)
	f.plusPerp.consider(p, perp)
	f.minusPerp.consider(p, -perp)
}

func (f *allCornerFinder) Update(row Row) {
	f.considerPoint(Point{X: row.Left, Y: row.Y})
	f.considerPoint(Point{X: row.Right, Y: row.Y})
}

// extractCorners runs the two-pass flood fill over the ring region starting
// at "start", yielding the four capstone corners and its perspective
// transform (mapping the 7x7 finder square to image space).
func extractCorners(img *PreparedImage, start Point, ring *ColoredRegion) *CapStone {
	passA := &firstCornerFinder{start: start, best: newMaxCandidate()}
	img.floodFill(start.X, start.Y, colorDiscarded(regionTag(img, start)), colorTmp, passA)
	if !passA.best.bestSeen {
		return nil
	}
	k := passA.best.best
	d := k.sub(start)
	if d.X == 0 && d.Y == 0 {
		return nil
	}

	passB := &allCornerFinder{
		start:     start,
		d:         d,
		plusD:     newMaxCandidate(),
		minusD:    newMaxCandidate(),
		plusPerp:  newMaxCandidate(),
		minusPerp: newMaxCandidate(),
	}
	img.floodFill(start.X, start.Y, colorTmp, colorCapStone, passB)
	if !passB.plusD.bestSeen || !passB.plusPerp.bestSeen || !passB.minusD.bestSeen || !passB.minusPerp.bestSeen {
		return nil
	}

	corners := [4]Point{passB.plusD.best, passB.plusPerp.best, passB.minusD.best, passB.minusPerp.best}
	perspective := transform.QuadrilateralToQuadrilateral(
		0, 0, 7, 0, 7, 7, 0, 7,
		float64(corners[0].X), float64(corners[0].Y),
		float64(corners[1].X), float64(corners[1].Y),
		float64(corners[2].X), float64(corners[2].Y),
		float64(corners[3].X), float64(corners[3].Y),
	)

	center := [2]float64{3.5, 3.5}
	perspective.TransformPoints(center[:])

	return &CapStone{
		Corners:     corners,
		Center:      Point{X: int(center[0]), Y: int(center[1])},
		Perspective: perspective,
	}
}

func regionTag(img *PreparedImage, p Point) int {
	return img.at(p.X, p.Y).Tag
}
