package detector

import (
	"math"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/transform"
)

// Grid is a reconstructed, perspective-fitted QR symbol location: three
// capstones, an optional alignment point, the inferred grid size, and the
// perspective transform mapping module coordinates to image coordinates.
type Grid struct {
	Caps      [3]*CapStone
	Align     Point
	HasAlign  bool
	GridSize  int
	Transform *transform.PerspectiveTransform
	image     *PreparedImage
}

// reconstructGrid orients a capstone triple, infers the grid size from the
// distances between the capstone centers (the timing pattern is not
// scanned), locates the alignment pattern for V>=2, and fits (then
// jiggles) a perspective transform over the whole symbol.
func reconstructGrid(group [3]*CapStone, img *PreparedImage) (*Grid, error) {
	h, anchor, v := group[0], group[1], group[2]

	h0 := anchor.Center
	hd := v.Center.sub(h0)
	if cross(h.Center.sub(h0), hd) > 0 {
		h, v = v, h
		hd = v.Center.sub(h0)
	}

	// topLeft = anchor (shared corner), topRight = h, bottomLeft = v —
	// the same convention the module's legacy finder-pattern detector used.
	topLeft, topRight, bottomLeft := anchor, h, v

	moduleSize := (distancePtF(topLeft.Center, topRight.Center) + distancePtF(topLeft.Center, bottomLeft.Center)) / 2.0 / 7.0
	if moduleSize < 1.0 {
		return nil, zxinggo.ErrNotFound
	}

	tltr := distancePtF(topLeft.Center, topRight.Center) / moduleSize
	tlbl := distancePtF(topLeft.Center, bottomLeft.Center) / moduleSize
	dimension := int(math.Round((tltr+tlbl)/2)) + 7
	switch dimension & 0x03 {
	case 0:
		dimension++
	case 2:
		dimension--
	case 3:
		dimension -= 2
	}
	version := (dimension - 17) / 4
	if version < 1 || version > 40 {
		return nil, zxinggo.ErrInvalidVersion
	}

	var align Point
	hasAlign := false
	if version >= 2 {
		if p, ok := findAlignmentPattern(img, topLeft, topRight, bottomLeft, moduleSize, dimension); ok {
			align = p
			hasAlign = true
		}
	}

	xform := buildGridTransform(topLeft, topRight, bottomLeft, align, hasAlign, dimension)
	xform = jiggle(img, xform, dimension, hasAlign, align)

	return &Grid{
		Caps:      [3]*CapStone{topLeft, topRight, bottomLeft},
		Align:     align,
		HasAlign:  hasAlign,
		GridSize:  dimension,
		Transform: xform,
		image:     img,
	}, nil
}

func distancePtF(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func buildGridTransform(topLeft, topRight, bottomLeft *CapStone, align Point, hasAlign bool, dimension int) *transform.PerspectiveTransform {
	dimMinusThree := float64(dimension) - 3.5
	var brX, brY, srcX, srcY float64
	if hasAlign {
		brX, brY = float64(align.X), float64(align.Y)
		srcX = dimMinusThree - 3.0
		srcY = srcX
	} else {
		brX = float64(topRight.Center.X-topLeft.Center.X) + float64(bottomLeft.Center.X)
		brY = float64(topRight.Center.Y-topLeft.Center.Y) + float64(bottomLeft.Center.Y)
		srcX, srcY = dimMinusThree, dimMinusThree
	}
	return transform.QuadrilateralToQuadrilateral(
		3.5, 3.5, dimMinusThree, 3.5, srcX, srcY, 3.5, dimMinusThree,
		float64(topLeft.Center.X), float64(topLeft.Center.Y),
		float64(topRight.Center.X), float64(topRight.Center.Y),
		brX, brY,
		float64(bottomLeft.Center.X), float64(bottomLeft.Center.Y),
	)
}

// findAlignmentPattern performs a spiral search around the estimated
// alignment-pattern position, accepting the first visited region whose
// pixel count is consistent with an alignment pattern of the estimated
// module size.
func findAlignmentPattern(img *PreparedImage, topLeft, topRight, bottomLeft *CapStone, moduleSize float64, dimension int) (Point, bool) {
	modulesBetween := dimension - 7
	if modulesBetween <= 0 {
		return Point{}, false
	}
	correction := 1.0 - 3.0/float64(modulesBetween)
	brX := float64(topRight.Center.X-topLeft.Center.X) + float64(bottomLeft.Center.X)
	brY := float64(topRight.Center.Y-topLeft.Center.Y) + float64(bottomLeft.Center.Y)
	seedX := int(float64(topLeft.Center.X) + correction*(brX-float64(topLeft.Center.X)))
	seedY := int(float64(topLeft.Center.Y) + correction*(brY-float64(topLeft.Center.Y)))

	sizeEstimate := moduleSize * moduleSize * 25 // ~5x5 alignment pattern
	dirs := [4]Point{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

	x, y := seedX, seedY
	step := 1
	dirIdx := 0
	stepsTaken := 0
	for float64(step*step) < sizeEstimate*100 {
		for rep := 0; rep < 2; rep++ {
			d := dirs[dirIdx%4]
			for s := 0; s < step; s++ {
				x += d.X
				y += d.Y
				stepsTaken++
				if !img.inBounds(x, y) {
					continue
				}
				if !img.isDark(x, y) {
					continue
				}
				region, err := img.getRegion(Point{X: x, Y: y})
				if err != nil {
					continue
				}
				pc := float64(region.PixelCount)
				if pc >= sizeEstimate/2 && pc <= sizeEstimate*2 {
					return refineAlignment(img, Point{X: x, Y: y}, topRight.Center.sub(bottomLeft.Center))
				}
			}
			dirIdx++
		}
		step++
		if stepsTaken > 4*dimension*dimension {
			break
		}
	}
	return Point{}, false
}

// refineAlignment repaints the alignment candidate's region and tracks the
// point minimizing (-hd.Y*x + hd.X*y), i.e. leftmost with respect to hd.
func refineAlignment(img *PreparedImage, seed Point, hd Point) (Point, bool) {
	best := newMaxCandidate()
	best.less = func(a, b int) bool { return a > b } // we want the minimum
	cb := &leftmostFinder{hd: hd, best: best}

	tag := regionTag(img, seed)
	kind := img.at(seed.X, seed.Y).Kind
	var from pixelColor
	if kind == pxDiscarded {
		from = colorDiscarded(tag)
	} else {
		from = colorBlack
	}
	img.floodFill(seed.X, seed.Y, from, colorAlignment, cb)
	if !best.bestSeen {
		return Point{}, false
	}
	return best.best, true
}

type leftmostFinder struct {
	hd   Point
	best *cornerCandidate
}

func (l *leftmostFinder) Update(row Row) {
	for _, x := range [2]int{row.Left, row.Right} {
		score := -l.hd.Y*x + l.hd.X*row.Y
		l.best.consider(Point{X: x, Y: row.Y}, score)
	}
}

// jiggle performs a small coordinate-descent search over the perspective's
// 8 independent coefficients to maximize fitness against the bit grid.
func jiggle(img *PreparedImage, xform *transform.PerspectiveTransform, dimension int, hasAlign bool, align Point) *transform.PerspectiveTransform {
	coeffs := xform.Coefficients()
	best := fitness(img, coeffs, dimension, hasAlign, align)

	step := make([]float64, 8)
	for i := range step {
		step[i] = 0.02 * coeffs[i]
		if step[i] == 0 {
			step[i] = 0.01
		}
	}

	for pass := 0; pass < 5; pass++ {
		for i := 0; i < 16; i++ {
			j := i >> 1
			sign := 1.0
			if i&1 == 1 {
				sign = -1.0
			}
			trial := append([]float64(nil), coeffs...)
			trial[j] += sign * step[j]
			score := fitness(img, trial, dimension, hasAlign, align)
			if score > best {
				best = score
				coeffs = trial
			}
		}
		for i := range step {
			step[i] /= 2
		}
	}

	return transform.NewPerspectiveTransform(coeffs)
}

func fitness(img *PreparedImage, coeffs []float64, dimension int, hasAlign bool, align Point) int {
	xform := transform.NewPerspectiveTransform(coeffs)
	score := 0

	// cell samples the single point (u, v): +1 dark, -1 white, 0 outside
	// the image; a module is not sub-sampled.
	cell := func(u, v float64) int {
		pts := []float64{u, v}
		xform.TransformPoints(pts)
		x, y := int(math.Round(pts[0])), int(math.Round(pts[1]))
		if !img.inBounds(x, y) {
			return 0
		}
		if img.isDark(x, y) {
			return 1
		}
		return -1
	}

	for i := 0; i < dimension-14; i++ {
		sign := 1
		if i%2 == 0 {
			sign = -1
		}
		score += sign * cell(float64(i+7)+0.5, 6.5)
		score += sign * cell(6.5, float64(i+7)+0.5)
	}

	// ring sums the four cells at distance r from (cx, cy) along the axes;
	// the other cells of that ring are not sampled.
	ring := func(cx, cy float64, r int) int {
		sum := 0
		for _, off := range [4][2]int{{r, 0}, {-r, 0}, {0, r}, {0, -r}} {
			sum += cell(cx+float64(off[0]), cy+float64(off[1]))
		}
		return sum
	}
	// Capstones: dark 3x3 core (center and ring 1), white ring 2, dark ring 3.
	for _, c := range [3][2]float64{{3.5, 3.5}, {float64(dimension) - 3.5, 3.5}, {3.5, float64(dimension) - 3.5}} {
		score += cell(c[0], c[1]) + ring(c[0], c[1], 1) - ring(c[0], c[1], 2) + ring(c[0], c[1], 3)
	}

	// Alignment pattern: dark center, white ring 1, dark ring 2. Only the
	// one at module (dimension-7, dimension-7) is scored; the others that
	// versions 7 and up carry are not.
	if hasAlign {
		ac := float64(dimension) - 6.5
		score += cell(ac, ac) - ring(ac, ac, 1) + ring(ac, ac, 2)
	}

	return score
}
