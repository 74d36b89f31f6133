package detector

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

func (p Point) sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cross computes the z-component of the 2D cross product a x b.
func cross(a, b Point) int {
	return a.X*b.Y - a.Y*b.X
}

func squaredDistancePt(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// lineIntersect returns the integer intersection of line p0-p1 with line
// q0-q1, truncated toward zero. ok is false when the lines are parallel.
func lineIntersect(p0, p1, q0, q1 Point) (Point, bool) {
	d1x, d1y := p1.X-p0.X, p1.Y-p0.Y
	d2x, d2y := q1.X-q0.X, q1.Y-q0.Y
	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return Point{}, false
	}
	t := float64((q0.X-p0.X)*d2y-(q0.Y-p0.Y)*d2x) / float64(denom)
	x := float64(p0.X) + t*float64(d1x)
	y := float64(p0.Y) + t*float64(d1y)
	return Point{X: int(x), Y: int(y)}, true
}

// bresenhamScan yields every integer point on the line from "from" to "to",
// inclusive, using integer-only Bresenham stepping.
func bresenhamScan(from, to Point) []Point {
	dx := intAbs(to.X - from.X)
	dy := -intAbs(to.Y - from.Y)
	sx := 1
	if from.X >= to.X {
		sx = -1
	}
	sy := 1
	if from.Y >= to.Y {
		sy = -1
	}
	err := dx + dy

	points := make([]Point, 0, int(math.Max(float64(intAbs(dx)), float64(intAbs(dy))))+1)
	x, y := from.X, from.Y
	for {
		points = append(points, Point{X: x, Y: y})
		if x == to.X && y == to.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}
