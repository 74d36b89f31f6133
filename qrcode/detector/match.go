package detector

import "math"

// inverseMap maps an image-space point back into the capstone's module
// space (u,v), via the adjoint (inverse) of its perspective transform.
func inverseMap(cs *CapStone, p Point) (float64, float64) {
	coords := []float64{float64(p.X), float64(p.Y)}
	cs.Perspective.BuildAdjoint().TransformPoints(coords)
	return coords[0], coords[1]
}

type neighbor struct {
	cap  *CapStone
	dist float64
}

// matchCapstones groups capstones into triples that share a plausible QR
// geometry: for each capstone, the best horizontal and vertical neighbor
// (found by inverse-mapping every other capstone's center) are combined
// into a (horizontal, anchor, vertical) group when their score is good
// enough. Each capstone participates in at most one group.
func matchCapstones(caps []*CapStone) [][3]*CapStone {
	active := make([]*CapStone, len(caps))
	copy(active, caps)

	var groups [][3]*CapStone

	for len(active) >= 3 {
		bestScore := math.Inf(1)
		var bestA, bestH, bestV *CapStone
		var bestAi, bestHi, bestVi int

		for ai, a := range active {
			var bestHN, bestVN *neighbor
			var hi, vi int
			for bi, b := range active {
				if ai == bi {
					continue
				}
				u, v := inverseMap(a, b.Center)
				du := math.Abs(u - 3.5)
				dv := math.Abs(v - 3.5)
				if du < 0.2*dv {
					if bestHN == nil || dv < bestHN.dist {
						bestHN = &neighbor{cap: b, dist: dv}
						hi = bi
					}
				} else if dv < 0.2*du {
					if bestVN == nil || du < bestVN.dist {
						bestVN = &neighbor{cap: b, dist: du}
						vi = bi
					}
				}
			}
			if bestHN == nil || bestVN == nil {
				continue
			}
			score := math.Abs(1 - bestHN.dist/bestVN.dist)
			if score > 2.5 {
				continue
			}
			if score < bestScore {
				bestScore = score
				bestA = a
				bestH = bestHN.cap
				bestV = bestVN.cap
				bestAi = ai
				bestHi = hi
				bestVi = vi
			}
		}

		if bestA == nil {
			break
		}

		groups = append(groups, [3]*CapStone{bestH, bestA, bestV})
		removeIndices(&active, bestAi, bestHi, bestVi)
	}

	return groups
}

// removeIndices removes the three given indices from *active, in
// descending order so earlier removals don't shift later ones.
func removeIndices(active *[]*CapStone, indices ...int) {
	sorted := append([]int(nil), indices...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	a := *active
	for _, idx := range sorted {
		a = append(a[:idx], a[idx+1:]...)
	}
	*active = a
}
