package detector

import (
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"
	"github.com/ericlevine/zxinggo/internal"
)

// DetectGrids runs capstone detection, matching, and grid reconstruction
// over a prepared image and returns every successfully reconstructed grid,
// in the order its capstone group was formed.
func DetectGrids(img *PreparedImage) ([]*Grid, error) {
	caps := detectCapstones(img)
	if len(caps) < 3 {
		return nil, zxinggo.ErrNotFound
	}

	groups := matchCapstones(caps)
	if len(groups) == 0 {
		return nil, zxinggo.ErrNotFound
	}

	var grids []*Grid
	for _, g := range groups {
		grid, err := reconstructGrid(g, img)
		if err == nil {
			grids = append(grids, grid)
		}
	}
	if len(grids) == 0 {
		return nil, zxinggo.ErrNotFound
	}
	return grids, nil
}

// Bits samples the grid's module bits through its fitted perspective
// transform into a BitMatrix suitable for the existing bit-grid decoder.
func (g *Grid) Bits() *bitutil.BitMatrix {
	bits := bitutil.NewBitMatrix(g.GridSize)
	pts := make([]float64, 2)
	for y := 0; y < g.GridSize; y++ {
		for x := 0; x < g.GridSize; x++ {
			pts[0], pts[1] = float64(x)+0.5, float64(y)+0.5
			g.Transform.TransformPoints(pts)
			if g.image.pixelAt(pts[0], pts[1]) {
				bits.Set(x, y)
			}
		}
	}
	return bits
}

// Points returns the grid's capstone centers (and alignment point, if any)
// as result points, matching the shape the legacy detector reported.
func (g *Grid) Points() []internal.ResultPoint {
	points := []internal.ResultPoint{
		{X: float64(g.Caps[2].Center.X), Y: float64(g.Caps[2].Center.Y)}, // bottomLeft
		{X: float64(g.Caps[0].Center.X), Y: float64(g.Caps[0].Center.Y)}, // topLeft
		{X: float64(g.Caps[1].Center.X), Y: float64(g.Caps[1].Center.Y)}, // topRight
	}
	if g.HasAlign {
		points = append(points, internal.ResultPoint{X: float64(g.Align.X), Y: float64(g.Align.Y)})
	}
	return points
}

// detectorResultFromGrid bridges a reconstructed Grid into the module's
// shared DetectorResult, handing the sampled bit matrix and corner points
// to the existing QR bit-grid decoder unchanged.
func detectorResultFromGrid(g *Grid) *internal.DetectorResult {
	return internal.NewDetectorResult(g.Bits(), g.Points())
}
