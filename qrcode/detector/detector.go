// Package detector implements QR code detection in binary images: locating
// capstones (finder patterns), grouping them into triples, and fitting a
// perspective transform over the resulting grid.
package detector

import (
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"
	"github.com/ericlevine/zxinggo/internal"
)

// Detector detects a single QR code in a binary image.
type Detector struct {
	image *bitutil.BitMatrix
}

// NewDetector creates a new Detector for the given image.
func NewDetector(image *bitutil.BitMatrix) *Detector {
	return &Detector{image: image}
}

// Detect locates a QR code and returns the sampled bit matrix and corner
// points. tryHarder is accepted for interface compatibility with other
// format detectors in this module; capstone detection already scans every
// row, so there is no faster mode to skip.
func (d *Detector) Detect(tryHarder bool) (*internal.DetectorResult, error) {
	prepared := NewPreparedBitmap(d.image)
	grids, err := DetectGrids(prepared)
	if err != nil {
		return nil, err
	}
	return detectorResultFromGrid(grids[0]), nil
}

// DetectMulti detects every QR code present in the image. Unlike the
// legacy finder-pattern scanner this replaces, capstone grouping already
// finds every independent group of three capstones in a single pass, so
// multi-code detection needs no separate algorithm.
func DetectMulti(image *bitutil.BitMatrix, tryHarder bool) ([]*internal.DetectorResult, error) {
	prepared := NewPreparedBitmap(image)
	grids, err := DetectGrids(prepared)
	if err != nil {
		return nil, err
	}

	var results []*internal.DetectorResult
	for _, g := range grids {
		results = append(results, detectorResultFromGrid(g))
	}
	if len(results) == 0 {
		return nil, zxinggo.ErrNotFound
	}
	return results, nil
}
