package detector

import (
	"math"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"
)

// PreparedImage owns a binarized raster plus the bookkeeping needed to
// flood-fill it repeatedly while detecting capstones: a tagged pixel buffer
// and a bounded cache of previously-discarded regions.
type PreparedImage struct {
	width, height int
	pixels        []pixelColor
	regions       *regionCache
}

func newPreparedImage(width, height int) *PreparedImage {
	img := &PreparedImage{
		width:  width,
		height: height,
		pixels: make([]pixelColor, width*height),
	}
	img.regions = newRegionCache(img)
	return img
}

// NewPreparedImage binarizes a grayscale LuminanceSource using a serpentine
// moving-average adaptive threshold, row by row.
func NewPreparedImage(source zxinggo.LuminanceSource) (*PreparedImage, error) {
	w, h := source.Width(), source.Height()
	img := newPreparedImage(w, h)

	s := w / 8
	if s < 1 {
		s = 1
	}

	rowSum := make([]float64, w)
	row := make([]byte, w)
	for y := 0; y < h; y++ {
		row = source.Row(y, row)
		for i := range rowSum {
			rowSum[i] = 0
		}

		avgV := 0.0
		avgU := 0.0
		for x := 0; x < w; x++ {
			var v, u int
			if y&1 == 0 {
				v = w - 1 - x
				u = x
			} else {
				v = x
				u = w - 1 - x
			}
			avgV = avgV*float64(s-1)/float64(s) + float64(row[v])
			avgU = avgU*float64(s-1)/float64(s) + float64(row[u])
			rowSum[v] += avgV
			rowSum[u] += avgU
		}

		for x := 0; x < w; x++ {
			threshold := rowSum[x] * (100 - 5) / (200 * float64(s))
			if float64(row[x]) < threshold {
				img.setKind(x, y, pxBlack)
			} else {
				img.setKind(x, y, pxWhite)
			}
		}
	}
	return img, nil
}

// NewPreparedBitmap wraps an already-binarized BitMatrix as a PreparedImage,
// for callers (or tests) that supply a pre-thresholded grid directly.
func NewPreparedBitmap(matrix *bitutil.BitMatrix) *PreparedImage {
	w, h := matrix.Width(), matrix.Height()
	img := newPreparedImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.setKind(x, y, pxBlack)
			} else {
				img.setKind(x, y, pxWhite)
			}
		}
	}
	return img
}

func (img *PreparedImage) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.width && y < img.height
}

func (img *PreparedImage) at(x, y int) pixelColor {
	if !img.inBounds(x, y) {
		return colorWhite
	}
	return img.pixels[y*img.width+x]
}

func (img *PreparedImage) setKind(x, y int, k pixelKind) {
	img.pixels[y*img.width+x] = pixelColor{Kind: k}
}

func (img *PreparedImage) set(x, y int, c pixelColor) {
	img.pixels[y*img.width+x] = c
}

func (img *PreparedImage) isDark(x, y int) bool {
	return img.at(x, y).isDark()
}

// floodFill recolors the 4-connected region of "from"-colored pixels
// containing (x,y) to "to", invoking cb once per contiguous row span
// touched (if cb is non-nil). Implemented with an explicit work-list of
// row spans rather than recursion, to bound stack usage.
func (img *PreparedImage) floodFill(x, y int, from, to pixelColor, cb RowCallback) {
	if from == to {
		return
	}
	if !img.inBounds(x, y) || img.at(x, y) != from {
		return
	}

	type seed struct{ x, y int }
	stack := []seed{{x, y}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !img.inBounds(s.x, s.y) || img.at(s.x, s.y) != from {
			continue
		}

		left := s.x
		for left-1 >= 0 && img.at(left-1, s.y) == from {
			left--
		}
		right := s.x
		for right+1 < img.width && img.at(right+1, s.y) == from {
			right++
		}
		for xx := left; xx <= right; xx++ {
			img.set(xx, s.y, to)
		}
		if cb != nil {
			cb.Update(Row{Left: left, Right: right, Y: s.y})
		}

		addSeeds := func(yy int) {
			inSpan := false
			for xx := left; xx <= right; xx++ {
				if img.inBounds(xx, yy) && img.at(xx, yy) == from {
					if !inSpan {
						stack = append(stack, seed{xx, yy})
						inSpan = true
					}
				} else {
					inSpan = false
				}
			}
		}
		addSeeds(s.y - 1)
		addSeeds(s.y + 1)
	}
}

// getRegion classifies the region that pixel p belongs to. A Black pixel's
// region is flood-filled into a freshly tagged Discarded region; a
// Discarded pixel returns its cached region (allocated anew if its tag was
// evicted). A White pixel returns ErrFormat, and any other kind (CapStone,
// Alignment, Tmp) returns a one-pixel placeholder region with p as origin.
func (img *PreparedImage) getRegion(p Point) (*ColoredRegion, error) {
	c := img.at(p.X, p.Y)
	switch c.Kind {
	case pxDiscarded:
		if region, ok := img.regions.get(c.Tag); ok {
			return region, nil
		}
		// Tag was evicted and the pixel stale; reclassify as black.
		img.setKind(p.X, p.Y, pxBlack)
		return img.regions.allocate(p.X, p.Y), nil
	case pxBlack:
		return img.regions.allocate(p.X, p.Y), nil
	case pxWhite:
		return nil, zxinggo.ErrFormat
	default:
		return &ColoredRegion{SourceColor: c, Origin: p, PixelCount: 1}, nil
	}
}

// pixelAt reports whether the pixel nearest the image-space point (x, y) is
// dark; callers map module coordinates into image space first.
func (img *PreparedImage) pixelAt(x, y float64) bool {
	px := int(math.Round(x))
	py := int(math.Round(y))
	return img.isDark(px, py)
}
