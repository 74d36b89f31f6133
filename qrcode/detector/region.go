package detector

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// regionCacheCapacity bounds how many discarded regions are tracked at once.
// Chosen so that no realistic image has more simultaneously live candidate
// regions than this during a single detection pass.
const regionCacheCapacity = 251

// Row is a single contiguous span produced by a flood fill.
type Row struct {
	Left, Right, Y int
}

// RowCallback receives each span touched by a flood fill. It is an
// interface rather than a closure so callers (corner finders, area
// counters) can retain state across calls, the same way the package's
// other multi-pass collaborators do.
type RowCallback interface {
	Update(row Row)
}

// areaCounter is a RowCallback that sums the pixels of every span it sees.
type areaCounter struct {
	count int
}

func (a *areaCounter) Update(row Row) {
	a.count += row.Right - row.Left + 1
}

// ColoredRegion records the provenance of a discarded region so it can be
// repainted back to black when its tag is evicted.
type ColoredRegion struct {
	SourceColor pixelColor
	Origin      Point
	PixelCount  int
}

// regionCache is a bounded LRU of discard tag -> ColoredRegion, backed by
// golang-lru/v2. Eviction repaints the evicted region back to black. Tags
// come from an ever-increasing counter and are never reused.
type regionCache struct {
	cache   *lru.Cache[int, *ColoredRegion]
	nextTag int
	img     *PreparedImage
}

func newRegionCache(img *PreparedImage) *regionCache {
	rc := &regionCache{img: img}
	c, _ := lru.NewWithEvict[int, *ColoredRegion](regionCacheCapacity, rc.onEvict)
	rc.cache = c
	return rc
}

func (rc *regionCache) onEvict(tag int, region *ColoredRegion) {
	rc.img.floodFill(region.Origin.X, region.Origin.Y, colorDiscarded(tag), colorBlack, nil)
}

func (rc *regionCache) get(tag int) (*ColoredRegion, bool) {
	return rc.cache.Get(tag)
}

// allocate flood-fills the black region containing (x,y) into a freshly
// tagged discarded region and returns it.
func (rc *regionCache) allocate(x, y int) *ColoredRegion {
	tag := rc.nextTag
	rc.nextTag++

	counter := &areaCounter{}
	rc.img.floodFill(x, y, colorBlack, colorDiscarded(tag), counter)

	region := &ColoredRegion{SourceColor: colorBlack, Origin: Point{X: x, Y: y}, PixelCount: counter.count}
	rc.cache.Add(tag, region)
	return region
}
