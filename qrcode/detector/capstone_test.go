package detector

import "testing"

// finderModules is the standard 7x7 QR finder pattern, one row per string,
// '1' dark, '0' light.
var finderModules = []string{
	"1111111",
	"1000001",
	"1011101",
	"1011101",
	"1011101",
	"1000001",
	"1111111",
}

// buildFinderImage draws a single finder pattern, scaled by `scale` pixels
// per module, onto an all-white canvas with a margin of `margin` modules on
// every side.
func buildFinderImage(scale, margin int) *PreparedImage {
	modules := len(finderModules)
	canvasModules := modules + margin*2
	size := canvasModules * scale
	img := newPreparedImage(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.setKind(x, y, pxWhite)
		}
	}

	offset := margin * scale
	for my, row := range finderModules {
		for mx, ch := range row {
			if ch != '1' {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.setKind(offset+mx*scale+dx, offset+my*scale+dy, pxBlack)
				}
			}
		}
	}
	return img
}

func TestDetectCapstonesSingleFinder(t *testing.T) {
	img := buildFinderImage(4, 4)
	caps := detectCapstones(img)
	if len(caps) != 1 {
		t.Fatalf("got %d capstones, want 1", len(caps))
	}

	cs := caps[0]
	seen := map[Point]bool{}
	for _, c := range cs.Corners {
		if !img.inBounds(c.X, c.Y) {
			t.Errorf("corner %v out of bounds", c)
		}
		if seen[c] {
			t.Errorf("corner %v repeated", c)
		}
		seen[c] = true
	}
}

func TestDetectCapstonesBlankImage(t *testing.T) {
	img := newPreparedImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.setKind(x, y, pxWhite)
		}
	}
	if caps := detectCapstones(img); len(caps) != 0 {
		t.Fatalf("got %d capstones on blank image, want 0", len(caps))
	}
}

func TestDetectCapstonesSolidSquare(t *testing.T) {
	// A solid black square has no 1:1:3:1:1 transition structure at all,
	// so it must not be mistaken for a capstone.
	img := newPreparedImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.setKind(x, y, pxWhite)
		}
	}
	for y := 20; y < 44; y++ {
		for x := 20; x < 44; x++ {
			img.setKind(x, y, pxBlack)
		}
	}
	if caps := detectCapstones(img); len(caps) != 0 {
		t.Fatalf("got %d capstones on solid square, want 0", len(caps))
	}
}
