package detector

import (
	"testing"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/qrcode/decoder"
	"github.com/ericlevine/zxinggo/qrcode/encoder"
)

// rasterize encodes text into a QR symbol and renders it to a scaled,
// quiet-zoned BitMatrix, mirroring what a camera frame of a printed code
// looks like once binarized.
func rasterize(t *testing.T, text string, scale int) *PreparedImage {
	t.Helper()
	code, err := encoder.Encode(text, decoder.ECLevelM, 0, -1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	dim := code.Matrix.Width + 2*4
	bits := encoder.RenderResult(code, dim*scale, dim*scale, 4)
	return NewPreparedBitmap(bits)
}

func decodeGrid(t *testing.T, g *Grid) string {
	t.Helper()
	dec := decoder.NewDecoder()
	result, err := dec.Decode(g.Bits(), "")
	if err != nil {
		t.Fatalf("decode reconstructed grid: %v", err)
	}
	return result.Text
}

func TestDetectGridsRoundTripV1(t *testing.T) {
	const text = "rqrr"
	img := rasterize(t, text, 4)
	grids, err := DetectGrids(img)
	if err != nil {
		t.Fatalf("DetectGrids: %v", err)
	}
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	if got := decodeGrid(t, grids[0]); got != text {
		t.Errorf("decoded %q, want %q", got, text)
	}
}

func TestDetectGridsRoundTripNumeric(t *testing.T) {
	const text = "0123456789012345678901234567890123456789"
	img := rasterize(t, text, 3)
	grids, err := DetectGrids(img)
	if err != nil {
		t.Fatalf("DetectGrids: %v", err)
	}
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	if got := decodeGrid(t, grids[0]); got != text {
		t.Errorf("decoded %q, want %q", got, text)
	}
}

func TestDetectGridsNoCodeFound(t *testing.T) {
	img := newPreparedImage(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.setKind(x, y, pxWhite)
		}
	}
	if _, err := DetectGrids(img); err != zxinggo.ErrNotFound {
		t.Fatalf("DetectGrids on blank image: got err %v, want %v", err, zxinggo.ErrNotFound)
	}
}
