package zxinggo_test

import (
	"testing"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/binarizer"

	// Import format packages to trigger init() registration.
	_ "github.com/ericlevine/zxinggo/qrcode"
)

func encodeAndDecode(t *testing.T, content string, format zxinggo.Format, width, height int) string {
	t.Helper()

	// Encode
	matrix, err := zxinggo.Encode(content, format, width, height, nil)
	if err != nil {
		t.Fatalf("Encode(%s, %s) failed: %v", content, format, err)
	}
	if matrix.Width() == 0 || matrix.Height() == 0 {
		t.Fatalf("encoded matrix is empty")
	}

	// Convert to image
	img := zxinggo.BitMatrixToImage(matrix)

	// Create binary bitmap via binarizer pipeline
	source := zxinggo.NewGrayImageLuminanceSource(img)
	bin := binarizer.NewGlobalHistogram(source)
	bitmap := zxinggo.NewBinaryBitmap(bin)

	// Decode - use PureBarcode since we're decoding from a clean render
	opts := &zxinggo.DecodeOptions{
		PossibleFormats: []zxinggo.Format{format},
		PureBarcode:     true,
	}
	result, err := zxinggo.Decode(bitmap, opts)
	if err != nil {
		t.Fatalf("Decode(%s) failed: %v", format, err)
	}

	return result.Text
}

func TestRoundTripQRCode(t *testing.T) {
	content := "Hello, World!"
	decoded := encodeAndDecode(t, content, zxinggo.FormatQRCode, 400, 400)
	if decoded != content {
		t.Errorf("QR round-trip: got %q, want %q", decoded, content)
	}
}

func TestRoundTripQRCodeNumeric(t *testing.T) {
	content := "1234567890"
	decoded := encodeAndDecode(t, content, zxinggo.FormatQRCode, 200, 200)
	if decoded != content {
		t.Errorf("QR numeric round-trip: got %q, want %q", decoded, content)
	}
}

func TestEncodeTopLevelAPI(t *testing.T) {
	// Test that the top-level Encode works for every writable format this
	// module still registers.
	matrix, err := zxinggo.Encode("Test", zxinggo.FormatQRCode, 200, 200, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if matrix.Width() == 0 || matrix.Height() == 0 {
		t.Fatal("empty result")
	}
}

func TestImageLuminanceSource(t *testing.T) {
	// Encode a QR code, convert to image, verify luminance source properties
	matrix, err := zxinggo.Encode("test", zxinggo.FormatQRCode, 100, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := zxinggo.BitMatrixToImage(matrix)
	source := zxinggo.NewGrayImageLuminanceSource(img)

	if source.Width() != img.Bounds().Dx() {
		t.Errorf("width: got %d, want %d", source.Width(), img.Bounds().Dx())
	}
	if source.Height() != img.Bounds().Dy() {
		t.Errorf("height: got %d, want %d", source.Height(), img.Bounds().Dy())
	}

	lum := source.Matrix()
	if len(lum) != source.Width()*source.Height() {
		t.Errorf("matrix length: got %d, want %d", len(lum), source.Width()*source.Height())
	}

	row := source.Row(0, nil)
	if len(row) != source.Width() {
		t.Errorf("row length: got %d, want %d", len(row), source.Width())
	}
}
