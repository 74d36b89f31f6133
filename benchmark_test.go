package zxinggo_test

import (
	"testing"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/binarizer"

	_ "github.com/ericlevine/zxinggo/qrcode"
)

var encodeTests = []struct {
	name    string
	content string
	format  zxinggo.Format
	width   int
	height  int
}{
	{"QRCode", "Hello, World! This is a QR code benchmark test.", zxinggo.FormatQRCode, 400, 400},
}

func BenchmarkDecode(b *testing.B) {
	for _, tc := range encodeTests {
		b.Run(tc.name, func(b *testing.B) {
			matrix, err := zxinggo.Encode(tc.content, tc.format, tc.width, tc.height, nil)
			if err != nil {
				b.Fatal(err)
			}
			img := zxinggo.BitMatrixToImage(matrix)
			opts := &zxinggo.DecodeOptions{
				PossibleFormats: []zxinggo.Format{tc.format},
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Create fresh binarizer/bitmap each iteration since HybridBinarizer caches
				source := zxinggo.NewGrayImageLuminanceSource(img)
				bitmap := zxinggo.NewBinaryBitmap(binarizer.NewHybrid(source))
				_, err := zxinggo.Decode(bitmap, opts)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	for _, tc := range encodeTests {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := zxinggo.Encode(tc.content, tc.format, tc.width, tc.height, nil)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
