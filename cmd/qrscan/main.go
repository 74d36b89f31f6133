// Command qrscan loads an image file, detects every QR code in it, and
// prints each decoded payload to stdout.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/binarizer"
	"github.com/ericlevine/zxinggo/qrcode"
)

func main() {
	tryHarder := flag.Bool("try-harder", false, "spend more time looking for codes")
	pure := flag.Bool("pure", false, "hint that the image is a clean code render with minimal border")
	charset := flag.String("charset", "", "character set to use for byte-mode segments lacking an ECI marker")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrscan [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Detect and decode QR codes in image files (PNG, JPEG, GIF).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		results, err := scanFile(path, *tryHarder, *pure, *charset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
			exitCode = 1
			continue
		}
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "%s: no QR codes found\n", path)
			exitCode = 1
			continue
		}
		for _, r := range results {
			if flag.NArg() > 1 {
				fmt.Printf("%s: ", path)
			}
			fmt.Printf("%s\n", r.Text)
		}
	}
	os.Exit(exitCode)
}

func scanFile(path string, tryHarder, pure bool, charSet string) ([]*zxinggo.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	source := zxinggo.NewImageLuminanceSource(img)
	opts := &zxinggo.DecodeOptions{
		TryHarder:    tryHarder,
		PureBarcode:  pure,
		CharacterSet: charSet,
	}

	reader := qrcode.NewReader()
	bitmap := zxinggo.NewBinaryBitmap(binarizer.NewHybrid(source))
	return reader.DecodeMultiple(bitmap, opts)
}
