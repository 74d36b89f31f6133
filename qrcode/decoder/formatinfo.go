package decoder

import "github.com/ericlevine/zxinggo/reedsolomon"

// formatInfoMaskQR is XORed into every format-info codeword so the "M,
// mask 0" symbol doesn't read back as fifteen zero bits.
const formatInfoMaskQR = 0x5412

// formatECCSyndromes is the number of syndromes the BCH(15,5) format code
// carries (2t, t=3): enough to locate and correct up to three bit errors.
const formatECCSyndromes = 6

// FormatInformation encapsulates a QR code's format info (EC level + data mask).
type FormatInformation struct {
	ECLevel  ErrorCorrectionLevel
	DataMask byte
}

func newFormatInformation(formatInfo int) *FormatInformation {
	ecLevel, _ := ECLevelForBits((formatInfo >> 3) & 0x03)
	return &FormatInformation{
		ECLevel:  ecLevel,
		DataMask: byte(formatInfo & 0x07),
	}
}

// DecodeFormatInformation recovers the 5 data bits (EC level + mask) from
// one of the two masked 15-bit format codewords read off the grid, trying
// each candidate location in turn. The codeword is a BCH(15,5) code over
// GF(16) with generator x^4+x+1; correction runs the same machinery the
// data codewords use (an extended-Euclidean error locator, not
// Berlekamp-Massey, then a root search and Forney magnitudes), over the
// smaller field, rather than a nearest-valid-codeword table search.
func DecodeFormatInformation(maskedFormatInfo1, maskedFormatInfo2 int) *FormatInformation {
	if fi := correctFormatWord(maskedFormatInfo1); fi != nil {
		return fi
	}
	return correctFormatWord(maskedFormatInfo2)
}

// correctFormatWord unmasks word, corrects it as a 15-bit GF(16) BCH
// codeword, and decodes the surviving 5 data bits. It returns nil if the
// codeword carries more errors than the code can correct.
func correctFormatWord(word int) *FormatInformation {
	bits := unpackBits(word^formatInfoMaskQR, 15)

	dec := reedsolomon.NewDecoder(reedsolomon.QRFormatField16)
	if _, err := dec.Decode(bits, formatECCSyndromes); err != nil {
		return nil
	}

	return newFormatInformation(packBits(bits) >> 10)
}

// unpackBits splits v into n bits, most-significant first, matching
// GenericGFPoly's highest-degree-first coefficient ordering.
func unpackBits(v, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = (v >> (n - 1 - i)) & 1
	}
	return out
}

// packBits is the inverse of unpackBits.
func packBits(bits []int) int {
	v := 0
	for _, b := range bits {
		v = v<<1 | b
	}
	return v
}
