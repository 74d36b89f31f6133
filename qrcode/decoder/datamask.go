package decoder

import "github.com/ericlevine/zxinggo/bitutil"

// DataMaskFunc reports whether the data mask bit at grid position (i, j)
// is set for one of the eight standard mask patterns.
type DataMaskFunc func(i, j int) bool

// DataMasks holds the eight QR mask-pattern predicates, indexed by mask
// pattern (0-7). Each mirrors the reference model's case-by-case
// definition directly rather than a shorter but less traceable algebraic
// simplification (e.g. pattern 5 is "i*j mod 2 plus i*j mod 3 is zero",
// not "i*j mod 6 is zero", even though the two are equivalent).
var DataMasks = [8]DataMaskFunc{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return (i*j)%2+(i*j)%3 == 0 },
	func(i, j int) bool { return ((i*j)%2+(i*j)%3)%2 == 0 },
	func(i, j int) bool { return ((i*j)%3+(i+j)%2)%2 == 0 },
}

// UnmaskBitMatrix flips every module the given mask pattern set, reversing
// the XOR the encoder applied so the underlying codeword bits read back
// unmasked.
func UnmaskBitMatrix(bits *bitutil.BitMatrix, dimension int, maskIndex int) {
	mask := DataMasks[maskIndex]
	for i := 0; i < dimension; i++ {
		for j := 0; j < dimension; j++ {
			if mask(i, j) {
				bits.Flip(j, i)
			}
		}
	}
}
