package decoder

// DataBlock represents one interleaved block of data and error-correction
// codewords, after de-interleaving.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks de-interleaves a symbol's raw codeword stream into its
// per-block data+EC codewords. A version/EC-level pair specifies at most
// two distinct block shapes: "short" blocks (sb) and, once the data no
// longer divides evenly, one extra "long" block shape (lb) carrying one
// extra data codeword each. lbCount long blocks follow bc-lbCount short
// blocks; eccOffset marks where the raw stream's trailing EC codewords
// begin. Both data and EC codewords are stored column-major across blocks
// (codeword i of every block together, then codeword i+1 of every block),
// so each block's byte j is gathered from raw[j*bc+i] (data) or
// raw[eccOffset+j*bc+i] (EC).
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	sb := ecBlocks.Blocks[0]

	var lbDataCodewords int
	lbCount := 0
	if len(ecBlocks.Blocks) > 1 {
		lb := ecBlocks.Blocks[1]
		lbDataCodewords = lb.DataCodewords
		lbCount = lb.Count
	}

	bc := sb.Count + lbCount
	eccPerBlock := ecBlocks.ECCodewordsPerBlock
	eccOffset := sb.DataCodewords*bc + lbCount

	blocks := make([]DataBlock, bc)
	for i := 0; i < bc; i++ {
		dw := sb.DataCodewords
		if i >= sb.Count {
			dw = lbDataCodewords
		}
		blocks[i] = DataBlock{
			NumDataCodewords: dw,
			Codewords:        make([]byte, dw+eccPerBlock),
		}
	}

	for i := 0; i < bc; i++ {
		block := blocks[i].Codewords
		dw := blocks[i].NumDataCodewords
		for j := 0; j < dw; j++ {
			block[j] = rawCodewords[j*bc+i]
		}
		for j := 0; j < eccPerBlock; j++ {
			block[dw+j] = rawCodewords[eccOffset+j*bc+i]
		}
	}

	return blocks
}
