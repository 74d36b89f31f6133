package decoder

import "testing"

func TestDecodeFormatInformationExact(t *testing.T) {
	fi := DecodeFormatInformation(0x5412, 0x5412)
	if fi == nil {
		t.Fatal("got nil, want a decoded FormatInformation")
	}
	if fi.ECLevel != ECLevelM || fi.DataMask != 0 {
		t.Errorf("got {%v, %d}, want {M, 0}", fi.ECLevel, fi.DataMask)
	}
}

func TestDecodeFormatInformationCorrectsThreeBitErrors(t *testing.T) {
	const clean = 0x77C4 // ECLevelL, mask 0
	corrupted := clean ^ (1 << 0) ^ (1 << 6) ^ (1 << 12)

	fi := DecodeFormatInformation(corrupted, corrupted)
	if fi == nil {
		t.Fatal("got nil, want a decoded FormatInformation despite 3 bit errors")
	}
	if fi.ECLevel != ECLevelL || fi.DataMask != 0 {
		t.Errorf("got {%v, %d}, want {L, 0}", fi.ECLevel, fi.DataMask)
	}
}

func TestDecodeFormatInformationFallsBackToSecondCandidate(t *testing.T) {
	const clean = 0x1689 // ECLevelH, mask 0
	garbage := 0x0000

	fi := DecodeFormatInformation(garbage, clean)
	if fi == nil {
		t.Fatal("got nil, want the second candidate to decode")
	}
	if fi.ECLevel != ECLevelH || fi.DataMask != 0 {
		t.Errorf("got {%v, %d}, want {H, 0}", fi.ECLevel, fi.DataMask)
	}
}

func TestDecodeFormatInformationUncorrectable(t *testing.T) {
	if fi := DecodeFormatInformation(0x0000, 0x0001); fi != nil {
		t.Errorf("got %+v, want nil for two uncorrectable candidates", fi)
	}
}
