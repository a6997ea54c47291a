package hfe

import (
	"testing"

	"github.com/xdt99/hfetool/format"
)

func TestBuildParseHeaderRoundTrip(t *testing.T) {
	h := buildHeader(80, 2, format.DD, true)
	if len(h) != headerSize {
		t.Fatalf("len(header) = %d, want %d", len(h), headerSize)
	}
	parsed, err := parseHeader(append(h, make([]byte, lutSize)...))
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if parsed.Tracks != 80 || parsed.Sides != 2 || parsed.Density != format.DD || !parsed.Protected {
		t.Errorf("parseHeader = %+v, want {80 2 DD <ifmode> true}", parsed)
	}
	if parsed.IfMode != interfaceModeGenericShugartDD {
		t.Errorf("parsed.IfMode = %d, want %d", parsed.IfMode, interfaceModeGenericShugartDD)
	}
}

func TestBuildLUT(t *testing.T) {
	lut := buildLUT(2, format.SD)
	if len(lut) != lutSize {
		t.Fatalf("len(lut) = %d, want %d", len(lut), lutSize)
	}
	want0 := []byte{0x02, 0x00, 0xb0, 0x61}
	for i := range want0 {
		if lut[i] != want0[i] {
			t.Errorf("entry 0 byte %d = %#02x, want %#02x", i, lut[i], want0[i])
		}
	}
	want1 := []byte{0x33, 0x00, 0xb0, 0x61} // 0x31*1+2 = 0x33
	for i := range want1 {
		if lut[4+i] != want1[i] {
			t.Errorf("entry 1 byte %d = %#02x, want %#02x", i, lut[4+i], want1[i])
		}
	}
	if lut[8] != 0xff {
		t.Errorf("unused LUT byte = %#02x, want 0xff", lut[8])
	}
}
