package format

import "github.com/xdt99/hfetool/bitcodec"

// sectorInterleave is the standard SD interleave table, period 27 across
// three physical tracks, indexed by (track*9+sector) mod 27.
var sectorInterleave = [27]int{
	0, 7, 5, 3, 1, 8, 6, 4, 2,
	6, 4, 2, 0, 7, 5, 3, 1, 8,
	3, 1, 8, 6, 4, 2, 0, 7, 5,
}

// sectorInterleaveWTF is the variant table applied only to side 1, tracks
// <37, of 80-track media — a quirk of period TI 80-track disks.
var sectorInterleaveWTF = [27]int{
	4, 2, 0, 7, 5, 3, 1, 8, 6,
	1, 8, 6, 4, 2, 0, 7, 5, 3,
	7, 5, 3, 1, 8, 6, 4, 2, 0,
}

func interleaveSD(side, track, slot int, is80t bool) int {
	if is80t && side == 1 {
		if track < 37 {
			return sectorInterleaveWTF[(track*9+slot)%27]
		}
		return sectorInterleave[((track-37)*9+slot)%27]
	}
	return sectorInterleave[(track*9+slot)%27]
}

func repeat(pattern []byte, n int) []byte {
	out := make([]byte, 0, len(pattern)*n)
	for i := 0; i < n; i++ {
		out = append(out, pattern...)
	}
	return out
}

var sdFormat = func() *Format {
	leadin := append([]byte{0xaa, 0xa8, 0xa8, 0x22}, repeat([]byte{0xaa}, 4*16)...)
	leadout := append(repeat([]byte{0xaa}, 4*77), 0xaa, 0x50)
	leadout = append(leadout, repeat([]byte{0x55}, 2+4*35)...)
	pregap := repeat([]byte{0x22}, 4*6)
	gap1 := append(repeat([]byte{0xaa}, 4*11), repeat([]byte{0x22}, 4*6)...)
	gap2 := repeat([]byte{0xaa}, 4*45)

	return &Format{
		Density:            SD,
		Sectors:            9,
		TrackLen:           17 + 9*334 + 113,
		Factor:             bitcodec.FMFactor,
		Leadin:             leadin,
		Leadout:            leadout,
		Pregap:             pregap,
		Gap1:               gap1,
		Gap2:               gap2,
		EncodedAddressMark: bitcodec.EncodedAddressMarkSD[:],
		EncodedDataMark:    bitcodec.EncodedDataMarkSD[:],
		LvLeadin:           17,
		LvLeadout:          113,
		LvPregap:           6,
		LvGap1:             17,
		LvGap2:             45,
		DecodedAddressMark: []byte{0xfe},
		DecodedDataMark:    []byte{0xfb},
		Encode:             bitcodec.EncodeFM,
		Decode:             bitcodec.DecodeFM,
		FixClocks:          bitcodec.FixClocksFM,
		Interleave:         interleaveSD,
	}
}()
