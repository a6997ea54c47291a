package format

import "github.com/xdt99/hfetool/bitcodec"

func interleaveDD(_, _, slot int, _ bool) int {
	return (slot * 11) % 18
}

var ddFormat = func() *Format {
	leadin := repeat([]byte{0x49, 0x2a}, 32)
	leadout := repeat([]byte{0x49, 0x2a}, 84)
	pregap := repeat([]byte{0x55}, 2*12)
	gap1 := append(repeat([]byte{0x49, 0x2a}, 22), repeat([]byte{0x55}, 2*12)...)
	gap2 := repeat([]byte{0x49, 0x2a}, 24)

	return &Format{
		Density:            DD,
		Sectors:            18,
		TrackLen:           32 + 18*342 + 84,
		Factor:             bitcodec.MFMFactor,
		Leadin:             leadin,
		Leadout:            leadout,
		Pregap:             pregap,
		Gap1:               gap1,
		Gap2:               gap2,
		EncodedAddressMark: bitcodec.EncodedAddressMarkDD[:],
		EncodedDataMark:    bitcodec.EncodedDataMarkDD[:],
		LvLeadin:           32,
		LvLeadout:          84,
		LvPregap:           12,
		LvGap1:             34,
		LvGap2:             24,
		DecodedAddressMark: []byte{0xa1, 0xa1, 0xa1, 0xfe},
		DecodedDataMark:    []byte{0xa1, 0xa1, 0xa1, 0xfb},
		Encode:             bitcodec.EncodeMFM,
		Decode:             bitcodec.DecodeMFM,
		FixClocks:          bitcodec.FixClocksMFM,
		Interleave:         interleaveDD,
	}
}()
