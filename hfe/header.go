package hfe

import (
	"encoding/binary"

	"github.com/xdt99/hfetool/format"
)

const (
	headerSize = 512
	lutSize    = 512
	blockSize  = 256

	magic = "HXCPICFE"

	encodingDD = 0
	encodingSD = 2

	interfaceModeGenericShugartDD = 7
	bitRateKbitPerSec             = 250

	lutOffsetBlocks = 1 // LUT starts at block 1 (byte 512)

	// lutEntryStride is the per-track LUT offset step in 512-byte units:
	// 0x31 units = 25088 bytes, one track's side-0 and side-1 encoded
	// streams (2 x 12544 bytes), which is the same for SD and DD.
	lutEntryStride = 0x31
)

// trackLengthField is the literal encoded-byte-count-of-one-track field
// the reference tool stores in every LUT entry, little-endian. It's a
// nominal constant per density, not a computed value — SD and DD tracks
// have the same true encoded length (track_len * factor) but the reference
// stores slightly different literals for each.
func trackLengthField(d format.Density) [2]byte {
	if d == format.DD {
		return [2]byte{0xc0, 0x61}
	}
	return [2]byte{0xb0, 0x61}
}

func densityToEncoding(d format.Density) byte {
	if d == format.DD {
		return encodingDD
	}
	return encodingSD
}

func encodingToDensity(enc byte) (format.Density, error) {
	switch enc {
	case encodingDD:
		return format.DD, nil
	case encodingSD:
		return format.SD, nil
	default:
		return 0, newHfeError("Invalid encoding")
	}
}

// buildHeader returns the 512-byte HFE header for the given geometry.
func buildHeader(tracks, sides int, density format.Density, protected bool) []byte {
	h := make([]byte, headerSize)
	copy(h[0:8], magic)
	h[8] = 0 // format revision
	h[9] = byte(tracks)
	h[10] = byte(sides)
	h[11] = densityToEncoding(density)
	binary.LittleEndian.PutUint16(h[12:14], bitRateKbitPerSec)
	binary.LittleEndian.PutUint16(h[14:16], 0) // RPM, unused
	h[16] = interfaceModeGenericShugartDD
	h[17] = 1 // reserved
	binary.LittleEndian.PutUint16(h[18:20], lutOffsetBlocks)
	if protected {
		h[20] = 0x00
	} else {
		h[20] = 0xff
	}
	for i := 21; i < headerSize; i++ {
		h[i] = 0xff
	}
	return h
}

// parsedHeader holds the fields read back out of an HFE header.
type parsedHeader struct {
	Tracks    int
	Sides     int
	Density   format.Density
	IfMode    byte
	Protected bool
}

// parseHeader validates and decodes a 512-byte HFE header.
func parseHeader(data []byte) (*parsedHeader, error) {
	if len(data) < headerSize+lutSize {
		return nil, newHfeError("Not an HFE image")
	}
	if string(data[0:8]) != magic {
		return nil, newHfeError("Not an HFE image")
	}
	density, err := encodingToDensity(data[11])
	if err != nil {
		return nil, err
	}
	ifMode := data[16]
	if ifMode != interfaceModeGenericShugartDD {
		return nil, newHfeError("Invalid mode")
	}
	return &parsedHeader{
		Tracks:    int(data[9]),
		Sides:     int(data[10]),
		Density:   density,
		IfMode:    ifMode,
		Protected: data[20] == 0x00,
	}, nil
}

// buildLUT returns the 512-byte track look-up table for tracks tracks of
// the given density: each entry is {offset_lo, offset_hi, length_lo,
// length_hi}, all little-endian, offset in 512-byte units from the start of
// the file.
func buildLUT(tracks int, density format.Density) []byte {
	lut := make([]byte, lutSize)
	length := trackLengthField(density)
	for i := 0; i < tracks; i++ {
		off := uint16(lutEntryStride*i + 2)
		binary.LittleEndian.PutUint16(lut[i*4:i*4+2], off)
		lut[i*4+2] = length[0]
		lut[i*4+3] = length[1]
	}
	for i := 4 * tracks; i < lutSize; i++ {
		lut[i] = 0xff
	}
	return lut
}
