// Package format describes the two TI-99 floppy recording formats, SD
// (single density, FM) and DD (double density, MFM): track geometry, the
// literal filler/mark byte sequences a track is built from, and the sector
// interleave tables that map a physical sector slot to the logical sector
// it holds.
package format

import "fmt"

// Density identifies a recording format.
type Density int

const (
	SD Density = iota + 1
	DD
)

func (d Density) String() string {
	switch d {
	case SD:
		return "SD"
	case DD:
		return "DD"
	default:
		return fmt.Sprintf("Density(%d)", int(d))
	}
}

// ParseDensity parses the TOML/CLI spelling of a density ("SD" or "DD").
func ParseDensity(s string) (Density, error) {
	switch s {
	case "SD":
		return SD, nil
	case "DD":
		return DD, nil
	default:
		return 0, fmt.Errorf("invalid density %q", s)
	}
}

// Format describes one recording format's track layout: the literal
// encoded filler/mark byte sequences a track is assembled from, their
// decoded lengths, and the codec functions that move between decoded bytes
// and the bitcell stream.
type Format struct {
	Density  Density
	Sectors  int // sectors per track
	TrackLen int // decoded track length in bytes
	Factor   int // encoded bytes per decoded byte (4 for SD, 2 for DD)

	// Literal encoded (bitcell) filler and mark sequences.
	Leadin             []byte
	Leadout            []byte
	Pregap             []byte
	Gap1               []byte
	Gap2               []byte
	EncodedAddressMark []byte
	EncodedDataMark    []byte

	// Decoded lengths of the above (except the marks, which decode to
	// DecodedAddressMark/DecodedDataMark directly).
	LvLeadin, LvLeadout, LvPregap, LvGap1, LvGap2 int

	// DecodedAddressMark and DecodedDataMark are what EncodedAddressMark and
	// EncodedDataMark decode to: {0xfe} and {0xfb} for SD, {0xa1,0xa1,0xa1,0xfe}
	// and {0xa1,0xa1,0xa1,0xfb} for DD (each 0x2291 sync token decodes to
	// 0xa1).
	DecodedAddressMark []byte
	DecodedDataMark    []byte

	Encode    func([]byte) []byte
	Decode    func([]byte) []byte
	FixClocks func([]byte)

	// Interleave maps a physical sector slot (0-based, in on-disk rotation
	// order) to the logical sector index it should hold, for the given side
	// and track. is80t is true when the disk has 80 tracks, which changes
	// the SD table on side 1.
	Interleave func(side, track, slot int, is80t bool) int
}

// ByDensity returns the Format descriptor for d.
func ByDensity(d Density) (*Format, error) {
	switch d {
	case SD:
		return sdFormat, nil
	case DD:
		return ddFormat, nil
	default:
		return nil, fmt.Errorf("invalid density %d", int(d))
	}
}
