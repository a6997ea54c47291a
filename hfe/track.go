package hfe

import (
	"bytes"
	"fmt"

	"github.com/xdt99/hfetool/bitcodec"
	"github.com/xdt99/hfetool/format"
)

// ParseOptions controls optional, non-default parser behavior.
type ParseOptions struct {
	// Strict recomputes the address and data CRC for every sector and
	// fails with an HfeError on mismatch instead of trusting the stream.
	// Off by default to preserve reference parity.
	Strict bool
}

func addressCRC(f *format.Format, trackID, sideID, sectorID byte) (addr []byte, crc uint16) {
	addr = []byte{trackID, sideID, sectorID, 0x01}
	input := append(append([]byte{}, f.DecodedAddressMark...), addr...)
	return addr, bitcodec.CRC16(0xffff, input)
}

func dataCRC(f *format.Format, payload []byte) uint16 {
	input := append(append([]byte{}, f.DecodedDataMark...), payload...)
	return bitcodec.CRC16(0xffff, input)
}

// AssembleTrack builds one physical track's encoded bitcell stream.
// slotSectorIDs[i] and slotPayloads[i] give the logical sector number and
// 256-byte payload written into physical rotational slot i; the caller
// (the container layer) is responsible for computing the interleaved slot
// order via f.Interleave. physicalTrackID is the track number recorded in
// each sector's address field, which for side 1 of a double-sided disk
// counts down from the highest track rather than up from 0.
func AssembleTrack(f *format.Format, physicalTrackID, sideID int, slotSectorIDs []int, slotPayloads [][]byte) ([]byte, error) {
	if len(slotSectorIDs) != f.Sectors || len(slotPayloads) != f.Sectors {
		return nil, fmt.Errorf("track: want %d sectors, got %d ids and %d payloads",
			f.Sectors, len(slotSectorIDs), len(slotPayloads))
	}

	var body []byte
	for i := 0; i < f.Sectors; i++ {
		payload := slotPayloads[i]
		if len(payload) != 256 {
			return nil, fmt.Errorf("track: sector payload must be 256 bytes, got %d", len(payload))
		}
		addr, crc1 := addressCRC(f, byte(physicalTrackID), byte(sideID), byte(slotSectorIDs[i]))
		addrField := append(addr, byte(crc1>>8), byte(crc1))

		crc2 := dataCRC(f, payload)
		dataField := append(append([]byte{}, payload...), byte(crc2>>8), byte(crc2))

		body = append(body, f.Pregap...)
		body = append(body, f.EncodedAddressMark...)
		body = append(body, f.Encode(addrField)...)
		body = append(body, f.Gap1...)
		body = append(body, f.EncodedDataMark...)
		body = append(body, f.Encode(dataField)...)
		body = append(body, f.Gap2...)
	}
	f.FixClocks(body)

	track := append(append([]byte{}, f.Leadin...), body...)
	track = append(track, f.Leadout...)

	if want := f.TrackLen * f.Factor; len(track) != want {
		return nil, fmt.Errorf("track: assembled length %d, want %d", len(track), want)
	}
	return track, nil
}

// ParseTrack decodes one physical track's encoded bitcell stream and
// returns its sector payloads keyed by logical sector id.
func ParseTrack(f *format.Format, encodedTrack []byte, opts ParseOptions) (map[int][]byte, error) {
	if want := f.TrackLen * f.Factor; len(encodedTrack) != want {
		return nil, fmt.Errorf("track: encoded length %d, want %d", len(encodedTrack), want)
	}
	decoded := f.Decode(encodedTrack)
	if len(decoded) != f.TrackLen {
		return nil, fmt.Errorf("track: decoded length %d, want %d", len(decoded), f.TrackLen)
	}

	pos := f.LvLeadin
	sectors := make(map[int][]byte, f.Sectors)
	for i := 0; i < f.Sectors; i++ {
		pos += f.LvPregap

		mark := decoded[pos : pos+len(f.DecodedAddressMark)]
		if !bytes.Equal(mark, f.DecodedAddressMark) {
			return nil, wrapHfeError("Parser assertion failed",
				fmt.Errorf("sector slot %d: address mark mismatch at offset %d", i, pos))
		}
		pos += len(f.DecodedAddressMark)

		addrField := decoded[pos : pos+6]
		pos += 6
		sectorID := int(addrField[2])

		if opts.Strict {
			_, want := addressCRC(f, addrField[0], addrField[1], addrField[2])
			got := uint16(addrField[4])<<8 | uint16(addrField[5])
			if want != got {
				return nil, wrapHfeError("address CRC mismatch",
					fmt.Errorf("sector %d: got %#04x want %#04x", sectorID, got, want))
			}
		}

		pos += f.LvGap1

		mark = decoded[pos : pos+len(f.DecodedDataMark)]
		if !bytes.Equal(mark, f.DecodedDataMark) {
			return nil, wrapHfeError("Parser assertion failed",
				fmt.Errorf("sector %d: data mark mismatch at offset %d", sectorID, pos))
		}
		pos += len(f.DecodedDataMark)

		dataField := decoded[pos : pos+258]
		pos += 258
		payload := append([]byte{}, dataField[:256]...)

		if opts.Strict {
			want := dataCRC(f, payload)
			got := uint16(dataField[256])<<8 | uint16(dataField[257])
			if want != got {
				return nil, wrapHfeError("data CRC mismatch",
					fmt.Errorf("sector %d: got %#04x want %#04x", sectorID, got, want))
			}
		}

		if _, dup := sectors[sectorID]; dup {
			return nil, wrapHfeError("Parser assertion failed",
				fmt.Errorf("duplicate sector id %d", sectorID))
		}
		sectors[sectorID] = payload

		pos += f.LvGap2
	}

	if pos != len(decoded)-f.LvLeadout {
		return nil, wrapHfeError("Parser assertion failed",
			fmt.Errorf("cursor at %d after last sector, expected %d before leadout", pos, len(decoded)-f.LvLeadout))
	}
	return sectors, nil
}
