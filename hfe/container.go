// Package hfe converts between TI-99 floppy sector images and HFE flux
// container images: header/LUT framing, side-interleaved track storage,
// and the track assembler/parser that sit on top of the bit codec and
// format descriptors in bitcodec and format.
package hfe

import (
	"fmt"

	"github.com/xdt99/hfetool/format"
)

// Geometry describes a disk's physical shape: track count, side count, and
// recording density. It's the only input SectorToHFE needs beyond the raw
// sector payload bytes.
type Geometry struct {
	Tracks  int
	Sides   int
	Density format.Density
}

func (g Geometry) validate() error {
	if g.Tracks != 40 && g.Tracks != 80 {
		return fmt.Errorf("invalid track count %d (want 40 or 80)", g.Tracks)
	}
	if g.Sides != 1 && g.Sides != 2 {
		return fmt.Errorf("invalid side count %d (want 1 or 2)", g.Sides)
	}
	if g.Density != format.SD && g.Density != format.DD {
		return fmt.Errorf("invalid density %v", g.Density)
	}
	return nil
}

func chunk(data []byte, size int) [][]byte {
	n := len(data) / size
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = data[i*size : i*size+size]
	}
	return out
}

func reversed(chunks [][]byte) [][]byte {
	out := make([][]byte, len(chunks))
	for i, c := range chunks {
		out[len(chunks)-1-i] = c
	}
	return out
}

// SectorToHFE encodes a flat sector image into an HFE image for the given
// geometry.
func SectorToHFE(sectorImage []byte, geo Geometry) ([]byte, error) {
	if err := geo.validate(); err != nil {
		return nil, wrapHfeError("Invalid track count", err)
	}
	f, err := format.ByDensity(geo.Density)
	if err != nil {
		return nil, err
	}
	wantLen := geo.Sides * geo.Tracks * f.Sectors * 256
	if len(sectorImage) != wantLen {
		return nil, wrapHfeError("Invalid track count",
			fmt.Errorf("sector image is %d bytes, want %d for %+v", len(sectorImage), wantLen, geo))
	}
	protected := len(sectorImage) > 0x10 && sectorImage[0x10] == 'P'

	is80t := geo.Tracks == 80
	sideTracks := make([][][]byte, geo.Sides)
	for s := 0; s < geo.Sides; s++ {
		sideTracks[s] = make([][]byte, geo.Tracks)
		for j := 0; j < geo.Tracks; j++ {
			physicalTrackID := j
			if s == 1 {
				physicalTrackID = geo.Tracks - 1 - j
			}

			slotSectorIDs := make([]int, f.Sectors)
			slotPayloads := make([][]byte, f.Sectors)
			for i := 0; i < f.Sectors; i++ {
				sectorID := f.Interleave(s, j, i, is80t)
				offset := ((s*geo.Tracks+j)*f.Sectors + sectorID) * 256
				slotSectorIDs[i] = sectorID
				slotPayloads[i] = sectorImage[offset : offset+256]
			}

			track, err := AssembleTrack(f, physicalTrackID, s, slotSectorIDs, slotPayloads)
			if err != nil {
				return nil, fmt.Errorf("track %d side %d: %w", j, s, err)
			}
			sideTracks[s][j] = track
		}
	}
	if geo.Sides == 2 {
		sideTracks[1] = reversed(sideTracks[1])
	}

	var side0, side1 []byte
	for _, t := range sideTracks[0] {
		side0 = append(side0, t...)
	}
	if geo.Sides == 2 {
		for _, t := range sideTracks[1] {
			side1 = append(side1, t...)
		}
	}

	header := buildHeader(geo.Tracks, geo.Sides, geo.Density, protected)
	lut := buildLUT(geo.Tracks, geo.Density)

	blocks0 := chunk(side0, blockSize)
	var blocks1 [][]byte
	if geo.Sides == 2 {
		blocks1 = chunk(side1, blockSize)
	}
	zeroBlock := make([]byte, blockSize)

	out := make([]byte, 0, len(header)+len(lut)+len(side0)*2)
	out = append(out, header...)
	out = append(out, lut...)
	for i, b0 := range blocks0 {
		out = append(out, b0...)
		if geo.Sides == 2 {
			out = append(out, blocks1[i]...)
		} else {
			out = append(out, zeroBlock...)
		}
	}
	return out, nil
}

// HFEToSector decodes an HFE image back into its flat sector image.
func HFEToSector(hfeImage []byte, opts ParseOptions) ([]byte, Geometry, error) {
	ph, err := parseHeader(hfeImage)
	if err != nil {
		return nil, Geometry{}, err
	}
	f, err := format.ByDensity(ph.Density)
	if err != nil {
		return nil, Geometry{}, err
	}
	geo := Geometry{Tracks: ph.Tracks, Sides: ph.Sides, Density: ph.Density}
	if err := geo.validate(); err != nil {
		return nil, Geometry{}, wrapHfeError("Invalid track count", err)
	}

	trackData := hfeImage[headerSize+lutSize:]
	blocks := chunk(trackData, blockSize)
	var blocks0, blocks1 [][]byte
	for i, b := range blocks {
		if i%2 == 0 {
			blocks0 = append(blocks0, b)
		} else if geo.Sides == 2 {
			blocks1 = append(blocks1, b)
		}
	}
	var side0, side1 []byte
	for _, b := range blocks0 {
		side0 = append(side0, b...)
	}
	for _, b := range blocks1 {
		side1 = append(side1, b...)
	}

	trackEncLen := f.TrackLen * f.Factor
	side0Tracks := chunk(side0, trackEncLen)
	var allTracks [][]byte
	allTracks = append(allTracks, side0Tracks...)
	if geo.Sides == 2 {
		side1Tracks := reversed(chunk(side1, trackEncLen))
		allTracks = append(allTracks, side1Tracks...)
	}

	wantTracks := geo.Sides * geo.Tracks
	if len(allTracks) != wantTracks {
		return nil, Geometry{}, wrapHfeError("Invalid track count",
			fmt.Errorf("found %d encoded tracks, want %d", len(allTracks), wantTracks))
	}

	sectorImage := make([]byte, 0, wantTracks*f.Sectors*256)
	for idx, track := range allTracks {
		sectorMap, err := ParseTrack(f, track, opts)
		if err != nil {
			return nil, Geometry{}, fmt.Errorf("track %d: %w", idx, err)
		}
		for sectorID := 0; sectorID < f.Sectors; sectorID++ {
			payload, ok := sectorMap[sectorID]
			if !ok {
				return nil, Geometry{}, wrapHfeError("Parser assertion failed",
					fmt.Errorf("track %d: missing sector %d", idx, sectorID))
			}
			sectorImage = append(sectorImage, payload...)
		}
	}
	return sectorImage, geo, nil
}

// Info is the set of fields HFEInfo reports: header metadata only, no
// track decoding.
type Info struct {
	Tracks        int
	Sides         int
	Encoding      string
	InterfaceMode int
}

// HFEInfo reports an HFE image's header fields without decoding any track
// data.
func HFEInfo(hfeImage []byte) (Info, error) {
	ph, err := parseHeader(hfeImage)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Tracks:        ph.Tracks,
		Sides:         ph.Sides,
		Encoding:      ph.Density.String(),
		InterfaceMode: int(ph.IfMode),
	}, nil
}

// HFERawDump decodes every track of an HFE image (post side-deinterleave,
// pre-parse) and returns the concatenated decoded byte stream, a
// diagnostic surface for inspecting tracks the parser rejects.
func HFERawDump(hfeImage []byte) ([]byte, error) {
	ph, err := parseHeader(hfeImage)
	if err != nil {
		return nil, err
	}
	f, err := format.ByDensity(ph.Density)
	if err != nil {
		return nil, err
	}
	geo := Geometry{Tracks: ph.Tracks, Sides: ph.Sides, Density: ph.Density}
	if err := geo.validate(); err != nil {
		return nil, wrapHfeError("Invalid track count", err)
	}

	trackData := hfeImage[headerSize+lutSize:]
	blocks := chunk(trackData, blockSize)
	var blocks0, blocks1 [][]byte
	for i, b := range blocks {
		if i%2 == 0 {
			blocks0 = append(blocks0, b)
		} else if geo.Sides == 2 {
			blocks1 = append(blocks1, b)
		}
	}
	var side0, side1 []byte
	for _, b := range blocks0 {
		side0 = append(side0, b...)
	}
	for _, b := range blocks1 {
		side1 = append(side1, b...)
	}

	out := append([]byte{}, f.Decode(side0)...)
	if geo.Sides == 2 {
		out = append(out, f.Decode(side1)...)
	}
	return out, nil
}

// InferGeometry reads the trailing metadata region (offsets 0x10-0x13) of
// a sector image and returns the geometry it describes. It returns an
// error, never a guessed zero value, when the image is too short to
// contain the region or the density byte is out of range.
func InferGeometry(sectorImage []byte) (Geometry, error) {
	if len(sectorImage) < 0x14 {
		return Geometry{}, fmt.Errorf("sector image too short (%d bytes) to contain geometry metadata", len(sectorImage))
	}
	tracks := int(sectorImage[0x11])
	sides := int(sectorImage[0x12])
	var density format.Density
	switch sectorImage[0x13] {
	case 1:
		density = format.SD
	case 2:
		density = format.DD
	default:
		return Geometry{}, fmt.Errorf("invalid density byte %#02x at offset 0x13", sectorImage[0x13])
	}
	geo := Geometry{Tracks: tracks, Sides: sides, Density: density}
	if err := geo.validate(); err != nil {
		return Geometry{}, fmt.Errorf("inferred geometry inconsistent: %w", err)
	}
	f, err := format.ByDensity(density)
	if err != nil {
		return Geometry{}, err
	}
	wantLen := geo.Sides * geo.Tracks * f.Sectors * 256
	if len(sectorImage) != wantLen {
		return Geometry{}, fmt.Errorf("inferred geometry %+v implies %d bytes, image is %d", geo, wantLen, len(sectorImage))
	}
	return geo, nil
}
