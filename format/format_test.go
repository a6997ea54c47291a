package format

import "testing"

func TestByDensity(t *testing.T) {
	sd, err := ByDensity(SD)
	if err != nil || sd.Sectors != 9 || sd.TrackLen != 3136 {
		t.Fatalf("ByDensity(SD) = %+v, err %v", sd, err)
	}
	dd, err := ByDensity(DD)
	if err != nil || dd.Sectors != 18 || dd.TrackLen != 6272 {
		t.Fatalf("ByDensity(DD) = %+v, err %v", dd, err)
	}
	if _, err := ByDensity(Density(0)); err == nil {
		t.Error("ByDensity(0) = nil error, want error")
	}
}

func TestParseDensity(t *testing.T) {
	if d, err := ParseDensity("SD"); err != nil || d != SD {
		t.Errorf("ParseDensity(SD) = %v, %v", d, err)
	}
	if d, err := ParseDensity("DD"); err != nil || d != DD {
		t.Errorf("ParseDensity(DD) = %v, %v", d, err)
	}
	if _, err := ParseDensity("XX"); err == nil {
		t.Error("ParseDensity(XX) = nil error, want error")
	}
}

func TestSDInterleaveStandard(t *testing.T) {
	for track := 0; track < 3; track++ {
		seen := map[int]bool{}
		for slot := 0; slot < 9; slot++ {
			sector := interleaveSD(0, track, slot, false)
			if sector < 0 || sector > 8 {
				t.Fatalf("interleaveSD(0,%d,%d,false) = %d out of range", track, slot, sector)
			}
			if seen[sector] {
				t.Errorf("track %d: sector %d assigned twice", track, sector)
			}
			seen[sector] = true
		}
	}
}

func TestSDInterleaveWTF80Track(t *testing.T) {
	// side 1, track 10 (<37), 80-track media: wtf table applies.
	got := interleaveSD(1, 10, 0, true)
	want := sectorInterleaveWTF[(10*9+0)%27]
	if got != want {
		t.Errorf("interleaveSD(1,10,0,true) = %d, want %d", got, want)
	}

	// side 1, track 40 (>=37), 80-track media: standard table, shifted index.
	got = interleaveSD(1, 40, 0, true)
	want = sectorInterleave[((40-37)*9+0)%27]
	if got != want {
		t.Errorf("interleaveSD(1,40,0,true) = %d, want %d", got, want)
	}
}

func TestSDInterleaveNot80Track(t *testing.T) {
	// side 1 of a 40-track disk never uses the wtf table.
	got := interleaveSD(1, 10, 3, false)
	want := sectorInterleave[(10*9+3)%27]
	if got != want {
		t.Errorf("interleaveSD(1,10,3,false) = %d, want %d", got, want)
	}
}

func TestDDInterleave(t *testing.T) {
	seen := map[int]bool{}
	for slot := 0; slot < 18; slot++ {
		sector := interleaveDD(0, 0, slot, false)
		want := (slot * 11) % 18
		if sector != want {
			t.Errorf("interleaveDD(slot=%d) = %d, want %d", slot, sector, want)
		}
		if seen[sector] {
			t.Errorf("slot %d: sector %d assigned twice", slot, sector)
		}
		seen[sector] = true
	}
}

func TestFormatFillerLengthsMatchDecodedLengths(t *testing.T) {
	for _, f := range []*Format{sdFormat, ddFormat} {
		checks := []struct {
			name    string
			encoded []byte
			decoded int
		}{
			{"leadin", f.Leadin, f.LvLeadin},
			{"pregap", f.Pregap, f.LvPregap},
			{"gap1", f.Gap1, f.LvGap1},
			{"gap2", f.Gap2, f.LvGap2},
			{"leadout", f.Leadout, f.LvLeadout},
		}
		for _, c := range checks {
			if len(c.encoded) != c.decoded*f.Factor {
				t.Errorf("%s %s: len(encoded)=%d, want %d*%d=%d",
					f.Density, c.name, len(c.encoded), c.decoded, f.Factor, c.decoded*f.Factor)
			}
		}
	}
}
