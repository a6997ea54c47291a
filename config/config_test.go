package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func decode(t *testing.T, data string) Config {
	t.Helper()
	var conf Config
	if _, err := toml.Decode(data, &conf); err != nil {
		t.Fatalf("toml.Decode: %v", err)
	}
	return conf
}

func TestLoadValidConfig(t *testing.T) {
	conf := decode(t, string(defaultConfigData))
	if err := load(conf); err != nil {
		t.Fatalf("load(embedded default): %v", err)
	}
	if DefaultPreset != "dd80x2" {
		t.Errorf("DefaultPreset = %q, want dd80x2", DefaultPreset)
	}
	p, err := Get("sd40x1")
	if err != nil {
		t.Fatalf("Get(sd40x1): %v", err)
	}
	geo, err := p.Geometry()
	if err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if geo.Tracks != 40 || geo.Sides != 1 {
		t.Errorf("Geometry() = %+v, want {Tracks:40 Sides:1 ...}", geo)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	conf := decode(t, `
[[preset]]
name = "x"
tracks = 40
sides = 1
density = "SD"
`)
	if err := load(conf); err == nil {
		t.Error("load with no default key: want error, got nil")
	}
}

func TestLoadDefaultNotFound(t *testing.T) {
	conf := decode(t, `
default = "missing"

[[preset]]
name = "x"
tracks = 40
sides = 1
density = "SD"
`)
	if err := load(conf); err == nil {
		t.Error("load with unresolvable default: want error, got nil")
	}
}

func TestLoadInvalidPresetFields(t *testing.T) {
	cases := []string{
		`default = "x"
[[preset]]
name = "x"
tracks = 60
sides = 1
density = "SD"`,
		`default = "x"
[[preset]]
name = "x"
tracks = 40
sides = 3
density = "SD"`,
		`default = "x"
[[preset]]
name = "x"
tracks = 40
sides = 1
density = "XX"`,
	}
	for _, c := range cases {
		if err := load(decode(t, c)); err == nil {
			t.Errorf("load(%q): want error, got nil", c)
		}
	}
}

func TestGetUnknownPreset(t *testing.T) {
	Presets = map[string]Preset{}
	if _, err := Get("nope"); err == nil {
		t.Error("Get(nope): want error, got nil")
	}
}
