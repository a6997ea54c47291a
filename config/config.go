// Package config resolves named disk geometry presets from an embedded
// TOML default and an optional user override file, in the shape of the
// teacher's drive/image configuration: a `default` key plus a `[[preset]]`
// array, loaded once at startup into package-level state.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/xdt99/hfetool/format"
	"github.com/xdt99/hfetool/hfe"
)

//go:embed geometry.toml
var defaultConfigData []byte

// Global state for the resolved configuration.
var (
	DefaultPreset string
	Presets       map[string]Preset
)

// Config mirrors the on-disk TOML structure.
type Config struct {
	Default string   `toml:"default"`
	Preset  []Preset `toml:"preset"`
}

// Preset is a named (tracks, sides, density) triple, sugar over
// hfe.Geometry: it is never a second source of truth, just a convenient
// way to refer to a geometry by name from the CLI or from tests.
type Preset struct {
	Name    string `toml:"name"`
	Tracks  int    `toml:"tracks"`
	Sides   int    `toml:"sides"`
	Density string `toml:"density"`
}

// Geometry builds the hfe.Geometry this preset describes.
func (p Preset) Geometry() (hfe.Geometry, error) {
	d, err := format.ParseDensity(p.Density)
	if err != nil {
		return hfe.Geometry{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return hfe.Geometry{Tracks: p.Tracks, Sides: p.Sides, Density: d}, nil
}

// configPath determines the config file path based on the operating system:
// %AppData%/hfetool/geometry.toml on Windows, ~/.hfetool/geometry.toml
// elsewhere.
func configPath() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		return filepath.Join(dir, "hfetool", "geometry.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home directory: %w", err)
	}
	return filepath.Join(home, ".hfetool", "geometry.toml"), nil
}

// Initialize loads and validates the configuration file, creating it from
// the embedded default if it doesn't exist yet.
func Initialize() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}
	return load(conf)
}

// load validates a parsed Config and populates the package-level state.
func load(conf Config) error {
	if conf.Default == "" {
		return errors.New("`default` key is missing or empty in config")
	}

	presets := make(map[string]Preset, len(conf.Preset))
	for _, p := range conf.Preset {
		if p.Tracks != 40 && p.Tracks != 80 {
			return fmt.Errorf("preset %q has invalid tracks: %d (want 40 or 80)", p.Name, p.Tracks)
		}
		if p.Sides != 1 && p.Sides != 2 {
			return fmt.Errorf("preset %q has invalid sides: %d (want 1 or 2)", p.Name, p.Sides)
		}
		if _, err := format.ParseDensity(p.Density); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		presets[p.Name] = p
	}

	if _, ok := presets[conf.Default]; !ok {
		return fmt.Errorf("default preset %q not found in preset array", conf.Default)
	}

	DefaultPreset = conf.Default
	Presets = presets
	return nil
}

// Get looks up a preset by name.
func Get(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q not found in configuration", name)
	}
	return p, nil
}
