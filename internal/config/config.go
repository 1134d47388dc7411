// Package config loads run settings from an optional TOML file. Flags layered
// on top by the caller win over the file; the file wins over defaults.
// Database credentials deliberately do not live here, they come from the
// environment so config files stay shareable.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"rrcpermits/internal/daf420"
)

// Config is a fully resolved run configuration.
type Config struct {
	Input     string // DAF420 export to process
	Previous  string // older export to diff against, optional
	OutputDir string

	AOI      bool // emit imagery areas of interest
	AOIBoxFt float64

	Database bool // load the parse into Oracle
}

// Default returns the settings a bare run starts from.
func Default() Config {
	return Config{
		OutputDir: "data/rrc_output",
		AOIBoxFt:  500,
	}
}

type fileConfig struct {
	Input        string  `toml:"input"`
	Previous     string  `toml:"previous"`
	OutputDir    string  `toml:"output_dir"`
	AOI          bool    `toml:"aoi"`
	AOIBoxFt     float64 `toml:"aoi_box_ft"`
	Database     bool    `toml:"database"`
	RecordLength int     `toml:"record_length"`
}

// Load reads path over the defaults. Only keys actually present in the file
// override anything, so a sparse file works fine.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undec[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("previous") {
		cfg.Previous = strings.TrimSpace(raw.Previous)
	}
	if meta.IsDefined("output_dir") {
		if dir := strings.TrimSpace(raw.OutputDir); dir != "" {
			cfg.OutputDir = dir
		}
	}
	if meta.IsDefined("aoi") {
		cfg.AOI = raw.AOI
	}
	if meta.IsDefined("aoi_box_ft") {
		if raw.AOIBoxFt <= 0 {
			return Config{}, fmt.Errorf("load config: aoi_box_ft must be positive, got %v", raw.AOIBoxFt)
		}
		cfg.AOIBoxFt = raw.AOIBoxFt
	}
	if meta.IsDefined("database") {
		cfg.Database = raw.Database
	}
	// The layout registry is written against one record length; a file asking
	// for another one would decode garbage, so refuse it outright.
	if meta.IsDefined("record_length") && raw.RecordLength != daf420.RecordLength {
		return Config{}, fmt.Errorf("load config: record_length %d unsupported, layouts assume %d",
			raw.RecordLength, daf420.RecordLength)
	}

	return cfg, nil
}
