package app

import (
	"errors"
	"fmt"
)

// Commands understood by the application.
const (
	CommandExtract = ""
	CommandStats   = "stats"
)

// Output formats for the extract command.
const (
	FormatGeoJSON = "geojson"
	FormatRaw     = "raw"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InFile  string // PBF file to read
	OutFile string // output path; empty means stdout
	Format  string // geojson or raw

	Query     string  // optional name filter, substring or regex
	RulesPath string  // optional HCL rules file overriding the target filter
	Simplify  float64 // Douglas-Peucker tolerance in degrees; 0 disables

	Command  string // CommandExtract or CommandStats
	StatsAll bool   // stats: include all relations, not only targets

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InFile == "" {
		return nil, errors.New("InFile is a required configuration field and cannot be empty")
	}

	switch cfg.Format {
	case FormatGeoJSON, FormatRaw:
	default:
		return nil, fmt.Errorf("invalid format %q: must be %q or %q", cfg.Format, FormatGeoJSON, FormatRaw)
	}

	switch cfg.Command {
	case CommandExtract, CommandStats:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Simplify < 0 {
		return nil, errors.New("simplify tolerance cannot be negative")
	}

	return &cfg, nil
}
