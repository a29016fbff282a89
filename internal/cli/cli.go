// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/open-dms/osmtools/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// A leading "stats" argument selects the statistics command.
	command := app.CommandExtract
	if len(args) > 0 && args[0] == app.CommandStats {
		command = app.CommandStats
		args = args[1:]
	}

	flagSet := flag.NewFlagSet("osmtools", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
osmtools - extracts administrative boundary polygons from OSM PBF files.

Usage:
  osmtools [options]          Extract boundary polygons.
  osmtools stats [options]    Report boundary statistics for the input file.

Options:
`)
		flagSet.PrintDefaults()
	}

	inFlag := flagSet.String("in", "", "PBF file to read.")
	iFlag := flagSet.String("i", "", "PBF file to read (shorthand).")
	outFlag := flagSet.String("out", "", "Path to output file. If unspecified output is written to stdout.")
	formatFlag := flagSet.String("format", "geojson", "Output format. Options: 'geojson' or 'raw'.")
	queryFlag := flagSet.String("query", "", "Only extract relations with matching name. (Sub)string or pattern allowed.")
	rulesFlag := flagSet.String("rules", "", "Path to an HCL file overriding the boundary filter rules.")
	simplifyFlag := flagSet.Float64("simplify", 0, "Douglas-Peucker simplification tolerance in degrees. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var allFlag *bool
	if command == app.CommandStats {
		allFlag = flagSet.Bool("all", false, "Show stats for all relations, using minimal filters.")
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	in := *inFlag
	if in == "" {
		in = *iFlag
	}
	if in == "" && flagSet.NArg() > 0 {
		in = flagSet.Arg(0)
	}

	if in == "" {
		slog.Debug("No input file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if command == app.CommandStats && *queryFlag != "" {
		return nil, false, &ExitError{Code: 2, Message: "sorry, '-query' is not implemented for stats yet"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InFile:    in,
		OutFile:   *outFlag,
		Format:    strings.ToLower(*formatFlag),
		Query:     *queryFlag,
		RulesPath: *rulesFlag,
		Simplify:  *simplifyFlag,
		Command:   command,
		StatsAll:  allFlag != nil && *allFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
