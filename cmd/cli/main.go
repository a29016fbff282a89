package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/open-dms/osmtools/internal/app"
	"github.com/open-dms/osmtools/internal/cli"
)

// main is the entrypoint for the osmtools application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Data output goes to outW, logs and diagnostics to errW.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	osmtoolsApp := app.NewApp(outW, errW, appConfig)

	return osmtoolsApp.Run(context.Background())
}
