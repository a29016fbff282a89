package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/open-dms/osmtools/internal/ctxlog"
	"github.com/open-dms/osmtools/internal/extract"
	"github.com/open-dms/osmtools/internal/filter"
	"github.com/open-dms/osmtools/internal/pbf"
	"github.com/open-dms/osmtools/internal/stats"
)

// Run executes the configured command. Only input and output I/O failures
// abort the run; malformed relations are reported and skipped inside the
// extraction loop.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	rules := filter.DefaultRules()
	if a.config.RulesPath != "" {
		var err error
		rules, err = filter.LoadRules(a.config.RulesPath)
		if err != nil {
			return err
		}
		a.logger.Debug("Filter rules loaded.", "path", a.config.RulesPath)
	}

	out, closeOut, err := a.output()
	if err != nil {
		return err
	}
	defer closeOut()

	if a.config.Command == CommandStats {
		return a.runStats(ctx, out, rules)
	}
	return a.runExtract(ctx, out, rules)
}

// runStats writes boundary-tag statistics for the input file.
func (a *App) runStats(ctx context.Context, out io.Writer, rules filter.Rules) error {
	a.logger.Info("Getting stats.", "in", a.config.InFile)

	keep := filter.Target(rules)
	if a.config.StatsAll {
		keep = filter.All
	}

	relations, err := pbf.LoadRelations(ctx, a.config.InFile, keep)
	if err != nil {
		return err
	}

	return stats.Write(out, relations)
}

// runExtract assembles boundary polygons and writes them in the configured
// format.
func (a *App) runExtract(ctx context.Context, out io.Writer, rules filter.Rules) error {
	a.logger.Info("Extracting localities.", "in", a.config.InFile, "format", a.config.Format)

	keep := filter.Target(rules)
	if a.config.Query != "" {
		keep = filter.And(keep, filter.ByQuery(a.config.Query))
	}

	dataset, err := pbf.Load(ctx, a.config.InFile, keep)
	if err != nil {
		return err
	}
	a.logger.Info("Input decoded.", "relations", len(dataset.Relations))

	extractor := extract.New(dataset, rules.RegionKey, a.config.Simplify)

	if a.config.Format == FormatRaw {
		return extractor.WriteRaw(ctx, out)
	}
	return extractor.WriteFeatures(ctx, out)
}

// output resolves the data output destination. The returned close func is a
// no-op when writing to the app's default writer.
func (a *App) output() (io.Writer, func(), error) {
	if a.config.OutFile == "" {
		return a.outW, func() {}, nil
	}

	f, err := os.Create(a.config.OutFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
