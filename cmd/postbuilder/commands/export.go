package commands

import (
	"context"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postbuilder/internal/export"
	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Output          string `short:"o" help:"Output directory (overrides output.directory)"`
	Workers         int    `help:"Concurrent renders (overrides output.workers)"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics to this file when done"`
}

func (e *ExportCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}

	outDir := cfg.Output.Directory
	if e.Output != "" {
		outDir = e.Output
	}
	workers := cfg.Output.Workers
	if e.Workers > 0 {
		workers = e.Workers
	}

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	store := NewStore(cfg, g.Logger, recorder)

	report, exportErr := export.New(store,
		export.WithWorkers(workers),
		export.WithRecorder(recorder),
		export.WithLogger(g.Logger),
	).Export(ctx, outDir)

	if e.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(e.MetricsTextfile, reg); err != nil {
			g.Logger.Warn("Failed to write metrics textfile",
				logfields.Path(e.MetricsTextfile),
				logfields.Error(err))
			if exportErr == nil {
				return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
					WithContext("path", e.MetricsTextfile).
					Build()
			}
		}
	}
	if exportErr != nil {
		return exportErr
	}

	_, err = fmt.Fprintf(g.out(), "Exported %d posts to %s (build %s)\n", report.Posts, report.OutputDir, report.BuildID)
	return err
}
