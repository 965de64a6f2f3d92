// Package run implements the "snapmeans run" command.
package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/snapmeans"
	"github.com/hupe1980/snapmeans/codec"
	"github.com/hupe1980/snapmeans/dataset"
	"github.com/hupe1980/snapmeans/internal/config"
	prommetrics "github.com/hupe1980/snapmeans/metrics/prometheus"
	"github.com/hupe1980/snapmeans/report"
	"github.com/hupe1980/snapmeans/resource"
)

func Run(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	input := fs.String("input", "", "Dataset blob name, relative to the storage root (overrides config)")
	root := fs.String("root", "", "Local storage root (overrides config)")
	ks := fs.String("k", "", "Comma separated cluster counts, e.g. 3,5,10 (overrides config)")
	restarts := fs.Int("restarts", 0, "Runs per cluster count (overrides config)")
	seed := fs.Int64("seed", 0, "Base seed; restart i uses seed+i (overrides config)")
	workers := fs.Int("workers", 0, "Goroutines per run (overrides config)")
	normalize := fs.Bool("normalize", true, "Min-max normalize columns before clustering (overrides config)")
	reportPath := fs.String("report", "", "Report blob name, relative to the storage root (overrides config)")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus text metrics to this file (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Path = *input
		case "root":
			cfg.Storage.RootPath = *root
		case "k":
			parsed, err := config.ParseKs(*ks)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Clustering.Ks = parsed
		case "restarts":
			cfg.Clustering.Restarts = *restarts
		case "seed":
			cfg.Clustering.Seed = seed
		case "workers":
			cfg.Clustering.Workers = *workers
		case "normalize":
			cfg.Input.Normalize = *normalize
		case "report":
			cfg.Report.Path = *reportPath
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if cfg.Input.Path == "" {
		return errors.New("no input: set -input or input.path")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MaxConcurrentRuns:  cfg.Resources.MaxConcurrentRuns,
		MemoryLimitBytes:   cfg.Resources.MemoryLimitMB << 20,
		IOLimitBytesPerSec: cfg.Resources.IOLimitKBPerSec << 10,
	})

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	table, err := dataset.Open(ctx, store, cfg.Input.Path, dataset.LoadOptions{
		Delimiter:   cfg.Input.DelimiterRune(),
		Header:      cfg.Input.Header,
		SkipColumns: cfg.Input.SkipColumns,
		SkipIndices: cfg.Input.SkipIndices,
		Categories:  cfg.Input.Categories,
		Controller:  rc,
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "dataset loaded",
		"input", cfg.Input.Path,
		"records", len(table.Rows),
		"columns", strings.Join(table.Columns, ","),
	)

	data := [][]float64(table.Rows)
	if cfg.Input.Normalize {
		if data, err = snapmeans.Normalize(data); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	collector := prommetrics.New(reg)

	policy := snapmeans.EmptyClusterRetain
	if cfg.Clustering.EmptyClusters == "fail" {
		policy = snapmeans.EmptyClusterFail
	}

	sweepOpts := []snapmeans.SweepOption{
		snapmeans.WithController(rc),
		snapmeans.WithClusterOptions(
			snapmeans.WithThreshold(cfg.Clustering.Threshold),
			snapmeans.WithMaxIterations(cfg.Clustering.MaxIterations),
			snapmeans.WithWorkers(cfg.Clustering.Workers),
			snapmeans.WithEmptyClusterPolicy(policy),
			snapmeans.WithLogger(logger),
			snapmeans.WithMetricsCollector(collector),
		),
	}
	if cfg.Clustering.Seed != nil {
		sweepOpts = append(sweepOpts, snapmeans.WithBaseSeed(*cfg.Clustering.Seed))
	}

	results, err := snapmeans.Sweep(ctx, data, cfg.Clustering.Ks, cfg.Clustering.Restarts, sweepOpts...)
	if err != nil {
		return err
	}

	rep := report.FromSweep(data, results,
		report.WithInput(cfg.Input.Path),
		report.WithColumns(table.Columns),
	)
	if err := report.Text(stdout, rep); err != nil {
		return err
	}

	if cfg.Report.Path != "" {
		c, err := codec.ByName(cfg.Report.Codec)
		if err != nil {
			return err
		}
		if err := report.Write(ctx, store, cfg.Report.Path, c, rep); err != nil {
			return err
		}
		logger.InfoContext(ctx, "report written", "path", cfg.Report.Path, "codec", c.Name())
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (*snapmeans.Logger, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %s: %w", strconv.Quote(cfg.Level), err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return snapmeans.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return snapmeans.NewLogger(slog.NewTextHandler(w, opts)), nil
}
