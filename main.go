// Package main implements a batch analyzer that computes per-interval average and peak power
// density for every WAV file in a directory and writes the results to a CSV report.
//
// Usage:
//
//	power-density [-config config.json] [-input dir] [-output report.csv] [-interval 30]
//
// Flags override values read from the config file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/mariorollojr/power-density-variables/internal/batch"
	"github.com/mariorollojr/power-density-variables/internal/config"
	"github.com/mariorollojr/power-density-variables/internal/metrics"
	"github.com/mariorollojr/power-density-variables/internal/report"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

// Exit codes.
const (
	exitOK          = 0
	exitFatal       = 1
	exitFileFailure = 2
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file (optional)")
	input := flag.String("input", "", "Directory containing audio files (default \".\")")
	output := flag.String("output", "", "Path of the CSV report (default \""+config.DefaultOutputPath+"\")")
	interval := flag.Float64("interval", 0, "Window duration in seconds (default 30)")
	ext := flag.String("ext", "", "File name suffix to analyze (default \""+config.DefaultExtension+"\")")
	workers := flag.Int("workers", 0, "Files analyzed concurrently (default: number of CPUs)")
	channelMode := flag.String("channel-mode", "", "Stereo reduction: first or mix (default first)")
	metricsPath := flag.String("metrics", "", "Write Prometheus textfile metrics to this path")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if *showVersion {
		slog.Info("version info", "version", displayVersion(Version), "commit", Commit, "build_time", BuildTime)
		return
	}

	cfg := config.New(*configPath)
	if err := cfg.Load(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitFatal)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputDirectory = *input
		case "output":
			cfg.OutputPath = *output
		case "interval":
			cfg.IntervalSeconds = *interval
		case "ext":
			cfg.Extension = *ext
		case "workers":
			cfg.Workers = *workers
		case "channel-mode":
			cfg.ChannelMode = *channelMode
		case "metrics":
			cfg.MetricsPath = *metricsPath
		}
	})

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(exitFatal)
	}

	ctx, stop := signal.NotifyContext(context.Background(), util.ShutdownSignals()...)
	code := run(ctx, cfg, slog.Default())
	stop()
	os.Exit(code)
}

// run analyzes the configured directory and writes the report. It returns the process exit code.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	logger = logger.With("run_id", uuid.New().String())

	files, err := batch.Discover(cfg.InputDirectory, cfg.Extension)
	if err != nil {
		logger.Error("failed to list input files", "error", err)
		return exitFatal
	}

	logger.Info("starting batch",
		"input", cfg.InputDirectory,
		"files", len(files),
		"interval_seconds", cfg.IntervalSeconds,
		"channel_mode", cfg.Mode(),
		"workers", cfg.WorkerCount(),
	)

	summary := batch.Run(ctx, files, batch.Options{
		IntervalSeconds: cfg.IntervalSeconds,
		ChannelMode:     cfg.Mode(),
		Workers:         cfg.WorkerCount(),
		Logger:          logger,
	})

	// A partial report is still written when the run is interrupted.
	if err := report.WriteFile(cfg.OutputPath, summary.Results); err != nil {
		logger.Error("failed to write report", "path", cfg.OutputPath, "error", err)
		return exitFatal
	}

	if cfg.MetricsPath != "" {
		m := metrics.NewBatch()
		m.Observe(summary)
		if err := m.WriteTextfile(cfg.MetricsPath); err != nil {
			logger.Warn("failed to write metrics", "path", cfg.MetricsPath, "error", err)
		}
	}

	failed := len(summary.Failed())
	logger.Info("batch complete",
		"succeeded", summary.Succeeded(),
		"failed", failed,
		"windows", summary.Windows(),
		"report", cfg.OutputPath,
		"elapsed", summary.Elapsed(),
	)

	switch {
	case ctx.Err() != nil:
		logger.Warn("batch interrupted", "error", ctx.Err())
		return exitFatal
	case failed > 0:
		logger.Debug("failed files", "error", summary.Err())
		return exitFileFailure
	default:
		return exitOK
	}
}
