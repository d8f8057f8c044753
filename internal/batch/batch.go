// Package batch analyzes a set of audio files concurrently and collects per-file results.
package batch

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mariorollojr/power-density-variables/internal/audio"
	"github.com/mariorollojr/power-density-variables/internal/types"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

// Options controls a batch run.
type Options struct {
	IntervalSeconds float64
	ChannelMode     audio.ChannelMode
	Workers         int          // <= 0 selects runtime.NumCPU()
	Logger          *slog.Logger // nil selects slog.Default()
}

// withDefaults returns a copy of o with zero fields filled in.
func (o Options) withDefaults() Options {
	o.IntervalSeconds = cmp.Or(o.IntervalSeconds, audio.DefaultIntervalSeconds)
	o.ChannelMode = cmp.Or(o.ChannelMode, audio.ChannelFirst)
	o.Logger = cmp.Or(o.Logger, slog.Default())
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Discover lists the files in dir whose names end in ext, compared case-insensitively.
// Subdirectories are not searched. Paths are returned in name order.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, util.WrapError("read input directory", err)
	}

	ext = strings.ToLower(ext)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// AnalyzeFile decodes the file at path and computes its windowed and whole-file power.
func AnalyzeFile(path string, intervalSeconds float64, mode audio.ChannelMode) (*types.FileAnalysisResult, error) {
	sig, err := audio.DecodeFile(path, mode)
	if err != nil {
		return nil, err
	}

	windows, err := audio.AnalyzeWindowed(sig.Samples, sig.SampleRate, intervalSeconds)
	if err != nil {
		return nil, err
	}

	result := &types.FileAnalysisResult{
		File:     filepath.Base(path),
		Duration: sig.Duration(),
		Windows:  windows,
	}
	if len(sig.Samples) > 0 {
		if result.AveragePower, result.PeakPower, err = audio.AnalyzeWhole(sig.Samples); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Run analyzes files with a bounded pool of workers. A failing file is recorded in its
// result and never stops the others. Cancelling ctx stops new files from starting;
// files that never ran carry the context error. Results keep the order of files.
func Run(ctx context.Context, files []string, opts Options) *types.Summary {
	opts = opts.withDefaults()

	summary := &types.Summary{
		Results: make([]types.FileResult, len(files)),
		Started: time.Now(),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(opts.Workers, len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				summary.Results[i] = processFile(ctx, files[i], opts)
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			for j := i; j < len(files); j++ {
				summary.Results[j] = types.FileResult{Path: files[j], Err: ctx.Err()}
			}
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	summary.Finished = time.Now()
	return summary
}

// processFile analyzes one file, converting a panic into a per-file error.
func processFile(ctx context.Context, path string, opts Options) (res types.FileResult) {
	res.Path = path
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Analysis = nil
			res.Err = fmt.Errorf("panic while analyzing: %v", p)
			opts.Logger.Error("file analysis panicked", "file", path, "panic", p)
		}
		res.Elapsed = time.Since(start)
	}()

	analysis, err := AnalyzeFile(path, opts.IntervalSeconds, opts.ChannelMode)
	if err != nil {
		opts.Logger.Warn("file analysis failed", "file", path, "error", err)
		res.Err = err
		return res
	}

	opts.Logger.Info("file analyzed",
		"file", path,
		"duration", analysis.Duration,
		"windows", len(analysis.Windows),
		"average_power", analysis.AveragePower,
		"peak_power", analysis.PeakPower,
	)
	res.Analysis = analysis
	return res
}
