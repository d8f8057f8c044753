// Package types provides shared type definitions used across the analyzer.
package types

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Metadata describes a PCM container as read from its header.
type Metadata struct {
	Channels    int // Interleaved channel count
	SampleWidth int // Bytes per sample (1-4)
	SampleRate  int // Frames per second
	Frames      int // Whole frames in the data chunk
}

// Duration returns the playing time described by the header.
func (m Metadata) Duration() time.Duration {
	if m.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(m.Frames) / float64(m.SampleRate) * float64(time.Second))
}

// PowerWindow holds the power statistics of one analysis window.
type PowerWindow struct {
	Index        int     // 0-based, chronological
	AveragePower float64 // Mean of squared samples
	PeakPower    float64 // Max of squared samples
}

// FileAnalysisResult is the windowed analysis of a single file.
type FileAnalysisResult struct {
	File     string
	Duration time.Duration // Playing time of the decoded signal
	Windows  []PowerWindow

	// Whole-file statistics over the same signal.
	AveragePower float64
	PeakPower    float64
}

// FileResult is the outcome of processing one file in a batch: either Analysis or Err is set.
type FileResult struct {
	Path     string
	Analysis *FileAnalysisResult
	Err      error
	Elapsed  time.Duration // Zero if the file never started
}

// OK reports whether the file was analyzed successfully.
func (r *FileResult) OK() bool {
	return r.Err == nil && r.Analysis != nil
}

// Summary collects the per-file results of a batch run in input order.
type Summary struct {
	Results  []FileResult
	Started  time.Time
	Finished time.Time
}

// Succeeded returns the number of successfully analyzed files.
func (s *Summary) Succeeded() int {
	n := 0
	for i := range s.Results {
		if s.Results[i].OK() {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (s *Summary) Failed() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Windows returns the total number of windows across all successful files.
func (s *Summary) Windows() int {
	n := 0
	for i := range s.Results {
		if s.Results[i].OK() {
			n += len(s.Results[i].Analysis.Windows)
		}
	}
	return n
}

// Elapsed returns how long the batch ran.
func (s *Summary) Elapsed() time.Duration {
	return s.Finished.Sub(s.Started)
}

// Err combines the per-file failures into a single error, or nil if every file succeeded.
func (s *Summary) Err() error {
	var err error
	for _, r := range s.Results {
		if r.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return err
}
