// Package metrics records batch run statistics and exports them in the Prometheus text format,
// suitable for the node_exporter textfile collector.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mariorollojr/power-density-variables/internal/types"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

const namespace = "power_density"

// File status label values.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Batch holds the collectors for one batch run.
type Batch struct {
	registry    *prometheus.Registry
	files       *prometheus.CounterVec
	windows     prometheus.Counter
	fileSeconds prometheus.Histogram
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewBatch creates a Batch with its own registry.
func NewBatch() *Batch {
	b := &Batch{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Audio files processed, by outcome.",
		}, []string{"status"}),
		windows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Analysis windows written to the report.",
		}),
		fileSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent decoding and analyzing one file.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of the last batch run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_last_run_timestamp_seconds",
			Help:      "Unix time the last batch run finished.",
		}),
	}

	b.registry.MustRegister(b.files, b.windows, b.fileSeconds, b.duration, b.lastRun)
	return b
}

// Observe records the outcome of a finished batch.
func (b *Batch) Observe(s *types.Summary) {
	for _, r := range s.Results {
		b.files.WithLabelValues(status(r)).Inc()
		if r.Elapsed > 0 {
			b.fileSeconds.Observe(r.Elapsed.Seconds())
		}
	}
	b.windows.Add(float64(s.Windows()))
	b.duration.Set(s.Elapsed().Seconds())
	b.lastRun.Set(float64(s.Finished.Unix()))
}

// WriteTextfile writes all collected metrics to path atomically.
func (b *Batch) WriteTextfile(path string) error {
	return util.WrapError("write metrics", prometheus.WriteToTextfile(path, b.registry))
}

func status(r types.FileResult) string {
	switch {
	case r.OK():
		return StatusOK
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusFailed
	}
}
