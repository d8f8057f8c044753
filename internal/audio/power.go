package audio

import (
	"fmt"
	"math"

	"github.com/mariorollojr/power-density-variables/internal/types"
)

// DefaultIntervalSeconds is the window duration used when none is configured.
const DefaultIntervalSeconds = 30.0

// powerAccumulator holds running sums for one window of normalized samples.
type powerAccumulator struct {
	sumSquares float64
	peak       float64
	count      int
}

// add accumulates the squared value of each sample.
func (a *powerAccumulator) add(samples []float64) {
	for _, s := range samples {
		p := s * s
		a.sumSquares += p
		if p > a.peak {
			a.peak = p
		}
		a.count++
	}
}

// result returns the average and peak power of the accumulated samples.
// Rounding in the sum can put a constant window's mean a hair above its peak, so it is clamped.
func (a *powerAccumulator) result() (average, peak float64) {
	if a.count == 0 {
		return 0, 0
	}
	return min(a.sumSquares/float64(a.count), a.peak), a.peak
}

// reset clears the accumulator for the next window.
func (a *powerAccumulator) reset() {
	*a = powerAccumulator{}
}

// WindowLength returns the number of samples in a window of intervalSeconds at sampleRate.
func WindowLength(sampleRate int, intervalSeconds float64) (int, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d Hz", ErrInvalidInterval, sampleRate)
	}
	if math.IsNaN(intervalSeconds) || math.IsInf(intervalSeconds, 0) || intervalSeconds <= 0 {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidInterval, intervalSeconds)
	}

	n := math.Floor(intervalSeconds * float64(sampleRate))
	if n < 1 {
		return 0, fmt.Errorf("%w: %v seconds is shorter than one sample at %d Hz", ErrInvalidInterval, intervalSeconds, sampleRate)
	}
	if n >= math.MaxInt {
		return math.MaxInt, nil
	}
	return int(n), nil
}

// AnalyzeWindowed splits samples into consecutive windows of intervalSeconds and
// returns the average and peak power of each. The last window holds the remainder.
// An empty signal yields no windows.
func AnalyzeWindowed(samples []float64, sampleRate int, intervalSeconds float64) ([]types.PowerWindow, error) {
	size, err := WindowLength(sampleRate, intervalSeconds)
	if err != nil {
		return nil, err
	}
	return analyzeWindows(samples, size), nil
}

func analyzeWindows(samples []float64, size int) []types.PowerWindow {
	count := len(samples) / size
	if len(samples)%size != 0 {
		count++
	}

	windows := make([]types.PowerWindow, 0, count)
	var acc powerAccumulator
	for i := range count {
		start := i * size
		end := min(start+size, len(samples))

		acc.reset()
		acc.add(samples[start:end])
		avg, peak := acc.result()

		windows = append(windows, types.PowerWindow{
			Index:        i,
			AveragePower: avg,
			PeakPower:    peak,
		})
	}

	return windows
}

// AnalyzeWhole returns the average and peak power over the entire signal.
func AnalyzeWhole(samples []float64) (average, peak float64, err error) {
	if len(samples) == 0 {
		return 0, 0, ErrEmptySignal
	}

	var acc powerAccumulator
	acc.add(samples)
	average, peak = acc.result()
	return average, peak, nil
}
