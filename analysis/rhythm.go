package analysis

// Rhythm descriptors derived from the onset-strength function: how strong
// the rhythmic events are (variance), how periodic they are (normalized
// autocorrelation peaks), how frequent they are (onset density), and a
// Gaussian beat histogram around the resolved tempo.

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RhythmStrength returns the population variance of the onset function.
func RhythmStrength(onsets []float64) float64 {
	if len(onsets) == 0 {
		return 0
	}

	mean := stat.Mean(onsets, nil)
	var variance float64
	for _, v := range onsets {
		diff := v - mean
		variance += diff * diff
	}
	return variance / float64(len(onsets))
}

// autocorrelate computes sum(x[i] * x[i+lag]) for each lag in [0, maxLag].
func autocorrelate(x []float64, maxLag int) []float64 {
	if maxLag >= len(x) {
		maxLag = len(x) - 1
	}
	if maxLag < 0 {
		return nil
	}

	ac := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < len(x); i++ {
			sum += x[i] * x[i+lag]
		}
		ac[lag] = sum
	}
	return ac
}

// RhythmRegularity measures how periodic the onset function is. The
// autocorrelation over lags 0..len/3 is normalized by its lag-0 value and
// the regularity is the mean normalized value at the interior local
// maxima. No maxima, or a zero lag-0 value, yields 0.
func RhythmRegularity(onsets []float64) float64 {
	if len(onsets) < 3 {
		return 0
	}

	ac := autocorrelate(onsets, len(onsets)/3)
	if len(ac) < 3 || ac[0] == 0 {
		return 0
	}

	var peakSum float64
	var peakCount int
	for i := 1; i < len(ac)-1; i++ {
		if ac[i] > ac[i-1] && ac[i] > ac[i+1] {
			peakSum += ac[i] / ac[0]
			peakCount++
		}
	}

	if peakCount == 0 {
		return 0
	}
	return peakSum / float64(peakCount)
}

// OnsetDensity counts interior local maxima of the onset function that
// exceed 1.5x its mean, per second of framed audio. Duration is
// frameCount * hopSize / sampleRate.
func OnsetDensity(onsets []float64, hopSize, sampleRate int) float64 {
	if len(onsets) < 3 || hopSize <= 0 || sampleRate <= 0 {
		return 0
	}

	threshold := 1.5 * stat.Mean(onsets, nil)

	var count int
	for i := 1; i < len(onsets)-1; i++ {
		if onsets[i] > threshold && onsets[i] > onsets[i-1] && onsets[i] > onsets[i+1] {
			count++
		}
	}

	duration := float64(len(onsets)) * float64(hopSize) / float64(sampleRate)
	if duration <= 0 {
		return 0
	}
	return float64(count) / duration
}

// BeatHistogram returns HistogramBins values, one per integer BPM starting
// at HistogramMinBPM, as a Gaussian centered on the resolved track tempo:
// exp(-(bpm - center)^2 / 100).
func BeatHistogram(resolvedBPM float64) []float64 {
	histogram := make([]float64, HistogramBins)
	for i := range histogram {
		center := float64(HistogramMinBPM + i)
		diff := resolvedBPM - center
		histogram[i] = math.Exp(-(diff * diff) / 100.0)
	}
	return histogram
}
