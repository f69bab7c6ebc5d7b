package analysis

// Time-Domain Feature Extraction
//
// This file computes the scalar and array features of the descriptor
// directly from the sample buffer:
//
// Temporal Features:
//   - RMS Energy: root mean square amplitude over the whole buffer
//   - Zero Crossing Rate: fraction of consecutive sample pairs changing sign
//   - Energy Envelope: 1000 equal windows, mean absolute amplitude per window
//   - Waveform Preview: peak-amplitude downsample capped at 10000 points
//
// Proxy Features (NOT transform-based):
//   - Band presence (bass/mid/high) is derived from the zero-crossing rate
//     alone, not a filter bank
//   - Spectral centroid/rolloff are linear rescalings of the zero-crossing
//     rate; flux is the mean absolute sample delta; flatness is a constant
//
// The proxy formulas are a deliberate low-cost stand-in for frequency-domain
// analysis. Downstream prompt text and stored tag semantics depend on these
// exact definitions, so they must not be swapped for a genuine transform
// under the same field names.

import (
	"math"
)

// Proxy scale factors mapping zero-crossing rate onto pseudo-Hz values.
const (
	centroidScale = 10000.0
	rolloffScale  = 15000.0
	flatnessConst = 0.5
)

// RMSEnergy returns sqrt(mean(sample^2)) over the whole buffer.
func RMSEnergy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// ZeroCrossingRate returns the count of sign changes between consecutive
// samples divided by the sample count.
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) <= 1 {
		return 0
	}
	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i] >= 0 && samples[i-1] < 0) || (samples[i] < 0 && samples[i-1] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples))
}

// EnergyEnvelope partitions the buffer into exactly EnvelopeBins windows
// and returns the mean absolute amplitude per window. The last window
// absorbs any remainder. Buffers shorter than EnvelopeBins still yield
// EnvelopeBins values; windows with no samples are zero.
func EnergyEnvelope(samples []float64) []float64 {
	envelope := make([]float64, EnvelopeBins)
	if len(samples) == 0 {
		return envelope
	}

	windowSize := len(samples) / EnvelopeBins
	for i := 0; i < EnvelopeBins; i++ {
		start := i * windowSize
		end := start + windowSize
		if i == EnvelopeBins-1 {
			end = len(samples)
		}
		if end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			continue
		}

		var sum float64
		for j := start; j < end; j++ {
			sum += math.Abs(samples[j])
		}
		envelope[i] = sum / float64(end-start)
	}

	return envelope
}

// BandPresence derives bass/mid/high presence proxies from the
// zero-crossing rate alone. Each value is clamped to [0, 1].
func BandPresence(zcr float64) (bass, mid, high float64) {
	bass = clamp01(1 - zcr*5)
	mid = clamp01(1 - math.Abs(zcr*10-1))
	high = clamp01(zcr * 5)
	return bass, mid, high
}

// SpectralProxies computes the centroid/rolloff/flux/flatness stand-ins.
// Centroid and rolloff rescale the zero-crossing rate; flux is the mean
// absolute sample-to-sample delta; flatness is constant.
func SpectralProxies(samples []float64, zcr float64) (centroid, flux, rolloff, flatness float64) {
	centroid = zcr * centroidScale
	rolloff = zcr * rolloffScale
	flatness = flatnessConst

	if len(samples) > 1 {
		var sum float64
		for i := 1; i < len(samples); i++ {
			sum += math.Abs(samples[i] - samples[i-1])
		}
		flux = sum / float64(len(samples)-1)
	}

	return centroid, flux, rolloff, flatness
}

// WaveformPreview downsamples the buffer to at most WaveformMaxPoints
// points of peak absolute amplitude per bucket. Short buffers map one
// sample per point, still as absolute amplitude, so both branches carry
// the same non-negative envelope semantic.
func WaveformPreview(samples []float64) []float64 {
	if len(samples) == 0 {
		return []float64{}
	}
	if len(samples) <= WaveformMaxPoints {
		preview := make([]float64, len(samples))
		for i, s := range samples {
			preview[i] = math.Abs(s)
		}
		return preview
	}

	preview := make([]float64, WaveformMaxPoints)
	for i := 0; i < WaveformMaxPoints; i++ {
		start := i * len(samples) / WaveformMaxPoints
		end := (i + 1) * len(samples) / WaveformMaxPoints
		if end > len(samples) {
			end = len(samples)
		}

		var peak float64
		for j := start; j < end; j++ {
			if abs := math.Abs(samples[j]); abs > peak {
				peak = abs
			}
		}
		preview[i] = peak
	}

	return preview
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
