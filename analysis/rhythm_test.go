package analysis

import (
	"math"
	"testing"
)

// spikeTrain builds an onset function of the given length with unit
// spikes every period frames.
func spikeTrain(length, period int) []float64 {
	onsets := make([]float64, length)
	for i := 0; i < length; i += period {
		onsets[i] = 1
	}
	return onsets
}

func TestRhythmStrength(t *testing.T) {
	// Population variance of {0, 0, 1, 1} is 0.25
	strength := RhythmStrength([]float64{0, 0, 1, 1})
	if math.Abs(strength-0.25) > 1e-9 {
		t.Errorf("Expected variance 0.25, got %f", strength)
	}

	if strength := RhythmStrength(make([]float64, 100)); strength != 0 {
		t.Errorf("Expected zero strength for flat onsets, got %f", strength)
	}

	if strength := RhythmStrength(nil); strength != 0 {
		t.Errorf("Expected zero strength for empty onsets, got %f", strength)
	}
}

func TestRhythmRegularity_Periodic(t *testing.T) {
	periodic := RhythmRegularity(spikeTrain(600, 10))
	if periodic <= 0 {
		t.Errorf("Expected positive regularity for periodic spikes, got %f", periodic)
	}
	if periodic > 1 {
		t.Errorf("Normalized regularity must not exceed 1, got %f", periodic)
	}
}

func TestRhythmRegularity_Flat(t *testing.T) {
	if r := RhythmRegularity(make([]float64, 600)); r != 0 {
		t.Errorf("Expected zero regularity for flat onsets, got %f", r)
	}
	if r := RhythmRegularity([]float64{1, 2}); r != 0 {
		t.Errorf("Expected zero regularity for tiny input, got %f", r)
	}
}

func TestOnsetDensity(t *testing.T) {
	// 100 frames at hop 512 / 44100 Hz cover ~1.16 seconds. Spikes every
	// 10 frames are interior local maxima well above 1.5x the mean.
	onsets := spikeTrain(100, 10)
	density := OnsetDensity(onsets, 512, 44100)

	duration := float64(len(onsets)) * 512.0 / 44100.0
	expected := 9.0 / duration // spike at index 0 is not interior
	if math.Abs(density-expected) > 1e-9 {
		t.Errorf("Expected density %f, got %f", expected, density)
	}
}

func TestOnsetDensity_Silence(t *testing.T) {
	if d := OnsetDensity(make([]float64, 100), 512, 44100); d != 0 {
		t.Errorf("Expected zero density for silence, got %f", d)
	}
}

func TestBeatHistogram(t *testing.T) {
	histogram := BeatHistogram(128)
	if len(histogram) != HistogramBins {
		t.Fatalf("Expected %d bins, got %d", HistogramBins, len(histogram))
	}

	// Bin for 128 BPM is index 128 - 60 = 68 and holds exp(0) = 1
	if math.Abs(histogram[68]-1) > 1e-9 {
		t.Errorf("Expected peak 1 at the 128 BPM bin, got %f", histogram[68])
	}

	// Gaussian falls off symmetrically around the center
	for i := 1; i < 68; i++ {
		if histogram[i] < histogram[i-1] {
			t.Fatalf("Histogram not rising toward center at bin %d", i)
		}
	}
	for i := 69; i < HistogramBins; i++ {
		if histogram[i] > histogram[i-1] {
			t.Fatalf("Histogram not falling after center at bin %d", i)
		}
	}
}

func TestBeatHistogram_OutOfRangeCenter(t *testing.T) {
	// A 174 BPM center lies past the last bin (159); the histogram still
	// has full length with its maximum at the top end.
	histogram := BeatHistogram(174)
	if len(histogram) != HistogramBins {
		t.Fatalf("Expected %d bins, got %d", HistogramBins, len(histogram))
	}
	for i := 1; i < HistogramBins; i++ {
		if histogram[i] < histogram[i-1] {
			t.Fatalf("Expected monotonic rise toward 174 BPM, broke at bin %d", i)
		}
	}
}
