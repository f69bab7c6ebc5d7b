package analysis

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"mood-tagger/models"
)

// clickTrack builds a silent buffer with unit impulses every period
// samples. A period of 22016 (43 hops at 512) lands on exact frame
// boundaries and corresponds to ~120.2 BPM at 44100 Hz.
func clickTrack(length, period int) []float64 {
	samples := make([]float64, length)
	for i := 0; i < length; i += period {
		samples[i] = 1
	}
	return samples
}

func TestAnalyze_ClickTrack(t *testing.T) {
	samples := clickTrack(441000, 22016) // 10 seconds
	meta := models.TrackMetadata{Title: "Click", Genre: "techno"}

	outcome, err := Analyze(context.Background(), samples, meta, DefaultConfig())
	require.NoError(t, err)
	require.False(t, outcome.Degraded)
	require.NotNil(t, outcome.Vector)

	v := outcome.Vector
	if v.BPM < 118 || v.BPM > 122 {
		t.Errorf("Expected ~120 BPM for the click track, got %f", v.BPM)
	}
	if v.RhythmStrength <= 0 {
		t.Errorf("Expected positive rhythm strength, got %f", v.RhythmStrength)
	}
	if v.OnsetDensity <= 0 {
		t.Errorf("Expected positive onset density, got %f", v.OnsetDensity)
	}
	if v.Metadata["genre"] != "techno" {
		t.Errorf("Expected metadata passthrough, got %v", v.Metadata)
	}
}

func TestAnalyze_ArrayLengths(t *testing.T) {
	for _, n := range []int{500, 44100, 441000} {
		samples := clickTrack(n, 997)

		outcome, err := Analyze(context.Background(), samples, models.TrackMetadata{}, DefaultConfig())
		require.NoError(t, err)

		v := outcome.Vector
		if len(v.EnergyEnvelope) != EnvelopeBins {
			t.Errorf("Input %d: envelope length %d", n, len(v.EnergyEnvelope))
		}
		if len(v.BeatHistogram) != HistogramBins {
			t.Errorf("Input %d: histogram length %d", n, len(v.BeatHistogram))
		}
		if len(v.MFCC) != MFCCCount {
			t.Errorf("Input %d: mfcc length %d", n, len(v.MFCC))
		}
		if len(v.SpectralData) != SpectralDataPoints {
			t.Errorf("Input %d: spectral data length %d", n, len(v.SpectralData))
		}
		if len(v.Waveform) > WaveformMaxPoints {
			t.Errorf("Input %d: waveform length %d exceeds cap", n, len(v.Waveform))
		}
	}
}

func TestAnalyze_Silence(t *testing.T) {
	samples := make([]float64, 441000)

	outcome, err := Analyze(context.Background(), samples, models.TrackMetadata{}, DefaultConfig())
	require.NoError(t, err)
	require.False(t, outcome.Degraded)

	v := outcome.Vector
	if v.RMSEnergy != 0 || v.ZeroCrossingRate != 0 {
		t.Errorf("Expected zero RMS and ZCR for silence, got %f / %f", v.RMSEnergy, v.ZeroCrossingRate)
	}
	if v.RhythmStrength != 0 || v.RhythmRegularity != 0 || v.OnsetDensity != 0 {
		t.Errorf("Expected zero rhythm descriptors for silence")
	}
	// Detection fails on silence, no tag or genre: fixed default tempo
	if v.BPM != DefaultBPM {
		t.Errorf("Expected default BPM %d for silence, got %f", DefaultBPM, v.BPM)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	samples := clickTrack(220500, 22016)
	meta := models.TrackMetadata{Genre: "house"}
	cfg := DefaultConfig()

	first, err := Analyze(context.Background(), samples, meta, cfg)
	require.NoError(t, err)
	second, err := Analyze(context.Background(), samples, meta, cfg)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical outcomes for identical input")
	}
}

func TestAnalyze_EmptyBuffer(t *testing.T) {
	meta := models.TrackMetadata{Title: "Broken"}

	outcome, err := Analyze(context.Background(), nil, meta, DefaultConfig())
	require.NoError(t, err)
	require.True(t, outcome.Degraded)
	require.NotEmpty(t, outcome.Reason)
	require.Equal(t, DefaultFeatureVector(meta.Fields()), outcome.Vector)
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, clickTrack(441000, 22016), models.TrackMetadata{}, DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultFeatureVector(t *testing.T) {
	v := DefaultFeatureVector(map[string]string{"title": "x"})

	if v.BPM != 128 || v.RMSEnergy != 0.5 || v.ZeroCrossingRate != 0.1 {
		t.Errorf("Unexpected default scalars: %+v", v)
	}
	if v.SpectralCentroid != 1000 || v.SpectralRolloff != 5000 || v.SpectralFlux != 0.1 {
		t.Errorf("Unexpected default spectral proxies: %+v", v)
	}
	for i, e := range v.EnergyEnvelope {
		if e != 0 {
			t.Fatalf("Expected zero-filled envelope, bin %d is %f", i, e)
		}
	}
	if len(v.Waveform) != WaveformMaxPoints {
		t.Errorf("Expected %d waveform points, got %d", WaveformMaxPoints, len(v.Waveform))
	}
}
