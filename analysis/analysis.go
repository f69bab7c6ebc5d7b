// Package analysis extracts a compact numeric feature vector summarizing
// the rhythmic and spectral character of one audio track. The pipeline is
// strictly sequential per track and a pure function of the sample buffer,
// so independent tracks can be analyzed concurrently without locks.
package analysis

import (
	"context"

	"mood-tagger/models"
)

// Config holds the pipeline parameters for one run.
type Config struct {
	// SampleRate is the rate of the incoming buffer.
	SampleRate int
	// WindowSize and HopSize frame the onset detector.
	WindowSize int
	HopSize    int
	// MinBPM and MaxBPM bound the tempo search.
	MinBPM float64
	MaxBPM float64
}

// DefaultConfig returns the standard pipeline parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		WindowSize: 1024,
		HopSize:    512,
		MinBPM:     60,
		MaxBPM:     180,
	}
}

// Outcome is the tagged result of one pipeline run. Degraded outcomes
// carry the fixed default vector so batch processing always has a
// complete descriptor per file.
type Outcome struct {
	Vector   *FeatureVector
	Degraded bool
	Reason   string
}

// DegradedOutcome produces the fixed default vector for a file whose
// decode or processing failed.
func DegradedOutcome(reason string, meta models.TrackMetadata) Outcome {
	return Outcome{
		Vector:   DefaultFeatureVector(meta.Fields()),
		Degraded: true,
		Reason:   reason,
	}
}

// Analyze runs the full pipeline over a decoded sample buffer. An empty
// buffer degrades rather than erroring; the only returned error is
// context cancellation, checked between stages.
func Analyze(ctx context.Context, samples []float64, meta models.TrackMetadata, cfg Config) (Outcome, error) {
	if len(samples) == 0 {
		return DegradedOutcome("empty sample buffer", meta), nil
	}
	if cfg.SampleRate <= 0 || cfg.WindowSize <= 0 || cfg.HopSize <= 0 {
		return DegradedOutcome("invalid pipeline configuration", meta), nil
	}

	// Time-domain features.
	rms := RMSEnergy(samples)
	zcr := ZeroCrossingRate(samples)
	envelope := EnergyEnvelope(samples)
	waveform := WaveformPreview(samples)
	bass, mid, high := BandPresence(zcr)
	centroid, flux, rolloff, flatness := SpectralProxies(samples, zcr)

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Onset detection.
	energies := FrameEnergies(samples, cfg.WindowSize, cfg.HopSize)
	onsets := OnsetFunction(energies)

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Rhythm descriptors.
	strength := RhythmStrength(onsets)
	regularity := RhythmRegularity(onsets)
	density := OnsetDensity(onsets, cfg.HopSize, cfg.SampleRate)

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	// Tempo resolution. The fallback chain guarantees a positive BPM.
	bpm := ResolveBPM(meta.TagBPM, onsets, meta.Genre, cfg.SampleRate, cfg.HopSize, cfg.MinBPM, cfg.MaxBPM)
	histogram := BeatHistogram(bpm)

	vector := &FeatureVector{
		BPM:              bpm,
		RMSEnergy:        rms,
		ZeroCrossingRate: zcr,
		SpectralCentroid: centroid,
		SpectralFlux:     flux,
		SpectralRolloff:  rolloff,
		SpectralFlatness: flatness,
		BassPresence:     bass,
		MidPresence:      mid,
		HighPresence:     high,
		RhythmStrength:   strength,
		RhythmRegularity: regularity,
		OnsetDensity:     density,
		Waveform:         waveform,
		EnergyEnvelope:   envelope,
		BeatHistogram:    histogram,
		MFCC:             make([]float64, MFCCCount),
		SpectralData:     make([]float64, SpectralDataPoints),
		Metadata:         meta.Fields(),
	}

	return Outcome{Vector: vector}, nil
}
