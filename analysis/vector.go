package analysis

// Fixed array dimensions of the feature vector. These hold for any input
// length, including buffers shorter than the bin counts.
const (
	// WaveformMaxPoints caps the downsampled waveform preview.
	WaveformMaxPoints = 10000
	// EnvelopeBins is the energy envelope resolution.
	EnvelopeBins = 1000
	// HistogramBins covers one bin per integer BPM from HistogramMinBPM.
	HistogramBins  = 100
	HistogramMinBPM = 60
	// MFCCCount and SpectralDataPoints are reserved, unimplemented slots
	// kept for downstream format compatibility. Always zero-filled.
	MFCCCount          = 13
	SpectralDataPoints = 1000
)

// FeatureVector is the immutable descriptor produced for one track. It is
// constructed once per file, handed to the mood inference step, and never
// persisted or reused.
type FeatureVector struct {
	BPM              float64 `json:"bpm"`
	RMSEnergy        float64 `json:"rmsEnergy"`
	ZeroCrossingRate float64 `json:"zeroCrossingRate"`

	// Spectral values are time-domain proxies, not transform results; see
	// features.go for the exact definitions.
	SpectralCentroid float64 `json:"spectralCentroid"`
	SpectralFlux     float64 `json:"spectralFlux"`
	SpectralRolloff  float64 `json:"spectralRolloff"`
	SpectralFlatness float64 `json:"spectralFlatness"`

	BassPresence float64 `json:"bassPresence"`
	MidPresence  float64 `json:"midPresence"`
	HighPresence float64 `json:"highPresence"`

	RhythmStrength   float64 `json:"rhythmStrength"`
	RhythmRegularity float64 `json:"rhythmRegularity"`
	OnsetDensity     float64 `json:"onsetDensity"`

	// Waveform holds at most WaveformMaxPoints preview points; the other
	// arrays always have exactly their documented lengths.
	Waveform       []float64 `json:"waveform"`
	EnergyEnvelope []float64 `json:"energyEnvelope"`
	BeatHistogram  []float64 `json:"beatHistogram"`
	MFCC           []float64 `json:"mfcc"`
	SpectralData   []float64 `json:"spectralData"`

	// Metadata passes through unchanged from the metadata collaborator.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DefaultFeatureVector returns the fixed vector emitted on the degraded
// path (decode or processing failure), so batch runs always produce a
// complete, well-formed result per file.
func DefaultFeatureVector(metadata map[string]string) *FeatureVector {
	return &FeatureVector{
		BPM:              128,
		RMSEnergy:        0.5,
		ZeroCrossingRate: 0.1,
		SpectralCentroid: 1000,
		SpectralFlux:     0.1,
		SpectralRolloff:  5000,
		SpectralFlatness: 0.5,
		BassPresence:     0.5,
		MidPresence:      0.5,
		HighPresence:     0.5,
		RhythmStrength:   0.5,
		RhythmRegularity: 0.5,
		OnsetDensity:     1.0,
		Waveform:         make([]float64, WaveformMaxPoints),
		EnergyEnvelope:   make([]float64, EnvelopeBins),
		BeatHistogram:    make([]float64, HistogramBins),
		MFCC:             make([]float64, MFCCCount),
		SpectralData:     make([]float64, SpectralDataPoints),
		Metadata:         metadata,
	}
}
