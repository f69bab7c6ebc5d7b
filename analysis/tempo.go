package analysis

// Tempo estimation: an autocorrelation search over the onset function
// restricted to a bounded BPM range, with a deterministic fallback chain
// (tag BPM -> genre keyword table -> fixed default) so the resolved BPM is
// always positive.

import (
	"errors"
	"strings"
)

// DefaultBPM is the final fallback when detection fails and no genre
// matches.
const DefaultBPM = 128

// ErrTempoDetection marks any detection failure: empty onset function,
// degenerate lag window, or an out-of-range peak. Callers fall back to
// ResolveGenreBPM rather than surfacing this.
var ErrTempoDetection = errors.New("tempo detection failed")

// genreTempo maps genre keywords to conventional tempos. Checked in order
// so multi-word genres hit their specific entry first.
var genreTempo = []struct {
	keywords []string
	bpm      float64
}{
	{[]string{"drum & bass", "drum and bass", "drum&bass", "dnb", "jungle"}, 174},
	{[]string{"dubstep"}, 140},
	{[]string{"techno"}, 130},
	{[]string{"trance"}, 138},
	{[]string{"house", "dance", "edm"}, 128},
	{[]string{"hip-hop", "hip hop", "hiphop", "rap"}, 95},
	{[]string{"metal"}, 140},
	{[]string{"rock"}, 120},
	{[]string{"jazz"}, 100},
	{[]string{"ambient", "chill"}, 85},
}

// DetectBPM searches the onset function's autocorrelation for the dominant
// period within [minBPM, maxBPM] and converts it to a tempo. It returns
// ErrTempoDetection when the lag window is degenerate or the peak falls
// outside the range.
func DetectBPM(onsets []float64, sampleRate, hopSize int, minBPM, maxBPM float64) (float64, error) {
	if len(onsets) == 0 || sampleRate <= 0 || hopSize <= 0 {
		return 0, ErrTempoDetection
	}

	secondsPerHop := float64(hopSize) / float64(sampleRate)
	minLag := int(60.0 / (maxBPM * secondsPerHop))
	maxLag := int(60.0 / (minBPM * secondsPerHop))
	if limit := len(onsets) / 2; maxLag > limit {
		maxLag = limit
	}

	if minLag < 1 || minLag >= maxLag {
		return 0, ErrTempoDetection
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i+lag < len(onsets); i++ {
			corr += onsets[i] * onsets[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0, ErrTempoDetection
	}

	bpm := 60.0 / (float64(bestLag) * secondsPerHop)
	if bpm < minBPM || bpm > maxBPM {
		return 0, ErrTempoDetection
	}

	return bpm, nil
}

// ResolveGenreBPM maps a genre string onto a conventional tempo,
// case-insensitively, falling back to DefaultBPM.
func ResolveGenreBPM(genre string) float64 {
	lowered := strings.ToLower(genre)
	if lowered == "" {
		return DefaultBPM
	}

	for _, entry := range genreTempo {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.bpm
			}
		}
	}
	return DefaultBPM
}

// ResolveBPM runs the full fallback chain: a usable tag BPM wins outright,
// then autocorrelation detection, then the genre table, then DefaultBPM.
// The result is always positive.
func ResolveBPM(tagBPM float64, onsets []float64, genre string, sampleRate, hopSize int, minBPM, maxBPM float64) float64 {
	if tagBPM > 0 {
		return tagBPM
	}

	if bpm, err := DetectBPM(onsets, sampleRate, hopSize, minBPM, maxBPM); err == nil {
		return bpm
	}

	return ResolveGenreBPM(genre)
}
