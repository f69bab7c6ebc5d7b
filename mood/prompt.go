package mood

import (
	"fmt"
	"sort"
	"strings"

	"mood-tagger/analysis"
)

// Dimensions lists the rated mood dimensions in prompt and parse order.
var Dimensions = []string{
	"Energy",
	"Valence",
	"Danceability",
	"Acousticness",
	"Intensity",
}

// BuildPrompt renders the feature vector as a fixed-order textual block
// for the model. Every numeric value is formatted to two decimals; the
// field order is part of the contract with stored tag semantics and must
// not change.
func BuildPrompt(fileName string, v *analysis.FeatureVector) string {
	var b strings.Builder

	b.WriteString("You are rating the mood of a music track from its extracted audio features.\n\n")
	fmt.Fprintf(&b, "File: %s\n", fileName)

	if len(v.Metadata) > 0 {
		keys := make([]string, 0, len(v.Metadata))
		for k := range v.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", titleCase(k), v.Metadata[k])
		}
	}

	b.WriteString("\nAudio features:\n")
	fmt.Fprintf(&b, "BPM: %.2f\n", v.BPM)
	fmt.Fprintf(&b, "Spectral Centroid: %.2f\n", v.SpectralCentroid)
	fmt.Fprintf(&b, "Spectral Flux: %.2f\n", v.SpectralFlux)
	fmt.Fprintf(&b, "Rhythm Strength: %.2f\n", v.RhythmStrength)
	fmt.Fprintf(&b, "Bass Presence: %.2f\n", v.BassPresence)
	fmt.Fprintf(&b, "Mid Presence: %.2f\n", v.MidPresence)
	fmt.Fprintf(&b, "High Presence: %.2f\n", v.HighPresence)
	fmt.Fprintf(&b, "RMS Energy: %.2f\n", v.RMSEnergy)
	fmt.Fprintf(&b, "Zero Crossing Rate: %.2f\n", v.ZeroCrossingRate)
	fmt.Fprintf(&b, "Rhythm Regularity: %.2f\n", v.RhythmRegularity)

	b.WriteString("\nRate the track on each dimension from 0 to 10. Respond with exactly one line per dimension, in this format:\n")
	for _, d := range Dimensions {
		fmt.Fprintf(&b, "%s: <number> - <one sentence explanation>\n", d)
	}
	b.WriteString("No other text.")

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
