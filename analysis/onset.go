package analysis

// Onset detection: the buffer is framed with a fixed window and hop, each
// frame reduced to its energy, and the onset-strength function is the
// positive energy delta between consecutive frames. The onset function is
// the sole input to the rhythm and tempo stages.

// FrameEnergies slices the buffer into windows of windowSize samples
// advancing by hopSize and returns sum(sample^2) per frame. Buffers
// shorter than one window produce no frames.
func FrameEnergies(samples []float64, windowSize, hopSize int) []float64 {
	if windowSize <= 0 || hopSize <= 0 || len(samples) < windowSize {
		return nil
	}

	numFrames := (len(samples)-windowSize)/hopSize + 1
	energies := make([]float64, 0, numFrames)

	for start := 0; start+windowSize <= len(samples); start += hopSize {
		var energy float64
		for _, s := range samples[start : start+windowSize] {
			energy += s * s
		}
		energies = append(energies, energy)
	}

	return energies
}

// OnsetFunction converts frame energies into onset strengths:
// onset[0] = 0, onset[i] = max(0, energy[i] - energy[i-1]).
func OnsetFunction(energies []float64) []float64 {
	if len(energies) == 0 {
		return nil
	}

	onsets := make([]float64, len(energies))
	for i := 1; i < len(energies); i++ {
		if delta := energies[i] - energies[i-1]; delta > 0 {
			onsets[i] = delta
		}
	}

	return onsets
}
