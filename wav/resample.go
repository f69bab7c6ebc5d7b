package wav

import (
	"errors"
)

// Downsample converts input audio from originalSampleRate to
// targetSampleRate by averaging each source bucket. Only downward
// conversion is supported; equal rates return a copy.
func Downsample(input []float64, originalSampleRate, targetSampleRate int) ([]float64, error) {
	if targetSampleRate <= 0 || originalSampleRate <= 0 {
		return nil, errors.New("sample rates must be positive")
	}
	if targetSampleRate > originalSampleRate {
		return nil, errors.New("target sample rate must be less than or equal to original sample rate")
	}
	if targetSampleRate == originalSampleRate {
		out := make([]float64, len(input))
		copy(out, input)
		return out, nil
	}

	ratio := float64(originalSampleRate) / float64(targetSampleRate)
	outputLength := int(float64(len(input)) / ratio)
	output := make([]float64, 0, outputLength)

	for i := 0; i < outputLength; i++ {
		start := int(float64(i) * ratio)
		end := int(float64(i+1) * ratio)
		if end > len(input) {
			end = len(input)
		}
		if start >= end {
			break
		}

		var sum float64
		for j := start; j < end; j++ {
			sum += input[j]
		}
		output = append(output, sum/float64(end-start))
	}

	return output, nil
}
