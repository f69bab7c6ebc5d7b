package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3Mono decodes an MP3 file into normalized mono float64 samples
// at the decoder's native sample rate. This pure-Go path avoids the ffmpeg
// dependency for the common case.
func DecodeMP3Mono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	sampleRate := decoder.SampleRate()

	// go-mp3 outputs 16-bit signed stereo, 4 bytes per sample pair.
	pcmData, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode MP3: %w", err)
	}

	numSamplePairs := len(pcmData) / 4
	samples := make([]float64, numSamplePairs)

	for i := 0; i < numSamplePairs; i++ {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcmData[offset:]))
		right := int16(binary.LittleEndian.Uint16(pcmData[offset+2:]))

		mono := (float64(left) + float64(right)) / 2.0
		samples[i] = mono / 32768.0
	}

	return samples, sampleRate, nil
}
