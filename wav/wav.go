package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// WavInfo describes a parsed WAV file. Data holds the raw PCM bytes of the
// data chunk.
type WavInfo struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	Data          []byte
	Duration      float64
}

// ReadWavInfo parses a PCM WAV file header and returns the format info
// together with the raw sample data.
func ReadWavInfo(filename string) (*WavInfo, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) < 44 {
		return nil, errors.New("invalid WAV file size (too small)")
	}

	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, errors.New("invalid WAV header")
	}

	info := &WavInfo{}

	// Walk chunks: fmt must precede data.
	pos := 12
	var haveFmt bool
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch chunkID {
		case "fmt ":
			if body+16 > len(data) {
				return nil, errors.New("truncated fmt chunk")
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != 1 {
				return nil, fmt.Errorf("unsupported audio format: %d (expected PCM)", audioFormat)
			}
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, errors.New("data chunk before fmt chunk")
			}
			end := body + chunkSize
			if end > len(data) {
				end = len(data)
			}
			info.Data = data[body:end]
		}

		// Chunks are word aligned.
		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	if !haveFmt {
		return nil, errors.New("missing fmt chunk")
	}
	if len(info.Data) == 0 {
		return nil, errors.New("missing data chunk")
	}
	if info.BitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported bits per sample: %d (expected 16)", info.BitsPerSample)
	}
	if info.SampleRate <= 0 || info.Channels <= 0 {
		return nil, errors.New("invalid WAV format values")
	}

	bytesPerSecond := info.SampleRate * info.Channels * (info.BitsPerSample / 8)
	info.Duration = float64(len(info.Data)) / float64(bytesPerSecond)

	return info, nil
}

// WavBytesToSamples converts 16-bit little-endian PCM bytes into normalized
// float64 samples in [-1, 1]. Multi-channel data is expected to have been
// mixed down beforehand.
func WavBytesToSamples(input []byte) ([]float64, error) {
	if len(input) < 2 {
		return nil, errors.New("no sample data")
	}
	if len(input)%2 != 0 {
		input = input[:len(input)-1]
	}

	numSamples := len(input) / 2
	output := make([]float64, numSamples)

	for i := 0; i < numSamples; i++ {
		sample := int16(binary.LittleEndian.Uint16(input[i*2 : i*2+2]))
		output[i] = float64(sample) / 32768.0
	}

	return output, nil
}

// WriteWavFile writes 16-bit PCM data to a WAV file with the given format.
func WriteWavFile(filename string, data []byte, sampleRate, channels, bitsPerSample int) error {
	if sampleRate <= 0 || channels <= 0 {
		return errors.New("invalid WAV format values")
	}
	if bitsPerSample != 16 {
		return fmt.Errorf("unsupported bits per sample: %d (expected 16)", bitsPerSample)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	byteRate := sampleRate * channels * (bitsPerSample / 8)
	blockAlign := channels * (bitsPerSample / 8)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(data)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(data)))

	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}
