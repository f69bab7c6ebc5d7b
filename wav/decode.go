package wav

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DecodeFile decodes any supported audio file into normalized mono
// float64 samples at the target rate. MP3 and 16-bit PCM WAV decode
// natively; everything else goes through ffmpeg. Failures here are decode
// errors: the caller degrades the file rather than failing the batch.
func DecodeFile(path string, targetSampleRate int) ([]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		samples, nativeRate, err := DecodeMP3Mono(path)
		if err != nil {
			return nil, err
		}
		if nativeRate == targetSampleRate {
			return samples, nil
		}
		if nativeRate > targetSampleRate {
			return Downsample(samples, nativeRate, targetSampleRate)
		}
		// Upsampling needs ffmpeg
		return decodeViaFFmpeg(path, targetSampleRate)

	case ".wav":
		info, err := ReadWavInfo(path)
		if err != nil {
			return nil, err
		}
		if info.Channels != 1 || info.SampleRate < targetSampleRate {
			return decodeViaFFmpeg(path, targetSampleRate)
		}
		samples, err := WavBytesToSamples(info.Data)
		if err != nil {
			return nil, err
		}
		if info.SampleRate == targetSampleRate {
			return samples, nil
		}
		return Downsample(samples, info.SampleRate, targetSampleRate)

	default:
		return decodeViaFFmpeg(path, targetSampleRate)
	}
}

func decodeViaFFmpeg(path string, targetSampleRate int) ([]float64, error) {
	if err := CheckFFmpegAvailable(); err != nil {
		return nil, err
	}

	wavPath, err := ConvertToWAV(path, targetSampleRate)
	if err != nil {
		return nil, err
	}
	defer os.Remove(wavPath)

	info, err := ReadWavInfo(wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted WAV: %w", err)
	}
	return WavBytesToSamples(info.Data)
}
