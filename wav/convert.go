package wav

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"mood-tagger/utils"
)

// CheckFFmpegAvailable verifies ffmpeg is on PATH.
func CheckFFmpegAvailable() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return nil
}

// ConvertToWAV converts any audio file ffmpeg understands into a mono
// 16-bit PCM WAV at the given sample rate. The result is a temporary file
// under tmp/ that the caller is responsible for removing.
func ConvertToWAV(inputFilePath string, sampleRate int) (string, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return "", fmt.Errorf("input file does not exist: %w", err)
	}
	if sampleRate <= 0 {
		sampleRate = 44100
	}

	if err := utils.CreateFolder("tmp"); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(inputFilePath), filepath.Ext(inputFilePath))
	outputFile := filepath.Join("tmp", fmt.Sprintf("cnv_%d_%s.wav", os.Getpid(), sanitizeBase(base)))

	cmd := exec.Command(
		"ffmpeg",
		"-y",
		"-i", inputFilePath,
		"-c", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		outputFile,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to convert to WAV: %v, output: %s", err, output)
	}

	return outputFile, nil
}

// GetAudioDuration returns the duration in seconds of any audio file by
// calling ffprobe.
func GetAudioDuration(inputPath string) (float64, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration query failed: %w", err)
	}

	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

func sanitizeBase(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
