package analysis

import (
	"math"
	"testing"
)

func TestDetectBPM_SpikeTrain(t *testing.T) {
	// Unit spikes every 86 frames at hop 512 / 44100 Hz correspond to
	// 60 / (86 * 512 / 44100) = 60.1 BPM.
	onsets := spikeTrain(600, 86)

	bpm, err := DetectBPM(onsets, 44100, 512, 60, 180)
	if err != nil {
		t.Fatalf("DetectBPM failed: %v", err)
	}
	if math.Abs(bpm-60) > 2 {
		t.Errorf("Expected ~60 BPM, got %f", bpm)
	}
}

func TestDetectBPM_FastSpikeTrain(t *testing.T) {
	// Spikes every 30 frames: 60 / (30 * 512 / 44100) = 172.3 BPM
	onsets := spikeTrain(600, 30)

	bpm, err := DetectBPM(onsets, 44100, 512, 60, 180)
	if err != nil {
		t.Fatalf("DetectBPM failed: %v", err)
	}
	if math.Abs(bpm-172.3) > 2 {
		t.Errorf("Expected ~172.3 BPM, got %f", bpm)
	}
}

func TestDetectBPM_Range(t *testing.T) {
	for _, period := range []int{29, 35, 43, 60, 86} {
		bpm, err := DetectBPM(spikeTrain(900, period), 44100, 512, 60, 180)
		if err != nil {
			t.Fatalf("Period %d: DetectBPM failed: %v", period, err)
		}
		if bpm < 60 || bpm > 180 {
			t.Errorf("Period %d: BPM %f outside [60, 180]", period, bpm)
		}
	}
}

func TestDetectBPM_Degenerate(t *testing.T) {
	// Too few frames for a usable lag window
	if _, err := DetectBPM(spikeTrain(20, 5), 44100, 512, 60, 180); err == nil {
		t.Error("Expected error for short onset function")
	}
	if _, err := DetectBPM(nil, 44100, 512, 60, 180); err == nil {
		t.Error("Expected error for empty onset function")
	}
	// Flat onsets have no correlation peak
	if _, err := DetectBPM(make([]float64, 600), 44100, 512, 60, 180); err == nil {
		t.Error("Expected error for flat onset function")
	}
}

func TestResolveGenreBPM(t *testing.T) {
	tests := []struct {
		genre string
		bpm   float64
	}{
		{"Drum & Bass", 174},
		{"drum and bass", 174},
		{"Liquid DnB", 174},
		{"Jungle", 174},
		{"Dubstep", 140},
		{"Detroit Techno", 130},
		{"Uplifting Trance", 138},
		{"Deep House", 128},
		{"Dance", 128},
		{"EDM", 128},
		{"Hip-Hop", 95},
		{"hip hop", 95},
		{"Rap", 95},
		{"Death Metal", 140},
		{"Progressive Rock", 120},
		{"Jazz", 100},
		{"Ambient", 85},
		{"Chillout", 85},
		{"Polka", 128},
		{"", 128},
	}

	for _, tt := range tests {
		if bpm := ResolveGenreBPM(tt.genre); bpm != tt.bpm {
			t.Errorf("Genre %q: expected %f BPM, got %f", tt.genre, tt.bpm, bpm)
		}
	}
}

func TestResolveBPM_TagWins(t *testing.T) {
	// A usable tag short-circuits detection entirely
	bpm := ResolveBPM(93.5, spikeTrain(600, 30), "techno", 44100, 512, 60, 180)
	if bpm != 93.5 {
		t.Errorf("Expected tag BPM 93.5 to win, got %f", bpm)
	}
}

func TestResolveBPM_GenreFallback(t *testing.T) {
	// No tag, detection fails on flat onsets, genre decides
	bpm := ResolveBPM(0, make([]float64, 600), "Drum and Bass", 44100, 512, 60, 180)
	if bpm != 174 {
		t.Errorf("Expected genre fallback 174, got %f", bpm)
	}
}

func TestResolveBPM_Default(t *testing.T) {
	bpm := ResolveBPM(0, nil, "", 44100, 512, 60, 180)
	if bpm != DefaultBPM {
		t.Errorf("Expected default %d, got %f", DefaultBPM, bpm)
	}
}
