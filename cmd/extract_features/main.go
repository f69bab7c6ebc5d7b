package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"mood-tagger/analysis"
	"mood-tagger/metadata"
	"mood-tagger/wav"
)

// Dump the feature vector for one audio file as JSON, for inspecting what
// the mood model actually sees.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <path-to-audio-file>")
	}

	path := os.Args[1]
	cfg := analysis.DefaultConfig()

	meta := metadata.ReadTrackMetadata(path)

	samples, err := wav.DecodeFile(path, cfg.SampleRate)
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	outcome, err := analysis.Analyze(context.Background(), samples, meta, cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	if outcome.Degraded {
		log.Printf("degraded result: %s", outcome.Reason)
	}

	data, err := json.MarshalIndent(outcome.Vector, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal vector: %v", err)
	}
	fmt.Println(string(data))
}
