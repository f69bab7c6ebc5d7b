package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"reflect"

	"mood-tagger/analysis"
	"mood-tagger/metadata"
	"mood-tagger/wav"
)

// Run the pipeline several times on the same file and verify the feature
// vectors are bit-identical.
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

	const numRuns = 5
	var vectors []*analysis.FeatureVector

	for i := 0; i < numRuns; i++ {
		outcome, err := analysis.Analyze(context.Background(), samples, meta, cfg)
		if err != nil {
			log.Fatalf("run %d failed: %v", i+1, err)
		}
		vectors = append(vectors, outcome.Vector)
		log.Printf("run %d: bpm=%.4f rms=%.6f zcr=%.6f flux=%.6f",
			i+1, outcome.Vector.BPM, outcome.Vector.RMSEnergy,
			outcome.Vector.ZeroCrossingRate, outcome.Vector.SpectralFlux)
	}

	for i := 1; i < numRuns; i++ {
		if !reflect.DeepEqual(vectors[0], vectors[i]) {
			fmt.Printf("run %d differs from run 1: pipeline is NON-DETERMINISTIC\n", i+1)
			os.Exit(1)
		}
	}
	fmt.Printf("all %d runs produced identical feature vectors\n", numRuns)
}
