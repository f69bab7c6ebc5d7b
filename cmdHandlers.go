package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mdobak/go-xerrors"

	"mood-tagger/analysis"
	"mood-tagger/backup"
	"mood-tagger/config"
	"mood-tagger/db"
	"mood-tagger/metadata"
	"mood-tagger/models"
	"mood-tagger/mood"
	"mood-tagger/utils"
	"mood-tagger/wav"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
}

// collectAudioFiles resolves a file or directory argument into the list
// of audio files to process.
func collectAudioFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && audioExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

// analyze runs the full pipeline over a file or directory with a bounded
// worker pool. A failure on one file never aborts the batch; only setup
// errors before any per-file work are fatal.
func analyze(root string, cfg *config.Config, dryRun bool) {
	logger := utils.GetLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := collectAudioFiles(root)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(files) == 0 {
		fmt.Println("no audio files found.")
		return
	}

	var moodClient *mood.Client
	var dbClient db.Client
	var backupStore *backup.Store

	if !dryRun {
		moodClient, err = mood.NewClient(ctx, cfg.Mood.Model)
		if err != nil {
			log.Fatalf("failed to create mood client: %v", err)
		}

		dbClient, err = db.NewDBClient(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to create DB client: %v", err)
		}
		defer dbClient.Close()

		backupStore, err = backup.NewStore(cfg.Storage.BackupDir)
		if err != nil {
			log.Fatalf("failed to create backup store: %v", err)
		}
	}

	workers := cfg.Analysis.Workers
	if workers > len(files) {
		workers = len(files)
	}

	log.Printf("[analyze] processing %d file(s) with %d worker(s)...", len(files), workers)

	jobs := make(chan string)
	results := make([]models.FileResult, 0, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				result := processFile(ctx, path, cfg, moodClient, dbClient, backupStore, dryRun)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		logger.InfoContext(ctx, "Batch interrupted.", slog.Int("processed", len(results)))
	}

	printSummary(summarize(results))
}

// processFile runs one file through the whole pipeline: metadata, decode,
// feature extraction, mood inference, backup and store. Decode failures
// degrade to the default vector; inference and store failures fail the
// file; nothing here fails the batch.
func processFile(ctx context.Context, path string, cfg *config.Config, moodClient *mood.Client, dbClient db.Client, backupStore *backup.Store, dryRun bool) models.FileResult {
	logger := utils.GetLogger()
	start := time.Now()
	result := models.FileResult{Path: path}

	if _, err := os.Stat(path); err != nil {
		result.Err = fmt.Sprintf("cannot access file: %v", err)
		return result
	}

	meta := metadata.ReadTrackMetadata(path)

	var outcome analysis.Outcome
	samples, err := wav.DecodeFile(path, cfg.Analysis.SampleRate)
	if err != nil {
		logger.ErrorContext(ctx, "Decode failed, using degraded vector.",
			slog.String("path", path), slog.Any("error", xerrors.New(err)))
		outcome = analysis.DegradedOutcome(fmt.Sprintf("decode failed: %v", err), meta)
	} else {
		outcome, err = analysis.Analyze(ctx, samples, meta, analysis.Config{
			SampleRate: cfg.Analysis.SampleRate,
			WindowSize: cfg.Analysis.WindowSize,
			HopSize:    cfg.Analysis.HopSize,
			MinBPM:     cfg.Analysis.MinBPM,
			MaxBPM:     cfg.Analysis.MaxBPM,
		})
		if err != nil {
			result.Err = err.Error()
			return result
		}
	}

	result.Degraded = outcome.Degraded
	result.Reason = outcome.Reason
	result.BPM = outcome.Vector.BPM

	if dryRun {
		result.LatencyMs = float64(time.Since(start).Milliseconds())
		return result
	}

	fileKey := filepath.Clean(path)
	tags, err := moodClient.RateMood(ctx, fileKey, outcome.Vector)
	if err != nil {
		result.Err = fmt.Sprintf("mood inference failed: %v", err)
		return result
	}

	if err := backupStore.Backup(path); err != nil {
		result.Err = fmt.Sprintf("backup failed: %v", err)
		return result
	}

	if err := dbClient.StoreMoodTags(ctx, tags); err != nil {
		result.Err = fmt.Sprintf("failed to store tags: %v", err)
		return result
	}

	result.LatencyMs = float64(time.Since(start).Milliseconds())
	return result
}

func summarize(results []models.FileResult) models.BatchSummary {
	summary := models.BatchSummary{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		switch {
		case r.Err != "":
			summary.Failed++
		case r.Degraded:
			summary.Degraded++
		default:
			summary.Tagged++
		}
	}
	return summary
}

func printSummary(summary models.BatchSummary) {
	fmt.Printf("\nprocessed %d file(s): %d tagged, %d degraded, %d failed\n",
		summary.Total, summary.Tagged, summary.Degraded, summary.Failed)

	for _, r := range summary.Results {
		switch {
		case r.Err != "":
			fmt.Printf("\tFAIL %s: %s\n", r.Path, r.Err)
		case r.Degraded:
			fmt.Printf("\tDEGRADED %s: %s (bpm %.1f)\n", r.Path, r.Reason, r.BPM)
		default:
			fmt.Printf("\tOK %s (bpm %.1f, %.0fms)\n", r.Path, r.BPM, r.LatencyMs)
		}
	}
}

// showTags prints the stored mood ratings for a file.
func showTags(path string, cfg *config.Config) {
	dbClient, err := db.NewDBClient(cfg.Storage)
	if err != nil {
		fmt.Printf("error creating DB client: %v\n", err)
		return
	}
	defer dbClient.Close()

	tags, found, err := dbClient.GetMoodTags(context.Background(), filepath.Clean(path))
	if err != nil {
		fmt.Printf("error retrieving tags: %v\n", err)
		return
	}
	if !found {
		fmt.Println("no stored tags for this file.")
		return
	}

	fmt.Printf("%s (analyzed %s, model %s):\n", tags.FileKey,
		tags.AnalyzedAt.Format(time.RFC3339), tags.Model)
	for _, r := range tags.Ratings {
		if r.Explanation != "" {
			fmt.Printf("\t%s: %.1f - %s\n", r.Dimension, r.Value, r.Explanation)
		} else {
			fmt.Printf("\t%s: %.1f\n", r.Dimension, r.Value)
		}
	}
}

// restoreFile puts the pre-tagging copy of a file back in place.
func restoreFile(path string, cfg *config.Config) {
	store, err := backup.NewStore(cfg.Storage.BackupDir)
	if err != nil {
		fmt.Printf("error opening backup store: %v\n", err)
		return
	}

	if err := store.Restore(path); err != nil {
		fmt.Printf("restore failed: %v\n", err)
		return
	}
	fmt.Printf("restored %s\n", path)
}
