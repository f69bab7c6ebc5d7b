// Package config handles the persisted JSON configuration for the analysis
// pipeline and its collaborators. Environment variables override the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mood-tagger/utils"
)

// Config holds all tunables for a run.
type Config struct {
	Analysis AnalysisConfig `json:"analysis"`
	Mood     MoodConfig     `json:"mood"`
	Storage  StorageConfig  `json:"storage"`
}

// AnalysisConfig contains the audio pipeline parameters.
type AnalysisConfig struct {
	// SampleRate is the target rate audio is converted to before analysis.
	SampleRate int `json:"sampleRate"`

	// WindowSize and HopSize frame the onset detector.
	WindowSize int `json:"windowSize"`
	HopSize    int `json:"hopSize"`

	// MinBPM / MaxBPM bound the tempo search.
	MinBPM float64 `json:"minBpm"`
	MaxBPM float64 `json:"maxBpm"`

	// Workers bounds concurrent file pipelines in a batch.
	Workers int `json:"workers"`
}

// MoodConfig contains the inference collaborator settings.
type MoodConfig struct {
	// Model is the Gemini model identifier recorded with stored ratings.
	Model string `json:"model"`
}

// StorageConfig contains tag store and backup settings.
type StorageConfig struct {
	// DBType selects the tag store backend: "sqlite" or "mongo".
	DBType string `json:"dbType"`

	// SQLitePath is the sqlite database file.
	SQLitePath string `json:"sqlitePath"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `json:"mongoUri"`

	// BackupDir holds pre-write copies of tagged files.
	BackupDir string `json:"backupDir"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			SampleRate: 44100,
			WindowSize: 1024,
			HopSize:    512,
			MinBPM:     60,
			MaxBPM:     180,
			Workers:    1,
		},
		Mood: MoodConfig{
			Model: "gemini-2.5-flash",
		},
		Storage: StorageConfig{
			DBType:     "sqlite",
			SQLitePath: filepath.Join("db", "mood-tagger.db"),
			MongoURI:   "mongodb://localhost:27017",
			BackupDir:  "backups",
		},
	}
}

// Load reads the config file at path, creating it with defaults when
// missing, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to disk as indented JSON.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := utils.CreateFolder(dir); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Storage.DBType = utils.GetEnv("DB_TYPE", cfg.Storage.DBType)
	cfg.Storage.SQLitePath = utils.GetEnv("SQLITE_DB_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.MongoURI = utils.GetEnv("MONGO_URI", cfg.Storage.MongoURI)
	cfg.Storage.BackupDir = utils.GetEnv("MOOD_BACKUP_DIR", cfg.Storage.BackupDir)
	cfg.Mood.Model = utils.GetEnv("GEMINI_MODEL", cfg.Mood.Model)

	if v := utils.GetEnv("ANALYSIS_WORKERS", ""); v != "" {
		if workers, err := strconv.Atoi(v); err == nil && workers > 0 {
			cfg.Analysis.Workers = workers
		}
	}
}

func (c *Config) validate() error {
	a := c.Analysis
	if a.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", a.SampleRate)
	}
	if a.WindowSize <= 0 || a.HopSize <= 0 || a.HopSize > a.WindowSize {
		return fmt.Errorf("invalid window/hop: %d/%d", a.WindowSize, a.HopSize)
	}
	if a.MinBPM <= 0 || a.MaxBPM <= a.MinBPM {
		return fmt.Errorf("invalid BPM range: [%v, %v]", a.MinBPM, a.MaxBPM)
	}
	if a.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", a.Workers)
	}
	switch c.Storage.DBType {
	case "sqlite", "mongo", "mongodb":
	default:
		return fmt.Errorf("unknown db type: %q", c.Storage.DBType)
	}
	return nil
}
