package db

import (
	"context"
	"fmt"
	"strings"

	"mood-tagger/config"
	"mood-tagger/models"
)

// Client is the tag store. It persists resolved mood ratings keyed by
// file; the feature vector itself is never persisted.
type Client interface {
	Close() error
	StoreMoodTags(ctx context.Context, tags *models.MoodTags) error
	GetMoodTags(ctx context.Context, fileKey string) (*models.MoodTags, bool, error)
	DeleteMoodTags(ctx context.Context, fileKey string) error
	ListFileKeys(ctx context.Context) ([]string, error)
	TotalTagged(ctx context.Context) (int, error)
}

// NewDBClient selects the backend from the storage configuration:
// "sqlite" (default) or "mongo". Environment overrides are applied when
// the config is loaded, not here.
func NewDBClient(cfg config.StorageConfig) (Client, error) {
	switch strings.ToLower(cfg.DBType) {
	case "sqlite", "":
		return NewSQLiteClient(cfg.SQLitePath)
	case "mongo", "mongodb":
		return NewMongoClient(cfg.MongoURI)
	default:
		return nil, fmt.Errorf("unsupported db type: %s", cfg.DBType)
	}
}
