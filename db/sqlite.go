package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mood-tagger/models"
	"mood-tagger/utils"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

type SQLiteClient struct {
	db *sql.DB
}

func NewSQLiteClient(dataSourceName string) (*SQLiteClient, error) {
	// Extract the file path before query parameters
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}

	// Create the directory if it doesn't exist (cross-platform)
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." && dbDir != "" {
		if err := utils.CreateFolder(dbDir); err != nil {
			return nil, fmt.Errorf("error creating database directory: %s", err)
		}
	}

	// Add busy timeout param to DSN (milliseconds)
	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000" // 5 seconds
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %s", err)
	}

	err = createTables(db)
	if err != nil {
		return nil, fmt.Errorf("error creating tables: %s", err)
	}

	return &SQLiteClient{db: db}, nil
}

// createTables creates the required tables if they don't exist
func createTables(db *sql.DB) error {
	createMoodTagsTable := `
    CREATE TABLE IF NOT EXISTS mood_tags (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        file_key TEXT NOT NULL,
        dimension TEXT NOT NULL,
        rating REAL NOT NULL DEFAULT 0,
        explanation TEXT,
        analyzed_at DATETIME NOT NULL,
        model TEXT NOT NULL,
        UNIQUE (file_key, dimension)
    );
    CREATE INDEX IF NOT EXISTS idx_mood_tags_file_key ON mood_tags(file_key);
    `

	_, err := db.Exec(createMoodTagsTable)
	if err != nil {
		return fmt.Errorf("error creating mood_tags table: %s", err)
	}

	return nil
}

func (s *SQLiteClient) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StoreMoodTags replaces all ratings for the file in one transaction, so
// a re-analysis never leaves a mix of old and new dimensions behind.
func (s *SQLiteClient) StoreMoodTags(ctx context.Context, tags *models.MoodTags) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %s", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM mood_tags WHERE file_key = ?", tags.FileKey); err != nil {
		tx.Rollback()
		return fmt.Errorf("error clearing previous tags: %s", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mood_tags (file_key, dimension, rating, explanation, analyzed_at, model)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %s", err)
	}
	defer stmt.Close()

	for _, rating := range tags.Ratings {
		_, err := stmt.ExecContext(ctx,
			tags.FileKey,
			rating.Dimension,
			rating.Value,
			rating.Explanation,
			tags.AnalyzedAt.UTC().Format(time.RFC3339),
			tags.Model,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error storing rating: %s", err)
		}
	}

	return tx.Commit()
}

// GetMoodTags retrieves all stored ratings for a file. The second return
// is false when the file has never been tagged.
func (s *SQLiteClient) GetMoodTags(ctx context.Context, fileKey string) (*models.MoodTags, bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dimension, rating, explanation, analyzed_at, model
		FROM mood_tags
		WHERE file_key = ?
		ORDER BY id
	`, fileKey)
	if err != nil {
		return nil, false, fmt.Errorf("error querying mood tags: %s", err)
	}
	defer rows.Close()

	tags := &models.MoodTags{FileKey: fileKey}
	for rows.Next() {
		var rating models.MoodRating
		var explanation sql.NullString
		var analyzedAt string

		err := rows.Scan(&rating.Dimension, &rating.Value, &explanation, &analyzedAt, &tags.Model)
		if err != nil {
			return nil, false, fmt.Errorf("error scanning mood tag: %s", err)
		}

		rating.Explanation = explanation.String
		if ts, err := time.Parse(time.RFC3339, analyzedAt); err == nil {
			tags.AnalyzedAt = ts
		}

		tags.Ratings = append(tags.Ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error reading mood tags: %s", err)
	}

	if len(tags.Ratings) == 0 {
		return nil, false, nil
	}
	return tags, true, nil
}

func (s *SQLiteClient) DeleteMoodTags(ctx context.Context, fileKey string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mood_tags WHERE file_key = ?", fileKey)
	if err != nil {
		return fmt.Errorf("error deleting mood tags: %s", err)
	}
	return nil
}

// ListFileKeys returns the distinct tagged files, most recent first.
func (s *SQLiteClient) ListFileKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_key FROM mood_tags
		GROUP BY file_key
		ORDER BY MAX(analyzed_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing file keys: %s", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("error scanning file key: %s", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *SQLiteClient) TotalTagged(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT file_key) FROM mood_tags").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting tagged files: %s", err)
	}
	return count, nil
}
