package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mood-tagger/models"
)

func newTestClient(t *testing.T) *SQLiteClient {
	t.Helper()
	client, err := NewSQLiteClient(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func sampleTags(fileKey string) *models.MoodTags {
	return &models.MoodTags{
		FileKey: fileKey,
		Ratings: []models.MoodRating{
			{Dimension: "Energy", Value: 8.5, Explanation: "Driving"},
			{Dimension: "Valence", Value: 6, Explanation: "Bright"},
			{Dimension: "Danceability", Value: 9},
		},
		AnalyzedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Model:      "gemini-2.5-flash",
	}
}

func TestSQLiteStoreAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.StoreMoodTags(ctx, sampleTags("a/track.mp3")))

	got, found, err := client.GetMoodTags(ctx, "a/track.mp3")
	require.NoError(t, err)
	require.True(t, found)

	require.Equal(t, "a/track.mp3", got.FileKey)
	require.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Ratings, 3)
	require.Equal(t, "Energy", got.Ratings[0].Dimension)
	require.Equal(t, 8.5, got.Ratings[0].Value)
	require.Equal(t, "Driving", got.Ratings[0].Explanation)
	require.True(t, got.AnalyzedAt.Equal(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestSQLiteGetMissing(t *testing.T) {
	client := newTestClient(t)

	_, found, err := client.GetMoodTags(context.Background(), "never/tagged.mp3")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteReanalysisReplaces(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.StoreMoodTags(ctx, sampleTags("t.mp3")))

	updated := &models.MoodTags{
		FileKey: "t.mp3",
		Ratings: []models.MoodRating{
			{Dimension: "Energy", Value: 2, Explanation: "Recut"},
		},
		AnalyzedAt: time.Now().UTC(),
		Model:      "gemini-2.5-flash",
	}
	require.NoError(t, client.StoreMoodTags(ctx, updated))

	got, found, err := client.GetMoodTags(ctx, "t.mp3")
	require.NoError(t, err)
	require.True(t, found)
	// Old dimensions must not survive a re-analysis
	require.Len(t, got.Ratings, 1)
	require.Equal(t, 2.0, got.Ratings[0].Value)
}

func TestSQLiteDeleteAndCount(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.StoreMoodTags(ctx, sampleTags("one.mp3")))
	require.NoError(t, client.StoreMoodTags(ctx, sampleTags("two.mp3")))

	count, err := client.TotalTagged(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	keys, err := client.ListFileKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	require.NoError(t, client.DeleteMoodTags(ctx, "one.mp3"))

	count, err = client.TotalTagged(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, found, err := client.GetMoodTags(ctx, "one.mp3")
	require.NoError(t, err)
	require.False(t, found)
}
