package models

import (
	"time"
)

// TrackMetadata carries the tag-level metadata read from an audio file
// before decoding. Every field is optional; TagBPM is 0 when the file
// carries no usable tempo tag.
type TrackMetadata struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Year   string `json:"year,omitempty"`
	Genre  string `json:"genre,omitempty"`
	TagBPM float64 `json:"tagBpm,omitempty"`
}

// Fields returns the metadata as a key-value map for passthrough into the
// feature vector. Empty fields are omitted.
func (m TrackMetadata) Fields() map[string]string {
	fields := make(map[string]string, 5)
	if m.Title != "" {
		fields["title"] = m.Title
	}
	if m.Artist != "" {
		fields["artist"] = m.Artist
	}
	if m.Album != "" {
		fields["album"] = m.Album
	}
	if m.Year != "" {
		fields["year"] = m.Year
	}
	if m.Genre != "" {
		fields["genre"] = m.Genre
	}
	return fields
}

// MoodRating is one resolved mood dimension for a track.
type MoodRating struct {
	Dimension   string  `json:"dimension" bson:"dimension"`
	Value       float64 `json:"value" bson:"value"`
	Explanation string  `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// MoodTags bundles all ratings for a track together with provenance. This
// is what the tag store persists; the feature vector itself never is.
type MoodTags struct {
	FileKey    string       `json:"fileKey" bson:"fileKey"`
	Ratings    []MoodRating `json:"ratings" bson:"ratings"`
	AnalyzedAt time.Time    `json:"analyzedAt" bson:"analyzedAt"`
	Model      string       `json:"model" bson:"model"`
}

// FileResult records the outcome of processing a single file in a batch.
type FileResult struct {
	Path      string  `json:"path"`
	Degraded  bool    `json:"degraded,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Err       string  `json:"error,omitempty"`
	BPM       float64 `json:"bpm,omitempty"`
	LatencyMs float64 `json:"latencyMs,omitempty"`
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total    int          `json:"total"`
	Tagged   int          `json:"tagged"`
	Degraded int          `json:"degraded"`
	Failed   int          `json:"failed"`
	Results  []FileResult `json:"results"`
}
