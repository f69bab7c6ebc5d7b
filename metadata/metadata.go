// Package metadata reads tag-level track metadata (title, artist, album,
// year, genre, embedded BPM) via ffprobe. All fields are optional: a file
// with no tags, or a machine without ffprobe, yields empty metadata rather
// than an error.
package metadata

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"mood-tagger/models"
)

// tag keys vary by container; ffprobe lowercases most but ID3 TBPM often
// surfaces as "TBPM".
var bpmTagKeys = []string{"TBPM", "tbpm", "bpm"}

// ReadTrackMetadata probes the file with ffprobe and extracts the standard
// tag fields. Missing ffprobe or a probe failure returns empty metadata.
func ReadTrackMetadata(path string) models.TrackMetadata {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return models.TrackMetadata{}
	}

	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return models.TrackMetadata{}
	}

	return parseProbeOutput(string(out))
}

func parseProbeOutput(probeJSON string) models.TrackMetadata {
	tags := gjson.Get(probeJSON, "format.tags")
	if !tags.Exists() {
		return models.TrackMetadata{}
	}

	meta := models.TrackMetadata{
		Title:  tagValue(tags, "title", "TITLE"),
		Artist: tagValue(tags, "artist", "ARTIST"),
		Album:  tagValue(tags, "album", "ALBUM"),
		Genre:  tagValue(tags, "genre", "GENRE"),
	}

	// Year may live under date or year depending on the container.
	year := tagValue(tags, "date", "year", "DATE", "YEAR")
	if len(year) >= 4 {
		year = year[:4]
	}
	meta.Year = year

	for _, key := range bpmTagKeys {
		raw := tags.Get(key).String()
		if raw == "" {
			continue
		}
		if bpm, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && bpm > 0 {
			meta.TagBPM = bpm
			break
		}
	}

	return meta
}

func tagValue(tags gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := tags.Get(key).String(); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
