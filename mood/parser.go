package mood

import (
	"regexp"
	"strconv"
	"strings"

	"mood-tagger/models"
)

// ratingLine matches one "<Dimension>: <number> - <explanation>" response
// line. The explanation part is optional.
var ratingLine = regexp.MustCompile(`^\s*\*{0,2}([A-Za-z ]+?)\*{0,2}\s*:\s*(-?\d+(?:\.\d+)?)\s*(?:-\s*(.*))?$`)

// ParseRatings extracts one rating per dimension from the model's free
// text. A missing or malformed line for a dimension yields value 0 for
// that dimension; the remaining dimensions still parse. The result always
// has exactly one entry per dimension, in Dimensions order.
func ParseRatings(text string) []models.MoodRating {
	found := make(map[string]models.MoodRating, len(Dimensions))

	for _, line := range strings.Split(text, "\n") {
		m := ratingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := canonicalDimension(strings.TrimSpace(m[1]))
		if name == "" {
			continue
		}
		if _, ok := found[name]; ok {
			continue // first occurrence wins
		}

		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		found[name] = models.MoodRating{
			Dimension:   name,
			Value:       value,
			Explanation: strings.TrimSpace(m[3]),
		}
	}

	ratings := make([]models.MoodRating, 0, len(Dimensions))
	for _, d := range Dimensions {
		if r, ok := found[d]; ok {
			ratings = append(ratings, r)
		} else {
			ratings = append(ratings, models.MoodRating{Dimension: d})
		}
	}
	return ratings
}

// canonicalDimension maps a response label onto a known dimension name,
// case-insensitively, or returns "" for unknown labels.
func canonicalDimension(label string) string {
	for _, d := range Dimensions {
		if strings.EqualFold(label, d) {
			return d
		}
	}
	return ""
}
