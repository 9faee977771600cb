package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// normText trims the value and treats "", "null" and "na" (case-insensitive)
// as an explicit absent value, never as a literal string.
func normText(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "null", "na":
		return nil
	}
	return &s
}

// parseNumber strips every character that is not a digit, a decimal point or a
// minus sign, then parses the rest. "$1,234.50" becomes 1234.50. Unparseable
// values become absent, not zero.
func parseNumber(v string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, v)
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}

// parseInt parses a numeric field and truncates it to an integer.
func parseInt(v string) *int {
	n := parseNumber(v)
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}

// dateLayouts are tried in order: the direct ISO forms first, then the
// fallback strategies for the formats seen in source exports.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// parseDate attempts each known layout against the trimmed value. Both
// strategies failing yields an absent date; the row is still accepted.
func parseDate(v string) *time.Time {
	s := normText(v)
	if s == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// splitTags splits on comma, trims each piece and drops empties. Source order
// is preserved and duplicates are kept.
func splitTags(v string) []string {
	return lo.FilterMap(strings.Split(v, ","), func(piece string, _ int) (string, bool) {
		piece = strings.TrimSpace(piece)
		return piece, piece != ""
	})
}
