package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"plain value", "Mumbai", strPtr("Mumbai")},
		{"trims whitespace", "  Mumbai  ", strPtr("Mumbai")},
		{"empty is absent", "", nil},
		{"spaces only is absent", "   ", nil},
		{"NA is absent", "NA", nil},
		{"na lowercase is absent", "na", nil},
		{"null is absent", "null", nil},
		{"NULL uppercase is absent", "NULL", nil},
		{"NAN is kept", "NAN", strPtr("NAN")},
		{"value containing na kept", "banana", strPtr("banana")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normText(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"currency and thousands", "$1,200.50", floatPtr(1200.50)},
		{"plain integer", "42", floatPtr(42)},
		{"negative", "-17.5", floatPtr(-17.5)},
		{"thousands only", "1,234", floatPtr(1234)},
		{"letters become absent", "abc", nil},
		{"empty is absent", "", nil},
		{"two decimal points is absent", "1.2.3", nil},
		{"currency prefix stripped", "₹99.99", floatPtr(99.99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseInt(t *testing.T) {
	got := parseInt("3")
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)

	got = parseInt("3.9")
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)

	assert.Nil(t, parseInt("n/a-ish")) // strips to "-", unparseable
	assert.Nil(t, parseInt(""))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"iso date", "2024-05-10", timePtr(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))},
		{"rfc3339", "2024-05-10T12:30:00Z", timePtr(time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC))},
		{"datetime fallback", "2024-05-10 08:00:00", timePtr(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC))},
		{"slash fallback", "05/10/2024", timePtr(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))},
		{"garbage is absent", "not-a-date", nil},
		{"NA is absent", "NA", nil},
		{"empty is absent", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"summer", "sale", "summer"}, splitTags("summer, sale , summer"))
	assert.Equal(t, []string{"a", "b"}, splitTags("a,,b,"))
	assert.Empty(t, splitTags(""))
	assert.Empty(t, splitTags(" , ,"))
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }
