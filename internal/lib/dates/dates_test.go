package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptedLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso date", "2023-02-01", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"canonical form", "Wed Feb 01 2023", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 drops time of day", "2023-02-01T15:04:05Z", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"slash date is month first", "01/02/2023", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"slash date unpadded", "1/2/2023", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"short month name", "Jan 1 2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"long month name", "January 1 2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"long month name with comma", "January 1, 2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2023-13-45", "13/45/2023"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	parsed, err := Parse("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Sun Jan 01 2023", Format(parsed))

	// Normalized output parses back to the same date.
	again, err := Parse(Format(parsed))
	require.NoError(t, err)
	assert.Equal(t, parsed, again)
}

func TestTruncate(t *testing.T) {
	in := time.Date(2023, 6, 15, 23, 59, 59, 123, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), Truncate(in))
}

func TestTodayIsCanonical(t *testing.T) {
	_, err := time.Parse(Layout, Today())
	require.NoError(t, err)
}
