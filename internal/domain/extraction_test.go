package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractedParams_IsEmpty(t *testing.T) {
	empty := ExtractedParams{}
	assert.True(t, empty.IsEmpty())

	withOrigin := ExtractedParams{Origin: "MOW"}
	assert.False(t, withOrigin.IsEmpty())

	withDuration := ExtractedParams{DurationDaysMax: 14}
	assert.False(t, withDuration.IsEmpty())
}

func TestExtractedParams_Normalize(t *testing.T) {
	params := ExtractedParams{
		Origin:      " mow ",
		Destination: "par",
		Flexibility: "Start_Of_Month",
	}

	params.Normalize()

	assert.Equal(t, "MOW", params.Origin)
	assert.Equal(t, "PAR", params.Destination)
	assert.Equal(t, "start_of_month", params.Flexibility)
}

func TestExtractedParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  ExtractedParams
		wantErr string
	}{
		{
			name:   "empty extraction is fine",
			params: ExtractedParams{},
		},
		{
			name: "complete extraction",
			params: ExtractedParams{
				Origin:          "MOW",
				Destination:     "PAR",
				DepartureDate:   "2026-03-01",
				ReturnDate:      "2026-03-11",
				Flexibility:     "exact",
				DurationDaysMin: 10,
				DurationDaysMax: 14,
			},
		},
		{
			name:    "bad origin code",
			params:  ExtractedParams{Origin: "MOSCOW"},
			wantErr: "not a 3-letter IATA code",
		},
		{
			name:    "bad departure date",
			params:  ExtractedParams{DepartureDate: "March 1st"},
			wantErr: "not a valid YYYY-MM-DD date",
		},
		{
			name:    "bad return date",
			params:  ExtractedParams{ReturnDate: "2026-13-45"},
			wantErr: "not a valid YYYY-MM-DD date",
		},
		{
			name:    "unknown flexibility",
			params:  ExtractedParams{Flexibility: "whenever"},
			wantErr: "not a known mode",
		},
		{
			name:    "negative duration",
			params:  ExtractedParams{DurationDaysMin: -1},
			wantErr: "non-negative",
		},
		{
			name:    "inverted duration range",
			params:  ExtractedParams{DurationDaysMin: 14, DurationDaysMax: 10},
			wantErr: "inverted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsInvalidParams(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 1), parsed)

	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}
