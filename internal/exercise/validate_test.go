package exercise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesDatePattern(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2020-01-05", true},
		{"0001-01-01", true},
		{"9999-12-31", true},
		{"2020-1-5", false},
		{"2020-01-05T00:00:00Z", false},
		{"2020-01-05 ", false},
		{" 2020-01-05", false},
		{"20200105", false},
		{"2020/01/05", false},
		{"", false},
		{"not a date", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchesDatePattern(tc.input), "input %q", tc.input)
	}
}

func TestParseWholeNumber(t *testing.T) {
	n, err := ParseWholeNumber("45")
	require.NoError(t, err)
	assert.Equal(t, 45, n)

	n, err = ParseWholeNumber("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	for _, input := range []string{"45.5", "45,5", "forty", "", "4 5"} {
		_, err := ParseWholeNumber(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseFilterDate(t *testing.T) {
	parsed, err := ParseFilterDate("1990-12-13")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.December, 13, 0, 0, 0, 0, time.UTC), parsed)

	// matches the pattern but is not a real calendar date
	_, err = ParseFilterDate("2020-13-45")
	assert.Error(t, err)

	_, err = ParseFilterDate("2020-01-05T00:00:00Z")
	assert.Error(t, err)

	_, err = ParseFilterDate("")
	assert.Error(t, err)
}

func TestParseEntryDate(t *testing.T) {
	fixed := time.Date(2024, time.March, 9, 15, 30, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	got, err := ParseEntryDate("", now)
	require.NoError(t, err)
	assert.Equal(t, fixed, got, "empty date defaults to now")

	got, err = ParseEntryDate("1990-12-13", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.December, 13, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseEntryDate("13-12-1990", now)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, RequestErrorTypeInvalidDate, reqErr.Type)
}
