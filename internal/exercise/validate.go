package exercise

import (
	"regexp"
	"strconv"
	"time"
)

// filterDatePattern is the only accepted shape for filter dates: four
// digits, dash, two digits, dash, two digits. Full date-times are rejected.
var filterDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const dateLayout = "2006-01-02"

// ParseWholeNumber parses s as a whole number. Fractional and non-numeric
// input fails; this backs both the duration field and the log limit.
func ParseWholeNumber(s string) (int, error) {
	return strconv.Atoi(s)
}

// MatchesDatePattern reports whether s is exactly YYYY-MM-DD.
func MatchesDatePattern(s string) bool {
	return filterDatePattern.MatchString(s)
}

// ParseFilterDate parses a strict filter date. The string must match the
// YYYY-MM-DD pattern and name a real calendar date.
func ParseFilterDate(s string) (time.Time, error) {
	if !MatchesDatePattern(s) {
		return time.Time{}, &RequestError{Type: RequestErrorTypeInvalidDate, Field: "date", Value: s}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &RequestError{Type: RequestErrorTypeInvalidDate, Field: "date", Value: s}
	}
	return t, nil
}

// ParseEntryDate parses the lenient date for a new log entry: empty input
// defaults to the current time, a strict date parses as that day, and
// anything else is invalid.
func ParseEntryDate(s string, now func() time.Time) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	t, err := ParseFilterDate(s)
	if err != nil {
		return time.Time{}, NewInvalidDateError(s)
	}
	return t, nil
}
