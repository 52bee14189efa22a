package exercise

import "time"

// displayDateLayout renders dates the way log listings always have:
// three-letter weekday and month, unpadded day, four-digit year.
const displayDateLayout = "Mon Jan 2 2006"

// FormatDisplayDate returns t as e.g. "Thu Dec 13 1990".
func FormatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}
