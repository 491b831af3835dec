package schedule

import "time"

// dayCodes maps single-letter day abbreviations found in printed class
// schedules to weekdays. Process-wide read-only configuration; weekend codes
// do not occur in this domain.
var dayCodes = map[string]time.Weekday{
	"M": time.Monday,
	"T": time.Tuesday,
	"W": time.Wednesday,
	"R": time.Thursday,
	"F": time.Friday,
}

const (
	// dateTimeLayout is the expected form of the start/end fields.
	dateTimeLayout = "2006-01-02T15:04:05"
	// dateLayout is the expected form of the end_date field.
	dateLayout = "2006-01-02"
)
