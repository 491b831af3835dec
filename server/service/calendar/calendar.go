// Package calendar assembles recurring schedule entries into an iCalendar
// document and persists it for download.
package calendar

import "time"

// Event is a single weekly-recurring calendar entry, anchored at its first
// occurrence. The recurrence rule projects later instances; no occurrences
// beyond the anchor are materialized here.
type Event struct {
	Name        string
	Location    string
	Description string

	// Start / End carry the anchor occurrence. Time-of-day matches the
	// source event; only the date component is advanced to the target
	// weekday.
	Start time.Time
	End   time.Time

	// RecurrenceEnd is the inclusive end date of the weekly recurrence.
	// Only its date component is meaningful.
	RecurrenceEnd time.Time
}

// Document is a handle to a persisted calendar file.
type Document struct {
	// ID is the generated unique identifier embedded in the filename.
	ID string
	// Path is the absolute or store-relative path of the written file.
	Path string
}
