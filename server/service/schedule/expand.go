package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pipeerr "github.com/classcal/classcal/internal/errors"
	"github.com/classcal/classcal/server/internal/observability"
	"github.com/classcal/classcal/server/service/calendar"
)

// Skip records why an event, or a single day code within an event, produced
// no calendar entry. Skips are diagnostics, not failures: they surface only
// through logs and the conversion summary.
type Skip struct {
	// EventIndex is the zero-based position in the decoded batch.
	EventIndex int
	// Day is the offending day code for day-level skips, empty for
	// event-level skips.
	Day    string
	Reason string
}

// Expand turns decoded events into concrete weekly-recurring calendar
// entries. Failure is isolated per event: a malformed entry (missing field,
// unparseable date, unrecognized day code) is logged and skipped, never
// aborting the rest of the batch. One bad row in a multi-event extraction
// must not discard an otherwise good schedule, so Expand returns successes
// and diagnostics instead of an error.
func Expand(ctx context.Context, events []RawEvent) ([]calendar.Event, []Skip) {
	logger := observability.LoggerFromContext(ctx)

	out := make([]calendar.Event, 0, len(events))
	skipped := make([]Skip, 0)

	for idx, ev := range events {
		entries, skips := expandEvent(idx, ev)
		for _, s := range skips {
			logger.Warn("skipping schedule entry",
				slog.Int("event_index", s.EventIndex),
				slog.String("day", s.Day),
				slog.String("reason", s.Reason),
				slog.String(observability.LogFieldErrorCode, string(pipeerr.ErrCodeEventField)),
			)
		}
		skipped = append(skipped, skips...)
		out = append(out, entries...)
	}
	return out, skipped
}

func expandEvent(idx int, ev RawEvent) ([]calendar.Event, []Skip) {
	title, err := stringField(ev, "title")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	startStr, err := stringField(ev, "start")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	endStr, err := stringField(ev, "end")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	location, err := stringField(ev, "location")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	notes, err := stringField(ev, "notes")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	endDateStr, err := stringField(ev, "end_date")
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}
	days, err := dayField(ev)
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: err.Error()}}
	}

	start, err := time.Parse(dateTimeLayout, startStr)
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: fmt.Sprintf("unparseable start %q", startStr)}}
	}
	end, err := time.Parse(dateTimeLayout, endStr)
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: fmt.Sprintf("unparseable end %q", endStr)}}
	}
	endDate, err := time.Parse(dateLayout, endDateStr)
	if err != nil {
		return nil, []Skip{{EventIndex: idx, Reason: fmt.Sprintf("unparseable end_date %q", endDateStr)}}
	}

	var (
		entries []calendar.Event
		skips   []Skip
	)
	for _, code := range days {
		weekday, ok := dayCodes[strings.ToUpper(code)]
		if !ok {
			// Day-level isolation: an unknown code loses that day
			// only, sibling codes still expand.
			skips = append(skips, Skip{
				EventIndex: idx,
				Day:        code,
				Reason:     fmt.Sprintf("unrecognized day code %q", code),
			})
			continue
		}

		// First occurrence on or after the start date whose weekday
		// matches. The +7 keeps the offset non-negative, so the anchor
		// never walks backward into the week before the start date.
		offset := (int(weekday) - int(start.Weekday()) + 7) % 7
		anchor := start.AddDate(0, 0, offset)

		entries = append(entries, calendar.Event{
			Name:          title,
			Location:      location,
			Description:   notes,
			Start:         atClock(anchor, start),
			End:           atClock(anchor, end),
			RecurrenceEnd: endDate,
		})
	}
	return entries, skips
}

// atClock combines the date component of day with the time-of-day of clock.
func atClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

func stringField(ev RawEvent, key string) (string, error) {
	v, ok := ev[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s, nil
}

// dayField returns the event's day codes. Models emit either a compact
// string ("MWF") or a sequence of one-letter strings; both are accepted.
func dayField(ev RawEvent) ([]string, error) {
	v, ok := ev["days"]
	if !ok {
		return nil, fmt.Errorf("missing field %q", "days")
	}
	switch days := v.(type) {
	case string:
		codes := make([]string, 0, len(days))
		for _, r := range days {
			codes = append(codes, string(r))
		}
		return codes, nil
	case []any:
		codes := make([]string, 0, len(days))
		for _, item := range days {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field %q contains a non-string entry", "days")
			}
			codes = append(codes, s)
		}
		return codes, nil
	default:
		return nil, fmt.Errorf("field %q is neither a string nor a sequence", "days")
	}
}
