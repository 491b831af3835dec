package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	pipeerr "github.com/classcal/classcal/internal/errors"
)

const (
	prodID = "-//classcal//schedule converter//EN"

	// untilDateLayout is the RFC 5545 bare DATE form used for the
	// inclusive recurrence end.
	untilDateLayout = "20060102"
)

// Emitter writes calendar documents into a target directory.
type Emitter struct {
	dir string
	// now is swappable for deterministic DTSTAMP values in tests.
	now func() time.Time
}

// NewEmitter creates an Emitter writing into dir. The directory must exist.
func NewEmitter(dir string) *Emitter {
	return &Emitter{
		dir: dir,
		now: time.Now,
	}
}

// Serialize renders the events into a single VCALENDAR document, preserving
// input order.
func (e *Emitter) Serialize(events []Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	stamp := e.now().UTC()
	for _, ev := range events {
		vevent := cal.AddEvent(uuid.New().String() + "@classcal")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(ev.Name)
		if ev.Location != "" {
			vevent.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		vevent.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", ev.RecurrenceEnd.Format(untilDateLayout)))
	}
	return cal.Serialize()
}

// Emit serializes the events and writes them under a generated unique
// filename so concurrent requests never collide. The returned Document is
// the handle the boundary layer streams back to the caller.
func (e *Emitter) Emit(events []Event) (*Document, error) {
	id := uuid.New().String()
	path := filepath.Join(e.dir, fmt.Sprintf("schedule_%s.ics", id))

	if err := os.WriteFile(path, []byte(e.Serialize(events)), 0o600); err != nil {
		return nil, pipeerr.Persistence(fmt.Sprintf("failed to write calendar document %q", path), err)
	}
	return &Document{ID: id, Path: path}, nil
}
