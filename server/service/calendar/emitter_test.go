package calendar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	pipeerr "github.com/classcal/classcal/internal/errors"
)

func sampleEvents() []Event {
	return []Event{
		{
			Name:          "CS101",
			Location:      "Rm 5",
			Description:   "Prof X",
			Start:         time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
			End:           time.Date(2024, 1, 8, 9, 50, 0, 0, time.UTC),
			RecurrenceEnd: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:          "MA221",
			Location:      "Hall B",
			Description:   "Prof Y",
			Start:         time.Date(2024, 1, 9, 13, 0, 0, 0, time.UTC),
			End:           time.Date(2024, 1, 9, 14, 15, 0, 0, time.UTC),
			RecurrenceEnd: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestEmitterRoundTrip(t *testing.T) {
	emitter := NewEmitter(t.TempDir())
	events := sampleEvents()

	doc, err := emitter.Emit(events)
	require.NoError(t, err)

	data, err := os.ReadFile(doc.Path)
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(string(data)))
	require.NoError(t, err)

	parsed := cal.Events()
	require.Len(t, parsed, len(events))

	// Input order is preserved for determinism.
	for i, vevent := range parsed {
		want := events[i]

		assert.Equal(t, want.Name, vevent.GetProperty(ics.ComponentPropertySummary).Value)
		assert.Equal(t, want.Location, vevent.GetProperty(ics.ComponentPropertyLocation).Value)
		assert.Equal(t, want.Description, vevent.GetProperty(ics.ComponentPropertyDescription).Value)

		start, err := vevent.GetStartAt()
		require.NoError(t, err)
		assert.True(t, start.Equal(want.Start), "start = %v, want %v", start, want.Start)

		end, err := vevent.GetEndAt()
		require.NoError(t, err)
		assert.True(t, end.Equal(want.End), "end = %v, want %v", end, want.End)

		require.NotNil(t, vevent.GetProperty(ics.ComponentPropertyRrule))
		assert.Equal(t, "FREQ=WEEKLY;UNTIL=20240322", vevent.GetProperty(ics.ComponentPropertyRrule).Value)
	}
}

func TestEmitterRecurrenceExpansion(t *testing.T) {
	emitter := NewEmitter(t.TempDir())
	serialized := emitter.Serialize(sampleEvents()[:1])

	cal, err := ics.ParseCalendar(strings.NewReader(serialized))
	require.NoError(t, err)
	vevent := cal.Events()[0]

	rule, err := rrule.StrToRRule(vevent.GetProperty(ics.ComponentPropertyRrule).Value)
	require.NoError(t, err)

	start, err := vevent.GetStartAt()
	require.NoError(t, err)
	rule.DTStart(start)

	// Mondays 2024-01-08 through 2024-03-22: eleven weekly occurrences,
	// the last on 2024-03-18.
	occurrences := rule.All()
	require.Len(t, occurrences, 11)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), occurrences[0].UTC())
	assert.Equal(t, time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC), occurrences[10].UTC())
}

func TestEmitterEmptyBatch(t *testing.T) {
	emitter := NewEmitter(t.TempDir())

	doc, err := emitter.Emit(nil)
	require.NoError(t, err)

	data, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.NotContains(t, string(data), "BEGIN:VEVENT")
}

func TestEmitterUniqueFilenames(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(dir)

	first, err := emitter.Emit(nil)
	require.NoError(t, err)
	second, err := emitter.Emit(nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, dir, filepath.Dir(first.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(first.Path), "schedule_"))
	assert.True(t, strings.HasSuffix(first.Path, ".ics"))
}

func TestEmitterMissingDirectory(t *testing.T) {
	emitter := NewEmitter("/nonexistent/classcal-test")

	_, err := emitter.Emit(sampleEvents())
	require.Error(t, err)
	assert.True(t, pipeerr.IsCode(err, pipeerr.ErrCodePersistence))
}
