package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawEvent(overrides map[string]any) RawEvent {
	ev := RawEvent{
		"title":    "CS101",
		"start":    "2024-01-08T09:00:00",
		"end":      "2024-01-08T09:50:00",
		"days":     "MWF",
		"location": "Rm 5",
		"end_date": "2024-03-22",
		"notes":    "Prof X",
	}
	for k, v := range overrides {
		if v == nil {
			delete(ev, k)
			continue
		}
		ev[k] = v
	}
	return ev
}

func TestExpandFanOut(t *testing.T) {
	entries, skipped := Expand(context.Background(), []RawEvent{rawEvent(nil)})
	require.Empty(t, skipped)
	require.Len(t, entries, 3)

	wantAnchors := []time.Time{
		time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),  // Monday, the start date itself
		time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), // Wednesday
		time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC), // Friday
	}
	for i, entry := range entries {
		assert.Equal(t, "CS101", entry.Name)
		assert.Equal(t, "Rm 5", entry.Location)
		assert.Equal(t, "Prof X", entry.Description)
		assert.Equal(t, wantAnchors[i], entry.Start)
		assert.Equal(t, wantAnchors[i].Add(50*time.Minute), entry.End)
		assert.Equal(t, time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), entry.RecurrenceEnd)
	}
}

func TestExpandAnchorNeverPrecedesStart(t *testing.T) {
	// Start is Monday 2024-01-08; a Wednesday class must anchor on
	// 2024-01-10, not walk back to 2024-01-03.
	entries, skipped := Expand(context.Background(), []RawEvent{rawEvent(map[string]any{"days": "W"})})
	require.Empty(t, skipped)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), entries[0].Start)

	// And a Monday class starting on a Wednesday anchors the following
	// Monday, five days later.
	entries, skipped = Expand(context.Background(), []RawEvent{rawEvent(map[string]any{
		"start": "2024-01-10T09:00:00",
		"end":   "2024-01-10T09:50:00",
		"days":  "M",
	})})
	require.Empty(t, skipped)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), entries[0].Start)
}

func TestExpandUnrecognizedDayCode(t *testing.T) {
	entries, skipped := Expand(context.Background(), []RawEvent{rawEvent(map[string]any{"days": "MXF"})})
	require.Len(t, entries, 2)
	require.Len(t, skipped, 1)
	assert.Equal(t, 0, skipped[0].EventIndex)
	assert.Equal(t, "X", skipped[0].Day)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), entries[0].Start)
	assert.Equal(t, time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC), entries[1].Start)
}

func TestExpandLowercaseDayCodes(t *testing.T) {
	entries, skipped := Expand(context.Background(), []RawEvent{rawEvent(map[string]any{"days": "mwf"})})
	assert.Empty(t, skipped)
	assert.Len(t, entries, 3)
}

func TestExpandDaysAsSequence(t *testing.T) {
	entries, skipped := Expand(context.Background(), []RawEvent{rawEvent(map[string]any{"days": []any{"M", "W", "F"}})})
	assert.Empty(t, skipped)
	assert.Len(t, entries, 3)
}

func TestExpandPartialBatch(t *testing.T) {
	batch := []RawEvent{
		rawEvent(nil),
		rawEvent(map[string]any{"title": nil}), // missing title
		rawEvent(map[string]any{"days": "T"}),
	}
	entries, skipped := Expand(context.Background(), batch)
	require.Len(t, entries, 4) // 3 from event 0, 1 from event 2
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].EventIndex)
	assert.Contains(t, skipped[0].Reason, "title")
}

func TestExpandMalformedEvents(t *testing.T) {
	tests := []struct {
		name       string
		event      RawEvent
		wantReason string
	}{
		{
			name:       "nil event",
			event:      nil,
			wantReason: "missing field",
		},
		{
			name:       "unparseable start",
			event:      rawEvent(map[string]any{"start": "Monday 9am"}),
			wantReason: "unparseable start",
		},
		{
			name:       "unparseable end_date",
			event:      rawEvent(map[string]any{"end_date": "22/03/2024"}),
			wantReason: "unparseable end_date",
		},
		{
			name:       "non string title",
			event:      rawEvent(map[string]any{"title": 7.0}),
			wantReason: "not a string",
		},
		{
			name:       "missing days",
			event:      rawEvent(map[string]any{"days": nil}),
			wantReason: "missing field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, skipped := Expand(context.Background(), []RawEvent{tt.event})
			assert.Empty(t, entries)
			require.Len(t, skipped, 1)
			assert.Contains(t, skipped[0].Reason, tt.wantReason)
		})
	}
}

func TestExpandDuplicatesExpandIndependently(t *testing.T) {
	batch := []RawEvent{
		rawEvent(map[string]any{"days": "M"}),
		rawEvent(map[string]any{"days": "M"}),
	}
	entries, skipped := Expand(context.Background(), batch)
	assert.Empty(t, skipped)
	require.Len(t, entries, 2)
	assert.Equal(t, entries[0].Start, entries[1].Start)
}

func TestExpandEmptyBatch(t *testing.T) {
	entries, skipped := Expand(context.Background(), nil)
	assert.Empty(t, entries)
	assert.Empty(t, skipped)
}
