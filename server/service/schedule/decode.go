package schedule

import (
	"github.com/hjson/hjson-go/v4"

	pipeerr "github.com/classcal/classcal/internal/errors"
)

// RawEvent is one entry of the extraction response's "events" sequence,
// kept as a permissive field map. Field presence is only checked during
// expansion so that one malformed entry cannot fail the whole decode.
type RawEvent map[string]any

// Decode parses sanitized extraction output into the event list. The parser
// is deliberately lenient (trailing commas, unquoted keys, missing commas):
// model output approximates JSON but does not guarantee it. Total parse
// failure, a missing "events" member, or a non-sequence "events" member abort
// the whole request; anything finer-grained is left to the expander.
func Decode(sanitized string) ([]RawEvent, error) {
	var root map[string]any
	if err := hjson.Unmarshal([]byte(sanitized), &root); err != nil {
		return nil, pipeerr.ScheduleFormat("extraction response is not a structured object", err)
	}

	rawEvents, ok := root["events"]
	if !ok {
		return nil, pipeerr.ScheduleFormat("extraction response has no \"events\" member", nil)
	}
	list, ok := rawEvents.([]any)
	if !ok {
		return nil, pipeerr.ScheduleFormat("\"events\" member is not a sequence", nil)
	}

	events := make([]RawEvent, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			events = append(events, RawEvent(m))
			continue
		}
		// Non-object entries survive decoding as empty events; the
		// expander skips them with a per-event diagnostic.
		events = append(events, RawEvent(nil))
	}
	return events, nil
}
