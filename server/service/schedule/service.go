// Package schedule implements the schedule-extraction-to-calendar pipeline:
// sanitize the raw extraction response, decode it into events, expand each
// event into weekly-recurring calendar entries, and emit one calendar
// document.
package schedule

import (
	"context"
	"log/slog"

	"github.com/classcal/classcal/plugin/ai"
	"github.com/classcal/classcal/server/internal/observability"
	"github.com/classcal/classcal/server/service/calendar"
)

// Summary reports what one conversion did, for logging and tests.
type Summary struct {
	// Decoded is the number of raw events in the extraction response.
	Decoded int
	// Emitted is the number of calendar entries written.
	Emitted int
	// Skipped holds the per-event and per-day diagnostics.
	Skipped []Skip
}

// Service runs the conversion pipeline. It is stateless and safe for
// concurrent use; every request allocates its own intermediate data.
type Service struct {
	extractor ai.ExtractionService
	emitter   *calendar.Emitter
}

// NewService creates a conversion service.
func NewService(extractor ai.ExtractionService, emitter *calendar.Emitter) *Service {
	return &Service{
		extractor: extractor,
		emitter:   emitter,
	}
}

// Convert runs image → extraction → sanitize → decode → expand → emit and
// returns a handle to the written calendar document.
//
// Fatal failures (extraction, decode, persistence) abort with a coded error.
// Per-event failures never abort: an all-skipped batch still yields an
// empty, downloadable calendar, and the skips are reported in the Summary.
func (s *Service) Convert(ctx context.Context, imagePath string) (*calendar.Document, *Summary, error) {
	logger := observability.LoggerFromContext(ctx)

	raw, err := s.extractor.ExtractSchedule(ctx, imagePath)
	if err != nil {
		return nil, nil, err
	}

	events, err := Decode(Sanitize(raw))
	if err != nil {
		return nil, nil, err
	}

	entries, skipped := Expand(ctx, events)
	if len(entries) == 0 && len(events) > 0 {
		logger.Warn("every extracted event was skipped, emitting empty calendar",
			slog.Int(observability.LogFieldEventCount, len(events)),
			slog.Int(observability.LogFieldSkippedCount, len(skipped)),
		)
	}

	doc, err := s.emitter.Emit(entries)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{
		Decoded: len(events),
		Emitted: len(entries),
		Skipped: skipped,
	}
	logger.Info("schedule converted",
		slog.Int(observability.LogFieldEventCount, summary.Decoded),
		slog.Int(observability.LogFieldEmittedCount, summary.Emitted),
		slog.Int(observability.LogFieldSkippedCount, len(summary.Skipped)),
	)
	return doc, summary, nil
}
