package schedule

import "strings"

const fenceMarker = "```"

// Sanitize normalizes the common wrapping artifacts a text-generating model
// leaves around structured output despite "output raw data only" instructions:
// surrounding whitespace, a triple-backtick code fence, a leading "json"
// language tag (with optional colon), and stray backticks. It never fails,
// and runs to a fixpoint so sanitizing twice is a no-op.
func Sanitize(raw string) string {
	prev := raw
	for {
		next := sanitizeOnce(prev)
		// Every rule only removes characters, so this converges.
		if next == prev {
			return next
		}
		prev = next
	}
}

func sanitizeOnce(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, fenceMarker) && strings.HasSuffix(cleaned, fenceMarker) && len(cleaned) >= 2*len(fenceMarker) {
		cleaned = strings.TrimSpace(cleaned[len(fenceMarker) : len(cleaned)-len(fenceMarker)])
	}

	if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
		cleaned = strings.TrimSpace(cleaned[4:])
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, ":"))
	}

	return strings.ReplaceAll(cleaned, "`", "")
}
