package ai

import (
	"fmt"
	"time"
)

// defaultTermWeeks is the scheduling window assumed when the photographed
// schedule carries no dates of its own: today through 11 weeks from today.
const defaultTermWeeks = 11

// buildPrompt returns the extraction instruction sent alongside the image.
// Concrete dates are injected so the model resolves "today" deterministically
// instead of guessing at its own clock.
func buildPrompt(now time.Time) string {
	start := now.Format("2006-01-02")
	end := now.AddDate(0, 0, defaultTermWeeks*7).Format("2006-01-02")

	return fmt.Sprintf(`Use this image of a college class schedule and output the schedule as a JSON object with an "events" array.
Each event must include "title", "start", "end", "days", "location", "end_date", and "notes".
In the image, the day letters correspond to: M = Monday, T = Tuesday, W = Wednesday, R = Thursday, F = Friday.
Format "start" and "end" as "YYYY-MM-DDTHH:MM:SS" and "end_date" as "YYYY-MM-DD".
If the schedule does not specify its own dates, use %s as the starting date and %s as the ending date.
Output only the JSON data. Do not include any explanations or additional text.
Return only valid JSON. Do not include triple backticks or any Markdown formatting.`, start, end)
}
