package telegram

import (
	"fmt"
	"strings"
	"time"
)

// RunSummary carries the fields of a finished ingestion run that are worth
// pushing to the operator channel.
type RunSummary struct {
	Status            string
	Season            int
	Week              int
	Sources           int
	ArticlesProcessed int
	Errors            int
	Duration          time.Duration
	Message           string
}

// FormatRunSummary renders a run summary as a Markdown Telegram message.
func FormatRunSummary(s RunSummary) string {
	var b strings.Builder

	icon := "✅"
	switch s.Status {
	case "failed":
		icon = "❌"
	case "skipped":
		icon = "⏭"
	}

	b.WriteString(fmt.Sprintf("%s *Ingestion run %s*\n", icon, s.Status))
	b.WriteString(fmt.Sprintf("Season %d, Week %d\n", s.Season, s.Week))
	b.WriteString(fmt.Sprintf("Sources: %d | Articles: %d | Errors: %d\n", s.Sources, s.ArticlesProcessed, s.Errors))
	b.WriteString(fmt.Sprintf("Duration: %s", s.Duration.Round(time.Millisecond)))
	if s.Message != "" {
		b.WriteString(fmt.Sprintf("\n_%s_", s.Message))
	}
	return b.String()
}
