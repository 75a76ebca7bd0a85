package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
)

const extractionSystemPrompt = "Extract structured NFL betting picks in valid JSON."

// BuildExtractionPrompt renders the extraction prompt: the relevant slice of
// the schedule followed by the output schema and rules. Article text is
// truncated to maxChars to keep the request inside the model's context.
func BuildExtractionPrompt(articleText string, games []entity.Game, maxChars int) string {
	var schedule strings.Builder
	for _, game := range games {
		spread := "N/A"
		if game.SpreadLine != nil {
			spread = fmt.Sprintf("%g", *game.SpreadLine)
		}
		total := "N/A"
		if game.TotalLine != nil {
			total = fmt.Sprintf("%g", *game.TotalLine)
		}
		schedule.WriteString(fmt.Sprintf("%s at %s on %s (spread: %s, total: %s)\n",
			game.AwayTeam, game.HomeTeam, game.GameDate.UTC().Format(time.RFC3339), spread, total))
	}

	if maxChars > 0 && len(articleText) > maxChars {
		articleText = articleText[:maxChars]
	}

	return fmt.Sprintf(`You are an information extraction model that reads NFL betting articles and returns structured picks.

NFL schedule (awayTeam at homeTeam, ISO date):
%s
Extract all explicit betting picks. Return JSON only, no prose.
Schema:
[
  {
    "game": { "homeTeam": "KC", "awayTeam": "BUF", "week": 5, "season": 2024 },
    "pickType": "spread" | "total",
    "pickSide": "home" | "away" | "over" | "under",
    "line": number,
    "confidence": number between 0 and 1,
    "quote": "verbatim supporting sentence"
  }
]

Rules:
- Use the team codes exactly as shown in the schedule.
- For spread picks, pickSide is "home" or "away" relative to the listed homeTeam.
- For total picks, pickSide is "over" or "under".
- Include every pick found; omit speculative statements.
- If no picks are present, return an empty array [].

Article:
"""%s"""`, schedule.String(), articleText)
}
