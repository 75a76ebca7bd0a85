package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	spread := -2.5
	total := 47.5
	games := []entity.Game{
		{
			Season:     2024,
			Week:       5,
			HomeTeam:   "KC",
			AwayTeam:   "BUF",
			GameDate:   time.Date(2024, 10, 6, 20, 20, 0, 0, time.UTC),
			SpreadLine: &spread,
			TotalLine:  &total,
		},
		{
			Season:   2024,
			Week:     5,
			HomeTeam: "DAL",
			AwayTeam: "PHI",
			GameDate: time.Date(2024, 10, 6, 17, 0, 0, 0, time.UTC),
		},
	}

	prompt := BuildExtractionPrompt("The Chiefs will cover.", games, 0)

	assert.Contains(t, prompt, "BUF at KC on 2024-10-06T20:20:00Z (spread: -2.5, total: 47.5)")
	assert.Contains(t, prompt, "PHI at DAL on 2024-10-06T17:00:00Z (spread: N/A, total: N/A)")
	assert.Contains(t, prompt, `"pickType": "spread" | "total"`)
	assert.Contains(t, prompt, "The Chiefs will cover.")
}

func TestBuildExtractionPromptTruncatesArticle(t *testing.T) {
	long := strings.Repeat("a", 500)

	prompt := BuildExtractionPrompt(long, nil, 100)
	assert.Contains(t, prompt, strings.Repeat("a", 100))
	assert.NotContains(t, prompt, strings.Repeat("a", 101))
}
