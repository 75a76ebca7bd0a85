package service

import (
	"errors"
	"testing"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func weekFiveGames() []entity.Game {
	return []entity.Game{
		{
			ID:         uuid.New(),
			Season:     2024,
			Week:       5,
			HomeTeam:   "KC",
			AwayTeam:   "BUF",
			SpreadLine: floatPtr(-2.5),
			TotalLine:  floatPtr(47.5),
		},
		{
			ID:       uuid.New(),
			Season:   2024,
			Week:     5,
			HomeTeam: "DAL",
			AwayTeam: "PHI",
		},
	}
}

func TestRelevantGamesRequiresBothTeams(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()

	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "both teams mentioned",
			text: "The Chiefs host the Bills in a rematch of the playoff classic.",
			want: 1,
		},
		{
			name: "only one team mentioned",
			text: "Kansas City looks unstoppable at home this year.",
			want: 0,
		},
		{
			name: "no teams mentioned",
			text: "Fantasy waiver wire targets for this week.",
			want: 0,
		},
		{
			name: "nicknames count across multiple games",
			text: "The Bills travel to face the Chiefs while the Eagles visit the Cowboys.",
			want: 2,
		},
		{
			name: "short code does not match inside a word",
			text: "KC has a bye. Bufficient nonsense should not count as Buffalo.",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, m.RelevantGames(tt.text, games), tt.want)
		})
	}
}

func TestMatchBuildsPrediction(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()
	sourceID := uuid.New()
	extractedAt := time.Now()
	quote := "I love the Chiefs to cover here."

	pick := dto.ExtractedPick{
		Game:       dto.ExtractedGameRef{HomeTeam: "Chiefs", AwayTeam: "Bills"},
		PickType:   entity.PickTypeSpread,
		PickSide:   entity.PickSideHome,
		Line:       floatPtr(-3),
		Confidence: floatPtr(0.8),
		Quote:      &quote,
	}

	prediction, err := m.Match(pick, games, sourceID, 2024, 5, "https://example.com/picks", extractedAt)
	require.NoError(t, err)

	assert.Equal(t, sourceID, prediction.SourceID)
	assert.Equal(t, games[0].ID, prediction.GameID)
	assert.Equal(t, 2024, prediction.Season)
	assert.Equal(t, 5, prediction.Week)
	assert.Equal(t, entity.PickSideHome, prediction.PickSide)
	assert.Equal(t, -3.0, prediction.LineAtPick)
	assert.Equal(t, 0.8, prediction.ExtractionConfidence)
	assert.Equal(t, entity.ExtractionMethodLLM, prediction.ExtractionMethod)
	assert.Equal(t, &quote, prediction.RawQuote)
	assert.Equal(t, extractedAt, prediction.ExtractedAt)
}

func TestMatchDefaultsLineAndConfidence(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()

	pick := dto.ExtractedPick{
		Game:     dto.ExtractedGameRef{HomeTeam: "KC", AwayTeam: "BUF"},
		PickType: entity.PickTypeTotal,
		PickSide: entity.PickSideOver,
	}

	prediction, err := m.Match(pick, games, uuid.New(), 2024, 5, "https://example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 47.5, prediction.LineAtPick)
	assert.Equal(t, 0.5, prediction.ExtractionConfidence)
}

func TestMatchLineZeroWhenGameHasNone(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()

	pick := dto.ExtractedPick{
		Game:     dto.ExtractedGameRef{HomeTeam: "Cowboys", AwayTeam: "Eagles"},
		PickType: entity.PickTypeSpread,
		PickSide: entity.PickSideAway,
	}

	prediction, err := m.Match(pick, games, uuid.New(), 2024, 5, "https://example.com", time.Now())
	require.NoError(t, err)
	assert.Zero(t, prediction.LineAtPick)
}

func TestMatchReversedSidesStillMatches(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()

	// The model swapped home and away; the pair key is order-independent.
	pick := dto.ExtractedPick{
		Game:     dto.ExtractedGameRef{HomeTeam: "Bills", AwayTeam: "Chiefs"},
		PickType: entity.PickTypeSpread,
		PickSide: entity.PickSideAway,
	}

	prediction, err := m.Match(pick, games, uuid.New(), 2024, 5, "https://example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, games[0].ID, prediction.GameID)
}

func TestMatchRejections(t *testing.T) {
	games := weekFiveGames()
	m := NewMatcher()

	tests := []struct {
		name   string
		pick   dto.ExtractedPick
		reason RejectReason
	}{
		{
			name: "unresolved team",
			pick: dto.ExtractedPick{
				Game:     dto.ExtractedGameRef{HomeTeam: "Mars Rovers", AwayTeam: "Bills"},
				PickType: entity.PickTypeSpread,
				PickSide: entity.PickSideHome,
			},
			reason: RejectUnresolvedTeam,
		},
		{
			name: "game not on slate",
			pick: dto.ExtractedPick{
				Game:     dto.ExtractedGameRef{HomeTeam: "Packers", AwayTeam: "Bears"},
				PickType: entity.PickTypeSpread,
				PickSide: entity.PickSideHome,
			},
			reason: RejectUnmatchedGame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Match(tt.pick, games, uuid.New(), 2024, 5, "https://example.com", time.Now())
			require.Error(t, err)

			var rejection *RejectionError
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, tt.reason, rejection.Reason)
		})
	}
}
