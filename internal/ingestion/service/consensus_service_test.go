package service

import (
	"testing"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spreadPick(gameID uuid.UUID, side entity.PickSide) entity.Prediction {
	return entity.Prediction{
		SourceID: uuid.New(),
		GameID:   gameID,
		PickType: entity.PickTypeSpread,
		PickSide: side,
	}
}

func totalPick(gameID uuid.UUID, side entity.PickSide) entity.Prediction {
	return entity.Prediction{
		SourceID: uuid.New(),
		GameID:   gameID,
		PickType: entity.PickTypeTotal,
		PickSide: side,
	}
}

func TestBuildConsensusScoresMajority(t *testing.T) {
	gameID := uuid.New()
	now := time.Now()

	predictions := []entity.Prediction{
		spreadPick(gameID, entity.PickSideHome),
		spreadPick(gameID, entity.PickSideHome),
		spreadPick(gameID, entity.PickSideHome),
		spreadPick(gameID, entity.PickSideAway),
	}

	scores, dropped := BuildConsensusScores(2024, 5, predictions, now)
	require.Len(t, scores, 1)
	assert.Zero(t, dropped)

	score := scores[0]
	assert.Equal(t, gameID, score.GameID)
	assert.Equal(t, entity.PickTypeSpread, score.PickType)
	assert.Equal(t, entity.PickSideHome, score.MajoritySide)
	assert.Equal(t, 2, score.Score)
	assert.Equal(t, "moderate", score.SignalLabel)
	assert.Equal(t, 4, score.NumPredictions)
	assert.Equal(t, now, score.CalculatedAt)
}

func TestBuildConsensusScoresTieBreaks(t *testing.T) {
	gameID := uuid.New()

	tests := []struct {
		name  string
		picks []entity.Prediction
		side  entity.PickSide
	}{
		{
			name: "spread tie resolves to home",
			picks: []entity.Prediction{
				spreadPick(gameID, entity.PickSideHome),
				spreadPick(gameID, entity.PickSideAway),
				spreadPick(gameID, entity.PickSideHome),
				spreadPick(gameID, entity.PickSideAway),
			},
			side: entity.PickSideHome,
		},
		{
			name: "total tie resolves to over",
			picks: []entity.Prediction{
				totalPick(gameID, entity.PickSideUnder),
				totalPick(gameID, entity.PickSideOver),
			},
			side: entity.PickSideOver,
		},
		{
			name: "empty tally after drops still resolves to first-listed side",
			picks: []entity.Prediction{
				spreadPick(gameID, entity.PickSideOver),
			},
			side: entity.PickSideHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, _ := BuildConsensusScores(2024, 5, tt.picks, time.Now())
			require.Len(t, scores, 1)
			assert.Equal(t, tt.side, scores[0].MajoritySide)
			assert.Equal(t, 0, scores[0].Score)
			assert.Equal(t, "lean", scores[0].SignalLabel)
		})
	}
}

func TestBuildConsensusScoresStrongSignal(t *testing.T) {
	gameID := uuid.New()

	var predictions []entity.Prediction
	for i := 0; i < 5; i++ {
		predictions = append(predictions, totalPick(gameID, entity.PickSideOver))
	}
	predictions = append(predictions, totalPick(gameID, entity.PickSideUnder))

	scores, dropped := BuildConsensusScores(2024, 9, predictions, time.Now())
	require.Len(t, scores, 1)
	assert.Zero(t, dropped)
	assert.Equal(t, entity.PickSideOver, scores[0].MajoritySide)
	assert.Equal(t, 4, scores[0].Score)
	assert.Equal(t, "strong", scores[0].SignalLabel)
}

func TestBuildConsensusScoresDropsInvalidSides(t *testing.T) {
	gameID := uuid.New()

	predictions := []entity.Prediction{
		spreadPick(gameID, entity.PickSideHome),
		spreadPick(gameID, entity.PickSideOver), // wrong vocabulary for a spread
		spreadPick(gameID, entity.PickSideHome),
	}

	scores, dropped := BuildConsensusScores(2024, 5, predictions, time.Now())
	require.Len(t, scores, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, entity.PickSideHome, scores[0].MajoritySide)
	assert.Equal(t, 2, scores[0].Score)
	// The dropped pick still counts toward the sample size.
	assert.Equal(t, 3, scores[0].NumPredictions)
}

func TestBuildConsensusScoresGroupsPerMarket(t *testing.T) {
	gameA := uuid.New()
	gameB := uuid.New()

	predictions := []entity.Prediction{
		spreadPick(gameA, entity.PickSideHome),
		totalPick(gameA, entity.PickSideUnder),
		spreadPick(gameB, entity.PickSideAway),
		spreadPick(gameA, entity.PickSideHome),
	}

	scores, dropped := BuildConsensusScores(2024, 5, predictions, time.Now())
	require.Len(t, scores, 3)
	assert.Zero(t, dropped)

	// Groups come back in first-seen order.
	assert.Equal(t, gameA, scores[0].GameID)
	assert.Equal(t, entity.PickTypeSpread, scores[0].PickType)
	assert.Equal(t, 2, scores[0].NumPredictions)

	assert.Equal(t, gameA, scores[1].GameID)
	assert.Equal(t, entity.PickTypeTotal, scores[1].PickType)
	assert.Equal(t, entity.PickSideUnder, scores[1].MajoritySide)

	assert.Equal(t, gameB, scores[2].GameID)
	assert.Equal(t, entity.PickSideAway, scores[2].MajoritySide)
	assert.Equal(t, 1, scores[2].Score)
}

func TestBuildConsensusScoresEmptyInput(t *testing.T) {
	scores, dropped := BuildConsensusScores(2024, 5, nil, time.Now())
	assert.Empty(t, scores)
	assert.Zero(t, dropped)
}

func TestSignalLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "lean"},
		{1, "lean"},
		{2, "moderate"},
		{3, "moderate"},
		{4, "strong"},
		{9, "strong"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignalLabel(tt.score), "score %d", tt.score)
	}
}
