package dto

import (
	"errors"
	"testing"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePickBatch(t *testing.T) {
	raw := "Here are the picks:\n" +
		`[{"game":{"homeTeam":"Chiefs","awayTeam":"Bills"},"pickType":"spread","pickSide":"home","line":-2.5,"confidence":0.8,"quote":"KC covers"},` +
		`{"game":{"homeTeam":"Cowboys","awayTeam":"Eagles"},"pickType":"total","pickSide":"over"}]` +
		"\nLet me know if you need anything else."

	picks, err := DecodePickBatch(raw)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	assert.Equal(t, "Chiefs", picks[0].Game.HomeTeam)
	assert.Equal(t, entity.PickTypeSpread, picks[0].PickType)
	assert.Equal(t, entity.PickSideHome, picks[0].PickSide)
	require.NotNil(t, picks[0].Line)
	assert.Equal(t, -2.5, *picks[0].Line)
	require.NotNil(t, picks[0].Confidence)
	assert.Equal(t, 0.8, *picks[0].Confidence)
	require.NotNil(t, picks[0].Quote)
	assert.Equal(t, "KC covers", *picks[0].Quote)

	assert.Nil(t, picks[1].Line)
	assert.Nil(t, picks[1].Confidence)
}

func TestDecodePickBatchEmptyArray(t *testing.T) {
	picks, err := DecodePickBatch("[]")
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestDecodePickBatchRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no array in output",
			raw:  "I could not find any picks in this article.",
		},
		{
			name: "malformed json",
			raw:  `[{"game":{`,
		},
		{
			name: "missing team reference",
			raw:  `[{"game":{"homeTeam":"","awayTeam":"Bills"},"pickType":"spread","pickSide":"home"}]`,
		},
		{
			name: "unknown pick type",
			raw:  `[{"game":{"homeTeam":"Chiefs","awayTeam":"Bills"},"pickType":"moneyline","pickSide":"home"}]`,
		},
		{
			name: "side outside market vocabulary",
			raw:  `[{"game":{"homeTeam":"Chiefs","awayTeam":"Bills"},"pickType":"spread","pickSide":"over"}]`,
		},
		{
			name: "confidence out of range",
			raw:  `[{"game":{"homeTeam":"Chiefs","awayTeam":"Bills"},"pickType":"spread","pickSide":"home","confidence":1.5}]`,
		},
		{
			name: "one bad item fails the whole batch",
			raw: `[{"game":{"homeTeam":"Chiefs","awayTeam":"Bills"},"pickType":"spread","pickSide":"home"},` +
				`{"game":{"homeTeam":"Cowboys","awayTeam":"Eagles"},"pickType":"spread","pickSide":"under"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks, err := DecodePickBatch(tt.raw)
			require.Error(t, err)
			assert.Nil(t, picks)

			var batchErr *BatchValidationError
			assert.True(t, errors.As(err, &batchErr))
		})
	}
}
