package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
)

// ExtractionRepository turns raw article text into a validated batch of
// structured picks for the games the article plausibly discusses. The batch
// is validated fail-closed: any schema violation rejects the whole batch.
type ExtractionRepository interface {
	ExtractPicks(ctx context.Context, articleText string, games []entity.Game) ([]dto.ExtractedPick, error)
}
