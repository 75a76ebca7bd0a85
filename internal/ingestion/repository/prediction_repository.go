package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PredictionRepository defines the interface for interacting with prediction
// data.
type PredictionRepository interface {
	Upsert(ctx context.Context, prediction *entity.Prediction) error
	FindByWeek(ctx context.Context, season, week int) ([]entity.Prediction, error)
	FindRecent(ctx context.Context, limit int) ([]entity.Prediction, error)
}

// NewPredictionRepository creates a new instance of PredictionRepository.
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

type predictionRepository struct {
	db *gorm.DB
}

// Upsert inserts or overwrites the source's live pick for the market. A
// source holds at most one pick per (game, pick_type); re-extraction
// replaces side, line, confidence and quote rather than duplicating.
func (r *predictionRepository) Upsert(ctx context.Context, prediction *entity.Prediction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "source_id"}, {Name: "game_id"}, {Name: "pick_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"pick_side", "line_at_pick", "extraction_method", "extraction_confidence",
			"extracted_at", "article_url", "raw_quote", "season", "week", "updated_at",
		}),
	}).Create(prediction).Error
}

func (r *predictionRepository) FindByWeek(ctx context.Context, season, week int) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	if err := r.db.WithContext(ctx).
		Where("season = ? AND week = ?", season, week).
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) FindRecent(ctx context.Context, limit int) ([]entity.Prediction, error) {
	var predictions []entity.Prediction
	if err := r.db.WithContext(ctx).
		Order("extracted_at desc").
		Limit(limit).
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}
