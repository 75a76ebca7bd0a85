package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConsensusScoreRepository defines the interface for interacting with
// consensus score data.
type ConsensusScoreRepository interface {
	Upsert(ctx context.Context, score *entity.ConsensusScore) error
	FindByWeek(ctx context.Context, season, week int) ([]entity.ConsensusScore, error)
}

// NewConsensusScoreRepository creates a new instance of
// ConsensusScoreRepository.
func NewConsensusScoreRepository(db *gorm.DB) ConsensusScoreRepository {
	return &consensusScoreRepository{db: db}
}

type consensusScoreRepository struct {
	db *gorm.DB
}

// Upsert overwrites the score for the (game_id, pick_type) key. Rows for
// markets absent from a later run's input are intentionally left in place.
func (r *consensusScoreRepository) Upsert(ctx context.Context, score *entity.ConsensusScore) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}, {Name: "pick_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"majority_side", "score", "signal_label", "num_predictions",
			"season", "week", "calculated_at",
		}),
	}).Create(score).Error
}

func (r *consensusScoreRepository) FindByWeek(ctx context.Context, season, week int) ([]entity.ConsensusScore, error) {
	var scores []entity.ConsensusScore
	if err := r.db.WithContext(ctx).
		Where("season = ? AND week = ?", season, week).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
