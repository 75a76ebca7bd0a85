package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"gorm.io/gorm"
)

// IngestionRunRepository persists the audit record of finished runs.
type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
	FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error)
}

// NewIngestionRunRepository creates a new instance of IngestionRunRepository.
func NewIngestionRunRepository(db *gorm.DB) IngestionRunRepository {
	return &ingestionRunRepository{db: db}
}

type ingestionRunRepository struct {
	db *gorm.DB
}

func (r *ingestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *ingestionRunRepository) FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error) {
	var runs []entity.IngestionRun
	if err := r.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
