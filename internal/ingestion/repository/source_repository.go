package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"gorm.io/gorm"
)

// SourceRepository defines the interface for interacting with source data.
type SourceRepository interface {
	Create(ctx context.Context, source *entity.Source) error
	GetAll(ctx context.Context) ([]entity.Source, error)
	GetActive(ctx context.Context) ([]entity.Source, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// NewSourceRepository creates a new instance of SourceRepository.
func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

type sourceRepository struct {
	db *gorm.DB
}

func (r *sourceRepository) Create(ctx context.Context, source *entity.Source) error {
	return r.db.WithContext(ctx).Create(source).Error
}

func (r *sourceRepository) GetAll(ctx context.Context) ([]entity.Source, error) {
	var sources []entity.Source
	if err := r.db.WithContext(ctx).Order("blog_name").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

// GetActive returns active sources in a stable order; the orchestrator
// processes them in exactly this order.
func (r *sourceRepository) GetActive(ctx context.Context) ([]entity.Source, error) {
	var sources []entity.Source
	if err := r.db.WithContext(ctx).Where("active_flag = ?", true).Order("blog_name").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

// SetActive toggles a source's active flag. Sources are never deleted.
func (r *sourceRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&entity.Source{}).Where("id = ?", id).Update("active_flag", active).Error
}
