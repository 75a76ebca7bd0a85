package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashArticle computes the content hash for a fetched document: sha256 over
// the URL bytes followed by the body bytes. Order matters; the two are
// concatenated, not salted separately.
func HashArticle(url, body string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// RawArticleRepository is the content-addressed article cache. Entries are
// never evicted; the table is the system of record for re-processing.
type RawArticleRepository interface {
	FindByURL(ctx context.Context, sourceID uuid.UUID, url string) (*entity.RawArticle, error)
	FindByHash(ctx context.Context, sourceID uuid.UUID, hash string) (*entity.RawArticle, error)
	Store(ctx context.Context, article *entity.RawArticle) error
	MarkProcessed(ctx context.Context, sourceID uuid.UUID, url string, week int) error
}

// NewRawArticleRepository creates a new instance of RawArticleRepository.
func NewRawArticleRepository(db *gorm.DB) RawArticleRepository {
	return &rawArticleRepository{db: db}
}

type rawArticleRepository struct {
	db *gorm.DB
}

func (r *rawArticleRepository) FindByURL(ctx context.Context, sourceID uuid.UUID, url string) (*entity.RawArticle, error) {
	var article entity.RawArticle
	result := r.db.WithContext(ctx).
		Where("source_id = ? AND url = ?", sourceID, url).
		First(&article)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &article, nil
}

func (r *rawArticleRepository) FindByHash(ctx context.Context, sourceID uuid.UUID, hash string) (*entity.RawArticle, error) {
	var article entity.RawArticle
	result := r.db.WithContext(ctx).
		Where("source_id = ? AND article_hash = ?", sourceID, hash).
		First(&article)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &article, nil
}

// Store persists an article idempotently. When a row with the same
// (source_id, article_hash) already exists, that row is returned in place of
// inserting a duplicate.
func (r *rawArticleRepository) Store(ctx context.Context, article *entity.RawArticle) error {
	if article.ArticleHash == "" {
		article.ArticleHash = HashArticle(article.URL, article.Body)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "article_hash"}},
		DoNothing: true,
	}).Create(article)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.db.WithContext(ctx).
			Where("source_id = ? AND article_hash = ?", article.SourceID, article.ArticleHash).
			First(article).Error
	}
	return nil
}

// MarkProcessed flips the processed flag and tags the week once predictions
// have been extracted from the entry.
func (r *rawArticleRepository) MarkProcessed(ctx context.Context, sourceID uuid.UUID, url string, week int) error {
	return r.db.WithContext(ctx).Model(&entity.RawArticle{}).
		Where("source_id = ? AND url = ?", sourceID, url).
		Updates(map[string]interface{}{"processed": true, "week": week}).Error
}
