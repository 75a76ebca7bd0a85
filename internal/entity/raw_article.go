package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawArticle is a content-addressed cache entry for a fetched document.
// (source_id, article_hash) is unique: identical content from the same source
// is stored once even when fetched from a different URL variant. The row is
// the system of record for re-processing, so entries are never evicted.
type RawArticle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SourceID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_raw_articles_hash" json:"source_id"`
	URL         string    `gorm:"not null" json:"url"`
	Body        string    `gorm:"not null" json:"body"`
	ArticleHash string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_raw_articles_hash" json:"article_hash"`
	Week        *int      `json:"week,omitempty"`
	Processed   bool      `gorm:"not null;default:false" json:"processed"`
	FetchedAt   time.Time `gorm:"autoCreateTime" json:"fetched_at"`
}

// TableName specifies the table name for the RawArticle model.
func (RawArticle) TableName() string {
	return "raw_articles"
}
