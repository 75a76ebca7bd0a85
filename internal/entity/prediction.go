package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is one source's live pick for one market of one game.
// (source_id, game_id, pick_type) is unique; re-extraction overwrites the
// existing row rather than duplicating it.
type Prediction struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SourceID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_predictions_market" json:"source_id"`
	GameID               uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_predictions_market" json:"game_id"`
	Season               int              `gorm:"not null" json:"season"`
	Week                 int              `gorm:"not null" json:"week"`
	PickType             PickType         `gorm:"type:varchar(10);not null;uniqueIndex:uq_predictions_market" json:"pick_type"`
	PickSide             PickSide         `gorm:"type:varchar(10);not null" json:"pick_side"`
	LineAtPick           float64          `gorm:"not null" json:"line_at_pick"`
	ExtractionMethod     ExtractionMethod `gorm:"type:varchar(20);not null" json:"extraction_method"`
	ExtractionConfidence float64          `gorm:"not null" json:"extraction_confidence"`
	ExtractedAt          time.Time        `gorm:"not null" json:"extracted_at"`
	ArticleURL           string           `gorm:"not null" json:"article_url"`
	RawQuote             *string          `json:"raw_quote,omitempty"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Prediction model.
func (Prediction) TableName() string {
	return "predictions"
}
