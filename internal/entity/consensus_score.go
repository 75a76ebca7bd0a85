package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsensusScore is the derived majority-vote summary for one game and pick
// type. (game_id, pick_type) is unique; every run fully recomputes and
// overwrites the row. It is a projection, not an accumulator. Scores for
// markets that drop out of a later run's input are retained as-is.
type ConsensusScore struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_consensus_market" json:"game_id"`
	Season         int       `gorm:"not null" json:"season"`
	Week           int       `gorm:"not null" json:"week"`
	PickType       PickType  `gorm:"type:varchar(10);not null;uniqueIndex:uq_consensus_market" json:"pick_type"`
	MajoritySide   PickSide  `gorm:"type:varchar(10);not null" json:"majority_side"`
	Score          int       `gorm:"not null" json:"score"`
	SignalLabel    string    `gorm:"type:varchar(20);not null" json:"signal_label"`
	NumPredictions int       `gorm:"not null" json:"num_predictions"`
	CalculatedAt   time.Time `gorm:"not null" json:"calculated_at"`
}

// TableName specifies the table name for the ConsensusScore model.
func (ConsensusScore) TableName() string {
	return "consensus_scores"
}
