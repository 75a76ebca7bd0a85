package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Run status values.
const (
	RunStatusIdle    = "idle"
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
	RunStatusSkipped = "skipped"
)

// IngestionRun is the persisted audit record of one pipeline run. The live
// run is tracked in memory by the run tracker; a row is written once the run
// reaches a terminal status.
type IngestionRun struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Season            int            `gorm:"not null" json:"season"`
	Week              int            `gorm:"not null" json:"week"`
	Status            string         `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt         time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt        sql.NullTime   `json:"finished_at"`
	DurationMs        int64          `json:"duration_ms"`
	Sources           int            `gorm:"not null;default:0" json:"sources"`
	ArticlesProcessed int            `gorm:"not null;default:0" json:"articles_processed"`
	Errors            int            `gorm:"not null;default:0" json:"errors"`
	Message           string         `json:"message"`
	ErrorDetails      pq.StringArray `gorm:"type:text[]" json:"error_details"`
	Extra             datatypes.JSON `json:"extra,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the IngestionRun model.
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
