package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source represents an expert blog or site whose articles are ingested.
// Sources are created by the import command and are never deleted, only
// deactivated.
type Source struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BlogName       string    `gorm:"not null" json:"blog_name"`
	BaseURL        string    `gorm:"not null" json:"base_url"`
	AssociatedTeam *string   `gorm:"type:varchar(5)" json:"associated_team,omitempty"`
	BlogType       string    `json:"blog_type"`
	FeedURL        *string   `json:"feed_url,omitempty"`
	ActiveFlag     bool      `gorm:"not null;default:true" json:"active_flag"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Source model.
func (Source) TableName() string {
	return "sources"
}
