package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game represents one scheduled matchup. (season, week, home_team, away_team)
// is unique; schedule sync upserts against that key and may refresh line
// values, games are never deleted.
type Game struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Season     int       `gorm:"not null;uniqueIndex:uq_games_matchup" json:"season"`
	Week       int       `gorm:"not null;uniqueIndex:uq_games_matchup" json:"week"`
	GameDate   time.Time `gorm:"not null" json:"game_date"`
	HomeTeam   string    `gorm:"type:varchar(5);not null;uniqueIndex:uq_games_matchup" json:"home_team"`
	AwayTeam   string    `gorm:"type:varchar(5);not null;uniqueIndex:uq_games_matchup" json:"away_team"`
	SpreadLine *float64  `json:"spread_line,omitempty"`
	TotalLine  *float64  `json:"total_line,omitempty"`
	Status     string    `gorm:"not null;default:'scheduled'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Game model.
func (Game) TableName() string {
	return "games"
}
