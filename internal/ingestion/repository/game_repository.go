package repository

import (
	"context"

	"github.com/0xquinto/parlay-picker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRepository defines the interface for interacting with game data.
type GameRepository interface {
	Upsert(ctx context.Context, game *entity.Game) error
	FindByWeek(ctx context.Context, season, week int) ([]entity.Game, error)
}

// NewGameRepository creates a new instance of GameRepository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

type gameRepository struct {
	db *gorm.DB
}

// Upsert inserts a game or refreshes its date, lines and status when the
// (season, week, home_team, away_team) key already exists. The upserted row,
// including its existing id, is loaded back into game.
func (r *gameRepository) Upsert(ctx context.Context, game *entity.Game) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "season"}, {Name: "week"}, {Name: "home_team"}, {Name: "away_team"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"game_date", "spread_line", "total_line", "status", "updated_at"}),
	}).Create(game).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("season = ? AND week = ? AND home_team = ? AND away_team = ?",
			game.Season, game.Week, game.HomeTeam, game.AwayTeam).
		First(game).Error
}

func (r *gameRepository) FindByWeek(ctx context.Context, season, week int) ([]entity.Game, error) {
	var games []entity.Game
	if err := r.db.WithContext(ctx).
		Where("season = ? AND week = ?", season, week).
		Order("game_date").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}
