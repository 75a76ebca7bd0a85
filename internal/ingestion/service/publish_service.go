package service

import (
	"context"
	"fmt"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/sheets"

	"github.com/google/uuid"
)

// PublishService writes the week's consensus to the spreadsheet, one tab per
// week, overwriting the tab's prior contents.
type PublishService interface {
	Publish(ctx context.Context, season, week int) error
}

// NewPublishService creates a new PublishService.
func NewPublishService(consensusRepo repository.ConsensusScoreRepository, gameRepo repository.GameRepository, writer sheets.Writer, log *logger.Logger) PublishService {
	return &publishService{
		consensusRepo: consensusRepo,
		gameRepo:      gameRepo,
		writer:        writer,
		log:           log,
	}
}

type publishService struct {
	consensusRepo repository.ConsensusScoreRepository
	gameRepo      repository.GameRepository
	writer        sheets.Writer
	log           *logger.Logger
}

func (s *publishService) Publish(ctx context.Context, season, week int) error {
	title := fmt.Sprintf("Week %d", week)

	if err := s.writer.EnsureTab(ctx, title); err != nil {
		return err
	}

	scores, err := s.consensusRepo.FindByWeek(ctx, season, week)
	if err != nil {
		return err
	}
	games, err := s.gameRepo.FindByWeek(ctx, season, week)
	if err != nil {
		return err
	}

	gameLookup := make(map[uuid.UUID]entity.Game, len(games))
	for _, game := range games {
		gameLookup[game.ID] = game
	}

	values := [][]interface{}{
		{"Season", "Week", "Home", "Away", "Pick Type", "Majority", "Score", "Signal", "Num Predictions"},
	}
	for _, score := range scores {
		game := gameLookup[score.GameID]
		values = append(values, []interface{}{
			score.Season,
			score.Week,
			game.HomeTeam,
			game.AwayTeam,
			string(score.PickType),
			string(score.MajoritySide),
			score.Score,
			score.SignalLabel,
			score.NumPredictions,
		})
	}

	if err := s.writer.Overwrite(ctx, title, values); err != nil {
		return err
	}

	s.log.Info("Published consensus",
		logger.IntField("season", season),
		logger.IntField("week", week),
		logger.IntField("rows", len(values)-1),
	)
	return nil
}
