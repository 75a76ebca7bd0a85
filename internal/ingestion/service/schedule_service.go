package service

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/teams"
)

// ScheduleService synchronizes the week's schedule into the games table.
type ScheduleService interface {
	SyncWeek(ctx context.Context, season, week int) ([]entity.Game, error)
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scoreboardRepo repository.ScoreboardRepository, gameRepo repository.GameRepository, log *logger.Logger) ScheduleService {
	return &scheduleService{
		scoreboardRepo: scoreboardRepo,
		gameRepo:       gameRepo,
		log:            log,
	}
}

type scheduleService struct {
	scoreboardRepo repository.ScoreboardRepository
	gameRepo       repository.GameRepository
	log            *logger.Logger
}

// SyncWeek pulls the scoreboard and upserts each matchup. Matchups whose
// team text cannot be resolved to canonical codes are skipped with a
// warning, never stored.
func (s *scheduleService) SyncWeek(ctx context.Context, season, week int) ([]entity.Game, error) {
	competitions, err := s.scoreboardRepo.FetchWeek(ctx, season, week)
	if err != nil {
		return nil, err
	}

	var games []entity.Game
	for _, competition := range competitions {
		game, ok := s.buildGame(competition, season, week)
		if !ok {
			continue
		}
		if err := s.gameRepo.Upsert(ctx, game); err != nil {
			return nil, err
		}
		games = append(games, *game)
	}

	s.log.Info("Schedule sync complete",
		logger.IntField("season", season),
		logger.IntField("week", week),
		logger.IntField("games", len(games)),
	)
	return games, nil
}

func (s *scheduleService) buildGame(competition dto.Competition, season, week int) (*entity.Game, bool) {
	var home, away *dto.Competitor
	for i := range competition.Competitors {
		switch competition.Competitors[i].HomeAway {
		case "home":
			home = &competition.Competitors[i]
		case "away":
			away = &competition.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return nil, false
	}

	homeCode, ok := teams.Resolve(teamText(*home))
	if !ok {
		s.log.Warn("Skipping game with unmapped home team", logger.StringField("team", teamText(*home)))
		return nil, false
	}
	awayCode, ok := teams.Resolve(teamText(*away))
	if !ok {
		s.log.Warn("Skipping game with unmapped away team", logger.StringField("team", teamText(*away)))
		return nil, false
	}

	gameDate := time.Now()
	if parsed, err := time.Parse(time.RFC3339, competition.Date); err == nil {
		gameDate = parsed
	}

	status := "scheduled"
	if competition.Status != nil && competition.Status.Type != nil && competition.Status.Type.Name != "" {
		status = competition.Status.Type.Name
	}

	game := &entity.Game{
		Season:     season,
		Week:       week,
		GameDate:   gameDate,
		HomeTeam:   string(homeCode),
		AwayTeam:   string(awayCode),
		SpreadLine: ParseSpread(competition.Odds),
		Status:     status,
	}
	if len(competition.Odds) > 0 {
		game.TotalLine = competition.Odds[0].OverUnder
	}
	return game, true
}

func teamText(c dto.Competitor) string {
	if c.Team.Abbreviation != "" {
		return c.Team.Abbreviation
	}
	if c.Team.Name != "" {
		return c.Team.Name
	}
	return c.Team.DisplayName
}

var spreadRe = regexp.MustCompile(`([+-]?\d+\.?\d*)`)

// ParseSpread derives the spread from the first odds entry: the structured
// field when present, otherwise the first signed decimal found in the
// free-text details.
func ParseSpread(odds []dto.Odds) *float64 {
	if len(odds) == 0 {
		return nil
	}
	if odds[0].Spread != nil {
		return odds[0].Spread
	}
	match := spreadRe.FindString(odds[0].Details)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &value
}
