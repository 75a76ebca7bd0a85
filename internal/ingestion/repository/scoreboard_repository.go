package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/pkg/logger"
)

// ScoreboardRepository fetches the weekly schedule from the sports data API.
type ScoreboardRepository interface {
	FetchWeek(ctx context.Context, season, week int) ([]dto.Competition, error)
}

type scoreboardRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewScoreboardRepository creates a new instance of ScoreboardRepository.
func NewScoreboardRepository(cfg *config.Config, log *logger.Logger) ScoreboardRepository {
	timeout := 10 * time.Second
	if d, err := time.ParseDuration(cfg.Scoreboard.Timeout); err == nil && d > 0 {
		timeout = d
	}
	return &scoreboardRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchWeek returns the competitions for a season/week. Any failure here is
// fatal to the run: the caller aborts without attempting downstream work.
func (r *scoreboardRepository) FetchWeek(ctx context.Context, season, week int) ([]dto.Competition, error) {
	url := fmt.Sprintf("%s/scoreboard?week=%d&year=%d&seasontype=2", r.cfg.Scoreboard.BaseURL, week, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoreboard request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard response: %w", err)
	}

	var scoreboard dto.ScoreboardResponse
	if err := json.Unmarshal(body, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard response: %w", err)
	}

	var competitions []dto.Competition
	for _, event := range scoreboard.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		competitions = append(competitions, event.Competitions[0])
	}

	r.log.Info("Fetched scoreboard",
		logger.IntField("season", season),
		logger.IntField("week", week),
		logger.IntField("competitions", len(competitions)),
	)
	return competitions, nil
}
