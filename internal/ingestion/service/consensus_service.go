package service

import (
	"context"
	"sort"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"

	"github.com/google/uuid"
)

// Signal label thresholds over the consensus margin.
const (
	strongSignalMargin   = 4
	moderateSignalMargin = 2
)

// ConsensusService recomputes the consensus projection for a week.
type ConsensusService interface {
	Compute(ctx context.Context, season, week int) (int, error)
}

// NewConsensusService creates a new ConsensusService.
func NewConsensusService(predictionRepo repository.PredictionRepository, consensusRepo repository.ConsensusScoreRepository, log *logger.Logger) ConsensusService {
	return &consensusService{
		predictionRepo: predictionRepo,
		consensusRepo:  consensusRepo,
		log:            log,
	}
}

type consensusService struct {
	predictionRepo repository.PredictionRepository
	consensusRepo  repository.ConsensusScoreRepository
	log            *logger.Logger
}

// Compute loads the week's predictions, derives one score per (game, pick
// type) group and upserts each. Scores for markets that dropped out of the
// input are left untouched. Returns the number of groups written.
func (s *consensusService) Compute(ctx context.Context, season, week int) (int, error) {
	predictions, err := s.predictionRepo.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, err
	}

	scores, dropped := BuildConsensusScores(season, week, predictions, time.Now())
	if dropped > 0 {
		s.log.Warn("Dropped predictions with side outside their market vocabulary",
			logger.IntField("dropped", dropped),
			logger.IntField("season", season),
			logger.IntField("week", week),
		)
	}

	for i := range scores {
		if err := s.consensusRepo.Upsert(ctx, &scores[i]); err != nil {
			return 0, err
		}
	}

	s.log.Info("Consensus calculation complete",
		logger.IntField("groups", len(scores)),
		logger.IntField("season", season),
		logger.IntField("week", week),
	)
	return len(scores), nil
}

type marketKey struct {
	gameID   uuid.UUID
	pickType entity.PickType
}

// BuildConsensusScores groups predictions by (game, pick type) and derives
// the majority side, margin score and signal label for each group. Ties
// resolve toward the first-listed side of the market (Home for spread, Over
// for total), a deterministic documented bias. Predictions whose side falls
// outside their own market's vocabulary are excluded from the tally but still
// counted in the group's sample size; the second return value reports how
// many were excluded.
func BuildConsensusScores(season, week int, predictions []entity.Prediction, now time.Time) ([]entity.ConsensusScore, int) {
	groups := make(map[marketKey][]entity.Prediction)
	var order []marketKey
	for _, p := range predictions {
		key := marketKey{gameID: p.GameID, pickType: p.PickType}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	dropped := 0
	scores := make([]entity.ConsensusScore, 0, len(order))
	for _, key := range order {
		group := groups[key]

		counts := map[entity.PickSide]int{
			entity.PickSideHome:  0,
			entity.PickSideAway:  0,
			entity.PickSideOver:  0,
			entity.PickSideUnder: 0,
		}
		for _, p := range group {
			if !entity.ValidSide(key.pickType, p.PickSide) {
				dropped++
				continue
			}
			counts[p.PickSide]++
		}

		var majority entity.PickSide
		if key.pickType == entity.PickTypeTotal {
			majority = entity.PickSideUnder
			if counts[entity.PickSideOver] >= counts[entity.PickSideUnder] {
				majority = entity.PickSideOver
			}
		} else {
			majority = entity.PickSideAway
			if counts[entity.PickSideHome] >= counts[entity.PickSideAway] {
				majority = entity.PickSideHome
			}
		}

		sorted := make([]int, 0, len(counts))
		for _, c := range counts {
			sorted = append(sorted, c)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		margin := sorted[0] - sorted[1]

		scores = append(scores, entity.ConsensusScore{
			GameID:         key.gameID,
			Season:         season,
			Week:           week,
			PickType:       key.pickType,
			MajoritySide:   majority,
			Score:          margin,
			SignalLabel:    SignalLabel(margin),
			NumPredictions: len(group),
			CalculatedAt:   now,
		})
	}

	return scores, dropped
}

// SignalLabel buckets a consensus margin into a coarse confidence label.
func SignalLabel(score int) string {
	switch {
	case score >= strongSignalMargin:
		return "strong"
	case score >= moderateSignalMargin:
		return "moderate"
	default:
		return "lean"
	}
}
