package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/telegram"

	"github.com/lib/pq"
)

// ErrRunInProgress is returned when a trigger races an in-flight run.
// Overlapping triggers are rejected, not queued.
var ErrRunInProgress = errors.New("an ingestion run is already in progress")

// IngestionService drives one full pipeline run: schedule sync, per-source
// article discovery, fetch, extraction and persistence, then consensus and
// publishing. Sources and articles are processed sequentially, in the order
// they were loaded and discovered, to stay inside third-party rate limits.
type IngestionService interface {
	Run(ctx context.Context, season, week int) error
	Tracker() *RunTracker
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	scheduleSvc ScheduleService,
	sourceRepo repository.SourceRepository,
	discoveryRepo repository.DiscoveryRepository,
	fetcherSvc ArticleFetcherService,
	extractionRepo repository.ExtractionRepository,
	matcher *Matcher,
	predictionRepo repository.PredictionRepository,
	articleRepo repository.RawArticleRepository,
	consensusSvc ConsensusService,
	publishSvc PublishService,
	runRepo repository.IngestionRunRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) IngestionService {
	return &ingestionService{
		scheduleSvc:    scheduleSvc,
		sourceRepo:     sourceRepo,
		discoveryRepo:  discoveryRepo,
		fetcherSvc:     fetcherSvc,
		extractionRepo: extractionRepo,
		matcher:        matcher,
		predictionRepo: predictionRepo,
		articleRepo:    articleRepo,
		consensusSvc:   consensusSvc,
		publishSvc:     publishSvc,
		runRepo:        runRepo,
		notifier:       notifier,
		log:            log,
		tracker:        NewRunTracker(),
	}
}

type ingestionService struct {
	scheduleSvc    ScheduleService
	sourceRepo     repository.SourceRepository
	discoveryRepo  repository.DiscoveryRepository
	fetcherSvc     ArticleFetcherService
	extractionRepo repository.ExtractionRepository
	matcher        *Matcher
	predictionRepo repository.PredictionRepository
	articleRepo    repository.RawArticleRepository
	consensusSvc   ConsensusService
	publishSvc     PublishService
	runRepo        repository.IngestionRunRepository
	notifier       telegram.Notifier
	log            *logger.Logger
	tracker        *RunTracker
}

// Tracker exposes the run-state tracker for the status endpoint.
func (s *ingestionService) Tracker() *RunTracker {
	return s.tracker
}

// Run executes the pipeline for one season/week. Failure boundaries, in
// order: a schedule sync failure is fatal; zero games or zero active sources
// skip the run; every article gets its own failure boundary; consensus and
// publish failures are counted but the run still completes. The run ends
// Failed when any error was counted, Success otherwise.
func (s *ingestionService) Run(ctx context.Context, season, week int) error {
	if !s.tracker.TryStart(season, week) {
		return ErrRunInProgress
	}

	s.log.Info("Starting ingestion run",
		logger.IntField("season", season),
		logger.IntField("week", week),
	)

	var errorDetails []string
	recordError := func(stage string, err error) {
		s.tracker.IncrementErrors()
		errorDetails = append(errorDetails, fmt.Sprintf("%s: %v", stage, err))
	}

	games, err := s.scheduleSvc.SyncWeek(ctx, season, week)
	if err != nil {
		s.log.Error("Schedule sync failed, aborting run", logger.ErrorField(err))
		s.tracker.MarkFailed(fmt.Sprintf("schedule sync failed: %v", err), 0)
		s.finishRun(ctx, []string{fmt.Sprintf("schedule: %v", err)})
		return nil
	}

	if len(games) == 0 {
		s.log.Warn("No games for week, skipping run",
			logger.IntField("season", season),
			logger.IntField("week", week),
		)
		s.tracker.MarkSkipped("no games scheduled for week", 0)
		s.finishRun(ctx, nil)
		return nil
	}

	sources, err := s.sourceRepo.GetActive(ctx)
	if err != nil {
		s.log.Error("Failed to load active sources", logger.ErrorField(err))
		s.tracker.MarkFailed(fmt.Sprintf("failed to load sources: %v", err), 0)
		s.finishRun(ctx, []string{fmt.Sprintf("sources: %v", err)})
		return nil
	}
	if len(sources) == 0 {
		s.log.Warn("No active sources, skipping run")
		s.tracker.MarkSkipped("no active sources", 0)
		s.finishRun(ctx, nil)
		return nil
	}
	s.tracker.SetSourceCount(len(sources))

	for _, source := range sources {
		s.processSource(ctx, source, games, season, week, recordError)
	}

	if _, err := s.consensusSvc.Compute(ctx, season, week); err != nil {
		s.log.Error("Consensus computation failed", logger.ErrorField(err))
		recordError("consensus", err)
	}

	if s.publishSvc != nil {
		if err := s.publishSvc.Publish(ctx, season, week); err != nil {
			s.log.Error("Publish failed", logger.ErrorField(err))
			recordError("publish", err)
		}
	}

	snap := s.tracker.Snapshot()
	if snap.Errors > 0 {
		s.tracker.MarkFailed(fmt.Sprintf("run completed with %d errors", snap.Errors), 0)
	} else {
		s.tracker.MarkSuccess("run completed", 0)
	}
	s.finishRun(ctx, errorDetails)
	return nil
}

// processSource discovers and processes every candidate article for one
// source. Each article carries its own failure boundary: an error is counted
// and the remaining articles and sources still run.
func (s *ingestionService) processSource(ctx context.Context, source entity.Source, games []entity.Game, season, week int, recordError func(string, error)) {
	urls, err := s.discoveryRepo.DiscoverArticles(ctx, source, season, week)
	if err != nil {
		s.log.Error("Discovery failed for source",
			logger.StringField("source", source.BlogName),
			logger.ErrorField(err),
		)
		recordError(fmt.Sprintf("discovery %s", source.BlogName), err)
		return
	}

	for _, url := range urls {
		if err := s.processArticle(ctx, source, url, games, season, week, recordError); err != nil {
			s.log.Error("Failed processing article",
				logger.StringField("url", url),
				logger.StringField("source", source.BlogName),
				logger.ErrorField(err),
			)
			recordError(fmt.Sprintf("article %s", url), err)
		}
	}
}

func (s *ingestionService) processArticle(ctx context.Context, source entity.Source, url string, games []entity.Game, season, week int, recordError func(string, error)) error {
	fetched, err := s.fetcherSvc.Fetch(ctx, source, url)
	if err != nil {
		return err
	}

	relevant := s.matcher.RelevantGames(fetched.Text, games)
	if len(relevant) == 0 {
		// Off-topic content is consumed without an extraction call; this is
		// not counted as an error.
		s.log.Warn("Article matches no games this week",
			logger.StringField("url", url),
			logger.IntField("week", week),
		)
		if err := s.articleRepo.MarkProcessed(ctx, source.ID, url, week); err != nil {
			return err
		}
		return nil
	}

	picks, err := s.extractionRepo.ExtractPicks(ctx, fetched.Text, relevant)
	if err != nil {
		return err
	}

	extractedAt := time.Now()
	stored := 0
	for _, pick := range picks {
		prediction, err := s.matcher.Match(pick, relevant, source.ID, season, week, url, extractedAt)
		if err != nil {
			var rejection *RejectionError
			if errors.As(err, &rejection) {
				s.log.Warn("Dropping rejected pick",
					logger.StringField("reason", string(rejection.Reason)),
					logger.StringField("detail", rejection.Detail),
					logger.StringField("url", url),
				)
				recordError(fmt.Sprintf("pick %s", url), err)
				continue
			}
			return err
		}
		if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
			recordError(fmt.Sprintf("prediction %s", url), err)
			continue
		}
		stored++
	}

	if err := s.articleRepo.MarkProcessed(ctx, source.ID, url, week); err != nil {
		return err
	}

	s.tracker.IncrementArticles()
	s.log.Info("Article processed",
		logger.StringField("url", url),
		logger.IntField("picks", len(picks)),
		logger.IntField("stored", stored),
	)
	return nil
}

// finishRun persists the audit row for the finished run and pushes the
// operator notification. Both are best-effort: the run outcome is already
// final.
func (s *ingestionService) finishRun(ctx context.Context, errorDetails []string) {
	snap := s.tracker.Snapshot()

	run := &entity.IngestionRun{
		Season:            snap.Season,
		Week:              snap.Week,
		Status:            snap.Status,
		StartedAt:         snap.StartedAt,
		DurationMs:        snap.Duration.Milliseconds(),
		Sources:           snap.Sources,
		ArticlesProcessed: snap.ArticlesProcessed,
		Errors:            snap.Errors,
		Message:           snap.Message,
		ErrorDetails:      pq.StringArray(errorDetails),
	}
	if !snap.FinishedAt.IsZero() {
		run.FinishedAt = sql.NullTime{Time: snap.FinishedAt, Valid: true}
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(ctx, run); err != nil {
			s.log.Error("Failed to persist run record", logger.ErrorField(err))
		}
	}

	if s.notifier != nil {
		summary := telegram.FormatRunSummary(telegram.RunSummary{
			Status:            snap.Status,
			Season:            snap.Season,
			Week:              snap.Week,
			Sources:           snap.Sources,
			ArticlesProcessed: snap.ArticlesProcessed,
			Errors:            snap.Errors,
			Duration:          snap.Duration,
			Message:           snap.Message,
		})
		if err := s.notifier.SendMessage(summary); err != nil {
			s.log.Error("Failed to send run notification", logger.ErrorField(err))
		}
	}

	s.log.Info("Ingestion run finished",
		logger.StringField("status", snap.Status),
		logger.IntField("sources", snap.Sources),
		logger.IntField("articles", snap.ArticlesProcessed),
		logger.IntField("errors", snap.Errors),
	)
}
