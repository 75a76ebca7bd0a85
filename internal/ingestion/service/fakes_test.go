package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/pkg/logger"

	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	log, err := logger.New("error", "console")
	if err != nil {
		panic(err)
	}
	return log
}

type fakeScoreboardRepo struct {
	competitions []dto.Competition
	err          error
}

func (f *fakeScoreboardRepo) FetchWeek(ctx context.Context, season, week int) ([]dto.Competition, error) {
	return f.competitions, f.err
}

type fakeGameRepo struct {
	games     []entity.Game
	upsertErr error
}

func (f *fakeGameRepo) Upsert(ctx context.Context, game *entity.Game) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	f.games = append(f.games, *game)
	return nil
}

func (f *fakeGameRepo) FindByWeek(ctx context.Context, season, week int) ([]entity.Game, error) {
	var out []entity.Game
	for _, g := range f.games {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeSourceRepo struct {
	sources []entity.Source
	err     error
}

func (f *fakeSourceRepo) Create(ctx context.Context, source *entity.Source) error {
	f.sources = append(f.sources, *source)
	return nil
}

func (f *fakeSourceRepo) GetAll(ctx context.Context) ([]entity.Source, error) {
	return f.sources, f.err
}

func (f *fakeSourceRepo) GetActive(ctx context.Context) ([]entity.Source, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Source
	for _, s := range f.sources {
		if s.ActiveFlag {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSourceRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

type fakeDiscoveryRepo struct {
	urlsBySource map[uuid.UUID][]string
	errBySource  map[uuid.UUID]error
}

func (f *fakeDiscoveryRepo) DiscoverArticles(ctx context.Context, source entity.Source, season, week int) ([]string, error) {
	if err := f.errBySource[source.ID]; err != nil {
		return nil, err
	}
	return f.urlsBySource[source.ID], nil
}

type fakeFetcher struct {
	textByURL map[string]string
	errByURL  map[string]error
	fetched   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, source entity.Source, url string) (*FetchedArticle, error) {
	if err := f.errByURL[url]; err != nil {
		return nil, err
	}
	f.fetched = append(f.fetched, url)
	text, ok := f.textByURL[url]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", url)
	}
	return &FetchedArticle{
		Article: &entity.RawArticle{ID: uuid.New(), SourceID: source.ID, URL: url},
		Text:    text,
	}, nil
}

type fakeExtractionRepo struct {
	picksByText map[string][]dto.ExtractedPick
	err         error
	calls       int
}

func (f *fakeExtractionRepo) ExtractPicks(ctx context.Context, articleText string, games []entity.Game) ([]dto.ExtractedPick, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.picksByText[articleText], nil
}

type fakePredictionRepo struct {
	predictions []entity.Prediction
	upsertErr   error
}

func (f *fakePredictionRepo) Upsert(ctx context.Context, prediction *entity.Prediction) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.predictions = append(f.predictions, *prediction)
	return nil
}

func (f *fakePredictionRepo) FindByWeek(ctx context.Context, season, week int) ([]entity.Prediction, error) {
	var out []entity.Prediction
	for _, p := range f.predictions {
		if p.Season == season && p.Week == week {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePredictionRepo) FindRecent(ctx context.Context, limit int) ([]entity.Prediction, error) {
	return f.predictions, nil
}

type fakeConsensusRepo struct {
	scores    []entity.ConsensusScore
	upsertErr error
}

func (f *fakeConsensusRepo) Upsert(ctx context.Context, score *entity.ConsensusScore) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.scores = append(f.scores, *score)
	return nil
}

func (f *fakeConsensusRepo) FindByWeek(ctx context.Context, season, week int) ([]entity.ConsensusScore, error) {
	return f.scores, nil
}

type fakeArticleRepo struct {
	byURL     map[string]*entity.RawArticle
	byHash    map[string]*entity.RawArticle
	stored    []*entity.RawArticle
	processed []string
	markErr   error
}

func (f *fakeArticleRepo) FindByURL(ctx context.Context, sourceID uuid.UUID, url string) (*entity.RawArticle, error) {
	return f.byURL[url], nil
}

func (f *fakeArticleRepo) FindByHash(ctx context.Context, sourceID uuid.UUID, hash string) (*entity.RawArticle, error) {
	return f.byHash[hash], nil
}

func (f *fakeArticleRepo) Store(ctx context.Context, article *entity.RawArticle) error {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	f.stored = append(f.stored, article)
	return nil
}

func (f *fakeArticleRepo) MarkProcessed(ctx context.Context, sourceID uuid.UUID, url string, week int) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.processed = append(f.processed, url)
	return nil
}

type fakeRunRepo struct {
	runs []entity.IngestionRun
}

func (f *fakeRunRepo) Create(ctx context.Context, run *entity.IngestionRun) error {
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeRunRepo) FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error) {
	return f.runs, nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

type fakeScheduleService struct {
	games []entity.Game
	err   error
}

func (f *fakeScheduleService) SyncWeek(ctx context.Context, season, week int) ([]entity.Game, error) {
	return f.games, f.err
}

var errBoom = errors.New("boom")
