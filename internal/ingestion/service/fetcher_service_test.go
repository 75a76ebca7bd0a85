package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetcherConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Ingestion.FetchTimeout = "5s"
	cfg.Ingestion.FetchMaxAttempts = 3
	cfg.Ingestion.FetchRetryBaseMs = 1
	return cfg
}

func TestFetchStoresNewArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><article><p>The Chiefs cover against the Bills. " +
			"Kansas City has won six straight at home and the line has not caught up to how " +
			"lopsided this matchup looks on both sides of the ball.</p></article></body></html>"))
	}))
	defer server.Close()

	articleRepo := &fakeArticleRepo{byURL: map[string]*entity.RawArticle{}, byHash: map[string]*entity.RawArticle{}}
	svc := NewArticleFetcherService(fetcherConfig(), articleRepo, testLogger())
	source := entity.Source{ID: uuid.New(), BlogName: "expert-picks"}

	fetched, err := svc.Fetch(context.Background(), source, server.URL)
	require.NoError(t, err)

	assert.False(t, fetched.FromCache)
	assert.Contains(t, fetched.Text, "The Chiefs cover against the Bills.")
	require.Len(t, articleRepo.stored, 1)
	assert.Equal(t, server.URL, articleRepo.stored[0].URL)
	assert.Len(t, articleRepo.stored[0].ArticleHash, 64)
}

func TestFetchShortCircuitsOnURLHit(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	existing := &entity.RawArticle{
		ID:   uuid.New(),
		URL:  server.URL,
		Body: "<html><body>stored earlier</body></html>",
	}
	articleRepo := &fakeArticleRepo{
		byURL:  map[string]*entity.RawArticle{server.URL: existing},
		byHash: map[string]*entity.RawArticle{},
	}
	svc := NewArticleFetcherService(fetcherConfig(), articleRepo, testLogger())

	fetched, err := svc.Fetch(context.Background(), entity.Source{ID: uuid.New()}, server.URL)
	require.NoError(t, err)

	assert.True(t, fetched.FromCache)
	assert.Equal(t, existing.ID, fetched.Article.ID)
	assert.Zero(t, atomic.LoadInt32(&hits), "a URL hit must not reach the network")
	assert.Empty(t, articleRepo.stored)
}

func TestFetchDetectsURLVariantByHash(t *testing.T) {
	body := "<html><body>identical content</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	variantURL := server.URL + "/?utm_source=x"
	existing := &entity.RawArticle{ID: uuid.New(), URL: server.URL, Body: body}
	articleRepo := &fakeArticleRepo{
		byURL:  map[string]*entity.RawArticle{},
		byHash: map[string]*entity.RawArticle{repository.HashArticle(variantURL, body): existing},
	}
	svc := NewArticleFetcherService(fetcherConfig(), articleRepo, testLogger())

	fetched, err := svc.Fetch(context.Background(), entity.Source{ID: uuid.New()}, variantURL)
	require.NoError(t, err)

	assert.True(t, fetched.FromCache)
	assert.Equal(t, existing.ID, fetched.Article.ID)
	assert.Empty(t, articleRepo.stored, "variant content must not be stored twice")
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html><body>finally up</body></html>"))
	}))
	defer server.Close()

	articleRepo := &fakeArticleRepo{byURL: map[string]*entity.RawArticle{}, byHash: map[string]*entity.RawArticle{}}
	svc := NewArticleFetcherService(fetcherConfig(), articleRepo, testLogger())

	fetched, err := svc.Fetch(context.Background(), entity.Source{ID: uuid.New()}, server.URL)
	require.NoError(t, err)
	assert.Contains(t, fetched.Article.Body, "finally up")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	articleRepo := &fakeArticleRepo{byURL: map[string]*entity.RawArticle{}, byHash: map[string]*entity.RawArticle{}}
	svc := NewArticleFetcherService(fetcherConfig(), articleRepo, testLogger())

	_, err := svc.Fetch(context.Background(), entity.Source{ID: uuid.New()}, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Empty(t, articleRepo.stored)
}
