package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// FetchedArticle is the result of fetching one URL through the content cache.
type FetchedArticle struct {
	Article   *entity.RawArticle
	Text      string
	FromCache bool
}

// ArticleFetcherService fetches documents through the content-addressed
// cache. A prior entry for the same URL short-circuits without re-hashing; a
// hash hit after fetching detects URL variants of already-stored content.
type ArticleFetcherService interface {
	Fetch(ctx context.Context, source entity.Source, url string) (*FetchedArticle, error)
}

// NewArticleFetcherService creates a new ArticleFetcherService.
func NewArticleFetcherService(cfg *config.Config, articleRepo repository.RawArticleRepository, log *logger.Logger) ArticleFetcherService {
	timeout := 10 * time.Second
	if d, err := time.ParseDuration(cfg.Ingestion.FetchTimeout); err == nil && d > 0 {
		timeout = d
	}
	return &articleFetcherService{
		cfg:         cfg,
		articleRepo: articleRepo,
		log:         log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		inmemoryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type articleFetcherService struct {
	cfg           *config.Config
	articleRepo   repository.RawArticleRepository
	log           *logger.Logger
	httpClient    *http.Client
	inmemoryCache *cache.Cache
}

func (s *articleFetcherService) Fetch(ctx context.Context, source entity.Source, url string) (*FetchedArticle, error) {
	existing, err := s.articleRepo.FindByURL(ctx, source.ID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article by url: %w", err)
	}
	if existing != nil {
		s.log.Info("Article already stored by URL", logger.StringField("url", url))
		return &FetchedArticle{Article: existing, Text: extractText(existing.Body), FromCache: true}, nil
	}

	body, err := s.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	hash := repository.HashArticle(url, body)
	cached, err := s.articleRepo.FindByHash(ctx, source.ID, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article by hash: %w", err)
	}
	if cached != nil {
		s.log.Info("Cache hit for article content",
			logger.StringField("url", url),
			logger.StringField("cached_url", cached.URL),
		)
		return &FetchedArticle{Article: cached, Text: extractText(cached.Body), FromCache: true}, nil
	}

	article := &entity.RawArticle{
		SourceID:    source.ID,
		URL:         url,
		Body:        body,
		ArticleHash: hash,
	}
	if err := s.articleRepo.Store(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to store article: %w", err)
	}

	s.log.Info("Stored article in cache", logger.StringField("url", url))
	return &FetchedArticle{Article: article, Text: extractText(body), FromCache: false}, nil
}

// fetchWithRetry fetches a document with up to the configured number of
// attempts and a linearly increasing backoff between them. The in-memory
// cache short-circuits repeat fetches of the same URL within a run.
func (s *articleFetcherService) fetchWithRetry(ctx context.Context, url string) (string, error) {
	if body, found := s.inmemoryCache.Get(url); found {
		return body.(string), nil
	}

	maxAttempts := s.cfg.Ingestion.FetchMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	baseDelay := time.Duration(s.cfg.Ingestion.FetchRetryBaseMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, err := s.fetchOnce(ctx, url)
		if err == nil {
			s.inmemoryCache.Set(url, body, cache.DefaultExpiration)
			return body, nil
		}
		lastErr = err
		s.log.Warn("Article fetch attempt failed",
			logger.StringField("url", url),
			logger.IntField("attempt", attempt),
			logger.ErrorField(err),
		)

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(baseDelay * time.Duration(attempt)):
		}
	}
	return "", fmt.Errorf("failed to fetch %s after %d attempts: %w", url, maxAttempts, lastErr)
}

func (s *articleFetcherService) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return utils.CleanToValidUTF8(string(body)), nil
}

// extractText strips a document down to readable text: readability isolates
// the main content, goquery drops the markup.
func extractText(html string) string {
	content := html
	if doc, err := readability.NewDocument(html); err == nil {
		content = doc.Content()
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return utils.CollapseWhitespace(content)
	}
	parsed.Find("script, style, noscript").Remove()
	return utils.CollapseWhitespace(parsed.Text())
}
