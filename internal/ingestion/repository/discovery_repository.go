package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// DiscoveryRepository finds candidate article URLs for a source. Search
// results and feed items are merged, then filtered to the recency window;
// results with no timestamp are kept, treated as presumed-recent.
type DiscoveryRepository interface {
	DiscoverArticles(ctx context.Context, source entity.Source, season, week int) ([]string, error)
}

type discoveryRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	feedParser *gofeed.Parser
}

// NewDiscoveryRepository creates a new instance of DiscoveryRepository.
func NewDiscoveryRepository(cfg *config.Config, log *logger.Logger) DiscoveryRepository {
	timeout := 10 * time.Second
	if d, err := time.ParseDuration(cfg.Exa.Timeout); err == nil && d > 0 {
		timeout = d
	}
	return &discoveryRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		feedParser: gofeed.NewParser(),
	}
}

func (r *discoveryRepository) DiscoverArticles(ctx context.Context, source entity.Source, season, week int) ([]string, error) {
	candidates, err := r.search(ctx, source, season, week)
	if err != nil {
		return nil, err
	}

	if source.FeedURL != nil && *source.FeedURL != "" {
		feedItems, err := r.readFeed(ctx, *source.FeedURL)
		if err != nil {
			// The feed is a secondary channel; a broken feed must not sink
			// the search results.
			r.log.Warn("Failed to read source feed",
				logger.StringField("source", source.BlogName),
				logger.ErrorField(err),
			)
		} else {
			candidates = append(candidates, feedItems...)
		}
	}

	window := time.Duration(r.cfg.Ingestion.RecencyWindowHrs) * time.Hour
	if window <= 0 {
		window = 24 * time.Hour
	}
	urls := FilterRecent(candidates, time.Now(), window)

	if max := r.cfg.Ingestion.MaxURLsPerSource; max > 0 && len(urls) > max {
		urls = urls[:max]
	}

	r.log.Info("Discovery complete",
		logger.StringField("source", source.BlogName),
		logger.IntField("candidates", len(candidates)),
		logger.IntField("kept", len(urls)),
	)
	return urls, nil
}

// search queries the Exa search API scoped to the source's site.
func (r *discoveryRepository) search(ctx context.Context, source entity.Source, season, week int) ([]dto.DiscoveredURL, error) {
	teamPart := " "
	if source.AssociatedTeam != nil && *source.AssociatedTeam != "" {
		teamPart = fmt.Sprintf(" %s ", *source.AssociatedTeam)
	}
	query := fmt.Sprintf("%s%sweek %d picks %d site:%s", source.BlogName, teamPart, week, season, source.BaseURL)

	numResults := r.cfg.Exa.NumResults
	if numResults <= 0 {
		numResults = 10
	}
	payload, err := json.Marshal(dto.ExaSearchRequest{Query: query, NumResults: numResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Exa.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.cfg.Exa.APIKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	var searchResp dto.ExaSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	discovered := make([]dto.DiscoveredURL, 0, len(searchResp.Results))
	for _, result := range searchResp.Results {
		entry := dto.DiscoveredURL{URL: result.URL}
		if result.PublishedDate != "" {
			if ts, err := time.Parse(time.RFC3339, result.PublishedDate); err == nil {
				entry.PublishedAt = &ts
			}
		}
		discovered = append(discovered, entry)
	}
	return discovered, nil
}

// readFeed pulls the source's RSS/Atom feed when one is configured.
func (r *discoveryRepository) readFeed(ctx context.Context, feedURL string) ([]dto.DiscoveredURL, error) {
	feed, err := r.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	discovered := make([]dto.DiscoveredURL, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		discovered = append(discovered, dto.DiscoveredURL{
			URL:         item.Link,
			PublishedAt: item.PublishedParsed,
		})
	}
	return discovered, nil
}

// FilterRecent keeps URLs published within the window before now, preserving
// order and deduplicating repeats. URLs without a timestamp pass the filter.
func FilterRecent(candidates []dto.DiscoveredURL, now time.Time, window time.Duration) []string {
	cutoff := now.Add(-window)
	seen := make(map[string]bool, len(candidates))

	var urls []string
	for _, candidate := range candidates {
		if candidate.URL == "" || seen[candidate.URL] {
			continue
		}
		if candidate.PublishedAt != nil && candidate.PublishedAt.Before(cutoff) {
			continue
		}
		seen[candidate.URL] = true
		urls = append(urls, candidate.URL)
	}
	return urls
}
