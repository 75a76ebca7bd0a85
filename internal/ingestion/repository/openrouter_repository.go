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
)

// openRouterRepository is an ExtractionRepository backed by the OpenRouter
// chat-completions API.
type openRouterRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewOpenRouterRepository creates a new instance of openRouterRepository.
func NewOpenRouterRepository(cfg *config.Config, log *logger.Logger) ExtractionRepository {
	return &openRouterRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (r *openRouterRepository) ExtractPicks(ctx context.Context, articleText string, games []entity.Game) ([]dto.ExtractedPick, error) {
	prompt := BuildExtractionPrompt(articleText, games, r.cfg.Ingestion.ArticleMaxChars)

	payload, err := json.Marshal(dto.OpenRouterRequest{
		Model: r.cfg.OpenRouter.Model,
		Messages: []dto.OpenRouterMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	url := r.cfg.OpenRouter.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.OpenRouter.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.Error("Extraction API returned non-200 status",
			logger.IntField("status", resp.StatusCode),
			logger.StringField("body", string(body)),
		)
		return nil, fmt.Errorf("extraction API returned status %d", resp.StatusCode)
	}

	var completion dto.OpenRouterResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("extraction response missing choices")
	}

	return dto.DecodePickBatch(completion.Choices[0].Message.Content)
}
