package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	"github.com/0xquinto/parlay-picker/internal/ingestion/dto"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiRepository is an ExtractionRepository backed by the Google Gemini
// API, with request and token budgets enforced client-side.
type geminiRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	genAiClient    *genai.Client
	requestLimiter *rate.Limiter
	tokenLimiter   *ratelimit.TokenLimiter
}

// NewGeminiRepository creates a new instance of geminiRepository.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) ExtractionRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	return &geminiRepository{
		cfg:            cfg,
		log:            log,
		genAiClient:    genAiClient,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
	}
}

func (r *geminiRepository) ExtractPicks(ctx context.Context, articleText string, games []entity.Game) ([]dto.ExtractedPick, error) {
	prompt := BuildExtractionPrompt(articleText, games, r.cfg.Ingestion.ArticleMaxChars)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.log.Debug("Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini response contained no text")
	}

	return dto.DecodePickBatch(text)
}
