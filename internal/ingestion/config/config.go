package config

import (
	"github.com/0xquinto/parlay-picker/pkg/config"
)

// Ingestion holds pipeline-specific configuration.
type Ingestion struct {
	CronSchedule      string `mapstructure:"cron_schedule"`
	FetchTimeout      string `mapstructure:"fetch_timeout"`
	FetchMaxAttempts  int    `mapstructure:"fetch_max_attempts"`
	FetchRetryBaseMs  int    `mapstructure:"fetch_retry_base_ms"`
	ArticleMaxChars   int    `mapstructure:"article_max_chars"`
	MaxURLsPerSource  int    `mapstructure:"max_urls_per_source"`
	RecencyWindowHrs  int    `mapstructure:"recency_window_hours"`
}

// Scoreboard holds the schedule source configuration.
type Scoreboard struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// Exa holds the article discovery API configuration.
type Exa struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	NumResults int    `mapstructure:"num_results"`
	Timeout    string `mapstructure:"timeout"`
}

// AI holds configuration for extraction providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// OpenRouter holds the configuration for the OpenRouter API.
type OpenRouter struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Sheets holds the spreadsheet publishing configuration.
type Sheets struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the ingestion service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	API        config.API      `mapstructure:"api"`
	Ingestion  Ingestion       `mapstructure:"ingestion"`
	Scoreboard Scoreboard      `mapstructure:"scoreboard"`
	Exa        Exa             `mapstructure:"exa"`
	AI         AI              `mapstructure:"ai"`
	OpenRouter OpenRouter      `mapstructure:"openrouter"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Sheets     Sheets          `mapstructure:"sheets"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the ingestion configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
