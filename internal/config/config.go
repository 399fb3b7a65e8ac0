// Package config provides configuration management for the newsbrief
// application. Values come from a YAML file, environment variables, and
// defaults, all resolved through Viper in cmd/root.go and materialized here
// as explicit structs threaded through the components.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Summarizer defaults.
const (
	// DefaultBaseURL is the chat-completion endpoint base URL.
	DefaultBaseURL = "https://api.deepseek.com"
	// DefaultModel is the completion model used when SUMMARY_MODEL is unset.
	DefaultModel = "deepseek-chat"
	// DefaultTemperature is the fixed sampling temperature.
	DefaultTemperature = 0.6
	// DefaultMaxTokens caps the generated brief length.
	DefaultMaxTokens = 4096
	// DefaultRequestTimeout bounds one completion call. The upstream call is
	// blocking and unretried, so without this a hung request stalls the run.
	DefaultRequestTimeout = 5 * time.Minute
)

// Storage defaults.
const (
	// DefaultArticlesDir is where per-day article files are read from.
	DefaultArticlesDir = "articles"
	// DefaultBriefsDir is where generated briefs are written.
	DefaultBriefsDir = "dailybrief"
)

// Feed defaults.
const (
	// DefaultFeedURL is the upstream news feed.
	DefaultFeedURL = "https://api.axios.com/feed/"
	// DefaultFeedTimeout bounds one feed fetch.
	DefaultFeedTimeout = 30 * time.Second
	// DefaultSourcesFile lists additional feed sources.
	DefaultSourcesFile = "sources.yml"
)

// Server and schedule defaults.
const (
	DefaultServerAddress = ":8000"
	DefaultReadTimeout   = 15 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultIdleTimeout   = 60 * time.Second
	// DefaultCronSpec runs the daily task at 08:00 in the configured timezone.
	DefaultCronSpec = "0 8 * * *"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	Level       string   `mapstructure:"level"`
	Development bool     `mapstructure:"development"`
	Encoding    string   `mapstructure:"encoding"`
	OutputPaths []string `mapstructure:"output_paths"`
}

// StorageConfig holds the article and brief directories.
type StorageConfig struct {
	ArticlesDir string `mapstructure:"articles_dir"`
	BriefsDir   string `mapstructure:"briefs_dir"`
}

// FeedConfig holds the RSS fetch settings.
type FeedConfig struct {
	URL            string        `mapstructure:"url"`
	SourcesFile    string        `mapstructure:"sources_file"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// SummarizerConfig holds the completion client settings.
type SummarizerConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Temperature    float64       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ScheduleConfig holds the daily task schedule.
type ScheduleConfig struct {
	// Cron is a standard 5-field cron spec evaluated in Timezone.
	Cron string `mapstructure:"cron"`
}

// Config represents the application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Server     ServerConfig     `mapstructure:"server"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	// Timezone is the IANA zone that decides what "today" means.
	Timezone string `mapstructure:"timezone"`
}

// LoadConfig materializes the configuration from Viper's resolved state.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every command depends on. The summarizer
// credential is validated later, by the commands that actually call the
// completion endpoint.
func (c *Config) Validate() error {
	if c.Storage.ArticlesDir == "" {
		return errors.New("storage.articles_dir is required")
	}
	if c.Storage.BriefsDir == "" {
		return errors.New("storage.briefs_dir is required")
	}
	if c.Summarizer.BaseURL == "" {
		return errors.New("summarizer.base_url is required")
	}
	if c.Summarizer.MaxTokens <= 0 {
		return fmt.Errorf("summarizer.max_tokens must be positive, got %d", c.Summarizer.MaxTokens)
	}
	return nil
}
