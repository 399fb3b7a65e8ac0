package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsbrief/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			ArticlesDir: config.DefaultArticlesDir,
			BriefsDir:   config.DefaultBriefsDir,
		},
		Summarizer: config.SummarizerConfig{
			BaseURL:     config.DefaultBaseURL,
			Model:       config.DefaultModel,
			Temperature: config.DefaultTemperature,
			MaxTokens:   config.DefaultMaxTokens,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(*config.Config) {},
		},
		{
			name:    "missing articles dir",
			mutate:  func(c *config.Config) { c.Storage.ArticlesDir = "" },
			wantErr: "articles_dir",
		},
		{
			name:    "missing briefs dir",
			mutate:  func(c *config.Config) { c.Storage.BriefsDir = "" },
			wantErr: "briefs_dir",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *config.Config) { c.Summarizer.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *config.Config) { c.Summarizer.MaxTokens = 0 },
			wantErr: "max_tokens",
		},
		{
			name:    "negative max tokens",
			mutate:  func(c *config.Config) { c.Summarizer.MaxTokens = -1 },
			wantErr: "max_tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDoesNotRequireAPIKey(t *testing.T) {
	t.Parallel()

	// The credential is checked by the summarizer client, so commands that
	// never call the completion endpoint work without one.
	cfg := validConfig()
	cfg.Summarizer.APIKey = ""
	require.NoError(t, cfg.Validate())
}
