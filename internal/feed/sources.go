package feed

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/newsbrief/internal/config"
)

// ErrNoSources indicates no feed sources were found in the configuration.
var ErrNoSources = errors.New("no feed sources configured")

// Source is one RSS feed to pull articles from.
type Source struct {
	Name      string `mapstructure:"name"`
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user_agent"`
}

// sourcesFile is the raw shape of sources.yml.
type sourcesFile struct {
	Sources []map[string]any `yaml:"sources"`
}

// LoadSources reads the feed sources file. When the file is absent the
// configured default feed URL is used as the single source, so a bare
// deployment needs no sources file at all.
func LoadSources(cfg config.FeedConfig) ([]Source, error) {
	data, err := os.ReadFile(cfg.SourcesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSources(cfg)
		}
		return nil, fmt.Errorf("read sources file %s: %w", cfg.SourcesFile, err)
	}

	var raw sourcesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", cfg.SourcesFile, err)
	}

	sources := make([]Source, 0, len(raw.Sources))
	for i, entry := range raw.Sources {
		var src Source
		if err := mapstructure.Decode(entry, &src); err != nil {
			return nil, fmt.Errorf("decode source %d: %w", i, err)
		}
		if src.URL == "" {
			return nil, fmt.Errorf("source %d (%q): url is required", i, src.Name)
		}
		if src.Name == "" {
			src.Name = src.URL
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return defaultSources(cfg)
	}
	return sources, nil
}

func defaultSources(cfg config.FeedConfig) ([]Source, error) {
	if cfg.URL == "" {
		return nil, ErrNoSources
	}
	return []Source{{Name: "default", URL: cfg.URL}}, nil
}
