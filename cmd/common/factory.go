package common

import (
	"fmt"
	"time"

	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
)

// NewCommandDeps creates CommandDeps by loading config and creating a logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logger.Level),
		Development: cfg.Logger.Development,
		Encoding:    cfg.Logger.Encoding,
		OutputPaths: cfg.Logger.OutputPaths,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// ResolveDate resolves the date key for a run: an explicit --date flag value
// is validated, an empty one means "today" in the configured timezone.
func ResolveDate(flagValue, timezone string) (datekey.Key, *time.Location, error) {
	loc, err := datekey.LoadLocation(timezone)
	if err != nil {
		return "", nil, err
	}

	if flagValue == "" {
		return datekey.Today(loc), loc, nil
	}

	key, err := datekey.Parse(flagValue)
	if err != nil {
		return "", nil, err
	}
	return key, loc, nil
}

// ApplySummarizerOverrides threads command-line overrides into the summarizer
// configuration. Overrides travel as explicit values, never by mutating the
// process environment.
func ApplySummarizerOverrides(cfg *config.Config, apiKey, model string) {
	if apiKey != "" {
		cfg.Summarizer.APIKey = apiKey
	}
	if model != "" {
		cfg.Summarizer.Model = model
	}
}
