// Package cmd implements the command-line interface for newsbrief.
// It provides the root command and subcommands for fetching articles,
// generating daily briefs, and serving them.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	briefcmd "github.com/jonesrussell/newsbrief/cmd/brief"
	briefscmd "github.com/jonesrussell/newsbrief/cmd/briefs"
	fetchcmd "github.com/jonesrussell/newsbrief/cmd/fetch"
	runcmd "github.com/jonesrussell/newsbrief/cmd/run"
	schedulercmd "github.com/jonesrussell/newsbrief/cmd/scheduler"
	servecmd "github.com/jonesrussell/newsbrief/cmd/serve"
	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
)

// version can be set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	// rootCmd represents the root command for the newsbrief CLI.
	rootCmd = &cobra.Command{
		Use:   "newsbrief",
		Short: "Daily news brief generator",
		Long: `newsbrief fetches a day's news articles, summarizes them through a
chat-completion endpoint, and writes the resulting markdown brief to disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to Viper
	_ = godotenv.Load()

	// Parse flags early to pick up --config and --debug before initConfig
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newsbrief version %s\n", version)
		},
	})

	rootCmd.AddCommand(briefcmd.Command())
	rootCmd.AddCommand(fetchcmd.Command())
	rootCmd.AddCommand(runcmd.Command())
	rootCmd.AddCommand(schedulercmd.Command())
	rootCmd.AddCommand(servecmd.Command())
	rootCmd.AddCommand(briefscmd.Command())
}

// initConfig reads in the config file and environment variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file values
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional: defaults plus environment cover a bare run
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// bindEnvVars maps environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":    {"APP_ENV"},
		"app.debug":          {"APP_DEBUG"},
		"logger.level":       {"LOG_LEVEL"},
		"logger.encoding":    {"LOG_FORMAT"},
		"summarizer.api_key": {"DEEPSEEK_API_KEY"},
		"summarizer.model":   {"SUMMARY_MODEL", "DEEPSEEK_MODEL"},
		"server.address":     {"SERVER_ADDRESS"},
	}

	for key, envs := range bindings {
		input := append([]string{key}, envs...)
		if err := viper.BindEnv(input...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "newsbrief",
		"version":     version,
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "console",
		"output_paths": []string{"stdout"},
	})

	viper.SetDefault("storage", map[string]any{
		"articles_dir": config.DefaultArticlesDir,
		"briefs_dir":   config.DefaultBriefsDir,
	})

	viper.SetDefault("feed", map[string]any{
		"url":             config.DefaultFeedURL,
		"sources_file":    config.DefaultSourcesFile,
		"request_timeout": config.DefaultFeedTimeout.String(),
		"user_agent":      "newsbrief/" + version,
	})

	viper.SetDefault("summarizer", map[string]any{
		"base_url":        config.DefaultBaseURL,
		"model":           config.DefaultModel,
		"temperature":     config.DefaultTemperature,
		"max_tokens":      config.DefaultMaxTokens,
		"request_timeout": config.DefaultRequestTimeout.String(),
	})

	viper.SetDefault("server", map[string]any{
		"address":       config.DefaultServerAddress,
		"read_timeout":  config.DefaultReadTimeout.String(),
		"write_timeout": config.DefaultWriteTimeout.String(),
		"idle_timeout":  config.DefaultIdleTimeout.String(),
	})

	viper.SetDefault("schedule", map[string]any{
		"cron": config.DefaultCronSpec,
	})

	viper.SetDefault("timezone", datekey.DefaultTimezone)
}
