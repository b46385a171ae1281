package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration.
type Config struct {
	// Twitter API (OAuth 1.0a user context)
	TwitterAPIKey            string
	TwitterAPISecret         string
	TwitterAccessToken       string
	TwitterAccessTokenSecret string
	TwitterAPIBaseURL        string

	// Posting
	ReplySettings string // everyone, mentionedUsers or following (passed through as-is)
	TemplatesPath string

	// GitHub Actions
	GitHubActions bool
	GitHubOutput  string

	// Post history (disabled when empty)
	DatabasePath string

	// Logging
	LogLevel string

	// Scheduler settings
	PostSchedule   string
	MaxPostsPerDay int
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		TwitterAPIKey:            getEnv("TWITTER_API_KEY", ""),
		TwitterAPISecret:         getEnv("TWITTER_API_SECRET", ""),
		TwitterAccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
		TwitterAccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		TwitterAPIBaseURL:        strings.TrimRight(getEnv("TWITTER_API_BASE_URL", "https://api.twitter.com/2"), "/"),
		ReplySettings:            getEnv("REPLY_SETTINGS", "mentionedUsers"),
		TemplatesPath:            getEnv("TEMPLATES_PATH", "tweets.json"),
		GitHubActions:            getEnv("GITHUB_ACTIONS", "") != "",
		GitHubOutput:             getEnv("GITHUB_OUTPUT", ""),
		DatabasePath:             getEnv("DATABASE_PATH", ""),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		PostSchedule:             getEnv("POST_SCHEDULE", "0 9 * * *"),
	}

	maxPosts, err := strconv.Atoi(getEnv("MAX_POSTS_PER_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_POSTS_PER_DAY: %w", err)
	}
	cfg.MaxPostsPerDay = maxPosts

	return cfg, nil
}

// HistoryEnabled reports whether posts should be recorded in the database.
func (c *Config) HistoryEnabled() bool {
	return c.DatabasePath != ""
}

// ValidateForPosting checks configuration needed for posting.
// Missing credentials are reported together as an *AuthConfigError.
func (c *Config) ValidateForPosting() error {
	var missing []string
	if c.TwitterAPIKey == "" {
		missing = append(missing, "TWITTER_API_KEY")
	}
	if c.TwitterAPISecret == "" {
		missing = append(missing, "TWITTER_API_SECRET")
	}
	if c.TwitterAccessToken == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN")
	}
	if c.TwitterAccessTokenSecret == "" {
		missing = append(missing, "TWITTER_ACCESS_TOKEN_SECRET")
	}
	if len(missing) > 0 {
		return &AuthConfigError{Missing: missing}
	}

	if c.GitHubActions && c.GitHubOutput == "" {
		return fmt.Errorf("GITHUB_OUTPUT is required when GITHUB_ACTIONS is set")
	}
	return nil
}

// ValidateForHistory checks configuration needed for the post history database.
func (c *Config) ValidateForHistory() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForPosting(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(c.PostSchedule); err != nil {
		return fmt.Errorf("invalid POST_SCHEDULE %q: %w", c.PostSchedule, err)
	}
	if c.MaxPostsPerDay <= 0 {
		return fmt.Errorf("MAX_POSTS_PER_DAY must be positive, got %d", c.MaxPostsPerDay)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
