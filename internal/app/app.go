package app

import (
	"context"
	"io"

	"github.com/abdulachik/autotweet/internal/autopost"
	"github.com/abdulachik/autotweet/internal/config"
	"github.com/abdulachik/autotweet/internal/db"
	"github.com/abdulachik/autotweet/internal/ghactions"
	"github.com/abdulachik/autotweet/internal/poster"
)

// App is the main application container holding all dependencies.
type App struct {
	Config *config.Config
	Store  *db.Store // nil when history is disabled
	Poster poster.Poster
	Runner *autopost.Runner
}

// New creates a new application instance with all dependencies wired up.
// Status lines from the runner are written to out.
func New(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	a := &App{Config: cfg}

	if cfg.HistoryEnabled() {
		store, err := db.NewStore(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		a.Store = store
	}

	a.Poster = poster.NewTwitterPoster(poster.TwitterConfig{
		APIKey:       cfg.TwitterAPIKey,
		APISecret:    cfg.TwitterAPISecret,
		AccessToken:  cfg.TwitterAccessToken,
		AccessSecret: cfg.TwitterAccessTokenSecret,
		BaseURL:      cfg.TwitterAPIBaseURL,
	})

	runnerCfg := autopost.Config{
		Poster:        a.Poster,
		TemplatesPath: cfg.TemplatesPath,
		Reporter: ghactions.NewReporter(ghactions.Config{
			Enabled:    cfg.GitHubActions,
			OutputPath: cfg.GitHubOutput,
		}),
		Out: out,
	}
	if a.Store != nil {
		runnerCfg.Recorder = a.Store
	}
	a.Runner = autopost.New(runnerCfg)

	return a, nil
}

// ReplySettings returns the configured reply-visibility setting.
func (a *App) ReplySettings() poster.ReplySettings {
	return poster.ReplySettings(a.Config.ReplySettings)
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
