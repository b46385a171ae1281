package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulachik/autotweet/internal/poster"
	"github.com/robfig/cron/v3"
)

// PostRunner publishes one random post. *autopost.Runner implements it.
type PostRunner interface {
	PostRandom(ctx context.Context, reply poster.ReplySettings) (bool, error)
}

// PostCounter counts successful posts. *db.Store implements it.
type PostCounter interface {
	CountPostsSince(ctx context.Context, platform string, since time.Time) (int64, error)
}

// Scheduler posts on a cron schedule until its context is cancelled.
type Scheduler struct {
	schedule       cron.Schedule
	spec           string
	runner         PostRunner
	poster         poster.Poster
	counter        PostCounter
	reply          poster.ReplySettings
	maxPostsPerDay int
	health         *Health
	now            func() time.Time
}

// Config holds scheduler configuration.
type Config struct {
	// Schedule is a standard five-field cron expression or a descriptor like "@daily".
	Schedule      string
	Runner        PostRunner
	Poster        poster.Poster
	ReplySettings poster.ReplySettings

	// Counter enforces MaxPostsPerDay; without it the cap is not checked.
	Counter        PostCounter
	MaxPostsPerDay int
}

// New creates a new scheduler.
func New(cfg Config) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
	}

	return &Scheduler{
		schedule:       schedule,
		spec:           cfg.Schedule,
		runner:         cfg.Runner,
		poster:         cfg.Poster,
		counter:        cfg.Counter,
		reply:          cfg.ReplySettings,
		maxPostsPerDay: cfg.MaxPostsPerDay,
		health:         NewHealth(),
		now:            time.Now,
	}, nil
}

// Run starts the scheduler and blocks until ctx is done. It waits for an
// in-flight post cycle before returning ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting scheduler",
		"schedule", s.spec,
		"next_run", s.schedule.Next(s.now()),
		"max_posts_per_day", s.maxPostsPerDay,
	)

	if err := s.poster.ValidateCredentials(ctx); err != nil {
		s.health.SetUnhealthy(s.poster.Platform(), err)
		slog.Error("failed to validate credentials", "platform", s.poster.Platform(), "error", err)
	} else {
		s.health.SetHealthy(s.poster.Platform(), "authenticated")
	}

	logger := cronLogger{}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.runPostCycle(ctx)
	}))
	c.Start()

	<-ctx.Done()
	slog.Info("scheduler shutting down", "health", s.health.Summary())
	<-c.Stop().Done()

	return ctx.Err()
}

// runPostCycle attempts to post unless the daily cap is reached.
func (s *Scheduler) runPostCycle(ctx context.Context) {
	slog.Debug("running post cycle")

	if s.counter != nil && s.maxPostsPerDay > 0 {
		postsToday, err := s.counter.CountPostsSince(ctx, s.poster.Platform(), startOfDay(s.now()))
		if err != nil {
			slog.Error("failed to count today's posts", "error", err)
		} else if postsToday >= int64(s.maxPostsPerDay) {
			slog.Info("daily post limit reached", "posts_today", postsToday, "max", s.maxPostsPerDay)
			return
		}
	}

	ok, err := s.runner.PostRandom(ctx, s.reply)
	switch {
	case err != nil:
		s.health.SetUnhealthy("post", err)
		slog.Error("post cycle failed", "error", err)
	case !ok:
		s.health.SetUnhealthy("post", fmt.Errorf("publish failed"))
		slog.Warn("post cycle did not publish")
	default:
		s.health.SetHealthy("post", "posted successfully")
		slog.Info("post cycle complete", "next_run", s.schedule.Next(s.now()))
	}
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
