package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/abdulachik/autotweet/internal/app"
	"github.com/abdulachik/autotweet/internal/config"
	"github.com/abdulachik/autotweet/internal/scheduler"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Post on a cron schedule",
	Long: `Run as a daemon that posts a random template on POST_SCHEDULE
(a standard cron expression), at most MAX_POSTS_PER_DAY times a day
when DATABASE_PATH is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	schedCfg := scheduler.Config{
		Schedule:       cfg.PostSchedule,
		Runner:         a.Runner,
		Poster:         a.Poster,
		ReplySettings:  a.ReplySettings(),
		MaxPostsPerDay: cfg.MaxPostsPerDay,
	}
	if a.Store != nil {
		schedCfg.Counter = a.Store
	} else {
		slog.Warn("DATABASE_PATH not set, daily post limit is not enforced")
	}

	sched, err := scheduler.New(schedCfg)
	if err != nil {
		return err
	}

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler error: %w", err)
	}

	slog.Info("shutdown complete")
	return nil
}
