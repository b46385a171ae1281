package main

import (
	"fmt"
	"time"

	"github.com/abdulachik/autotweet/internal/config"
	"github.com/abdulachik/autotweet/internal/db"
	"github.com/spf13/cobra"
)

const recentPostsLimit = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show post history",
	Long:  `Display post counts by status and the most recent publish attempts.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForHistory(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	byStatus, err := store.CountPostsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}

	recent, err := store.ListRecentPosts(ctx, recentPostsLimit)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	fmt.Fprintln(out, "=== autotweet Statistics ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
	fmt.Fprintln(out)

	var total int64
	fmt.Fprintln(out, "Posts:")
	for _, row := range byStatus {
		fmt.Fprintf(out, "  %s: %d\n", row.Status, row.Count)
		total += row.Count
	}
	fmt.Fprintf(out, "  Total: %d\n", total)
	fmt.Fprintln(out)

	if len(recent) > 0 {
		fmt.Fprintln(out, "Recent:")
		for _, p := range recent {
			detail := p.PlatformPostID.String
			if p.Status == db.StatusFailed {
				detail = p.Error.String
			}
			fmt.Fprintf(out, "  %s  %-6s  %s  %s\n",
				p.PostedAt.Local().Format(time.DateTime), p.Status, detail, p.Content)
		}
		fmt.Fprintln(out)
	}

	return nil
}
