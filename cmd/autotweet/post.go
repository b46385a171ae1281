package main

import (
	"errors"
	"fmt"

	"github.com/abdulachik/autotweet/internal/app"
	"github.com/abdulachik/autotweet/internal/config"
	"github.com/spf13/cobra"
)

var postDryRun bool

var errPublishFailed = errors.New("post failed")

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a random template",
	Long: `Pick a random template and post it to Twitter/X.

Examples:
  autotweet post            # Actually post
  autotweet post --dry-run  # Show what would be posted without posting`,
	Args: cobra.NoArgs,
	RunE: runPost,
}

func init() {
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Show what would be posted without actually posting")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !postDryRun {
		if err := cfg.ValidateForPosting(); err != nil {
			return err
		}
	}

	a, err := app.New(ctx, cfg, out)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	if postDryRun {
		content, err := a.Runner.Preview()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "=== DRY RUN - Not posting ===")
		fmt.Fprintf(out, "Content: %s\n", content)
		fmt.Fprintf(out, "Reply settings: %s\n", a.ReplySettings())
		return nil
	}

	ok, err := a.Runner.PostRandom(ctx, a.ReplySettings())
	if err != nil {
		return err
	}
	if !ok {
		return errPublishFailed
	}

	fmt.Fprintln(out, "✅ Done")
	return nil
}
