package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autotweet",
	Short: "Post a random template to Twitter/X",
	Long: `autotweet picks one message from a JSON template file and posts it to
Twitter/X. Run without a subcommand it posts once and exits, which is how
it is meant to be called from a scheduled GitHub Actions workflow.`,
	Args:          cobra.NoArgs,
	RunE:          runPost,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	rootCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Show what would be posted without actually posting")
}

// execute runs the command tree and maps the outcome to a process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	// cobra falls back to os.Args on nil
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
