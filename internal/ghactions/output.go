// Package ghactions exposes step outputs to later GitHub Actions steps.
package ghactions

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Reporter appends key=value lines to the file named by GITHUB_OUTPUT.
type Reporter struct {
	enabled    bool
	outputPath string
}

// Config holds configuration for the reporter.
type Config struct {
	// Enabled is true when running inside a GitHub Actions runner.
	Enabled bool

	// OutputPath is the value of GITHUB_OUTPUT.
	OutputPath string
}

// NewReporter creates a new reporter. A disabled reporter writes nothing.
func NewReporter(cfg Config) *Reporter {
	return &Reporter{
		enabled:    cfg.Enabled,
		outputPath: cfg.OutputPath,
	}
}

// Enabled reports whether outputs will be written.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// ReportPost writes the tweet_id and posted_at outputs.
func (r *Reporter) ReportPost(postID string, postedAt time.Time) error {
	return r.Write(
		Output{Name: "tweet_id", Value: postID},
		Output{Name: "posted_at", Value: postedAt.Format(time.RFC3339Nano)},
	)
}

// Output is a single step output.
type Output struct {
	Name  string
	Value string
}

// Write appends outputs in a single write. Values must be single-line.
func (r *Reporter) Write(outputs ...Output) error {
	if !r.Enabled() || len(outputs) == 0 {
		return nil
	}
	if r.outputPath == "" {
		return fmt.Errorf("GITHUB_OUTPUT is not set")
	}

	var b strings.Builder
	for _, o := range outputs {
		if strings.ContainsAny(o.Value, "\r\n") {
			return fmt.Errorf("output %s: multi-line values are not supported", o.Name)
		}
		fmt.Fprintf(&b, "%s=%s\n", o.Name, o.Value)
	}

	f, err := os.OpenFile(r.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open github output: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("write github output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close github output: %w", err)
	}

	return nil
}
