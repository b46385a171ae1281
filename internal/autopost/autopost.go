// Package autopost picks a template and publishes it, reporting the outcome to the
// terminal, to GitHub Actions outputs and to the post history.
package autopost

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/abdulachik/autotweet/internal/db"
	"github.com/abdulachik/autotweet/internal/ghactions"
	"github.com/abdulachik/autotweet/internal/poster"
	"github.com/abdulachik/autotweet/internal/templates"
)

// Recorder stores publish attempts. *db.Store implements it.
type Recorder interface {
	CreatePost(ctx context.Context, arg db.CreatePostParams) (db.Post, error)
}

// Result describes a published post.
type Result struct {
	PostID        string
	PostURL       string
	Content       string
	ReplySettings poster.ReplySettings
	PostedAt      time.Time
}

// Runner selects template content and publishes it through a Poster.
type Runner struct {
	poster        poster.Poster
	templatesPath string
	selector      *templates.Selector
	reporter      *ghactions.Reporter
	recorder      Recorder
	out           io.Writer
	now           func() time.Time
}

// Config holds the collaborators of a Runner. Only Poster is required.
type Config struct {
	Poster        poster.Poster
	TemplatesPath string
	Selector      *templates.Selector
	Reporter      *ghactions.Reporter
	Recorder      Recorder

	// Out receives the human-readable status lines (default os.Stdout).
	Out io.Writer

	// Now stamps successful posts (default time.Now).
	Now func() time.Time
}

// New creates a new Runner.
func New(cfg Config) *Runner {
	r := &Runner{
		poster:        cfg.Poster,
		templatesPath: cfg.TemplatesPath,
		selector:      cfg.Selector,
		reporter:      cfg.Reporter,
		recorder:      cfg.Recorder,
		out:           cfg.Out,
		now:           cfg.Now,
	}
	if r.templatesPath == "" {
		r.templatesPath = templates.DefaultPath
	}
	if r.selector == nil {
		r.selector = templates.NewSelector(nil)
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// LoadTemplates reads the configured template file.
func (r *Runner) LoadTemplates() ([]string, error) {
	return templates.Load(r.templatesPath)
}

// SelectContent picks the post text from templates.
func (r *Runner) SelectContent(tmpls []string) string {
	return r.selector.Select(tmpls)
}

// Preview loads templates and selects content without publishing.
func (r *Runner) Preview() (string, error) {
	tmpls, err := r.LoadTemplates()
	if err != nil {
		return "", err
	}
	return r.SelectContent(tmpls), nil
}

// PublishPost submits content. Any client failure is returned as *PublishError.
//
// On success the post is reported to GitHub Actions when enabled; an error from that
// write is returned as is, after the post has already been published.
func (r *Runner) PublishPost(ctx context.Context, content string, reply poster.ReplySettings) (*Result, error) {
	if !reply.IsKnown() {
		slog.Warn("unrecognized reply settings, passing through", "reply_settings", reply)
	}

	posted, err := r.poster.Post(ctx, poster.PostContent{
		Text:          content,
		ReplySettings: reply,
	})
	if err != nil {
		fmt.Fprintf(r.out, "❌ Post failed: %v\n", err)
		r.record(ctx, db.CreatePostParams{
			Content:       content,
			ReplySettings: reply.String(),
			Status:        db.StatusFailed,
			Error:         sql.NullString{String: err.Error(), Valid: true},
			PostedAt:      r.now(),
		})
		return nil, &PublishError{Platform: r.poster.Platform(), Cause: err}
	}

	result := &Result{
		PostID:        posted.PostID,
		PostURL:       posted.PostURL,
		Content:       content,
		ReplySettings: reply,
		PostedAt:      r.now(),
	}

	fmt.Fprintf(r.out, "✅ Posted successfully: %s\n", result.PostedAt.Format(time.DateTime))
	fmt.Fprintf(r.out, "Content: %s\n", result.Content)
	fmt.Fprintf(r.out, "Tweet ID: %s\n", result.PostID)
	fmt.Fprintf(r.out, "Reply settings: %s\n", result.ReplySettings)

	r.record(ctx, db.CreatePostParams{
		PlatformPostID: sql.NullString{String: result.PostID, Valid: true},
		PostUrl:        sql.NullString{String: result.PostURL, Valid: result.PostURL != ""},
		Content:        content,
		ReplySettings:  reply.String(),
		Status:         db.StatusPosted,
		PostedAt:       result.PostedAt,
	})

	if err := r.reporter.ReportPost(result.PostID, result.PostedAt); err != nil {
		return result, fmt.Errorf("report github output: %w", err)
	}

	return result, nil
}

// PostRandom publishes a random template. It returns false without an error when
// publishing failed (the failure has already been printed); template and reporting
// errors are returned.
func (r *Runner) PostRandom(ctx context.Context, reply poster.ReplySettings) (bool, error) {
	tmpls, err := r.LoadTemplates()
	if err != nil {
		return false, err
	}

	content := r.SelectContent(tmpls)
	slog.Debug("selected content", "templates", len(tmpls), "content", content)

	if _, err := r.PublishPost(ctx, content, reply); err != nil {
		if IsPublishError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// record writes a history row; failures are logged, never returned.
func (r *Runner) record(ctx context.Context, params db.CreatePostParams) {
	if r.recorder == nil {
		return
	}
	params.Platform = r.poster.Platform()
	if _, err := r.recorder.CreatePost(ctx, params); err != nil {
		slog.Warn("failed to record post", "status", params.Status, "error", err)
	}
}
