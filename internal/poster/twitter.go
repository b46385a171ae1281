package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	twitterBaseURL   = "https://api.twitter.com/2"
	twitterStatusURL = "https://x.com/i/web/status/"
)

// TwitterPoster posts to Twitter/X via the v2 API using OAuth 1.0a user context.
type TwitterPoster struct {
	httpClient *http.Client
	baseURL    string
}

// TwitterConfig holds configuration for the Twitter poster.
type TwitterConfig struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string

	// BaseURL overrides the API root (default https://api.twitter.com/2).
	BaseURL string
}

// NewTwitterPoster creates a new Twitter poster. Every request it makes is signed
// with the consumer key pair and the access token pair.
func NewTwitterPoster(cfg TwitterConfig) *TwitterPoster {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = twitterBaseURL
	}

	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)

	httpClient := oauthCfg.Client(context.Background(), token)
	httpClient.Timeout = 30 * time.Second

	return &TwitterPoster{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Platform returns the platform name.
func (t *TwitterPoster) Platform() string {
	return "twitter"
}

// createTweetRequest is the request body for POST /tweets.
type createTweetRequest struct {
	Text          string `json:"text"`
	ReplySettings string `json:"reply_settings,omitempty"`
}

// createTweetResponse is the response from POST /tweets.
type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// meResponse is the response from GET /users/me.
type meResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// ValidateCredentials checks the credentials against the authenticated user endpoint.
func (t *TwitterPoster) ValidateCredentials(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/users/me", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	var me meResponse
	if err := t.do(req, &me); err != nil {
		return fmt.Errorf("validate credentials: %w", err)
	}

	slog.Debug("authenticated with Twitter",
		"user_id", me.Data.ID,
		"username", me.Data.Username,
	)

	return nil
}

// Post publishes content to Twitter.
func (t *TwitterPoster) Post(ctx context.Context, content PostContent) (*PostResult, error) {
	if !FitsInLimit(content.Text, TwitterMaxLength) {
		slog.Warn("post text exceeds Twitter limit, sending anyway",
			"length", len([]rune(content.Text)),
			"limit", TwitterMaxLength,
		)
	}

	body, err := json.Marshal(createTweetRequest{
		Text:          content.Text,
		ReplySettings: content.ReplySettings.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/tweets", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created createTweetResponse
	if err := t.do(req, &created); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}

	if created.Data.ID == "" {
		return nil, fmt.Errorf("create tweet: response has no tweet id")
	}

	postURL := twitterStatusURL + created.Data.ID

	slog.Info("posted to Twitter",
		"id", created.Data.ID,
		"url", postURL,
	)

	return &PostResult{
		PostID:  created.Data.ID,
		PostURL: postURL,
	}, nil
}

// do sends req and decodes a successful JSON response into out.
func (t *TwitterPoster) do(req *http.Request, out any) error {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}
