package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTwitter is a stand-in for the v2 API that records created tweets.
type fakeTwitter struct {
	*httptest.Server

	mu     sync.Mutex
	hits   int
	tweets []map[string]string
	status int
}

func newFakeTwitter(t *testing.T) *fakeTwitter {
	t.Helper()
	f := &fakeTwitter{status: http.StatusCreated}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits++

		if f.status >= 400 {
			w.WriteHeader(f.status)
			w.Write([]byte(`{"title":"Forbidden"}`))
			return
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.tweets = append(f.tweets, body)

		w.WriteHeader(f.status)
		w.Write([]byte(`{"data":{"id":"123","text":"ok"}}`))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeTwitter) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

// setupEnv clears every setting and points the API at baseURL with full credentials.
func setupEnv(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()

	for _, key := range []string{
		"REPLY_SETTINGS", "GITHUB_ACTIONS", "GITHUB_OUTPUT", "DATABASE_PATH",
		"POST_SCHEDULE", "MAX_POSTS_PER_DAY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("TWITTER_API_BASE_URL", baseURL)
	t.Setenv("TEMPLATES_PATH", filepath.Join(dir, "tweets.json"))

	postDryRun = false
	t.Cleanup(func() { postDryRun = false })

	return dir
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_MissingCredentials(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)
	t.Setenv("TWITTER_API_KEY", "")

	code, _, stderr := run()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "❌")
	assert.Contains(t, stderr, "TWITTER_API_KEY")
	assert.Zero(t, api.Hits(), "no network call")
}

func TestExecute_PostsFallbackWithoutTemplates(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)

	code, stdout, stderr := run()

	require.Equal(t, 0, code, stderr)
	require.Len(t, api.tweets, 1)
	assert.Equal(t, "定期投稿です", api.tweets[0]["text"])
	assert.Equal(t, "mentionedUsers", api.tweets[0]["reply_settings"])
	assert.Contains(t, stdout, "Tweet ID: 123")
	assert.Contains(t, stdout, "✅ Done")
}

func TestExecute_PostsTemplate(t *testing.T) {
	api := newFakeTwitter(t)
	dir := setupEnv(t, api.URL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tweets.json"), []byte(`{"tweets": ["only one"]}`), 0644))
	t.Setenv("REPLY_SETTINGS", "following")

	code, _, stderr := run("post")

	require.Equal(t, 0, code, stderr)
	require.Len(t, api.tweets, 1)
	assert.Equal(t, "only one", api.tweets[0]["text"])
	assert.Equal(t, "following", api.tweets[0]["reply_settings"])
}

func TestExecute_GitHubActionsOutput(t *testing.T) {
	api := newFakeTwitter(t)
	dir := setupEnv(t, api.URL)
	outputPath := filepath.Join(dir, "github_output")
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_OUTPUT", outputPath)

	code, _, stderr := run()
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "tweet_id=123", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "posted_at="))
}

func TestExecute_GitHubActionsWithoutOutputPath(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)
	t.Setenv("GITHUB_ACTIONS", "true")

	code, _, stderr := run()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "GITHUB_OUTPUT")
	assert.Zero(t, api.Hits())
}

func TestExecute_PublishFailure(t *testing.T) {
	api := newFakeTwitter(t)
	dir := setupEnv(t, api.URL)
	api.status = http.StatusForbidden
	outputPath := filepath.Join(dir, "github_output")
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_OUTPUT", outputPath)

	code, stdout, stderr := run()

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "❌ Post failed")
	assert.Contains(t, stderr, "post failed")

	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_MalformedTemplates(t *testing.T) {
	api := newFakeTwitter(t)
	dir := setupEnv(t, api.URL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tweets.json"), []byte(`{"tweets": [`), 0644))

	code, _, stderr := run()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "parse templates")
	assert.Zero(t, api.Hits())
}

func TestExecute_DryRun(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)
	t.Setenv("TWITTER_API_KEY", "")

	code, stdout, stderr := run("post", "--dry-run")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "DRY RUN")
	assert.Contains(t, stdout, "定期投稿です")
	assert.Zero(t, api.Hits())
}

func TestExecute_HistoryAndStats(t *testing.T) {
	api := newFakeTwitter(t)
	dir := setupEnv(t, api.URL)
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "data", "history.db"))

	code, _, stderr := run("migrate")
	require.Equal(t, 0, code, stderr)

	code, _, stderr = run()
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := run("stats")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "posted: 1")
	assert.Contains(t, stdout, "Total: 1")
	assert.Contains(t, stdout, "123")
}

func TestExecute_StatsRequiresDatabase(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)

	code, _, stderr := run("stats")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "DATABASE_PATH")
}

func TestExecute_ServeRejectsBadSchedule(t *testing.T) {
	api := newFakeTwitter(t)
	setupEnv(t, api.URL)
	t.Setenv("POST_SCHEDULE", "sometimes")

	code, _, stderr := run("serve")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "POST_SCHEDULE")
}
