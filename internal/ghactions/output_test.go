package ghactions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestReporter_ReportPost(t *testing.T) {
	t.Run("appends two lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")
		require.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0644))

		r := NewReporter(Config{Enabled: true, OutputPath: path})
		postedAt := time.Date(2025, 3, 1, 9, 0, 0, 500, time.UTC)
		require.NoError(t, r.ReportPost("123", postedAt))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		assert.Equal(t, "existing=1", lines[0])
		assert.Equal(t, "tweet_id=123", lines[1])
		assert.Equal(t, "posted_at=2025-03-01T09:00:00.0000005Z", lines[2])
	})

	t.Run("creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")

		r := NewReporter(Config{Enabled: true, OutputPath: path})
		require.NoError(t, r.ReportPost("1", time.Now()))

		lines := readLines(t, path)
		assert.Len(t, lines, 2)
	})

	t.Run("disabled reporter writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output")

		r := NewReporter(Config{OutputPath: path})
		require.NoError(t, r.ReportPost("1", time.Now()))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("nil reporter is disabled", func(t *testing.T) {
		var r *Reporter
		assert.False(t, r.Enabled())
		assert.NoError(t, r.ReportPost("1", time.Now()))
	})

	t.Run("enabled without path", func(t *testing.T) {
		r := NewReporter(Config{Enabled: true})
		err := r.ReportPost("1", time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GITHUB_OUTPUT")
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "output")

		r := NewReporter(Config{Enabled: true, OutputPath: path})
		assert.Error(t, r.ReportPost("1", time.Now()))
	})
}

func TestReporter_Write_RejectsMultiline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")

	r := NewReporter(Config{Enabled: true, OutputPath: path})
	err := r.Write(Output{Name: "a", Value: "ok"}, Output{Name: "b", Value: "line1\nline2"})
	require.Error(t, err)

	// Nothing is written when any value is rejected.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
