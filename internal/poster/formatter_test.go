package poster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitsInLimit(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		fits  bool
	}{
		{"Hello", 10, true},
		{"Hello", 5, true},
		{"Hello", 4, false},
		{"", 1, true},
		{"定期投稿です", 6, true}, // 6 runes
		{"定期投稿です", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.fits, FitsInLimit(tt.text, tt.limit))
		})
	}
}

func TestFitsInLimit_TwitterMax(t *testing.T) {
	assert.True(t, FitsInLimit(strings.Repeat("a", TwitterMaxLength), TwitterMaxLength))
	assert.False(t, FitsInLimit(strings.Repeat("a", TwitterMaxLength+1), TwitterMaxLength))
}

func TestReplySettings_IsKnown(t *testing.T) {
	assert.True(t, ReplyEveryone.IsKnown())
	assert.True(t, ReplyMentionedUsers.IsKnown())
	assert.True(t, ReplyFollowing.IsKnown())
	assert.False(t, ReplySettings("nobody").IsKnown())
	assert.False(t, ReplySettings("").IsKnown())
	assert.Equal(t, ReplyMentionedUsers, DefaultReplySettings)
}
