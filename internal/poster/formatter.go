package poster

import "unicode/utf8"

// TwitterMaxLength is the maximum character count for a Twitter post.
const TwitterMaxLength = 280

// FitsInLimit checks if the post text fits within the limit.
func FitsInLimit(text string, limit int) bool {
	return utf8.RuneCountInString(text) <= limit
}
