package poster

// ReplySettings controls who may reply to a created post.
type ReplySettings string

const (
	ReplyEveryone       ReplySettings = "everyone"
	ReplyMentionedUsers ReplySettings = "mentionedUsers"
	ReplyFollowing      ReplySettings = "following"
)

// DefaultReplySettings closes replies to everyone but mentioned accounts.
const DefaultReplySettings = ReplyMentionedUsers

// IsKnown reports whether r is one of the documented values.
// Unknown values are still sent; the platform decides whether to accept them.
func (r ReplySettings) IsKnown() bool {
	switch r {
	case ReplyEveryone, ReplyMentionedUsers, ReplyFollowing:
		return true
	}
	return false
}

func (r ReplySettings) String() string {
	return string(r)
}
