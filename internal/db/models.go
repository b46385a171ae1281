package db

import (
	"database/sql"
	"time"
)

// Post statuses.
const (
	StatusPosted = "posted"
	StatusFailed = "failed"
)

// Post is one publish attempt.
type Post struct {
	ID             int64
	Platform       string
	PlatformPostID sql.NullString
	PostUrl        sql.NullString
	Content        string
	ReplySettings  string
	Status         string
	Error          sql.NullString
	PostedAt       time.Time
}
