package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeLayout keeps posted_at lexically ordered, so range filters compare as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the post history statements.
type Queries struct {
	db DBTX
}

// WithTx returns queries that run inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

const createPost = `
INSERT INTO posts (platform, platform_post_id, post_url, content, reply_settings, status, error, posted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreatePostParams struct {
	Platform       string
	PlatformPostID sql.NullString
	PostUrl        sql.NullString
	Content        string
	ReplySettings  string
	Status         string
	Error          sql.NullString
	PostedAt       time.Time
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Platform,
		arg.PlatformPostID,
		arg.PostUrl,
		arg.Content,
		arg.ReplySettings,
		arg.Status,
		arg.Error,
		formatTime(arg.PostedAt),
	)

	p := Post{
		Platform:       arg.Platform,
		PlatformPostID: arg.PlatformPostID,
		PostUrl:        arg.PostUrl,
		Content:        arg.Content,
		ReplySettings:  arg.ReplySettings,
		Status:         arg.Status,
		Error:          arg.Error,
		PostedAt:       arg.PostedAt,
	}
	err := row.Scan(&p.ID)
	return p, err
}

const countPostsSince = `
SELECT COUNT(*) FROM posts
WHERE platform = ? AND status = 'posted' AND posted_at >= ?
`

// CountPostsSince counts successful posts on platform at or after since.
func (q *Queries) CountPostsSince(ctx context.Context, platform string, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPostsSince, platform, formatTime(since)).Scan(&count)
	return count, err
}

const listRecentPosts = `
SELECT id, platform, platform_post_id, post_url, content, reply_settings, status, error, posted_at
FROM posts
ORDER BY posted_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentPosts(ctx context.Context, limit int64) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listRecentPosts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Post
	for rows.Next() {
		var (
			p        Post
			postedAt string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Platform,
			&p.PlatformPostID,
			&p.PostUrl,
			&p.Content,
			&p.ReplySettings,
			&p.Status,
			&p.Error,
			&postedAt,
		); err != nil {
			return nil, err
		}
		p.PostedAt, err = time.Parse(timeLayout, postedAt)
		if err != nil {
			return nil, fmt.Errorf("parse posted_at %q: %w", postedAt, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countPostsByStatus = `
SELECT status, COUNT(*) AS count FROM posts
GROUP BY status
ORDER BY status
`

type CountPostsByStatusRow struct {
	Status string
	Count  int64
}

func (q *Queries) CountPostsByStatus(ctx context.Context) ([]CountPostsByStatusRow, error) {
	rows, err := q.db.QueryContext(ctx, countPostsByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountPostsByStatusRow
	for rows.Next() {
		var i CountPostsByStatusRow
		if err := rows.Scan(&i.Status, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
