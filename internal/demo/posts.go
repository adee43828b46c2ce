package demo

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/lowboy/internal/store"
)

// HomePosts is how many posts the home page shows.
const HomePosts = 5

// NewPostEvent names the event published for every new post.
const NewPostEvent = "NewPost"

// PostForm is the body of POST /post.
type PostForm struct {
	Content string `form:"content" validate:"required,max=280" msg:"A post must have between 1 and 280 characters"`
}

// LatestPosts returns the newest posts, newest first.
func LatestPosts(ctx context.Context, q store.Querier, limit uint64) ([]Post, error) {
	query, args, err := q.Builder().
		Select(postColumns...).
		From(postTable).
		OrderBy("id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PostRecord
	for rows.Next() {
		r, err := scanPostRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return PostsFromRecords(ctx, q, records)
}

// CountPosts returns the number of posts.
func CountPosts(ctx context.Context, q store.Querier) (int64, error) {
	query, args, err := q.Builder().Select("COUNT(*)").From(postTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var n int64
	err = q.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// renderPost renders the fragment shown for one post.
func renderPost(p Post) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "post", p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
