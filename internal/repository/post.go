package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector-go/internal/model"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotOwner      = errors.New("not the author")
	ErrDuplicateLike = errors.New("post already liked")
	ErrLikeNotFound  = errors.New("post not liked")
)

// PostRepository handles post, like and comment persistence.
type PostRepository struct {
	db DBTX
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post and sets its generated ID and date.
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (id, user_id, text, name, avatar, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	createdAt := now()
	if _, err := r.db.ExecContext(ctx, query, id, p.User, p.Text, p.Name, p.Avatar, createdAt); err != nil {
		if isMissingParentError(err) {
			return ErrUserNotFound
		}
		return err
	}

	p.ID = id
	p.Date = createdAt
	p.Likes = []model.Like{}
	p.Comments = []model.Comment{}
	return nil
}

// List retrieves every post, newest first, with likes and comments.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, text, name, avatar, created_at FROM posts ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	likes, err := r.likes(ctx, ``)
	if err != nil {
		return nil, err
	}
	comments, err := r.comments(ctx, ``)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Likes = nonNil(likes[posts[i].ID])
		posts[i].Comments = nonNil(comments[posts[i].ID])
	}
	return posts, nil
}

// GetByID retrieves a single post with likes and comments.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, text, name, avatar, created_at FROM posts WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrPostNotFound
	}

	p := &posts[0]
	likes, err := r.likes(ctx, `WHERE post_id = ?`, id)
	if err != nil {
		return nil, err
	}
	comments, err := r.comments(ctx, `WHERE post_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Likes = nonNil(likes[id])
	p.Comments = nonNil(comments[id])
	return p, nil
}

// Delete removes the post id if userID wrote it. Deleting a missing post is not an error.
func (r *PostRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n > 0 {
		return err
	}

	author, err := r.author(ctx, `SELECT user_id FROM posts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if author != userID {
		return ErrNotOwner
	}
	return nil
}

// AddLike records that userID likes postID. The unique key on (post_id, user_id) rejects repeats.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)`, postID, userID)
	switch {
	case err == nil:
		return nil
	case isDuplicateEntryError(err):
		return ErrDuplicateLike
	case isMissingParentError(err):
		return ErrPostNotFound
	default:
		return err
	}
}

// RemoveLike withdraws the like of userID from postID.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n > 0 {
		return err
	}
	if err := r.exists(ctx, postID); err != nil {
		return err
	}
	return ErrLikeNotFound
}

// Likes returns the likes of postID, most recent first.
func (r *PostRepository) Likes(ctx context.Context, postID string) ([]model.Like, error) {
	likes, err := r.likes(ctx, `WHERE post_id = ?`, postID)
	if err != nil {
		return nil, err
	}
	if len(likes[postID]) == 0 {
		if err := r.exists(ctx, postID); err != nil {
			return nil, err
		}
	}
	return nonNil(likes[postID]), nil
}

// AddComment attaches c to postID and sets its generated ID and date.
func (r *PostRepository) AddComment(ctx context.Context, postID string, c *model.Comment) error {
	query := `INSERT INTO comments (id, post_id, user_id, text, name, avatar, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	createdAt := now()
	if _, err := r.db.ExecContext(ctx, query, id, postID, c.User, c.Text, c.Name, c.Avatar, createdAt); err != nil {
		if isMissingParentError(err) {
			return ErrPostNotFound
		}
		return err
	}

	c.ID = id
	c.Date = createdAt
	return nil
}

// DeleteComment removes commentID from postID if userID wrote it.
// A missing comment on an existing post is not an error.
func (r *PostRepository) DeleteComment(ctx context.Context, postID, commentID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND post_id = ? AND user_id = ?`, commentID, postID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n > 0 {
		return err
	}

	author, err := r.author(ctx, `SELECT user_id FROM comments WHERE id = ? AND post_id = ?`, commentID, postID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return r.exists(ctx, postID)
	case err != nil:
		return err
	case author != userID:
		return ErrNotOwner
	default:
		return nil
	}
}

// Comments returns the comments of postID, most recent first.
func (r *PostRepository) Comments(ctx context.Context, postID string) ([]model.Comment, error) {
	comments, err := r.comments(ctx, `WHERE post_id = ?`, postID)
	if err != nil {
		return nil, err
	}
	if len(comments[postID]) == 0 {
		if err := r.exists(ctx, postID); err != nil {
			return nil, err
		}
	}
	return nonNil(comments[postID]), nil
}

func (r *PostRepository) exists(ctx context.Context, postID string) error {
	_, err := r.author(ctx, `SELECT user_id FROM posts WHERE id = ?`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPostNotFound
	}
	return err
}

func (r *PostRepository) author(ctx context.Context, query string, args ...any) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&userID)
	return userID, err
}

func (r *PostRepository) likes(ctx context.Context, where string, args ...any) (map[string][]model.Like, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT post_id, user_id FROM post_likes `+where+` ORDER BY seq DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Like)
	for rows.Next() {
		var postID string
		var l model.Like
		if err := rows.Scan(&postID, &l.User); err != nil {
			return nil, err
		}
		out[postID] = append(out[postID], l)
	}
	return out, rows.Err()
}

func (r *PostRepository) comments(ctx context.Context, where string, args ...any) (map[string][]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, user_id, text, name, avatar, created_at FROM comments `+where+` ORDER BY seq DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Comment)
	for rows.Next() {
		var postID string
		var c model.Comment
		if err := rows.Scan(&c.ID, &postID, &c.User, &c.Text, &c.Name, &c.Avatar, &c.Date); err != nil {
			return nil, err
		}
		out[postID] = append(out[postID], c)
	}
	return out, rows.Err()
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.User, &p.Text, &p.Name, &p.Avatar, &p.Date); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
