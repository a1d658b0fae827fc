package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotAuthorized = errors.New("user not authorized")
	ErrAlreadyLiked  = errors.New("post already liked")
	ErrNotLiked      = errors.New("post has not yet been liked")
)

// PostService manages posts, likes and comments.
type PostService struct {
	posts PostStore
	users UserStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore, users UserStore) *PostService {
	return &PostService{
		posts: posts,
		users: users,
	}
}

// Create publishes a post under the current name and avatar of userID.
func (s *PostService) Create(ctx context.Context, userID string, req model.TextRequest) (*model.Post, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &model.Post{
		User:   userID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, mapPostErr(err)
	}
	log.Ctx(ctx).Info().Str("post_id", p.ID).Str("user_id", userID).Msg("post created")
	return p, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	if !isID(id) {
		return nil, ErrPostNotFound
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, mapPostErr(err)
	}
	return p, nil
}

// Delete removes a post written by userID. A post that no longer exists is not an error.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	if !isID(id) {
		return ErrPostNotFound
	}
	if err := s.posts.Delete(ctx, id, userID); err != nil {
		return mapPostErr(err)
	}
	return nil
}

// Like adds the like of userID to a post and returns the post's likes.
func (s *PostService) Like(ctx context.Context, userID, id string) ([]model.Like, error) {
	if !isID(id) {
		return nil, ErrPostNotFound
	}
	if err := s.posts.AddLike(ctx, id, userID); err != nil {
		return nil, mapPostErr(err)
	}
	return s.likes(ctx, id)
}

// Unlike withdraws the like of userID from a post and returns the post's likes.
func (s *PostService) Unlike(ctx context.Context, userID, id string) ([]model.Like, error) {
	if !isID(id) {
		return nil, ErrPostNotFound
	}
	if err := s.posts.RemoveLike(ctx, id, userID); err != nil {
		return nil, mapPostErr(err)
	}
	return s.likes(ctx, id)
}

// Comment attaches a comment by userID to a post and returns the post's comments.
func (s *PostService) Comment(ctx context.Context, userID, postID string, req model.TextRequest) ([]model.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if !isID(postID) {
		return nil, ErrPostNotFound
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &model.Comment{
		User:   userID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.posts.AddComment(ctx, postID, c); err != nil {
		return nil, mapPostErr(err)
	}
	return s.comments(ctx, postID)
}

// DeleteComment removes a comment written by userID and returns the post's comments.
// An unknown comment leaves the list unchanged.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]model.Comment, error) {
	if !isID(postID) {
		return nil, ErrPostNotFound
	}
	if isID(commentID) {
		if err := s.posts.DeleteComment(ctx, postID, commentID, userID); err != nil {
			return nil, mapPostErr(err)
		}
	}
	return s.comments(ctx, postID)
}

func (s *PostService) author(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *PostService) likes(ctx context.Context, id string) ([]model.Like, error) {
	likes, err := s.posts.Likes(ctx, id)
	if err != nil {
		return nil, mapPostErr(err)
	}
	return likes, nil
}

func (s *PostService) comments(ctx context.Context, id string) ([]model.Comment, error) {
	comments, err := s.posts.Comments(ctx, id)
	if err != nil {
		return nil, mapPostErr(err)
	}
	return comments, nil
}

func mapPostErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrNotOwner):
		return ErrNotAuthorized
	case errors.Is(err, repository.ErrDuplicateLike):
		return ErrAlreadyLiked
	case errors.Is(err, repository.ErrLikeNotFound):
		return ErrNotLiked
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
