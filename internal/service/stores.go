//go:generate mockgen -source=stores.go -destination=../mocks/stores.go -package=mocks

package service

import (
	"context"
	"encoding/json"

	"github.com/devconnector/devconnector-go/internal/model"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileStore persists profiles and their experience and education entries.
type ProfileStore interface {
	Upsert(ctx context.Context, p *model.Profile) error
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	AddExperience(ctx context.Context, userID string, e *model.Experience) error
	DeleteExperience(ctx context.Context, userID, id string) error
	AddEducation(ctx context.Context, userID string, e *model.Education) error
	DeleteEducation(ctx context.Context, userID, id string) error
}

// PostStore persists posts, likes and comments.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) error
	List(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Delete(ctx context.Context, id, userID string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	Likes(ctx context.Context, postID string) ([]model.Like, error)
	AddComment(ctx context.Context, postID string, c *model.Comment) error
	DeleteComment(ctx context.Context, postID, commentID, userID string) error
	Comments(ctx context.Context, postID string) ([]model.Comment, error)
}

// AccountStore removes a user and everything they own.
type AccountStore interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// RepoFetcher lists the public repositories of a GitHub user.
type RepoFetcher interface {
	Repos(ctx context.Context, username string) (json.RawMessage, error)
}
