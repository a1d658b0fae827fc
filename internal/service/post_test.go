package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/devconnector/devconnector-go/internal/mocks"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

const postID = "33333333-3333-4333-8333-333333333333"

func newTestPostService(t *testing.T) (*PostService, *mocks.MockPostStore, *mocks.MockUserStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostStore(ctrl)
	users := mocks.NewMockUserStore(ctrl)
	return NewPostService(posts, users), posts, users
}

func TestPostCreate_SnapshotsAuthor(t *testing.T) {
	svc, posts, users := newTestPostService(t)

	users.EXPECT().GetByID(gomock.Any(), userA).Return(&model.User{ID: userA, Name: "Ada", Avatar: "ada.png"}, nil)
	posts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *model.Post) error {
		assert.Equal(t, "Ada", p.Name)
		assert.Equal(t, "ada.png", p.Avatar)
		assert.Equal(t, userA, p.User)
		p.ID = postID
		return nil
	})

	p, err := svc.Create(context.Background(), userA, model.TextRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, postID, p.ID)
}

func TestPostCreate_TextRequired(t *testing.T) {
	svc, _, _ := newTestPostService(t)

	_, err := svc.Create(context.Background(), userA, model.TextRequest{})

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "text is required", verrs[0].Msg)
}

func TestPostGet_MalformedID(t *testing.T) {
	svc, _, _ := newTestPostService(t)

	_, err := svc.Get(context.Background(), "42")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostDelete(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		storeErr error
		wantErr  error
		noCall   bool
	}{
		{name: "author", id: postID},
		{name: "not the author", id: postID, storeErr: repository.ErrNotOwner, wantErr: ErrNotAuthorized},
		{name: "malformed id", id: "nope", wantErr: ErrPostNotFound, noCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, posts, _ := newTestPostService(t)
			if !tt.noCall {
				posts.EXPECT().Delete(gomock.Any(), tt.id, userA).Return(tt.storeErr)
			}
			err := svc.Delete(context.Background(), userA, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPostLikeUnlike(t *testing.T) {
	svc, posts, _ := newTestPostService(t)

	gomock.InOrder(
		posts.EXPECT().AddLike(gomock.Any(), postID, userA).Return(nil),
		posts.EXPECT().Likes(gomock.Any(), postID).Return([]model.Like{{User: userA}}, nil),
		posts.EXPECT().AddLike(gomock.Any(), postID, userA).Return(repository.ErrDuplicateLike),
		posts.EXPECT().RemoveLike(gomock.Any(), postID, userB).Return(repository.ErrLikeNotFound),
	)

	likes, err := svc.Like(context.Background(), userA, postID)
	require.NoError(t, err)
	assert.Equal(t, []model.Like{{User: userA}}, likes)

	_, err = svc.Like(context.Background(), userA, postID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	_, err = svc.Unlike(context.Background(), userB, postID)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestPostComment(t *testing.T) {
	svc, posts, users := newTestPostService(t)

	users.EXPECT().GetByID(gomock.Any(), userB).Return(&model.User{ID: userB, Name: "Bob"}, nil)
	posts.EXPECT().AddComment(gomock.Any(), postID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, c *model.Comment) error {
			assert.Equal(t, "Bob", c.Name)
			c.ID = "c-1"
			return nil
		})
	posts.EXPECT().Comments(gomock.Any(), postID).Return([]model.Comment{{ID: "c-1", User: userB, Text: "nice"}}, nil)

	comments, err := svc.Comment(context.Background(), userB, postID, model.TextRequest{Text: "nice"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c-1", comments[0].ID)
}

func TestPostDeleteComment(t *testing.T) {
	const commentID = "44444444-4444-4444-8444-444444444444"

	t.Run("other user", func(t *testing.T) {
		svc, posts, _ := newTestPostService(t)
		posts.EXPECT().DeleteComment(gomock.Any(), postID, commentID, userB).Return(repository.ErrNotOwner)

		_, err := svc.DeleteComment(context.Background(), userB, postID, commentID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("malformed comment id leaves list unchanged", func(t *testing.T) {
		svc, posts, _ := newTestPostService(t)
		posts.EXPECT().Comments(gomock.Any(), postID).Return([]model.Comment{{ID: commentID}}, nil)

		comments, err := svc.DeleteComment(context.Background(), userA, postID, "garbage")
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, posts, _ := newTestPostService(t)
		posts.EXPECT().DeleteComment(gomock.Any(), postID, commentID, userA).Return(repository.ErrPostNotFound)

		_, err := svc.DeleteComment(context.Background(), userA, postID, commentID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}
