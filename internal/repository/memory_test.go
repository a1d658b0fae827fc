package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector-go/internal/model"
)

func seedUser(t *testing.T, s *MemoryStore, name, email string) model.User {
	t.Helper()
	u := model.User{Name: name, Email: email, PasswordHash: "hash", Avatar: "avatar-" + name}
	require.NoError(t, s.Users().Create(context.Background(), &u))
	return u
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seedUser(t, s, "ada", "ada@example.com")

	err := s.Users().Create(ctx, &model.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := s.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryProfileUpsertReplacesFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seedUser(t, s, "ada", "ada@example.com")

	require.NoError(t, s.Profiles().Upsert(ctx, &model.Profile{
		User: model.UserSummary{ID: u.ID}, Status: "Junior", Company: "Acme", Skills: []string{"go"},
	}))
	first, err := s.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, s.Profiles().Upsert(ctx, &model.Profile{
		User: model.UserSummary{ID: u.ID}, Status: "Senior", Skills: []string{"go", "sql"},
	}))
	second, err := s.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Senior", second.Status)
	assert.Empty(t, second.Company)
	assert.Equal(t, []string{"go", "sql"}, second.Skills)
	assert.Equal(t, "ada", second.User.Name)
	assert.Equal(t, "avatar-ada", second.User.Avatar)

	all, err := s.Profiles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryExperienceFrontInsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seedUser(t, s, "ada", "ada@example.com")

	err := s.Profiles().AddExperience(ctx, u.ID, &model.Experience{Title: "x"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	require.NoError(t, s.Profiles().Upsert(ctx, &model.Profile{User: model.UserSummary{ID: u.ID}, Status: "dev", Skills: []string{"go"}}))

	first := &model.Experience{Title: "first"}
	second := &model.Experience{Title: "second"}
	require.NoError(t, s.Profiles().AddExperience(ctx, u.ID, first))
	require.NoError(t, s.Profiles().AddExperience(ctx, u.ID, second))

	p, err := s.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "second", p.Experience[0].Title)

	require.NoError(t, s.Profiles().DeleteExperience(ctx, u.ID, "unknown"))
	p, _ = s.Profiles().GetByUserID(ctx, u.ID)
	assert.Len(t, p.Experience, 2)

	require.NoError(t, s.Profiles().DeleteExperience(ctx, u.ID, first.ID))
	p, _ = s.Profiles().GetByUserID(ctx, u.ID)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, second.ID, p.Experience[0].ID)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seedUser(t, s, "ada", "ada@example.com")
	require.NoError(t, s.Profiles().Upsert(ctx, &model.Profile{User: model.UserSummary{ID: u.ID}, Status: "dev", Skills: []string{"go"}}))

	p, err := s.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	p.Skills[0] = "mutated"

	again, err := s.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Skills)
}

func TestMemoryPosts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	author := seedUser(t, s, "ada", "ada@example.com")
	other := seedUser(t, s, "bob", "bob@example.com")

	older := &model.Post{User: author.ID, Text: "older"}
	newer := &model.Post{User: author.ID, Text: "newer"}
	require.NoError(t, s.Posts().Create(ctx, older))
	require.NoError(t, s.Posts().Create(ctx, newer))

	list, err := s.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Text)

	require.NoError(t, s.Posts().AddLike(ctx, older.ID, other.ID))
	assert.ErrorIs(t, s.Posts().AddLike(ctx, older.ID, other.ID), ErrDuplicateLike)
	assert.ErrorIs(t, s.Posts().RemoveLike(ctx, older.ID, author.ID), ErrLikeNotFound)
	assert.ErrorIs(t, s.Posts().AddLike(ctx, "missing", other.ID), ErrPostNotFound)

	c := &model.Comment{User: other.ID, Text: "nice"}
	require.NoError(t, s.Posts().AddComment(ctx, older.ID, c))
	assert.ErrorIs(t, s.Posts().DeleteComment(ctx, older.ID, c.ID, author.ID), ErrNotOwner)
	assert.NoError(t, s.Posts().DeleteComment(ctx, older.ID, "unknown", author.ID))
	assert.ErrorIs(t, s.Posts().DeleteComment(ctx, "missing", c.ID, other.ID), ErrPostNotFound)
	require.NoError(t, s.Posts().DeleteComment(ctx, older.ID, c.ID, other.ID))

	comments, err := s.Posts().Comments(ctx, older.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.ErrorIs(t, s.Posts().Delete(ctx, older.ID, other.ID), ErrNotOwner)
	require.NoError(t, s.Posts().Delete(ctx, older.ID, author.ID))
	require.NoError(t, s.Posts().Delete(ctx, older.ID, author.ID))

	_, err = s.Posts().GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestMemoryDeleteAccount(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	ada := seedUser(t, s, "ada", "ada@example.com")
	bob := seedUser(t, s, "bob", "bob@example.com")

	require.NoError(t, s.Profiles().Upsert(ctx, &model.Profile{User: model.UserSummary{ID: ada.ID}, Status: "dev", Skills: []string{"go"}}))
	adaPost := &model.Post{User: ada.ID, Text: "mine"}
	bobPost := &model.Post{User: bob.ID, Text: "theirs"}
	require.NoError(t, s.Posts().Create(ctx, adaPost))
	require.NoError(t, s.Posts().Create(ctx, bobPost))
	require.NoError(t, s.Posts().AddLike(ctx, bobPost.ID, ada.ID))

	require.NoError(t, s.Accounts().DeleteAccount(ctx, ada.ID))

	_, err := s.Users().GetByID(ctx, ada.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.Profiles().GetByUserID(ctx, ada.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	_, err = s.Posts().GetByID(ctx, adaPost.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	remaining, err := s.Posts().GetByID(ctx, bobPost.ID)
	require.NoError(t, err)
	assert.Len(t, remaining.Likes, 1)

	// The email is free again.
	seedUser(t, s, "ada2", "ada@example.com")
}
