package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/devconnector/devconnector-go/internal/github"
	"github.com/devconnector/devconnector-go/internal/mocks"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

const (
	userA = "11111111-1111-4111-8111-111111111111"
	userB = "22222222-2222-4222-8222-222222222222"
)

type profileDeps struct {
	profiles *mocks.MockProfileStore
	accounts *mocks.MockAccountStore
	repos    *mocks.MockRepoFetcher
}

func newTestProfileService(t *testing.T) (*ProfileService, profileDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := profileDeps{
		profiles: mocks.NewMockProfileStore(ctrl),
		accounts: mocks.NewMockAccountStore(ctrl),
		repos:    mocks.NewMockRepoFetcher(ctrl),
	}
	return NewProfileService(d.profiles, d.accounts, d.repos), d
}

func TestProfileSave(t *testing.T) {
	svc, d := newTestProfileService(t)

	var req model.ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Developer","skills":"js, node , react","twitter":"@ada"}`), &req))

	d.profiles.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *model.Profile) error {
		assert.Equal(t, userA, p.User.ID)
		assert.Equal(t, []string{"js", "node", "react"}, p.Skills)
		assert.Equal(t, "@ada", p.Social.Twitter)
		return nil
	})
	d.profiles.EXPECT().GetByUserID(gomock.Any(), userA).Return(&model.Profile{ID: "p-1", Skills: []string{"js", "node", "react"}}, nil)

	p, err := svc.Save(context.Background(), userA, req)
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
}

func TestProfileSave_Validation(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.Save(context.Background(), userA, model.ProfileRequest{})

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"status", "skills"}, []string{verrs[0].Param, verrs[1].Param})
}

func TestProfileByUserID(t *testing.T) {
	svc, d := newTestProfileService(t)

	_, err := svc.ByUserID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	d.profiles.EXPECT().GetByUserID(gomock.Any(), userB).Return(nil, repository.ErrProfileNotFound)
	_, err = svc.ByUserID(context.Background(), userB)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileAddExperience(t *testing.T) {
	tests := []struct {
		name    string
		req     model.ExperienceRequest
		wantTo  string
		wantErr bool
	}{
		{
			name:   "past job",
			req:    model.ExperienceRequest{Title: "Dev", Company: "Acme", From: "2018-01-01", To: "2020-06-30"},
			wantTo: "2020-06-30",
		},
		{
			name: "current clears end date",
			req:  model.ExperienceRequest{Title: "Dev", Company: "Acme", From: "2018-01-01", To: "2020-06-30", Current: true},
		},
		{
			name:    "end before start",
			req:     model.ExperienceRequest{Title: "Dev", Company: "Acme", From: "2020-01-01", To: "2019-01-01"},
			wantErr: true,
		},
		{
			name:    "missing title",
			req:     model.ExperienceRequest{Company: "Acme", From: "2020-01-01"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestProfileService(t)

			if !tt.wantErr {
				d.profiles.EXPECT().AddExperience(gomock.Any(), userA, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, e *model.Experience) error {
						if tt.wantTo == "" {
							assert.Nil(t, e.To)
						} else {
							require.NotNil(t, e.To)
							assert.Equal(t, tt.wantTo, e.To.String())
						}
						return nil
					})
				d.profiles.EXPECT().GetByUserID(gomock.Any(), userA).Return(&model.Profile{}, nil)
			}

			_, err := svc.AddExperience(context.Background(), userA, tt.req)
			if tt.wantErr {
				var verrs validate.Errors
				assert.ErrorAs(t, err, &verrs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProfileAddEducation_NoProfile(t *testing.T) {
	svc, d := newTestProfileService(t)
	d.profiles.EXPECT().AddEducation(gomock.Any(), userA, gomock.Any()).Return(repository.ErrProfileNotFound)

	_, err := svc.AddEducation(context.Background(), userA, model.EducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010-09-01",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileDeleteExperience(t *testing.T) {
	svc, d := newTestProfileService(t)
	gomock.InOrder(
		d.profiles.EXPECT().DeleteExperience(gomock.Any(), userA, "e-1").Return(nil),
		d.profiles.EXPECT().GetByUserID(gomock.Any(), userA).Return(&model.Profile{Experience: []model.Experience{}}, nil),
	)

	p, err := svc.DeleteExperience(context.Background(), userA, "e-1")
	require.NoError(t, err)
	assert.Empty(t, p.Experience)
}

func TestProfileDeleteAccount(t *testing.T) {
	svc, d := newTestProfileService(t)
	d.accounts.EXPECT().DeleteAccount(gomock.Any(), userA).Return(nil)
	d.accounts.EXPECT().DeleteAccount(gomock.Any(), userB).Return(errors.New("db down"))

	assert.NoError(t, svc.DeleteAccount(context.Background(), userA))
	assert.EqualError(t, svc.DeleteAccount(context.Background(), userB), "db down")
}

func TestProfileGitHubRepos(t *testing.T) {
	svc, d := newTestProfileService(t)
	d.repos.EXPECT().Repos(gomock.Any(), "ada").Return(json.RawMessage(`[{"id":1}]`), nil)
	d.repos.EXPECT().Repos(gomock.Any(), "ghost").Return(nil, github.ErrNotFound)

	repos, err := svc.GitHubRepos(context.Background(), "ada")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(repos))

	_, err = svc.GitHubRepos(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrGitHubNotFound)
}
