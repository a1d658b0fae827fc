package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/github"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrGitHubNotFound  = errors.New("no github profile found")
)

// ProfileService manages developer profiles and account deletion.
type ProfileService struct {
	profiles ProfileStore
	accounts AccountStore
	repos    RepoFetcher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles ProfileStore, accounts AccountStore, repos RepoFetcher) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		accounts: accounts,
		repos:    repos,
	}
}

// Me returns the profile of the authenticated user.
func (s *ProfileService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	return s.get(ctx, userID)
}

// ByUserID returns the profile of any user. A malformed ID is reported as not found.
func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if !isID(userID) {
		return nil, ErrProfileNotFound
	}
	return s.get(ctx, userID)
}

// List returns every profile.
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.List(ctx)
}

// Save creates the profile of userID or replaces its editable fields.
func (s *ProfileService) Save(ctx context.Context, userID string, req model.ProfileRequest) (*model.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	p := &model.Profile{
		User:           model.UserSummary{ID: userID},
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		Social: model.Social{
			YouTube:   req.YouTube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			LinkedIn:  req.LinkedIn,
			Instagram: req.Instagram,
		},
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	log.Ctx(ctx).Info().Str("user_id", userID).Msg("profile saved")

	return s.get(ctx, userID)
}

// AddExperience puts a new experience at the front of the profile of userID.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, req model.ExperienceRequest) (*model.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	from, to, err := dateRange(req.From, req.To, req.Current)
	if err != nil {
		return nil, err
	}

	e := &model.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := s.profiles.AddExperience(ctx, userID, e); err != nil {
		return nil, mapProfileErr(err)
	}
	return s.get(ctx, userID)
}

// DeleteExperience removes an experience by ID. Unknown IDs leave the profile unchanged.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, id string) (*model.Profile, error) {
	if err := s.profiles.DeleteExperience(ctx, userID, id); err != nil {
		return nil, mapProfileErr(err)
	}
	return s.get(ctx, userID)
}

// AddEducation puts a new education at the front of the profile of userID.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, req model.EducationRequest) (*model.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	from, to, err := dateRange(req.From, req.To, req.Current)
	if err != nil {
		return nil, err
	}

	e := &model.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := s.profiles.AddEducation(ctx, userID, e); err != nil {
		return nil, mapProfileErr(err)
	}
	return s.get(ctx, userID)
}

// DeleteEducation removes an education by ID. Unknown IDs leave the profile unchanged.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, id string) (*model.Profile, error) {
	if err := s.profiles.DeleteEducation(ctx, userID, id); err != nil {
		return nil, mapProfileErr(err)
	}
	return s.get(ctx, userID)
}

// DeleteAccount removes the posts, profile and user record of userID.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.accounts.DeleteAccount(ctx, userID); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// GitHubRepos passes through the repository listing of a GitHub user.
func (s *ProfileService) GitHubRepos(ctx context.Context, username string) (json.RawMessage, error) {
	repos, err := s.repos.Repos(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return nil, ErrGitHubNotFound
		}
		return nil, err
	}
	return repos, nil
}

func (s *ProfileService) get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapProfileErr(err)
	}
	return p, nil
}

func mapProfileErr(err error) error {
	if errors.Is(err, repository.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// dateRange parses the from and to fields of an entry. A current entry has no end date.
func dateRange(rawFrom, rawTo string, current bool) (model.Date, *model.Date, error) {
	from, err := model.ParseDate(rawFrom)
	if err != nil {
		return model.Date{}, nil, validate.Errors{{Msg: "from date is required", Param: "from", Location: "body"}}
	}
	if current || rawTo == "" {
		return from, nil, nil
	}

	to, err := model.ParseDate(rawTo)
	if err != nil {
		return model.Date{}, nil, validate.Errors{{Msg: "to date is invalid", Param: "to", Location: "body"}}
	}
	if to.Before(from.Time) {
		return model.Date{}, nil, validate.Errors{{Msg: "to date must not be before from date", Param: "to", Location: "body"}}
	}
	return from, &to, nil
}

func isID(s string) bool {
	return uuid.Validate(s) == nil
}
