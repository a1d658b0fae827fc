package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/state"
)

const (
	DefaultAlertTimeout    = 3 * time.Second
	ValidationAlertTimeout = 5 * time.Second
)

// Actions performs API calls and dispatches their outcome into a state.Store.
// Every failure dispatches the slice error event and one alert per server message.
type Actions struct {
	api    *API
	store  *state.Store
	tokens TokenStore

	alertTimeout      time.Duration
	validationTimeout time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Option configures Actions.
type Option func(*Actions)

// WithAlertTimeouts overrides how long regular and validation alerts stay up.
func WithAlertTimeouts(regular, validation time.Duration) Option {
	return func(a *Actions) {
		a.alertTimeout = regular
		a.validationTimeout = validation
	}
}

// NewActions creates action creators bound to store. The API client starts with the store's token.
func NewActions(api *API, store *state.Store, tokens TokenStore, opts ...Option) *Actions {
	a := &Actions{
		api:               api,
		store:             store,
		tokens:            tokens,
		alertTimeout:      DefaultAlertTimeout,
		validationTimeout: ValidationAlertTimeout,
		timers:            make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(a)
	}
	api.SetToken(store.State().Auth.Token)
	return a
}

// SetAlert shows msg and schedules its removal after timeout. A zero timeout
// uses the default. It returns the alert's ID.
func (a *Actions) SetAlert(msg, alertType string, timeout time.Duration) string {
	if timeout <= 0 {
		timeout = a.alertTimeout
	}
	id := uuid.NewString()
	a.store.Dispatch(state.SetAlert{Alert: state.Alert{ID: id, Msg: msg, AlertType: alertType}})

	a.mu.Lock()
	a.timers[id] = time.AfterFunc(timeout, func() {
		a.mu.Lock()
		delete(a.timers, id)
		a.mu.Unlock()
		a.store.Dispatch(state.RemoveAlert{ID: id})
	})
	a.mu.Unlock()
	return id
}

// Close stops pending alert timers.
func (a *Actions) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}

// LoadUser fetches the account behind the current token.
func (a *Actions) LoadUser(ctx context.Context) error {
	if a.store.State().Auth.Token == "" {
		a.store.Dispatch(state.AuthError{})
		return nil
	}
	user, err := a.api.Me(ctx)
	if err != nil {
		a.forgetToken()
		a.store.Dispatch(state.AuthError{})
		return err
	}
	a.store.Dispatch(state.UserLoaded{User: user})
	return nil
}

// Register creates an account, persists its token and loads the user.
func (a *Actions) Register(ctx context.Context, name, email, password string) error {
	token, err := a.api.Register(ctx, model.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		a.validationAlerts(err)
		a.forgetToken()
		a.store.Dispatch(state.RegisterFail{})
		return err
	}
	a.rememberToken(token)
	a.store.Dispatch(state.RegisterSuccess{Token: token})
	return a.LoadUser(ctx)
}

// Login logs in, persists the token and loads the user.
func (a *Actions) Login(ctx context.Context, email, password string) error {
	token, err := a.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		a.validationAlerts(err)
		a.forgetToken()
		a.store.Dispatch(state.LoginFail{})
		return err
	}
	a.rememberToken(token)
	a.store.Dispatch(state.LoginSuccess{Token: token})
	return a.LoadUser(ctx)
}

// Logout forgets the token and clears the profile and auth slices.
func (a *Actions) Logout() {
	a.forgetToken()
	a.store.Dispatch(state.ClearProfile{})
	a.store.Dispatch(state.Logout{})
}

// GetCurrentProfile loads the current user's profile.
func (a *Actions) GetCurrentProfile(ctx context.Context) error {
	p, err := a.api.MyProfile(ctx)
	if err != nil {
		return a.profileFailed(err, false)
	}
	a.store.Dispatch(state.GetProfile{Profile: p})
	return nil
}

// GetProfiles clears the profile view and loads every profile.
func (a *Actions) GetProfiles(ctx context.Context) error {
	a.store.Dispatch(state.ClearProfile{})
	profiles, err := a.api.Profiles(ctx)
	if err != nil {
		return a.profileFailed(err, false)
	}
	a.store.Dispatch(state.GetProfiles{Profiles: profiles})
	return nil
}

// GetProfileByID loads the profile of userID.
func (a *Actions) GetProfileByID(ctx context.Context, userID string) error {
	p, err := a.api.ProfileByUser(ctx, userID)
	if err != nil {
		return a.profileFailed(err, false)
	}
	a.store.Dispatch(state.GetProfile{Profile: p})
	return nil
}

// GetGitHubRepos loads the repositories of a GitHub user.
func (a *Actions) GetGitHubRepos(ctx context.Context, username string) error {
	repos, err := a.api.GitHubRepos(ctx, username)
	if err != nil {
		return a.profileFailed(err, false)
	}
	a.store.Dispatch(state.GetRepos{Repos: repos})
	return nil
}

// CreateProfile creates or, when edit is set, updates the current user's profile.
func (a *Actions) CreateProfile(ctx context.Context, req model.ProfileRequest, edit bool) error {
	p, err := a.api.SaveProfile(ctx, req)
	if err != nil {
		return a.profileFailed(err, true)
	}
	a.store.Dispatch(state.GetProfile{Profile: p})
	if edit {
		a.SetAlert("Profile Updated", state.AlertSuccess, 0)
	} else {
		a.SetAlert("Profile Created", state.AlertSuccess, 0)
	}
	return nil
}

// AddExperience adds an experience entry to the current profile.
func (a *Actions) AddExperience(ctx context.Context, req model.ExperienceRequest) error {
	p, err := a.api.AddExperience(ctx, req)
	return a.profileUpdated(p, err, "Experience Added")
}

// DeleteExperience removes an experience entry from the current profile.
func (a *Actions) DeleteExperience(ctx context.Context, id string) error {
	p, err := a.api.DeleteExperience(ctx, id)
	return a.profileUpdated(p, err, "Experience Removed")
}

// AddEducation adds an education entry to the current profile.
func (a *Actions) AddEducation(ctx context.Context, req model.EducationRequest) error {
	p, err := a.api.AddEducation(ctx, req)
	return a.profileUpdated(p, err, "Education Added")
}

// DeleteEducation removes an education entry from the current profile.
func (a *Actions) DeleteEducation(ctx context.Context, id string) error {
	p, err := a.api.DeleteEducation(ctx, id)
	return a.profileUpdated(p, err, "Education Removed")
}

// DeleteAccount removes the account, its profile and its posts. Callers confirm first.
func (a *Actions) DeleteAccount(ctx context.Context) error {
	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.profileFailed(err, false)
	}
	a.forgetToken()
	a.store.Dispatch(state.ClearProfile{})
	a.store.Dispatch(state.AccountDeleted{})
	a.SetAlert("Your account has been deleted", state.AlertSuccess, 0)
	return nil
}

// GetPosts loads every post.
func (a *Actions) GetPosts(ctx context.Context) error {
	posts, err := a.api.Posts(ctx)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.GetPosts{Posts: posts})
	return nil
}

// GetPost loads a single post.
func (a *Actions) GetPost(ctx context.Context, id string) error {
	p, err := a.api.Post(ctx, id)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.GetPost{Post: p})
	return nil
}

// AddPost publishes a post and puts it first in the list.
func (a *Actions) AddPost(ctx context.Context, text string) error {
	p, err := a.api.CreatePost(ctx, text)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.AddPost{Post: p})
	a.SetAlert("Post Created", state.AlertSuccess, 0)
	return nil
}

// DeletePost removes a post from the server and the list.
func (a *Actions) DeletePost(ctx context.Context, id string) error {
	if err := a.api.DeletePost(ctx, id); err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.DeletePost{ID: id})
	a.SetAlert("Post Removed", state.AlertSuccess, 0)
	return nil
}

// AddLike likes a post and refreshes its likes.
func (a *Actions) AddLike(ctx context.Context, postID string) error {
	likes, err := a.api.Like(ctx, postID)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.UpdateLikes{PostID: postID, Likes: likes})
	return nil
}

// RemoveLike withdraws a like and refreshes the post's likes.
func (a *Actions) RemoveLike(ctx context.Context, postID string) error {
	likes, err := a.api.Unlike(ctx, postID)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.UpdateLikes{PostID: postID, Likes: likes})
	return nil
}

// AddComment comments on a post and refreshes the open post's comments.
func (a *Actions) AddComment(ctx context.Context, postID, text string) error {
	comments, err := a.api.Comment(ctx, postID, text)
	if err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.AddComment{Comments: comments})
	a.SetAlert("Comment Added", state.AlertSuccess, 0)
	return nil
}

// DeleteComment removes a comment from the open post.
func (a *Actions) DeleteComment(ctx context.Context, postID, commentID string) error {
	if _, err := a.api.DeleteComment(ctx, postID, commentID); err != nil {
		return a.postFailed(err)
	}
	a.store.Dispatch(state.RemoveComment{CommentID: commentID})
	a.SetAlert("Comment Removed", state.AlertSuccess, 0)
	return nil
}

func (a *Actions) profileUpdated(p model.Profile, err error, msg string) error {
	if err != nil {
		return a.profileFailed(err, true)
	}
	a.store.Dispatch(state.UpdateProfile{Profile: p})
	a.SetAlert(msg, state.AlertSuccess, 0)
	return nil
}

// profileFailed records err on the profile slice. Form submissions raise
// validation alerts; everything else raises a single alert.
func (a *Actions) profileFailed(err error, form bool) error {
	if form {
		a.validationAlerts(err)
	} else {
		a.errorAlert(err)
	}
	a.store.Dispatch(state.ProfileError{Err: errorInfo(err)})
	return err
}

func (a *Actions) postFailed(err error) error {
	a.errorAlert(err)
	a.store.Dispatch(state.PostError{Err: errorInfo(err)})
	return err
}

// validationAlerts raises one long-lived alert per server message.
func (a *Actions) validationAlerts(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		for _, msg := range apiErr.Messages {
			a.SetAlert(msg, state.AlertDanger, a.validationTimeout)
		}
		return
	}
	a.SetAlert(err.Error(), state.AlertDanger, a.validationTimeout)
}

func (a *Actions) errorAlert(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.StatusText()
		if len(apiErr.Messages) > 0 {
			msg = apiErr.Messages[0]
		}
		a.SetAlert(msg, state.AlertDanger, 0)
		return
	}
	a.SetAlert(err.Error(), state.AlertDanger, 0)
}

func errorInfo(err error) state.ErrorInfo {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return state.ErrorInfo{Msg: apiErr.StatusText(), Status: apiErr.Status}
	}
	return state.ErrorInfo{Msg: err.Error()}
}

func (a *Actions) rememberToken(token string) {
	a.api.SetToken(token)
	if err := a.tokens.Save(token); err != nil {
		log.Warn().Err(err).Msg("could not persist token")
	}
}

func (a *Actions) forgetToken() {
	a.api.SetToken("")
	if err := a.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("could not clear token")
	}
}
