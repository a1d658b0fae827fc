// Package client talks to the DevConnector API and feeds the results into a state.Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/model"
)

// APIError is a non-2xx response. Messages holds the server's msg values.
type APIError struct {
	Status   int
	Messages []string
}

// StatusText is the standard text of the status code.
func (e *APIError) StatusText() string {
	return http.StatusText(e.Status)
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, e.StatusText())
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.StatusText(), strings.Join(e.Messages, "; "))
}

// API is a typed client for the REST surface under /api.
type API struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPI creates a client for the server at baseURL.
func NewAPI(baseURL string, timeout time.Duration) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the token sent with every request. An empty token sends none.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// Register creates an account and returns its token.
func (a *API) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var resp model.TokenResponse
	err := a.do(ctx, http.MethodPost, "/api/users", req, &resp)
	return resp.Token, err
}

// Login exchanges credentials for a token.
func (a *API) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	var resp model.TokenResponse
	err := a.do(ctx, http.MethodPost, "/api/auth", req, &resp)
	return resp.Token, err
}

// Me returns the account behind the current token.
func (a *API) Me(ctx context.Context) (model.UserResponse, error) {
	var u model.UserResponse
	err := a.do(ctx, http.MethodGet, "/api/auth", nil, &u)
	return u, err
}

// MyProfile returns the current user's profile.
func (a *API) MyProfile(ctx context.Context) (model.Profile, error) {
	return a.profile(ctx, http.MethodGet, "/api/profile/me", nil)
}

// Profiles lists every profile.
func (a *API) Profiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := a.do(ctx, http.MethodGet, "/api/profile", nil, &profiles)
	return profiles, err
}

// ProfileByUser returns the profile of userID.
func (a *API) ProfileByUser(ctx context.Context, userID string) (model.Profile, error) {
	return a.profile(ctx, http.MethodGet, "/api/profile/user/"+url.PathEscape(userID), nil)
}

// SaveProfile creates or updates the current user's profile.
func (a *API) SaveProfile(ctx context.Context, req model.ProfileRequest) (model.Profile, error) {
	return a.profile(ctx, http.MethodPost, "/api/profile", req)
}

// DeleteAccount removes the current user with their profile and posts.
func (a *API) DeleteAccount(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/api/profile", nil, nil)
}

// AddExperience adds an experience entry and returns the updated profile.
func (a *API) AddExperience(ctx context.Context, req model.ExperienceRequest) (model.Profile, error) {
	return a.profile(ctx, http.MethodPut, "/api/profile/experience", req)
}

// DeleteExperience removes an experience entry and returns the updated profile.
func (a *API) DeleteExperience(ctx context.Context, id string) (model.Profile, error) {
	return a.profile(ctx, http.MethodDelete, "/api/profile/experience/"+url.PathEscape(id), nil)
}

// AddEducation adds an education entry and returns the updated profile.
func (a *API) AddEducation(ctx context.Context, req model.EducationRequest) (model.Profile, error) {
	return a.profile(ctx, http.MethodPut, "/api/profile/education", req)
}

// DeleteEducation removes an education entry and returns the updated profile.
func (a *API) DeleteEducation(ctx context.Context, id string) (model.Profile, error) {
	return a.profile(ctx, http.MethodDelete, "/api/profile/education/"+url.PathEscape(id), nil)
}

// GitHubRepos lists the latest public repositories of a GitHub user.
func (a *API) GitHubRepos(ctx context.Context, username string) ([]model.Repo, error) {
	var repos []model.Repo
	err := a.do(ctx, http.MethodGet, "/api/profile/github/"+url.PathEscape(username), nil, &repos)
	return repos, err
}

// Posts lists every post, newest first.
func (a *API) Posts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := a.do(ctx, http.MethodGet, "/api/posts", nil, &posts)
	return posts, err
}

// Post returns a single post with its likes and comments.
func (a *API) Post(ctx context.Context, id string) (model.Post, error) {
	var p model.Post
	err := a.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &p)
	return p, err
}

// CreatePost publishes a post.
func (a *API) CreatePost(ctx context.Context, text string) (model.Post, error) {
	var p model.Post
	err := a.do(ctx, http.MethodPost, "/api/posts", model.TextRequest{Text: text}, &p)
	return p, err
}

// DeletePost removes a post written by the current user.
func (a *API) DeletePost(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

// Like likes a post and returns its likes.
func (a *API) Like(ctx context.Context, postID string) ([]model.Like, error) {
	var likes []model.Like
	err := a.do(ctx, http.MethodPut, "/api/posts/like/"+url.PathEscape(postID), nil, &likes)
	return likes, err
}

// Unlike withdraws the current user's like and returns the post's likes.
func (a *API) Unlike(ctx context.Context, postID string) ([]model.Like, error) {
	var likes []model.Like
	err := a.do(ctx, http.MethodPut, "/api/posts/unlike/"+url.PathEscape(postID), nil, &likes)
	return likes, err
}

// Comment adds a comment and returns the post's comments.
func (a *API) Comment(ctx context.Context, postID, text string) ([]model.Comment, error) {
	var comments []model.Comment
	err := a.do(ctx, http.MethodPost, "/api/posts/comment/"+url.PathEscape(postID), model.TextRequest{Text: text}, &comments)
	return comments, err
}

// DeleteComment removes a comment and returns the post's comments.
func (a *API) DeleteComment(ctx context.Context, postID, commentID string) ([]model.Comment, error) {
	var comments []model.Comment
	path := "/api/posts/comment/" + url.PathEscape(postID) + "/" + url.PathEscape(commentID)
	err := a.do(ctx, http.MethodDelete, path, nil, &comments)
	return comments, err
}

func (a *API) profile(ctx context.Context, method, path string, body any) (model.Profile, error) {
	var p model.Profile
	err := a.do(ctx, method, path, body, &p)
	return p, err
}

// do sends a JSON request and decodes a 2xx body into out. Other statuses become *APIError.
func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	a.mu.RLock()
	if a.token != "" {
		req.Header.Set(middleware.TokenHeader, a.token)
	}
	a.mu.RUnlock()

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Ctx(ctx).Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Msg    string `json:"msg"`
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return apiErr
	}
	for _, e := range body.Errors {
		apiErr.Messages = append(apiErr.Messages, e.Msg)
	}
	if body.Msg != "" {
		apiErr.Messages = append(apiErr.Messages, body.Msg)
	}
	return apiErr
}
